package marker

import (
	"log/slog"
	"strings"
)

// StripFormatting removes legacy "<...>" formatting directives such as
// "<$nopage>" from a marker string. Unbalanced or reversed brackets are
// logged and the input is returned unchanged.
func StripFormatting(value string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	original := value
	for {
		lt := strings.Index(value, "<")
		gt := strings.Index(value, ">")
		if lt < 0 && gt < 0 {
			return value
		}
		if lt < 0 || gt < 0 || lt > gt {
			logger.Warn("possibly bad formatting in index string", "value", original)
			return original
		}
		value = value[:lt] + value[gt+1:]
	}
}
