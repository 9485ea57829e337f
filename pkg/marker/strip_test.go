package marker

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFormatting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantWarn bool
	}{
		{"no formatting", "Foo", "Foo", false},
		{"single directive", "Foo<$nopage>", "Foo", false},
		{"several directives", "<b>Foo</b><$startrange>", "Foo", false},
		{"missing close", "Foo<bar", "Foo<bar", true},
		{"missing open", "Foo>bar", "Foo>bar", true},
		{"reversed", "Foo>bar<", "Foo>bar<", true},
		{"bad after good", "<i>Foo> x", "<i>Foo> x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			assert.Equal(t, tt.want, StripFormatting(tt.input, logger))
			if tt.wantWarn {
				assert.Contains(t, logs.String(), "level=WARN")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}
