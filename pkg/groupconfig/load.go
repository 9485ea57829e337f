package groupconfig

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Configuration, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening group configuration: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration in the given format.
func Parse(reader io.Reader, format Format) (*Configuration, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading group configuration: %w", err)
	}

	var cfg *Configuration
	switch format {
	case FormatYAML:
		cfg = &Configuration{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case FormatTOML:
		cfg = &Configuration{}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	case FormatXML:
		cfg, err = parseXML(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// --- Legacy XML index configuration ---
// index.configuration.set > index.configuration > index.groups > index.group

type xmlConfigurationSet struct {
	XMLName        xml.Name           `xml:"index.configuration.set"`
	Configurations []xmlConfiguration `xml:"index.configuration"`
}

type xmlConfiguration struct {
	Groups *xmlGroups `xml:"index.groups"`
}

type xmlGroups struct {
	Groups []xmlGroup `xml:"index.group"`
}

type xmlGroup struct {
	Key     xmlText     `xml:"group.key"`
	Label   xmlText     `xml:"group.label"`
	Members *xmlMembers `xml:"group.members"`
}

type xmlMembers struct {
	CharSets []xmlCharSet `xml:"char.set"`
}

type xmlCharSet struct {
	StartRange string `xml:"start-range,attr"`
	EndRange   string `xml:"end-range,attr"`
	Text       string `xml:",chardata"`
}

// xmlText collects all character data below an element.
type xmlText struct {
	Inner string `xml:",innerxml"`
}

func (t xmlText) String() string {
	var builder strings.Builder
	decoder := xml.NewDecoder(strings.NewReader("<t>" + t.Inner + "</t>"))
	decoder.Strict = false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if data, ok := token.(xml.CharData); ok {
			builder.Write(bytes.TrimSpace(data))
		}
	}
	return strings.TrimSpace(builder.String())
}

func parseXML(data []byte) (*Configuration, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false

	var set xmlConfigurationSet
	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(set.Configurations) == 0 || set.Configurations[0].Groups == nil {
		return nil, ErrInvalidFormat
	}

	cfg := &Configuration{}
	for _, group := range set.Configurations[0].Groups.Groups {
		def := Definition{
			Key:   group.Key.String(),
			Label: group.Label.String(),
		}
		if group.Members != nil {
			for _, charSet := range group.Members.CharSets {
				start := strings.TrimSpace(charSet.StartRange)
				end := strings.TrimSpace(charSet.EndRange)
				if start != "" && end != "" {
					def.Ranges = append(def.Ranges, CharRange{Start: start, End: end})
					def.Members = append(def.Members, start)
				}
				if text := strings.TrimSpace(charSet.Text); text != "" {
					def.Members = append(def.Members, text)
				}
			}
		}
		cfg.Groups = append(cfg.Groups, def)
	}
	return cfg, nil
}
