package fields

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults maps optional schema keys to their fallback copy.
type Defaults map[string]string

// LoadDefaults returns the built-in defaults. When path is not empty, the
// YAML file there is laid over them key by key; keys it leaves out keep the
// built-in copy.
func LoadDefaults(path string) (Defaults, error) {
	d, err := ParseDefaults(defaultsYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in field defaults: %w", err)
	}
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading field defaults %s: %w", path, err)
	}
	override, err := ParseDefaults(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for key, val := range override {
		d[key] = val
	}
	return d, nil
}

// ParseDefaults decodes a defaults document. Keys must be optional schema
// keys.
func ParseDefaults(data []byte) (Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing field defaults: %w", err)
	}
	if d == nil {
		d = Defaults{}
	}
	for key, val := range d {
		field, ok := Lookup(key)
		if !ok {
			return nil, fmt.Errorf("field defaults: unknown field %q", key)
		}
		if field.Required {
			return nil, fmt.Errorf("field defaults: %q is required and cannot have a default", key)
		}
		d[key] = strings.TrimSpace(val)
	}
	return d, nil
}
