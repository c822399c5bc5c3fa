package callsite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSink is used for calls that do not name a sink.
const DefaultSink = "fmt.Printf"

// LoadFile loads and parses a YAML call-site file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read call-site file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse call-site YAML: %w", err)
	}

	f.source = append([]byte(nil), data...)

	// Apply defaults and normalize
	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Calls {
		c := &f.Calls[i]
		if c.Sink == "" {
			c.Sink = DefaultSink
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
