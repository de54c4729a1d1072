// Package output provides report formatting for CLI and MCP responses.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatYAML is the default self-documenting YAML output.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON output format.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format value.
// Accepts "yaml" and "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected yaml or json)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Formatter encodes report values for output.
type Formatter interface {
	// Format returns the encoded value as a string.
	Format(v interface{}) (string, error)
	// FormatToWriter writes the encoded value to w.
	FormatToWriter(w io.Writer, v interface{}) error
}

// NewFormatter returns the formatter for the given format.
func NewFormatter(f Format) Formatter {
	if f == FormatJSON {
		return &JSONFormatter{}
	}
	return &YAMLFormatter{}
}

// YAMLFormatter encodes values as YAML.
type YAMLFormatter struct{}

// Format encodes v as YAML.
func (f *YAMLFormatter) Format(v interface{}) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes YAML output to w.
func (f *YAMLFormatter) FormatToWriter(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(v)
}

// JSONFormatter encodes values as indented JSON.
type JSONFormatter struct{}

// Format encodes v as JSON.
func (f *JSONFormatter) Format(v interface{}) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes JSON output to w.
func (f *JSONFormatter) FormatToWriter(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
