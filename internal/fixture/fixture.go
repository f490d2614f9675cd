// Package fixture reads and writes survey documents as YAML or JSON files.
package fixture

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

// Format is a fixture file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

//go:embed samples/*.yaml
var samples embed.FS

// FormatOf picks the format from a file extension; anything that is not
// YAML is read as JSON
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user supplied format name
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// Load reads a survey file
func Load(path string) (*model.Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Sample returns the bundled customer feedback survey
func Sample() (*model.Survey, error) {
	data, err := samples.ReadFile("samples/customer_feedback.yaml")
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatYAML)
}

// Decode parses a survey. YAML documents use the same field names as the
// JSON wire form.
func Decode(data []byte, format Format) (*model.Survey, error) {
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		data = converted
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var s model.Survey
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse survey: %w", err)
	}
	return &s, nil
}

// Encode renders a survey in the given format
func Encode(s *model.Survey, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	if format != FormatYAML {
		return append(data, '\n'), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	clearStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// clearStyle turns the flow style yaml infers from JSON into block style
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
