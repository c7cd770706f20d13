// Package formats provides level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
//
// Each row is a string of brick codes, one character per column:
// '0' or '.' is empty, '1'-'8' are hit points and '9' is indestructible.
// Spaces are ignored so rows can be padded for readability.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for validation.
type Level struct {
	ID       string
	Name     string
	Grid     [][]int
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}

	grid := make([][]int, 0, len(yl.Rows))
	for i, row := range yl.Rows {
		cells, err := parseRow(row)
		if err != nil {
			return Level{}, fmt.Errorf("row %d: %w", i, err)
		}
		grid = append(grid, cells)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	return Level{ID: yl.ID, Name: name, Grid: grid, Metadata: yl.Metadata}, nil
}

func parseRow(row string) ([]int, error) {
	cells := make([]int, 0, len(row))
	for _, r := range strings.ReplaceAll(row, " ", "") {
		switch {
		case r == '.':
			cells = append(cells, 0)
		case r >= '0' && r <= '9':
			cells = append(cells, int(r-'0'))
		default:
			return nil, fmt.Errorf("invalid brick code %q", r)
		}
	}
	return cells, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
