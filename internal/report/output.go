// Package report is the run's reporting surface: one human-readable record
// per completed cycle, written to stdout in YAML or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the output format for reports and CLI output.
type OutputFormat string

const (
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatJSON OutputFormat = "json"
)

// DefaultOutput is the default output format.
var DefaultOutput OutputFormat = OutputFormatYAML

// ParseFormat converts a flag value to an OutputFormat.
func ParseFormat(format string) (OutputFormat, error) {
	switch format {
	case "", "yaml":
		return OutputFormatYAML, nil
	case "json":
		return OutputFormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (want yaml or json)", format)
	}
}

// OutputTo writes data to the given writer in the specified format.
func OutputTo(w io.Writer, format OutputFormat, data any) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
