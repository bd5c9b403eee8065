package compare

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Formatter renders a comparison set
type Formatter interface {
	Format(compSet *ComparisonSet) (string, error)
}

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(compSet)
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// FormatNames lists the names accepted by GetFormatter
var FormatNames = []string{"table", "csv", "json"}

// GetFormatter returns the formatter for name; "console" is accepted for table
func GetFormatter(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "table", "console", "text":
		return &TableFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "json":
		return &JSONFormatter{Pretty: true}, nil
	}
	return nil, fmt.Errorf("unknown comparison format %q (available: %s)", name, strings.Join(FormatNames, ", "))
}
