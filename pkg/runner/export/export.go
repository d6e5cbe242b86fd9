// Package export writes the goal board as YAML or JSON.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/kanban"
)

// Format selects the export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Document is the exported shape.
type Document struct {
	Goals []kanban.Goal `json:"goals" yaml:"goals"`
}

// Export dumps the board to Out.
type Export struct {
	Service *app.Service
	Format  Format
	Out     io.Writer
}

// Do writes the document.
func (e *Export) Do(_ context.Context) error {
	if e.Service == nil {
		return fmt.Errorf("export: no service")
	}
	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	doc := Document{Goals: e.Service.Snapshot().Goals}
	if doc.Goals == nil {
		doc.Goals = []kanban.Goal{}
	}

	switch Format(strings.ToLower(string(e.Format))) {
	case "", FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("export: encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("export: unsupported format %q (expected yaml or json)", e.Format)
	}
}
