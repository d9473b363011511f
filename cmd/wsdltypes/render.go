package main

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-wsdltypes/pkg/typetree"
)

const (
	formatTree = "tree"
	formatJSON = "json"
	formatYAML = "yaml"
)

func writeValue(w io.Writer, format string, value any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON:
		payload, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(payload))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// writeTree prints a descriptor as an indented outline, one node per line.
func writeTree(w io.Writer, desc typetree.Descriptor) {
	fmt.Fprintf(w, "%s (%s)\n", desc.Name, desc.Class)
	for _, node := range desc.Nodes {
		writeNode(w, node, 1)
	}
}

func writeNode(w io.Writer, node typetree.TypeNode, depth int) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&b, "%s: %s [%s]", node.FieldName, node.DeclaredType, node.Kind)
	if node.Optional {
		b.WriteString(" optional")
	}
	if idx, ok := node.OccurrenceIndex(); ok {
		fmt.Fprintf(&b, " #%d", idx)
	}
	if node.IsSelfReference() {
		fmt.Fprintf(&b, " ref=%s", node.Ref)
	}
	fmt.Fprintln(w, b.String())

	for _, child := range node.Children {
		writeNode(w, child, depth+1)
	}
	if node.Element != nil {
		writeNode(w, *node.Element, depth+1)
	}
}
