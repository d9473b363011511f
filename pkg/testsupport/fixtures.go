package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wsdltypes/pkg/introspect"
	"github.com/goliatone/go-wsdltypes/pkg/typetree"
)

// LoadCatalog reads a YAML/JSON catalog fixture. Testing helpers fail the test
// on error to keep contract tests concise.
func LoadCatalog(t *testing.T, path string) *introspect.Catalog {
	t.Helper()

	catalog, err := LoadCatalogFromPath(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

// LoadCatalogFromPath returns a Catalog without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadCatalogFromPath(path string) (*introspect.Catalog, error) {
	if path == "" {
		return nil, errors.New("testsupport: catalog path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read catalog: %w", err)
	}
	catalog, err := introspect.ParseCatalog(data, path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse catalog: %w", err)
	}
	return catalog, nil
}

// MustLoadDescriptor loads a JSON golden file into a Descriptor.
func MustLoadDescriptor(t *testing.T, path string) typetree.Descriptor {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	var out typetree.Descriptor
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// WriteDescriptor writes a descriptor golden when UPDATE_GOLDENS is enabled.
func WriteDescriptor(t *testing.T, path string, value typetree.Descriptor) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Index returns the node at a dotted field path, following children and array
// elements the same way Descriptor.Walk does. The first match wins.
func Index(d typetree.Descriptor) map[string]typetree.TypeNode {
	out := make(map[string]typetree.TypeNode)
	d.Walk(func(path string, node typetree.TypeNode) bool {
		if _, exists := out[path]; !exists {
			out[path] = node
		}
		return true
	})
	return out
}
