package introspect

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

const yamlCatalog = `
classes:
  - name: Shop\Order
    fields:
      - name: id
        doc: "/** @type int */"
      - name: lines
        type: wrapper[]
        className: Shop\Line
      - name: note
        type: string
        optional: true
        description: Free text
  - name: Shop\Line
    fields:
      - name: sku
        doc: "@type string"
`

const jsonCatalog = `{
  "classes": [
    {"name": "Audit", "fields": [
      {"name": "who", "type": "string"},
      {"name": "when", "doc": "@type dateTime @optional"}
    ]}
  ]
}`

func TestParseCatalog_YAML(t *testing.T) {
	catalog, err := ParseCatalog([]byte(yamlCatalog), "shop.yaml")
	require.NoError(t, err)
	require.Equal(t, []string{`Shop\Line`, `Shop\Order`}, catalog.Classes())

	fields, err := catalog.Fields(context.Background(), `Shop\Order`)
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Name: "id", Doc: "/** @type int */"},
		{Name: "lines", Annotation: &Annotation{Type: "wrapper", Array: true, ClassName: `Shop\Line`}},
		{Name: "note", Annotation: &Annotation{Type: "string", Optional: true, Description: "Free text"}},
	}, fields)
}

func TestParseCatalog_JSON(t *testing.T) {
	catalog, err := ParseCatalog([]byte(jsonCatalog), "audit.json")
	require.NoError(t, err)

	fields, err := catalog.Fields(context.Background(), "Audit")
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Name: "who", Annotation: &Annotation{Type: "string"}},
		{Name: "when", Doc: "@type dateTime @optional"},
	}, fields)
}

func TestParseCatalog_Errors(t *testing.T) {
	_, err := ParseCatalog([]byte("   "), "empty.yaml")
	require.ErrorContains(t, err, "is empty")

	_, err = ParseCatalog([]byte("classes: [unterminated"), "broken.yaml")
	require.ErrorContains(t, err, "invalid JSON or YAML")

	_, err = ParseCatalog([]byte("classes:\n  - name: A\n  - name: A\n"), "dup.yaml")
	require.ErrorContains(t, err, "duplicate class")

	_, err = ParseCatalog([]byte("classes:\n  - name: A\n    fields:\n      - name: x\n      - name: x\n"), "dupfield.yaml")
	require.ErrorContains(t, err, "declares field")
}

func TestCatalog_FieldsAreCopies(t *testing.T) {
	catalog, err := ParseCatalog([]byte(yamlCatalog), "shop.yaml")
	require.NoError(t, err)

	fields, err := catalog.Fields(context.Background(), `Shop\Order`)
	require.NoError(t, err)
	fields[1].Annotation.ClassName = "Mutated"

	again, err := catalog.Fields(context.Background(), `Shop\Order`)
	require.NoError(t, err)
	require.Equal(t, `Shop\Line`, again[1].Annotation.ClassName)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"catalogs/shop.yaml":  {Data: []byte(yamlCatalog)},
		"catalogs/audit.json": {Data: []byte(jsonCatalog)},
		"catalogs/README.md":  {Data: []byte("ignored")},
	}

	catalog, err := LoadFS(fsys)
	require.NoError(t, err)
	require.Equal(t, []string{"Audit", `Shop\Line`, `Shop\Order`}, catalog.Classes())

	empty, err := LoadFS(nil)
	require.NoError(t, err)
	require.Empty(t, empty.Classes())
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(jsonCatalog)},
		"b.json": {Data: []byte(jsonCatalog)},
	}
	_, err := LoadFS(fsys)
	require.ErrorContains(t, err, `duplicate class "Audit"`)
}

func TestChain(t *testing.T) {
	first, err := NewCatalog(Class{Name: "A", Fields: []Field{{Name: "x", Doc: "@type int"}}})
	require.NoError(t, err)
	second, err := NewCatalog(
		Class{Name: "A", Fields: []Field{{Name: "shadowed"}}},
		Class{Name: "B", Fields: []Field{{Name: "y"}}},
	)
	require.NoError(t, err)

	chain := Chain{first, nil, second}
	fields, err := chain.Fields(context.Background(), "A")
	require.NoError(t, err)
	require.Equal(t, "x", fields[0].Name)

	fields, err = chain.Fields(context.Background(), "B")
	require.NoError(t, err)
	require.Equal(t, "y", fields[0].Name)

	_, err = chain.Fields(context.Background(), "C")
	require.ErrorIs(t, err, ErrClassNotFound)

	require.Equal(t, []string{"A", "B"}, chain.Classes())
}
