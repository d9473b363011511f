package annotation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wsdltypes/pkg/introspect"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want introspect.Annotation
	}{
		{
			name: "empty",
			doc:  "",
			want: introspect.Annotation{Type: "void"},
		},
		{
			name: "no type tag",
			doc:  "/** just a comment */",
			want: introspect.Annotation{Type: "void", Description: "just a comment"},
		},
		{
			name: "scalar",
			doc:  "/** @type string */",
			want: introspect.Annotation{Type: "string"},
		},
		{
			name: "optional scalar",
			doc:  "/**\n * @type int\n * @optional\n */",
			want: introspect.Annotation{Type: "int", Optional: true},
		},
		{
			name: "array",
			doc:  "/** @type Foo[] */",
			want: introspect.Annotation{Type: "Foo", Array: true},
		},
		{
			name: "array without token keeps void",
			doc:  "/** @type [] */",
			want: introspect.Annotation{Type: "void", Array: true},
		},
		{
			name: "wrapper with namespaced class",
			doc:  `/** @type wrapper @className=Some\Namespace\Foo */`,
			want: introspect.Annotation{Type: "wrapper", ClassName: `Some\Namespace\Foo`},
		},
		{
			name: "class name at end of text",
			doc:  "@type wrapper[] @className=Bar",
			want: introspect.Annotation{Type: "wrapper", Array: true, ClassName: "Bar"},
		},
		{
			name: "class name glued to comment terminator",
			doc:  "/** @type wrapper @className=Bar*/",
			want: introspect.Annotation{Type: "wrapper", ClassName: "Bar"},
		},
		{
			name: "empty class name",
			doc:  "/** @type wrapper @className= */",
			want: introspect.Annotation{Type: "wrapper"},
		},
		{
			name: "description lines",
			doc:  "/**\n * Customer name.\n * Shown on invoices.\n * @type string\n */",
			want: introspect.Annotation{Type: "string", Description: "Customer name. Shown on invoices."},
		},
		{
			name: "description keeps untagged at signs",
			doc:  "/**\n * Contact ops@example.com for changes\n * @type string\n */",
			want: introspect.Annotation{Type: "string", Description: "Contact ops@example.com for changes"},
		},
		{
			name: "description cut at inline tag",
			doc:  "/** Billing contact @type string @optional */",
			want: introspect.Annotation{Type: "string", Optional: true, Description: "Billing contact"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.doc)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("annotation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract_OptionalDefaultsFalse(t *testing.T) {
	for _, doc := range []string{"", "@type string", "@type object", "@type int[]"} {
		if Extract(doc).Optional {
			t.Fatalf("expected optional=false for %q", doc)
		}
	}
}
