package typetree_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-wsdltypes/pkg/introspect"
	"github.com/goliatone/go-wsdltypes/pkg/testsupport"
	"github.com/goliatone/go-wsdltypes/pkg/typetree"
)

func TestBuilder_ShopOrder(t *testing.T) {
	catalog := testsupport.LoadCatalog(t, filepath.Join("testdata", "shop_catalog.yaml"))

	builder := typetree.NewBuilder(catalog, typetree.WithCounter(typetree.NewCounter()))
	desc, err := builder.Build(testsupport.Context(), `Shop\Order`)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	goldenPath := filepath.Join("testdata", "shop_order_descriptor.golden.json")
	testsupport.WriteDescriptor(t, goldenPath, desc)
	want := testsupport.MustLoadDescriptor(t, goldenPath)

	if diff := testsupport.CompareGolden(want, desc); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	nodes := testsupport.Index(desc)
	if got := nodes["customer.customer.email"]; !got.Optional || got.DeclaredType != "string" {
		t.Fatalf("unexpected customer email node %+v", got)
	}
	if got := nodes["lines.lines.quantity"]; got.DeclaredType != "int" {
		t.Fatalf("unexpected line quantity node %+v", got)
	}
}

func TestBuilder_SharedCounterAcrossBuilders(t *testing.T) {
	catalog := testsupport.LoadCatalog(t, filepath.Join("testdata", "shop_catalog.yaml"))
	counter := typetree.NewCounter()

	first := typetree.NewBuilder(catalog, typetree.WithCounter(counter))
	second := typetree.NewBuilder(catalog, typetree.WithCounter(counter))

	a, err := first.Build(testsupport.Context(), `Shop\Order`)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	b, err := second.Build(testsupport.Context(), `Shop\Order`)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}

	for _, name := range []string{"lines", "notes"} {
		na, _ := a.Field(name)
		nb, _ := b.Field(name)
		ia, _ := na.OccurrenceIndex()
		ib, _ := nb.OccurrenceIndex()
		if ia != 0 || ib != 1 {
			t.Fatalf("%s: expected occurrences 0 then 1, got %d then %d", name, ia, ib)
		}
	}
}

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Invoice struct {
	Number string   `json:"number" wsdl:"desc=Invoice number"`
	Total  Money    `json:"total"`
	Items  []Money  `json:"items"`
	Memo   *string  `json:"memo"`
	Codes  []string `json:"codes" wsdl:"optional"`
}

func TestBuilder_FromGoStructs(t *testing.T) {
	registry := introspect.NewRegistry().
		MustRegister("Billing.Money", Money{}).
		MustRegister("Billing.Invoice", Invoice{})

	desc, err := typetree.NewBuilder(registry, typetree.WithCounter(typetree.NewCounter())).
		Build(testsupport.Context(), "Billing.Invoice")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if desc.Name != "Invoice" {
		t.Fatalf("expected stripped name Invoice, got %q", desc.Name)
	}

	nodes := testsupport.Index(desc)
	checks := map[string]struct {
		kind     typetree.Kind
		declared string
		optional bool
	}{
		"number":               {typetree.KindScalar, "string", false},
		"total":                {typetree.KindObject, "Money", false},
		"total.total":          {typetree.KindObject, "Money", false},
		"total.total.amount":   {typetree.KindScalar, "float", false},
		"items":                {typetree.KindArrayOf, "Money", false},
		"items.items":          {typetree.KindObject, "Money", false},
		"items.items.currency": {typetree.KindScalar, "string", false},
		"memo":                 {typetree.KindScalar, "string", true},
		"codes":                {typetree.KindArrayOf, "string", true},
	}
	for path, want := range checks {
		got, ok := nodes[path]
		if !ok {
			t.Fatalf("missing node %s", path)
		}
		if got.Kind != want.kind || got.DeclaredType != want.declared || got.Optional != want.optional {
			t.Fatalf("%s: got kind=%s type=%s optional=%v, want %+v", path, got.Kind, got.DeclaredType, got.Optional, want)
		}
	}
	if got := nodes["number"].Documentation; got != "Invoice number" {
		t.Fatalf("expected documentation, got %q", got)
	}
}

func TestBuilder_ErrorKinds(t *testing.T) {
	catalog, err := introspect.NewCatalog(
		introspect.Class{Name: "NoClass", Fields: []introspect.Field{{Name: "w", Doc: "@type wrapper"}}},
		introspect.Class{Name: "Dangling", Fields: []introspect.Field{{Name: "w", Doc: "@type wrapper @className=Gone"}}},
		introspect.Class{Name: "Loop", Fields: []introspect.Field{{Name: "me", Doc: "@type wrapper @className=Loop"}}},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	builder := typetree.NewBuilder(catalog, typetree.WithCounter(typetree.NewCounter()))

	cases := map[string]error{
		"NoClass":  typetree.ErrMissingClassName,
		"Dangling": typetree.ErrUnreachableClass,
		"Loop":     typetree.ErrCyclicReference,
	}
	for class, want := range cases {
		if _, err := builder.Build(testsupport.Context(), class); !errors.Is(err, want) {
			t.Fatalf("%s: expected %v, got %v", class, want, err)
		}
	}

	if _, err := builder.ResolveWrapper(testsupport.Context(), "int", introspect.Annotation{ClassName: "Loop"}); !errors.Is(err, typetree.ErrNotComplexType) {
		t.Fatalf("expected ErrNotComplexType, got %v", err)
	}
}

func TestExtractAnnotation(t *testing.T) {
	ann := typetree.ExtractAnnotation(`/** @type wrapper[] @className=App\Item @optional */`)
	if ann.Type != "wrapper" || !ann.Array || !ann.Optional || ann.ClassName != `App\Item` {
		t.Fatalf("unexpected annotation %+v", ann)
	}
	res := typetree.Resolve(ann.Type, ann.Array)
	if res.Strategy != typetree.StrategyArray || res.Element != typetree.StrategyWrapper {
		t.Fatalf("unexpected resolution %+v", res)
	}
}
