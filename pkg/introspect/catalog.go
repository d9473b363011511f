package introspect

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Catalog is an in-memory class description set, typically loaded from YAML
// or JSON files that sit alongside the wrapper classes they describe.
type Catalog struct {
	classes map[string]Class
	sources map[string]string
}

// Class describes a wrapper class and its public fields in declaration order.
type Class struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

type catalogFile struct {
	Classes []classFile `json:"classes" yaml:"classes"`
}

type classFile struct {
	Name   string      `json:"name" yaml:"name"`
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

// fieldFile accepts either a raw `doc` annotation string or structured keys.
type fieldFile struct {
	Name        string `json:"name" yaml:"name"`
	Doc         string `json:"doc" yaml:"doc"`
	Type        string `json:"type" yaml:"type"`
	Array       bool   `json:"array" yaml:"array"`
	Optional    bool   `json:"optional" yaml:"optional"`
	ClassName   string `json:"className" yaml:"className"`
	Description string `json:"description" yaml:"description"`
}

// NewCatalog constructs a catalog from already-built classes.
func NewCatalog(classes ...Class) (*Catalog, error) {
	c := &Catalog{classes: make(map[string]Class), sources: make(map[string]string)}
	for _, class := range classes {
		if err := c.Add(class, ""); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add inserts a class. source identifies the originating file for error
// reporting and may be empty.
func (c *Catalog) Add(class Class, source string) error {
	name := strings.TrimSpace(class.Name)
	if name == "" {
		return fmt.Errorf("introspect: catalog %s defines a class without a name", describeSource(source))
	}
	if _, exists := c.classes[name]; exists {
		return fmt.Errorf("introspect: duplicate class %q (%s and %s)", name, describeSource(c.sources[name]), describeSource(source))
	}
	seen := make(map[string]struct{}, len(class.Fields))
	for _, field := range class.Fields {
		fieldName := strings.TrimSpace(field.Name)
		if fieldName == "" {
			return fmt.Errorf("introspect: class %q in %s has a field without a name", name, describeSource(source))
		}
		if _, dup := seen[fieldName]; dup {
			return fmt.Errorf("introspect: class %q in %s declares field %q twice", name, describeSource(source), fieldName)
		}
		seen[fieldName] = struct{}{}
	}
	class.Name = name
	class.Fields = cloneFields(class.Fields)
	c.classes[name] = class
	c.sources[name] = source
	return nil
}

// Merge copies every class of other into c.
func (c *Catalog) Merge(other *Catalog) error {
	if other == nil {
		return nil
	}
	for _, name := range other.Classes() {
		if err := c.Add(other.classes[name], other.sources[name]); err != nil {
			return err
		}
	}
	return nil
}

// Class looks up a class by name.
func (c *Catalog) Class(name string) (Class, bool) {
	if c == nil {
		return Class{}, false
	}
	class, ok := c.classes[strings.TrimSpace(name)]
	return class, ok
}

// Classes returns the catalog class names sorted alphabetically.
func (c *Catalog) Classes() []string {
	if c == nil || len(c.classes) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields implements Introspector.
func (c *Catalog) Fields(ctx context.Context, class string) ([]Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	found, ok := c.Class(class)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClassNotFound, class)
	}
	return cloneFields(found.Fields), nil
}

// ParseCatalog decodes a JSON or YAML catalog document. JSON is attempted
// first, mirroring how UI schema files are detected.
func ParseCatalog(data []byte, source string) (*Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("introspect: catalog %s is empty", describeSource(source))
	}

	var doc catalogFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = catalogFile{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, fmt.Errorf("introspect: parse %s: invalid JSON or YAML: %w", describeSource(source), yerr)
		}
	}

	catalog := &Catalog{classes: make(map[string]Class), sources: make(map[string]string)}
	for _, raw := range doc.Classes {
		class := Class{Name: raw.Name, Fields: make([]Field, 0, len(raw.Fields))}
		for _, f := range raw.Fields {
			class.Fields = append(class.Fields, f.field())
		}
		if err := catalog.Add(class, source); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func (f fieldFile) field() Field {
	field := Field{Name: strings.TrimSpace(f.Name), Doc: f.Doc}
	if !f.structured() {
		return field
	}
	token := strings.TrimSpace(f.Type)
	array := f.Array
	if base, ok := strings.CutSuffix(token, "[]"); ok {
		token = base
		array = true
	}
	field.Annotation = &Annotation{
		Type:        token,
		Array:       array,
		Optional:    f.Optional,
		ClassName:   strings.TrimSpace(f.ClassName),
		Description: strings.TrimSpace(f.Description),
	}
	return field
}

// structured reports whether the entry uses structured keys rather than a raw
// doc string. A raw doc always wins when both are supplied.
func (f fieldFile) structured() bool {
	if strings.TrimSpace(f.Doc) != "" {
		return false
	}
	return f.Type != "" || f.Array || f.Optional || f.ClassName != "" || f.Description != ""
}

// LoadFS walks fsys and merges every JSON/YAML catalog file it finds. When fsys
// is nil or holds no catalog files the returned catalog is empty.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{classes: make(map[string]Class), sources: make(map[string]string)}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("introspect: read %s: %w", path, err)
		}
		parsed, err := ParseCatalog(data, path)
		if err != nil {
			return err
		}
		return catalog.Merge(parsed)
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func describeSource(source string) string {
	if source == "" {
		return "<memory>"
	}
	return source
}
