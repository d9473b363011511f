// Package typetree turns the annotated public fields of wrapper classes into
// trees of TypeNodes describing remote procedure complex types.
package typetree

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-wsdltypes/internal/annotation"
	"github.com/goliatone/go-wsdltypes/pkg/introspect"
)

// Builder resolves wrapper classes into descriptors. A Builder holds no
// per-call state and is safe for concurrent use; array occurrence indexes are
// shared through its Counter.
type Builder struct {
	introspector introspect.Introspector
	opts         Options
}

// New creates a Builder reading classes from in.
func New(in introspect.Introspector, options Options) *Builder {
	opts := defaultOptions()
	if options.Logger != nil {
		opts.Logger = options.Logger
	}
	if options.Counter != nil {
		opts.Counter = options.Counter
	}
	if options.MaxDepth > 0 {
		opts.MaxDepth = options.MaxDepth
	}
	opts.KeepMarkup = options.KeepMarkup
	return &Builder{introspector: in, opts: opts}
}

// Counter returns the occurrence counter used by the builder.
func (b *Builder) Counter() *Counter {
	return b.opts.Counter
}

// Build introspects class and resolves every public field into a TypeNode,
// following wrapper references depth first. The first failure aborts the
// whole build.
func (b *Builder) Build(ctx context.Context, class string) (Descriptor, error) {
	if err := b.validate(); err != nil {
		return Descriptor{}, err
	}
	class = strings.TrimSpace(class)
	if class == "" {
		return Descriptor{}, errors.New("typetree: class name is required")
	}

	nodes, err := b.newSession().buildClass(ctx, class)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Class: class, Name: StripNamespace(class), Nodes: nodes}, nil
}

// BuildFields resolves an already enumerated field list as if it were the
// public fields of class. Wrapper references are still read through the
// introspector.
func (b *Builder) BuildFields(ctx context.Context, class string, fields []introspect.Field) (Descriptor, error) {
	if err := b.validate(); err != nil {
		return Descriptor{}, err
	}
	class = strings.TrimSpace(class)
	s := b.newSession()
	s.push(class)
	nodes, err := s.buildFields(ctx, class, fields)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Class: class, Name: StripNamespace(class), Nodes: nodes}, nil
}

// ResolveWrapper resolves the class referenced by a complex field annotation
// into its descriptor. token must be object or wrapper.
func (b *Builder) ResolveWrapper(ctx context.Context, token string, ann introspect.Annotation) (Descriptor, error) {
	if err := b.validate(); err != nil {
		return Descriptor{}, err
	}
	name, nodes, err := b.newSession().resolveWrapper(ctx, token, ann)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Class: strings.TrimSpace(ann.ClassName), Name: name, Nodes: nodes}, nil
}

func (b *Builder) validate() error {
	if b == nil {
		return errors.New("typetree: builder is nil")
	}
	if b.introspector == nil {
		return errors.New("typetree: introspector is nil")
	}
	return nil
}

func (b *Builder) newSession() *session {
	return &session{
		introspector: b.introspector,
		opts:         b.opts,
		log:          b.opts.Logger,
		stack:        make([]string, 0, 4),
		inStack:      make(map[string]struct{}),
	}
}

// session carries the classes currently being resolved on the call stack.
type session struct {
	introspector introspect.Introspector
	opts         Options
	log          *zap.Logger
	stack        []string
	inStack      map[string]struct{}
}

func (s *session) push(class string) {
	s.stack = append(s.stack, class)
	s.inStack[class] = struct{}{}
}

func (s *session) pop(class string) {
	s.stack = s.stack[:len(s.stack)-1]
	delete(s.inStack, class)
}

func (s *session) buildClass(ctx context.Context, class string) ([]TypeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	class = strings.TrimSpace(class)
	if _, ok := s.inStack[class]; ok {
		path := strings.Join(append(append([]string(nil), s.stack...), class), " -> ")
		return nil, fmt.Errorf("%w: %s", ErrCyclicReference, path)
	}
	if len(s.stack) >= s.opts.MaxDepth {
		return nil, fmt.Errorf("%w: %q exceeds depth %d", ErrDepthExceeded, class, s.opts.MaxDepth)
	}

	fields, err := s.introspector.Fields(ctx, class)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &unreachableError{class: class, err: err}
	}

	s.log.Debug("resolving class",
		zap.String("class", class),
		zap.Int("depth", len(s.stack)),
		zap.Int("fields", len(fields)))

	s.push(class)
	defer s.pop(class)
	return s.buildFields(ctx, class, fields)
}

func (s *session) buildFields(ctx context.Context, class string, fields []introspect.Field) ([]TypeNode, error) {
	nodes := make([]TypeNode, 0, len(fields))
	var selfRefs []int
	for _, field := range fields {
		ann := s.annotationFor(field)
		node, err := s.makeNode(ctx, class, field.Name, ann)
		if err != nil {
			return nil, wrapFieldError(class, field.Name, err)
		}
		if node.IsSelfReference() || (node.Element != nil && node.Element.IsSelfReference()) {
			selfRefs = append(selfRefs, len(nodes))
		}
		nodes = append(nodes, node)
	}

	// Object fields wrap their own enclosing record, bound once every sibling
	// is known.
	if len(selfRefs) > 0 {
		snapshot := cloneNodes(nodes)
		for _, idx := range selfRefs {
			if nodes[idx].Element != nil {
				nodes[idx].Element.Children = cloneNodes(snapshot)
				continue
			}
			nodes[idx].Children = cloneNodes(snapshot)
		}
	}
	return nodes, nil
}

func (s *session) annotationFor(field introspect.Field) introspect.Annotation {
	var ann introspect.Annotation
	if field.Annotation != nil {
		ann = *field.Annotation
	} else {
		ann = annotation.Extract(field.Doc)
	}
	if !s.opts.KeepMarkup {
		ann.Description = annotation.Sanitize(ann.Description)
	}
	return ann
}

func (s *session) makeNode(ctx context.Context, class, name string, ann introspect.Annotation) (TypeNode, error) {
	res := ResolveAnnotation(ann)
	node := TypeNode{
		FieldName:     name,
		Optional:      ann.Optional,
		Documentation: ann.Description,
	}

	switch res.Strategy {
	case StrategyObject:
		node.Kind = KindObject
		node.DeclaredType = res.Token
		node.Ref = class
	case StrategyWrapper:
		typeName, nested, err := s.resolveWrapper(ctx, res.Token, ann)
		if err != nil {
			return TypeNode{}, err
		}
		node.Kind = KindObject
		node.DeclaredType = typeName
		if len(nested) > 0 {
			node.Children = []TypeNode{{
				DeclaredType: typeName,
				FieldName:    name,
				Optional:     ann.Optional,
				Kind:         KindObject,
				Children:     nested,
			}}
		}
	case StrategyArray:
		elem := TypeNode{
			DeclaredType: res.Token,
			FieldName:    name,
			Optional:     ann.Optional,
			Kind:         KindScalar,
		}
		switch res.Element {
		case StrategyWrapper:
			typeName, nested, err := s.resolveWrapper(ctx, res.Token, ann)
			if err != nil {
				return TypeNode{}, err
			}
			elem.DeclaredType = typeName
			elem.Kind = KindObject
			if len(nested) > 0 {
				elem.Children = nested
			}
		case StrategyObject:
			elem.Kind = KindObject
			elem.Ref = class
		}
		idx := s.opts.Counter.Next(name)
		node.Kind = KindArrayOf
		node.DeclaredType = elem.DeclaredType
		node.Element = &elem
		node.Occurrence = &idx
		s.log.Debug("assigned array occurrence",
			zap.String("class", class),
			zap.String("field", name),
			zap.Int("occurrence", idx))
	default:
		node.Kind = KindScalar
		node.DeclaredType = res.Token
	}

	s.log.Debug("resolved field",
		zap.String("class", class),
		zap.String("field", name),
		zap.String("strategy", string(res.Strategy)),
		zap.String("kind", string(node.Kind)))
	return node, nil
}

func (s *session) resolveWrapper(ctx context.Context, token string, ann introspect.Annotation) (string, []TypeNode, error) {
	if !IsComplex(token) {
		return "", nil, fmt.Errorf("%w: %q", ErrNotComplexType, token)
	}
	if !ann.HasClassName() {
		return "", nil, ErrMissingClassName
	}
	nested, err := s.buildClass(ctx, ann.ClassName)
	if err != nil {
		return "", nil, err
	}
	return StripNamespace(ann.ClassName), nested, nil
}
