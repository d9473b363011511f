package typetree

// Kind classifies a TypeNode.
type Kind string

const (
	KindScalar  Kind = "scalar"
	KindObject  Kind = "object"
	KindArrayOf Kind = "arrayOf"
	// KindWrapper is part of the descriptor vocabulary but never emitted by
	// Builder; wrapper references resolve to nested object nodes.
	KindWrapper Kind = "wrapper"
)

// TypeNode is the resolved descriptor of a single wrapper class field. Nodes
// are built once per Build call and never mutated afterwards.
type TypeNode struct {
	DeclaredType string `json:"declaredType" yaml:"declaredType"`
	FieldName    string `json:"fieldName" yaml:"fieldName"`
	Optional     bool   `json:"optional" yaml:"optional"`
	Kind         Kind   `json:"kind" yaml:"kind"`
	// Children is only set on object and wrapper nodes.
	Children []TypeNode `json:"children,omitempty" yaml:"children,omitempty"`
	// Element describes array contents and is only set on arrayOf nodes.
	Element *TypeNode `json:"elementType,omitempty" yaml:"elementType,omitempty"`
	// Occurrence is only set on arrayOf nodes; see OccurrenceIndex.
	Occurrence *int `json:"occurrenceIndex,omitempty" yaml:"occurrenceIndex,omitempty"`
	// Ref names the enclosing class when an object field refers to its own
	// record. Children then hold a one level snapshot of that record.
	Ref           string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// OccurrenceIndex returns the array occurrence index and whether the node
// carries one.
func (n TypeNode) OccurrenceIndex() (int, bool) {
	if n.Occurrence == nil {
		return 0, false
	}
	return *n.Occurrence, true
}

// IsSelfReference reports whether the node wraps its own enclosing record.
func (n TypeNode) IsSelfReference() bool {
	return n.Ref != ""
}

// Descriptor is the ordered node list produced for one wrapper class.
type Descriptor struct {
	// Class is the identifier the descriptor was built from.
	Class string `json:"class" yaml:"class"`
	// Name is Class without any namespace qualifier.
	Name  string     `json:"name" yaml:"name"`
	Nodes []TypeNode `json:"nodes" yaml:"nodes"`
}

// Field returns the node for the named field.
func (d Descriptor) Field(name string) (TypeNode, bool) {
	for _, node := range d.Nodes {
		if node.FieldName == name {
			return node, true
		}
	}
	return TypeNode{}, false
}

// Walk visits every node depth first, children before array elements, passing
// the dotted field path. Returning false from fn skips the node's subtree.
func (d Descriptor) Walk(fn func(path string, node TypeNode) bool) {
	for _, node := range d.Nodes {
		walkNode("", node, fn)
	}
}

func walkNode(prefix string, node TypeNode, fn func(string, TypeNode) bool) {
	path := node.FieldName
	if prefix != "" {
		path = prefix + "." + path
	}
	if !fn(path, node) {
		return
	}
	for _, child := range node.Children {
		walkNode(path, child, fn)
	}
	if node.Element != nil {
		walkNode(path, *node.Element, fn)
	}
}

func cloneNodes(nodes []TypeNode) []TypeNode {
	if nodes == nil {
		return nil
	}
	out := make([]TypeNode, len(nodes))
	for i, node := range nodes {
		out[i] = cloneNode(node)
	}
	return out
}

func cloneNode(node TypeNode) TypeNode {
	node.Children = cloneNodes(node.Children)
	if node.Element != nil {
		elem := cloneNode(*node.Element)
		node.Element = &elem
	}
	if node.Occurrence != nil {
		idx := *node.Occurrence
		node.Occurrence = &idx
	}
	return node
}
