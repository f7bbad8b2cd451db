package doctree

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// NodeType enumerates the kinds of nodes a document tree may contain.
// The enum is closed: exporters switch exhaustively over it.
type NodeType int

const (
	DocumentNode NodeType = iota
	MetaNode
	HeadingNode
	ParagraphNode
	CodeNode
	MathNode
	MediaNode
	StyleNode
	StyleDefNode
	ImportNode
	CssNode
	UnknownNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "document"
	case MetaNode:
		return "meta"
	case HeadingNode:
		return "heading"
	case ParagraphNode:
		return "paragraph"
	case CodeNode:
		return "code"
	case MathNode:
		return "math"
	case MediaNode:
		return "media"
	case StyleNode:
		return "style"
	case StyleDefNode:
		return "styledef"
	case ImportNode:
		return "import"
	case CssNode:
		return "css"
	case UnknownNode:
		return "unknown"
	}
	return "invalid"
}

// Position is a source location, 1-based line and 0-based column.
type Position struct {
	Line int
	Col  int
}

// Node is a single node of the document tree.
//
// Attributes preserve insertion order and are unique per key; setting a
// key twice keeps the position of the first write but the value of the
// last. Content carries the raw text payload for leaf-ish nodes (code,
// math, paragraphs before inline rewriting).
type Node struct {
	Type     NodeType
	Name     string // directive name as authored; canonical for known types
	Content  string
	Children []*Node
	Pos      Position

	attrs  *linkedhashmap.Map
	parent *Node
}

// NewNode creates a node of the given type. The node name defaults to
// the canonical name of the type.
func NewNode(t NodeType) *Node {
	return &Node{
		Type: t,
		Name: t.String(),
	}
}

// NewUnknown creates an UnknownNode preserving the raw directive name.
func NewUnknown(name string) *Node {
	n := NewNode(UnknownNode)
	n.Name = name
	return n
}

// SetAttr sets an attribute. Duplicate keys within one node follow
// last-write-wins; the key keeps its original position.
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = linkedhashmap.New()
	}
	n.attrs.Put(key, value)
}

// Attr returns the value of an attribute, with a flag telling whether
// the attribute is present at all.
func (n *Node) Attr(key string) (string, bool) {
	if n.attrs == nil {
		return "", false
	}
	v, ok := n.attrs.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// AttrOrZero returns the value of an attribute, or "" if unset.
func (n *Node) AttrOrZero(key string) string {
	v, _ := n.Attr(key)
	return v
}

// AttrKeys returns the attribute keys in insertion order.
func (n *Node) AttrKeys() []string {
	if n.attrs == nil {
		return nil
	}
	raw := n.attrs.Keys()
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = k.(string)
	}
	return keys
}

// AttrCount returns the number of attributes.
func (n *Node) AttrCount() int {
	if n.attrs == nil {
		return 0
	}
	return n.attrs.Size()
}

// AppendChild appends child at the end of n's child list and links its
// parent pointer. Appending nil is a no-op.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	if child.parent != nil {
		tracer().Errorf("doctree: node %v appended to a second parent", child.Type)
	}
	child.parent = n
	n.Children = append(n.Children, child)
}

// Parent returns the parent node, nil for the document root.
func (n *Node) Parent() *Node {
	return n.parent
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}

// Child returns the child at position i, with a flag signalling a valid
// index.
func (n *Node) Child(i int) (*Node, bool) {
	if i < 0 || i >= len(n.Children) {
		return nil, false
	}
	return n.Children[i], true
}

// IndexOfChild returns the position of child within n, or -1.
func (n *Node) IndexOfChild(child *Node) int {
	for i, ch := range n.Children {
		if ch == child {
			return i
		}
	}
	return -1
}

// Walk visits n and its descendants depth-first in document order.
// If visit returns false the walk stops altogether.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, ch := range n.Children {
		if !ch.Walk(visit) {
			return false
		}
	}
	return true
}

// InnerText returns the concatenated content of n and all descendants,
// in document order.
func (n *Node) InnerText() string {
	var sb strings.Builder
	n.Walk(func(node *Node) bool {
		sb.WriteString(node.Content)
		return true
	})
	return sb.String()
}
