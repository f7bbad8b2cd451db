/*
Package xpathadapter implements an xpath.NodeNavigator.

We use this library for XPath queries:

	github.com/antchfx/xpath

Package xpathadapter implements an adapter to enable antchfx/xpath to
access a dcz document tree, where nodes are of type doctree.Node. Node
names visible to XPath expressions are the canonical directive names
("heading", "paragraph", "styledef", …), attributes are the directive
attributes in authoring order.

For a description of the various methods of interface xpath.NodeNavigator
please refer to the documentation of antchfx/xpath. It is not replicated here.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package xpathadapter

import (
	"errors"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/dcz/dcz/doctree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dcz.tree'.
func tracer() tracing.Trace {
	return tracing.Select("dcz.tree")
}

// NodeNavigator navigates a document tree for XPath evaluation.
type NodeNavigator struct {
	root, current *doctree.Node
	attr          int // attributes index, -1 = positioned on the element
}

// NewNavigator creates a new xpath.NodeNavigator for a document tree.
func NewNavigator(node *doctree.Node) *NodeNavigator {
	return &NodeNavigator{
		current: node,
		root:    node,
		attr:    -1,
	}
}

// CurrentNode extracts the document node a navigator is positioned on.
func CurrentNode(nav xpath.NodeNavigator) (*doctree.Node, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type xpathadapter.NodeNavigator")
	}
	return mynav.current, nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	if nav.current.Type == doctree.DocumentNode {
		return xpath.RootNode
	}
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.current.AttrKeys()[nav.attr]
	}
	return nav.current.Name
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	if nav.attr != -1 {
		key := nav.current.AttrKeys()[nav.attr]
		return nav.current.AttrOrZero(key)
	}
	return nav.current.InnerText()
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if nav.current == nav.root {
		return false
	}
	parent := nav.current.Parent()
	if parent == nil {
		return false
	}
	nav.current = parent
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.attr >= nav.current.AttrCount()-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	child, ok := nav.current.Child(0)
	if ok {
		nav.current = child
	}
	return ok
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 {
		return false
	}
	parent := nav.current.Parent()
	if parent == nil {
		return false
	}
	child, ok := parent.Child(0)
	if ok {
		nav.current = child
	}
	return ok
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 {
		return false
	}
	parent := nav.current.Parent()
	if parent == nil {
		return false
	}
	i := parent.IndexOfChild(nav.current)
	if i < 0 {
		tracer().Errorf("xpath: node is not a child of its parent")
		return false
	}
	child, ok := parent.Child(i + 1)
	if ok {
		nav.current = child
	}
	return ok
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 {
		return false
	}
	parent := nav.current.Parent()
	if parent == nil {
		return false
	}
	i := parent.IndexOfChild(nav.current)
	if i <= 0 {
		return false
	}
	child, ok := parent.Child(i - 1)
	if ok {
		nav.current = child
	}
	return ok
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.attr = n.attr
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// Query evaluates an XPath expression against a document tree and
// returns the matching nodes in document order.
func Query(root *doctree.Node, expr string) ([]*doctree.Node, error) {
	xp, err := xpath.Compile(expr)
	if err != nil {
		return nil, err
	}
	iter := xp.Select(NewNavigator(root))
	var nodes []*doctree.Node
	for iter.MoveNext() {
		node, err := CurrentNode(iter.Current())
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
