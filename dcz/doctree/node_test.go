package doctree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestAttributesKeepInsertionOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.tree")
	defer teardown()
	//
	n := NewNode(MediaNode)
	n.SetAttr("src", "a.png")
	n.SetAttr("alt", "a picture")
	n.SetAttr("width", "10")
	assert.Equal(t, []string{"src", "alt", "width"}, n.AttrKeys())
}

func TestAttributesLastWriteWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.tree")
	defer teardown()
	//
	n := NewNode(MediaNode)
	n.SetAttr("src", "a.png")
	n.SetAttr("src", "b.png")
	v, ok := n.Attr("src")
	assert.True(t, ok)
	assert.Equal(t, "b.png", v)
	assert.Equal(t, 1, n.AttrCount())
}

func TestWalkIsDocumentOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.tree")
	defer teardown()
	//
	doc := NewNode(DocumentNode)
	h := NewNode(HeadingNode)
	p1 := NewNode(ParagraphNode)
	p2 := NewNode(ParagraphNode)
	style := NewNode(StyleNode)
	style.AppendChild(p2)
	doc.AppendChild(h)
	doc.AppendChild(p1)
	doc.AppendChild(style)
	//
	var visited []NodeType
	doc.Walk(func(n *Node) bool {
		visited = append(visited, n.Type)
		return true
	})
	assert.Equal(t, []NodeType{DocumentNode, HeadingNode, ParagraphNode, StyleNode,
		ParagraphNode}, visited)
	assert.Equal(t, doc, style.Parent())
	assert.Equal(t, 0, doc.IndexOfChild(h))
	assert.Equal(t, 2, doc.IndexOfChild(style))
}

func TestInnerText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.tree")
	defer teardown()
	//
	style := NewNode(StyleNode)
	p := NewNode(ParagraphNode)
	p.Content = "hello"
	style.AppendChild(p)
	assert.Equal(t, "hello", style.InnerText())
}
