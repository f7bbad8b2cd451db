package styles

import (
	"testing"

	"github.com/npillmayer/dcz/dcz/doctree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func styledefDoc(defs ...string) *doctree.Node {
	doc := doctree.NewNode(doctree.DocumentNode)
	for _, def := range defs {
		sd := doctree.NewNode(doctree.StyleDefNode)
		sd.Content = def
		doc.AppendChild(sd)
	}
	return doc
}

func TestAliasLastWriteWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.styles")
	defer teardown()
	//
	doc := styledefDoc("note = text-yellow-200\nwarn = text-red-500",
		"note = text-green-500 underline")
	am := ResolveAliases(doc)
	assert.Equal(t, 2, am.Len())
	classes, ok := am.Lookup("note")
	assert.True(t, ok)
	assert.Equal(t, "text-green-500 underline", classes)
	classes, ok = am.Lookup("warn")
	assert.True(t, ok)
	assert.Equal(t, "text-red-500", classes)
}

func TestAliasEntriesAreTrimmed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.styles")
	defer teardown()
	//
	am := ResolveAliases(styledefDoc("  note   =   big bold  \n\nnot an entry\n"))
	assert.Equal(t, 1, am.Len())
	classes, _ := am.Lookup("note")
	assert.Equal(t, "big bold", classes)
}

func TestLooksLikeCSS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.styles")
	defer teardown()
	//
	assert.True(t, LooksLikeCSS("color: red"))
	assert.True(t, LooksLikeCSS("color: red; font-weight: bold"))
	assert.True(t, LooksLikeCSS("width=10"))
	assert.False(t, LooksLikeCSS("text-green-500 underline"))
}

func TestNormalizeCSS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.styles")
	defer teardown()
	//
	assert.Equal(t, "color: red", NormalizeCSS("color:red"))
	assert.Equal(t, "color: red; font-weight: bold",
		NormalizeCSS("color: red;font-weight:bold;"))
	// not parseable as CSS, kept verbatim
	assert.Equal(t, "width=10", NormalizeCSS("width=10"))
}

func attrNode(kv ...string) *doctree.Node {
	n := doctree.NewNode(doctree.StyleNode)
	for i := 0; i+1 < len(kv); i += 2 {
		n.SetAttr(kv[i], kv[i+1])
	}
	return n
}

func TestResolveSpanStyleWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.styles")
	defer teardown()
	//
	sty := ResolveSpan(attrNode("style", "color: red", "class", "big"), nil)
	assert.Equal(t, "color: red", sty.CSS)
	assert.Equal(t, "", sty.Classes)
}

func TestResolveSpanClassAsCSS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.styles")
	defer teardown()
	//
	sty := ResolveSpan(attrNode("class", "color: red"), nil)
	assert.Equal(t, "color: red", sty.CSS)
	assert.Equal(t, "", sty.Classes)
	//
	sty = ResolveSpan(attrNode("class", "text-green-500 underline"), nil)
	assert.Equal(t, "", sty.CSS)
	assert.Equal(t, "text-green-500 underline", sty.Classes)
}

func TestResolveSpanJoinsCSSSources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.styles")
	defer teardown()
	//
	sty := ResolveSpan(attrNode("style", "color: red", "class", "font-weight: bold"), nil)
	assert.Equal(t, "color: red; font-weight: bold", sty.CSS)
}

func TestResolveSpanAliasLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.styles")
	defer teardown()
	//
	am := ResolveAliases(styledefDoc("note = text-green-500 underline"))
	sty := ResolveSpan(attrNode("name", "note"), am)
	assert.Equal(t, "text-green-500 underline", sty.Classes)
	//
	sty = ResolveSpan(attrNode("name", "nosuch"), am)
	assert.True(t, sty.IsZero())
}

func TestResolveSpanClassesAttrAccepted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.styles")
	defer teardown()
	//
	sty := ResolveSpan(attrNode("classes", "a  b"), nil)
	assert.Equal(t, "a b", sty.Classes)
}
