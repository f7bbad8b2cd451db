package htmlout

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/dcz/dcz/parse"
	"github.com/npillmayer/dcz/dcz/scan"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func export(t *testing.T, src string, opts Options) string {
	tokens, err := scan.Scan([]byte(src))
	assert.NoError(t, err)
	doc, _, err := parse.Parse(tokens, parse.Options{})
	assert.NoError(t, err)
	out, _, err := Export(doc, opts)
	assert.NoError(t, err)
	return out
}

func domOf(t *testing.T, out string) *html.Node {
	dom, err := html.Parse(strings.NewReader(out))
	assert.NoError(t, err)
	return dom
}

func text(n *html.Node) string {
	var sb strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return sb.String()
}

const sampleDoc = `@meta(title="Test Doc", author=npi)
@import(href=theme.css)

# Welcome

A paragraph with a [link](https://example.org) and ` + "`code`" + ` in it.

@code(lang=go)
fmt.Println("hi")
@end

@styledef
note = text-green-500 underline
@end

Some @(name="note"){highlighted} text.

@css
body { margin: 0; }
@end
`

func TestExportDocumentStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	out := export(t, sampleDoc, Options{})
	dom := domOf(t, out)
	//
	titles := cascadia.MustCompile("title").MatchAll(dom)
	assert.Len(t, titles, 1)
	assert.Equal(t, "Test Doc", text(titles[0]))
	//
	assert.Len(t, cascadia.MustCompile("h1").MatchAll(dom), 1)
	assert.Equal(t, "Welcome", text(cascadia.MustCompile("h1").MatchFirst(dom)))
	//
	links := cascadia.MustCompile(`a[href="https://example.org"]`).MatchAll(dom)
	assert.Len(t, links, 1)
	assert.Equal(t, "link", text(links[0]))
	//
	code := cascadia.MustCompile("pre > code.language-go").MatchFirst(dom)
	assert.NotNil(t, code)
	assert.Equal(t, "fmt.Println(\"hi\")", text(code))
	//
	spans := cascadia.MustCompile("span.text-green-500").MatchAll(dom)
	assert.Len(t, spans, 1)
	assert.Equal(t, "highlighted", text(spans[0]))
	//
	sheets := cascadia.MustCompile(`link[rel="stylesheet"][href="theme.css"]`).MatchAll(dom)
	assert.Len(t, sheets, 1)
	assert.Contains(t, out, "body { margin: 0; }")
	//
	metas := cascadia.MustCompile(`meta[name="author"][content="npi"]`).MatchAll(dom)
	assert.Len(t, metas, 1)
}

func TestExportDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	first := export(t, sampleDoc, Options{})
	second := export(t, sampleDoc, Options{})
	assert.Equal(t, first, second)
}

func TestExportShorthandExplicitSameOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	short := export(t, "# Title\n", Options{})
	explicit := export(t, "@heading(level=1) Title @end\n", Options{})
	assert.Equal(t, explicit, short)
}

func TestExportClassAsCSSHeuristic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	out := export(t, "x @(class=\"color: red\"){hot} y\n", Options{})
	assert.Contains(t, out, `style="color: red"`)
	assert.NotContains(t, out, `class="color`)
	//
	out = export(t, "x @(class=\"text-green-500 underline\"){ok} y\n", Options{})
	assert.Contains(t, out, `class="text-green-500 underline"`)
}

func TestExportAliasLastWriteWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	src := "@styledef\nnote = first\n@end\n@styledef\nnote = second\n@end\n" +
		"@(name=\"note\"){x}\n"
	out := export(t, src, Options{})
	assert.Contains(t, out, `<span class="second">x</span>`)
}

func TestExportEscapeFidelity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	out := export(t, "Contact @@support@example.com\n", Options{})
	assert.Contains(t, out, "@support@example.com")
}

func TestExportMathVerbatim(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	out := export(t, "The formula $E = mc^2$ holds.\n", Options{})
	assert.Contains(t, out, "$E = mc^2$")
	//
	out = export(t, "@math\n\\frac{a}{b} < 1\n@end\n", Options{})
	assert.Contains(t, out, `<div class="math">\frac{a}{b} < 1</div>`)
}

func TestExportFenceExcludesTerminator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	out := export(t, "@code(lang=sh)\necho not @end here\ndone\n@end\n", Options{})
	dom := domOf(t, out)
	code := cascadia.MustCompile("pre > code").MatchFirst(dom)
	assert.NotNil(t, code)
	assert.Equal(t, "echo not @end here\ndone", text(code))
}

func TestExportUnknownPolicy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	out := export(t, "@widget(id=w1) body @end\n", Options{})
	assert.Contains(t, out, "<!-- widget body -->")
	//
	out = export(t, "@widget(id=w1) body @end\n", Options{Unknown: UnknownDrop})
	assert.NotContains(t, out, "widget")
}

func TestExportStylesheetOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	src := "@css\n.user { color: blue; }\n@end\n"
	out := export(t, src, Options{CoreCSS: ".core {}", ThemeCSS: ".theme {}"})
	core := strings.Index(out, ".core {}")
	user := strings.Index(out, ".user { color: blue; }")
	theme := strings.Index(out, ".theme {}")
	assert.True(t, core >= 0 && user >= 0 && theme >= 0)
	assert.Less(t, core, user)
	assert.Less(t, user, theme)
}

func TestExportMedia(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.export")
	defer teardown()
	//
	out := export(t, "@media(src=pic.png, alt=\"a pic\")\n", Options{})
	dom := domOf(t, out)
	imgs := cascadia.MustCompile(`img[src="pic.png"][alt="a pic"]`).MatchAll(dom)
	assert.Len(t, imgs, 1)
}
