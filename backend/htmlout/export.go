package htmlout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/dcz/core"
	"github.com/npillmayer/dcz/dcz/doctree"
	"github.com/npillmayer/dcz/dcz/inline"
	"github.com/npillmayer/dcz/dcz/styles"
	"golang.org/x/net/html"
)

// UnknownPolicy decides what happens to unknown directives on export.
type UnknownPolicy int

const (
	// UnknownAsComment emits a neutral HTML comment placeholder.
	UnknownAsComment UnknownPolicy = iota
	// UnknownDrop omits unknown directives from the output.
	UnknownDrop
)

// Options controls HTML serialization.
type Options struct {
	Unknown UnknownPolicy
	// CoreCSS is emitted as the first <style> block of the head.
	CoreCSS string
	// ThemeCSS is emitted as the last <style> block of the head.
	ThemeCSS string
}

// Export walks a document tree and serializes it as a complete HTML
// document. Warnings stem from inline rewriting; the error is non-nil
// only for trees containing nodes no rule exists for.
func Export(doc *doctree.Node, opts Options) (string, []doctree.Warning, error) {
	if doc == nil || doc.Type != doctree.DocumentNode {
		return "", nil, core.Error(core.EINVALID, "export expects a document root node")
	}
	x := &exporter{opts: opts, aliases: styles.ResolveAliases(doc)}
	for _, child := range doc.Children {
		if err := x.emit(child); err != nil {
			return "", nil, err
		}
	}
	return x.assemble(), x.warnings, nil
}

type exporter struct {
	opts     Options
	aliases  *styles.AliasMap
	body     strings.Builder
	title    string
	metas    []string // <meta> elements in document order
	links    []string // <link> elements in document order
	userCSS  []string // <style> payloads in document order
	warnings []doctree.Warning
}

func (x *exporter) warnAt(node *doctree.Node) inline.WarnFunc {
	return func(msg string) {
		x.warnings = append(x.warnings, doctree.Warning{Pos: node.Pos, Msg: msg})
	}
}

func (x *exporter) prose(node *doctree.Node) string {
	return inline.Rewrite(node.Content, x.aliases, x.warnAt(node))
}

// emit serializes one node. The switch is exhaustive over the closed
// NodeType enum; a new node kind must get a rule here before it can
// appear in a tree.
func (x *exporter) emit(node *doctree.Node) error {
	switch node.Type {
	case doctree.DocumentNode:
		return core.Error(core.EINVALID, "nested document node at line %d", node.Pos.Line)
	case doctree.MetaNode:
		x.meta(node)
	case doctree.HeadingNode:
		x.heading(node)
	case doctree.ParagraphNode:
		fmt.Fprintf(&x.body, "<p>%s</p>\n", x.prose(node))
	case doctree.CodeNode:
		x.code(node)
	case doctree.MathNode:
		// raw pass-through for a downstream math renderer
		fmt.Fprintf(&x.body, "<div class=\"math\">%s</div>\n", node.Content)
	case doctree.MediaNode:
		x.media(node)
	case doctree.StyleNode:
		x.styleBlock(node)
	case doctree.StyleDefNode:
		// consumed by the alias resolver, no output
	case doctree.ImportNode:
		href := node.AttrOrZero("href")
		if href == "" {
			href = node.AttrOrZero("src")
		}
		x.links = append(x.links,
			fmt.Sprintf("<link rel=\"stylesheet\" href=\"%s\">", html.EscapeString(href)))
	case doctree.CssNode:
		x.userCSS = append(x.userCSS, node.Content)
	case doctree.UnknownNode:
		x.unknown(node)
	default:
		return core.Error(core.EINTERNAL, "no serialization rule for node type %d", node.Type)
	}
	for _, child := range node.Children {
		if err := x.emit(child); err != nil {
			return err
		}
	}
	return nil
}

func (x *exporter) meta(node *doctree.Node) {
	for _, key := range node.AttrKeys() {
		value := node.AttrOrZero(key)
		if key == "title" {
			x.title = value
			continue
		}
		x.metas = append(x.metas,
			fmt.Sprintf("<meta name=\"%s\" content=\"%s\">",
				html.EscapeString(key), html.EscapeString(value)))
	}
}

func (x *exporter) heading(node *doctree.Node) {
	level, err := strconv.Atoi(node.AttrOrZero("level"))
	if err != nil || level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	id := node.AttrOrZero("id")
	if id != "" {
		fmt.Fprintf(&x.body, "<h%d id=\"%s\">%s</h%d>\n", level,
			html.EscapeString(id), x.prose(node), level)
		return
	}
	fmt.Fprintf(&x.body, "<h%d>%s</h%d>\n", level, x.prose(node), level)
}

func (x *exporter) code(node *doctree.Node) {
	lang := node.AttrOrZero("lang")
	class := ""
	if lang != "" {
		class = fmt.Sprintf(" class=\"language-%s\"", html.EscapeString(lang))
	}
	fmt.Fprintf(&x.body, "<pre><code%s>%s</code></pre>\n", class,
		html.EscapeString(node.Content))
}

func (x *exporter) media(node *doctree.Node) {
	var attrs strings.Builder
	for _, key := range node.AttrKeys() {
		fmt.Fprintf(&attrs, " %s=\"%s\"",
			html.EscapeString(key), html.EscapeString(node.AttrOrZero(key)))
	}
	fmt.Fprintf(&x.body, "<img%s/>\n", attrs.String())
}

func (x *exporter) styleBlock(node *doctree.Node) {
	sty := styles.ResolveSpan(node, x.aliases)
	var tag strings.Builder
	tag.WriteString("<div")
	if sty.Classes != "" {
		tag.WriteString(fmt.Sprintf(" class=\"%s\"", html.EscapeString(sty.Classes)))
	}
	if sty.CSS != "" {
		tag.WriteString(fmt.Sprintf(" style=\"%s\"", html.EscapeString(sty.CSS)))
	}
	tag.WriteString(">")
	x.body.WriteString(tag.String())
	x.body.WriteString(inline.Rewrite(node.Content, x.aliases, x.warnAt(node)))
	x.body.WriteString("</div>\n")
}

func (x *exporter) unknown(node *doctree.Node) {
	if x.opts.Unknown == UnknownDrop {
		tracer().Debugf("dropping unknown directive '@%s'", node.Name)
		return
	}
	// neutral placeholder; comments preserved in debug mode land here too
	text := node.Name
	if node.Content != "" {
		text += " " + node.Content
	}
	fmt.Fprintf(&x.body, "<!-- %s -->\n", strings.ReplaceAll(text, "--", "- -"))
}

// assemble builds the final document: head first (meta, title, links,
// styles in the documented order), then the body.
func (x *exporter) assemble() string {
	var out strings.Builder
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	out.WriteString("<meta charset=\"utf-8\">\n")
	if x.title != "" {
		fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(x.title))
	}
	for _, m := range x.metas {
		out.WriteString(m)
		out.WriteString("\n")
	}
	for _, l := range x.links {
		out.WriteString(l)
		out.WriteString("\n")
	}
	if x.opts.CoreCSS != "" {
		fmt.Fprintf(&out, "<style>\n%s\n</style>\n", x.opts.CoreCSS)
	}
	for _, css := range x.userCSS {
		fmt.Fprintf(&out, "<style>\n%s\n</style>\n", css)
	}
	if x.opts.ThemeCSS != "" {
		fmt.Fprintf(&out, "<style>\n%s\n</style>\n", x.opts.ThemeCSS)
	}
	out.WriteString("</head>\n<body>\n")
	out.WriteString(x.body.String())
	out.WriteString("</body>\n</html>\n")
	return out.String()
}
