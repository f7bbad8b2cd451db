package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/dcz/core"
	"github.com/npillmayer/dcz/dcz/doctree"
	"github.com/npillmayer/dcz/dcz/scan"
)

// Options controls parser behavior.
type Options struct {
	// Strict makes unclosed blocks and stray terminators fatal. The
	// default (lenient) mode auto-closes and warns, which suits live
	// authoring.
	Strict bool
	// KeepComments preserves comment lines as unknown nodes so that a
	// debug exporter can show them. By default comments are dropped.
	KeepComments bool
	// Registry overrides the built-in directive registry.
	Registry *Registry
}

// ParseError is a structural parse error. It carries the source position
// of the offending token and the names of the blocks still open at that
// point, innermost last.
type ParseError struct {
	Pos        doctree.Position
	OpenBlocks []string
	Msg        string
}

func (e *ParseError) Error() string {
	if len(e.OpenBlocks) == 0 {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s (open blocks: %s)", e.Pos.Line, e.Pos.Col, e.Msg,
		strings.Join(e.OpenBlocks, ", "))
}

// Parse consumes a token stream and builds a document tree. Warnings are
// returned for every recoverable condition; the error is non-nil only
// for structural failures, in which case no document is returned.
func Parse(tokens []scan.Token, opts Options) (*doctree.Node, []doctree.Warning, error) {
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}
	p := &parser{toks: tokens, opts: opts, reg: reg}
	return p.run()
}

// openBlock is one entry of the parser's block stack.
type openBlock struct {
	node    *doctree.Node
	lines   []string // accumulated content lines
	curLine int      // source line the last fragment came from
}

type parser struct {
	toks     []scan.Token
	i        int
	opts     Options
	reg      *Registry
	doc      *doctree.Node
	stack    []*openBlock
	warnings []doctree.Warning

	// implicit paragraph accumulation
	para     []string
	paraLine int // source line of the last paragraph fragment
	paraPos  doctree.Position

	voidLine int // line of the last void directive, to swallow its '@end'
}

func (p *parser) warn(pos doctree.Position, format string, v ...interface{}) {
	w := doctree.Warning{Pos: pos, Msg: fmt.Sprintf(format, v...)}
	tracer().Infof("parse warning at %s", w)
	p.warnings = append(p.warnings, w)
}

func pos(t scan.Token) doctree.Position {
	return doctree.Position{Line: t.Line, Col: t.Col}
}

func (p *parser) top() *openBlock {
	return p.stack[len(p.stack)-1]
}

func (p *parser) openNames() []string {
	var names []string
	for _, b := range p.stack[1:] { // element 0 is the document itself
		names = append(names, b.node.Name)
	}
	return names
}

func (p *parser) run() (*doctree.Node, []doctree.Warning, error) {
	p.doc = doctree.NewNode(doctree.DocumentNode)
	p.stack = []*openBlock{{node: p.doc}}
	p.voidLine = -1

	for ; p.i < len(p.toks); p.i++ {
		t := p.toks[p.i]
		switch t.Type {
		case scan.EOF:
			// handled after the loop
		case scan.Directive:
			p.flushPara()
			p.directive(t)
		case scan.Content:
			p.content(t)
		case scan.Escape:
			p.fragment(t.Lexeme, t.Line, pos(t))
		case scan.BlockEnd:
			if err := p.blockEnd(t); err != nil {
				return nil, nil, err
			}
		case scan.Comment:
			if p.opts.KeepComments {
				n := doctree.NewUnknown("comment")
				n.Content = t.Lexeme
				n.Pos = pos(t)
				p.flushPara()
				p.top().node.AppendChild(n)
			}
		default:
			// parameter tokens outside a directive head
			p.warn(pos(t), "unexpected %s token", t.Type)
		}
	}

	p.flushPara()
	if len(p.stack) > 1 {
		last := p.toks[len(p.toks)-1]
		if p.opts.Strict {
			err := &ParseError{Pos: pos(last), OpenBlocks: p.openNames(),
				Msg: "document ends with unclosed blocks"}
			return nil, nil, core.WrapError(err, core.EUNCLOSED, "unclosed '@%s'",
				p.top().node.Name)
		}
		for len(p.stack) > 1 {
			p.warn(p.top().node.Pos, "block '@%s' auto-closed at end of document",
				p.top().node.Name)
			p.closeTop()
		}
	}
	return p.doc, p.warnings, nil
}

// directive handles a Directive token plus its parameter tokens.
func (p *parser) directive(t scan.Token) {
	info, known := p.reg.Resolve(t.Lexeme)
	var node *doctree.Node
	if known {
		node = doctree.NewNode(info.Type)
	} else {
		node = doctree.NewUnknown(t.Lexeme)
		if sugg := p.reg.Suggest(t.Lexeme); len(sugg) > 0 {
			p.warn(pos(t), "unknown directive '@%s' (did you mean %s?), preserved as-is",
				t.Lexeme, strings.Join(sugg, ", "))
		} else {
			p.warn(pos(t), "unknown directive '@%s', preserved as-is", t.Lexeme)
		}
	}
	node.Pos = pos(t)
	p.params(node)
	if node.Type == doctree.HeadingNode {
		p.checkHeadingLevel(node)
	}

	if known && info.Void {
		p.top().node.AppendChild(node)
		p.voidLine = t.Line
		return
	}
	p.stack = append(p.stack, &openBlock{node: node})
}

// params consumes a ParamOpen…ParamClose group following a directive, if
// present, into the node's attributes. Duplicate keys follow
// last-write-wins.
func (p *parser) params(node *doctree.Node) {
	if p.i+1 >= len(p.toks) || p.toks[p.i+1].Type != scan.ParamOpen {
		return
	}
	p.i++ // ParamOpen
	for p.i+1 < len(p.toks) {
		t := p.toks[p.i+1]
		switch t.Type {
		case scan.ParamKey:
			key := t.Lexeme
			value := ""
			p.i++
			if p.i+1 < len(p.toks) && p.toks[p.i+1].Type == scan.ParamValue {
				value = p.toks[p.i+1].Lexeme
				p.i++
			}
			node.SetAttr(key, value)
		case scan.ParamClose:
			p.i++
			return
		default:
			return // malformed list was cut short by the scanner
		}
	}
}

func (p *parser) checkHeadingLevel(node *doctree.Node) {
	v, ok := node.Attr("level")
	if !ok {
		node.SetAttr("level", "1")
		return
	}
	level, err := strconv.Atoi(v)
	if err != nil || level < 1 || level > 6 {
		p.warn(node.Pos, "heading level %q outside 1..6", v)
		if !p.opts.Strict {
			if err != nil || level < 1 {
				level = 1
			} else if level > 6 {
				level = 6
			}
			node.SetAttr("level", strconv.Itoa(level))
		}
	}
}

// content routes a Content token: blank lines flush the implicit
// paragraph, text lines accumulate into the innermost open block or into
// the implicit paragraph at document level.
func (p *parser) content(t scan.Token) {
	if t.Lexeme == "" { // blank line
		if len(p.stack) == 1 {
			p.flushPara()
		} else {
			b := p.top()
			b.lines = append(b.lines, "")
			b.curLine = 0
		}
		return
	}
	p.fragment(t.Lexeme, t.Line, pos(t))
}

// fragment appends a piece of text. Fragments from the same source line
// are glued together (the scanner splits lines at '@@' escapes), new
// lines are kept apart.
func (p *parser) fragment(text string, line int, at doctree.Position) {
	if len(p.stack) > 1 {
		b := p.top()
		if b.curLine == line && len(b.lines) > 0 {
			b.lines[len(b.lines)-1] += text
		} else {
			b.lines = append(b.lines, text)
			b.curLine = line
		}
		return
	}
	if len(p.para) == 0 {
		p.paraPos = at
	}
	if p.paraLine == line && len(p.para) > 0 {
		p.para[len(p.para)-1] += text
	} else {
		p.para = append(p.para, text)
		p.paraLine = line
	}
}

// flushPara turns accumulated stray text into a paragraph node.
func (p *parser) flushPara() {
	if len(p.para) == 0 {
		return
	}
	node := doctree.NewNode(doctree.ParagraphNode)
	node.Content = strings.Join(p.para, "\n")
	node.Pos = p.paraPos
	p.top().node.AppendChild(node)
	p.para = nil
	p.paraLine = 0
}

func (p *parser) blockEnd(t scan.Token) error {
	if t.Line == p.voidLine {
		// '@end' on the same line as a void directive; already closed
		p.voidLine = -1
		return nil
	}
	p.flushPara()
	if len(p.stack) == 1 {
		if p.opts.Strict {
			err := &ParseError{Pos: pos(t), Msg: "'@end' without an open block"}
			return core.WrapError(err, core.EUNCLOSED, "stray '@end' at line %d", t.Line)
		}
		p.warn(pos(t), "'@end' without an open block, ignored")
		return nil
	}
	p.closeTop()
	return nil
}

// closeTop finalizes the innermost open block and attaches it to its
// parent. Trailing blank lines are dropped from the content.
func (p *parser) closeTop() {
	b := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	lines := b.lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if b.node.Content == "" {
		b.node.Content = strings.Join(lines, "\n")
	}
	p.top().node.AppendChild(b.node)
	tracer().Debugf("closed block '@%s' with %d content lines", b.node.Name, len(lines))
}
