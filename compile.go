package dcz

import (
	"github.com/npillmayer/dcz/backend/htmlout"
	"github.com/npillmayer/dcz/dcz/doctree"
	"github.com/npillmayer/dcz/dcz/parse"
	"github.com/npillmayer/dcz/dcz/scan"
)

// Options configures one compile. The zero value is the lenient
// authoring mode with unknown directives kept as placeholders.
type Options struct {
	// Strict makes unclosed blocks fatal instead of auto-closing them.
	Strict bool
	// KeepComments preserves comment lines in the output (debug mode).
	KeepComments bool
	// DropUnknown omits unknown directives from the output instead of
	// emitting placeholder comments.
	DropUnknown bool
	// CoreCSS and ThemeCSS frame the user's style blocks in the head.
	CoreCSS  string
	ThemeCSS string
}

// Result is the outcome of a successful (possibly degraded) compile.
type Result struct {
	HTML     string
	Document *doctree.Node
	Warnings []doctree.Warning
}

// Compile runs the full pipeline on one document: tokenize, parse,
// resolve style aliases, export HTML. It is a pure function of its
// input; concurrent compiles share no state.
//
// Structural errors (a stuck scanner, an unclosed block in strict mode)
// abort the compile and return no result. Everything else degrades to
// warnings on a complete document.
func Compile(src []byte, opts Options) (*Result, error) {
	tokens, err := scan.Scan(src)
	if err != nil {
		return nil, err
	}
	doc, warnings, err := parse.Parse(tokens, parse.Options{
		Strict:       opts.Strict,
		KeepComments: opts.KeepComments,
	})
	if err != nil {
		return nil, err
	}
	xopts := htmlout.Options{CoreCSS: opts.CoreCSS, ThemeCSS: opts.ThemeCSS}
	if opts.DropUnknown {
		xopts.Unknown = htmlout.UnknownDrop
	}
	html, xwarn, err := htmlout.Export(doc, xopts)
	if err != nil {
		return nil, err
	}
	return &Result{
		HTML:     html,
		Document: doc,
		Warnings: append(warnings, xwarn...),
	}, nil
}
