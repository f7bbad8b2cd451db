package styles

import (
	"strings"

	cssparser "github.com/aymerick/douceur/parser"
)

// Styling is the resolved presentation of a style span: either a class
// list, inline CSS, or both (joined from several sources).
type Styling struct {
	Classes string // value for a 'class' attribute
	CSS     string // value for a 'style' attribute
}

// IsZero tells whether no styling was resolved at all.
func (sty Styling) IsZero() bool {
	return sty.Classes == "" && sty.CSS == ""
}

// LooksLikeCSS applies the authoring heuristic deciding whether a class
// value is really inline CSS: any of ':', ';' or '=' disqualifies it as
// a class list.
func LooksLikeCSS(value string) bool {
	return strings.ContainsAny(value, ":;=")
}

// NormalizeCSS reparses an inline CSS string and reassembles it as
// 'prop: value' declarations joined by "; ". Input that does not parse
// as CSS declarations is returned unchanged; the heuristic is syntactic
// and must not drop what the author wrote.
func NormalizeCSS(value string) string {
	decls, err := cssparser.ParseDeclarations(value)
	if err != nil || len(decls) == 0 {
		tracer().Debugf("inline CSS not parseable, kept verbatim: %q", value)
		return strings.TrimSpace(value)
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		v := d.Value
		if d.Important {
			v += " !important"
		}
		parts = append(parts, d.Property+": "+v)
	}
	return strings.Join(parts, "; ")
}

// Attrs is the attribute view a span resolver needs; doctree nodes and
// the inline engine's parsed spans both satisfy it.
type Attrs interface {
	Attr(key string) (string, bool)
}

// ResolveSpan resolves span styling with the documented precedence: an
// explicit 'style' attribute wins; else 'class'/'classes' is used unless
// its value looks like inline CSS; else a 'name' attribute is looked up
// in the alias map. All applying CSS sources are joined with "; ".
func ResolveSpan(attrs Attrs, aliases *AliasMap) Styling {
	var cssParts []string
	var classes string

	if v, ok := attrs.Attr("style"); ok && strings.TrimSpace(v) != "" {
		cssParts = append(cssParts, NormalizeCSS(v))
	}
	classVal, haveClass := attrs.Attr("class")
	if !haveClass {
		classVal, haveClass = attrs.Attr("classes")
	}
	if haveClass && strings.TrimSpace(classVal) != "" {
		if LooksLikeCSS(classVal) {
			cssParts = append(cssParts, NormalizeCSS(classVal))
		} else if len(cssParts) == 0 { // an explicit style attribute wins
			classes = strings.Join(strings.Fields(classVal), " ")
		}
	}
	if classes == "" && len(cssParts) == 0 {
		if name, ok := attrs.Attr("name"); ok {
			if resolved, found := aliases.Lookup(strings.TrimSpace(name)); found {
				if LooksLikeCSS(resolved) {
					cssParts = append(cssParts, NormalizeCSS(resolved))
				} else {
					classes = resolved
				}
			} else {
				tracer().Infof("style alias %q not defined", name)
			}
		}
	}
	return Styling{
		Classes: classes,
		CSS:     strings.Join(cssParts, "; "),
	}
}
