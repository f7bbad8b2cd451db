package inline

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/dcz/dcz/styles"
	"golang.org/x/net/html"
)

// WarnFunc receives a message for every recoverable oddity, e.g. a
// malformed style span. May be nil.
type WarnFunc func(msg string)

// Rewrite transforms inline markup within prose text into HTML. Body
// text is escaped for HTML on the way; the output of raw-preserving
// passes (code spans, math) is not escaped twice.
func Rewrite(text string, aliases *styles.AliasMap, warn WarnFunc) string {
	rw := &rewriter{src: text, aliases: aliases, warn: warn}
	return rw.run()
}

type rewriter struct {
	src     string
	i       int
	out     strings.Builder
	plain   strings.Builder // pending run of unescaped body text
	aliases *styles.AliasMap
	warn    WarnFunc
}

func (rw *rewriter) warnf(msg string) {
	tracer().Infof("inline: %s", msg)
	if rw.warn != nil {
		rw.warn(msg)
	}
}

// flush escapes and emits the pending plain-text run.
func (rw *rewriter) flush() {
	if rw.plain.Len() > 0 {
		rw.out.WriteString(html.EscapeString(rw.plain.String()))
		rw.plain.Reset()
	}
}

// raw emits a fragment that must not be escaped (or is escaped already).
func (rw *rewriter) raw(s string) {
	rw.flush()
	rw.out.WriteString(s)
}

func (rw *rewriter) run() string {
	for rw.i < len(rw.src) {
		ch := rw.src[rw.i]
		switch ch {
		case '\\':
			// a backslash protects '`' and '$' from span recognition
			if rw.i+1 < len(rw.src) && (rw.src[rw.i+1] == '`' || rw.src[rw.i+1] == '$') {
				rw.plain.WriteByte(rw.src[rw.i+1])
				rw.i += 2
				continue
			}
			rw.plain.WriteByte(ch)
			rw.i++
		case '`':
			if !rw.codeSpan() {
				rw.plain.WriteByte(ch)
				rw.i++
			}
		case '$':
			if !rw.mathSpan() {
				rw.plain.WriteByte(ch)
				rw.i++
			}
		case '@':
			if !rw.styleSpan() {
				rw.plain.WriteByte(ch)
				rw.i++
			}
		case '[':
			if !rw.link() {
				rw.plain.WriteByte(ch)
				rw.i++
			}
		default:
			rw.plain.WriteByte(ch)
			rw.i++
		}
	}
	rw.flush()
	return rw.out.String()
}

// findUnescaped returns the index of the next unescaped occurrence of
// delim at or after from, or -1.
func (rw *rewriter) findUnescaped(delim byte, from int) int {
	for j := from; j < len(rw.src); j++ {
		if rw.src[j] == '\\' {
			j++
			continue
		}
		if rw.src[j] == delim {
			return j
		}
	}
	return -1
}

// codeSpan handles `…`; the body is HTML-escaped but otherwise raw.
func (rw *rewriter) codeSpan() bool {
	end := rw.findUnescaped('`', rw.i+1)
	if end < 0 {
		return false
	}
	body := strings.ReplaceAll(rw.src[rw.i+1:end], "\\`", "`")
	rw.raw("<code>" + html.EscapeString(body) + "</code>")
	rw.i = end + 1
	return true
}

// mathSpan passes $…$ through byte-for-byte, delimiters included.
func (rw *rewriter) mathSpan() bool {
	end := rw.findUnescaped('$', rw.i+1)
	if end < 0 {
		return false
	}
	rw.raw(rw.src[rw.i : end+1])
	rw.i = end + 1
	return true
}

// link handles [label](url) with a conservative URL heuristic; text that
// fails it stays literal.
func (rw *rewriter) link() bool {
	labelEnd := strings.IndexByte(rw.src[rw.i:], ']')
	if labelEnd < 0 {
		return false
	}
	labelEnd += rw.i
	if labelEnd+1 >= len(rw.src) || rw.src[labelEnd+1] != '(' {
		return false
	}
	urlEnd := strings.IndexByte(rw.src[labelEnd+2:], ')')
	if urlEnd < 0 {
		return false
	}
	urlEnd += labelEnd + 2
	label := rw.src[rw.i+1 : labelEnd]
	url := rw.src[labelEnd+2 : urlEnd]
	if !plausibleURL(url) {
		return false
	}
	rw.raw(`<a href="` + html.EscapeString(url) + `">` + html.EscapeString(label) + "</a>")
	rw.i = urlEnd + 1
	return true
}

// plausibleURL demands at least one letter and one of '.', ':', '/'.
func plausibleURL(url string) bool {
	hasLetter := false
	for j := 0; j < len(url); j++ {
		b := url[j]
		if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' {
			hasLetter = true
			break
		}
	}
	return hasLetter && strings.ContainsAny(url, ".:/")
}

// endMarker terminates an explicit inline span.
const endMarker = "@end"

// styleSpan recognizes both surface forms of an inline style span:
// explicit '@style(attrs) body @end' and shorthand '@(attrs){body}'.
// Both produce identical output. On any parse failure the span text
// stays literal.
func (rw *rewriter) styleSpan() bool {
	rest := rw.src[rw.i:]
	var attrStart int
	var shorthand bool
	switch {
	case strings.HasPrefix(rest, "@("):
		attrStart = rw.i + 2
		shorthand = true
	case strings.HasPrefix(rest, "@style("):
		attrStart = rw.i + len("@style(")
	default:
		return false
	}

	attrs, after, ok := parseSpanAttrs(rw.src, attrStart)
	if !ok {
		rw.warnf("unterminated parameter list in inline span, kept literal")
		return false
	}

	var body string
	var next int
	if shorthand {
		if after >= len(rw.src) || rw.src[after] != '{' {
			rw.warnf("inline span shorthand without '{…}' body, kept literal")
			return false
		}
		closeBrace := strings.IndexByte(rw.src[after+1:], '}')
		if closeBrace < 0 {
			rw.warnf("inline span shorthand missing '}', kept literal")
			return false
		}
		body = rw.src[after+1 : after+1+closeBrace]
		next = after + 1 + closeBrace + 1
	} else {
		end := strings.Index(rw.src[after:], endMarker)
		if end < 0 {
			rw.warnf("inline span missing '@end', kept literal")
			return false
		}
		body = strings.TrimSpace(rw.src[after : after+end])
		next = after + end + len(endMarker)
	}

	sty := styles.ResolveSpan(attrs, rw.aliases)
	var tag strings.Builder
	tag.WriteString("<span")
	if sty.Classes != "" {
		tag.WriteString(` class="` + html.EscapeString(sty.Classes) + `"`)
	}
	if sty.CSS != "" {
		tag.WriteString(` style="` + html.EscapeString(sty.CSS) + `"`)
	}
	tag.WriteString(">")
	// nested inline constructs inside the body are rewritten too
	tag.WriteString(Rewrite(body, rw.aliases, rw.warn))
	tag.WriteString("</span>")
	rw.raw(tag.String())
	rw.i = next
	return true
}

// spanAttrs is an insertion-ordered attribute set, satisfying
// styles.Attrs.
type spanAttrs struct {
	m *linkedhashmap.Map
}

func (sa spanAttrs) Attr(key string) (string, bool) {
	v, ok := sa.m.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '_' || b == '-'
}

// parseSpanAttrs parses 'key=value, key2="v2")' starting right after the
// opening parenthesis. Returns the attributes, the index just past the
// closing parenthesis (skipping one following space), and whether a
// closing parenthesis was found before end of input.
func parseSpanAttrs(src string, i int) (spanAttrs, int, bool) {
	attrs := spanAttrs{m: linkedhashmap.New()}
	for {
		for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == ',') {
			i++
		}
		if i >= len(src) {
			return attrs, i, false
		}
		if src[i] == ')' {
			i++
			if i < len(src) && src[i] == ' ' {
				i++
			}
			return attrs, i, true
		}
		start := i
		for i < len(src) && isNameByte(src[i]) {
			i++
		}
		if i == start {
			return attrs, i, false // junk where a key should be
		}
		key := src[start:i]
		if i >= len(src) || src[i] != '=' {
			attrs.m.Put(key, "")
			continue
		}
		i++
		if i < len(src) && (src[i] == '"' || src[i] == '\'') {
			quote := src[i]
			i++
			vstart := i
			for i < len(src) && src[i] != quote {
				i++
			}
			if i >= len(src) {
				return attrs, i, false // unterminated quote
			}
			attrs.m.Put(key, src[vstart:i])
			i++
			continue
		}
		vstart := i
		for i < len(src) && src[i] != ' ' && src[i] != '\t' && src[i] != ',' && src[i] != ')' {
			i++
		}
		attrs.m.Put(key, src[vstart:i])
	}
}
