package scan

import (
	"fmt"
	"strings"

	"github.com/npillmayer/dcz/core"
	"golang.org/x/text/unicode/norm"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota

	Directive  // '@name' at the start of a line; lexeme is the bare name
	ParamOpen  // '(' of a parameter list
	ParamClose // ')' of a parameter list
	ParamKey   // parameter name
	ParamValue // parameter value, unquoted
	Content    // raw text; empty lexeme marks a blank line
	BlockEnd   // '@end'
	Escape     // '@@…'; lexeme is the literal replacement text
	Comment    // '//' line; lexeme is the comment text
)

func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "EOF"
	case Directive:
		return "Directive"
	case ParamOpen:
		return "ParamOpen"
	case ParamClose:
		return "ParamClose"
	case ParamKey:
		return "ParamKey"
	case ParamValue:
		return "ParamValue"
	case Content:
		return "Content"
	case BlockEnd:
		return "BlockEnd"
	case Escape:
		return "Escape"
	case Comment:
		return "Comment"
	}
	return "Invalid"
}

// Token is a lexical token. Line is 1-based, Col is a 0-based byte
// offset within the line.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

// commentPrefix starts a comment line. Comment tokens are emitted by the
// scanner and dropped (or kept, in debug mode) by the parser.
const commentPrefix = "//"

// endMarker terminates a block or fence.
const endMarker = "@end"

// fencedDirectives name the directives whose body is captured raw until
// a terminating '@end'. Inside a fence no directive syntax is
// interpreted except the terminator search itself.
var fencedDirectives = map[string]bool{
	"code":     true,
	"math":     true,
	"style":    true,
	"css":      true,
	"styledef": true,
}

// IsFenced tells whether directive name opens a raw fence.
func IsFenced(name string) bool {
	return fencedDirectives[name]
}

// ----- errors -----

// LexError is a scanner error with a source position.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// ----- scanner -----

// Scanner scans dcz source text into tokens.
type Scanner struct {
	src    string
	cur    int // byte index of the next unread line
	line   int // number of the last line read, 1-based
	tokens []Token
}

// New creates a scanner for the given source. The source is normalized
// to NFC so that visually identical input always scans identically.
func New(src []byte) *Scanner {
	return &Scanner{src: string(norm.NFC.Bytes(src))}
}

// Scan tokenizes src in one go.
func Scan(src []byte) ([]Token, error) {
	return New(src).Tokens()
}

// Tokens scans the entire source and returns the tokens, EOF included.
func (s *Scanner) Tokens() ([]Token, error) {
	for s.cur < len(s.src) {
		watchdog := s.cur
		line, ok := s.takeLine()
		if !ok {
			break
		}
		if err := s.scanLine(line); err != nil {
			return nil, err
		}
		if s.cur <= watchdog {
			// cannot happen with a well-behaved takeLine, but the scanner
			// must never hang on any input
			err := &LexError{Line: s.line, Col: 0, Msg: "scanner made no progress"}
			return nil, core.WrapError(err, core.ESTUCK, "scanner stuck at line %d", s.line)
		}
	}
	s.emit(EOF, "", 0)
	return s.tokens, nil
}

// takeLine returns the next source line, without its line ending, and
// advances past it.
func (s *Scanner) takeLine() (string, bool) {
	if s.cur >= len(s.src) {
		return "", false
	}
	s.line++
	start := s.cur
	var line string
	if i := strings.IndexByte(s.src[s.cur:], '\n'); i >= 0 {
		line = s.src[start : start+i]
		s.cur = start + i + 1
	} else {
		line = s.src[start:]
		s.cur = len(s.src)
	}
	return strings.TrimSuffix(line, "\r"), true
}

func (s *Scanner) emit(tt TokenType, lexeme string, col int) {
	s.tokens = append(s.tokens, Token{Type: tt, Lexeme: lexeme, Line: s.line, Col: col})
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '_' || b == '-'
}

// scanLine dispatches on the shape of a single source line.
func (s *Scanner) scanLine(line string) error {
	indent := 0
	for indent < len(line) && (line[indent] == ' ' || line[indent] == '\t') {
		indent++
	}
	trimmed := strings.TrimRight(line[indent:], " \t")

	switch {
	case trimmed == "":
		s.emit(Content, "", 0) // blank line, flushes paragraphs
	case strings.HasPrefix(trimmed, commentPrefix):
		s.emit(Comment, strings.TrimSpace(trimmed[len(commentPrefix):]), indent)
	case trimmed[0] == '#':
		if s.scanHeading(trimmed, indent) {
			return nil
		}
		s.emitProse(trimmed, indent)
	case trimmed[0] == '@' && len(trimmed) > 1 && isNameByte(trimmed[1]):
		return s.scanDirective(trimmed, indent)
	default:
		s.emitProse(trimmed, indent)
	}
	return nil
}

// scanHeading recognizes the '#'…'######' shorthand and synthesizes the
// token sequence of the equivalent explicit heading directive, so both
// surface forms converge before parsing.
func (s *Scanner) scanHeading(trimmed string, indent int) bool {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > 6 {
		return false
	}
	if level < len(trimmed) && trimmed[level] != ' ' && trimmed[level] != '\t' {
		return false
	}
	title := strings.TrimSpace(trimmed[level:])
	s.emit(Directive, "heading", indent)
	s.emit(ParamOpen, "(", indent)
	s.emit(ParamKey, "level", indent)
	s.emit(ParamValue, fmt.Sprintf("%d", level), indent)
	s.emit(ParamClose, ")", indent)
	if title != "" {
		s.emitProse(title, indent+level+1)
	}
	s.emit(BlockEnd, endMarker, indent)
	return true
}

// emitProse emits a content line, splitting out '@@' escapes. The
// two-byte sequence '@@' stands for a literal '@' glued to the following
// non-whitespace run.
func (s *Scanner) emitProse(text string, col int) {
	rest := strings.TrimRight(text, " \t")
	for {
		j := strings.Index(rest, "@@")
		if j < 0 {
			if rest != "" {
				s.emit(Content, rest, col)
			}
			return
		}
		if j > 0 {
			s.emit(Content, rest[:j], col)
		}
		k := j + 2
		m := k
		for m < len(rest) && rest[m] != ' ' && rest[m] != '\t' {
			m++
		}
		s.emit(Escape, "@"+rest[k:m], col+j)
		rest = rest[m:]
		col += m
	}
}

// scanDirective scans a line starting with '@name'. trimmed has leading
// whitespace removed; indent is its offset within the source line.
func (s *Scanner) scanDirective(trimmed string, indent int) error {
	i := 1
	for i < len(trimmed) && isNameByte(trimmed[i]) {
		i++
	}
	name := trimmed[1:i]
	if name == "end" && strings.TrimSpace(trimmed[i:]) == "" {
		s.emit(BlockEnd, endMarker, indent)
		return nil
	}
	s.emit(Directive, name, indent)

	rest := trimmed[i:]
	col := indent + i
	if strings.HasPrefix(rest, "(") {
		consumed := s.scanParams(rest, col)
		rest = rest[consumed:]
		col += consumed
	}
	rest = strings.TrimSpace(rest)

	if IsFenced(name) {
		return s.scanFence(name, rest, indent)
	}

	// one-line form: '@name(...) content @end'
	if rest == endMarker {
		s.emit(BlockEnd, endMarker, col)
		return nil
	}
	if body, ok := trimEndMarker(rest); ok {
		s.emitProse(body, col)
		s.emit(BlockEnd, endMarker, col)
		return nil
	}
	if rest != "" {
		s.emitProse(rest, col)
	}
	return nil
}

// trimEndMarker splits a trailing '@end' off a line, if present.
func trimEndMarker(line string) (string, bool) {
	if !strings.HasSuffix(line, endMarker) {
		return line, false
	}
	body := strings.TrimRight(line[:len(line)-len(endMarker)], " \t")
	return body, true
}

// scanParams tokenizes a parameter list '(key=value, key2="v 2")'.
// It never fails: a malformed or unterminated list is tokenized as far
// as it parses and then skipped, so the scan always advances past it.
// Returns the number of bytes consumed of rest.
func (s *Scanner) scanParams(rest string, col int) int {
	s.emit(ParamOpen, "(", col)
	i := 1
	for {
		for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t' || rest[i] == ',') {
			i++
		}
		if i >= len(rest) {
			tracer().Debugf("parameter list not terminated at line %d", s.line)
			s.emit(ParamClose, ")", col+i)
			return i
		}
		if rest[i] == ')' {
			s.emit(ParamClose, ")", col+i)
			return i + 1
		}
		// key
		start := i
		for i < len(rest) && isNameByte(rest[i]) {
			i++
		}
		if i == start {
			// junk byte; skip it to keep moving
			tracer().Debugf("unexpected %q in parameter list at line %d", rest[i], s.line)
			i++
			continue
		}
		s.emit(ParamKey, rest[start:i], col+start)
		if i >= len(rest) || rest[i] != '=' {
			s.emit(ParamValue, "", col+i) // bare flag
			continue
		}
		i++ // consume '='
		if i < len(rest) && (rest[i] == '"' || rest[i] == '\'') {
			quote := rest[i]
			i++
			vstart := i
			for i < len(rest) && rest[i] != quote {
				i++
			}
			s.emit(ParamValue, rest[vstart:i], col+vstart)
			if i < len(rest) {
				i++ // closing quote
			} else {
				tracer().Debugf("unterminated quoted value at line %d", s.line)
			}
			continue
		}
		vstart := i
		for i < len(rest) && rest[i] != ' ' && rest[i] != '\t' && rest[i] != ',' && rest[i] != ')' {
			i++
		}
		s.emit(ParamValue, rest[vstart:i], col+vstart)
	}
}

// scanFence captures the raw body of a fenced directive up to its
// terminator. firstRest is what remained on the opening line after the
// parameter list.
func (s *Scanner) scanFence(name, firstRest string, indent int) error {
	openLine := s.line
	var body []string
	if firstRest != "" {
		if firstRest == endMarker {
			s.emit(Content, "", indent)
			s.emit(BlockEnd, endMarker, indent)
			return nil
		}
		if text, ok := trimEndMarker(firstRest); ok {
			s.emit(Content, text, indent)
			s.emit(BlockEnd, endMarker, indent)
			return nil
		}
		body = append(body, firstRest)
	}
	for {
		line, ok := s.takeLine()
		if !ok {
			err := &LexError{Line: openLine, Col: indent,
				Msg: fmt.Sprintf("fenced directive '@%s' never closed", name)}
			return core.WrapError(err, core.ESTUCK,
				"'@%s' at line %d is missing its '@end'", name, openLine)
		}
		if strings.TrimSpace(line) == endMarker {
			s.emit(Content, strings.Join(body, "\n"), indent)
			s.emit(BlockEnd, endMarker, indent)
			return nil
		}
		if text, ok := trimEndMarker(strings.TrimRight(line, " \t")); ok {
			body = append(body, text)
			s.emit(Content, strings.Join(body, "\n"), indent)
			s.emit(BlockEnd, endMarker, indent)
			return nil
		}
		body = append(body, line)
	}
}
