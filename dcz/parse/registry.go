package parse

import (
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/dcz/dcz/doctree"
)

// DirectiveInfo describes a registered directive.
type DirectiveInfo struct {
	Canonical string           // canonical directive name
	Type      doctree.NodeType // node type constructed for it
	Void      bool             // carries everything in its parameters, no body
	Fold      bool             // name matches case-insensitively
}

// Registry resolves directive names, including shorthand aliases, to
// their canonical directive. Lookup is case-sensitive unless an entry is
// registered with Fold.
type Registry struct {
	names *trie.Trie
}

// NewRegistry creates a registry pre-loaded with the built-in directives
// and their aliases.
func NewRegistry() *Registry {
	r := &Registry{names: trie.New()}
	builtins := []DirectiveInfo{
		{Canonical: "meta", Type: doctree.MetaNode, Void: true},
		{Canonical: "heading", Type: doctree.HeadingNode},
		{Canonical: "paragraph", Type: doctree.ParagraphNode},
		{Canonical: "code", Type: doctree.CodeNode},
		{Canonical: "math", Type: doctree.MathNode},
		{Canonical: "media", Type: doctree.MediaNode, Void: true},
		{Canonical: "style", Type: doctree.StyleNode},
		{Canonical: "styledef", Type: doctree.StyleDefNode},
		{Canonical: "import", Type: doctree.ImportNode, Void: true},
		{Canonical: "css", Type: doctree.CssNode},
	}
	for _, info := range builtins {
		r.Add(info.Canonical, info)
	}
	r.Alias("p", "paragraph")
	r.Alias("h", "heading")
	r.Alias("img", "media")
	return r
}

// Add registers name with the given directive info.
func (r *Registry) Add(name string, info DirectiveInfo) {
	if info.Fold {
		name = strings.ToLower(name)
	}
	r.names.Add(name, info)
}

// Alias registers name as an alias for a canonical directive. Aliasing
// an unregistered directive is ignored.
func (r *Registry) Alias(name, canonical string) {
	info, ok := r.Resolve(canonical)
	if !ok {
		tracer().Errorf("registry: alias %q for unregistered directive %q", name, canonical)
		return
	}
	r.Add(name, info)
}

// Resolve looks up a directive name. Alias resolution normalizes to the
// canonical name, so shorthand and explicit forms construct identical
// nodes.
func (r *Registry) Resolve(name string) (DirectiveInfo, bool) {
	if node, ok := r.names.Find(name); ok {
		return node.Meta().(DirectiveInfo), true
	}
	// case-insensitive entries are stored lowercased
	if node, ok := r.names.Find(strings.ToLower(name)); ok {
		info := node.Meta().(DirectiveInfo)
		if info.Fold {
			return info, true
		}
	}
	return DirectiveInfo{}, false
}

// Suggest returns registered names close to name, for error messages.
func (r *Registry) Suggest(name string) []string {
	seen := map[string]bool{}
	var out []string
	collect := func(names []string) {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	collect(r.names.PrefixSearch(name))
	collect(r.names.FuzzySearch(name))
	sort.Strings(out)
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
