package styles

import (
	"strings"

	"github.com/antchfx/xpath"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/dcz/dcz/doctree"
	"github.com/npillmayer/dcz/dcz/doctree/xpathadapter"
)

// AliasMap maps alias names to class-list strings. It is built once per
// compile and read-only afterwards.
type AliasMap struct {
	m *linkedhashmap.Map
}

// Lookup returns the class list registered for an alias name.
func (am *AliasMap) Lookup(name string) (string, bool) {
	if am == nil || am.m == nil {
		return "", false
	}
	v, ok := am.m.Get(name)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Len returns the number of aliases defined.
func (am *AliasMap) Len() int {
	if am == nil || am.m == nil {
		return 0
	}
	return am.m.Size()
}

var styledefQuery = xpath.MustCompile("//styledef")

// ResolveAliases scans a document for styledef blocks and collects their
// alias definitions. Definitions are one 'name = class-list' entry per
// line; blank lines are skipped, lines without '=' are ignored with a
// trace note. Duplicate names follow last-write-wins in document order.
func ResolveAliases(doc *doctree.Node) *AliasMap {
	am := &AliasMap{m: linkedhashmap.New()}
	iter := styledefQuery.Select(xpathadapter.NewNavigator(doc))
	for iter.MoveNext() {
		node, err := xpathadapter.CurrentNode(iter.Current())
		if err != nil {
			tracer().Errorf("alias resolver: %v", err)
			continue
		}
		am.addDefinitions(node)
	}
	tracer().Debugf("resolved %d style aliases", am.Len())
	return am
}

func (am *AliasMap) addDefinitions(node *doctree.Node) {
	for _, line := range strings.Split(node.Content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			tracer().Infof("styledef entry without '=': %q", line)
			continue
		}
		name := strings.TrimSpace(line[:eq])
		classes := strings.TrimSpace(line[eq+1:])
		if name == "" {
			tracer().Infof("styledef entry with empty name: %q", line)
			continue
		}
		am.m.Put(name, classes)
	}
}
