/*
Package htmlout serializes a dcz document tree into a complete HTML
document.

The exporter makes one depth-first pass over the tree, mapping each node
type to one fixed serialization rule. Head-only nodes (meta, import,
css) are collected on the way and emitted into the head section in
document order: core stylesheet first, user content next, theme last.
Prose-bearing nodes run through the inline rewrite engine with the
document's style alias map, which is resolved once up front.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dcz.export'.
func tracer() tracing.Trace {
	return tracing.Select("dcz.export")
}
