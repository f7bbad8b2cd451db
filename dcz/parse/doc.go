/*
Package parse builds document trees from token streams.

The parser maintains an explicit stack of open block directives. A block
node is attached to its parent only when its terminator arrives, so a
finished tree never contains a half-open block. Directive names resolve
against a registry which also knows shorthand aliases; names the
registry does not know are preserved as unknown nodes with their raw
attributes and content, so documents survive an implementation upgrade
unchanged.

Stray text lines accumulate into implicit paragraphs, flushed on a blank
line or at the start of any block. This is the "everything not otherwise
claimed is a paragraph" rule.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package parse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dcz.parse'.
func tracer() tracing.Trace {
	return tracing.Select("dcz.parse")
}
