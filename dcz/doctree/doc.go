/*
Package doctree implements the document tree produced by parsing dcz
markup.

A document is an ordered tree of typed nodes. The set of node types is
closed: every construct of the language maps onto exactly one NodeType,
and constructs the parser does not recognize are preserved as UnknownNode
rather than extending the enum at runtime. Attributes of a node keep
their authoring order; duplicate keys within one directive overwrite
earlier values.

The tree owns all of its nodes exclusively. There are no back-edges
other than the parent link, and no node is shared between documents, so
a compile may drop the whole tree as one unit when it is done.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package doctree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dcz.tree'.
func tracer() tracing.Trace {
	return tracing.Select("dcz.tree")
}
