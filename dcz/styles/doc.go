/*
Package styles resolves style information for dcz documents.

Two concerns live here. The alias resolver collects 'name = class-list'
entries from all styledef blocks of a document into a read-only map;
later definitions overwrite earlier ones, deterministically in document
order. The span resolver turns the attributes of a style span into
either a class list or inline CSS, applying the authoring heuristic
that a "class" value containing ':', ';' or '=' was really meant as
inline CSS.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package styles

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dcz.styles'.
func tracer() tracing.Trace {
	return tracing.Select("dcz.styles")
}
