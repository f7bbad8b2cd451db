/*
Package inline rewrites the prose content of paragraph-like nodes into
HTML fragments.

The engine makes one left-to-right scan over the text and recognizes,
in this order of priority: backslash escapes for '`' and '$', code
spans, inline math, style spans (explicit '@style(…) … @end' and
shorthand '@(…){…}'), and markdown-style links. Inline math is passed
through byte-for-byte so a downstream math renderer sees the original
delimiters and body.

Malformed spans are never fatal and never eat user content: the original
text is reproduced literally and a warning is emitted.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dcz.inline'.
func tracer() tracing.Trace {
	return tracing.Select("dcz.inline")
}
