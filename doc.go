/*
Package dcz compiles dcz structured markup into HTML.

dcz documents are built from directives of the form

	@name(key="value", key2=value2) content @end

plus a handful of markdown-like shorthands ('# Title' for headings,
'@(attrs){body}' for inline style spans, '`…`' for code spans,
'[label](url)' for links, '$…$' for inline math). A fixed set of
directives (code, math, style, css, styledef) is fenced: their body is
raw text up to the terminating '@end'. '@@' escapes a literal '@', and
lines starting with '//' are comments.

The pipeline is strictly staged: the scanner produces tokens, the parser
builds an ordered tree of typed nodes, the style alias map is resolved
in one pass over that tree, and the exporter serializes HTML, rewriting
inline markup in prose on the way. Each stage is a pure function of the
previous one, so any number of documents may be compiled concurrently.

Compile is the one-call entry point; the subpackages expose the
individual stages for callers substituting their own exporter.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package dcz
