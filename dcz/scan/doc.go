/*
Package scan implements the tokenizer for dcz markup.

The scanner is line oriented: a directive begins with '@' followed by an
identifier, either at the start of a line or preceded only by horizontal
whitespace. Everything else on a line is content. A fixed set of
directives is fenced, i.e. their body is captured raw until a terminating
'@end' and never interpreted as further directive syntax.

Scanning is a pure function of the input bytes. The scanner owns its
token buffer; callers hand the tokens to the parser and drop them
afterwards. A watchdog guarantees forward progress: inputs that would
make the scanner loop (a fence that never closes) fail with a dedicated
error instead of hanging.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package scan

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dcz.scan'.
func tracer() tracing.Trace {
	return tracing.Select("dcz.scan")
}
