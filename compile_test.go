package dcz

import (
	"testing"

	"github.com/npillmayer/dcz/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestCompileSmallDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.scan", "dcz.parse", "dcz.export")
	defer teardown()
	//
	src := "@meta(title=\"Hello\")\n# Hi\nSome *plain* prose.\n"
	res, err := Compile([]byte(src), Options{})
	assert.NoError(t, err)
	assert.Contains(t, res.HTML, "<title>Hello</title>")
	assert.Contains(t, res.HTML, "<h1>Hi</h1>")
	assert.NotNil(t, res.Document)
}

func TestCompileIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.scan")
	defer teardown()
	//
	src := "# A\n\ntext with `code` and $m^2$\n\n@code(lang=go)\nx := 1\n@end\n"
	a, err := Compile([]byte(src), Options{})
	assert.NoError(t, err)
	b, err := Compile([]byte(src), Options{})
	assert.NoError(t, err)
	assert.Equal(t, a.HTML, b.HTML)
}

func TestCompileStructuralErrorReturnsNoDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.scan")
	defer teardown()
	//
	res, err := Compile([]byte("@code(lang=go)\nnever closed\n"), Options{})
	assert.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, core.ESTUCK, core.Code(err))
}

func TestCompileDegradesWithWarnings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.parse")
	defer teardown()
	//
	src := "a malformed @style(class=\"x\" span\n\n@p fine @end\n"
	res, err := Compile([]byte(src), Options{})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.HTML, "<p>fine</p>")
}

func TestCompileStrictMode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dcz.parse")
	defer teardown()
	//
	src := "@paragraph\nno terminator\n"
	res, err := Compile([]byte(src), Options{Strict: true})
	assert.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, core.EUNCLOSED, core.Code(err))
	//
	res, err = Compile([]byte(src), Options{})
	assert.NoError(t, err)
	assert.Contains(t, res.HTML, "no terminator")
}
