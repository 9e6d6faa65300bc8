package htmldom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTextMapParagraphBoundaries(t *testing.T) {
	root, err := Parse(`<p>Alpha beta.</p><p>Gamma delta.</p>`)
	require.NoError(t, err)

	m := BuildTextMap(root, "html-hl")
	assert.Equal(t, "Alpha beta.\nGamma delta.\n", m.PlainText)
	require.Len(t, m.Nodes, 2)
	assert.Equal(t, "Alpha beta.", m.Nodes[0].Text)
	assert.Equal(t, "Gamma delta.", m.Nodes[1].Text)
	assert.Equal(t, 0, m.Nodes[0].Start)
	assert.Equal(t, 11, m.Nodes[0].End)
}

func TestBuildTextMapSkipsScriptStyleAndWhitespace(t *testing.T) {
	root, err := Parse(`<style>.x{color:red}</style><p>  </p><p>Text</p><script>evil()</script>`)
	require.NoError(t, err)

	m := BuildTextMap(root, "html-hl")
	assert.Equal(t, "Text\n", m.PlainText)
	require.Len(t, m.Nodes, 1)
}

func TestBuildTextMapSkipsMarkerSubtree(t *testing.T) {
	root, err := Parse(`<p>before <html-hl data-hl-id="x">middle</html-hl> after</p>`)
	require.NoError(t, err)

	m := BuildTextMap(root, "html-hl")
	assert.NotContains(t, m.PlainText, "middle")
}

func TestQueries(t *testing.T) {
	root, err := Parse(`<p>Alpha beta.</p><p>Gamma delta.</p>`)
	require.NoError(t, err)
	m := BuildTextMap(root, "html-hl")

	rec, ok := m.NodeAtPosition(2)
	require.True(t, ok)
	assert.Equal(t, "Alpha beta.", rec.Text)

	inRange := m.NodesInRange(5, 15)
	assert.Len(t, inRange, 2)

	path, offset, ok := m.PlainTextToDOM(15)
	require.True(t, ok)
	assert.Equal(t, 3, offset)
	backPos, ok := m.DOMToPlainText(path, offset)
	require.True(t, ok)
	assert.Equal(t, 15, backPos)

	byPath, ok := m.NodeByPath(path)
	require.True(t, ok)
	assert.Same(t, rec.Node, m.Nodes[0].Node)
	assert.Equal(t, "Gamma delta.", byPath.Text)
}

func TestRemoveHighlightsUnwrapsAndNormalizes(t *testing.T) {
	root, err := Parse(`<p>foo <html-hl data-hl-id="a">bar</html-hl> baz</p>`)
	require.NoError(t, err)

	require.NoError(t, RemoveHighlights(root, "html-hl"))

	out, err := Serialize(root)
	require.NoError(t, err)
	assert.NotContains(t, out, "html-hl")
	assert.Contains(t, out, "foo bar baz")

	// exactly one merged text node under <p>
	p := root.FirstChild
	require.NotNil(t, p)
	require.NotNil(t, p.FirstChild)
	assert.Nil(t, p.FirstChild.NextSibling)
}

func TestRemoveHighlightsHandlesLegacySpan(t *testing.T) {
	root, err := Parse(`<p>foo <span data-hl-id="a">bar</span> baz</p>`)
	require.NoError(t, err)

	require.NoError(t, RemoveHighlights(root, "html-hl"))

	out, err := Serialize(root)
	require.NoError(t, err)
	assert.NotContains(t, out, "data-hl-id")
	assert.Contains(t, out, "foo bar baz")
}

func TestRemoveHighlightsIsIdempotent(t *testing.T) {
	root, err := Parse(`<p>foo <html-hl data-hl-id="a">bar</html-hl> baz</p>`)
	require.NoError(t, err)
	require.NoError(t, RemoveHighlights(root, "html-hl"))
	out1, err := Serialize(root)
	require.NoError(t, err)

	require.NoError(t, RemoveHighlights(root, "html-hl"))
	out2, err := Serialize(root)
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
}

func TestSerializeIsInnerHTMLOfBody(t *testing.T) {
	root, err := Parse(`<p>hello</p>`)
	require.NoError(t, err)
	out, err := Serialize(root)
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", out)
}
