package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestMarkdownRendersBodyAndFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: My Article\ntags: [go, highlighting]\n---\n\n# Heading\n\nSome **bold** text.\n")

	res, err := IngestMarkdown(source)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "<h1")
	assert.Contains(t, res.HTML, "<strong>bold</strong>")
	assert.Equal(t, "My Article", res.Metadata["title"])
}

func TestIngestMarkdownTableAndStrikethrough(t *testing.T) {
	source := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n")

	res, err := IngestMarkdown(source)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "<table>")
	assert.Contains(t, res.HTML, "<del>gone</del>")
}

func TestIngestMarkdownWithoutFrontMatterHasNilMetadata(t *testing.T) {
	res, err := IngestMarkdown([]byte("just a paragraph\n"))
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "<p>just a paragraph</p>")
	assert.Empty(t, res.Metadata)
}
