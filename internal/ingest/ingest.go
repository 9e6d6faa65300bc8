// Package ingest renders Markdown articles to the HTML the engine expects
// as input. It sits entirely upstream of anchor resolution: it never sees
// anchors, and the engine never sees Markdown.
package ingest

import (
	"bytes"
	"fmt"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// IngestResult is the rendered HTML body (suitable as engine.Apply's html
// input) plus any front-matter metadata. Metadata is informational only
// and never affects anchor resolution.
type IngestResult struct {
	HTML     string
	Metadata map[string]interface{}
}

var converter = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		mathjax.MathJax,
		meta.Meta,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// IngestMarkdown parses YAML front matter if present, renders the
// remaining CommonMark/GFM body to HTML (math spans preserved as opaque
// <span class="math"> output, never evaluated), and returns both.
func IngestMarkdown(source []byte) (IngestResult, error) {
	ctx := parser.NewContext()
	var buf bytes.Buffer
	if err := converter.Convert(source, &buf, parser.WithContext(ctx)); err != nil {
		return IngestResult{}, fmt.Errorf("render markdown: %w", err)
	}
	return IngestResult{HTML: buf.String(), Metadata: meta.Get(ctx)}, nil
}
