package htmldom

import (
	"strings"

	"github.com/readlark/htmlhl/internal/htmlpath"
	"golang.org/x/net/html"
)

// blockTags insert a plain-text paragraph boundary before descending and
// after returning, per spec.
var blockTags = map[string]bool{
	"p": true, "div": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "ul": true, "ol": true, "li": true,
	"blockquote": true, "pre": true, "hr": true, "br": true, "table": true,
	"thead": true, "tbody": true, "tr": true, "td": true, "th": true,
	"article": true, "section": true, "header": true, "footer": true,
	"nav": true, "aside": true, "figure": true, "figcaption": true,
	"address": true, "dd": true, "dt": true, "dl": true,
}

// TextNodeRecord describes one addressable (non-whitespace) text node.
type TextNodeRecord struct {
	Node  *html.Node
	Path  htmlpath.Path
	Start int // inclusive offset into TextMap.PlainText
	End   int // exclusive offset into TextMap.PlainText
	Text  string
}

// TextMap is the bidirectional map between a DOM tree's text nodes and its
// plain-text projection.
type TextMap struct {
	PlainText string
	Nodes     []*TextNodeRecord
	byPath    map[string]*TextNodeRecord
}

type textMapBuilder struct {
	root     *html.Node
	marker   string
	buf      strings.Builder
	lastByte byte
	hasLast  bool
	nodes    []*TextNodeRecord
}

// BuildTextMap performs a depth-first traversal of root: script/style/
// marker subtrees are skipped, whitespace-only text is invisible to the
// projection, and block elements insert '\n' boundaries.
func BuildTextMap(root *html.Node, markerTag string) *TextMap {
	b := &textMapBuilder{root: root, marker: strings.ToLower(markerTag)}
	b.walk(root)
	m := &TextMap{
		PlainText: b.buf.String(),
		Nodes:     b.nodes,
		byPath:    make(map[string]*TextNodeRecord, len(b.nodes)),
	}
	for _, rec := range m.Nodes {
		m.byPath[rec.Path.String()] = rec
	}
	return m
}

func (b *textMapBuilder) writeString(s string) {
	if s == "" {
		return
	}
	b.buf.WriteString(s)
	b.lastByte = s[len(s)-1]
	b.hasLast = true
}

func (b *textMapBuilder) writeNewline() {
	if b.buf.Len() == 0 {
		return
	}
	if b.hasLast && b.lastByte == '\n' {
		return
	}
	b.buf.WriteByte('\n')
	b.lastByte = '\n'
	b.hasLast = true
}

func (b *textMapBuilder) walk(n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if tag == "script" || tag == "style" || tag == b.marker {
			return
		}
		isBlock := blockTags[tag]
		if isBlock {
			b.writeNewline()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.walk(c)
		}
		if isBlock {
			b.writeNewline()
		}
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return
		}
		start := b.buf.Len()
		b.writeString(n.Data)
		end := b.buf.Len()
		path, ok := htmlpath.Encode(b.root, n)
		if !ok {
			return
		}
		b.nodes = append(b.nodes, &TextNodeRecord{
			Node: n, Path: path, Start: start, End: end, Text: n.Data,
		})
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.walk(c)
		}
	}
}

// NodeByPath is a constant-time lookup of a text-node record by its
// canonical path string.
func (m *TextMap) NodeByPath(path string) (*TextNodeRecord, bool) {
	rec, ok := m.byPath[path]
	return rec, ok
}

// NodeAtPosition locates the record whose [Start, End) contains pos.
func (m *TextMap) NodeAtPosition(pos int) (*TextNodeRecord, bool) {
	for _, rec := range m.Nodes {
		if pos >= rec.Start && pos < rec.End {
			return rec, true
		}
	}
	return nil, false
}

// NodesInRange returns, in document order, every record whose [Start, End)
// intersects [start, end).
func (m *TextMap) NodesInRange(start, end int) []*TextNodeRecord {
	var out []*TextNodeRecord
	for _, rec := range m.Nodes {
		if rec.Start < end && rec.End > start {
			out = append(out, rec)
		}
	}
	return out
}

// PlainTextToDOM maps a plain-text offset to a (path, offset-in-node) pair.
func (m *TextMap) PlainTextToDOM(pos int) (path string, offsetInNode int, ok bool) {
	rec, found := m.NodeAtPosition(pos)
	if !found {
		return "", 0, false
	}
	return rec.Path.String(), pos - rec.Start, true
}

// DOMToPlainText maps a (path, offset-in-node) pair to a plain-text offset.
func (m *TextMap) DOMToPlainText(path string, offset int) (pos int, ok bool) {
	rec, found := m.NodeByPath(path)
	if !found {
		return 0, false
	}
	return rec.Start + offset, true
}
