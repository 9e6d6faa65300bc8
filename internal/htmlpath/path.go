// Package htmlpath encodes and resolves deterministic, XPath-like
// identifiers for text nodes under an HTML body element.
package htmlpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// SegmentKind distinguishes the two kinds of path segment.
type SegmentKind int

const (
	// ElementSegment addresses an element by tag and like-tag sibling index.
	ElementSegment SegmentKind = iota
	// TextSegment addresses a non-whitespace text node by sibling index.
	TextSegment
)

// Segment is one step of a Path: either /tag[i] or /text()[i].
type Segment struct {
	Kind  SegmentKind
	Tag   string // lowercased; empty for TextSegment
	Index int
}

// Path is an ordered sequence of segments from body to a target node.
type Path struct {
	Segments []Segment
}

// String renders the path in its canonical form, e.g.
// "/body/p[0]/text()[1]". Index 0 is always written explicitly.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("/body")
	for _, s := range p.Segments {
		if s.Kind == TextSegment {
			fmt.Fprintf(&b, "/text()[%d]", s.Index)
		} else {
			fmt.Fprintf(&b, "/%s[%d]", s.Tag, s.Index)
		}
	}
	return b.String()
}

var (
	textSegRe = regexp.MustCompile(`^text\(\)(?:\[(\d+)\])?$`)
	elemSegRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9-]*)(?:\[(\d+)\])?$`)
)

// Parse splits a path string into segments. A leading "body" component
// (from the "/body" prefix) is discarded along with empty components
// produced by the leading slash.
func Parse(s string) (Path, error) {
	parts := strings.Split(s, "/")
	var segs []Segment
	for _, part := range parts {
		if part == "" || part == "body" {
			continue
		}
		if m := textSegRe.FindStringSubmatch(part); m != nil {
			idx := 0
			if m[1] != "" {
				idx, _ = strconv.Atoi(m[1])
			}
			segs = append(segs, Segment{Kind: TextSegment, Index: idx})
			continue
		}
		if m := elemSegRe.FindStringSubmatch(part); m != nil {
			idx := 0
			if m[2] != "" {
				idx, _ = strconv.Atoi(m[2])
			}
			segs = append(segs, Segment{Kind: ElementSegment, Tag: strings.ToLower(m[1]), Index: idx})
			continue
		}
		return Path{}, fmt.Errorf("htmlpath: invalid segment %q in path %q", part, s)
	}
	return Path{Segments: segs}, nil
}

// isWhitespaceText reports whether n is a text node whose data is empty or
// entirely whitespace.
func isWhitespaceText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// Encode walks node's ancestors up to (but not including) root, producing
// the Path that identifies it. It returns false if node is not a
// descendant of root or if an ancestor is not addressable (a node whose
// type is neither element nor text).
func Encode(root, node *html.Node) (Path, bool) {
	var segs []Segment
	cur := node
	for cur != nil && cur != root {
		parent := cur.Parent
		if parent == nil {
			return Path{}, false
		}
		var seg Segment
		switch cur.Type {
		case html.TextNode:
			seg = Segment{Kind: TextSegment, Index: precedingTextSiblings(cur)}
		case html.ElementNode:
			tag := strings.ToLower(cur.Data)
			seg = Segment{Kind: ElementSegment, Tag: tag, Index: precedingElementSiblings(cur, tag)}
		default:
			return Path{}, false
		}
		segs = append([]Segment{seg}, segs...)
		cur = parent
	}
	if cur != root {
		return Path{}, false
	}
	return Path{Segments: segs}, true
}

// Resolve walks root's descendants following p, returning the addressed
// node, or false if any segment cannot be satisfied.
func Resolve(root *html.Node, p Path) (*html.Node, bool) {
	cur := root
	for _, seg := range p.Segments {
		next := findNthSibling(cur, seg)
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func findNthSibling(parent *html.Node, seg Segment) *html.Node {
	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if !segmentMatches(c, seg) {
			continue
		}
		if count == seg.Index {
			return c
		}
		count++
	}
	return nil
}

func segmentMatches(n *html.Node, seg Segment) bool {
	switch seg.Kind {
	case TextSegment:
		return n.Type == html.TextNode && !isWhitespaceText(n)
	default:
		return n.Type == html.ElementNode && strings.EqualFold(n.Data, seg.Tag)
	}
}

func precedingTextSiblings(n *html.Node) int {
	count := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.TextNode && !isWhitespaceText(s) {
			count++
		}
	}
	return count
}

func precedingElementSiblings(n *html.Node, tag string) int {
	count := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && strings.EqualFold(s.Data, tag) {
			count++
		}
	}
	return count
}
