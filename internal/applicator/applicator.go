// Package applicator wraps a resolved [start, end) plain-text range in
// marker elements, splitting and re-parenting the DOM text nodes the range
// spans.
package applicator

import (
	"fmt"
	"strings"

	"github.com/readlark/htmlhl/internal/htmldom"
	"golang.org/x/net/html"
)

// RGB is a resolved highlight color, three 0-255 components.
type RGB [3]uint8

// Apply wraps [start, end) of the document's plain-text projection in
// marker elements. It returns false if no text-node record intersects the
// range (nothing to wrap). Tag selection and the CSS style are computed
// per wrap site: an anchor (`a`) ancestor forces the tag to span instead of
// markerTag, and a pre/code ancestor selects the reduced-opacity style.
func Apply(tm *htmldom.TextMap, start, end int, markerTag, anchorID string, color RGB) bool {
	records := tm.NodesInRange(start, end)
	if len(records) == 0 {
		return false
	}

	jobs := make([]wrapJob, 0, len(records))
	for i, rec := range records {
		localStart, localEnd := localRange(rec, i, len(records), start, end)
		localStart, localEnd = clamp(localStart, localEnd, rec.End-rec.Start)
		if localStart >= localEnd {
			continue
		}
		jobs = append(jobs, wrapJob{rec: rec, start: localStart, end: localEnd})
	}
	if len(jobs) == 0 {
		return false
	}

	// Reverse document order: wrapping an earlier node must not disturb the
	// parent/position of a later one that shares the same parent.
	for k := len(jobs) - 1; k >= 0; k-- {
		wrapNode(jobs[k].rec.Node, jobs[k].start, jobs[k].end, markerTag, anchorID, color)
	}
	return true
}

type wrapJob struct {
	rec        *htmldom.TextNodeRecord
	start, end int
}

// localRange implements the first/last/interior rules of the multi-node
// wrap path; for a single intersecting record both global bounds apply
// (first and last coincide).
func localRange(rec *htmldom.TextNodeRecord, index, count, globalStart, globalEnd int) (int, int) {
	length := rec.End - rec.Start
	if count == 1 {
		return globalStart - rec.Start, globalEnd - rec.Start
	}
	switch index {
	case 0:
		return globalStart - rec.Start, length
	case count - 1:
		return 0, globalEnd - rec.Start
	default:
		return 0, length
	}
}

func clamp(start, end, length int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	return start, end
}

func wrapNode(node *html.Node, localStart, localEnd int, markerTag, anchorID string, color RGB) {
	parent := node.Parent
	if parent == nil {
		return
	}
	text := node.Data
	before, middle, after := text[:localStart], text[localStart:localEnd], text[localEnd:]

	tag := markerTag
	if hasAncestor(node, "a") {
		tag = "span"
	}
	inCode := hasAncestor(node, "pre") || hasAncestor(node, "code")

	wrapper := &html.Node{Type: html.ElementNode, Data: tag, Attr: []html.Attribute{
		{Key: "data-hl-id", Val: anchorID},
		{Key: "style", Val: style(color, inCode)},
	}}
	wrapper.AppendChild(&html.Node{Type: html.TextNode, Data: middle})

	next := node.NextSibling
	parent.InsertBefore(wrapper, next)
	if after != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: after}, next)
	}
	// The original node keeps the text before the range, so a record that
	// still points at it stays valid for a range earlier in the same node.
	if before != "" {
		node.Data = before
	} else {
		parent.RemoveChild(node)
	}
}

func hasAncestor(n *html.Node, tag string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && strings.EqualFold(p.Data, tag) {
			return true
		}
	}
	return false
}

// style renders one of two fixed CSS templates, selected by whether the
// wrap site sits inside a pre/code ancestor. Numeric values are always
// plain decimal, never locale-formatted.
func style(c RGB, inCode bool) string {
	if inCode {
		return fmt.Sprintf("background-color:rgba(%d,%d,%d,0.3);", c[0], c[1], c[2])
	}
	return fmt.Sprintf("background-color:rgba(%d,%d,%d,0.4);border-radius:2px;padding:0 2px;", c[0], c[1], c[2])
}
