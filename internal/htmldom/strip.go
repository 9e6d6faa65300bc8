package htmldom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// LegacyMarkerAttr is the attribute that identified highlight spans before
// the dedicated marker tag existed; RemoveHighlights still recognizes it so
// documents highlighted by an older version of the reading app strip
// cleanly.
const LegacyMarkerAttr = "data-hl-id"

// RemoveHighlights unwraps every marker element (current tag or legacy
// span[data-hl-id]) under root, in document order, then normalizes
// adjacent text siblings so the "no adjacent text nodes" invariant holds
// again.
func RemoveHighlights(root *html.Node, markerTag string) error {
	doc := goquery.NewDocumentFromNode(root)
	selector := fmt.Sprintf("%s, span[%s]", strings.ToLower(markerTag), LegacyMarkerAttr)
	sel := doc.Find(selector)

	targets := documentOrder(root, sel.Nodes)
	for _, n := range targets {
		unwrap(n)
	}
	normalizeText(root)
	return nil
}

// documentOrder sorts nodes (assumed to all be descendants of root) into
// pre-order document order.
func documentOrder(root *html.Node, nodes []*html.Node) []*html.Node {
	if len(nodes) == 0 {
		return nil
	}
	index := make(map[*html.Node]int, len(nodes))
	counter := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		index[n] = counter
		counter++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	out := make([]*html.Node, len(nodes))
	copy(out, nodes)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && index[out[j-1]] > index[out[j]]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// unwrap replaces n with its children, in n's former position under its
// parent.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}

// normalizeText merges adjacent text-node siblings anywhere under n.
func normalizeText(n *html.Node) {
	child := n.FirstChild
	for child != nil {
		if child.Type == html.TextNode {
			for child.NextSibling != nil && child.NextSibling.Type == html.TextNode {
				sib := child.NextSibling
				child.Data += sib.Data
				n.RemoveChild(sib)
			}
		} else if child.Type == html.ElementNode {
			normalizeText(child)
		}
		child = child.NextSibling
	}
}
