// Package htmldom parses HTML into a golang.org/x/net/html tree rooted at
// body, builds the plain-text projection used by anchor resolution, and
// strips/normalizes prior highlight markers.
package htmldom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Parse delegates to golang.org/x/net/html and returns the body element,
// or the document element itself if the parsed tree has no body (e.g. a
// bare fragment).
func Parse(input string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return nil, err
	}
	if body := findBody(doc); body != nil {
		return body, nil
	}
	return doc, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// Serialize returns the inner HTML of root — the concatenated
// serialization of its children, not root itself, since root is body.
func Serialize(root *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
