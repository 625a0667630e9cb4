// Package anchorscan extracts element id attributes from HTML documents.
//
// The document is parsed once, permissively (as browsers do), then walked in
// document order. A visitor decides per id whether to continue, so the same
// traversal serves both short-circuit lookups and exhaustive collection.
package anchorscan

import (
	"io"

	"golang.org/x/net/html"
)

// Visitor receives each element id in document pre-order.
// Returning false stops the walk immediately.
type Visitor func(id string) bool

// WalkIDs parses the HTML from r and invokes visit for every non-empty id
// attribute, in document order.
//
// Malformed HTML still parses: the html5 algorithm recovers from broken
// markup, so a missing anchor is reported by the visitor simply never
// matching. The only error surfaced here is a failure to read from r.
func WalkIDs(r io.Reader, visit Visitor) error {
	doc, err := html.Parse(r)
	if err != nil {
		return err
	}
	for node := range doc.Descendants() {
		if node.Type != html.ElementNode {
			continue
		}
		if id, ok := elementID(node); ok {
			if !visit(id) {
				return nil
			}
		}
	}
	return nil
}

// elementID returns the value of the node's id attribute, if present.
// Empty ids are skipped: they cannot be addressed by a fragment.
func elementID(node *html.Node) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Key == `id` && attr.Val != "" {
			return attr.Val, true
		}
	}
	return "", false
}
