package block

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/pkg/surface"
)

// FindNearestBlock walks up from node to the closest element whose id names
// a live block of doc. The walk stops at boundary, which is never itself a
// block. It returns ErrNotFound when no block encloses node.
func FindNearestBlock(doc *Document, node, boundary *html.Node) (*Block, error) {
	b, _, err := FindNearestElement(doc, node, boundary)
	return b, err
}

// FindNearestElement is FindNearestBlock that also returns the element.
func FindNearestElement(doc *Document, node, boundary *html.Node) (*Block, *html.Node, error) {
	for n := node; n != nil && n != boundary; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		id, ok := surface.Attr(n, AttrID)
		if !ok {
			continue
		}
		if b, ok := doc.Get(id); ok {
			return b, n, nil
		}
	}
	return nil, nil, fmt.Errorf("nearest block: %w", ErrNotFound)
}
