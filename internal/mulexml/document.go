// Package mulexml parses Mule configuration XML documents into
// namespace-aware element tallies and connector attributions.
package mulexml

import (
	"errors"

	"github.com/beevik/etree"
)

// Document wraps one parsed Mule configuration file. All derived state
// (namespace mappings, tallies) is scoped to a single Document and never
// shared across files, because namespace prefixes are only consistent within
// one document.
type Document struct {
	root *etree.Element
}

// Parse reads a configuration document from raw bytes. A malformed document
// returns an error; callers are expected to degrade that file's contribution
// to zero rather than abort the run.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return &Document{root: root}, nil
}

// Root returns the document root element.
func (d *Document) Root() *etree.Element {
	return d.root
}

// walk visits every element in document order, root first.
func (d *Document) walk(fn func(*etree.Element)) {
	var visit func(e *etree.Element)
	visit = func(e *etree.Element) {
		fn(e)
		for _, child := range e.ChildElements() {
			visit(child)
		}
	}
	visit(d.root)
}
