package mulexml

import (
	"fmt"

	"github.com/beevik/etree"
)

// Tally is the per-file element census: element counts grouped by namespace
// key and local name, plus flow topology counts.
type Tally struct {
	// TagsByNamespace maps a namespace key to local-name occurrence counts.
	// Keys take one of four forms: "<connector> (<prefix>:)" for resolved
	// connector namespaces, "<connector> (ns:)" for Mule namespaces with no
	// resolvable prefix, "other (<uri>)" for foreign namespaces, and
	// "default" for unnamespaced elements.
	TagsByNamespace map[string]map[string]int

	Flows    int
	Subflows int

	// Components is the total element count excluding the document root.
	Components int
}

// TallyElements walks every element of a document, classifying each into a
// namespace key and local name. The root element is tallied like any other
// but excluded from the component total.
func TallyElements(doc *Document, m *Mapping) *Tally {
	t := &Tally{TagsByNamespace: make(map[string]map[string]int)}

	total := 0
	doc.walk(func(e *etree.Element) {
		total++

		uri, bound := m.elementURI(e)
		localName := e.Tag
		var key string

		switch {
		case bound && uri != "":
			if info, ok := m.Lookup(uri); ok {
				key = fmt.Sprintf("%s (%s:)", info.Connector, info.Prefix)
			} else if IsMuleSchema(uri) {
				key = ConnectorFromURI(uri) + " (ns:)"
			} else {
				key = fmt.Sprintf("other (%s)", uri)
			}
		case !bound:
			// Literal prefix with no root-level binding: keep the raw
			// qualified form under the default bucket.
			key = "default"
			localName = e.Space + ":" + e.Tag
		default:
			key = "default"
		}

		if t.TagsByNamespace[key] == nil {
			t.TagsByNamespace[key] = make(map[string]int)
		}
		t.TagsByNamespace[key][localName]++

		// Flow topology: match both namespaced and bare forms.
		if bound {
			switch e.Tag {
			case "flow":
				t.Flows++
			case "sub-flow":
				t.Subflows++
			}
		}
	})

	t.Components = total - 1
	return t
}

// CountElements counts elements whose resolved namespace URI and local name
// both match. Unresolvable elements never match.
func CountElements(doc *Document, m *Mapping, uri, local string) int {
	n := 0
	doc.walk(func(e *etree.Element) {
		if elURI, bound := m.elementURI(e); bound && elURI == uri && e.Tag == local {
			n++
		}
	})
	return n
}
