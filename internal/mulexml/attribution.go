package mulexml

import (
	"github.com/beevik/etree"
)

// Attribution is the per-file connector usage result.
type Attribution struct {
	// ConnectorUsage counts attributed elements per connector, including the
	// reserved "core" bucket for the platform's own vocabulary.
	ConnectorUsage map[string]int

	// ComponentTypes counts elements per "<connector>:<localName>" key, or
	// bare local name for core components.
	ComponentTypes map[string]int

	// DeclaredConnectors are the connector names declared via namespace
	// prefixes in this document, whether or not any element was attributed
	// to them. Declaration alone is a migration signal, so this set feeds
	// the project's unique-connectors roll-up directly.
	DeclaredConnectors []string
}

// AttributeConnectors resolves each element of a document to the connector
// that produced it. Elements carrying a Mule namespace URI attribute to that
// URI's connector; elements with a literal prefix fall back to the
// prefix-to-connector map; unresolvable prefixes are silently skipped;
// plain elements belong to the platform core.
func AttributeConnectors(doc *Document, m *Mapping) *Attribution {
	a := &Attribution{
		ConnectorUsage: make(map[string]int),
		ComponentTypes: make(map[string]int),
	}

	prefixConnectors := m.PrefixConnectors()

	doc.walk(func(e *etree.Element) {
		uri, bound := m.elementURI(e)

		var connector string
		switch {
		case bound && uri != "":
			if !IsMuleSchema(uri) {
				return
			}
			connector = NormalizeConnector(ConnectorFromURI(uri))
		case !bound:
			var ok bool
			connector, ok = prefixConnectors[e.Space]
			if !ok {
				// Unresolvable prefix: no attribution, not an error.
				return
			}
		default:
			connector = "core"
		}

		a.ConnectorUsage[connector]++

		componentType := e.Tag
		if connector != "core" {
			componentType = connector + ":" + e.Tag
		}
		a.ComponentTypes[componentType]++
	})

	for _, name := range prefixConnectors {
		a.DeclaredConnectors = append(a.DeclaredConnectors, name)
	}

	return a
}
