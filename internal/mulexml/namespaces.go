package mulexml

import (
	"strings"

	"github.com/beevik/etree"
)

const (
	// muleSchemaMarker identifies namespace URIs that follow the Mule
	// connector schema convention.
	muleSchemaMarker = "mulesoft.org/schema/mule"

	xsiURI = "http://www.w3.org/2001/XMLSchema-instance"
)

// reservedSegments are final URI segments that belong to the platform's own
// vocabulary rather than a connector. They collapse to "core" during
// attribution and are never reported as connectors.
var reservedSegments = map[string]bool{
	"core":          true,
	"documentation": true,
}

// NamespaceInfo ties a namespace URI to its declared prefix and the
// connector name derived from the URI.
type NamespaceInfo struct {
	Prefix    string `json:"prefix"`
	Connector string `json:"connector_name"`
}

// Mapping is the namespace resolution result for one document. It is built
// per file and deliberately never cached or shared: prefixes are
// document-local by convention, and a shared table would silently
// cross-contaminate files.
type Mapping struct {
	byURI      map[string]NamespaceInfo
	prefixURI  map[string]string
	defaultURI string
}

// ResolveNamespaces builds the URI to {prefix, connector} mapping for one
// document. Two passes run in order: the xsi:schemaLocation declaration is
// parsed as alternating (namespace, schema path) pairs, then every direct
// xmlns declaration on the root is scanned. The second pass wins on
// conflict, so a document with no schemaLocation at all still resolves.
func ResolveNamespaces(root *etree.Element) *Mapping {
	m := &Mapping{
		byURI:     make(map[string]NamespaceInfo),
		prefixURI: make(map[string]string),
	}

	for _, attr := range root.Attr {
		switch {
		case attr.Space == "xmlns":
			m.prefixURI[attr.Key] = attr.Value
		case attr.Space == "" && attr.Key == "xmlns":
			m.defaultURI = attr.Value
		}
	}

	// Pass one: schemaLocation pairs. Only URIs whose declared prefix can be
	// recovered from the root attributes are recorded.
	if loc := m.schemaLocation(root); loc != "" {
		parts := strings.Fields(loc)
		for i := 0; i+1 < len(parts); i += 2 {
			uri := parts[i]
			if !IsMuleSchema(uri) {
				continue
			}
			if prefix, ok := m.prefixForURI(uri); ok {
				m.byURI[uri] = NamespaceInfo{Prefix: prefix, Connector: ConnectorFromURI(uri)}
			}
		}
	}

	// Pass two: direct xmlns declarations, the fallback of record.
	for _, attr := range root.Attr {
		if attr.Space != "xmlns" || !IsMuleSchema(attr.Value) {
			continue
		}
		m.byURI[attr.Value] = NamespaceInfo{Prefix: attr.Key, Connector: ConnectorFromURI(attr.Value)}
	}

	return m
}

// Lookup returns the resolved info for a namespace URI.
func (m *Mapping) Lookup(uri string) (NamespaceInfo, bool) {
	info, ok := m.byURI[uri]
	return info, ok
}

// URIForPrefix returns the namespace URI declared for a prefix on the root.
func (m *Mapping) URIForPrefix(prefix string) (string, bool) {
	uri, ok := m.prefixURI[prefix]
	return uri, ok
}

// DefaultURI returns the document's default namespace, or "" if none is
// declared.
func (m *Mapping) DefaultURI() string {
	return m.defaultURI
}

// PrefixConnectors returns the prefix to connector map used for attribution
// and for the unique-connectors roll-up. Reserved platform segments are
// excluded, so "core" can never surface as a connector name.
func (m *Mapping) PrefixConnectors() map[string]string {
	connectors := make(map[string]string)
	for _, info := range m.byURI {
		if reservedSegments[info.Connector] {
			continue
		}
		connectors[info.Prefix] = info.Connector
	}
	return connectors
}

// elementURI resolves the namespace URI of an element from the root-level
// declarations. Elements without a prefix inherit the default namespace.
func (m *Mapping) elementURI(e *etree.Element) (string, bool) {
	if e.Space == "" {
		return m.defaultURI, true
	}
	uri, ok := m.prefixURI[e.Space]
	return uri, ok
}

// schemaLocation finds the xsi:schemaLocation attribute value, matching by
// the XMLSchema-instance URI rather than assuming the "xsi" prefix.
func (m *Mapping) schemaLocation(root *etree.Element) string {
	for _, attr := range root.Attr {
		if attr.Key != "schemaLocation" || attr.Space == "" || attr.Space == "xmlns" {
			continue
		}
		if m.prefixURI[attr.Space] == xsiURI {
			return attr.Value
		}
	}
	return ""
}

// prefixForURI finds the root attribute declaring a prefix for the URI.
func (m *Mapping) prefixForURI(uri string) (string, bool) {
	for prefix, declared := range m.prefixURI {
		if declared == uri {
			return prefix, true
		}
	}
	return "", false
}

// IsMuleSchema reports whether a namespace URI follows the Mule connector
// schema convention.
func IsMuleSchema(uri string) bool {
	return strings.Contains(uri, muleSchemaMarker)
}

// ConnectorFromURI derives a connector name from a Mule schema URI: its
// final path segment.
func ConnectorFromURI(uri string) string {
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		return uri[idx+1:]
	}
	return uri
}

// NormalizeConnector collapses reserved platform segments to "core".
func NormalizeConnector(name string) string {
	if reservedSegments[name] {
		return "core"
	}
	return name
}
