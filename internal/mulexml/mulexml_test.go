package mulexml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coreURI = "http://www.mulesoft.org/schema/mule/core"

func parseDoc(t *testing.T, xml string) (*Document, *Mapping) {
	t.Helper()
	doc, err := Parse([]byte(xml))
	require.NoError(t, err)
	return doc, ResolveNamespaces(doc.Root())
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("<mule><flow></mule>"))
	assert.Error(t, err)

	_, err = Parse([]byte("   "))
	assert.Error(t, err)
}

func TestResolveNamespaces_DirectDeclarations(t *testing.T) {
	_, m := parseDoc(t, `<mule xmlns="`+coreURI+`"
		xmlns:db="http://www.mulesoft.org/schema/mule/db"
		xmlns:foo="http://example.com/foo"/>`)

	info, ok := m.Lookup("http://www.mulesoft.org/schema/mule/db")
	require.True(t, ok)
	assert.Equal(t, "db", info.Prefix)
	assert.Equal(t, "db", info.Connector)

	_, ok = m.Lookup("http://example.com/foo")
	assert.False(t, ok, "non-Mule namespaces are not connector mappings")

	assert.Equal(t, coreURI, m.DefaultURI())
}

func TestResolveNamespaces_SchemaLocation(t *testing.T) {
	_, m := parseDoc(t, `<mule
		xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
		xmlns:http="http://www.mulesoft.org/schema/mule/http"
		xsi:schemaLocation="http://www.mulesoft.org/schema/mule/http http://www.mulesoft.org/schema/mule/http/current/mule-http.xsd"/>`)

	info, ok := m.Lookup("http://www.mulesoft.org/schema/mule/http")
	require.True(t, ok)
	assert.Equal(t, "http", info.Prefix)
	assert.Equal(t, "http", info.Connector)
}

func TestResolveNamespaces_SchemaLocationWithoutPrefix(t *testing.T) {
	// A schemaLocation pair whose URI has no matching xmlns declaration
	// cannot recover a prefix and is skipped.
	_, m := parseDoc(t, `<mule
		xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
		xsi:schemaLocation="http://www.mulesoft.org/schema/mule/sftp http://www.mulesoft.org/schema/mule/sftp/current/mule-sftp.xsd"/>`)

	_, ok := m.Lookup("http://www.mulesoft.org/schema/mule/sftp")
	assert.False(t, ok)
}

func TestResolveNamespaces_OddSchemaLocationPair(t *testing.T) {
	// A trailing URI without its schema path is ignored rather than failing.
	_, m := parseDoc(t, `<mule
		xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
		xmlns:db="http://www.mulesoft.org/schema/mule/db"
		xsi:schemaLocation="http://www.mulesoft.org/schema/mule/db"/>`)

	_, ok := m.Lookup("http://www.mulesoft.org/schema/mule/db")
	assert.True(t, ok, "direct declaration pass still resolves the namespace")
}

func TestPrefixConnectors_ExcludesReserved(t *testing.T) {
	_, m := parseDoc(t, `<mule
		xmlns:doc="http://www.mulesoft.org/schema/mule/documentation"
		xmlns:db="http://www.mulesoft.org/schema/mule/db"/>`)

	connectors := m.PrefixConnectors()
	assert.Equal(t, map[string]string{"db": "db"}, connectors)

	for _, name := range connectors {
		assert.NotEqual(t, "core", name)
	}
}

func TestTallyElements(t *testing.T) {
	doc, m := parseDoc(t, `<mule xmlns="`+coreURI+`"
		xmlns:db="http://www.mulesoft.org/schema/mule/db"
		xmlns:ext="http://example.com/ext">
		<flow name="a">
			<db:select/>
			<db:select/>
			<logger/>
		</flow>
		<sub-flow name="b">
			<ext:widget/>
		</sub-flow>
	</mule>`)

	tally := TallyElements(doc, m)

	assert.Equal(t, 1, tally.Flows)
	assert.Equal(t, 1, tally.Subflows)
	assert.Equal(t, 7, tally.Components, "root element is excluded from the total")
	assert.LessOrEqual(t, tally.Flows+tally.Subflows, tally.Components)

	assert.Equal(t, 2, tally.TagsByNamespace["db (db:)"]["select"])
	assert.Equal(t, 1, tally.TagsByNamespace["other (http://example.com/ext)"]["widget"])
	// Default namespace is the core URI with no declared prefix.
	assert.Equal(t, 1, tally.TagsByNamespace["core (ns:)"]["flow"])
	assert.Equal(t, 1, tally.TagsByNamespace["core (ns:)"]["logger"])
}

func TestTallyElements_NoNamespace(t *testing.T) {
	doc, m := parseDoc(t, `<mule><flow><logger/></flow></mule>`)

	tally := TallyElements(doc, m)

	assert.Equal(t, 1, tally.Flows)
	assert.Equal(t, 2, tally.Components)
	assert.Equal(t, 1, tally.TagsByNamespace["default"]["logger"])
	assert.Equal(t, 1, tally.TagsByNamespace["default"]["mule"])
}

func TestAttributeConnectors_Scenario(t *testing.T) {
	// A document declaring xmlns:db with one db:select inside a bare flow.
	doc, m := parseDoc(t, `<mule xmlns:db="http://www.mulesoft.org/schema/mule/db">
		<flow name="main">
			<db:select/>
		</flow>
	</mule>`)

	tally := TallyElements(doc, m)
	attr := AttributeConnectors(doc, m)

	assert.Equal(t, 1, tally.Flows)
	assert.Equal(t, []string{"db"}, attr.DeclaredConnectors)
	assert.Equal(t, 1, attr.ConnectorUsage["db"])
	assert.Equal(t, 1, attr.ComponentTypes["db:select"])
	// The bare root and flow elements attribute to core.
	assert.Equal(t, 2, attr.ConnectorUsage["core"])
	assert.Equal(t, 1, attr.ComponentTypes["flow"])
}

func TestAttributeConnectors_ReservedCollapse(t *testing.T) {
	doc, m := parseDoc(t, `<mule xmlns="`+coreURI+`"
		xmlns:doc="http://www.mulesoft.org/schema/mule/documentation">
		<flow>
			<doc:description/>
		</flow>
	</mule>`)

	attr := AttributeConnectors(doc, m)

	// documentation collapses into core; the doc: prefix resolves through
	// its URI, not the prefix-connector map.
	assert.Equal(t, 3, attr.ConnectorUsage["core"])
	assert.Empty(t, attr.DeclaredConnectors)
	assert.Equal(t, 1, attr.ComponentTypes["description"])
}

func TestAttributeConnectors_UnresolvablePrefix(t *testing.T) {
	doc, m := parseDoc(t, `<mule><flow><ghost:thing/></flow></mule>`)

	attr := AttributeConnectors(doc, m)

	assert.Equal(t, 2, attr.ConnectorUsage["core"])
	// ghost: has no declaration anywhere, so it contributes nothing.
	total := 0
	for _, n := range attr.ConnectorUsage {
		total += n
	}
	assert.Equal(t, 2, total)
}

func TestAttributeConnectors_ForeignNamespaceSkipped(t *testing.T) {
	doc, m := parseDoc(t, `<mule xmlns:ext="http://example.com/ext">
		<ext:widget/>
	</mule>`)

	attr := AttributeConnectors(doc, m)

	assert.Zero(t, attr.ConnectorUsage["ext"])
	assert.Equal(t, 1, attr.ConnectorUsage["core"], "only the bare root attributes")
}
