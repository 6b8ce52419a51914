package analyzer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// UnknownVersion is reported when no version source yields a usable value.
const UnknownVersion = "unknown"

// muleArtifactSchema is the shape we require of mule-artifact.json before
// trusting its fields. Manifests that fail validation are ignored rather
// than feeding garbage into the version buckets.
const muleArtifactSchema = `{
	"type": "object",
	"properties": {
		"minMuleVersion": {"type": "string"},
		"name": {"type": "string"}
	}
}`

var artifactSchema = compileArtifactSchema()

func compileArtifactSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(muleArtifactSchema))
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("mule-artifact.schema.json", doc); err != nil {
		panic(err)
	}
	return c.MustCompile("mule-artifact.schema.json")
}

// DetectMuleVersion extracts the Mule runtime version for a project root.
// Sources are tried in order: the pom.xml mule.version property, the
// mule-maven-plugin version (reported as "plugin-<v>"), and the packaging
// manifest's minMuleVersion. Failures fall through to the next source; the
// result is UnknownVersion when all are exhausted.
func DetectMuleVersion(root string, warnf func(format string, args ...any)) string {
	if v := versionFromPom(filepath.Join(root, "pom.xml"), warnf); v != UnknownVersion {
		return v
	}
	if v := versionFromArtifact(filepath.Join(root, "mule-artifact.json"), warnf); v != UnknownVersion {
		return v
	}
	return UnknownVersion
}

// IsLegacyVersion reports whether a version string denotes a Mule 3.x
// runtime, which is end-of-life and requires a full migration.
func IsLegacyVersion(version string) bool {
	return strings.HasPrefix(version, "3.")
}

func versionFromPom(path string, warnf func(format string, args ...any)) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return UnknownVersion
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		warnf("Warning: Could not parse %s: %v", path, err)
		return UnknownVersion
	}

	// mule.version property is authoritative when present.
	if el := doc.FindElement("//properties/mule.version"); el != nil {
		if v := strings.TrimSpace(el.Text()); v != "" {
			return v
		}
	}

	// Fall back to the mule-maven-plugin version.
	for _, plugin := range doc.FindElements("//plugin") {
		artifact := plugin.SelectElement("artifactId")
		if artifact == nil || strings.TrimSpace(artifact.Text()) != "mule-maven-plugin" {
			continue
		}
		if version := plugin.SelectElement("version"); version != nil {
			if v := strings.TrimSpace(version.Text()); v != "" {
				return fmt.Sprintf("plugin-%s", v)
			}
		}
	}

	return UnknownVersion
}

func versionFromArtifact(path string, warnf func(format string, args ...any)) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return UnknownVersion
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		warnf("Warning: Could not parse %s: %v", path, err)
		return UnknownVersion
	}
	if err := artifactSchema.Validate(instance); err != nil {
		warnf("Warning: Invalid packaging manifest %s: %v", path, err)
		return UnknownVersion
	}

	manifest, ok := instance.(map[string]any)
	if !ok {
		return UnknownVersion
	}
	if v, ok := manifest["minMuleVersion"].(string); ok && v != "" {
		return v
	}
	return UnknownVersion
}
