package maven

import (
	"encoding/xml"
	"fmt"
)

// EncodeMetadata renders m as an indented maven-metadata.xml document.
func EncodeMetadata(m *Metadata) ([]byte, error) {
	doc := metadataDoc{
		GroupID:    []string{m.GroupID},
		ArtifactID: []string{m.ArtifactID},
		Versioning: []versioningDoc{{
			Latest:      []string{m.Versioning.Latest},
			Release:     []string{m.Versioning.Release},
			Versions:    []versionsDoc{{Version: m.Versioning.Versions}},
			LastUpdated: []string{m.Versioning.LastUpdated},
		}},
	}
	return marshal("metadata", doc)
}

// EncodePOM renders the dependency list of p as an indented POM document.
func EncodePOM(p *POM) ([]byte, error) {
	deps := make([]dependencyDoc, 0, len(p.Dependencies))
	for _, d := range p.Dependencies {
		dd := dependencyDoc{
			GroupID:    []string{d.GroupID},
			ArtifactID: []string{d.ArtifactID},
			Version:    []string{d.Version},
		}
		if d.HasScope() {
			dd.Scope = []string{d.Scope}
		}
		deps = append(deps, dd)
	}
	doc := pomDoc{Dependencies: []dependenciesDoc{{Dependency: deps}}}
	return marshal("pom", doc)
}

func marshal(what string, doc any) ([]byte, error) {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", what, err)
	}
	buf := make([]byte, 0, len(xml.Header)+len(out)+1)
	buf = append(buf, xml.Header...)
	buf = append(buf, out...)
	return append(buf, '\n'), nil
}
