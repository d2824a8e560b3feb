// Package report renders parsed manifests and repository documents for
// people and scripts.
package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/frederic-klein/onus/internal/manifest"
	"github.com/frederic-klein/onus/internal/maven"
)

// Format selects the output representation.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, FormatText, FormatYAML)
	}
}

// Emitter writes reports to w.
type Emitter struct {
	w      io.Writer
	format Format
}

// NewEmitter creates a new emitter.
func NewEmitter(w io.Writer, format Format) *Emitter {
	return &Emitter{w: w, format: format}
}

type manifestView struct {
	Dependencies map[string]manifestDependencyView `yaml:"dependencies"`
}

type manifestDependencyView struct {
	Organization string `yaml:"organization"`
	Version      string `yaml:"version"`
}

type metadataView struct {
	GroupID     string   `yaml:"groupId"`
	ArtifactID  string   `yaml:"artifactId"`
	Latest      string   `yaml:"latest"`
	Release     string   `yaml:"release"`
	LastUpdated string   `yaml:"lastUpdated"`
	Versions    []string `yaml:"versions"`
}

type pomView struct {
	Dependencies []pomDependencyView `yaml:"dependencies"`
}

type pomDependencyView struct {
	GroupID    string `yaml:"groupId"`
	ArtifactID string `yaml:"artifactId"`
	Version    string `yaml:"version"`
	Scope      string `yaml:"scope,omitempty"`
}

// EmitManifest writes the manifest's dependencies sorted by name.
func (e *Emitter) EmitManifest(m *manifest.Manifest) error {
	if e.format == FormatYAML {
		view := manifestView{Dependencies: make(map[string]manifestDependencyView, m.Len())}
		for name, d := range m.Dependencies {
			view.Dependencies[name] = manifestDependencyView{Organization: d.Organization, Version: d.Version}
		}
		return e.yaml(view)
	}

	if _, err := fmt.Fprint(e.w, "DEPENDENCIES\n"); err != nil {
		return err
	}
	for _, name := range m.Names() {
		d := m.Dependencies[name]
		if _, err := fmt.Fprintf(e.w, "  %s\n    organization: %s\n    version: %s\n",
			name, d.Organization, d.Version); err != nil {
			return err
		}
	}
	return nil
}

// EmitMetadata writes an artifact's versioning block, versions in document
// order.
func (e *Emitter) EmitMetadata(m *maven.Metadata) error {
	v := m.Versioning
	if e.format == FormatYAML {
		return e.yaml(metadataView{
			GroupID:     m.GroupID,
			ArtifactID:  m.ArtifactID,
			Latest:      v.Latest,
			Release:     v.Release,
			LastUpdated: v.LastUpdated,
			Versions:    v.Versions,
		})
	}

	if _, err := fmt.Fprintf(e.w, "METADATA\n  %s:%s\n", m.GroupID, m.ArtifactID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(e.w, "    latest: %s\n    release: %s\n    lastUpdated: %s\n",
		v.Latest, v.Release, v.LastUpdated); err != nil {
		return err
	}
	if len(v.Versions) == 0 {
		return nil
	}
	if _, err := fmt.Fprint(e.w, "    versions:\n"); err != nil {
		return err
	}
	for _, ver := range v.Versions {
		if _, err := fmt.Fprintf(e.w, "      %s\n", ver); err != nil {
			return err
		}
	}
	return nil
}

// EmitPOM writes a POM's dependencies in document order. The text form
// shows the effective scope; the YAML form only a declared one.
func (e *Emitter) EmitPOM(p *maven.POM) error {
	if e.format == FormatYAML {
		view := pomView{Dependencies: make([]pomDependencyView, 0, len(p.Dependencies))}
		for _, d := range p.Dependencies {
			view.Dependencies = append(view.Dependencies, pomDependencyView{
				GroupID:    d.GroupID,
				ArtifactID: d.ArtifactID,
				Version:    d.Version,
				Scope:      d.Scope,
			})
		}
		return e.yaml(view)
	}

	if _, err := fmt.Fprint(e.w, "DEPENDENCIES\n"); err != nil {
		return err
	}
	for _, d := range p.Dependencies {
		if _, err := fmt.Fprintf(e.w, "  %s\n    scope: %s\n", d.Coordinate(), d.EffectiveScope()); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) yaml(v any) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
