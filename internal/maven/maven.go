// Package maven decodes the two Maven repository documents a resolver needs:
// maven-metadata.xml, which lists the published versions of an artifact, and
// the per-version POM, which lists that version's own dependencies.
//
// Callers hand in already-fetched bytes; nothing here performs I/O.
package maven

import (
	"slices"

	"github.com/frederic-klein/onus/internal/coord"
)

const (
	// MetadataFileName is the document name reported in metadata decode errors.
	MetadataFileName = "maven-metadata.xml"
	// POMFileName is the document name reported in POM decode errors.
	POMFileName = "pom.xml"

	// DefaultScope applies to a dependency that declares no scope.
	DefaultScope = "compile"
)

// Metadata describes one artifact across all of its published versions.
type Metadata struct {
	GroupID    string
	ArtifactID string
	Versioning Versioning
}

// Versioning is the versioning block of maven-metadata.xml.
//
// Latest and Release are expected to appear in Versions, but that is not
// checked; use HasVersion if it matters.
type Versioning struct {
	Latest      string
	Release     string
	Versions    []string // document order, duplicates kept
	LastUpdated string   // opaque, e.g. "20211214233703"
}

// Coordinate returns the coordinate of the given version of this artifact.
func (m *Metadata) Coordinate(version string) coord.Coordinate {
	return coord.Coordinate{Group: m.GroupID, Artifact: m.ArtifactID, Version: version}
}

// HasVersion reports whether version is listed in Versioning.Versions.
func (m *Metadata) HasVersion(version string) bool {
	return slices.Contains(m.Versioning.Versions, version)
}

// POM holds the dependencies a single published version declares.
type POM struct {
	Dependencies []Dependency // document order
}

// Dependency is one <dependency> entry of a POM.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Scope      string // empty when the POM declares none
}

// HasScope reports whether the POM declared a scope for the dependency.
func (d Dependency) HasScope() bool {
	return d.Scope != ""
}

// EffectiveScope returns the declared scope, or DefaultScope if none.
func (d Dependency) EffectiveScope() string {
	if d.Scope == "" {
		return DefaultScope
	}
	return d.Scope
}

// Coordinate returns the dependency's coordinate.
func (d Dependency) Coordinate() coord.Coordinate {
	return coord.Coordinate{Group: d.GroupID, Artifact: d.ArtifactID, Version: d.Version}
}
