// Package coord holds the dependency coordinate shared by the manifest and
// repository metadata models, and the error kinds both of them report.
package coord

import (
	"fmt"
	"path"
	"strings"
)

// Coordinate identifies a published artifact.
type Coordinate struct {
	Group    string // e.g., "dev.zio"
	Artifact string // e.g., "zio_3"
	Version  string // opaque, e.g., "2.0.0-RC1"
}

// String renders the coordinate as group:artifact:version.
func (c Coordinate) String() string {
	return fmt.Sprintf("%s:%s:%s", c.Group, c.Artifact, c.Version)
}

// Module renders the version-less group:artifact pair.
func (c Coordinate) Module() string {
	return c.Group + ":" + c.Artifact
}

// MetadataPath returns the repository-relative path of the artifact's
// maven-metadata.xml, e.g. "dev/zio/zio_3/maven-metadata.xml".
func (c Coordinate) MetadataPath() string {
	return path.Join(c.groupDir(), c.Artifact, "maven-metadata.xml")
}

// POMPath returns the repository-relative path of the POM for this version,
// e.g. "dev/zio/zio_3/1.0.8/zio_3-1.0.8.pom".
func (c Coordinate) POMPath() string {
	file := fmt.Sprintf("%s-%s.pom", c.Artifact, c.Version)
	return path.Join(c.groupDir(), c.Artifact, c.Version, file)
}

func (c Coordinate) groupDir() string {
	return strings.ReplaceAll(c.Group, ".", "/")
}
