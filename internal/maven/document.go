package maven

import "encoding/xml"

// Element names of both document shapes live here and nowhere else. Elements
// that must appear once are still decoded into slices so a missing or
// repeated element can be reported rather than silently defaulted.

type metadataDoc struct {
	XMLName    xml.Name        `xml:"metadata"`
	GroupID    []string        `xml:"groupId"`
	ArtifactID []string        `xml:"artifactId"`
	Versioning []versioningDoc `xml:"versioning"`
}

type versioningDoc struct {
	Latest      []string      `xml:"latest"`
	Release     []string      `xml:"release"`
	Versions    []versionsDoc `xml:"versions"`
	LastUpdated []string      `xml:"lastUpdated"`
}

type versionsDoc struct {
	Version []string `xml:"version"`
}

type pomDoc struct {
	XMLName      xml.Name          `xml:"project"`
	Dependencies []dependenciesDoc `xml:"dependencies"`
}

type dependenciesDoc struct {
	Dependency []dependencyDoc `xml:"dependency"`
}

type dependencyDoc struct {
	GroupID    []string `xml:"groupId"`
	ArtifactID []string `xml:"artifactId"`
	Version    []string `xml:"version"`
	Scope      []string `xml:"scope"`
}
