// Package manifest loads the project manifest (Onus.toml), which declares the
// project's direct dependencies.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/frederic-klein/onus/internal/coord"
)

// FileName is the conventional manifest file name.
const FileName = "Onus.toml"

var errMissingKey = errors.New("required key is missing")

// Dependency is a single manifest entry.
type Dependency struct {
	Organization string
	Version      string
}

// Coordinate returns the entry as a coordinate, using name as the artifact.
func (d Dependency) Coordinate(name string) coord.Coordinate {
	return coord.Coordinate{Group: d.Organization, Artifact: name, Version: d.Version}
}

// Manifest maps dependency names to their declared organization and version.
type Manifest struct {
	Dependencies map[string]Dependency
}

// Len returns the number of declared dependencies.
func (m *Manifest) Len() int {
	return len(m.Dependencies)
}

// Names returns the dependency names in sorted order.
func (m *Manifest) Names() []string {
	return slices.Sorted(maps.Keys(m.Dependencies))
}

// Coordinates returns one coordinate per dependency, sorted by name.
func (m *Manifest) Coordinates() []coord.Coordinate {
	names := m.Names()
	coords := make([]coord.Coordinate, 0, len(names))
	for _, name := range names {
		coords = append(coords, m.Dependencies[name].Coordinate(name))
	}
	return coords
}

// Option adjusts how a manifest is decoded.
type Option func(*options)

type options struct {
	strict bool
}

// Strict rejects keys the manifest schema does not define. By default they
// are ignored.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// document mirrors the TOML layout. Pointer fields let a missing key be told
// apart from an empty string.
type document struct {
	Dependencies map[string]entry `toml:"dependencies"`
}

type entry struct {
	Organization *string `toml:"organization"`
	Version      *string `toml:"version"`
}

// Load reads and decodes the manifest at path. Failures are *coord.Error
// values of kind coord.KindIO or coord.KindDecode.
func Load(path string, opts ...Option) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, coord.NewIOError(path, err)
	}
	defer file.Close()

	return decode(path, file, opts)
}

// Decode decodes a manifest from r.
func Decode(r io.Reader, opts ...Option) (*Manifest, error) {
	return decode(FileName, r, opts)
}

func decode(source string, r io.Reader, opts []Option) (*Manifest, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, coord.NewIOError(source, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	if o.strict {
		dec.DisallowUnknownFields()
	}

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError(source, err)
	}

	// go-toml leaves the map nil for an empty [dependencies] header, so
	// presence of the key is checked on the generic form.
	var keys map[string]any
	if err := toml.Unmarshal(data, &keys); err != nil {
		return nil, decodeError(source, err)
	}
	if _, ok := keys["dependencies"]; !ok {
		return nil, missing(source, "dependencies")
	}

	return doc.manifest(source)
}

func (doc *document) manifest(source string) (*Manifest, error) {
	m := &Manifest{Dependencies: make(map[string]Dependency, len(doc.Dependencies))}
	// Sorted so the reported error does not depend on map order.
	for _, name := range slices.Sorted(maps.Keys(doc.Dependencies)) {
		e := doc.Dependencies[name]
		if e.Organization == nil {
			return nil, missing(source, keyPath("dependencies", name, "organization"))
		}
		if e.Version == nil {
			return nil, missing(source, keyPath("dependencies", name, "version"))
		}
		m.Dependencies[name] = Dependency{
			Organization: *e.Organization,
			Version:      *e.Version,
		}
	}

	return m, nil
}

func missing(source, path string) *coord.Error {
	e := coord.NewDecodeError(source, errMissingKey)
	e.Path = path
	return e
}

// decodeError carries go-toml's position and key path over to the
// coord.Error when go-toml reports them.
func decodeError(source string, err error) *coord.Error {
	e := coord.NewDecodeError(source, err)

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := &strictErr.Errors[0]
		e.Line, e.Column = first.Position()
		e.Path = keyPath(first.Key()...)
		e.Err = fmt.Errorf("unknown key: %w", err)
		return e
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		e.Line, e.Column = decodeErr.Position()
		e.Path = keyPath(decodeErr.Key()...)
	}

	return e
}

// keyPath joins TOML key parts, quoting parts that are not bare keys.
func keyPath(parts ...string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		if isBareKey(p) {
			quoted[i] = p
		} else {
			quoted[i] = fmt.Sprintf("%q", p)
		}
	}
	return strings.Join(quoted, ".")
}

func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
