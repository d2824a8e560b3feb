package maven

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/frederic-klein/onus/internal/coord"
)

var (
	errMissingElement   = errors.New("required element is missing")
	errRepeatedElement  = errors.New("element must appear only once")
	errUnexpectedFormat = errors.New("document does not match the expected shape")
	errTrailingContent  = errors.New("unexpected content after the root element")
)

// Option adjusts how a document is decoded.
type Option func(*options)

type options struct {
	source string
}

// WithSource names the document in decode errors, e.g. the file it was read
// from. Defaults to MetadataFileName or POMFileName.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

func sourceOf(opts []Option, fallback string) string {
	o := options{source: fallback}
	for _, opt := range opts {
		opt(&o)
	}
	return o.source
}

// DecodeMetadata decodes a maven-metadata.xml document. Failures are
// *coord.Error values of kind coord.KindDecode.
func DecodeMetadata(data []byte, opts ...Option) (*Metadata, error) {
	source := sourceOf(opts, MetadataFileName)

	var doc metadataDoc
	if err := unmarshal(source, "metadata", data, &doc); err != nil {
		return nil, err
	}

	c := checker{source: source}
	m := &Metadata{
		GroupID:    c.text("metadata.groupId", doc.GroupID),
		ArtifactID: c.text("metadata.artifactId", doc.ArtifactID),
	}
	if v, ok := single(&c, "metadata.versioning", doc.Versioning); ok {
		m.Versioning = Versioning{
			Latest:      c.text("metadata.versioning.latest", v.Latest),
			Release:     c.text("metadata.versioning.release", v.Release),
			LastUpdated: c.text("metadata.versioning.lastUpdated", v.LastUpdated),
		}
		if vs, ok := single(&c, "metadata.versioning.versions", v.Versions); ok {
			m.Versioning.Versions = trimAll(vs.Version)
		}
	}

	if c.err != nil {
		return nil, c.err
	}
	return m, nil
}

// DecodeMetadataString is DecodeMetadata for string input.
func DecodeMetadataString(doc string, opts ...Option) (*Metadata, error) {
	return DecodeMetadata([]byte(doc), opts...)
}

// DecodePOM decodes the dependency list of a POM. Elements other than
// project/dependencies are ignored. Failures are *coord.Error values of kind
// coord.KindDecode.
func DecodePOM(data []byte, opts ...Option) (*POM, error) {
	source := sourceOf(opts, POMFileName)

	var doc pomDoc
	if err := unmarshal(source, "project", data, &doc); err != nil {
		return nil, err
	}

	c := checker{source: source}
	pom := &POM{}
	if deps, ok := single(&c, "project.dependencies", doc.Dependencies); ok {
		pom.Dependencies = make([]Dependency, 0, len(deps.Dependency))
		for i, d := range deps.Dependency {
			path := fmt.Sprintf("project.dependencies.dependency[%d]", i)
			dep := Dependency{
				GroupID:    c.text(path+".groupId", d.GroupID),
				ArtifactID: c.text(path+".artifactId", d.ArtifactID),
				Version:    c.text(path+".version", d.Version),
			}
			// An empty <scope/> counts as no scope.
			if scope, ok := c.optionalText(path+".scope", d.Scope); ok {
				dep.Scope = scope
			}
			pom.Dependencies = append(pom.Dependencies, dep)
		}
	}

	if c.err != nil {
		return nil, c.err
	}
	return pom, nil
}

// DecodePOMString is DecodePOM for string input.
func DecodePOMString(doc string, opts ...Option) (*POM, error) {
	return DecodePOM([]byte(doc), opts...)
}

// unmarshal decodes the root element into v and then requires the rest of
// the input to be whitespace, comments or processing instructions.
func unmarshal(source, root string, data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return xmlError(source, err)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return xmlError(source, err)
		}

		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
			continue
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			return trailing(source, dec, errTrailingContent)
		case xml.StartElement:
			e := trailing(source, dec, fmt.Errorf("%w, found a second <%s>", errRepeatedElement, t.Name.Local))
			e.Path = root
			return e
		default:
			return trailing(source, dec, errTrailingContent)
		}
	}
}

func trailing(source string, dec *xml.Decoder, err error) *coord.Error {
	e := coord.NewDecodeError(source, err)
	e.Line, e.Column = dec.InputPos()
	return e
}

func xmlError(source string, err error) *coord.Error {
	e := coord.NewDecodeError(source, err)
	var syntaxErr *xml.SyntaxError
	var unmarshalErr xml.UnmarshalError
	switch {
	case errors.As(err, &syntaxErr):
		e.Line = syntaxErr.Line
	case errors.As(err, &unmarshalErr):
		e.Err = fmt.Errorf("%w: %w", errUnexpectedFormat, err)
	}
	return e
}

// checker records the first structural violation found while converting a
// decoded document into its model.
type checker struct {
	source string
	err    *coord.Error
}

func (c *checker) fail(path string, err error) {
	if c.err != nil {
		return
	}
	c.err = coord.NewDecodeError(c.source, err)
	c.err.Path = path
}

func single[T any](c *checker, path string, values []T) (T, bool) {
	var zero T
	switch len(values) {
	case 0:
		c.fail(path, errMissingElement)
		return zero, false
	case 1:
		return values[0], true
	default:
		c.fail(path, fmt.Errorf("%w, found %d", errRepeatedElement, len(values)))
		return zero, false
	}
}

func (c *checker) text(path string, values []string) string {
	v, _ := single(c, path, values)
	return strings.TrimSpace(v)
}

func (c *checker) optionalText(path string, values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	v := c.text(path, values)
	return v, v != ""
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
