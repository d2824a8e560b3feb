package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/frederic-klein/onus/internal/manifest"
	"github.com/frederic-klein/onus/internal/maven"
)

func sampleManifest() *manifest.Manifest {
	return &manifest.Manifest{Dependencies: map[string]manifest.Dependency{
		"tofu":        {Organization: "tf.tofu", Version: "0.1.0.4"},
		"cats_effect": {Organization: "org.typelevel", Version: "1.6.0"},
	}}
}

func sampleMetadata() *maven.Metadata {
	return &maven.Metadata{
		GroupID:    "dev.zio",
		ArtifactID: "zio_3",
		Versioning: maven.Versioning{
			Latest:      "2.0.0-RC1",
			Release:     "2.0.0-RC1",
			Versions:    []string{"1.0.11", "2.0.0-RC1"},
			LastUpdated: "20211214233703",
		},
	}
}

func samplePOM() *maven.POM {
	return &maven.POM{Dependencies: []maven.Dependency{
		{GroupID: "org.scala-lang", ArtifactID: "scala3-library_3", Version: "3.1.0"},
		{GroupID: "org.openjdk.jcstress", ArtifactID: "jcstress-core", Version: "0.3", Scope: "test"},
	}}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "text", want: FormatText},
		{in: "yaml", want: FormatYAML},
		{in: "json", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmitter_Text(t *testing.T) {
	tests := []struct {
		name string
		emit func(*Emitter) error
		want string
	}{
		{
			name: "manifest sorted by name",
			emit: func(e *Emitter) error { return e.EmitManifest(sampleManifest()) },
			want: `DEPENDENCIES
  cats_effect
    organization: org.typelevel
    version: 1.6.0
  tofu
    organization: tf.tofu
    version: 0.1.0.4
`,
		},
		{
			name: "metadata",
			emit: func(e *Emitter) error { return e.EmitMetadata(sampleMetadata()) },
			want: `METADATA
  dev.zio:zio_3
    latest: 2.0.0-RC1
    release: 2.0.0-RC1
    lastUpdated: 20211214233703
    versions:
      1.0.11
      2.0.0-RC1
`,
		},
		{
			name: "pom with effective scopes",
			emit: func(e *Emitter) error { return e.EmitPOM(samplePOM()) },
			want: `DEPENDENCIES
  org.scala-lang:scala3-library_3:3.1.0
    scope: compile
  org.openjdk.jcstress:jcstress-core:0.3
    scope: test
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.emit(NewEmitter(&buf, FormatText)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestEmitter_YAML(t *testing.T) {
	t.Run("manifest", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewEmitter(&buf, FormatYAML).EmitManifest(sampleManifest()))

		var got manifestView
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, manifestDependencyView{Organization: "tf.tofu", Version: "0.1.0.4"}, got.Dependencies["tofu"])
		assert.Len(t, got.Dependencies, 2)
	})

	t.Run("metadata keeps version order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewEmitter(&buf, FormatYAML).EmitMetadata(sampleMetadata()))

		var got metadataView
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "zio_3", got.ArtifactID)
		assert.Equal(t, []string{"1.0.11", "2.0.0-RC1"}, got.Versions)
		assert.Contains(t, buf.String(), "lastUpdated: \"20211214233703\"")
	})

	t.Run("pom omits absent scope", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewEmitter(&buf, FormatYAML).EmitPOM(samplePOM()))

		var got pomView
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got.Dependencies, 2)
		assert.Empty(t, got.Dependencies[0].Scope)
		assert.Equal(t, "test", got.Dependencies[1].Scope)
		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("scope:")))
	})
}
