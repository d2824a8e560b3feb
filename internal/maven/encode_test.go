package maven_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frederic-klein/onus/internal/maven"
)

func TestEncodeMetadata(t *testing.T) {
	t.Parallel()

	// given
	want, err := maven.DecodeMetadata(readFixture(t, "maven-metadata.xml"))
	require.NoError(t, err)

	// when
	data, err := maven.EncodeMetadata(want)
	require.NoError(t, err)
	got, err := maven.DecodeMetadata(data)

	// then
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Contains(t, string(data), "<lastUpdated>20211214233703</lastUpdated>")
	assert.Contains(t, string(data), "<groupId>dev.zio</groupId>")
}

func TestEncodePOM(t *testing.T) {
	t.Parallel()

	// given
	want, err := maven.DecodePOM(readFixture(t, "pom.xml"))
	require.NoError(t, err)

	// when
	data, err := maven.EncodePOM(want)
	require.NoError(t, err)
	got, err := maven.DecodePOM(data)

	// then
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 2, strings.Count(string(data), "<scope>"))
}
