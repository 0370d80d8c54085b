package inspector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSourceGitHub(t *testing.T) {
	src, err := ResolveSource("https://github.com/pallets/flask", "main")
	require.NoError(t, err)
	assert.Equal(t, SourceHTTP, src.Kind)
	assert.Equal(t, "https://api.github.com/repos/pallets/flask/zipball/main", src.URL)
}

func TestResolveSourceGitHubBranch(t *testing.T) {
	src, err := ResolveSource("https://github.com/pallets/flask/tree/stable", "main")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/repos/pallets/flask/zipball/stable", src.URL)
}

func TestResolveSourceSlashedBranch(t *testing.T) {
	for _, raw := range []string{
		"https://github.com/acme/app/tree/feature/x",
		"https://github.com/acme/app/tree/feature/x/",
	} {
		src, err := ResolveSource(raw, "main")
		require.NoError(t, err)
		assert.Equal(t, "https://api.github.com/repos/acme/app/zipball/feature/x", src.URL, raw)
	}
}

func TestResolveSourceDefaultBranch(t *testing.T) {
	src, err := ResolveSource("  https://github.com/pallets/flask.git ", "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/repos/pallets/flask/zipball/main", src.URL)
}

func TestResolveSourceDirectZip(t *testing.T) {
	src, err := ResolveSource("https://example.com/archives/app.ZIP", "main")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/archives/app.ZIP", src.URL)
}

func TestResolveSourceS3(t *testing.T) {
	src, err := ResolveSource("s3://bucket/path/to/app.zip", "main")
	require.NoError(t, err)
	assert.Equal(t, Source{Kind: SourceS3, Bucket: "bucket", Key: "path/to/app.zip"}, src)
	assert.Equal(t, "s3://bucket/path/to/app.zip", src.String())
}

func TestResolveSourceRejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"ftp://example.com/app.zip",
		"https://gitlab.com/group/project",
		"s3://bucket-only",
		"https://github.com/",
	} {
		_, err := ResolveSource(raw, "main")
		var fe *FetchError
		require.True(t, errors.As(err, &fe), "raw=%q err=%v", raw, err)
		assert.ErrorIs(t, err, ErrUnsupportedSource, raw)
	}
}
