package inspector

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractZipKeepsEntriesInsideRoot(t *testing.T) {
	parent := t.TempDir()
	dst := filepath.Join(parent, "out")
	require.NoError(t, os.Mkdir(dst, 0o755))

	data := zipOf(t, map[string]string{
		"../escaped.txt":        "x",
		"/abs/requirements.txt": "flask",
		"ok/pom.xml":            "<project/>",
	})
	require.NoError(t, extractZip(data, dst, 0))

	_, err := os.Stat(filepath.Join(parent, "escaped.txt"))
	assert.True(t, os.IsNotExist(err), "entry escaped extraction root")
	assert.FileExists(t, filepath.Join(dst, "escaped.txt"))
	assert.FileExists(t, filepath.Join(dst, "abs", "requirements.txt"))
	assert.FileExists(t, filepath.Join(dst, "ok", "pom.xml"))
}

func TestExtractZipRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("PK\x03\x04 truncated")} {
		err := extractZip(data, t.TempDir(), 0)
		var ee *ExtractionError
		require.True(t, errors.As(err, &ee), "err=%v", err)
		assert.ErrorIs(t, err, errNotZip)
	}
}

func TestExtractZipCapsUncompressedTotal(t *testing.T) {
	zeros := strings.Repeat("\x00", 4<<20)
	data := zipOf(t, map[string]string{"r/blob.bin": zeros})
	require.Less(t, len(data), 64<<10, "fixture should compress well")

	err := extractZip(data, t.TempDir(), 1<<20)
	var ee *ExtractionError
	require.True(t, errors.As(err, &ee), "err=%v", err)
	assert.ErrorIs(t, err, ErrArchiveTooLarge)
}

func TestExtractZipCapSpansEntries(t *testing.T) {
	chunk := strings.Repeat("a", 600<<10)
	data := zipOf(t, map[string]string{"r/a.txt": chunk, "r/b.txt": chunk})

	err := extractZip(data, t.TempDir(), 1<<20)
	assert.ErrorIs(t, err, ErrArchiveTooLarge)
	require.NoError(t, extractZip(data, t.TempDir(), 1200<<10))
}
