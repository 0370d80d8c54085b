package inspector

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"dockergen/internal/logging"

	"github.com/stretchr/testify/require"
)

// zipOf builds an in-memory archive; names ending in "/" become directories.
func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err, "zip create %s", name)
		_, err = w.Write([]byte(body))
		require.NoError(t, err, "zip write %s", name)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func serveBytes(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestInspector(t *testing.T, tempRoot string, opts ...Option) *Inspector {
	t.Helper()
	base := []Option{WithTempRoot(tempRoot), WithLogger(logging.Discard())}
	return New(append(base, opts...)...)
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "expected %s to be empty", dir)
}
