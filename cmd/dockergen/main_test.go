package main

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateWithFakeWritesDockerfile(t *testing.T) {
	dir := t.TempDir()
	_, err := runRoot(t, "--fake", "generate", "--description", "Go HTTP service", "--feedback", "smaller", "--out", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Dockerfile"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "FROM "))
}

func TestGenerateRequiresExactlyOneInput(t *testing.T) {
	_, err := runRoot(t, "--fake", "generate")
	require.Error(t, err)

	_, err = runRoot(t, "--fake", "generate", "--description", "x", "--repo", "https://github.com/a/b")
	require.Error(t, err)
}

func TestGenerateWithoutCredentialFails(t *testing.T) {
	_, err := runRoot(t, "generate", "--description", "x", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestDetectPrintsDescription(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"repo-main/package.json", "repo-main/index.js"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)

	out, err := runRoot(t, "detect", srv.URL+"/repo.zip")
	require.NoError(t, err)
	assert.Contains(t, out, "**Tech Stack:** Node.js")
	assert.Contains(t, out, "**Dependencies:** package.json")
}
