package imagesource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "car.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0o644))

	src, err := Classify(path)
	require.NoError(t, err)
	assert.Equal(t, KindLocalFile, src.Kind)
	assert.Equal(t, path, src.Raw)
}

func TestClassifyLocalFileWinsOverURL(t *testing.T) {
	// A file whose name looks like a URL is still treated as a file.
	dir := t.TempDir()
	path := filepath.Join(dir, "http:")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Skipf("filesystem does not allow the test filename: %v", err)
	}

	src, err := Classify(path)
	require.NoError(t, err)
	assert.Equal(t, KindLocalFile, src.Kind)
}

func TestClassifyRemoteURL(t *testing.T) {
	tests := []string{
		"https://example.com/plate.jpg",
		"http://cam01.local:8080/snapshot",
		"https%3A%2F%2Fexample.com%2Fplate.jpg", // percent-encoded, decoded before validation
	}
	for _, input := range tests {
		src, err := Classify(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, KindRemoteURL, src.Kind)
		assert.Equal(t, input, src.Raw, "original string must be preserved")
	}
}

func TestClassifyInvalid(t *testing.T) {
	tests := []string{
		"/no/such/file/anywhere.jpg",
		"not a url at all",
		"example.com/missing-scheme.jpg",
		"file:///no-host-either", // scheme without host
		"",
	}
	for _, input := range tests {
		_, err := Classify(input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", input)
	}
}

func TestResolveLocalFile(t *testing.T) {
	content := []byte{0x00, 0x01, 0x02, 0xfe, 0xff}
	path := filepath.Join(t.TempDir(), "raw.bin")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	src, err := Classify(path)
	require.NoError(t, err)
	data, err := src.Resolve(context.Background(), http.DefaultClient)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestResolveLocalFileVanishes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	src, err := Classify(path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, err = src.Resolve(context.Background(), http.DefaultClient)
	assert.ErrorIs(t, err, ErrImageRead)
}

func TestResolveRemote(t *testing.T) {
	content := []byte("remote body")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(content)
	}))
	defer ts.Close()

	src, err := Classify(ts.URL + "/img.jpg")
	require.NoError(t, err)
	data, err := src.Resolve(context.Background(), ts.Client())
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestResolveRemoteNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such image", http.StatusNotFound)
	}))
	defer ts.Close()

	src, err := Classify(ts.URL + "/img.jpg")
	require.NoError(t, err)
	_, err = src.Resolve(context.Background(), ts.Client())
	assert.ErrorIs(t, err, ErrImageRead)
}
