package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

func testEpisode(audioURL string) model.Episode {
	published := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	return model.Episode{
		ID:          "ep-001",
		Title:       "Test Episode",
		ShowID:      "1234",
		ShowTitle:   "My Show",
		PublishedAt: &published,
		AudioURL:    audioURL,
	}
}

func TestDownload(t *testing.T) {
	content := strings.Repeat("fake mp3 content", 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(content))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewDownloader(dir)

	result, err := d.Download(context.Background(), testEpisode(srv.URL+"/test.mp3"), nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.False(t, result.AlreadyExisted)
	assert.EqualValues(t, len(content), result.FileSize)
	assert.Equal(t, filepath.Join(dir, "My-Show", "2025-01-15_Test-Episode.mp3"), result.FilePath)

	data, err := os.ReadFile(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDownloadSkipsExisting(t *testing.T) {
	dir := t.TempDir()

	showDir := filepath.Join(dir, "My-Show")
	require.NoError(t, os.MkdirAll(showDir, 0755))
	existing := filepath.Join(showDir, "2025-01-15_Test-Episode.mp3")
	require.NoError(t, os.WriteFile(existing, []byte("existing data"), 0644))

	// Any request proves the downloader re-fetched when it should not.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network request for existing file")
	}))
	defer srv.Close()

	d := NewDownloader(dir)
	result, err := d.Download(context.Background(), testEpisode(srv.URL+"/test.mp3"), nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.AlreadyExisted)
	assert.EqualValues(t, len("existing data"), result.FileSize)
	assert.Equal(t, existing, result.FilePath)
}

func TestDownloadNoAudioURL(t *testing.T) {
	d := NewDownloader(t.TempDir())

	result, err := d.Download(context.Background(), model.Episode{ID: "1", Title: "No Audio"}, nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "no audio URL")
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewDownloader(dir)

	episode := testEpisode(srv.URL + "/test.mp3")
	_, err := d.Download(context.Background(), episode, nil)
	require.Error(t, err)

	var dlErr *model.DownloadError
	assert.ErrorAs(t, err, &dlErr)

	// No file may remain at the destination.
	path := filepath.Join(dir, "My-Show", "2025-01-15_Test-Episode.mp3")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloadProgressCallback(t *testing.T) {
	content := strings.Repeat("x", 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte(content))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir())
	d.ChunkSize = 256

	var calls int
	var lastWritten, lastTotal int64
	result, err := d.Download(context.Background(), testEpisode(srv.URL+"/test.mp3"), func(written, total int64) {
		calls++
		lastWritten = written
		lastTotal = total
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Greater(t, calls, 1)
	assert.EqualValues(t, 1000, lastWritten)
	assert.EqualValues(t, 1000, lastTotal)
}

func TestDownloadUnknownShowDir(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewDownloader(dir)

	episode := testEpisode(srv.URL + "/test.mp3")
	episode.ShowTitle = ""
	episode.PublishedAt = nil

	result, err := d.Download(context.Background(), episode, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "unknown", "Test-Episode.mp3"), result.FilePath)
}
