package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

// DefaultChunkSize is how many bytes are written between progress
// callbacks.
const DefaultChunkSize = 8192

// ProgressFunc is invoked after each chunk with the bytes written so
// far and the expected total, 0 when the server sent no Content-Length.
type ProgressFunc func(written, total int64)

// Downloader streams episode audio into {OutputDir}/{show}/{date}_{title}.mp3.
// Downloads are idempotent by filename presence only: an existing
// destination file is reported as success without re-fetching, and no
// content verification takes place.
type Downloader struct {
	OutputDir  string
	ChunkSize  int
	HTTPClient *http.Client
}

// NewDownloader returns a Downloader writing below outputDir.
func NewDownloader(outputDir string) *Downloader {
	return &Downloader{
		OutputDir: outputDir,
		ChunkSize: DefaultChunkSize,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// EpisodePath returns the destination file for an episode, creating
// the show directory.
func (d *Downloader) EpisodePath(episode model.Episode) (string, error) {
	showDir := "unknown"
	if episode.ShowTitle != "" {
		showDir = Sanitize(episode.ShowTitle)
	}

	dir := filepath.Join(d.OutputDir, showDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &model.DownloadError{URL: episode.AudioURL, Err: err}
	}

	var datePrefix string
	if episode.PublishedAt != nil {
		datePrefix = episode.PublishedAt.Format("2006-01-02") + "_"
	}

	return filepath.Join(dir, datePrefix+Sanitize(episode.Title)+".mp3"), nil
}

// Download fetches one episode. An episode without an audio URL yields
// a failed result without touching the network; an existing
// destination file yields a successful result with AlreadyExisted set.
func (d *Downloader) Download(ctx context.Context, episode model.Episode, onProgress ProgressFunc) (*model.DownloadResult, error) {
	if episode.AudioURL == "" {
		return &model.DownloadResult{
			Episode: episode,
			Err:     "no audio URL available",
		}, nil
	}

	path, err := d.EpisodePath(episode)
	if err != nil {
		return nil, err
	}

	logger := log.WithField("episode", episode.Title)

	if info, err := os.Stat(path); err == nil {
		logger.Debugf("already downloaded: %s", path)
		return &model.DownloadResult{
			Episode:        episode,
			FilePath:       path,
			FileSize:       info.Size(),
			AlreadyExisted: true,
			Success:        true,
		}, nil
	}

	logger.Debugf("downloading %s", episode.AudioURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, episode.AudioURL, nil)
	if err != nil {
		return nil, &model.DownloadError{URL: episode.AudioURL, Err: err}
	}

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return nil, &model.DownloadError{URL: episode.AudioURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &model.DownloadError{
			URL: episode.AudioURL,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	written, err := d.writeFile(path, resp.Body, resp.ContentLength, onProgress)
	if err != nil {
		return nil, err
	}

	logger.Debugf("wrote %d bytes to %s", written, path)

	return &model.DownloadResult{
		Episode:  episode,
		FilePath: path,
		FileSize: written,
		Success:  true,
	}, nil
}

// writeFile streams body to path chunk by chunk. On any failure the
// partial file is removed.
func (d *Downloader) writeFile(path string, body io.Reader, total int64, onProgress ProgressFunc) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, &model.DownloadError{Err: err}
	}

	if total < 0 {
		total = 0
	}

	chunkSize := d.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var written int64
	buf := make([]byte, chunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				f.Close()
				os.Remove(path)
				return 0, &model.DownloadError{Err: writeErr}
			}
			written += int64(n)
			if onProgress != nil {
				onProgress(written, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			f.Close()
			os.Remove(path)
			return 0, &model.DownloadError{Err: readErr}
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, &model.DownloadError{Err: err}
	}

	return written, nil
}
