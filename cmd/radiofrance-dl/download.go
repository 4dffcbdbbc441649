package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"

	"github.com/mvailland/radiofrance-dl/pkg/download"
	"github.com/mvailland/radiofrance-dl/pkg/model"
	"github.com/mvailland/radiofrance-dl/pkg/rss"
	"github.com/mvailland/radiofrance-dl/pkg/scraper"
)

type downloadCommand struct {
	Latest int    `long:"latest" description:"download only the N most recent episodes"`
	All    bool   `long:"all" description:"download every available episode"`
	Output string `long:"output" short:"o" description:"output directory (defaults to the configured one)"`

	Args struct {
		Show string `positional-arg-name:"show" required:"yes" description:"show id or show page URL"`
	} `positional-args:"yes"`
}

func (c *downloadCommand) Execute(_ []string) error {
	ctx := context.Background()

	episodes, _, err := resolveEpisodes(ctx, c.Args.Show, 1, "", c.All)
	if err != nil {
		return err
	}

	// The API sometimes lists diffusions without any playable media.
	// The per-show RSS feed is the authoritative fallback.
	if !hasPlayable(episodes) && !strings.HasPrefix(c.Args.Show, "http") {
		log.Debug("no playable media from the API, trying the RSS feed")
		if feedEpisodes, err := rss.NewParser().FetchEpisodes(ctx, rss.FeedURL(c.Args.Show)); err != nil {
			log.WithError(err).Debug("rss fallback failed")
		} else if hasPlayable(feedEpisodes) {
			episodes = feedEpisodes
		}
	}

	if c.Latest > 0 && len(episodes) > c.Latest {
		episodes = episodes[:c.Latest]
	}

	if len(episodes) == 0 {
		fmt.Println("No episodes to download.")
		return nil
	}

	outputDir := cfg.OutputDir
	if c.Output != "" {
		outputDir = c.Output
	}

	fmt.Printf("Downloading %d episode(s) to %s\n\n", len(episodes), outputDir)

	var (
		downloader = download.NewDownloader(outputDir)
		scrape     = scraper.New()

		downloaded, skipped, failed int
		totalBytes                  int64
	)

	for _, episode := range episodes {
		// Last-resort audio resolution: scrape the episode page.
		if episode.AudioURL == "" && episode.PageURL != "" {
			url, err := scrape.EpisodeAudioURL(ctx, episode.PageURL)
			if err != nil {
				log.WithError(err).WithField("episode", episode.Title).Debug("audio scrape failed")
			} else {
				episode.AudioURL = url
			}
		}

		result, err := downloadOne(ctx, downloader, episode)
		if err != nil {
			log.WithError(err).Errorf("failed to download %q", episode.Title)
			failed++
			continue
		}

		switch {
		case !result.Success:
			log.Warnf("skipping %q: %s", episode.Title, result.Err)
			failed++
		case result.AlreadyExisted:
			fmt.Printf("exists   %s (%s)\n", result.FilePath, humanize.Bytes(uint64(result.FileSize)))
			skipped++
		default:
			fmt.Printf("done     %s (%s)\n", result.FilePath, humanize.Bytes(uint64(result.FileSize)))
			downloaded++
			totalBytes += result.FileSize
		}
	}

	fmt.Printf("\n%d downloaded (%s), %d already present, %d failed\n",
		downloaded, humanize.Bytes(uint64(totalBytes)), skipped, failed)

	return nil
}

func downloadOne(ctx context.Context, downloader *download.Downloader, episode model.Episode) (*model.DownloadResult, error) {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetDescription(truncate(episode.Title, 40)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
	defer bar.Close()

	var sized bool
	return downloader.Download(ctx, episode, func(written, total int64) {
		if !sized && total > 0 {
			bar.ChangeMax64(total)
			sized = true
		}
		_ = bar.Set64(written)
	})
}

func hasPlayable(episodes []model.Episode) bool {
	for _, ep := range episodes {
		if ep.AudioURL != "" {
			return true
		}
	}
	return false
}
