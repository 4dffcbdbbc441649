package rss

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

// The Aerion proxy serves one RSS feed per show id.
const feedURLTemplate = "https://radiofrance-podcast.net/podcast09/rss_%s.xml"

// FeedURL builds the Aerion RSS feed URL for a show id.
func FeedURL(showID string) string {
	return fmt.Sprintf(feedURLTemplate, showID)
}

// Parser turns Radio France RSS feeds into episode lists.
type Parser struct {
	HTTPClient *http.Client
}

// NewParser returns a Parser with a 30 second request timeout.
func NewParser() *Parser {
	return &Parser{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchEpisodes downloads and parses the feed at url.
func (p *Parser) FetchEpisodes(ctx context.Context, url string) ([]model.Episode, error) {
	log.WithField("url", url).Debug("fetching rss feed")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build feed request")
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch RSS feed %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("failed to fetch RSS feed %s: status %d", url, resp.StatusCode)
	}

	return p.Parse(resp.Body)
}

// Parse reads an RSS document and returns its episodes in feed order.
// Items without a title are dropped. Malformed XML fails with no
// partial results.
func (p *Parser) Parse(r io.Reader) ([]model.Episode, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "invalid RSS XML")
	}

	episodes := make([]model.Episode, 0, len(feed.Items))
	for _, item := range feed.Items {
		ep, ok := parseItem(item, feed.Title)
		if !ok {
			continue
		}
		episodes = append(episodes, ep)
	}

	return episodes, nil
}

func parseItem(item *gofeed.Item, showTitle string) (model.Episode, bool) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return model.Episode{}, false
	}

	ep := model.Episode{
		ID:          title,
		Title:       title,
		Description: strings.TrimSpace(item.Description),
		ShowTitle:   showTitle,
		PublishedAt: item.PublishedParsed,
		PageURL:     item.Link,
	}

	if item.GUID != "" {
		ep.ID = strings.TrimSpace(item.GUID)
	}

	if len(item.Enclosures) > 0 {
		ep.AudioURL = item.Enclosures[0].URL
	}

	if item.ITunesExt != nil {
		ep.Duration = ParseDuration(item.ITunesExt.Duration)
		ep.ImageURL = item.ITunesExt.Image
	}
	if ep.ImageURL == "" && item.Image != nil {
		ep.ImageURL = item.Image.URL
	}

	return ep, true
}

// ParseDuration converts an itunes:duration value to seconds. It
// accepts HH:MM:SS, MM:SS or a raw integer, and returns 0 for anything
// else.
func ParseDuration(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if strings.Contains(text, ":") {
		parts := strings.Split(text, ":")

		switch len(parts) {
		case 3:
			h, err1 := strconv.Atoi(parts[0])
			m, err2 := strconv.Atoi(parts[1])
			s, err3 := strconv.Atoi(parts[2])
			if err1 != nil || err2 != nil || err3 != nil {
				return 0
			}
			return h*3600 + m*60 + s
		case 2:
			m, err1 := strconv.Atoi(parts[0])
			s, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil {
				return 0
			}
			return m*60 + s
		default:
			return 0
		}
	}

	seconds, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return seconds
}
