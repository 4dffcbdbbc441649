package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

// BaseURL is the Radio France website root.
const BaseURL = "https://www.radiofrance.fr"

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

var audioURLPattern = regexp.MustCompile(`https?://media\.radiofrance-podcast\.net/[^\s"'<>]+\.mp3`)

// Scraper extracts episode data from radiofrance.fr pages. It is the
// fallback behind the API and RSS paths and is inherently brittle
// against upstream markup changes.
type Scraper struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a Scraper with a browser-like User-Agent.
func New() *Scraper {
	return &Scraper{
		BaseURL: BaseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	log.WithField("url", url).Debug("scraping page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &model.ScrapeError{URL: url, Message: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", &model.ScrapeError{URL: url, Message: fmt.Sprintf("fetch failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &model.ScrapeError{URL: url, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.ScrapeError{URL: url, Message: fmt.Sprintf("read failed: %v", err)}
	}

	return string(body), nil
}

// ShowEpisodes scrapes the episode list from a show page,
// e.g. /franceinter/podcasts/le-billet-de-guillaume-meurice.
func (s *Scraper) ShowEpisodes(ctx context.Context, station, showSlug string) ([]model.Episode, error) {
	url := fmt.Sprintf("%s/%s/podcasts/%s", s.BaseURL, station, showSlug)

	html, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return s.parseShowPage(html, showSlug)
}

// EpisodeAudioURL extracts the MP3 URL from an episode page.
func (s *Scraper) EpisodeAudioURL(ctx context.Context, episodeURL string) (string, error) {
	if !strings.HasPrefix(episodeURL, "http") {
		episodeURL = s.BaseURL + episodeURL
	}

	html, err := s.fetch(ctx, episodeURL)
	if err != nil {
		return "", err
	}

	return extractAudioURL(html)
}

// parseShowPage prefers structured JSON-LD blocks; only when none of
// them parse does it fall back to card markup.
func (s *Scraper) parseShowPage(html, showSlug string) ([]model.Episode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &model.ScrapeError{Message: fmt.Sprintf("parse HTML: %v", err)}
	}

	var episodes []model.Episode

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		episodes = append(episodes, parseJSONLD(sel.Text())...)
	})

	if len(episodes) > 0 {
		return episodes, nil
	}

	// Card markup fallback.
	doc.Find(`a.CardEpisode, [class*="CardEpisode"], article.card`).Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find(`h2, h3, .title, [class*="title"]`).First().Text())
		if title == "" {
			return
		}

		link, _ := card.Attr("href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = s.BaseURL + link
		}

		id := title
		if link != "" {
			parts := strings.Split(link, "/")
			id = parts[len(parts)-1]
		}

		episodes = append(episodes, model.Episode{
			ID:        id,
			Title:     title,
			PageURL:   link,
			ShowTitle: showSlug,
		})
	})

	return episodes, nil
}

// parseJSONLD decodes one script block, which holds either a single
// object or an array of them, and keeps episode-like entries.
func parseJSONLD(text string) []model.Episode {
	var episodes []model.Episode

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var list []map[string]interface{}
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal([]byte(text), &single); err != nil {
			return nil
		}
		list = []map[string]interface{}{single}
	}

	for _, obj := range list {
		if ep, ok := episodeFromJSONLD(obj); ok {
			episodes = append(episodes, ep)
		}
	}

	return episodes
}

func episodeFromJSONLD(data map[string]interface{}) (model.Episode, bool) {
	switch str(data["@type"]) {
	case "PodcastEpisode", "RadioEpisode", "AudioObject":
	default:
		return model.Episode{}, false
	}

	ep := model.Episode{
		ID:          str(data["identifier"]),
		Title:       str(data["name"]),
		Description: str(data["description"]),
		AudioURL:    jsonLDAudioURL(data),
		PageURL:     str(data["url"]),
	}
	if ep.ID == "" {
		ep.ID = str(data["@id"])
	}

	if date := str(data["datePublished"]); date != "" {
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			ep.PublishedAt = &t
		}
	}

	ep.Duration = parseISODuration(str(data["duration"]))

	return ep, true
}

func jsonLDAudioURL(data map[string]interface{}) string {
	if url := str(data["contentUrl"]); url != "" {
		return url
	}
	if media, ok := data["associatedMedia"].(map[string]interface{}); ok {
		return str(media["contentUrl"])
	}
	return ""
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseISODuration converts an ISO 8601 duration like PT3M30S to seconds.
func parseISODuration(text string) int {
	if text == "" {
		return 0
	}

	m := isoDurationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	total := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		var n int
		fmt.Sscanf(m[i+1], "%d", &n)
		total += n * mult
	}

	return total
}

// extractAudioURL looks for an MP3 link in JSON-LD blocks first, then
// scans the raw markup for the podcast CDN URL pattern.
func extractAudioURL(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		var found string
		doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			var data map[string]interface{}
			if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
				return true
			}

			if url := str(data["contentUrl"]); strings.HasSuffix(url, ".mp3") {
				found = url
				return false
			}
			if media, ok := data["associatedMedia"].(map[string]interface{}); ok {
				if url := str(media["contentUrl"]); url != "" {
					found = url
					return false
				}
			}
			return true
		})
		if found != "" {
			return found, nil
		}
	}

	if match := audioURLPattern.FindString(html); match != "" {
		return match, nil
	}

	return "", &model.ScrapeError{Message: "could not find audio URL on page"}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
