package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

// BaseURL is the Radio France open API endpoint.
const BaseURL = "https://openapi.radiofrance.fr/v1"

const requestTimeout = 30 * time.Second

// Client talks to the REST flavor of the open API. Pagination is
// numeric: pages start at 1 and the server reports the next page in
// meta, 0 when exhausted.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// New returns a REST client authenticated with the given API key.
func New(apiKey string) *Client {
	return &Client{
		BaseURL: BaseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	log.WithField("url", u).Debug("api GET")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &model.APIError{Message: err.Error()}
	}
	req.Header.Set("x-token", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &model.APIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return &model.AuthError{Message: string(body)}
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return &model.APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &model.APIError{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	return nil
}

// SearchShows searches the catalog by text query, optionally restricted
// to one station. Station objects are resolved through the side-loaded
// station resources.
func (c *Client) SearchShows(ctx context.Context, query string, station *model.StationID) ([]model.Show, error) {
	q := url.Values{}
	q.Set("q", query)
	if station != nil {
		q.Set("station_id", string(*station))
	}

	var doc searchDocument
	if err := c.get(ctx, "/stations/search", q, &doc); err != nil {
		return nil, err
	}

	shows := make([]model.Show, 0, len(doc.Data))
	for _, res := range doc.Data {
		shows = append(shows, c.showFromResource(res))
	}

	return shows, nil
}

// GetShowDetails fetches one show by id. A 404 maps to ErrShowNotFound.
func (c *Client) GetShowDetails(ctx context.Context, showID string) (*model.Show, error) {
	var doc showDocument
	if err := c.get(ctx, "/shows/"+url.PathEscape(showID), nil, &doc); err != nil {
		if apiErr, ok := err.(*model.APIError); ok && apiErr.StatusCode == http.StatusNotFound {
			return nil, model.ErrShowNotFound
		}
		return nil, err
	}

	if doc.Data == nil {
		return nil, model.ErrShowNotFound
	}

	show := c.showFromResource(*doc.Data)
	return &show, nil
}

// GetShowEpisodes fetches one page of a show's diffusions. Pages start
// at 1; the returned next page is 0 once the listing is exhausted.
func (c *Client) GetShowEpisodes(ctx context.Context, showID string, page int) ([]model.Episode, int, error) {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}

	var doc diffusionsDocument
	if err := c.get(ctx, "/shows/"+url.PathEscape(showID)+"/diffusions", q, &doc); err != nil {
		return nil, 0, err
	}

	showTitles := make(map[string]string)
	for _, inc := range doc.Included {
		if inc.Type == "shows" {
			showTitles[inc.ID] = inc.Attributes.Title
		}
	}

	episodes := make([]model.Episode, 0, len(doc.Data))
	for _, res := range doc.Data {
		episodes = append(episodes, episodeFromResource(res, showTitles))
	}

	return episodes, doc.Meta.Pagination.Next, nil
}

// GetAllShowEpisodes pages through the full diffusion listing,
// preserving upstream order.
func (c *Client) GetAllShowEpisodes(ctx context.Context, showID string) ([]model.Episode, error) {
	var all []model.Episode

	page := 1
	for {
		episodes, next, err := c.GetShowEpisodes(ctx, showID, page)
		if err != nil {
			return nil, err
		}
		all = append(all, episodes...)

		if next == 0 || len(episodes) == 0 {
			return all, nil
		}
		page = next
	}
}

func (c *Client) showFromResource(res showResource) model.Show {
	show := model.Show{
		ID:          res.ID,
		Title:       res.Attributes.Title,
		Description: res.Attributes.Description,
		ImageURL:    res.Attributes.Visual.Src,
	}

	if res.Attributes.Path != "" {
		show.URL = "https://www.radiofrance.fr" + res.Attributes.Path
	}

	if id := res.Relationships.Station.Data.ID; id != "" {
		if station, ok := model.Stations[model.StationID(id)]; ok {
			show.Station = &station
		}
	}

	return show
}

func episodeFromResource(res diffusionResource, showTitles map[string]string) model.Episode {
	ep := model.Episode{
		ID:          res.ID,
		Title:       res.Attributes.Title,
		Description: res.Attributes.Standfirst,
		ShowID:      res.Relationships.Show.Data.ID,
		ShowTitle:   showTitles[res.Relationships.Show.Data.ID],
		PublishedAt: res.Attributes.PublishedDate.Time(),
		Duration:    res.Attributes.PodcastEpisode.Duration,
		AudioURL:    res.Attributes.PodcastEpisode.URL,
		ImageURL:    res.Attributes.Visual.Src,
	}

	if res.Attributes.Path != "" {
		ep.PageURL = "https://www.radiofrance.fr" + res.Attributes.Path
	}

	return ep
}
