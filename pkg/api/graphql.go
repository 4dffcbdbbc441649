package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

// GraphQLURL is the GraphQL flavor of the open API.
const GraphQLURL = "https://openapi.radiofrance.fr/v1/graphql"

// GraphQL talks to the GraphQL flavor of the open API. Pagination is
// cursor based: each edge carries an opaque cursor and the last one is
// passed back as "after".
type GraphQL struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// NewGraphQL returns a GraphQL client authenticated with the given API key.
func NewGraphQL(apiKey string) *GraphQL {
	return &GraphQL{
		URL:    GraphQLURL,
		APIKey: apiKey,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

func (g *GraphQL) query(ctx context.Context, gql string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(gqlRequest{Query: gql, Variables: variables})
	if err != nil {
		return &model.APIError{Message: err.Error()}
	}

	log.WithField("variables", variables).Debug("graphql POST")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return &model.APIError{Message: err.Error()}
	}
	req.Header.Set("x-token", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return &model.APIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return &model.AuthError{Message: string(msg)}
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return &model.APIError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &model.APIError{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	// The API reports application errors with HTTP 200. There is no
	// error code, only a message; "not found" in the text is the only
	// signal that distinguishes a missing show from any other failure.
	if len(envelope.Errors) > 0 {
		msg := envelope.Errors[0].Message
		if strings.Contains(strings.ToLower(msg), "not found") {
			return model.ErrShowNotFound
		}
		return &model.APIError{Message: msg}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &model.APIError{Message: fmt.Sprintf("failed to decode data: %v", err)}
	}

	return nil
}

const showsQuery = `
query GetShows($station: StationsEnum!, $first: Int!, $after: String) {
    shows(station: $station, first: $first, after: $after) {
        edges {
            cursor
            node {
                id
                title
                url
                standFirst
            }
        }
    }
}`

type showEdge struct {
	Cursor string `json:"cursor"`
	Node   struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		URL        string `json:"url"`
		StandFirst string `json:"standFirst"`
	} `json:"node"`
}

// StationShows fetches one cursor page of shows for a station. The
// returned cursor belongs to the last edge and is empty at end of data.
func (g *GraphQL) StationShows(ctx context.Context, station model.StationID, first int, after string) ([]model.Show, string, error) {
	variables := map[string]interface{}{
		"station": string(station),
		"first":   first,
	}
	if after != "" {
		variables["after"] = after
	}

	var data struct {
		Shows struct {
			Edges []showEdge `json:"edges"`
		} `json:"shows"`
	}
	if err := g.query(ctx, showsQuery, variables, &data); err != nil {
		return nil, "", err
	}

	var stationObj *model.Station
	if st, ok := model.Stations[station]; ok {
		stationObj = &st
	}

	var (
		shows      []model.Show
		lastCursor string
	)
	for _, edge := range data.Shows.Edges {
		lastCursor = edge.Cursor

		shows = append(shows, model.Show{
			ID:          edge.Node.ID,
			Title:       edge.Node.Title,
			Description: edge.Node.StandFirst,
			URL:         edge.Node.URL,
			Station:     stationObj,
		})
	}

	return shows, lastCursor, nil
}

const stationShowsPageSize = 100

// AllStationShows pages through every show of a station.
func (g *GraphQL) AllStationShows(ctx context.Context, station model.StationID) ([]model.Show, error) {
	var (
		all   []model.Show
		after string
	)

	for {
		shows, cursor, err := g.StationShows(ctx, station, stationShowsPageSize, after)
		if err != nil {
			return nil, err
		}
		all = append(all, shows...)

		if cursor == "" || len(shows) < stationShowsPageSize {
			return all, nil
		}
		after = cursor
	}
}

// Search looks for shows whose title or description contains the query,
// case-insensitively. The GraphQL API has no text search, so this lists
// every show per station and filters client-side. Stations that fail to
// list are skipped; their errors are aggregated for debug logging only,
// partial results are still returned.
func (g *GraphQL) Search(ctx context.Context, query string, station *model.StationID) ([]model.Show, error) {
	stations := model.StationIDs()
	if station != nil {
		stations = []model.StationID{*station}
	}

	var (
		matches []model.Show
		skipped *multierror.Error
	)

	q := strings.ToLower(query)
	for _, id := range stations {
		shows, err := g.AllStationShows(ctx, id)
		if err != nil {
			skipped = multierror.Append(skipped, err)
			log.WithError(err).WithField("station", id).Debug("skipping station")
			continue
		}

		for _, show := range shows {
			title := strings.ToLower(show.Title)
			desc := strings.ToLower(show.Description)
			if strings.Contains(title, q) || strings.Contains(desc, q) {
				matches = append(matches, show)
			}
		}
	}

	if err := skipped.ErrorOrNil(); err != nil {
		log.WithError(err).Debugf("search skipped %d station(s)", len(skipped.Errors))
	}

	return matches, nil
}

const diffusionsQuery = `
query GetDiffusions($url: String!, $first: Int!, $after: String) {
    diffusionsOfShowByUrl(url: $url, first: $first, after: $after) {
        edges {
            cursor
            node {
                id
                title
                standFirst
                published_date
                url
                podcastEpisode {
                    url
                    duration
                }
                show {
                    id
                    title
                }
            }
        }
    }
}`

type diffusionEdge struct {
	Cursor string `json:"cursor"`
	Node   struct {
		ID             string          `json:"id"`
		Title          string          `json:"title"`
		StandFirst     string          `json:"standFirst"`
		PublishedDate  model.Timestamp `json:"published_date"`
		URL            string          `json:"url"`
		PodcastEpisode *struct {
			URL      string `json:"url"`
			Duration int    `json:"duration"`
		} `json:"podcastEpisode"`
		Show *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"show"`
	} `json:"node"`
}

// ShowEpisodes fetches a show's diffusions by show URL. With fetchAll
// it keeps following cursors, accumulating in upstream order, until the
// server returns no edges or no cursor. Otherwise a single page is
// returned along with the cursor for the next one.
func (g *GraphQL) ShowEpisodes(ctx context.Context, showURL string, first int, after string, fetchAll bool) ([]model.Episode, string, error) {
	var all []model.Episode

	current := after
	for {
		variables := map[string]interface{}{
			"url":   showURL,
			"first": first,
		}
		if current != "" {
			variables["after"] = current
		}

		var data struct {
			Diffusions struct {
				Edges []diffusionEdge `json:"edges"`
			} `json:"diffusionsOfShowByUrl"`
		}
		if err := g.query(ctx, diffusionsQuery, variables, &data); err != nil {
			return nil, "", err
		}

		edges := data.Diffusions.Edges
		if len(edges) == 0 {
			return all, "", nil
		}

		var next string
		for _, edge := range edges {
			next = edge.Cursor
			all = append(all, episodeFromEdge(edge))
		}

		if !fetchAll || next == "" {
			return all, next, nil
		}
		current = next
	}
}

// ShowByURL fetches show details by the show's page URL.
func (g *GraphQL) ShowByURL(ctx context.Context, showURL string) (*model.Show, error) {
	const gql = `
query GetShow($url: String!) {
    showByUrl(url: $url) {
        id
        title
        standFirst
        url
    }
}`

	var data struct {
		Show *struct {
			ID         string `json:"id"`
			Title      string `json:"title"`
			StandFirst string `json:"standFirst"`
			URL        string `json:"url"`
		} `json:"showByUrl"`
	}
	if err := g.query(ctx, gql, map[string]interface{}{"url": showURL}, &data); err != nil {
		return nil, err
	}

	if data.Show == nil {
		return nil, model.ErrShowNotFound
	}

	show := &model.Show{
		ID:          data.Show.ID,
		Title:       data.Show.Title,
		Description: data.Show.StandFirst,
		URL:         data.Show.URL,
	}
	if station, ok := model.StationFromURL(show.URL); ok {
		show.Station = &station
	}

	return show, nil
}

func episodeFromEdge(edge diffusionEdge) model.Episode {
	node := edge.Node

	ep := model.Episode{
		ID:          node.ID,
		Title:       node.Title,
		Description: node.StandFirst,
		PublishedAt: node.PublishedDate.Time(),
		PageURL:     node.URL,
	}
	if node.Show != nil {
		ep.ShowID = node.Show.ID
		ep.ShowTitle = node.Show.Title
	}
	if node.PodcastEpisode != nil {
		ep.AudioURL = node.PodcastEpisode.URL
		ep.Duration = node.PodcastEpisode.Duration
	}

	return ep
}
