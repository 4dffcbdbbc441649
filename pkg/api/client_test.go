package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New("test-key-123")
	c.BaseURL = srv.URL
	return c
}

const searchResponse = `{
  "data": [
    {
      "id": "1234",
      "type": "shows",
      "attributes": {
        "title": "Le Billet de Guillaume Meurice",
        "description": "Le billet d'humeur de Guillaume Meurice",
        "path": "/franceinter/podcasts/le-billet-de-guillaume-meurice",
        "visual": {"src": "https://example.com/image.jpg"}
      },
      "relationships": {"station": {"data": {"id": "1", "type": "stations"}}}
    },
    {
      "id": "5678",
      "type": "shows",
      "attributes": {
        "title": "Le Moment Meurice",
        "description": "",
        "path": "/franceinter/podcasts/le-moment-meurice",
        "visual": {"src": ""}
      },
      "relationships": {"station": {"data": {"id": "1", "type": "stations"}}}
    }
  ],
  "included": [
    {"id": "1", "type": "stations", "attributes": {"name": "France Inter"}}
  ],
  "meta": {"total": 2}
}`

func TestSearchShows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/search", r.URL.Path)
		assert.Equal(t, "meurice", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key-123", r.Header.Get("x-token"))
		_, _ = w.Write([]byte(searchResponse))
	})

	shows, err := c.SearchShows(context.Background(), "meurice", nil)
	require.NoError(t, err)
	require.Len(t, shows, 2)

	assert.Equal(t, "1234", shows[0].ID)
	assert.Equal(t, "Le Billet de Guillaume Meurice", shows[0].Title)
	require.NotNil(t, shows[0].Station)
	assert.Equal(t, model.StationFranceInter, shows[0].Station.ID)
	assert.Equal(t, "https://www.radiofrance.fr/franceinter/podcasts/le-billet-de-guillaume-meurice", shows[0].URL)
}

func TestSearchShowsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [], "included": [], "meta": {"total": 0}}`))
	})

	shows, err := c.SearchShows(context.Background(), "nonexistent", nil)
	require.NoError(t, err)
	assert.Empty(t, shows)
}

func TestSearchShowsStationFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.URL.Query().Get("station_id"))
		_, _ = w.Write([]byte(`{"data": [], "included": [], "meta": {"total": 0}}`))
	})

	station := model.StationFranceCulture
	_, err := c.SearchShows(context.Background(), "test", &station)
	require.NoError(t, err)
}

func TestAuthenticationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Unauthorized"}`))
	})

	_, err := c.SearchShows(context.Background(), "test", nil)
	require.Error(t, err)

	var authErr *model.AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := c.SearchShows(context.Background(), "test", nil)
	require.Error(t, err)

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestGetShowDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shows/1234", r.URL.Path)
		_, _ = w.Write([]byte(`{
		  "data": {
		    "id": "1234",
		    "type": "shows",
		    "attributes": {
		      "title": "Test Show",
		      "description": "A test show",
		      "path": "/franceinter/podcasts/test-show",
		      "visual": {"src": "https://example.com/img.jpg"}
		    },
		    "relationships": {"station": {"data": {"id": "1", "type": "stations"}}}
		  }
		}`))
	})

	show, err := c.GetShowDetails(context.Background(), "1234")
	require.NoError(t, err)

	assert.Equal(t, "1234", show.ID)
	assert.Equal(t, "Test Show", show.Title)
	require.NotNil(t, show.Station)
	assert.Equal(t, model.StationFranceInter, show.Station.ID)
	assert.Equal(t, "https://example.com/img.jpg", show.ImageURL)
}

func TestGetShowDetailsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Not found"}`))
	})

	_, err := c.GetShowDetails(context.Background(), "9999")
	assert.ErrorIs(t, err, model.ErrShowNotFound)
}

func diffusionsPage(ids []string, next int) string {
	type page struct {
		Data     []json.RawMessage      `json:"data"`
		Included []json.RawMessage      `json:"included"`
		Meta     map[string]interface{} `json:"meta"`
	}

	p := page{
		Included: []json.RawMessage{
			json.RawMessage(`{"id": "1234", "type": "shows", "attributes": {"title": "Le Billet de Guillaume Meurice"}}`),
		},
		Meta: map[string]interface{}{
			"total":      len(ids),
			"pagination": map[string]int{"next": next},
		},
	}

	for _, id := range ids {
		p.Data = append(p.Data, json.RawMessage(fmt.Sprintf(`{
		  "id": %q,
		  "type": "diffusions",
		  "attributes": {
		    "title": "Épisode %s",
		    "standfirst": "Un épisode formidable",
		    "path": "/franceinter/podcasts/test/%s",
		    "published_date": 1736899200,
		    "podcast_episode": {
		      "url": "https://media.radiofrance-podcast.net/podcast09/%s.mp3",
		      "duration": 180
		    }
		  },
		  "relationships": {"show": {"data": {"id": "1234", "type": "shows"}}}
		}`, id, id, id, id)))
	}

	out, _ := json.Marshal(p)
	return string(out)
}

func TestGetShowEpisodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shows/1234/diffusions", r.URL.Path)
		_, _ = w.Write([]byte(diffusionsPage([]string{"diff-001", "diff-002"}, 2)))
	})

	episodes, next, err := c.GetShowEpisodes(context.Background(), "1234", 1)
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, 2, next)

	ep := episodes[0]
	assert.Equal(t, "diff-001", ep.ID)
	assert.Equal(t, "Épisode diff-001", ep.Title)
	assert.Equal(t, "Le Billet de Guillaume Meurice", ep.ShowTitle)
	assert.Equal(t, 180, ep.Duration)
	assert.Contains(t, ep.AudioURL, ".mp3")
	require.NotNil(t, ep.PublishedAt)
	assert.Equal(t, 2025, ep.PublishedAt.Year())
}

func TestGetShowEpisodesLastPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [], "included": [], "meta": {"total": 0}}`))
	})

	episodes, next, err := c.GetShowEpisodes(context.Background(), "1234", 1)
	require.NoError(t, err)
	assert.Empty(t, episodes)
	assert.Equal(t, 0, next)
}

func TestGetAllShowEpisodes(t *testing.T) {
	pages := map[string]string{
		"":  diffusionsPage([]string{"diff-001", "diff-002"}, 2),
		"2": diffusionsPage([]string{"diff-003"}, 0),
	}

	var requests int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(pages[r.URL.Query().Get("page")]))
	})

	episodes, err := c.GetAllShowEpisodes(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, 2, requests)

	// Pages concatenated in upstream order.
	require.Len(t, episodes, 3)
	assert.Equal(t, "diff-001", episodes[0].ID)
	assert.Equal(t, "diff-002", episodes[1].ID)
	assert.Equal(t, "diff-003", episodes[2].ID)
}
