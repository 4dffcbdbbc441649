package model

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationsClosedSet(t *testing.T) {
	assert.Len(t, Stations, 7)
	assert.Len(t, StationIDs(), 7)

	inter, ok := Stations[StationFranceInter]
	require.True(t, ok)
	assert.Equal(t, "France Inter", inter.Name)
}

func TestStationFromSlug(t *testing.T) {
	station, ok := StationFromSlug("franceinter")
	require.True(t, ok)
	assert.Equal(t, StationFranceInter, station.ID)

	station, ok = StationFromSlug("FIP")
	require.True(t, ok)
	assert.Equal(t, StationFIP, station.ID)

	_, ok = StationFromSlug("bbc")
	assert.False(t, ok)
}

func TestStationFromURL(t *testing.T) {
	station, ok := StationFromURL("https://www.radiofrance.fr/franceculture/podcasts/les-chemins")
	require.True(t, ok)
	assert.Equal(t, StationFranceCulture, station.ID)

	station, ok = StationFromURL("https://www.radiofrance.fr/mouv")
	require.True(t, ok)
	assert.Equal(t, StationMouv, station.ID)

	_, ok = StationFromURL("https://example.com/nothing")
	assert.False(t, ok)
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadGateway, Message: "bad gateway"}
	assert.Contains(t, err.Error(), "502")

	err = &APIError{Message: "connection refused"}
	assert.Equal(t, "api error: connection refused", err.Error())
}

func TestAuthErrorDefaultMessage(t *testing.T) {
	assert.Equal(t, "invalid or missing API key", (&AuthError{}).Error())
}

func TestDownloadErrorUnwrap(t *testing.T) {
	cause := assert.AnError
	err := &DownloadError{URL: "https://example.com/a.mp3", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "a.mp3")
}
