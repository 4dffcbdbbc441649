package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvailland/radiofrance-dl/pkg/config"
	"github.com/mvailland/radiofrance-dl/pkg/model"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "toolon...", truncate("toolongvalue", 9))
}

func TestHasPlayable(t *testing.T) {
	assert.False(t, hasPlayable(nil))
	assert.False(t, hasPlayable([]model.Episode{{Title: "a"}}))
	assert.True(t, hasPlayable([]model.Episode{{Title: "a"}, {Title: "b", AudioURL: "https://x/y.mp3"}}))
}

func TestDefaultStation(t *testing.T) {
	cfg = &config.Config{}
	assert.Nil(t, defaultStation())

	cfg = &config.Config{DefaultStation: "42"}
	assert.Nil(t, defaultStation())

	cfg = &config.Config{DefaultStation: "1"}
	station := defaultStation()
	if assert.NotNil(t, station) {
		assert.Equal(t, model.StationFranceInter, *station)
	}
}

func TestNewAPIRequiresKey(t *testing.T) {
	cfg = &config.Config{}
	_, err := newAPI()
	assert.Error(t, err)

	_, err = newGraphQL()
	assert.Error(t, err)

	cfg = &config.Config{APIKey: "key"}
	client, err := newAPI()
	assert.NoError(t, err)
	assert.NotNil(t, client)
}
