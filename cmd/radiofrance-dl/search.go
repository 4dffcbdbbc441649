package main

import (
	"context"
	"fmt"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

type searchCommand struct {
	Station string `long:"station" description:"restrict to one station id"`

	Args struct {
		Query string `positional-arg-name:"query" required:"yes" description:"text to search for"`
	} `positional-args:"yes"`
}

func (c *searchCommand) Execute(_ []string) error {
	client, err := newAPI()
	if err != nil {
		return err
	}

	station := defaultStation()
	if c.Station != "" {
		id := model.StationID(c.Station)
		station = &id
	}

	shows, err := client.SearchShows(context.Background(), c.Args.Query, station)
	if err != nil {
		return err
	}

	if len(shows) == 0 {
		fmt.Println("No shows found.")
		return nil
	}

	renderShows(shows)
	return nil
}
