package main

import (
	"context"
	"fmt"
)

type listCommand struct {
	Args struct {
		Query string `positional-arg-name:"query" description:"list shows matching this query instead of stations"`
	} `positional-args:"yes"`
}

func (c *listCommand) Execute(_ []string) error {
	if c.Args.Query == "" {
		renderStations()
		return nil
	}

	client, err := newAPI()
	if err != nil {
		return err
	}

	shows, err := client.SearchShows(context.Background(), c.Args.Query, defaultStation())
	if err != nil {
		return err
	}

	if len(shows) == 0 {
		fmt.Printf("No shows found for %q.\n", c.Args.Query)
		return nil
	}

	renderShows(shows)
	return nil
}
