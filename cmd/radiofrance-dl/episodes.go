package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

type episodesCommand struct {
	Page  int    `long:"page" default:"1" description:"page to fetch (show id form)"`
	After string `long:"after" description:"pagination cursor (show URL form)"`
	All   bool   `long:"all" description:"fetch every page"`

	Args struct {
		Show string `positional-arg-name:"show" required:"yes" description:"show id or show page URL"`
	} `positional-args:"yes"`
}

func (c *episodesCommand) Execute(_ []string) error {
	ctx := context.Background()

	episodes, next, err := resolveEpisodes(ctx, c.Args.Show, c.Page, c.After, c.All)
	if err != nil {
		return err
	}

	if len(episodes) == 0 {
		fmt.Println("No episodes found.")
		return nil
	}

	renderEpisodes(episodes)

	if next != "" {
		if strings.HasPrefix(c.Args.Show, "http") {
			fmt.Printf("\nNext page: --after %s\n", next)
		} else {
			fmt.Printf("\nNext page: --page %s\n", next)
		}
	}
	return nil
}

// resolveEpisodes lists episodes through the flavor of the API matching
// the argument: show page URLs go through GraphQL cursors, bare show
// ids through the numeric REST pagination. The returned string names
// the next page, empty when the listing is exhausted.
func resolveEpisodes(ctx context.Context, show string, page int, after string, all bool) ([]model.Episode, string, error) {
	if strings.HasPrefix(show, "http") {
		gql, err := newGraphQL()
		if err != nil {
			return nil, "", err
		}

		episodes, cursor, err := gql.ShowEpisodes(ctx, show, 20, after, all)
		if err != nil {
			return nil, "", err
		}
		if all {
			cursor = ""
		}
		return episodes, cursor, nil
	}

	client, err := newAPI()
	if err != nil {
		return nil, "", err
	}

	if all {
		episodes, err := client.GetAllShowEpisodes(ctx, show)
		return episodes, "", err
	}

	episodes, next, err := client.GetShowEpisodes(ctx, show, page)
	if err != nil {
		return nil, "", err
	}

	var nextLabel string
	if next > 0 {
		nextLabel = fmt.Sprintf("%d", next)
	}
	return episodes, nextLabel, nil
}
