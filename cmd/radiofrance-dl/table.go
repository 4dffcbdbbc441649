package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func renderShows(shows []model.Show) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTITLE\tSTATION\tDESCRIPTION")
	for _, show := range shows {
		station := "-"
		if show.Station != nil {
			station = show.Station.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", show.ID, show.Title, station, truncate(show.Description, 50))
	}
}

func renderStations() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tURL")
	for _, id := range model.StationIDs() {
		station := model.Stations[id]
		fmt.Fprintf(w, "%s\t%s\t%s\n", station.ID, station.Name, station.URL)
	}
}

func renderEpisodes(episodes []model.Episode) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTITLE\tDATE\tDURATION")
	for _, ep := range episodes {
		date := "-"
		if ep.PublishedAt != nil {
			date = ep.PublishedAt.Format("2006-01-02")
		}

		duration := "-"
		if ep.Duration > 0 {
			duration = fmt.Sprintf("%d:%02d", ep.Duration/60, ep.Duration%60)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ep.ID, truncate(ep.Title, 60), date, duration)
	}
}
