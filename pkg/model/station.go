package model

import "strings"

// StationID identifies one of the seven Radio France brands.
// The set is fixed; ids match the upstream numeric station ids.
type StationID string

const (
	StationFranceInter   = StationID("1")
	StationFranceInfo    = StationID("2")
	StationFranceBleu    = StationID("3")
	StationFranceCulture = StationID("4")
	StationFranceMusique = StationID("5")
	StationMouv          = StationID("6")
	StationFIP           = StationID("7")
)

// Station is a Radio France station.
type Station struct {
	ID   StationID
	Name string
	URL  string
}

// Stations holds the closed set of known stations, keyed by id.
var Stations = map[StationID]Station{
	StationFranceInter: {
		ID:   StationFranceInter,
		Name: "France Inter",
		URL:  "https://www.radiofrance.fr/franceinter",
	},
	StationFranceInfo: {
		ID:   StationFranceInfo,
		Name: "franceinfo",
		URL:  "https://www.radiofrance.fr/franceinfo",
	},
	StationFranceBleu: {
		ID:   StationFranceBleu,
		Name: "France Bleu",
		URL:  "https://www.radiofrance.fr/francebleu",
	},
	StationFranceCulture: {
		ID:   StationFranceCulture,
		Name: "France Culture",
		URL:  "https://www.radiofrance.fr/franceculture",
	},
	StationFranceMusique: {
		ID:   StationFranceMusique,
		Name: "France Musique",
		URL:  "https://www.radiofrance.fr/francemusique",
	},
	StationMouv: {
		ID:   StationMouv,
		Name: "Mouv'",
		URL:  "https://www.radiofrance.fr/mouv",
	},
	StationFIP: {
		ID:   StationFIP,
		Name: "FIP",
		URL:  "https://www.radiofrance.fr/fip",
	},
}

// StationIDs returns all station ids in a stable, upstream-numeric order.
func StationIDs() []StationID {
	return []StationID{
		StationFranceInter,
		StationFranceInfo,
		StationFranceBleu,
		StationFranceCulture,
		StationFranceMusique,
		StationMouv,
		StationFIP,
	}
}

var slugToStation = map[string]StationID{
	"franceinter":   StationFranceInter,
	"franceinfo":    StationFranceInfo,
	"francebleu":    StationFranceBleu,
	"franceculture": StationFranceCulture,
	"francemusique": StationFranceMusique,
	"mouv":          StationMouv,
	"fip":           StationFIP,
}

// StationFromSlug resolves a station by its URL slug, e.g. "franceinter".
func StationFromSlug(slug string) (Station, bool) {
	id, ok := slugToStation[strings.ToLower(slug)]
	if !ok {
		return Station{}, false
	}
	return Stations[id], true
}

// StationFromURL tries to determine the station from a show or episode URL.
func StationFromURL(url string) (Station, bool) {
	for slug, id := range slugToStation {
		if strings.Contains(url, "/"+slug+"/") || strings.HasSuffix(url, "/"+slug) {
			return Stations[id], true
		}
	}
	return Station{}, false
}
