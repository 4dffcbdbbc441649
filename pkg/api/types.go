package api

import (
	"github.com/mvailland/radiofrance-dl/pkg/model"
)

// The open API speaks JSON:API: every payload is a document with
// primary data, side-loaded resources in "included" and paging in "meta".

type meta struct {
	Total      int `json:"total"`
	Pagination struct {
		Page int `json:"page"`
		Next int `json:"next"`
	} `json:"pagination"`
}

type relationship struct {
	Data struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"data"`
}

type visual struct {
	Src string `json:"src"`
}

type showResource struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Path        string `json:"path"`
		Visual      visual `json:"visual"`
	} `json:"attributes"`
	Relationships struct {
		Station relationship `json:"station"`
	} `json:"relationships"`
}

type diffusionResource struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Title          string          `json:"title"`
		Standfirst     string          `json:"standfirst"`
		Path           string          `json:"path"`
		PublishedDate  model.Timestamp `json:"published_date"`
		Visual         visual          `json:"visual"`
		PodcastEpisode struct {
			URL      string `json:"url"`
			Duration int    `json:"duration"`
		} `json:"podcast_episode"`
	} `json:"attributes"`
	Relationships struct {
		Show relationship `json:"show"`
	} `json:"relationships"`
}

type includedResource struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Title string `json:"title"`
		Name  string `json:"name"`
	} `json:"attributes"`
}

type searchDocument struct {
	Data     []showResource     `json:"data"`
	Included []includedResource `json:"included"`
	Meta     meta               `json:"meta"`
}

type showDocument struct {
	Data *showResource `json:"data"`
}

type diffusionsDocument struct {
	Data     []diffusionResource `json:"data"`
	Included []includedResource  `json:"included"`
	Meta     meta                `json:"meta"`
}
