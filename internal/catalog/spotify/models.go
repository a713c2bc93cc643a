package spotify

import (
	"strings"
	"time"
)

type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

type Copyright struct {
	Text string `json:"text"`
	Type string `json:"type"` // "C" copyright, "P" performance
}

type SimpleAlbum struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ReleaseDate  string       `json:"release_date"`
	Images       []Image      `json:"images"`
	Artists      []Artist     `json:"artists"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	DurationMS   int          `json:"duration_ms"`
	Explicit     bool         `json:"explicit"`
	Artists      []Artist     `json:"artists"`
	Album        SimpleAlbum  `json:"album"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

func (t *Track) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

type Album struct {
	SimpleAlbum
	Copyrights []Copyright `json:"copyrights"`
	Tracks     struct {
		Items []Track `json:"items"`
		Total int     `json:"total"`
	} `json:"tracks"`
}

// Length sums the durations of the album's tracks.
func (a *Album) Length() time.Duration {
	var d time.Duration
	for i := range a.Tracks.Items {
		d += a.Tracks.Items[i].Duration()
	}
	return d
}

// Cover returns the first (largest) image URL.
func (a *SimpleAlbum) Cover() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0].URL
}

// Released parses the release date, which Spotify reports at year, month or
// day precision.
func (a *SimpleAlbum) Released() (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, a.ReleaseDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ArtistNames lists artist names in order.
func ArtistNames(artists []Artist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}

// Label renders the copyright kind the way it reads on a sleeve.
func (c Copyright) Label() string {
	switch strings.ToUpper(c.Type) {
	case "P":
		return "Performance"
	default:
		return "Copyright"
	}
}
