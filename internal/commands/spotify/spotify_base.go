// Package spotify holds the catalog lookup commands.
package spotify

import (
	"context"
	"fmt"
	"strings"
	"time"

	catalog "github.com/keshon/abyss/internal/catalog/spotify"
	"github.com/keshon/abyss/pkg/cmd"
)

// Catalog is the part of the Spotify client the commands use.
type Catalog interface {
	SearchTrack(ctx context.Context, query string) (*catalog.Track, error)
	SearchAlbum(ctx context.Context, query string) (*catalog.Album, error)
	Track(ctx context.Context, id string) (*catalog.Track, error)
	Album(ctx context.Context, id string) (*catalog.Album, error)
}

const category = "🎵 Music"

// releaseDate formats a release date at the precision Spotify reported it.
func releaseDate(a *catalog.SimpleAlbum) string {
	t, ok := a.Released()
	if !ok {
		return "Unknown"
	}
	switch strings.Count(a.ReleaseDate, "-") {
	case 0:
		return t.Format("2006")
	case 1:
		return t.Format("January 2006")
	default:
		return t.Format("Monday, January 2, 2006")
	}
}

// linkedID returns the ID from a query that is an open.spotify.com link to a
// resource of kind, such as https://open.spotify.com/track/<id>.
func linkedID(inv *cmd.Invocation, kind string) (string, bool) {
	u, err := inv.URL("query")
	if err != nil || !strings.EqualFold(u.Hostname(), "open.spotify.com") {
		return "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// localized links carry a leading intl-xx segment
	if len(parts) == 3 && strings.HasPrefix(parts[0], "intl-") {
		parts = parts[1:]
	}
	if len(parts) != 2 || parts[0] != kind || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// presenceQuery builds a field-filtered search from a presence entry.
func presenceQuery(name, field, artist string) string {
	q := fmt.Sprintf("%s:%q", field, name)
	if artist != "" {
		q += fmt.Sprintf(" artist:%q", artist)
	}
	return q
}

func trackLength(d time.Duration) string {
	return fmt.Sprintf("%d minutes, %d seconds", int(d.Minutes())%60, int(d.Seconds())%60)
}

func albumLength(d time.Duration) string {
	return fmt.Sprintf("%d hours, %d minutes", int(d.Hours()), int(d.Minutes())%60)
}
