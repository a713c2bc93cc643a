package spotify

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	catalog "github.com/keshon/abyss/internal/catalog/spotify"
	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/internal/logging"
	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/unixargs"
)

// trackListLimit bounds the album track listing in characters.
const trackListLimit = 2000

type AlbumCommand struct {
	Catalog Catalog
}

func (c *AlbumCommand) Name() string        { return "album" }
func (c *AlbumCommand) Description() string { return "Searches the Spotify database for an album" }
func (c *AlbumCommand) Category() string    { return category }

func (c *AlbumCommand) Parameters() []unixargs.Parameter {
	return []unixargs.Parameter{
		{Name: "query", Optional: true, Description: "The album name to search for, or a Spotify link"},
	}
}

func (c *AlbumCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cctx, ok := command.FromInvocation(inv)
	if !ok {
		return nil
	}

	query := inv.String("query")
	fromPresence := query == ""
	if fromPresence {
		listening, ok := nowPlaying(cctx)
		if !ok || listening.Album == "" {
			return cctx.Reply(ctx, command.Reply{Content: "You didn't supply an album name, and you're not currently listening to anything!"})
		}
		query = presenceQuery(listening.Album, "album", listening.Artist)
	}

	var album *catalog.Album
	var err error
	if id, ok := linkedID(inv, "album"); ok {
		album, err = c.Catalog.Album(ctx, id)
	} else {
		album, err = c.Catalog.SearchAlbum(ctx, query)
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return cctx.Reply(ctx, command.Reply{Content: "Cannot find album by that name."})
	case err != nil && fromPresence:
		return err
	case err != nil:
		logging.FromContext(ctx).Warn("album search failed", zap.String("query", query), zap.Error(err))
		return cctx.Reply(ctx, command.Reply{Content: "An error occurred while searching for the album."})
	}

	return cctx.Reply(ctx, command.Reply{Embed: albumEmbed(album)})
}

func albumEmbed(a *catalog.Album) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       a.Name,
		Color:       command.EmbedColor,
		Description: trackList(a.Tracks.Items),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    command.HumanizeList(catalog.ArtistNames(a.Artists)),
			IconURL: a.Cover(),
		},
	}
	if len(a.Artists) > 0 {
		embed.Author.URL = a.Artists[0].ExternalURLs.Spotify
	}
	if cover := a.Cover(); cover != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: cover}
	}

	var lines []string
	for _, c := range a.Copyrights {
		line := fmt.Sprintf("[%s] %s", c.Label(), c.Text)
		if !slices.Contains(lines, line) {
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: strings.Join(lines, "\n")}
	}

	command.AddField(embed, "Release Date", releaseDate(&a.SimpleAlbum), true)
	command.AddField(embed, "Length", albumLength(a.Length()), true)
	return embed
}

// trackList numbers tracks until the listing would pass trackListLimit, then
// summarizes the rest.
func trackList(tracks []catalog.Track) string {
	var (
		lines []string
		size  int
	)
	for i, t := range tracks {
		line := fmt.Sprintf("%d - %s by %s", i+1,
			command.MarkdownLink(t.Name, t.ExternalURLs.Spotify),
			command.HumanizeList(catalog.ArtistNames(t.Artists)))
		size += len(line)
		if size > trackListLimit {
			break
		}
		lines = append(lines, line)
	}
	if n := len(tracks) - len(lines); n > 0 {
		lines = append(lines, fmt.Sprintf("And %d more...", n))
	}
	return strings.Join(lines, "\n")
}
