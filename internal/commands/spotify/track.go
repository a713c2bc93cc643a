package spotify

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	catalog "github.com/keshon/abyss/internal/catalog/spotify"
	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/unixargs"
)

type TrackCommand struct {
	Catalog Catalog
}

func (c *TrackCommand) Name() string        { return "track" }
func (c *TrackCommand) Description() string { return "Searches the Spotify database for a song" }
func (c *TrackCommand) Aliases() []string   { return []string{"spotify", "sp"} }
func (c *TrackCommand) Category() string    { return category }

func (c *TrackCommand) Parameters() []unixargs.Parameter {
	return []unixargs.Parameter{
		{Name: "query", Optional: true, Description: "The track to search for, or a Spotify link"},
	}
}

func (c *TrackCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cctx, ok := command.FromInvocation(inv)
	if !ok {
		return nil
	}

	var (
		track *catalog.Track
		err   error
	)
	if id, ok := linkedID(inv, "track"); ok {
		track, err = c.Catalog.Track(ctx, id)
	} else {
		query := inv.String("query")
		if query == "" {
			listening, ok := nowPlaying(cctx)
			if !ok {
				return cctx.Reply(ctx, command.Reply{Content: "You didn't supply a track, and you're not currently listening to anything!"})
			}
			query = presenceQuery(listening.Track, "track", listening.Artist)
		}
		track, err = c.Catalog.SearchTrack(ctx, query)
	}
	if errors.Is(err, catalog.ErrNotFound) {
		return cctx.Reply(ctx, command.Reply{Content: "Cannot find a track by that name."})
	}
	if err != nil {
		return err
	}

	return cctx.Reply(ctx, command.Reply{Embed: trackEmbed(track)})
}

func trackEmbed(t *catalog.Track) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: t.Name,
		Color: command.EmbedColor,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    command.HumanizeList(catalog.ArtistNames(t.Artists)),
			IconURL: t.Album.Cover(),
		},
	}
	if len(t.Artists) > 0 {
		embed.Author.URL = t.Artists[0].ExternalURLs.Spotify
	}
	if cover := t.Album.Cover(); cover != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: cover}
	}
	if t.Explicit {
		embed.Description = "This track contains explicit lyrics."
	}

	command.AddField(embed, "Length", trackLength(t.Duration()), true)
	command.AddField(embed, "Release Date", releaseDate(&t.Album), true)
	command.AddField(embed, "Album", command.MarkdownLink(t.Album.Name, t.Album.ExternalURLs.Spotify), true)
	command.AddField(embed, "\u200B", command.MarkdownLink("Open in Spotify", t.ExternalURLs.Spotify), false)
	return embed
}

func nowPlaying(cctx *command.Context) (command.Listening, bool) {
	if cctx.NowPlaying == nil {
		return command.Listening{}, false
	}
	return cctx.NowPlaying()
}
