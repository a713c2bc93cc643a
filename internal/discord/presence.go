package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/abyss/internal/command"
)

func (b *Bot) nowPlaying(s *discordgo.Session, guildID, userID string) (command.Listening, bool) {
	if guildID == "" {
		return command.Listening{}, false
	}
	p, err := s.State.Presence(guildID, userID)
	if err != nil {
		return command.Listening{}, false
	}
	return listeningFrom(p)
}

// listeningFrom picks the Spotify activity out of a presence. Spotify puts the
// track in Details, artists in State and the album in the large image text.
func listeningFrom(p *discordgo.Presence) (command.Listening, bool) {
	if p == nil {
		return command.Listening{}, false
	}
	for _, a := range p.Activities {
		if a == nil || a.Type != discordgo.ActivityTypeListening || !strings.EqualFold(a.Name, "Spotify") {
			continue
		}
		if a.Details == "" {
			continue
		}
		return command.Listening{
			Track:  a.Details,
			Artist: firstArtist(a.State),
			Album:  a.Assets.LargeText,
		}, true
	}
	return command.Listening{}, false
}

// Spotify joins multiple artists with "; ".
func firstArtist(state string) string {
	name, _, _ := strings.Cut(state, ";")
	return strings.TrimSpace(name)
}
