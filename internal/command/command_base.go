// Package command is the glue between transports and commands: the context a
// command receives, how replies travel back, and how parse failures become
// user-facing messages.
package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/abyss/pkg/cmd"
)

// Reply is a response to an invocation; either field may be empty.
type Reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// Responder delivers replies on whatever transport the invocation came from.
type Responder interface {
	Reply(ctx context.Context, r Reply) error
}

// Context is what adapters put into Invocation.Data.
type Context struct {
	Responder
	GuildID   string
	ChannelID string
	UserID    string
	Username  string

	// NowPlaying reports what the invoker is currently listening to. Nil when
	// the transport has no presence information.
	NowPlaying func() (Listening, bool)
}

// Listening is a track taken from a user's presence.
type Listening struct {
	Track  string
	Artist string
	Album  string
}

// FromInvocation returns the command context carried by inv.
func FromInvocation(inv *cmd.Invocation) (*Context, bool) {
	c, ok := inv.Data.(*Context)
	return c, ok && c != nil
}
