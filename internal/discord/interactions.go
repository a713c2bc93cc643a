package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/unixargs"
)

// onMessageCreate dispatches prefixed chat messages.
func (b *Bot) onMessageCreate(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	name, raw, ok := cmd.SplitLine(m.Content, b.cfg.CommandPrefix)
	if !ok || b.reg.Get(name) == nil {
		return
	}

	cctx := &command.Context{
		Responder: &messageResponder{s: s, channelID: m.ChannelID, messageID: m.ID, guildID: m.GuildID},
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Username:  m.Author.Username,
		NowPlaying: func() (command.Listening, bool) {
			return b.nowPlaying(s, m.GuildID, m.Author.ID)
		},
	}
	if err := command.Dispatch(ctx, b.reg, cctx, name, raw); err != nil {
		b.log.Error("message command failed", zap.String("command", name), zap.Error(err))
	}
}

// onInteractionCreate runs slash commands. Options are bound with the same
// rules as typed arguments.
func (b *Bot) onInteractionCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	c := b.reg.Get(data.Name)
	if c == nil {
		b.log.Warn("unknown slash command", zap.String("command", data.Name))
		return
	}

	user := interactionUser(i)
	if user == nil {
		return
	}
	cctx := &command.Context{
		Responder: &interactionResponder{s: s, i: i.Interaction},
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		UserID:    user.ID,
		Username:  user.Username,
		NowPlaying: func() (command.Listening, bool) {
			return b.nowPlaying(s, i.GuildID, user.ID)
		},
	}

	args, err := unixargs.Fill(optionValues(data.Options), cmd.Parameters(c))
	if err != nil {
		var perr unixargs.ParseError
		if errors.As(err, &perr) {
			err = cctx.Reply(ctx, command.Reply{Content: command.Describe(err)})
		}
		b.stats.record(err)
		if err != nil {
			b.log.Error("failed to bind slash options", zap.String("command", c.Name()), zap.Error(err))
		}
		return
	}

	err = command.Run(ctx, c, cctx, "", args)
	b.stats.record(err)
	if err != nil {
		b.log.Error("slash command failed", zap.String("command", c.Name()), zap.Error(err))
	}
}

// optionValues flattens top-level interaction options into name/value pairs.
func optionValues(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]any {
	out := make(map[string]any, len(opts))
	for _, o := range opts {
		switch v := o.Value.(type) {
		case bool, string:
			out[o.Name] = v
		case nil:
		default:
			out[o.Name] = fmt.Sprint(v)
		}
	}
	return out
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

type messageResponder struct {
	s         *discordgo.Session
	channelID string
	messageID string
	guildID   string
}

func (r *messageResponder) Reply(_ context.Context, reply command.Reply) error {
	msg := &discordgo.MessageSend{
		Content:         reply.Content,
		Reference:       &discordgo.MessageReference{MessageID: r.messageID, ChannelID: r.channelID, GuildID: r.guildID},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	if reply.Embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{reply.Embed}
	}
	_, err := r.s.ChannelMessageSendComplex(r.channelID, msg)
	return err
}

// interactionResponder answers the interaction once and sends any further
// replies as followups.
type interactionResponder struct {
	s *discordgo.Session
	i *discordgo.Interaction

	mu        sync.Mutex
	responded bool
}

func (r *interactionResponder) Reply(_ context.Context, reply command.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var embeds []*discordgo.MessageEmbed
	if reply.Embed != nil {
		embeds = []*discordgo.MessageEmbed{reply.Embed}
	}

	if r.responded {
		_, err := r.s.FollowupMessageCreate(r.i, true, &discordgo.WebhookParams{Content: reply.Content, Embeds: embeds})
		return err
	}
	err := r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: reply.Content, Embeds: embeds},
	})
	if err == nil {
		r.responded = true
	}
	return err
}
