// Package commandtest provides helpers for testing commands without a transport.
package commandtest

import (
	"context"
	"sync"

	"github.com/keshon/abyss/internal/command"
)

// Recorder is a Responder that keeps every reply.
type Recorder struct {
	mu      sync.Mutex
	Replies []command.Reply
	Err     error
}

func (r *Recorder) Reply(_ context.Context, reply command.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Replies = append(r.Replies, reply)
	return r.Err
}

// Last returns the most recent reply.
func (r *Recorder) Last() command.Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Replies) == 0 {
		return command.Reply{}
	}
	return r.Replies[len(r.Replies)-1]
}

// NewContext returns a command context replying into a fresh Recorder.
func NewContext() (*command.Context, *Recorder) {
	rec := &Recorder{}
	return &command.Context{
		Responder: rec,
		GuildID:   "guild",
		ChannelID: "channel",
		UserID:    "user",
		Username:  "tester",
	}, rec
}
