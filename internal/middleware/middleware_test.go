package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/keshon/abyss/internal/command/commandtest"
	"github.com/keshon/abyss/internal/logging"
	"github.com/keshon/abyss/internal/storage"
	"github.com/keshon/abyss/pkg/cmd"
)

type probe struct {
	err error
	ran bool
}

func (p *probe) Name() string        { return "probe" }
func (p *probe) Description() string { return "probe" }

func (p *probe) Run(ctx context.Context, _ *cmd.Invocation) error {
	p.ran = true
	logging.FromContext(ctx).Info("inside")
	return p.err
}

type memoryHistory struct {
	guild   string
	records []storage.CommandRecord
}

func (m *memoryHistory) AppendCommand(guildID string, rec storage.CommandRecord) error {
	m.guild = guildID
	m.records = append(m.records, rec)
	return nil
}

func TestWithCommandLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hist := &memoryHistory{}
	p := &probe{err: errors.New("boom")}
	cctx, _ := commandtest.NewContext()

	wrapped := cmd.Apply(p, WithCommandLogger(zap.New(core), hist))
	err := wrapped.Run(context.Background(), &cmd.Invocation{Raw: "--x y", Data: cctx})
	require.Error(t, err)
	assert.True(t, p.ran)

	inside := logs.FilterMessage("inside").All()
	require.Len(t, inside, 1)
	fields := inside[0].ContextMap()
	assert.Equal(t, "probe", fields["command"])
	assert.Equal(t, "guild", fields["guild"])
	assert.Equal(t, "user", fields["invoker"])
	assert.Equal(t, "--x y", fields["raw"])

	assert.Equal(t, 1, logs.FilterMessage("command failed").Len())

	require.Len(t, hist.records, 1)
	assert.Equal(t, "guild", hist.guild)
	assert.True(t, hist.records[0].Failed)
	assert.Equal(t, "probe", hist.records[0].Command)
}

func TestWithOwnerOnly(t *testing.T) {
	p := &probe{}
	wrapped := cmd.Apply(p, WithOwnerOnly("owner"))

	cctx, rec := commandtest.NewContext()
	require.NoError(t, wrapped.Run(context.Background(), &cmd.Invocation{Data: cctx}))
	assert.False(t, p.ran)
	assert.Equal(t, OwnerOnlyMessage, rec.Last().Content)

	cctx.UserID = "owner"
	require.NoError(t, wrapped.Run(context.Background(), &cmd.Invocation{Data: cctx}))
	assert.True(t, p.ran)
}

func TestWithOwnerOnlyWithoutOwner(t *testing.T) {
	p := &probe{}
	cctx, _ := commandtest.NewContext()
	cctx.UserID = ""

	require.NoError(t, cmd.Apply(p, WithOwnerOnly("")).Run(context.Background(), &cmd.Invocation{Data: cctx}))
	assert.False(t, p.ran)
}
