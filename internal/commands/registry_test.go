package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/keshon/abyss/internal/catalog/spotify"
	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/internal/command/commandtest"
	"github.com/keshon/abyss/internal/middleware"
	"github.com/keshon/abyss/internal/storage"
	"github.com/keshon/abyss/pkg/cmd"
)

type memStore struct{ records []storage.CommandRecord }

func (m *memStore) AppendCommand(_ string, rec storage.CommandRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memStore) CommandHistory(string) ([]storage.CommandRecord, error) {
	return m.records, nil
}

type nopCatalog struct{}

func (nopCatalog) SearchTrack(context.Context, string) (*catalog.Track, error) {
	return nil, catalog.ErrNotFound
}

func (nopCatalog) SearchAlbum(context.Context, string) (*catalog.Album, error) {
	return nil, catalog.ErrNotFound
}

func (nopCatalog) Track(context.Context, string) (*catalog.Track, error) {
	return nil, catalog.ErrNotFound
}

func (nopCatalog) Album(context.Context, string) (*catalog.Album, error) {
	return nil, catalog.ErrNotFound
}

func names(reg *cmd.Registry) []string {
	var out []string
	for _, c := range reg.GetAll() {
		out = append(out, c.Name())
	}
	return out
}

func TestRegister(t *testing.T) {
	reg := cmd.NewRegistry()
	Register(reg, Deps{Prefix: "a!", Catalog: nopCatalog{}})
	assert.Equal(t, []string{"about", "admin", "album", "help", "ping", "track"}, names(reg))
	assert.NotNil(t, reg.Get("sp"))
}

func TestRegisterWithoutCatalog(t *testing.T) {
	reg := cmd.NewRegistry()
	Register(reg, Deps{Prefix: "a!"})
	assert.Nil(t, reg.Get("track"))
	assert.Nil(t, reg.Get("album"))
}

func TestAdminIsOwnerOnlyAndRecorded(t *testing.T) {
	store := &memStore{}
	reg := cmd.NewRegistry()
	Register(reg, Deps{Prefix: "a!", OwnerID: "owner", Store: store})

	cctx, rec := commandtest.NewContext()
	require.NoError(t, command.Dispatch(context.Background(), reg, cctx, "admin", "--action history"))
	assert.Equal(t, middleware.OwnerOnlyMessage, rec.Last().Content)

	cctx.UserID = "owner"
	require.NoError(t, command.Dispatch(context.Background(), reg, cctx, "admin", "--action history"))
	assert.Contains(t, rec.Last().Content, "Executed action `history`")

	require.Len(t, store.records, 2)
	assert.Equal(t, "admin", store.records[0].Command)
	assert.Equal(t, "--action history", store.records[0].Raw)
}

func TestMarkdown(t *testing.T) {
	reg := cmd.NewRegistry()
	Register(reg, Deps{Catalog: nopCatalog{}})

	md := Markdown(reg, "a!")
	assert.Contains(t, md, "### 🕯️ Information\n\n")
	assert.Contains(t, md, "* **`a!track [--query <value>]`**\n  Searches the Spotify database for a song\n  Aliases: `spotify`, `sp`\n")
	assert.Less(t, strings.Index(md, "Information"), strings.Index(md, "Music"))
	assert.Less(t, strings.Index(md, "Music"), strings.Index(md, "Maintenance"))
}
