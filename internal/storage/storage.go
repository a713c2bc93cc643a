// Package storage persists per-guild bot records in a JSON datastore.
package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/keshon/datastore"
)

const commandHistoryLimit = 20

// directKey holds records for invocations outside a guild (DMs, CLI).
const directKey = "direct"

type Storage struct {
	ds *datastore.DataStore
	mu sync.Mutex // serializes read-modify-write of guild records
}

// CommandRecord is one dispatched command.
type CommandRecord struct {
	ChannelID string        `json:"channel_id"`
	UserID    string        `json:"user_id"`
	Username  string        `json:"username"`
	Command   string        `json:"command"`
	Raw       string        `json:"raw"`
	Failed    bool          `json:"failed"`
	Duration  time.Duration `json:"duration"`
	Datetime  time.Time     `json:"datetime"`
}

type Record struct {
	CommandHistory []CommandRecord   `json:"cmd_history"`
	CommandHashes  map[string]string `json:"cmd_hashes,omitempty"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, fmt.Errorf("open datastore %s: %w", filePath, err)
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

func recordKey(guildID string) string {
	if guildID == "" {
		return directKey
	}
	return guildID
}

// guildRecord returns the stored record for guildID, decoding it from the
// generic form the datastore loads from disk.
func (s *Storage) guildRecord(guildID string) (*Record, error) {
	data, ok := s.ds.Get(recordKey(guildID))
	if !ok {
		return &Record{}, nil
	}
	if rec, ok := data.(*Record); ok {
		cp := *rec
		cp.CommandHistory = append([]CommandRecord(nil), rec.CommandHistory...)
		cp.CommandHashes = maps.Clone(rec.CommandHashes)
		return &cp, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &rec, nil
}
