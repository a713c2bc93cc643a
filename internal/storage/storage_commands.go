package storage

// AppendCommand records a dispatched command, keeping the most recent entries.
func (s *Storage) AppendCommand(guildID string, rec CommandRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandHistory = append(record.CommandHistory, rec)
	if n := len(record.CommandHistory); n > commandHistoryLimit {
		record.CommandHistory = record.CommandHistory[n-commandHistoryLimit:]
	}
	s.ds.Add(recordKey(guildID), record)
	return nil
}

// CommandHistory returns recorded commands for guildID, oldest first.
func (s *Storage) CommandHistory(guildID string) ([]CommandRecord, error) {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandHistory, nil
}
