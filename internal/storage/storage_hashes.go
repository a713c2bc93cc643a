package storage

// CommandHashes returns the definition hashes of slash commands last
// registered in guildID, keyed by command name.
func (s *Storage) CommandHashes(guildID string) (map[string]string, error) {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return nil, err
	}
	if record.CommandHashes == nil {
		return map[string]string{}, nil
	}
	return record.CommandHashes, nil
}

// SetCommandHashes replaces the stored hashes for guildID.
func (s *Storage) SetCommandHashes(guildID string, hashes map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	record.CommandHashes = hashes
	s.ds.Add(recordKey(guildID), record)
	return nil
}
