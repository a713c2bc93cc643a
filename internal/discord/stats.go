package discord

import "sync/atomic"

// Stats counts slash interactions by outcome. Safe for concurrent use.
type Stats struct {
	ok     atomic.Int64
	failed atomic.Int64
}

func (s *Stats) Successful() int64 { return s.ok.Load() }
func (s *Stats) Failed() int64     { return s.failed.Load() }

func (s *Stats) record(err error) {
	if err != nil {
		s.failed.Add(1)
		return
	}
	s.ok.Add(1)
}
