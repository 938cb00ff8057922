package app

import (
	"context"
	"time"
)

// Sweep evicts games last updated before cutoff that nobody is watching.
// It returns the number of games removed.
func (s *Service) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, gs := range s.games {
		if !gs.Updated.Before(cutoff) || len(s.subs[id]) > 0 {
			continue
		}
		delete(s.games, id)
		delete(s.subs, id)
		n++
	}
	if n > 0 {
		s.log.Info("evicted idle games", "count", n, "remaining", len(s.games))
	}
	return n
}

// Len returns the number of games in memory.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// RunJanitor sweeps games idle for longer than ttl every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now.Add(-ttl))
		}
	}
}
