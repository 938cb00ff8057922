package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/logs"
)

// Errors exposed by the service layer.
var ErrNotFound = errors.New("game not found")

// GameState is the in-memory state tracked per game.
type GameState struct {
	ID      string
	Game    domain.Game
	Created time.Time
	Updated time.Time
}

func (gs *GameState) clone() GameState {
	cp := *gs
	cp.Game = gs.Game.Clone()
	return cp
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service owns one game controller per session and fans rendered updates out
// to every viewer of that session.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	log    *slog.Logger
}

func noRender(GameState) []byte { return nil }

// NewService creates a service with a renderer that broadcasts empty payloads.
func NewService(logger *slog.Logger) *Service { return NewServiceWithRenderer(logger, nil) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(logger *slog.Logger, renderer func(GameState) []byte) *Service {
	if renderer == nil {
		renderer = noRender
	}
	if logger == nil {
		logger = logs.Discard()
	}
	return &Service{
		games:  make(map[string]*GameState),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: renderer,
		log:    logger.With("component", "service"),
	}
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		renderer = noRender
	}
	s.render = renderer
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	now := time.Now()
	gs := &GameState{ID: id, Game: domain.New(), Created: now, Updated: now}
	s.games[id] = gs
	s.log.Info("game created", "game", id)
	cp := gs.clone()
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := gs.clone()
	return &cp, true
}

// Play places the next mark on cell (0..8) of the displayed board.
func (s *Service) Play(id string, cell int) (*GameState, error) {
	return s.apply(id, "play", func(g *domain.Game) error { return g.Play(cell) })
}

// JumpTo moves the displayed step of the game.
func (s *Service) JumpTo(id string, step int) (*GameState, error) {
	return s.apply(id, "jump", func(g *domain.Game) error { return g.JumpTo(step) })
}

// ToggleSort flips the move list order.
func (s *Service) ToggleSort(id string) (*GameState, error) {
	return s.apply(id, "sort", func(g *domain.Game) error {
		g.ToggleSortOrder()
		return nil
	})
}

// apply runs cmd against the game under the lock. A rejected command returns
// the unchanged state alongside the error and is not broadcast.
func (s *Service) apply(id, op string, cmd func(*domain.Game) error) (*GameState, error) {
	s.mu.Lock()
	gs, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if err := cmd(&gs.Game); err != nil {
		cp := gs.clone()
		s.mu.Unlock()
		s.log.Debug("command rejected", "game", id, "op", op, "error", err)
		return &cp, fmt.Errorf("%s: %w", op, err)
	}
	gs.Updated = time.Now()

	cp := gs.clone()
	s.broadcastLocked(id, s.render(cp))
	s.mu.Unlock()
	return &cp, nil
}

// broadcastLocked delivers payload without blocking; slow subscribers are
// dropped. Sends and closes both happen under s.mu, so a subscriber can never
// be closed between the two.
func (s *Service) broadcastLocked(id string, payload []byte) {
	set := s.subs[id]
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			delete(set, sub)
			sub.close()
			dropped++
		}
	}
	if dropped == 0 {
		return
	}
	if len(set) == 0 {
		delete(s.subs, id)
	}
	s.log.Warn("dropping slow subscribers", "game", id, "count", dropped)
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
// The channel is closed on unsubscribe, context cancellation, or when the
// subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, func() {}, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	done := make(chan struct{})
	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(s.subs, id)
				}
			}
			sub.close()
			s.mu.Unlock()
			close(done)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-done:
		}
	}()
	return sub.ch, unsub, nil
}
