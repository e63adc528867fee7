// Package loop drives a game: it queues actions from input goroutines, steps
// the engine on a fixed cadence and hands every new state to a renderer.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/game"
)

// ErrStopped is returned by Dispatch once the session has stopped.
var ErrStopped = errors.New("loop: session stopped")

const defaultQueueSize = 64

// RenderFunc draws a state. It runs on the ticking goroutine after every step
// and must not block for long.
type RenderFunc func(s game.State) error

// Session is the explicit context of one game: engine, latest state and the
// queue of actions waiting for the next tick.
type Session struct {
	engine  *game.Engine
	actions chan game.Action
	state   atomic.Pointer[game.State]
	render  RenderFunc
	logger  *log.Logger

	restart atomic.Bool
	stopped atomic.Bool
	mu      sync.Mutex // Serializes steps
}

// Option configures a Session.
type Option func(*Session)

// WithRenderer sets the hook called with each new state.
func WithRenderer(fn RenderFunc) Option {
	return func(s *Session) {
		s.render = fn
	}
}

// WithLogger sets the logger for game events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithQueueSize sets how many actions may wait for the next tick.
func WithQueueSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.actions = make(chan game.Action, n)
		}
	}
}

// NewSession starts a new game from seed.
func NewSession(engine *game.Engine, seed uint64, opts ...Option) *Session {
	s := &Session{
		engine:  engine,
		actions: make(chan game.Action, defaultQueueSize),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	st := engine.NewGame(seed)
	s.state.Store(&st)
	return s
}

// State returns the latest state.
func (s *Session) State() game.State {
	return *s.state.Load()
}

// Dispatch queues an action for the next tick. It never blocks: when the
// queue is full the oldest pending action is dropped.
func (s *Session) Dispatch(a game.Action) error {
	if s.stopped.Load() {
		return ErrStopped
	}
	for {
		select {
		case s.actions <- a:
			return nil
		default:
		}
		select {
		case old := <-s.actions:
			s.logger.Debug("action dropped", "action", old)
		default:
		}
	}
}

// Restart replaces the game with a new one at the next tick boundary.
func (s *Session) Restart() {
	s.restart.Store(true)
}

// Step runs one tick: pending actions in order, then the game loop, then the
// renderer.
func (s *Session) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := *s.state.Load()
	next := prev
	if s.restart.Swap(false) {
		s.discardPending()
		next = s.engine.NewGame(prev.Seed)
		s.logger.Info("new game", "previous_score", prev.Score)
	}

drain:
	for {
		select {
		case a := <-s.actions:
			next = s.engine.Update(next, a)
		default:
			break drain
		}
	}
	next = s.engine.Update(next, game.GameLoop)
	s.state.Store(&next)
	s.observe(prev, next)

	if s.render == nil {
		return nil
	}
	return s.render(next)
}

// Run steps the session at the configured tick rate until ctx is done or the
// renderer fails. Cancellation is not an error.
func (s *Session) Run(ctx context.Context) error {
	defer s.stopped.Store(true)

	ticker := time.NewTicker(s.engine.Config().TickTime())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Step(); err != nil {
				return fmt.Errorf("step tick %d: %w", s.State().Tick, err)
			}
		}
	}
}

func (s *Session) discardPending() {
	for {
		select {
		case <-s.actions:
		default:
			return
		}
	}
}

// observe logs the game events between two consecutive states.
func (s *Session) observe(prev, next game.State) {
	if next.Level > prev.Level {
		s.logger.Info("level cleared", "level", next.Level, "score", next.Score)
	}
	if next.Lives < prev.Lives {
		if next.Lives == 0 {
			s.logger.Info("game over", "score", next.Score, "level", next.Level, "ticks", next.Tick)
		} else {
			s.logger.Info("ship destroyed", "lives", next.Lives)
		}
	}
}
