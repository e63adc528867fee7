// Package tcellhost plays a game on a tcell screen.
package tcellhost

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/game"
	"github.com/tomz197/asteroids-classic/internal/input"
	"github.com/tomz197/asteroids-classic/internal/loop"
	"github.com/tomz197/asteroids-classic/internal/render"
)

// control is a key the host tracks as held.
type control int

const (
	ctrlNone control = iota
	ctrlLeft
	ctrlRight
	ctrlThrust
	ctrlFire
	ctrlCount
)

var (
	styleBoard = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFrame = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Host renders a session onto a tcell screen and feeds it key events. The
// caller owns the screen's Init and Fini.
type Host struct {
	screen tcell.Screen
	cfg    config.Game
	logger *log.Logger
	seed   uint64
	hold   time.Duration
	now    func() time.Time

	session    *loop.Session
	renderer   *render.Renderer
	canvas     *draw.Screen
	translator input.Translator
	events     chan tcell.Event
	cancel     context.CancelFunc

	pressed [ctrlCount]time.Time
	width   int
	height  int
	offCol  int
	offRow  int
}

// Option configures a Host.
type Option func(*Host)

// WithSeed sets the seed of the first game.
func WithSeed(seed uint64) Option {
	return func(h *Host) {
		h.seed = seed
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// WithHoldDuration sets how long a key counts as held after its last event.
func WithHoldDuration(d time.Duration) Option {
	return func(h *Host) {
		h.hold = d
	}
}

// New creates a host for an initialized screen.
func New(screen tcell.Screen, cfg config.Game, opts ...Option) *Host {
	h := &Host{
		screen:   screen,
		cfg:      cfg,
		logger:   log.New(io.Discard),
		hold:     input.DefaultHoldDuration,
		now:      time.Now,
		renderer: render.New(cfg),
		canvas:   draw.NewScreen(0, 0, cfg.Width, cfg.Height),
		events:   make(chan tcell.Event, 100),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run plays until ctx is done or the player quits with q, ESC or Ctrl-C.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	h.cancel = cancel

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case h.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	h.session = loop.NewSession(game.NewEngine(h.cfg), h.seed,
		loop.WithLogger(h.logger),
		loop.WithRenderer(h.frame),
	)
	h.screen.HideCursor()
	h.logger.Info("game started", "backend", "tcell", "seed", h.seed)
	return h.session.Run(ctx)
}

// frame draws s, then handles the events that arrived during the tick.
func (h *Host) frame(s game.State) error {
	h.fit()
	h.renderer.Render(s, h.canvas.Surfaces())
	h.blit(h.canvas.Frame())
	h.screen.Show()

	enter := false
drain:
	for {
		select {
		case ev := <-h.events:
			if h.handle(ev) {
				enter = true
			}
		default:
			break drain
		}
	}

	if s.Phase() == game.PhaseGameOver && enter {
		h.session.Restart()
		h.translator.Reset()
		return nil
	}
	for _, a := range h.translator.Translate(h.keys()) {
		if err := h.session.Dispatch(a); err != nil {
			return err
		}
	}
	return nil
}

// handle records one event and reports whether it was ENTER.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if quitKey(ev) {
			h.cancel()
			return false
		}
		if ev.Key() == tcell.KeyEnter {
			return true
		}
		if c := controlOf(ev); c != ctrlNone {
			h.pressed[c] = h.now()
		}
	case *tcell.EventResize:
		h.width, h.height = 0, 0
	}
	return false
}

// keys returns the controls pressed within the hold duration.
func (h *Host) keys() input.Keys {
	now := h.now()
	held := func(c control) bool {
		t := h.pressed[c]
		return !t.IsZero() && now.Sub(t) < h.hold
	}
	return input.Keys{
		Left:   held(ctrlLeft),
		Right:  held(ctrlRight),
		Thrust: held(ctrlThrust),
		Fire:   held(ctrlFire),
	}
}

// fit resizes the canvas to the screen, keeping the board aspect.
func (h *Host) fit() {
	width, height := h.screen.Size()
	if width == h.width && height == h.height {
		return
	}
	h.width, h.height = width, height
	cols, rows, offCol, offRow := draw.Fit(width, height, h.cfg.Width, h.cfg.Height)
	h.canvas.Resize(cols, rows)
	h.offCol, h.offRow = offCol, offRow
	h.screen.Clear()
	h.drawBorder(cols, rows)
}

// drawBorder frames the board when the screen leaves room for it.
func (h *Host) drawBorder(cols, rows int) {
	left, right := h.offCol-1, h.offCol+cols
	top, bottom := h.offRow-1, h.offRow+rows
	for col := h.offCol; col < right; col++ {
		if top >= 0 {
			h.screen.SetContent(col, top, '─', nil, styleFrame)
		}
		h.screen.SetContent(col, bottom, '─', nil, styleFrame)
	}
	for row := h.offRow; row < bottom; row++ {
		if left >= 0 {
			h.screen.SetContent(left, row, '│', nil, styleFrame)
		}
		h.screen.SetContent(right, row, '│', nil, styleFrame)
	}
}

// blit copies the composited canvas cells onto the screen.
func (h *Host) blit(c *draw.Canvas) {
	for row := range c.TerminalHeight() {
		for col := range c.TerminalWidth() {
			h.screen.SetContent(col+h.offCol, row+h.offRow, c.Cell(col, row), nil, styleBoard)
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// controlOf maps arrows, WASD and the vim-style letters used by the ANSI
// terminal build.
func controlOf(ev *tcell.EventKey) control {
	switch ev.Key() {
	case tcell.KeyLeft:
		return ctrlLeft
	case tcell.KeyRight:
		return ctrlRight
	case tcell.KeyUp:
		return ctrlThrust
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', 'j', 'J':
			return ctrlLeft
		case 'd', 'D', 'l', 'L':
			return ctrlRight
		case 'w', 'W', 'i', 'I':
			return ctrlThrust
		case ' ':
			return ctrlFire
		}
	}
	return ctrlNone
}
