package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/game"
	"github.com/tomz197/asteroids-classic/internal/input"
	"github.com/tomz197/asteroids-classic/internal/render"
)

// TerminalOptions configures RunTerminal.
type TerminalOptions struct {
	Config       config.Game
	Seed         uint64
	TermSizeFunc draw.TermSizeFunc // Defaults to draw.DefaultTermSizeFunc
	Logger       *log.Logger
}

// terminal renders a session as ANSI half-block art and feeds it keys.
type terminal struct {
	session    *Session
	renderer   *render.Renderer
	screen     *draw.Screen
	writer     *draw.ChunkWriter
	stream     *input.Stream
	translator input.Translator
	sizeFunc   draw.TermSizeFunc
	cfg        config.Game
	cancel     context.CancelFunc

	termWidth  int
	termHeight int
}

// RunTerminal plays one session on a raw-mode terminal. It returns when ctx
// is done, the player quits or r is exhausted.
func RunTerminal(ctx context.Context, r io.Reader, w io.Writer, opts TerminalOptions) error {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t := &terminal{
		renderer: render.New(opts.Config),
		screen:   draw.NewScreen(0, 0, opts.Config.Width, opts.Config.Height),
		writer:   draw.NewChunkWriter(w, 0, 0),
		stream:   input.StartStream(bufio.NewReader(r)),
		sizeFunc: opts.TermSizeFunc,
		cfg:      opts.Config,
		cancel:   cancel,
	}
	t.session = NewSession(game.NewEngine(opts.Config), opts.Seed,
		WithLogger(opts.Logger),
		WithRenderer(t.frame),
	)

	draw.HideCursor(t.writer)
	draw.ClearScreen(t.writer)
	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("prepare terminal: %w", err)
	}
	defer func() {
		draw.ClearScreen(t.writer)
		draw.ShowCursor(t.writer)
		_ = t.writer.Flush()
	}()

	opts.Logger.Info("game started", "seed", opts.Seed)
	err := t.session.Run(ctx)
	final := t.session.State()
	opts.Logger.Info("game ended", "score", final.Score, "level", final.Level)
	return err
}

// frame draws s, then reads the keys for the next tick.
func (t *terminal) frame(s game.State) error {
	if err := t.resize(); err != nil {
		return err
	}

	t.renderer.Render(s, t.screen.Surfaces())
	canvas := t.screen.Frame()
	canvas.Render(t.writer)
	canvas.RenderBorder(t.writer)
	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}

	in, open := t.stream.ReadInput()
	if !open || in.Quit {
		t.cancel()
		return nil
	}
	if s.Phase() == game.PhaseGameOver && in.Enter {
		t.session.Restart()
		t.translator.Reset()
		return nil
	}
	for _, a := range t.translator.Translate(input.KeysOf(in)) {
		if err := t.session.Dispatch(a); err != nil {
			return err
		}
	}
	return nil
}

// resize refits the canvas when the terminal size changes.
func (t *terminal) resize() error {
	width, height, err := t.sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	if width == t.termWidth && height == t.termHeight {
		return nil
	}
	t.termWidth, t.termHeight = width, height

	cols, rows, offsetCol, offsetRow := draw.Fit(width, height, t.cfg.Width, t.cfg.Height)
	t.screen.Resize(cols, rows)
	t.writer.SetOffset(offsetCol, offsetRow)
	t.screen.Frame().ForceRedraw()
	return nil
}
