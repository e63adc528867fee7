package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("load .env", "err", err)
	}
	logger := config.NewLogger(os.Stderr, "ssh")
	cfg := config.FromEnv()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath)

	games := newGameTracker()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(games, cfg, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// TCP_NODELAY keeps input latency low.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down")
	games.shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown", "err", err)
	}
}

// gameMiddleware runs one independent game per SSH session.
func gameMiddleware(games *gameTracker, cfg config.Game, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				wish.Println(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}
			if !games.start() {
				wish.Println(sess, "Server is shutting down.")
				return
			}
			defer games.done()

			l := logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
			l.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			ctx, cancel := context.WithCancel(sess.Context())
			defer cancel()
			stop := context.AfterFunc(games.ctx, cancel)
			defer stop()

			err := loop.RunTerminal(ctx, sess, sess, loop.TerminalOptions{
				Config:       cfg,
				Seed:         uint64(time.Now().UnixNano()),
				TermSizeFunc: sizeTracker.getSize,
				Logger:       l,
			})
			if err != nil {
				l.Error("game error", "err", err)
			}
			l.Info("session ended")
			next(sess)
		}
	}
}

// gameTracker counts running games. Once shutdown begins it refuses new
// games, cancels the running ones and waits for them to end.
type gameTracker struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	closing bool
	running sync.WaitGroup
}

func newGameTracker() *gameTracker {
	ctx, cancel := context.WithCancel(context.Background())
	return &gameTracker{ctx: ctx, cancel: cancel}
}

// start registers a game. It returns false once shutdown has begun.
func (g *gameTracker) start() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closing {
		return false
	}
	g.running.Add(1)
	return true
}

func (g *gameTracker) done() {
	g.running.Done()
}

// shutdown cancels every running game and blocks until all have ended.
func (g *gameTracker) shutdown() {
	g.mu.Lock()
	g.closing = true
	g.mu.Unlock()
	g.cancel()
	g.running.Wait()
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
