// Package sshserver serves LuxOS consoles over SSH with Wish. Every
// session gets its own console, so registries, files and screens are
// never shared between users.
package sshserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"luxos/internal/console"
	"luxos/internal/logger"
	"luxos/internal/terminal"
)

// DefaultPrompt is shown in front of the input line.
const DefaultPrompt = "lux> "

// Config holds the server configuration.
type Config struct {
	// Addr is the listen address; port 0 picks a free port.
	Addr string
	// HostKeyPath is created on first start when missing.
	HostKeyPath string
	// Console is applied to every session console. Render is replaced.
	// A nil HostFs confines readmodule to a read-only view of DriveDir.
	Console console.Options
	Prompt  string
}

// Server is a single-use SSH console server.
type Server struct {
	cfg Config
	log *log.Logger

	mu       sync.Mutex
	srv      *ssh.Server
	listener net.Listener
	started  bool

	wg       sync.WaitGroup
	errCh    chan error
	sessions atomic.Int64
}

// New creates a server. Call Start to accept connections.
func New(cfg Config) *Server {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.Console.HostFs == nil {
		cfg.Console.HostFs = sessionFs(cfg.Console.DriveDir)
	}
	return &Server{
		cfg:   cfg,
		log:   logger.NewStyledLogger("SSH"),
		errCh: make(chan error, 1),
	}
}

// sessionFs is the only filesystem remote users may read modules from.
// Without a drive directory nothing on the host is reachable.
func sessionFs(driveDir string) afero.Fs {
	if driveDir == "" {
		return afero.NewReadOnlyFs(afero.NewMemMapFs())
	}
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), driveDir))
}

// Start binds the listener and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("server already started")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	srv, err := wish.NewServer(
		wish.WithAddress(listener.Addr().String()),
		wish.WithHostKeyPath(s.cfg.HostKeyPath),
		wish.WithMiddleware(
			s.consoleMiddleware(),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(s.log),
		),
	)
	if err != nil {
		_ = listener.Close()
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.srv = srv
	s.listener = listener
	s.started = true

	s.wg.Add(1)
	go s.serve(srv, listener)

	s.log.Info("SSH server started", "address", listener.Addr().String())
	return nil
}

func (s *Server) serve(srv *ssh.Server, listener net.Listener) {
	defer s.wg.Done()
	if err := srv.Serve(listener); err != nil {
		if errors.Is(err, ssh.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			return
		}
		s.errCh <- fmt.Errorf("serve error: %w", err)
	}
}

// Address returns the bound address, or "" before Start.
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Sessions returns the number of open sessions.
func (s *Server) Sessions() int {
	return int(s.sessions.Load())
}

// Err delivers a fatal serve error.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// Stop shuts the server down, waiting for sessions until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	err := srv.Shutdown(ctx)
	s.wg.Wait()
	if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	s.log.Info("SSH server stopped")
	return nil
}

func (s *Server) consoleMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			s.sessions.Add(1)
			defer s.sessions.Add(-1)
			s.runConsole(sess)
			next(sess)
		}
	}
}

// runConsole drives one console until the user exits or disconnects.
func (s *Server) runConsole(sess ssh.Session) {
	t := term.NewTerminal(sess, s.cfg.Prompt)
	pty, winCh, isPty := sess.Pty()
	if isPty {
		_ = t.SetSize(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				_ = t.SetSize(win.Width, win.Height)
			}
		}()
	}

	opts := s.cfg.Console
	renderer := terminal.New(t, terminal.Options{Lines: opts.Lines, ForceColor: true})
	opts.Render = renderer.Render
	c := console.New(opts)
	c.Start()

	for {
		line, err := t.ReadLine()
		if err != nil {
			break
		}
		switch strings.TrimSpace(line) {
		case "exit", "logout":
			return
		}
		c.Submit(line)
	}
}
