package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
)

// SSHServerConfig describes where guests connect.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":2222"
	HostKeyPath string        // Empty means ~/.memory/host_key; created on first start
	IdleTimeout time.Duration // Disconnect guests idle this long
}

// DefaultSSHServerConfig listens on :2222 with a 30 minute idle timeout.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2222",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer lets remote players use the game over SSH. Every guest gets a
// fresh AppModel with their SSH user as the player name; all guests write
// to the same ledger.
type SSHServer struct {
	cfg    SSHServerConfig
	deps   Deps
	log    *log.Logger
	server *ssh.Server

	active atomic.Int64
	served atomic.Int64
}

// NewSSHServer prepares the server. The host key is generated by wish if it
// does not exist yet.
func NewSSHServer(cfg SSHServerConfig, deps Deps) (*SSHServer, error) {
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "memory-ssh",
		})
	}
	// Sound settings live for one connection only
	deps.KV = nil

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	cfg.HostKeyPath = keyPath

	s := &SSHServer{cfg: cfg, deps: deps, log: deps.Logger}

	// Middleware runs last to first: track, require a PTY, then the game
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newGuest),
			activeterm.Middleware(),
			s.track,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	return s, nil
}

// resolveHostKey expands ~ and creates the key directory.
func resolveHostKey(path string) (string, error) {
	if path == "" || strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		if path == "" {
			path = filepath.Join(home, ".memory", "host_key")
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// newGuest builds the app for one connection. activeterm guarantees a PTY.
func (s *SSHServer) newGuest(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	deps := s.deps
	deps.Seed = 0 // Every guest gets their own boards
	deps.Logger = s.log.With("user", sess.User())

	app := NewAppModel(deps, Options{
		Player: sess.User(),
		Bell:   sess,
		Width:  pty.Window.Width,
		Height: pty.Window.Height,
	})
	return app, []tea.ProgramOption{tea.WithAltScreen()}
}

// track counts guests and logs how long each one stayed.
func (s *SSHServer) track(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.served.Add(1)
		n := s.active.Add(1)
		s.log.Info("guest connected", "user", sess.User(), "remote", sess.RemoteAddr().String(), "online", n)

		defer func() {
			n := s.active.Add(-1)
			s.log.Info("guest left", "user", sess.User(), "stayed", time.Since(start).Round(time.Second), "online", n)
		}()
		next(sess)
	}
}

// Serve listens until ctx is cancelled, then drains connections for up to
// ten seconds.
func (s *SSHServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting SSH server", "address", s.cfg.Address, "host_key", s.cfg.HostKeyPath)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down...", "online", s.active.Load())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Online is the number of connected guests.
func (s *SSHServer) Online() int64 { return s.active.Load() }

// Served is the number of connections accepted since start.
func (s *SSHServer) Served() int64 { return s.served.Load() }

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string { return s.cfg.Address }

// Port returns the port part of the listen address, for connect hints.
func (s *SSHServer) Port() string {
	_, port, err := net.SplitHostPort(s.cfg.Address)
	if err != nil {
		return s.cfg.Address
	}
	return port
}
