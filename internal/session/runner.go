package session

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/ledger"
)

// Strategy picks tiles for a headless game.
type Strategy interface {
	// Observe is called after every flip with the new state.
	Observe(s game.State)
	// Next returns the tile to flip, or false to wait.
	Next(s game.State) (int, bool)
}

// RunnerConfig holds the Runner timings. Zero values select the defaults.
type RunnerConfig struct {
	SettleDelay time.Duration
	Tick        time.Duration
	Think       time.Duration // Pause between strategy moves
}

// Runner owns a session in a single goroutine, feeding it flips from a
// channel or a Strategy and driving the settle timer and clock with real
// timers that are stopped when the game ends.
type Runner struct {
	s        *Session
	cfg      RunnerConfig
	strategy Strategy
	flips    chan int
}

// NewRunner wraps s. strategy may be nil when flips come only from Flip.
func NewRunner(s *Session, strategy Strategy, cfg RunnerConfig) *Runner {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Think <= 0 {
		cfg.Think = 250 * time.Millisecond
	}
	return &Runner{
		s:        s,
		cfg:      cfg,
		strategy: strategy,
		flips:    make(chan int),
	}
}

// Flip queues a flip for the running game. It blocks until Run accepts it
// or ctx is done.
func (r *Runner) Flip(ctx context.Context, id int) error {
	select {
	case r.flips <- id:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run plays until the game completes or ctx is cancelled. On cancellation
// the game is quit and its unfinished result returned with ctx.Err().
func (r *Runner) Run(ctx context.Context) (ledger.GameResult, error) {
	ticker := time.NewTicker(r.cfg.Tick)
	defer ticker.Stop()

	var (
		settle  *time.Timer
		settleC <-chan time.Time
		pending PendingPair
	)
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	var thinkC <-chan time.Time
	think := func() {
		if r.strategy != nil {
			thinkC = time.After(r.cfg.Think)
		}
	}
	think()

	flip := func(id int) {
		out := r.s.Flip(id)
		if !out.Flipped {
			return
		}
		if r.strategy != nil {
			r.strategy.Observe(r.s.State())
		}
		if out.Pair != nil {
			pending = *out.Pair
			settle = time.NewTimer(r.cfg.SettleDelay)
			settleC = settle.C
		}
	}

	for {
		select {
		case <-ctx.Done():
			return r.s.Quit(), ctx.Err()

		case id := <-r.flips:
			flip(id)

		case <-thinkC:
			thinkC = nil
			if id, ok := r.strategy.Next(r.s.State()); ok {
				flip(id)
			}
			if settleC == nil {
				think()
			}

		case <-settleC:
			settleC = nil
			r.s.Resolve(ctx, pending)
			if r.s.Done() {
				return r.s.Result(), nil
			}
			think()

		case <-ticker.C:
			r.s.Tick(r.s.ID())
		}
	}
}
