// Package session drives one game: it sequences flips, the settle delay
// before a pair is judged, and the elapsed-time counter around the pure
// state machine in package game, and hands finished results to a sink.
//
// A Session is not safe for concurrent use. Each one is owned by a single
// goroutine: the Bubble Tea update loop or a Runner.
package session

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/ledger"
)

// Default timings.
const (
	DefaultSettleDelay = 700 * time.Millisecond
	DefaultTick        = time.Second
)

// Listener receives game events. Calls are fire-and-forget.
type Listener interface {
	OnEvent(e game.Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e game.Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(e game.Event) { f(e) }

// ResultSink stores finished games. *ledger.Ledger implements it.
type ResultSink interface {
	Submit(ctx context.Context, r ledger.GameResult) (bool, error)
}

// PendingPair identifies a pair waiting to be judged. It must be handed back
// to Resolve; tokens from an older game or an older pair are ignored.
type PendingPair struct {
	Game uuid.UUID
	Seq  int
}

// FlipOutcome reports what a flip did.
type FlipOutcome struct {
	Flipped bool         // The tile turned face up
	Pair    *PendingPair // Set when the flip completed a pair
}

// Options configures a new session.
type Options struct {
	RNG       *rand.Rand
	Sink      ResultSink
	Listeners []Listener
	Logger    *log.Logger
}

// Session is a single game instance.
type Session struct {
	id     uuid.UUID
	player string
	size   game.BoardSize
	state  game.State

	elapsed int
	seq     int
	pending bool
	ended   bool

	result   ledger.GameResult
	saved    bool // Result handed to the sink
	recorded bool // Sink accepted the result

	sink      ResultSink
	listeners []Listener
	log       *log.Logger
}

// New starts a game for player on a board of the given size.
func New(player string, size game.BoardSize, opts Options) *Session {
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		id:        uuid.New(),
		player:    strings.TrimSpace(player),
		size:      size,
		state:     game.NewGame(size, rng),
		sink:      opts.Sink,
		listeners: opts.Listeners,
	}
	s.log = logger.With("game", s.id.String()[:8])
	s.log.Debug("game started", "player", s.player, "board", size)
	return s
}

// ID returns the game instance id.
func (s *Session) ID() uuid.UUID { return s.id }

// Player returns the trimmed player name.
func (s *Session) Player() string { return s.player }

// Size returns the board size.
func (s *Session) Size() game.BoardSize { return s.size }

// State returns the current snapshot.
func (s *Session) State() game.State { return s.state }

// Elapsed returns the seconds counted so far.
func (s *Session) Elapsed() int { return s.elapsed }

// Done reports whether the game has ended by completion or quit.
func (s *Session) Done() bool { return s.ended }

// Completed reports whether every pair was found.
func (s *Session) Completed() bool { return game.Complete(s.state) }

// Recorded reports whether the sink accepted the finished result.
func (s *Session) Recorded() bool { return s.recorded }

// Result returns the current result. Completed is false until the last pair matches.
func (s *Session) Result() ledger.GameResult {
	if s.ended {
		return s.result
	}
	return s.snapshotResult()
}

// Subscribe adds a listener.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Flip turns tile id face up. Flips on an ended game, a locked board, or an
// ineligible tile do nothing. When the flip completes a pair the board is
// locked and the returned outcome carries the token to pass to Resolve once
// the settle delay has passed.
func (s *Session) Flip(id int) FlipOutcome {
	if s.ended {
		return FlipOutcome{}
	}
	if !game.CanFlip(s.state, id) {
		return FlipOutcome{}
	}

	s.state = game.Apply(s.state, game.Flip(id))
	s.emit(game.EventFlip)

	if !s.state.PairReady() {
		return FlipOutcome{Flipped: true}
	}

	s.state = game.Apply(s.state, game.Lock(true))
	s.seq++
	s.pending = true
	return FlipOutcome{
		Flipped: true,
		Pair:    &PendingPair{Game: s.id, Seq: s.seq},
	}
}

// Resolve judges the pending pair named by p. It returns false for stale
// tokens. On a match that finds the last pair the game ends and the result
// is submitted to the sink exactly once.
func (s *Session) Resolve(ctx context.Context, p PendingPair) bool {
	if s.ended || !s.pending || p.Game != s.id || p.Seq != s.seq {
		return false
	}
	s.pending = false

	action, err := game.ResolvePair(s.state)
	if err != nil {
		s.log.Error("cannot resolve pair", "err", err)
		s.state = game.Apply(s.state, game.Lock(false))
		return false
	}

	s.state = game.Apply(s.state, action)
	s.state = game.Apply(s.state, game.Lock(false))
	if ev, ok := game.EventFor(action); ok {
		s.emit(ev)
	}

	if game.Complete(s.state) {
		s.finish(ctx)
	}
	return true
}

// Tick advances the elapsed counter by one second. It returns false, meaning
// stop ticking, once the game has ended or when game names another instance.
func (s *Session) Tick(id uuid.UUID) bool {
	if id != s.id || s.ended {
		return false
	}
	s.elapsed++
	return true
}

// Quit ends an unfinished game. Pending pairs and ticks become stale and
// nothing is submitted. Quitting a finished game returns its result.
func (s *Session) Quit() ledger.GameResult {
	if s.ended {
		return s.result
	}
	s.ended = true
	s.pending = false
	s.result = s.snapshotResult()
	s.log.Debug("game quit", "moves", s.state.Moves, "elapsed", s.elapsed)
	return s.result
}

func (s *Session) finish(ctx context.Context) {
	s.ended = true
	s.result = s.snapshotResult()
	s.emit(game.EventWin)
	s.log.Info("game complete", "player", s.player, "board", s.size, "moves", s.result.Moves, "elapsed", s.result.TimeElapsed)

	if s.saved || s.sink == nil {
		return
	}
	s.saved = true
	ok, err := s.sink.Submit(ctx, s.result)
	if err != nil {
		s.log.Error("cannot record result", "err", err)
		return
	}
	s.recorded = ok
}

func (s *Session) snapshotResult() ledger.GameResult {
	return ledger.GameResult{
		PlayerName:  s.player,
		Moves:       s.state.Moves,
		TimeElapsed: s.elapsed,
		BoardSize:   s.size,
		Completed:   game.Complete(s.state),
	}
}

func (s *Session) emit(e game.Event) {
	for _, l := range s.listeners {
		l.OnEvent(e)
	}
}
