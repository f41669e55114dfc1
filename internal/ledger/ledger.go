// Package ledger keeps the per-board leaderboards of finished games.
//
// Each board shape has its own list, stored as a JSON array under
// "scores:{rows}x{cols}". Lists are ordered by elapsed time, then moves,
// and hold at most Capacity entries.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

const (
	DefaultCapacity = 10
	DefaultDisplay  = 5

	keyPrefix = "scores:"
)

var (
	// ErrIncomplete is returned when submitting a game that was not finished.
	// Abandoned games are never ranked: a quit after a few seconds would
	// otherwise beat every real result on time.
	ErrIncomplete = errors.New("ledger: only completed games can be submitted")
	// ErrInvalidResult is returned for results with no player name or a bad board size.
	ErrInvalidResult = errors.New("ledger: invalid result")
)

// GameResult is the outcome of one game. Completed is never persisted.
type GameResult struct {
	PlayerName  string         `json:"playerName"`
	Moves       int            `json:"moves"`
	TimeElapsed int            `json:"timeElapsed"`
	BoardSize   game.BoardSize `json:"boardSize"`
	Completed   bool           `json:"-"`
}

// sameAs reports whether r and o describe the same finished game for dedup purposes.
func (r GameResult) sameAs(o GameResult) bool {
	return r.PlayerName == o.PlayerName && r.Moves == o.Moves && r.TimeElapsed == o.TimeElapsed
}

// ScoreEntry is a stored result with its 1-based position on the board.
type ScoreEntry struct {
	GameResult
	Rank int `json:"rank"`
}

// Key returns the leaderboard key for a board size, e.g. "4x5".
func Key(size game.BoardSize) string {
	return size.Key()
}

// Options configures a Ledger. Zero values select the defaults.
type Options struct {
	Capacity int
	Display  int
	Logger   *log.Logger
}

// Ledger reads and writes leaderboards through a storage.KV.
// Submissions are serialized so concurrent sessions sharing one ledger
// cannot lose each other's entries.
type Ledger struct {
	kv       storage.KV
	capacity int
	display  int
	log      *log.Logger

	mu sync.Mutex
}

// New creates a ledger on top of kv.
func New(kv storage.KV, opts Options) *Ledger {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Display <= 0 || opts.Display > opts.Capacity {
		opts.Display = min(DefaultDisplay, opts.Capacity)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Ledger{
		kv:       kv,
		capacity: opts.Capacity,
		display:  opts.Display,
		log:      opts.Logger,
	}
}

// Capacity returns the maximum number of entries kept per board.
func (l *Ledger) Capacity() int { return l.capacity }

// Display returns how many entries a leaderboard view shows.
func (l *Ledger) Display() int { return l.display }

// Submit records a completed result. It returns true when the result is on
// the board afterwards and was not already there. Submitting the same result
// twice leaves the stored list unchanged.
func (l *Ledger) Submit(ctx context.Context, r GameResult) (bool, error) {
	if !r.Completed {
		return false, ErrIncomplete
	}
	r.PlayerName = strings.TrimSpace(r.PlayerName)
	if r.PlayerName == "" {
		return false, fmt.Errorf("%w: empty player name", ErrInvalidResult)
	}
	if !r.BoardSize.Valid() {
		return false, fmt.Errorf("%w: board size %s", ErrInvalidResult, r.BoardSize)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := Key(r.BoardSize)
	list, err := l.load(ctx, key)
	if err != nil {
		return false, err
	}

	if slices.ContainsFunc(list, r.sameAs) {
		l.log.Debug("duplicate result ignored", "board", key, "player", r.PlayerName)
		return false, nil
	}

	list = append(list, r)
	sortResults(list)
	if len(list) > l.capacity {
		list = list[:l.capacity]
	}
	if !slices.ContainsFunc(list, r.sameAs) {
		l.log.Debug("result did not make the board", "board", key, "player", r.PlayerName)
		return false, nil
	}

	if err := l.save(ctx, key, list); err != nil {
		return false, err
	}
	l.log.Info("score recorded", "board", key, "player", r.PlayerName, "moves", r.Moves, "time", r.TimeElapsed)
	return true, nil
}

// TopN returns the best n entries for key ("4x4"). n <= 0 returns the whole
// list. Unreadable data yields an empty list.
func (l *Ledger) TopN(ctx context.Context, key string, n int) []ScoreEntry {
	list, err := l.load(ctx, key)
	if err != nil {
		l.log.Warn("cannot read leaderboard", "board", key, "err", err)
		return []ScoreEntry{}
	}
	sortResults(list)

	if n <= 0 || n > l.capacity {
		n = l.capacity
	}
	if len(list) > n {
		list = list[:n]
	}

	entries := make([]ScoreEntry, len(list))
	for i, r := range list {
		entries[i] = ScoreEntry{GameResult: r, Rank: i + 1}
	}
	return entries
}

// Best returns the top entry for key, if any.
func (l *Ledger) Best(ctx context.Context, key string) (ScoreEntry, bool) {
	top := l.TopN(ctx, key, 1)
	if len(top) == 0 {
		return ScoreEntry{}, false
	}
	return top[0], true
}

// Rank returns the 1-based position of r on its board, or 0 when absent.
func (l *Ledger) Rank(ctx context.Context, r GameResult) int {
	for _, e := range l.TopN(ctx, Key(r.BoardSize), l.capacity) {
		if e.sameAs(r) {
			return e.Rank
		}
	}
	return 0
}

// Clear removes every entry for key.
func (l *Ledger) Clear(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.kv.Delete(ctx, keyPrefix+key); err != nil {
		return fmt.Errorf("ledger: cannot clear %s: %w", key, err)
	}
	l.log.Info("leaderboard cleared", "board", key)
	return nil
}

// Boards lists the keys that have a stored leaderboard. Stores that cannot
// enumerate keys report none.
func (l *Ledger) Boards(ctx context.Context) []string {
	lister, ok := l.kv.(storage.Lister)
	if !ok {
		return nil
	}
	keys, err := lister.Keys(ctx, keyPrefix)
	if err != nil {
		l.log.Warn("cannot list leaderboards", "err", err)
		return nil
	}
	boards := make([]string, len(keys))
	for i, k := range keys {
		boards[i] = strings.TrimPrefix(k, keyPrefix)
	}
	return boards
}

// load reads the list for key. A missing key or malformed JSON is an empty
// list; only transport errors are returned.
func (l *Ledger) load(ctx context.Context, key string) ([]GameResult, error) {
	raw, err := l.kv.Get(ctx, keyPrefix+key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: cannot load %s: %w", key, err)
	}

	var list []GameResult
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		l.log.Warn("discarding malformed leaderboard", "board", key, "err", err)
		return nil, nil
	}
	return list, nil
}

func (l *Ledger) save(ctx context.Context, key string, list []GameResult) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("ledger: cannot encode %s: %w", key, err)
	}
	if err := l.kv.Set(ctx, keyPrefix+key, string(raw)); err != nil {
		return fmt.Errorf("ledger: cannot save %s: %w", key, err)
	}
	return nil
}

// sortResults orders by elapsed time, then moves. Ties keep insertion order.
func sortResults(list []GameResult) {
	slices.SortStableFunc(list, func(a, b GameResult) int {
		if a.TimeElapsed != b.TimeElapsed {
			return a.TimeElapsed - b.TimeElapsed
		}
		return a.Moves - b.Moves
	})
}
