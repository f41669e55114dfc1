// Package sound holds the audio settings and plays event cues.
//
// Settings live in an explicit Handle shared by whoever needs them; there is
// no process-wide state. The game core never reads volumes: a Service
// subscribes to session events and decides whether to play.
package sound

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// StorageKey is where settings are persisted.
const StorageKey = "settings:sound"

// Channel names a volume slider.
type Channel int

const (
	ChannelBackground Channel = iota
	ChannelFlip
	ChannelMatch
	ChannelMiss
	ChannelWin
)

// Channels lists every channel in display order.
var Channels = []Channel{ChannelBackground, ChannelFlip, ChannelMatch, ChannelMiss, ChannelWin}

func (c Channel) String() string {
	switch c {
	case ChannelBackground:
		return "Background"
	case ChannelFlip:
		return "Flip"
	case ChannelMatch:
		return "Match"
	case ChannelMiss:
		return "Miss"
	case ChannelWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// ChannelFor maps a game event to its channel.
func ChannelFor(e game.Event) (Channel, bool) {
	switch e {
	case game.EventFlip:
		return ChannelFlip, true
	case game.EventMatch:
		return ChannelMatch, true
	case game.EventMiss:
		return ChannelMiss, true
	case game.EventWin:
		return ChannelWin, true
	default:
		return 0, false
	}
}

// Settings are per-channel volumes in [0, 1] and a global mute.
type Settings struct {
	Background float64 `json:"backgroundVolume" yaml:"background"`
	Flip       float64 `json:"flipVolume" yaml:"flip"`
	Match      float64 `json:"matchVolume" yaml:"match"`
	Miss       float64 `json:"missVolume" yaml:"miss"`
	Win        float64 `json:"winVolume" yaml:"win"`
	Mute       bool    `json:"isMuted" yaml:"mute"`
}

// DefaultSettings returns the stock volumes.
func DefaultSettings() Settings {
	return Settings{
		Background: 0.3,
		Flip:       0.7,
		Match:      0.8,
		Miss:       0.8,
		Win:        0.9,
	}
}

// Volume returns the volume of c.
func (s Settings) Volume(c Channel) float64 {
	switch c {
	case ChannelBackground:
		return s.Background
	case ChannelFlip:
		return s.Flip
	case ChannelMatch:
		return s.Match
	case ChannelMiss:
		return s.Miss
	case ChannelWin:
		return s.Win
	default:
		return 0
	}
}

// WithVolume returns s with channel c set to v, clamped to [0, 1].
func (s Settings) WithVolume(c Channel, v float64) Settings {
	v = min(max(v, 0), 1)
	switch c {
	case ChannelBackground:
		s.Background = v
	case ChannelFlip:
		s.Flip = v
	case ChannelMatch:
		s.Match = v
	case ChannelMiss:
		s.Miss = v
	case ChannelWin:
		s.Win = v
	}
	return s
}

// Audible reports whether c should make a sound.
func (s Settings) Audible(c Channel) bool {
	return !s.Mute && s.Volume(c) > 0
}

// clamp pulls every volume into range.
func (s Settings) clamp() Settings {
	for _, c := range Channels {
		s = s.WithVolume(c, s.Volume(c))
	}
	return s
}

// Handle guards a Settings value shared between the UI and the Service.
type Handle struct {
	mu sync.RWMutex
	s  Settings
}

// NewHandle returns a handle holding s.
func NewHandle(s Settings) *Handle {
	return &Handle{s: s.clamp()}
}

// Get returns a copy of the current settings.
func (h *Handle) Get() Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.s
}

// Set replaces the settings.
func (h *Handle) Set(s Settings) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.s = s.clamp()
}

// Update applies fn to the settings atomically and returns the result.
func (h *Handle) Update(fn func(Settings) Settings) Settings {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.s = fn(h.s).clamp()
	return h.s
}

// Load reads settings from kv. Missing or malformed data yields the defaults
// with a nil error; only transport failures are reported.
func Load(ctx context.Context, kv storage.KV) (Settings, error) {
	raw, err := kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("sound: cannot load settings: %w", err)
	}

	s := DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return DefaultSettings(), nil
	}
	return s.clamp(), nil
}

// Save writes settings to kv.
func Save(ctx context.Context, kv storage.KV, s Settings) error {
	raw, err := json.Marshal(s.clamp())
	if err != nil {
		return fmt.Errorf("sound: cannot encode settings: %w", err)
	}
	if err := kv.Set(ctx, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("sound: cannot save settings: %w", err)
	}
	return nil
}
