package sound

import (
	"io"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-memory/internal/game"
)

// Player makes a sound for a channel at a volume in (0, 1].
type Player interface {
	Play(c Channel, volume float64)
}

// BellPlayer rings the terminal bell. Louder cues ring more times.
type BellPlayer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBellPlayer writes bells to w.
func NewBellPlayer(w io.Writer) *BellPlayer {
	return &BellPlayer{w: w}
}

// Play implements Player.
func (b *BellPlayer) Play(c Channel, volume float64) {
	if b.w == nil || c == ChannelBackground {
		return
	}
	rings := 1
	if c == ChannelWin && volume >= 0.5 {
		rings = 2
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, strings.Repeat("\a", rings))
}

// Service forwards game events to a Player according to the settings.
type Service struct {
	settings *Handle
	player   Player
}

// NewService creates a service. A nil player discards every cue.
func NewService(settings *Handle, player Player) *Service {
	return &Service{settings: settings, player: player}
}

// Settings returns the handle the service reads.
func (s *Service) Settings() *Handle { return s.settings }

// OnEvent plays the cue for e unless muted or the channel volume is zero.
func (s *Service) OnEvent(e game.Event) {
	if s.player == nil {
		return
	}
	c, ok := ChannelFor(e)
	if !ok {
		return
	}
	cur := s.settings.Get()
	if !cur.Audible(c) {
		return
	}
	s.player.Play(c, cur.Volume(c))
}
