package game

import "fmt"

// Event is a named transition notification for collaborators such as the
// sound service. Events are fire-and-forget.
type Event int

const (
	EventFlip  Event = iota + 1 // A tile was turned face up
	EventMatch                  // A pair matched
	EventMiss                   // A pair did not match and was turned back
	EventWin                    // The last pair was found
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventFlip:
		return "flip"
	case EventMatch:
		return "match"
	case EventMiss:
		return "miss"
	case EventWin:
		return "win"
	default:
		return "unknown"
	}
}

// EventFor maps a resolution action to the event it produces.
func EventFor(a Action) (Event, bool) {
	switch a.Kind {
	case ActionMatch:
		return EventMatch, true
	case ActionReset:
		return EventMiss, true
	case ActionFlip:
		return EventFlip, true
	default:
		return 0, false
	}
}

// FormatElapsed formats seconds as "3m 07s".
func FormatElapsed(seconds int) string {
	return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
}

// FormatClock formats seconds as "3:07".
func FormatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
