package domain

import (
	"fmt"
	"time"
)

// Window represents a named reminder window before a task's due date.
type Window string

const (
	Window24h   Window = "24h"
	Window6h    Window = "6h"
	Window1h    Window = "1h"
	WindowDayOf Window = "day_of"
)

// AllWindows lists every window in definition order. Policy results
// follow this order so candidate sets are deterministic.
var AllWindows = []Window{Window24h, Window6h, Window1h, WindowDayOf}

// PreWindowBuffer widens the start of each fixed-lookback window so a
// periodic scan does not miss a window that opened between two ticks.
const PreWindowBuffer = 30 * time.Minute

func (w Window) String() string {
	return string(w)
}

// Lookback returns the fixed duration before the due date at which the
// window opens. day_of has calendar-day semantics instead of a lookback
// and reports ok=false.
func (w Window) Lookback() (time.Duration, bool) {
	switch w {
	case Window24h:
		return 24 * time.Hour, true
	case Window6h:
		return 6 * time.Hour, true
	case Window1h:
		return time.Hour, true
	default:
		return 0, false
	}
}

// ParseWindow converts a stored window name into a Window.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Window24h, Window6h, Window1h, WindowDayOf:
		return Window(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWindow, s)
	}
}

// UnionWindows appends the added windows to existing, preserving the
// existing order and dropping duplicates. Applying the same additions
// twice yields the same result.
func UnionWindows(existing, added []Window) []Window {
	out := make([]Window, 0, len(existing)+len(added))
	seen := make(map[Window]struct{}, len(existing)+len(added))

	for _, w := range existing {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	for _, w := range added {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	return out
}
