package server

import (
	"time"

	"partyhost/internal/net"
)

type cursorEntry struct {
	x, y    float64
	updated time.Time
}

// CursorTracker holds the latest pointer position per seat for the shared
// overlay. Entries expire by age; a new update replaces the old one
// outright. Owned by the simulation goroutine.
type CursorTracker struct {
	entries map[int]cursorEntry
	ttl     time.Duration
}

func NewCursorTracker(ttl time.Duration) *CursorTracker {
	return &CursorTracker{
		entries: make(map[int]cursorEntry),
		ttl:     ttl,
	}
}

// Update stores the position for a seat, clamping both coordinates into
// [0,1].
func (c *CursorTracker) Update(seat int, x, y float64, now time.Time) {
	c.entries[seat] = cursorEntry{x: clamp01(x), y: clamp01(y), updated: now}
}

// Snapshot returns the cursors still inside the freshness window, ordered
// by seat. Stale entries are deleted for good.
func (c *CursorTracker) Snapshot(now time.Time) []net.Cursor {
	cursors := make([]net.Cursor, 0, len(c.entries))
	for seat := 0; seat < MaxPlayers; seat++ {
		entry, ok := c.entries[seat]
		if !ok {
			continue
		}
		if now.Sub(entry.updated) > c.ttl {
			delete(c.entries, seat)
			continue
		}
		cursors = append(cursors, net.Cursor{Seat: seat, X: entry.x, Y: entry.y})
	}
	return cursors
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
