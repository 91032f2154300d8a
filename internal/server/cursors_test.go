package server

import (
	"testing"
	"time"
)

func TestCursorClamping(t *testing.T) {
	now := time.Now()
	c := NewCursorTracker(3 * time.Second)
	c.Update(0, 1.4, -0.2, now)

	cursors := c.Snapshot(now)
	if len(cursors) != 1 {
		t.Fatalf("got %d cursors, want 1", len(cursors))
	}
	if cursors[0].X != 1.0 || cursors[0].Y != 0.0 {
		t.Errorf("cursor = (%v,%v), want (1.0,0.0)", cursors[0].X, cursors[0].Y)
	}
}

func TestCursorExpiry(t *testing.T) {
	now := time.Now()
	ttl := 3 * time.Second
	c := NewCursorTracker(ttl)
	c.Update(0, 0.5, 0.5, now)
	c.Update(1, 0.5, 0.5, now.Add(ttl)) // updated just inside the window

	cursors := c.Snapshot(now.Add(ttl + time.Millisecond))
	if len(cursors) != 1 || cursors[0].Seat != 1 {
		t.Fatalf("cursors = %v, want only seat 1", cursors)
	}

	// Expired entries are gone for good, even at an earlier now.
	if got := c.Snapshot(now); len(got) != 1 {
		t.Errorf("expired cursor came back: %v", got)
	}
}

func TestCursorOverwrite(t *testing.T) {
	now := time.Now()
	c := NewCursorTracker(3 * time.Second)
	c.Update(2, 0.1, 0.1, now)
	c.Update(2, 0.9, 0.8, now.Add(time.Second))

	cursors := c.Snapshot(now.Add(time.Second))
	if len(cursors) != 1 {
		t.Fatalf("got %d cursors, want 1", len(cursors))
	}
	if cursors[0].X != 0.9 || cursors[0].Y != 0.8 {
		t.Errorf("cursor = (%v,%v), want latest (0.9,0.8)", cursors[0].X, cursors[0].Y)
	}
}

func TestCursorSnapshotOrderedBySeat(t *testing.T) {
	now := time.Now()
	c := NewCursorTracker(3 * time.Second)
	c.Update(5, 0.5, 0.5, now)
	c.Update(1, 0.5, 0.5, now)
	c.Update(3, 0.5, 0.5, now)

	cursors := c.Snapshot(now)
	for i := 1; i < len(cursors); i++ {
		if cursors[i-1].Seat >= cursors[i].Seat {
			t.Fatalf("cursors out of order: %v", cursors)
		}
	}
}
