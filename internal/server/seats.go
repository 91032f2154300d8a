package server

import (
	"fmt"

	"partyhost/internal/net"
)

// MaxPlayers is the number of seats on the shared screen.
const MaxPlayers = 8

type seat struct {
	clientID string
	name     string
	ready    bool
}

// SeatRegistry tracks which client occupies which seat. It is owned by the
// simulation goroutine and needs no locking.
type SeatRegistry struct {
	seats [MaxPlayers]seat
}

func NewSeatRegistry() *SeatRegistry {
	return &SeatRegistry{}
}

// Bind assigns a seat to clientID and returns the index, or -1 when every
// seat is taken. A client that is already seated keeps its seat. If the
// requested seat is occupied by a different live client the request is
// ignored and the lowest free seat is assigned instead; a live player is
// never evicted.
func (s *SeatRegistry) Bind(clientID string, requested int) int {
	if idx := s.SeatOf(clientID); idx >= 0 {
		return idx
	}
	if requested >= 0 && requested < MaxPlayers && s.seats[requested].clientID == "" {
		s.seats[requested].clientID = clientID
		return requested
	}
	for i := range s.seats {
		if s.seats[i].clientID == "" {
			s.seats[i].clientID = clientID
			return i
		}
	}
	return -1
}

// Unbind frees the seat held by clientID and returns its index, or -1 if
// the client was not seated. The seat's name and ready flag are cleared so
// the next occupant starts fresh.
func (s *SeatRegistry) Unbind(clientID string) int {
	for i := range s.seats {
		if s.seats[i].clientID == clientID {
			s.seats[i] = seat{}
			return i
		}
	}
	return -1
}

func (s *SeatRegistry) SeatOf(clientID string) int {
	for i := range s.seats {
		if s.seats[i].clientID != "" && s.seats[i].clientID == clientID {
			return i
		}
	}
	return -1
}

func (s *SeatRegistry) SetName(idx int, name string) {
	if idx < 0 || idx >= MaxPlayers || s.seats[idx].clientID == "" {
		return
	}
	s.seats[idx].name = name
}

func (s *SeatRegistry) SetReady(idx int, ready bool) {
	if idx < 0 || idx >= MaxPlayers || s.seats[idx].clientID == "" {
		return
	}
	s.seats[idx].ready = ready
}

func (s *SeatRegistry) Occupied(idx int) bool {
	return idx >= 0 && idx < MaxPlayers && s.seats[idx].clientID != ""
}

func (s *SeatRegistry) Ready(idx int) bool {
	return idx >= 0 && idx < MaxPlayers && s.seats[idx].ready
}

// DisplayName returns the name supplied at hello time, falling back to a
// seat-based placeholder.
func (s *SeatRegistry) DisplayName(idx int) string {
	if idx >= 0 && idx < MaxPlayers && s.seats[idx].name != "" {
		return s.seats[idx].name
	}
	return fmt.Sprintf("Player %d", idx+1)
}

// Lobby lists the occupied seats in index order.
func (s *SeatRegistry) Lobby() []net.LobbySeat {
	entries := make([]net.LobbySeat, 0, MaxPlayers)
	for i := range s.seats {
		if s.seats[i].clientID == "" {
			continue
		}
		entries = append(entries, net.LobbySeat{
			Seat:      i,
			Name:      s.DisplayName(i),
			Ready:     s.seats[i].ready,
			Connected: true,
		})
	}
	return entries
}

// ReadySeats lists seats that are both occupied and ready, in index order.
func (s *SeatRegistry) ReadySeats() []int {
	var seats []int
	for i := range s.seats {
		if s.seats[i].clientID != "" && s.seats[i].ready {
			seats = append(seats, i)
		}
	}
	return seats
}

// OccupiedCount reports how many seats are bound to a client.
func (s *SeatRegistry) OccupiedCount() int {
	n := 0
	for i := range s.seats {
		if s.seats[i].clientID != "" {
			n++
		}
	}
	return n
}
