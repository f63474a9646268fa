package controller

import (
	"fmt"
	"sync"

	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// Hub tracks the matches live on this node, the way the teacher's
// RoomManager tracks live rooms: a guarded id-to-instance map plus the
// player-to-id routing a reconnecting client needs.
type Hub struct {
	mu       sync.RWMutex
	matches  map[uint32]*MatchController
	seatedBy map[string]uint32 // userID -> matchID, for reconnect routing
	nextID   uint32
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		matches:  make(map[uint32]*MatchController),
		seatedBy: make(map[string]uint32),
	}
}

// CreateMatch allocates a fresh match id and starts its controller. onEnded,
// if non-nil, is called with the match's outcome when play concludes,
// before the hub drops its own reference to the controller.
func (h *Hub) CreateMatch(onEnded func(winner *tile.Wind)) *MatchController {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.createLocked(onEnded)
}

// createLocked allocates a fresh match id and controller; callers must
// already hold h.mu.
func (h *Hub) createLocked(onEnded func(winner *tile.Wind)) *MatchController {
	h.nextID++
	id := h.nextID
	c := NewMatchController(id)
	c.OnEnded(func(winner *tile.Wind) {
		if onEnded != nil {
			onEnded(winner)
		}
		h.RemoveMatch(id)
	})
	h.matches[id] = c
	return c
}

// JoinOpen seats sink into the first match on this node with a free seat,
// or starts a fresh one if every live match is already full, and returns
// the controller and seat sink was placed at. Held under the hub's lock
// for its whole duration so two concurrent joiners can never race onto the
// same open seat.
func (h *Hub) JoinOpen(sink ClientSink, onEnded func(winner *tile.Wind)) (*MatchController, tile.Wind, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.matches {
		if seat, ok := c.OpenSeat(); ok {
			if _, err := c.Join(seat, sink); err != nil {
				return nil, 0, err
			}
			return c, seat, nil
		}
	}

	c := h.createLocked(onEnded)

	seat, _ := c.OpenSeat()
	if _, err := c.Join(seat, sink); err != nil {
		return nil, 0, err
	}
	return c, seat, nil
}

// GetMatch looks up a live match by id.
func (h *Hub) GetMatch(id uint32) (*MatchController, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.matches[id]
	return c, ok
}

// RouteUser records which match userID is seated in, so a reconnecting
// client can be handed back to the right controller.
func (h *Hub) RouteUser(userID string, matchID uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seatedBy[userID] = matchID
}

// UserMatch returns the match a user is currently routed to, if any.
func (h *Hub) UserMatch(userID string) (uint32, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	id, ok := h.seatedBy[userID]
	return id, ok
}

// RemoveMatch stops and forgets a finished match, clearing any user routes
// that pointed to it.
func (h *Hub) RemoveMatch(id uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, exists := h.matches[id]
	if !exists {
		return fmt.Errorf("controller: match %d does not exist", id)
	}
	c.Stop()
	delete(h.matches, id)
	for userID, matchID := range h.seatedBy {
		if matchID == id {
			delete(h.seatedBy, userID)
		}
	}
	return nil
}

// Stats reports the live match count and the number of routed players,
// the figures monitor.Monitor folds into its load score.
func (h *Hub) Stats() (matchCount, playerCount int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.matches), len(h.seatedBy)
}
