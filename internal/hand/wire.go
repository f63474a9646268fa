package hand

import (
	"encoding/json"

	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// wireHand mirrors Hand's unexported fields for wire transmission; Hand
// itself keeps them private so callers can't bypass DrawTile/DiscardTile/
// CallTile to mutate a hand directly.
type wireHand struct {
	Tiles       []tile.Instance    `json:"tiles"`
	CurrentDraw *tile.Instance     `json:"current_draw,omitempty"`
	OpenChows   [][3]tile.Instance `json:"open_chows,omitempty"`
	OpenPongs   [][3]tile.Instance `json:"open_pongs,omitempty"`
	OpenKongs   [][4]tile.Instance `json:"open_kongs,omitempty"`
	ClosedKongs [][4]tile.Instance `json:"closed_kongs,omitempty"`
	Discards    []tile.Instance    `json:"discards,omitempty"`
}

// MarshalJSON lets a Hand cross the wire (e.g. in a player's own initial
// LocalState snapshot) despite keeping its fields unexported.
func (h *Hand) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireHand{
		Tiles:       h.tiles,
		CurrentDraw: h.currentDraw,
		OpenChows:   h.openChows,
		OpenPongs:   h.openPongs,
		OpenKongs:   h.openKongs,
		ClosedKongs: h.closedKongs,
		Discards:    h.discards,
	})
}

// UnmarshalJSON reconstructs a Hand from its wire form, used by a client
// decoding its own LocalState snapshot.
func (h *Hand) UnmarshalJSON(data []byte) error {
	var w wireHand
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	h.tiles = w.Tiles
	h.currentDraw = w.CurrentDraw
	h.openChows = w.OpenChows
	h.openPongs = w.OpenPongs
	h.openKongs = w.OpenKongs
	h.closedKongs = w.ClosedKongs
	h.discards = w.Discards
	return nil
}
