package hand

import (
	"errors"
	"fmt"

	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// ErrAlreadyHasDraw is returned by DrawTile when the hand already holds an
// undiscarded current draw.
type ErrAlreadyHasDraw struct {
	Tile tile.Instance
}

func (e *ErrAlreadyHasDraw) Error() string {
	return fmt.Sprintf("hand already has a drawn tile, must discard before drawing %v again", e.Tile.Tile)
}

// ErrNoDraw is returned by DiscardTile when the hand has no current draw to
// resolve a discard against.
var ErrNoDraw = errors.New("hand has no current draw")

// ErrNotInHand is returned by DiscardTile when the requested id matches
// neither a concealed tile nor the current draw.
var ErrNotInHand = errors.New("tile is not in hand, or is in an open meld and cannot be discarded")

// ErrWrongNumberOfTiles is returned by New when draw_from does not have at
// least 13 tiles remaining to deal an opening hand.
type ErrWrongNumberOfTiles struct {
	Remaining int
}

func (e *ErrWrongNumberOfTiles) Error() string {
	return fmt.Sprintf("not enough tiles for initial hand, expected 13 but only %d remain", e.Remaining)
}

// CallError reports why call_tile rejected a requested call. No hand state
// is mutated when this is returned.
type CallError struct {
	Reason string
}

func (e *CallError) Error() string {
	return e.Reason
}

func callErrorf(format string, args ...any) error {
	return &CallError{Reason: fmt.Sprintf(format, args...)}
}
