package match

import (
	"github.com/lamyinia/mahjongmatch/internal/hand"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// TurnKind names the shape of the current turn_state.
type TurnKind uint8

const (
	AwaitingDraw TurnKind = iota
	AwaitingDiscard
	AwaitingCalls
	MatchEnded
)

func (k TurnKind) String() string {
	switch k {
	case AwaitingDraw:
		return "AwaitingDraw"
	case AwaitingDiscard:
		return "AwaitingDiscard"
	case AwaitingCalls:
		return "AwaitingCalls"
	case MatchEnded:
		return "MatchEnded"
	default:
		return "Unknown"
	}
}

// Turn is the match's turn_state. Only the fields relevant to Kind are
// meaningful at any given time:
//
//   - AwaitingDraw, AwaitingDiscard: Seat.
//   - AwaitingCalls: DiscardingPlayer, Discard, Calls (recorded non-pass
//     calls so far), Waiting (seats still deciding, each mapped to the
//     call options available to them).
//   - MatchEnded: Winner (nil for an exhaustive draw).
type Turn struct {
	Kind TurnKind

	Seat tile.Wind

	DiscardingPlayer tile.Wind
	Discard          tile.Id
	Calls            map[tile.Wind]hand.Call
	Waiting          map[tile.Wind][]hand.Call

	Winner *tile.Wind
}
