// Package localstate implements the per-client shadow projection of a
// match: LocalState mirrors MatchState while redacting the concealed
// portion of other seats' hands, and replays server events to stay
// consistent with the authoritative view.
package localstate

import (
	"encoding/json"

	"github.com/lamyinia/mahjongmatch/internal/hand"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// RemoteHand is the redacted view of a seat other than the local client's
// own: the concealed tiles are reduced to their count and whether a draw
// is pending, while the open melds, closed kongs, and discards are always
// fully visible at the table.
type RemoteHand struct {
	Tiles          int
	HasCurrentDraw bool
	OpenChows      [][3]tile.Instance
	OpenPongs      [][3]tile.Instance
	OpenKongs      [][4]tile.Instance
	ClosedKongs    [][4]tile.Instance
	Discards       []tile.Instance
}

// LocalHand is a tagged view of one seat's hand: Local holds the full hand
// for the client's own seat, Remote holds the redacted view for every
// other seat. Exactly one of the two is set.
type LocalHand struct {
	IsLocal bool
	Local   *hand.Hand
	Remote  *RemoteHand
}

// ProjectHand builds the LocalHand view of h as seen by a client: a copy of
// the full hand if isLocalPlayer, otherwise the redacted RemoteHand.
func ProjectHand(h *hand.Hand, isLocalPlayer bool) *LocalHand {
	if isLocalPlayer {
		// The client replays events into its own copy, so it must not share
		// the server's hand.
		data, err := json.Marshal(h)
		if err != nil {
			panic(err)
		}
		own := new(hand.Hand)
		if err := json.Unmarshal(data, own); err != nil {
			panic(err)
		}
		return &LocalHand{IsLocal: true, Local: own}
	}
	return &LocalHand{
		IsLocal: false,
		Remote: &RemoteHand{
			Tiles:          len(h.Tiles()),
			HasCurrentDraw: h.CurrentDraw() != nil,
			OpenChows:      h.OpenChows(),
			OpenPongs:      h.OpenPongs(),
			OpenKongs:      h.OpenKongs(),
			ClosedKongs:    h.ClosedKongs(),
			Discards:       h.Discards(),
		},
	}
}

// discardOneConcealed accounts for a RemoteHand losing one concealed tile
// to a discard, following the draw it already reflected.
func (rh *RemoteHand) discardOneConcealed() {
	if rh.HasCurrentDraw {
		rh.HasCurrentDraw = false
		return
	}
	if rh.Tiles > 0 {
		rh.Tiles--
	}
}

// TurnKind mirrors match.TurnKind for the client-side projection.
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

// Turn is LocalTurnState: it mirrors Turn from the match package, but in
// AwaitingCalls it exposes only Calls, the options available to this
// client's own seat -- never the waiting map for other seats.
type Turn struct {
	Kind TurnKind

	Seat tile.Wind

	DiscardingPlayer tile.Wind
	Discard          tile.Id
	Calls            []hand.Call

	Winner *tile.Wind
}
