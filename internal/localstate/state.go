package localstate

import (
	"fmt"

	"github.com/lamyinia/mahjongmatch/internal/hand"
	"github.com/lamyinia/mahjongmatch/internal/protocol"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// State is the per-client shadow of MatchState: the client's own seat, its
// own full hand, every other seat's redacted hand, and the client-visible
// projection of turn_state. It is built once from a server snapshot and
// thereafter kept in sync by replaying events through ApplyEvent.
type State struct {
	Id      uint32
	Seat    tile.Wind
	Players map[tile.Wind]*LocalHand
	Turn    Turn
}

// New constructs a LocalState snapshot for seat.
func New(id uint32, seat tile.Wind, players map[tile.Wind]*LocalHand, turn Turn) *State {
	return &State{Id: id, Seat: seat, Players: players, Turn: turn}
}

// ApplyEvent folds a server-pushed MatchEvent into the local projection,
// keeping it consistent with the authoritative MatchState without needing
// the full state resent.
func (s *State) ApplyEvent(ev protocol.MatchEvent) error {
	switch e := ev.(type) {
	case protocol.LocalDraw:
		lh := s.Players[e.Seat]
		if lh == nil || !lh.IsLocal {
			return fmt.Errorf("localstate: LocalDraw for non-local seat %s", e.Seat)
		}
		if err := lh.Local.DrawTile(tile.Instance{Id: e.Tile, Tile: tile.ByID(e.Tile)}); err != nil {
			return err
		}
		s.Turn = Turn{Kind: AwaitingDiscard, Seat: e.Seat}
		return nil

	case protocol.RemoteDraw:
		lh := s.Players[e.Seat]
		if lh == nil || lh.IsLocal {
			return fmt.Errorf("localstate: RemoteDraw for local seat %s", e.Seat)
		}
		lh.Remote.HasCurrentDraw = true
		s.Turn = Turn{Kind: AwaitingDiscard, Seat: e.Seat}
		return nil

	case protocol.TileDiscarded:
		lh := s.Players[e.Seat]
		if lh == nil {
			return fmt.Errorf("localstate: TileDiscarded from unknown seat %s", e.Seat)
		}
		if lh.IsLocal {
			if err := lh.Local.DiscardTile(e.Tile); err != nil {
				return err
			}
		} else {
			lh.Remote.discardOneConcealed()
			lh.Remote.Discards = append(lh.Remote.Discards, tile.Instance{Id: e.Tile, Tile: tile.ByID(e.Tile)})
		}

		if len(e.Calls) == 0 {
			s.Turn = Turn{Kind: AwaitingDraw, Seat: e.Seat.Next()}
		} else {
			s.Turn = Turn{
				Kind:             AwaitingCalls,
				DiscardingPlayer: e.Seat,
				Discard:          e.Tile,
				Calls:            e.Calls,
			}
		}
		return nil

	case protocol.CallEvent:
		fc := e.FinalCall
		discarder := s.Players[fc.CalledFrom]
		if discarder != nil {
			if discarder.IsLocal {
				discarder.Local.CallLastDiscard()
			} else if len(discarder.Remote.Discards) > 0 {
				discarder.Remote.Discards = discarder.Remote.Discards[:len(discarder.Remote.Discards)-1]
			}
		}

		caller := s.Players[fc.Caller]
		if caller == nil {
			return fmt.Errorf("localstate: Call from unknown seat %s", fc.Caller)
		}
		discardInstance := tile.Instance{Id: fc.Discard, Tile: tile.ByID(fc.Discard)}
		if caller.IsLocal {
			if err := caller.Local.CallTile(discardInstance, fc.WinningCall); err != nil {
				return err
			}
		} else {
			applyRemoteCall(caller.Remote, fc.WinningCall, discardInstance)
		}

		s.Turn = Turn{Kind: AwaitingDraw, Seat: fc.Caller.Next()}
		return nil

	case protocol.PassEvent:
		// A client offered no calls on the discard already moved to
		// AwaitingDraw(next(discarder)) on TileDiscarded.
		if s.Turn.Kind == AwaitingCalls {
			s.Turn = Turn{Kind: AwaitingDraw, Seat: s.Turn.DiscardingPlayer.Next()}
		}
		return nil

	case protocol.MatchEndedEvent:
		s.Turn = Turn{Kind: MatchEnded, Winner: e.Winner}
		return nil

	default:
		return fmt.Errorf("localstate: unhandled event %T", ev)
	}
}

// applyRemoteCall updates a redacted RemoteHand to reflect a call made by
// that seat: the called tiles move from concealed accounting into the
// appropriate open meld. Open melds are always fully visible at the table,
// so the meld's tile identities come directly from the call and the
// discard it was called on.
func applyRemoteCall(rh *RemoteHand, call hand.Call, discard tile.Instance) {
	switch call.Kind {
	case hand.Chii:
		a := tile.Instance{Id: call.A, Tile: tile.ByID(call.A)}
		b := tile.Instance{Id: call.B, Tile: tile.ByID(call.B)}
		rh.Tiles -= 2
		rh.OpenChows = append(rh.OpenChows, [3]tile.Instance{discard, a, b})
	case hand.Pon:
		a := tile.Instance{Id: call.A, Tile: tile.ByID(call.A)}
		b := tile.Instance{Id: call.B, Tile: tile.ByID(call.B)}
		rh.Tiles -= 2
		rh.OpenPongs = append(rh.OpenPongs, [3]tile.Instance{discard, a, b})
	case hand.Kan:
		// The three concealed tiles forming the kong are identical in
		// value to the discard, but a Kan call carries no ids for them;
		// every slot of the meld is filled with the discard's id and
		// value.
		same := tile.Instance{Id: discard.Id, Tile: discard.Tile}
		rh.Tiles -= 3
		rh.OpenKongs = append(rh.OpenKongs, [4]tile.Instance{discard, same, same, same})
	case hand.Ron:
		// Ron uses the discard itself to complete the hand; no concealed
		// tiles are consumed from the caller's RemoteHand.
	}
}
