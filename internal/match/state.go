// Package match implements MatchState, the server-authoritative state
// machine: the wall, the four hands, and the turn state machine that
// sequences draws, discards, and call resolution. MatchState is the sole
// source of truth for a match; every mutation goes through one of its
// atomic operations.
package match

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"

	"github.com/lamyinia/mahjongmatch/internal/hand"
	"github.com/lamyinia/mahjongmatch/internal/localstate"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// State is the authoritative state of one in-progress match.
type State struct {
	Id uint32

	players map[tile.Wind]*hand.Hand
	wall    []tile.Instance
	turn    Turn
}

// New creates a match, shuffling a fresh canonical tileset with an
// OS-seeded PRNG and dealing 13 tiles to each seat in turn order
// (East, South, West, North).
func New(id uint32) *State {
	return newWithRand(id, mathrand.New(mathrand.NewSource(osSeed())))
}

// NewSeeded creates a match using a fixed PRNG seed, for deterministic
// tests.
func NewSeeded(id uint32, seed int64) *State {
	return newWithRand(id, mathrand.New(mathrand.NewSource(seed)))
}

func osSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is a broken OS environment; there is no
		// sane recovery, so fall back to a fixed value rather than
		// silently reusing a weak seed.
		return 0
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

func newWithRand(id uint32, rng *mathrand.Rand) *State {
	tiles := tile.Generate()
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	players := make(map[tile.Wind]*hand.Hand, 4)
	for _, seat := range tile.Winds() {
		h, err := hand.New(&tiles)
		if err != nil {
			// Only reachable if tile.Count ever drops below 52; the
			// canonical tileset always has 136.
			panic(err)
		}
		players[seat] = h
	}

	return &State{
		Id:      id,
		players: players,
		wall:    tiles,
		turn:    Turn{Kind: AwaitingDraw, Seat: tile.East},
	}
}

// Player returns the hand for the given seat.
func (s *State) Player(seat tile.Wind) *hand.Hand {
	return s.players[seat]
}

// Turn returns the current turn_state.
func (s *State) Turn() Turn {
	return s.turn
}

// WallSize returns the number of tiles remaining in the wall.
func (s *State) WallSize() int {
	return len(s.wall)
}

// DrawForPlayer draws the next tile from the tail of the wall into seat's
// current draw. If the wall is empty, no tile is drawn and the match ends
// in an exhaustive draw (turn_state becomes MatchEnded{Winner: nil}); this
// is the normal terminal condition, not an error. ok reports whether a
// tile was actually drawn.
func (s *State) DrawForPlayer(seat tile.Wind) (id tile.Id, ok bool, err error) {
	if s.turn.Kind != AwaitingDraw || s.turn.Seat != seat {
		return 0, false, &ErrInvalidAction{Operation: "draw_for_player", Expected: AwaitingDraw, Actual: s.turn.Kind}
	}

	if len(s.wall) == 0 {
		s.turn = Turn{Kind: MatchEnded, Winner: nil}
		return 0, false, nil
	}

	drawn := s.wall[len(s.wall)-1]
	s.wall = s.wall[:len(s.wall)-1]

	if err := s.players[seat].DrawTile(drawn); err != nil {
		return 0, false, err
	}

	s.turn = Turn{Kind: AwaitingDiscard, Seat: seat}
	return drawn.Id, true, nil
}

// DiscardTile discards tile id from seat's hand. If any other seat can call
// the discarded tile, turn_state becomes AwaitingCalls with each such seat's
// options recorded in waiting; the returned map is exactly that waiting
// set. If no seat can call, turn_state advances directly to
// AwaitingDraw(next(seat)) and the returned map is empty.
func (s *State) DiscardTile(seat tile.Wind, id tile.Id) (waiting map[tile.Wind][]hand.Call, err error) {
	if s.turn.Kind != AwaitingDiscard || s.turn.Seat != seat {
		return nil, &ErrInvalidAction{Operation: "discard_tile", Expected: AwaitingDiscard, Actual: s.turn.Kind}
	}

	h := s.players[seat]
	if err := h.DiscardTile(id); err != nil {
		return nil, err
	}

	discardValue := tile.ByID(id)
	waiting = make(map[tile.Wind][]hand.Call)
	for _, q := range tile.Winds() {
		if q == seat {
			continue
		}
		canChii := seat.Next() == q
		calls := s.players[q].FindPossibleCalls(discardValue, canChii)
		if len(calls) > 0 {
			waiting[q] = calls
		}
	}

	if len(waiting) == 0 {
		s.turn = Turn{Kind: AwaitingDraw, Seat: seat.Next()}
		return waiting, nil
	}

	s.turn = Turn{
		Kind:             AwaitingCalls,
		DiscardingPlayer: seat,
		Discard:          id,
		Calls:            make(map[tile.Wind]hand.Call),
		Waiting:          waiting,
	}
	return waiting, nil
}

// RequestCall records seat's decision (pass if call is nil) while the match
// is AwaitingCalls. done reports whether every waiting seat has now
// responded, meaning the caller should invoke DecideCall.
func (s *State) RequestCall(seat tile.Wind, call *hand.Call) (done bool, err error) {
	if s.turn.Kind != AwaitingCalls {
		return false, &ErrInvalidAction{Operation: "request_call", Expected: AwaitingCalls, Actual: s.turn.Kind}
	}

	options, waiting := s.turn.Waiting[seat]
	if !waiting {
		return false, &ErrSeatNotWaiting{Seat: seat.String()}
	}

	if call != nil {
		offered := false
		for _, c := range options {
			if c == *call {
				offered = true
				break
			}
		}
		if !offered {
			return false, ErrCallNotOffered
		}
		s.turn.Calls[seat] = *call
	}

	delete(s.turn.Waiting, seat)
	return len(s.turn.Waiting) == 0, nil
}

// DecideCall resolves the AwaitingCalls phase once every seat has
// responded. If no seat called, turn_state advances to
// AwaitingDraw(next(discarding_player)) and won is false. Otherwise the
// highest-precedence call (Ron > Kan > Pon > Chii, head bump for Ron ties)
// is applied: the discarder's last discard is popped (and must match the
// recorded discard), call_tile is applied to the winning caller's hand, and
// turn_state advances to AwaitingDraw(next(caller)).
func (s *State) DecideCall() (winner tile.Wind, call hand.Call, won bool, err error) {
	if s.turn.Kind != AwaitingCalls || len(s.turn.Waiting) != 0 {
		return 0, hand.Call{}, false, &ErrInvalidAction{Operation: "decide_call", Expected: AwaitingCalls, Actual: s.turn.Kind}
	}

	discardingPlayer := s.turn.DiscardingPlayer
	discardId := s.turn.Discard

	if len(s.turn.Calls) == 0 {
		s.turn = Turn{Kind: AwaitingDraw, Seat: discardingPlayer.Next()}
		return 0, hand.Call{}, false, nil
	}

	var bestSeat tile.Wind
	var bestCall hand.Call
	first := true
	for seat, c := range s.turn.Calls {
		if first {
			bestSeat, bestCall = seat, c
			first = false
			continue
		}
		if hand.CompareCalls(seat, c, bestSeat, bestCall, discardingPlayer) > 0 {
			bestSeat, bestCall = seat, c
		}
	}

	discarded, ok := s.players[discardingPlayer].CallLastDiscard()
	if !ok || discarded.Id != discardId {
		return 0, hand.Call{}, false, &ErrInvalidAction{Operation: "decide_call", Expected: AwaitingCalls, Actual: s.turn.Kind}
	}

	if err := s.players[bestSeat].CallTile(discarded, bestCall); err != nil {
		return 0, hand.Call{}, false, err
	}

	s.turn = Turn{Kind: AwaitingDraw, Seat: bestSeat.Next()}
	return bestSeat, bestCall, true, nil
}

// LocalStateForPlayer constructs the redacted projection of this match for
// the given seat: the seat's own hand is embedded in full, every other
// seat's hand is reduced to its visible portion, and turn_state is
// projected to strip the waiting map and other seats' call options.
func (s *State) LocalStateForPlayer(seat tile.Wind) *localstate.State {
	players := make(map[tile.Wind]*localstate.LocalHand, 4)
	for _, q := range tile.Winds() {
		players[q] = localstate.ProjectHand(s.players[q], q == seat)
	}

	return localstate.New(s.Id, seat, players, s.projectTurn(seat))
}

func (s *State) projectTurn(seat tile.Wind) localstate.Turn {
	switch s.turn.Kind {
	case AwaitingDraw:
		return localstate.Turn{Kind: localstate.AwaitingDraw, Seat: s.turn.Seat}
	case AwaitingDiscard:
		return localstate.Turn{Kind: localstate.AwaitingDiscard, Seat: s.turn.Seat}
	case AwaitingCalls:
		return localstate.Turn{
			Kind:             localstate.AwaitingCalls,
			DiscardingPlayer: s.turn.DiscardingPlayer,
			Discard:          s.turn.Discard,
			Calls:            append([]hand.Call(nil), s.turn.Waiting[seat]...),
		}
	default:
		return localstate.Turn{Kind: localstate.MatchEnded, Winner: s.turn.Winner}
	}
}
