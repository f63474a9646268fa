package hand

import (
	"fmt"

	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// Kind discriminates the four shapes a call on a discard can take. Their
// declaration order doubles as the tie-free part of their precedence: Ron
// beats Kan beats Pon beats Chii.
type Kind uint8

const (
	Chii Kind = iota
	Pon
	Kan
	Ron
)

func (k Kind) String() string {
	switch k {
	case Chii:
		return "Chii"
	case Pon:
		return "Pon"
	case Kan:
		return "Kan"
	case Ron:
		return "Ron"
	default:
		return "Unknown"
	}
}

// Call is a pending or resolved response to a discarded tile. A, B hold the
// two hand tile ids completing a Chii or Pon; Tile holds the face value
// being called for a Kan (all three remaining copies are implied). Ron
// carries neither, since winning-hand tile identity is the discard itself.
type Call struct {
	Kind Kind
	A    tile.Id
	B    tile.Id
	Tile tile.Tile
}

func NewChii(a, b tile.Id) Call { return Call{Kind: Chii, A: a, B: b} }
func NewPon(a, b tile.Id) Call  { return Call{Kind: Pon, A: a, B: b} }
func NewKan(t tile.Tile) Call   { return Call{Kind: Kan, Tile: t} }
func NewRon() Call              { return Call{Kind: Ron} }

func (c Call) String() string {
	switch c.Kind {
	case Chii:
		return fmt.Sprintf("Chii(%d,%d)", c.A, c.B)
	case Pon:
		return fmt.Sprintf("Pon(%d,%d)", c.A, c.B)
	case Kan:
		return fmt.Sprintf("Kan(%v)", c.Tile)
	default:
		return "Ron"
	}
}

// CompareCalls returns a positive value if leftCall wins over rightCall, a
// negative value if rightCall wins, matching the precedence order
// Ron > Kan > Pon > Chii. When both calls are Ron, the call closer in turn
// order to discardingSeat wins (head bump).
//
// CompareCalls panics if both calls are Kan, both are Pon, or both are
// Chii: the caller (MatchState) must never have assembled a waiting set
// with two calls of the same non-Ron kind for one discard, since only one
// player can hold the tiles to complete any of those melds from a single
// discarded copy.
func CompareCalls(leftSeat tile.Wind, leftCall Call, rightSeat tile.Wind, rightCall Call, discardingSeat tile.Wind) int {
	switch {
	case leftCall.Kind == Ron && rightCall.Kind == Ron:
		leftDistance := discardingSeat.DistanceTo(leftSeat)
		rightDistance := discardingSeat.DistanceTo(rightSeat)
		return rightDistance - leftDistance

	case leftCall.Kind == Ron:
		return 1
	case rightCall.Kind == Ron:
		return -1

	case leftCall.Kind == Kan && rightCall.Kind == Kan:
		panic(`more than one "kan" call for discard`)
	case leftCall.Kind == Kan:
		return 1
	case rightCall.Kind == Kan:
		return -1

	case leftCall.Kind == Pon && rightCall.Kind == Pon:
		panic(`more than one "pon" call for discard`)
	case leftCall.Kind == Pon:
		return 1
	case rightCall.Kind == Pon:
		return -1

	default:
		panic(`more than one "chii" call for discard`)
	}
}
