// Package hand implements the per-player hand: concealed tiles, the current
// draw, open melds, closed kongs, and the discard pile. It enforces the
// draw/discard invariants and the call-matching algorithm; it has no
// knowledge of turn order or the wall, which belong to the match package.
package hand

import (
	"sort"

	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// Hand tracks the full state of a player's hand during a match. The number
// of concealed tiles is always at least 1 and at most 13; if fewer than 13,
// the player has at least one open meld or closed kong accounting for the
// rest of the budget. There are 0 or 1 current draws, and the hand must be
// discarded from before another draw is taken.
type Hand struct {
	tiles       []tile.Instance
	currentDraw *tile.Instance

	openChows   [][3]tile.Instance
	openPongs   [][3]tile.Instance
	openKongs   [][4]tile.Instance
	closedKongs [][4]tile.Instance

	discards []tile.Instance
}

// New deals the starting hand by drawing 13 tiles from the tail of
// drawFrom, mutating it in place. Returns ErrWrongNumberOfTiles if fewer
// than 13 tiles remain.
func New(drawFrom *[]tile.Instance) (*Hand, error) {
	n := len(*drawFrom)
	if n < 13 {
		return nil, &ErrWrongNumberOfTiles{Remaining: n}
	}

	tiles := make([]tile.Instance, 13)
	copy(tiles, (*drawFrom)[n-13:])
	*drawFrom = (*drawFrom)[:n-13]

	return &Hand{tiles: tiles}, nil
}

// DrawTile sets tile as the hand's current draw. Fails if the hand already
// holds an undiscarded draw.
func (h *Hand) DrawTile(t tile.Instance) error {
	if h.currentDraw != nil {
		return &ErrAlreadyHasDraw{Tile: t}
	}
	h.currentDraw = &t
	return nil
}

// DiscardTile removes the tile identified by id from the hand, preferring a
// concealed tile match and falling back to the current draw, and appends it
// to the discard pile. If the current draw was not the tile discarded, it
// is merged into the concealed tiles. Fails with ErrNoDraw if there is no
// current draw, or ErrNotInHand if id matches neither.
func (h *Hand) DiscardTile(id tile.Id) error {
	if h.currentDraw == nil {
		return ErrNoDraw
	}

	var discarded tile.Instance
	if idx := h.indexOf(id); idx >= 0 {
		discarded = h.tiles[idx]
		h.tiles = append(h.tiles[:idx], h.tiles[idx+1:]...)
	} else if h.currentDraw.Id == id {
		discarded = *h.currentDraw
		h.currentDraw = nil
	} else {
		return ErrNotInHand
	}

	h.discards = append(h.discards, discarded)

	if h.currentDraw != nil {
		h.tiles = append(h.tiles, *h.currentDraw)
		h.currentDraw = nil
	}

	return nil
}

func (h *Hand) indexOf(id tile.Id) int {
	for i, inst := range h.tiles {
		if inst.Id == id {
			return i
		}
	}
	return -1
}

// FindPossibleCalls enumerates the calls this hand could make on a tile
// discarded by someone else. canCallChii should be true only when this
// hand's seat is immediately after the discarder in turn order.
//
// At most one Pon and one Kan are ever returned, even when multiple
// physical combinations would produce them: all such combinations are
// functionally equivalent. Chii candidates that differ only by which
// physical copy completes the sequence are deduplicated, but distinct
// sequences (e.g. 1-2 and 4-5 completing a discarded 3 as 1-2-3 and 3-4-5)
// are both returned.
func (h *Hand) FindPossibleCalls(discard tile.Tile, canCallChii bool) []Call {
	var calls []Call

	if canCallChii {
		type pair struct {
			first, second tile.Instance
		}
		var candidates []pair

		for i := 0; i < len(h.tiles); i++ {
			for j := i + 1; j < len(h.tiles); j++ {
				a, b := h.tiles[i], h.tiles[j]
				if tile.IsChow(discard, a.Tile, b.Tile) {
					candidates = append(candidates, pair{a, b})
				}
			}
		}

		// Canonicalize each pair as (lower value, higher value) so that
		// equal-value pairs sort adjacently, then dedup by value.
		sort.SliceStable(candidates, func(i, j int) bool {
			li, hi := orderByValue(candidates[i].first, candidates[i].second)
			lj, hj := orderByValue(candidates[j].first, candidates[j].second)
			if li.Tile != lj.Tile {
				return tile.Less(li.Tile, lj.Tile)
			}
			return tile.Less(hi.Tile, hj.Tile)
		})

		deduped := candidates[:0:0]
		var lastKey [2]tile.Tile
		first := true
		for _, c := range candidates {
			lo, hi := orderByValue(c.first, c.second)
			key := [2]tile.Tile{lo.Tile, hi.Tile}
			if first || key != lastKey {
				deduped = append(deduped, c)
				lastKey = key
				first = false
			}
		}

		// Re-sort by id for deterministic output order.
		sort.Slice(deduped, func(i, j int) bool {
			if deduped[i].first.Id != deduped[j].first.Id {
				return deduped[i].first.Id < deduped[j].first.Id
			}
			return deduped[i].second.Id < deduped[j].second.Id
		})

		for _, c := range deduped {
			calls = append(calls, NewChii(c.first.Id, c.second.Id))
		}
	}

	var matching []tile.Instance
	for _, inst := range h.tiles {
		if inst.Tile == discard {
			matching = append(matching, inst)
		}
	}
	if len(matching) > 3 {
		panic("more than 3 matching tiles for a single discard value in one hand")
	}

	if len(matching) >= 2 {
		calls = append(calls, NewPon(matching[0].Id, matching[1].Id))
	}
	if len(matching) == 3 {
		calls = append(calls, NewKan(discard))
	}

	return calls
}

func orderByValue(a, b tile.Instance) (tile.Instance, tile.Instance) {
	if tile.Less(a.Tile, b.Tile) {
		return a, b
	}
	return b, a
}

// CallTile applies call against the discarded tile, validating that the
// required tiles are present before mutating any state. On success the
// referenced tiles are moved from the concealed hand into the appropriate
// open-meld list alongside discard.
func (h *Hand) CallTile(discard tile.Instance, call Call) error {
	switch call.Kind {
	case Ron:
		h.tiles = append(h.tiles, discard)
		return nil

	case Kan:
		if call.Tile != discard.Tile {
			return callErrorf("call made does not match the specified discard")
		}

		var matchIdx []int
		for i, inst := range h.tiles {
			if inst.Tile == discard.Tile {
				matchIdx = append(matchIdx, i)
			}
		}
		if len(matchIdx) != 3 {
			return callErrorf(`not enough tiles matching %v in hand for "kan" call (expected 3, found %d)`, discard.Tile, len(matchIdx))
		}

		kongTiles := [3]tile.Instance{h.tiles[matchIdx[0]], h.tiles[matchIdx[1]], h.tiles[matchIdx[2]]}
		h.removeIndexes(matchIdx)
		h.openKongs = append(h.openKongs, [4]tile.Instance{discard, kongTiles[0], kongTiles[1], kongTiles[2]})
		return nil

	case Pon:
		idxA := h.indexOf(call.A)
		idxB := h.indexOf(call.B)
		if idxA < 0 {
			return callErrorf("tile %v not found in hand for call %v", call.A, call)
		}
		if idxB < 0 {
			return callErrorf("tile %v not found in hand for call %v", call.B, call)
		}

		tileA := h.tiles[idxA]
		tileB := h.tiles[idxB]
		h.removeIndexes([]int{idxA, idxB})
		h.openPongs = append(h.openPongs, [3]tile.Instance{discard, tileA, tileB})
		return nil

	case Chii:
		idxA := h.indexOf(call.A)
		idxB := h.indexOf(call.B)
		if idxA < 0 {
			return callErrorf(`missing tile %v for "chii" call`, call.A)
		}
		if idxB < 0 {
			return callErrorf(`missing tile %v for "chii" call`, call.B)
		}
		tileA := h.tiles[idxA]
		tileB := h.tiles[idxB]
		if !tile.IsChow(discard.Tile, tileA.Tile, tileB.Tile) {
			return callErrorf(`tiles specified in "chii" call do not form a valid sequence`)
		}

		h.removeIndexes([]int{idxA, idxB})
		h.openChows = append(h.openChows, [3]tile.Instance{discard, tileA, tileB})
		return nil

	default:
		return callErrorf("unknown call kind %v", call.Kind)
	}
}

// removeIndexes removes the tiles at the given indexes (which must be
// distinct and refer to the pre-removal slice) from the concealed hand.
func (h *Hand) removeIndexes(indexes []int) {
	sorted := append([]int(nil), indexes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, idx := range sorted {
		h.tiles = append(h.tiles[:idx], h.tiles[idx+1:]...)
	}
}

// CallLastDiscard pops and returns the most recent discard, used by the
// match controller when another seat calls this hand's last discarded
// tile. Returns false if there are no discards.
func (h *Hand) CallLastDiscard() (tile.Instance, bool) {
	n := len(h.discards)
	if n == 0 {
		return tile.Instance{}, false
	}
	last := h.discards[n-1]
	h.discards = h.discards[:n-1]
	return last, true
}

func (h *Hand) Tiles() []tile.Instance             { return h.tiles }
func (h *Hand) CurrentDraw() *tile.Instance         { return h.currentDraw }
func (h *Hand) OpenChows() [][3]tile.Instance       { return h.openChows }
func (h *Hand) OpenPongs() [][3]tile.Instance       { return h.openPongs }
func (h *Hand) OpenKongs() [][4]tile.Instance       { return h.openKongs }
func (h *Hand) ClosedKongs() [][4]tile.Instance     { return h.closedKongs }
func (h *Hand) Discards() []tile.Instance           { return h.discards }
