package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamyinia/mahjongmatch/internal/tile"
)

func instances(tiles ...tile.Tile) []tile.Instance {
	out := make([]tile.Instance, len(tiles))
	for i, t := range tiles {
		out[i] = tile.Instance{Id: tile.Id(i), Tile: t}
	}
	return out
}

func TestNewDealsThirteenFromTail(t *testing.T) {
	wall := tile.Generate()
	n := len(wall)
	h, err := New(&wall)
	require.NoError(t, err)
	assert.Len(t, h.Tiles(), 13)
	assert.Len(t, wall, n-13)
	assert.Nil(t, h.CurrentDraw())
}

func TestNewFailsWithTooFewTiles(t *testing.T) {
	wall := tile.Generate()[:5]
	_, err := New(&wall)
	require.Error(t, err)
}

func TestDrawThenDiscardKeepsThirteen(t *testing.T) {
	wall := tile.Generate()
	h, err := New(&wall)
	require.NoError(t, err)

	draw := wall[len(wall)-1]
	wall = wall[:len(wall)-1]
	require.NoError(t, h.DrawTile(draw))
	assert.NotNil(t, h.CurrentDraw())

	first := h.Tiles()[0]
	require.NoError(t, h.DiscardTile(first.Id))

	assert.Len(t, h.Tiles(), 13)
	assert.Nil(t, h.CurrentDraw())
	assert.Equal(t, first, h.Discards()[len(h.Discards())-1])
}

func TestDiscardingTheDrawLeavesHandUnchanged(t *testing.T) {
	wall := tile.Generate()
	h, err := New(&wall)
	require.NoError(t, err)

	draw := wall[len(wall)-1]
	wall = wall[:len(wall)-1]
	require.NoError(t, h.DrawTile(draw))

	require.NoError(t, h.DiscardTile(draw.Id))
	assert.Len(t, h.Tiles(), 13)
	assert.Nil(t, h.CurrentDraw())
	assert.Equal(t, draw, h.Discards()[len(h.Discards())-1])
}

func TestDrawTileFailsWhenAlreadyDrawn(t *testing.T) {
	wall := tile.Generate()
	h, err := New(&wall)
	require.NoError(t, err)
	require.NoError(t, h.DrawTile(wall[len(wall)-1]))
	err = h.DrawTile(wall[len(wall)-2])
	require.Error(t, err)
}

func TestDiscardTileFailsWithoutDraw(t *testing.T) {
	wall := tile.Generate()
	h, err := New(&wall)
	require.NoError(t, err)
	err = h.DiscardTile(h.Tiles()[0].Id)
	assert.ErrorIs(t, err, ErrNoDraw)
}

func TestFindPossibleCallsPonAndKanBoundary(t *testing.T) {
	discard := tile.Simple(tile.Coins, 5)

	// Two matching tiles: exactly one Pon, no Kan.
	wall := append(instances(discard, discard), tile.Generate()[:11]...)
	h := &Hand{tiles: wall}
	calls := h.FindPossibleCalls(discard, false)
	require.Len(t, calls, 1)
	assert.Equal(t, Pon, calls[0].Kind)

	// Three matching tiles: exactly one Pon and one Kan, never three Pons.
	wall3 := append(instances(discard, discard, discard), tile.Generate()[:10]...)
	h3 := &Hand{tiles: wall3}
	calls3 := h3.FindPossibleCalls(discard, false)
	require.Len(t, calls3, 2)
	assert.Equal(t, Pon, calls3[0].Kind)
	assert.Equal(t, Kan, calls3[1].Kind)
}

func TestFindPossibleCallsDedupesChiiByValue(t *testing.T) {
	discard := tile.Simple(tile.Coins, 3)
	// Two separate physical 2s and a 4, both forming 2-3-4: must dedup to one Chii.
	tiles := instances(
		tile.Simple(tile.Coins, 2),
		tile.Simple(tile.Coins, 2),
		tile.Simple(tile.Coins, 4),
	)
	h := &Hand{tiles: tiles}
	calls := h.FindPossibleCalls(discard, true)
	require.Len(t, calls, 1)
	assert.Equal(t, Chii, calls[0].Kind)
}

func TestFindPossibleCallsNoChiiWhenNotAllowed(t *testing.T) {
	discard := tile.Simple(tile.Coins, 3)
	tiles := instances(tile.Simple(tile.Coins, 2), tile.Simple(tile.Coins, 4))
	h := &Hand{tiles: tiles}
	calls := h.FindPossibleCalls(discard, false)
	assert.Empty(t, calls)
}

func TestCallTileKanValidatesBeforeMutating(t *testing.T) {
	discard := tile.Simple(tile.Coins, 5)
	discardInst := tile.Instance{Id: 200, Tile: discard}

	// Only 2 matching tiles in hand: Kan must fail and leave hand untouched.
	tiles := instances(discard, discard, tile.Simple(tile.Bamboo, 1))
	h := &Hand{tiles: tiles}
	before := append([]tile.Instance(nil), h.Tiles()...)

	err := h.CallTile(discardInst, NewKan(discard))
	require.Error(t, err)
	assert.Equal(t, before, h.Tiles())
}

func TestCallTilePonMovesExactlyTwoTiles(t *testing.T) {
	discard := tile.Simple(tile.Coins, 5)
	discardInst := tile.Instance{Id: 200, Tile: discard}
	tiles := instances(discard, discard, tile.Simple(tile.Bamboo, 1))
	h := &Hand{tiles: tiles}

	call := NewPon(tiles[0].Id, tiles[1].Id)
	require.NoError(t, h.CallTile(discardInst, call))

	assert.Len(t, h.Tiles(), 1)
	require.Len(t, h.OpenPongs(), 1)
	assert.Equal(t, discardInst, h.OpenPongs()[0][0])
}

func TestCallTileChiiRejectsInvalidSequence(t *testing.T) {
	discard := tile.Simple(tile.Coins, 5)
	discardInst := tile.Instance{Id: 200, Tile: discard}
	tiles := instances(tile.Simple(tile.Coins, 1), tile.Simple(tile.Coins, 2))
	h := &Hand{tiles: tiles}

	err := h.CallTile(discardInst, NewChii(tiles[0].Id, tiles[1].Id))
	require.Error(t, err)
	assert.Len(t, h.Tiles(), 2)
}

func TestCallLastDiscardPopsMostRecent(t *testing.T) {
	h := &Hand{discards: instances(tile.Simple(tile.Coins, 1), tile.Simple(tile.Coins, 2))}
	last, ok := h.CallLastDiscard()
	require.True(t, ok)
	assert.Equal(t, tile.Simple(tile.Coins, 2), last.Tile)
	assert.Len(t, h.Discards(), 1)
}

func TestCallPrecedence(t *testing.T) {
	id := tile.Id(0)
	tv := tile.Simple(tile.Coins, 1)

	assert.Positive(t, CompareCalls(tile.East, NewRon(), tile.West, NewKan(tv), tile.South))
	assert.Positive(t, CompareCalls(tile.East, NewRon(), tile.West, NewPon(id, id), tile.South))
	assert.Positive(t, CompareCalls(tile.East, NewRon(), tile.West, NewChii(id, id), tile.South))

	// Head bump: East is closer to North (distance 1) than West (distance 3).
	assert.Positive(t, CompareCalls(tile.East, NewRon(), tile.West, NewRon(), tile.North))
	// South is closer to West (distance 1) than to East (distance 3).
	assert.Negative(t, CompareCalls(tile.East, NewRon(), tile.West, NewRon(), tile.South))

	assert.Positive(t, CompareCalls(tile.East, NewKan(tv), tile.West, NewPon(id, id), tile.South))
	assert.Positive(t, CompareCalls(tile.East, NewKan(tv), tile.West, NewChii(id, id), tile.South))

	assert.Positive(t, CompareCalls(tile.East, NewPon(id, id), tile.West, NewChii(id, id), tile.South))
}

func TestCallPrecedencePanicsOnDuplicateKan(t *testing.T) {
	tv := tile.Simple(tile.Coins, 1)
	assert.Panics(t, func() {
		CompareCalls(tile.East, NewKan(tv), tile.West, NewKan(tv), tile.South)
	})
}
