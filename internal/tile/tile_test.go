package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindNextCycles(t *testing.T) {
	w := East
	w = w.Next()
	assert.Equal(t, South, w)
	w = w.Next()
	assert.Equal(t, West, w)
	w = w.Next()
	assert.Equal(t, North, w)
	w = w.Next()
	assert.Equal(t, East, w)
}

func TestWindDistanceTo(t *testing.T) {
	assert.Equal(t, 0, East.DistanceTo(East))
	assert.Equal(t, 1, East.DistanceTo(South))
	assert.Equal(t, 1, North.DistanceTo(East))
	assert.Equal(t, 2, East.DistanceTo(West))
}

func TestDragonNextCycles(t *testing.T) {
	d := White
	d = d.Next()
	assert.Equal(t, Green, d)
	d = d.Next()
	assert.Equal(t, Red, d)
	d = d.Next()
	assert.Equal(t, White, d)
}

func TestIsChowAcceptsAllPermutations(t *testing.T) {
	a := Simple(Coins, 3)
	b := Simple(Coins, 1)
	c := Simple(Coins, 2)
	assert.True(t, IsChow(a, b, c))
	assert.True(t, IsChow(b, a, c))
	assert.True(t, IsChow(c, b, a))
}

func TestIsChowRejectsHonors(t *testing.T) {
	assert.False(t, IsChow(Simple(Coins, 1), Simple(Coins, 2), FromWind(East)))
	assert.False(t, IsChow(FromDragon(White), FromDragon(Green), FromDragon(Red)))
}

func TestIsChowRejectsMixedSuits(t *testing.T) {
	assert.False(t, IsChow(Simple(Coins, 1), Simple(Bamboo, 2), Simple(Coins, 3)))
}

func TestGenerateProducesCanonicalOrder(t *testing.T) {
	tiles := Generate()
	require.Len(t, tiles, Count)

	// Simples first: Coins 1-9 x4, Bamboo 1-9 x4, Characters 1-9 x4.
	assert.Equal(t, Simple(Coins, 1), tiles[0].Tile)
	assert.Equal(t, Simple(Coins, 1), tiles[3].Tile)
	assert.Equal(t, Simple(Characters, 9), tiles[107].Tile)

	// Then dragons White, Green, Red x4.
	assert.Equal(t, FromDragon(White), tiles[108].Tile)
	assert.Equal(t, FromDragon(Red), tiles[119].Tile)

	// Then winds East, South, West, North x4.
	assert.Equal(t, FromWind(East), tiles[120].Tile)
	assert.Equal(t, FromWind(North), tiles[135].Tile)

	for i, inst := range tiles {
		assert.Equal(t, Id(i), inst.Id)
		assert.Equal(t, inst.Tile, ByID(inst.Id))
	}
}

func TestLessIsATotalOrderIgnoringPairOrientation(t *testing.T) {
	a := Simple(Coins, 2)
	b := Simple(Coins, 5)
	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))
	assert.False(t, Less(a, a))
}
