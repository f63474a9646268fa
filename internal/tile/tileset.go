package tile

// Count is the number of physical tiles in a standard set used by this
// engine: 3 suits x 9 ranks x 4 copies, plus 3 dragons x 4 copies, plus 4
// winds x 4 copies.
const Count = 136

var canonical [Count]Instance

func init() {
	id := Id(0)
	push := func(t Tile) {
		canonical[id] = Instance{Id: id, Tile: t}
		id++
	}

	for _, suit := range [3]Suit{Coins, Bamboo, Characters} {
		for number := uint8(1); number <= 9; number++ {
			for copy := 0; copy < 4; copy++ {
				push(Simple(suit, number))
			}
		}
	}

	for _, dragon := range [3]Dragon{White, Green, Red} {
		for copy := 0; copy < 4; copy++ {
			push(FromDragon(dragon))
		}
	}

	for _, wind := range [4]Wind{East, South, West, North} {
		for copy := 0; copy < 4; copy++ {
			push(FromWind(wind))
		}
	}
}

// Generate returns the canonical, unshuffled tileset, the same bijective
// id-to-value mapping on every call.
func Generate() []Instance {
	out := make([]Instance, Count)
	copy(out, canonical[:])
	return out
}

// ByID returns the face value assigned to id at tileset generation.
func ByID(id Id) Tile {
	return canonical[id].Tile
}
