package tile

import "fmt"

// Kind discriminates the three families of tile value.
type Kind uint8

const (
	KindSimple Kind = iota
	KindWind
	KindDragon
)

// Tile is the face value of a physical tile: a simple tile (suit + rank), a
// wind honor, or a dragon honor. Tile is comparable and safe to use as a map
// key; the zero value (Coins with rank 0) is not a valid tile.
type Tile struct {
	Kind   Kind
	Suit   Suit   // meaningful only when Kind == KindSimple
	Number uint8  // 1-9, meaningful only when Kind == KindSimple
	Wind   Wind   // meaningful only when Kind == KindWind
	Dragon Dragon // meaningful only when Kind == KindDragon
}

// Simple constructs a simple tile of the given suit and rank (1-9).
func Simple(suit Suit, number uint8) Tile {
	return Tile{Kind: KindSimple, Suit: suit, Number: number}
}

// FromWind constructs a wind-honor tile.
func FromWind(w Wind) Tile {
	return Tile{Kind: KindWind, Wind: w}
}

// FromDragon constructs a dragon-honor tile.
func FromDragon(d Dragon) Tile {
	return Tile{Kind: KindDragon, Dragon: d}
}

// IsHonor reports whether t is a wind or dragon tile.
func (t Tile) IsHonor() bool {
	return t.Kind != KindSimple
}

func (t Tile) String() string {
	switch t.Kind {
	case KindSimple:
		return fmt.Sprintf("%s%d", t.Suit, t.Number)
	case KindWind:
		return t.Wind.String()
	case KindDragon:
		return t.Dragon.String()
	default:
		return "Unknown"
	}
}

// value returns an ordering key used only to pick a deterministic, stable
// representative among logically-equivalent tiles (e.g. when sorting chow
// candidates for find_possible_calls). It has no meaning outside this
// package: simples sort before dragons, which sort before winds, matching
// the order in which the canonical tileset is generated.
func (t Tile) value() [3]int {
	switch t.Kind {
	case KindSimple:
		return [3]int{0, int(t.Suit), int(t.Number)}
	case KindDragon:
		return [3]int{1, int(t.Dragon), 0}
	case KindWind:
		return [3]int{2, int(t.Wind), 0}
	default:
		return [3]int{3, 0, 0}
	}
}

// Less gives Tile a deterministic total order, used to canonicalize an
// unordered pair before deduplicating chow candidates with equal value.
func Less(a, b Tile) bool {
	av, bv := a.value(), b.value()
	return av[0] < bv[0] || (av[0] == bv[0] && (av[1] < bv[1] || (av[1] == bv[1] && av[2] < bv[2])))
}

// IsChow reports whether the three tiles form a valid chow: three simple
// tiles of the same suit whose ranks are, in some order, n, n+1, n+2. Any
// honor tile among the three makes it false.
func IsChow(a, b, c Tile) bool {
	if a.Kind != KindSimple || b.Kind != KindSimple || c.Kind != KindSimple {
		return false
	}
	if a.Suit != b.Suit || b.Suit != c.Suit {
		return false
	}
	ranks := []int{int(a.Number), int(b.Number), int(c.Number)}
	sortInts3(ranks)
	return ranks[1] == ranks[0]+1 && ranks[2] == ranks[0]+2
}

func sortInts3(v []int) {
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1] > v[2] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
}

// Id uniquely identifies one of the 136 physical tiles for the duration of a
// match. Ids are assigned once, at tileset generation, and never reused.
type Id uint8

// Instance pairs a stable Id with its face value. It should be treated as a
// value moved between collections, never duplicated: the same Id appearing
// in two places at once is a conservation bug.
type Instance struct {
	Id   Id
	Tile Tile
}
