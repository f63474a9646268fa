package tile

// Wind names a seat, and doubles as the round wind. Turn order follows the
// cyclic order East -> South -> West -> North -> East.
type Wind uint8

const (
	East Wind = iota
	South
	West
	North
)

var windNames = [4]string{"East", "South", "West", "North"}

func (w Wind) String() string {
	if int(w) >= len(windNames) {
		return "Unknown"
	}
	return windNames[w]
}

// Next returns the seat that plays after w.
func (w Wind) Next() Wind {
	return (w + 1) % 4
}

// DistanceTo returns the number of turns it takes to go from w to other,
// moving through Next(). DistanceTo(w) is 0.
func (w Wind) DistanceTo(other Wind) int {
	return int((other + 4 - w) % 4)
}

// Winds lists all four seats in turn order, starting from East.
func Winds() [4]Wind {
	return [4]Wind{East, South, West, North}
}
