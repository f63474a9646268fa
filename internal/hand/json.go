package hand

import (
	"encoding/json"
	"fmt"

	"github.com/lamyinia/mahjongmatch/internal/tile"
)

type wireCall struct {
	Kind string    `json:"kind"`
	A    tile.Id   `json:"a,omitempty"`
	B    tile.Id   `json:"b,omitempty"`
	Tile *tile.Tile `json:"tile,omitempty"`
}

func (c Call) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case Chii:
		return json.Marshal(wireCall{Kind: "Chii", A: c.A, B: c.B})
	case Pon:
		return json.Marshal(wireCall{Kind: "Pon", A: c.A, B: c.B})
	case Kan:
		return json.Marshal(wireCall{Kind: "Kan", Tile: &c.Tile})
	case Ron:
		return json.Marshal(wireCall{Kind: "Ron"})
	default:
		return nil, fmt.Errorf("call: unknown kind %v", c.Kind)
	}
}

func (c *Call) UnmarshalJSON(data []byte) error {
	var w wireCall
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "Chii":
		*c = NewChii(w.A, w.B)
	case "Pon":
		*c = NewPon(w.A, w.B)
	case "Kan":
		if w.Tile == nil {
			return fmt.Errorf("call: kan missing tile")
		}
		*c = NewKan(*w.Tile)
	case "Ron":
		*c = NewRon()
	default:
		return fmt.Errorf("call: unknown kind %q", w.Kind)
	}
	return nil
}
