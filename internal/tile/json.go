package tile

import (
	"encoding/json"
	"fmt"
)

type wireTile struct {
	Kind   string `json:"kind"`
	Suit   string `json:"suit,omitempty"`
	Number uint8  `json:"number,omitempty"`
	Wind   string `json:"wind,omitempty"`
	Dragon string `json:"dragon,omitempty"`
}

// MarshalJSON encodes Tile as a small tagged object rather than the raw
// struct, so the wire form doesn't leak the unused zero fields of the
// in-memory representation.
func (t Tile) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case KindSimple:
		return json.Marshal(wireTile{Kind: "Simple", Suit: t.Suit.String(), Number: t.Number})
	case KindWind:
		return json.Marshal(wireTile{Kind: "Wind", Wind: t.Wind.String()})
	case KindDragon:
		return json.Marshal(wireTile{Kind: "Dragon", Dragon: t.Dragon.String()})
	default:
		return nil, fmt.Errorf("tile: unknown kind %d", t.Kind)
	}
}

func (t *Tile) UnmarshalJSON(data []byte) error {
	var w wireTile
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "Simple":
		suit, err := parseSuit(w.Suit)
		if err != nil {
			return err
		}
		*t = Simple(suit, w.Number)
	case "Wind":
		wind, err := parseWind(w.Wind)
		if err != nil {
			return err
		}
		*t = FromWind(wind)
	case "Dragon":
		dragon, err := parseDragon(w.Dragon)
		if err != nil {
			return err
		}
		*t = FromDragon(dragon)
	default:
		return fmt.Errorf("tile: unknown kind %q", w.Kind)
	}
	return nil
}

func parseSuit(s string) (Suit, error) {
	for i, name := range suitNames {
		if name == s {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("tile: unknown suit %q", s)
}

func parseWind(s string) (Wind, error) {
	for i, name := range windNames {
		if name == s {
			return Wind(i), nil
		}
	}
	return 0, fmt.Errorf("tile: unknown wind %q", s)
}

func parseDragon(s string) (Dragon, error) {
	for i, name := range dragonNames {
		if name == s {
			return Dragon(i), nil
		}
	}
	return 0, fmt.Errorf("tile: unknown dragon %q", s)
}

func (w Wind) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Wind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseWind(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
