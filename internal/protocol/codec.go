package protocol

import (
	"encoding/json"
	"fmt"
)

// envelope is the single wire shape every request and event travels in: a
// kind tag plus its raw payload, so a client can dispatch on Kind before
// unmarshaling the body into the concrete type.
type envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// EncodeRequest serializes a ClientRequest into its wire envelope.
func EncodeRequest(req ClientRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode request: %w", err)
	}
	return json.Marshal(envelope{Kind: string(req.RequestKind()), Payload: payload})
}

// DecodeRequest parses a wire envelope into its concrete ClientRequest.
func DecodeRequest(data []byte) (ClientRequest, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("protocol: decode envelope: %w", err)
	}

	switch RequestKind(env.Kind) {
	case RequestStartMatch:
		var r StartMatchRequest
		return r, nil
	case RequestDiscardTile:
		var r DiscardTileRequest
		if err := json.Unmarshal(env.Payload, &r); err != nil {
			return nil, fmt.Errorf("protocol: decode DiscardTileRequest: %w", err)
		}
		return r, nil
	case RequestCallTile:
		var r CallTileRequest
		if err := json.Unmarshal(env.Payload, &r); err != nil {
			return nil, fmt.Errorf("protocol: decode CallTileRequest: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("protocol: unknown request kind %q", env.Kind)
	}
}

// EncodeEvent serializes a MatchEvent into its wire envelope.
func EncodeEvent(ev MatchEvent) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode event: %w", err)
	}
	return json.Marshal(envelope{Kind: string(ev.EventKind()), Payload: payload})
}

// DecodeEvent parses a wire envelope into its concrete MatchEvent.
func DecodeEvent(data []byte) (MatchEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("protocol: decode envelope: %w", err)
	}

	switch EventKind(env.Kind) {
	case EventLocalDraw:
		var e LocalDraw
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, fmt.Errorf("protocol: decode LocalDraw: %w", err)
		}
		return e, nil
	case EventRemoteDraw:
		var e RemoteDraw
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, fmt.Errorf("protocol: decode RemoteDraw: %w", err)
		}
		return e, nil
	case EventTileDiscarded:
		var e TileDiscarded
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, fmt.Errorf("protocol: decode TileDiscarded: %w", err)
		}
		return e, nil
	case EventCall:
		var e CallEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, fmt.Errorf("protocol: decode CallEvent: %w", err)
		}
		return e, nil
	case EventPass:
		return PassEvent{}, nil
	case EventMatchEnded:
		var e MatchEndedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, fmt.Errorf("protocol: decode MatchEndedEvent: %w", err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("protocol: unknown event kind %q", env.Kind)
	}
}
