// Package protocol defines the request/event taxonomy that bridges the
// match controller and its clients: the wire-level JSON shapes, and
// encode/decode helpers for the single text-frame envelope each message
// travels in. It has no knowledge of MatchState or LocalState; it is pure
// data plus (de)serialization.
package protocol

import (
	"github.com/lamyinia/mahjongmatch/internal/hand"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// EventKind tags which concrete MatchEvent an envelope carries.
type EventKind string

const (
	EventLocalDraw      EventKind = "LocalDraw"
	EventRemoteDraw     EventKind = "RemoteDraw"
	EventTileDiscarded  EventKind = "TileDiscarded"
	EventCall           EventKind = "Call"
	EventPass           EventKind = "Pass"
	EventMatchEnded     EventKind = "MatchEnded"
)

// MatchEvent is any event the controller can send a client.
type MatchEvent interface {
	EventKind() EventKind
}

// LocalDraw is sent only to the seat that drew tile.
type LocalDraw struct {
	Seat tile.Wind `json:"seat"`
	Tile tile.Id   `json:"tile"`
}

func (LocalDraw) EventKind() EventKind { return EventLocalDraw }

// RemoteDraw is sent to every seat other than the one that drew.
type RemoteDraw struct {
	Seat tile.Wind `json:"seat"`
}

func (RemoteDraw) EventKind() EventKind { return EventRemoteDraw }

// TileDiscarded is sent to every seat. Calls is that recipient's own
// permitted calls on this discard -- never another seat's.
type TileDiscarded struct {
	Seat  tile.Wind   `json:"seat"`
	Tile  tile.Id     `json:"tile"`
	Calls []hand.Call `json:"calls"`
}

func (TileDiscarded) EventKind() EventKind { return EventTileDiscarded }

// FinalCall describes the call that won an AwaitingCalls decision.
type FinalCall struct {
	Caller      tile.Wind `json:"caller"`
	CalledFrom  tile.Wind `json:"called_from"`
	Discard     tile.Id   `json:"discard"`
	WinningCall hand.Call `json:"winning_call"`
}

// CallEvent broadcasts the winning call from an AwaitingCalls decision.
type CallEvent struct {
	FinalCall FinalCall `json:"final_call"`
}

func (CallEvent) EventKind() EventKind { return EventCall }

// PassEvent broadcasts that every seat passed on a discard.
type PassEvent struct{}

func (PassEvent) EventKind() EventKind { return EventPass }

// MatchEndedEvent broadcasts that the match is over. Winner is nil for an
// exhaustive draw; scoring a Ron/Tsumo win is out of scope for the core.
type MatchEndedEvent struct {
	Winner *tile.Wind `json:"winner,omitempty"`
}

func (MatchEndedEvent) EventKind() EventKind { return EventMatchEnded }
