// Package controller implements MatchController, the actor that owns one
// match.State and drives it from client requests: joining players,
// starting the match, and sequencing draw/discard/call operations. It
// fans events out to each seat's ClientSink without caring whether that
// sink is a live network connection or a local decision-making bot.
package controller

import (
	"github.com/lamyinia/mahjongmatch/internal/localstate"
	"github.com/lamyinia/mahjongmatch/internal/protocol"
)

// ClientSink is the capability a controller needs to talk to a seat: hand
// it its initial snapshot once dealing completes, then push it events
// afterward. A real client implements this over a transport.Sink (see
// internal/transport); a DummyClient implements it by reacting
// synchronously. The controller never distinguishes the two, matching a
// dynamic-dispatch-over-one-capability shape rather than an interface
// hierarchy of client types.
type ClientSink interface {
	SendSnapshot(s *localstate.State) error
	SendEvent(ev protocol.MatchEvent) error
}

// FuncSink adapts two plain functions to ClientSink.
type FuncSink struct {
	OnSnapshot func(s *localstate.State) error
	OnEvent    func(ev protocol.MatchEvent) error
}

func (f FuncSink) SendSnapshot(s *localstate.State) error {
	if f.OnSnapshot == nil {
		return nil
	}
	return f.OnSnapshot(s)
}

func (f FuncSink) SendEvent(ev protocol.MatchEvent) error {
	if f.OnEvent == nil {
		return nil
	}
	return f.OnEvent(ev)
}
