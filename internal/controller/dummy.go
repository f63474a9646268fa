package controller

import (
	"github.com/lamyinia/mahjongmatch/internal/localstate"
	"github.com/lamyinia/mahjongmatch/internal/protocol"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// DummyClient is a non-interactive stand-in for a real connection: it
// keeps its own LocalState in sync with every event it receives and
// reacts with a fixed policy, discarding its own current draw and taking
// the first offered call. It is used to fill out a match in tests; nothing
// in this package seats one in place of a disconnected player.
type DummyClient struct {
	Seat  tile.Wind
	Local *localstate.State
	Send  func(protocol.ClientRequest)
}

// NewDummyClient builds a DummyClient for seat, submitting requests
// through send. It has no LocalState until the controller delivers its
// initial snapshot.
func NewDummyClient(seat tile.Wind, send func(protocol.ClientRequest)) *DummyClient {
	return &DummyClient{Seat: seat, Send: send}
}

// SendSnapshot implements ClientSink: it adopts s as the dummy's local
// projection, replacing whatever (if anything) it had before.
func (d *DummyClient) SendSnapshot(s *localstate.State) error {
	d.Local = s
	return nil
}

// SendEvent implements ClientSink: it replays ev into the local
// projection, then reacts according to the dummy's fixed policy.
func (d *DummyClient) SendEvent(ev protocol.MatchEvent) error {
	if err := d.Local.ApplyEvent(ev); err != nil {
		return err
	}

	switch d.Local.Turn.Kind {
	case localstate.AwaitingDiscard:
		if d.Local.Turn.Seat != d.Seat {
			return nil
		}
		lh := d.Local.Players[d.Seat]
		draw := lh.Local.CurrentDraw()
		if draw == nil {
			return nil
		}
		d.Send(protocol.DiscardTileRequest{Tile: draw.Id})

	case localstate.AwaitingCalls:
		if len(d.Local.Turn.Calls) == 0 {
			d.Send(protocol.CallTileRequest{Call: nil})
			return nil
		}
		choice := d.Local.Turn.Calls[0]
		d.Send(protocol.CallTileRequest{Call: &choice})
	}

	return nil
}

var _ ClientSink = (*DummyClient)(nil)
