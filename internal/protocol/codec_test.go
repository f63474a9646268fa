package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lamyinia/mahjongmatch/internal/hand"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

func TestRequestRoundTrip(t *testing.T) {
	reqs := []ClientRequest{
		StartMatchRequest{},
		DiscardTileRequest{Tile: 42},
		CallTileRequest{Call: nil},
	}
	call := hand.NewChii(1, 2)
	reqs = append(reqs, CallTileRequest{Call: &call})

	for _, req := range reqs {
		data, err := EncodeRequest(req)
		require.NoError(t, err)

		decoded, err := DecodeRequest(data)
		require.NoError(t, err)
		require.Equal(t, req.RequestKind(), decoded.RequestKind())
	}
}

func TestEventRoundTrip(t *testing.T) {
	winner := tile.South
	events := []MatchEvent{
		LocalDraw{Seat: tile.East, Tile: 5},
		RemoteDraw{Seat: tile.South},
		TileDiscarded{Seat: tile.West, Tile: 9, Calls: []hand.Call{hand.NewPon(1, 2)}},
		CallEvent{FinalCall: FinalCall{Caller: tile.North, CalledFrom: tile.East, Discard: 3, WinningCall: hand.NewRon()}},
		PassEvent{},
		MatchEndedEvent{Winner: &winner},
		MatchEndedEvent{Winner: nil},
	}

	for _, ev := range events {
		data, err := EncodeEvent(ev)
		require.NoError(t, err)

		decoded, err := DecodeEvent(data)
		require.NoError(t, err)
		require.Equal(t, ev.EventKind(), decoded.EventKind())
	}
}

func TestDecodeEventRejectsUnknownKind(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"kind":"Bogus","payload":{}}`))
	require.Error(t, err)
}
