package localstate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lamyinia/mahjongmatch/internal/hand"
	"github.com/lamyinia/mahjongmatch/internal/localstate"
	"github.com/lamyinia/mahjongmatch/internal/match"
	"github.com/lamyinia/mahjongmatch/internal/protocol"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

func TestProjectionHidesOtherSeatsTiles(t *testing.T) {
	m := match.NewSeeded(1, 99)
	ls := m.LocalStateForPlayer(tile.East)

	require.True(t, ls.Players[tile.East].IsLocal)
	require.NotNil(t, ls.Players[tile.East].Local)

	for _, seat := range []tile.Wind{tile.South, tile.West, tile.North} {
		lh := ls.Players[seat]
		require.False(t, lh.IsLocal)
		require.NotNil(t, lh.Remote)
		require.Equal(t, 13, lh.Remote.Tiles)
		require.Empty(t, lh.Remote.Discards)
	}
}

func TestApplyLocalDrawThenDiscardMatchesServer(t *testing.T) {
	m := match.NewSeeded(2, 7)
	ls := m.LocalStateForPlayer(tile.East)

	id, ok, err := m.DrawForPlayer(tile.East)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, ls.ApplyEvent(protocol.LocalDraw{Seat: tile.East, Tile: id}))
	require.Equal(t, localstate.AwaitingDiscard, ls.Turn.Kind)
	require.NotNil(t, ls.Players[tile.East].Local.CurrentDraw())

	waiting, err := m.DiscardTile(tile.East, id)
	require.NoError(t, err)

	calls := waiting[tile.South]
	require.NoError(t, ls.ApplyEvent(protocol.TileDiscarded{Seat: tile.East, Tile: id, Calls: calls}))

	if len(calls) == 0 {
		require.Equal(t, localstate.AwaitingDraw, ls.Turn.Kind)
		require.Equal(t, tile.South, ls.Turn.Seat)
	} else {
		require.Equal(t, localstate.AwaitingCalls, ls.Turn.Kind)
	}
}

func TestApplyRemoteDrawMarksHasCurrentDraw(t *testing.T) {
	m := match.NewSeeded(3, 123)
	ls := m.LocalStateForPlayer(tile.East)

	require.NoError(t, ls.ApplyEvent(protocol.RemoteDraw{Seat: tile.South}))
	require.True(t, ls.Players[tile.South].Remote.HasCurrentDraw)
	require.Equal(t, localstate.AwaitingDiscard, ls.Turn.Kind)
}

func TestApplyPassAdvancesToNextSeat(t *testing.T) {
	m := match.NewSeeded(4, 55)
	ls := m.LocalStateForPlayer(tile.East)
	ls.Turn = localstate.Turn{Kind: localstate.AwaitingCalls, DiscardingPlayer: tile.East}

	require.NoError(t, ls.ApplyEvent(protocol.PassEvent{}))
	require.Equal(t, localstate.AwaitingDraw, ls.Turn.Kind)
	require.Equal(t, tile.South, ls.Turn.Seat)
}

func TestApplyMatchEndedSetsWinner(t *testing.T) {
	m := match.NewSeeded(5, 11)
	ls := m.LocalStateForPlayer(tile.East)

	winner := tile.North
	require.NoError(t, ls.ApplyEvent(protocol.MatchEndedEvent{Winner: &winner}))
	require.Equal(t, localstate.MatchEnded, ls.Turn.Kind)
	require.Equal(t, &winner, ls.Turn.Winner)
}

func TestApplyCallEventUpdatesRemoteHandMelds(t *testing.T) {
	m := match.NewSeeded(6, 321)
	ls := m.LocalStateForPlayer(tile.East)

	call := hand.NewChii(10, 11)
	fc := protocol.FinalCall{Caller: tile.South, CalledFrom: tile.West, Discard: 20, WinningCall: call}
	require.NoError(t, ls.ApplyEvent(protocol.CallEvent{FinalCall: fc}))

	remote := ls.Players[tile.South].Remote
	require.Len(t, remote.OpenChows, 1)
	require.Equal(t, 11, remote.Tiles)
	require.Equal(t, localstate.AwaitingDraw, ls.Turn.Kind)
	require.Equal(t, tile.West, ls.Turn.Seat)
}
