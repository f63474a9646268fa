package controller_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lamyinia/mahjongmatch/internal/controller"
	"github.com/lamyinia/mahjongmatch/internal/protocol"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// wiredDummy bridges a DummyClient's outgoing requests back into the
// controller for the same seat, so four dummies alone can drive a match
// to completion without a real transport.
type wiredDummy struct {
	seat tile.Wind
	ctl  *controller.MatchController
	*controller.DummyClient
}

func newWiredDummy(seat tile.Wind, ctl *controller.MatchController) *wiredDummy {
	w := &wiredDummy{seat: seat, ctl: ctl}
	w.DummyClient = controller.NewDummyClient(seat, w.submit)
	return w
}

// submit hands req back from a separate goroutine: the controller calls
// SendEvent from its command loop, and its operations block until that
// loop runs them.
func (w *wiredDummy) submit(req protocol.ClientRequest) {
	go func() {
		switch r := req.(type) {
		case protocol.DiscardTileRequest:
			_, _ = w.ctl.DiscardTile(w.seat, r.Tile)
		case protocol.CallTileRequest:
			_ = w.ctl.CallTile(w.seat, r.Call)
		}
	}()
}

func TestFourDummiesPlayToCompletion(t *testing.T) {
	ctl := controller.NewMatchController(1)
	defer ctl.Stop()

	var mu sync.Mutex
	ended := false

	seats := tile.Winds()
	dummies := make(map[tile.Wind]*wiredDummy, 4)
	for _, seat := range seats {
		dummies[seat] = newWiredDummy(seat, ctl)
	}

	for _, seat := range seats {
		d := dummies[seat]
		wrapped := controller.FuncSink{
			OnSnapshot: d.SendSnapshot,
			OnEvent: func(ev protocol.MatchEvent) error {
				if _, ok := ev.(protocol.MatchEndedEvent); ok {
					mu.Lock()
					ended = true
					mu.Unlock()
				}
				return d.SendEvent(ev)
			},
		}
		_, err := ctl.Join(seat, wrapped)
		require.NoError(t, err)
	}

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		done := ended
		mu.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("match did not reach MatchEnded in time")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestJoinRejectsDuplicateSeat(t *testing.T) {
	ctl := controller.NewMatchController(2)
	defer ctl.Stop()

	noop := controller.FuncSink{}
	_, err := ctl.Join(tile.East, noop)
	require.NoError(t, err)

	_, err = ctl.Join(tile.East, noop)
	require.Error(t, err)
}
