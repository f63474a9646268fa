package controller

import (
	"fmt"

	"github.com/lamyinia/mahjongmatch/internal/hand"
	"github.com/lamyinia/mahjongmatch/internal/match"
	"github.com/lamyinia/mahjongmatch/internal/protocol"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// StartMatchResponse reports whether the join completed the table of four,
// so that dealing and the first draw have been scheduled on the command
// loop.
type StartMatchResponse struct {
	Started bool
}

// DiscardTileResponse reports, from the discarder's perspective, who (if
// anyone) is now waiting on a call decision.
type DiscardTileResponse struct {
	Waiting map[tile.Wind][]hand.Call
}

// MatchController is the actor owning one match.State. All operations are
// processed one at a time on an internal command loop, so the state never
// needs its own lock; a self-proxy send (see join) lets the controller
// defer work onto its own queue instead of recursing inline.
type MatchController struct {
	id   uint32
	cmds chan func()
	done chan struct{}

	// state, seats, and started are only ever touched from the loop
	// goroutine, never concurrently; no lock is needed around them.
	state   *match.State
	seats   map[tile.Wind]ClientSink
	started bool

	// onEnded, if set, is invoked once with the match's outcome when play
	// concludes, letting a hub persist the record without this package
	// depending on a storage layer.
	onEnded func(winner *tile.Wind)
}

// NewMatchController creates a controller for a not-yet-started match and
// starts its command loop.
func NewMatchController(id uint32) *MatchController {
	c := &MatchController{
		id:    id,
		cmds:  make(chan func(), 16),
		done:  make(chan struct{}),
		seats: make(map[tile.Wind]ClientSink, 4),
	}
	go c.loop()
	return c
}

func (c *MatchController) loop() {
	for {
		select {
		case fn := <-c.cmds:
			fn()
		case <-c.done:
			return
		}
	}
}

// ID returns the match id this controller owns.
func (c *MatchController) ID() uint32 {
	return c.id
}

// OpenSeat returns the first wind with no sink joined yet, if any.
func (c *MatchController) OpenSeat() (tile.Wind, bool) {
	var seat tile.Wind
	found := false

	c.run(func() {
		for _, w := range tile.Winds() {
			if _, taken := c.seats[w]; !taken {
				seat, found = w, true
				return
			}
		}
	})

	return seat, found
}

// Stop terminates the command loop. No further operations may be issued
// afterward.
func (c *MatchController) Stop() {
	close(c.done)
}

// OnEnded registers fn to be called once, from the loop goroutine, when the
// match concludes. Only an exhaustive draw (an empty wall) ends a match, so
// fn always receives a nil winner. Must be called before the match starts.
func (c *MatchController) OnEnded(fn func(winner *tile.Wind)) {
	c.run(func() { c.onEnded = fn })
}

// run submits fn to the command loop and blocks until it has executed,
// giving every exported operation serialized access to controller state
// without an explicit lock around the match itself.
func (c *MatchController) run(fn func()) {
	result := make(chan struct{})
	c.cmds <- func() {
		fn()
		close(result)
	}
	<-result
}

// deferSelf submits fn to run later on the command loop without waiting
// for it, the self-proxy capability Join uses to trigger the deferred
// start_match once the table fills.
func (c *MatchController) deferSelf(fn func()) {
	c.cmds <- fn
}

// Join seats sink at seat. Once all four seats have joined, the match is
// dealt and the first draw is issued via a deferred self-send rather than
// inline, so Join itself never blocks on dealing or broadcasting.
func (c *MatchController) Join(seat tile.Wind, sink ClientSink) (StartMatchResponse, error) {
	var resp StartMatchResponse
	var joinErr error

	c.run(func() {
		if _, exists := c.seats[seat]; exists {
			joinErr = fmt.Errorf("controller: seat %s already joined", seat)
			return
		}
		c.seats[seat] = sink

		if len(c.seats) == 4 && !c.started {
			c.started = true
			c.deferSelf(c.startMatch)
		}
		resp.Started = c.started
	})

	return resp, joinErr
}

// startMatch deals the table and delivers each seat its own initial
// LocalState snapshot before any event is broadcast, then draws for the
// first seat. Sending the snapshot directly to each sink (rather than as
// an event) keeps protocol.MatchEvent free of a dependency on localstate.
func (c *MatchController) startMatch() {
	c.state = match.New(c.id)

	for seat, sink := range c.seats {
		sink.SendSnapshot(c.state.LocalStateForPlayer(seat))
	}

	c.drawAndBroadcast(c.state.Turn().Seat)
}

// drawAndBroadcast performs one draw for seat and fans the resulting
// event out to every seat: LocalDraw to the drawer, RemoteDraw to
// everyone else, or MatchEndedEvent to all if the wall is now empty.
func (c *MatchController) drawAndBroadcast(seat tile.Wind) {
	id, ok, err := c.state.DrawForPlayer(seat)

	if err != nil {
		return
	}
	if !ok {
		c.broadcast(func(tile.Wind) protocol.MatchEvent { return protocol.MatchEndedEvent{Winner: nil} })
		if c.onEnded != nil {
			c.onEnded(nil)
		}
		return
	}

	c.broadcast(func(q tile.Wind) protocol.MatchEvent {
		if q == seat {
			return protocol.LocalDraw{Seat: seat, Tile: id}
		}
		return protocol.RemoteDraw{Seat: seat}
	})
}

// DiscardTile discards id from seat's hand. If no seat can call it, the
// controller immediately draws for the next seat and broadcasts that too,
// matching the direct AwaitingDraw transition match.State performs.
func (c *MatchController) DiscardTile(seat tile.Wind, id tile.Id) (DiscardTileResponse, error) {
	var resp DiscardTileResponse
	var opErr error

	c.run(func() {
		waiting, err := c.state.DiscardTile(seat, id)
		if err != nil {
			opErr = err
			return
		}
		resp.Waiting = waiting

		c.broadcast(func(q tile.Wind) protocol.MatchEvent {
			return protocol.TileDiscarded{Seat: seat, Tile: id, Calls: waiting[q]}
		})

		if len(waiting) == 0 {
			c.deferSelf(func() { c.drawAndBroadcast(seat.Next()) })
		}
	})

	return resp, opErr
}

// CallTile records seat's decision on the pending discard (pass if call is
// nil). Once every waiting seat has responded, the controller resolves the
// decision, broadcasts the outcome, and issues the next draw.
func (c *MatchController) CallTile(seat tile.Wind, call *hand.Call) error {
	var opErr error

	c.run(func() {
		done, err := c.state.RequestCall(seat, call)
		if err != nil {
			opErr = err
			return
		}
		if !done {
			return
		}

		discardingPlayer := c.state.Turn().DiscardingPlayer
		discardedTile := c.state.Turn().Discard

		winner, winningCall, won, err := c.state.DecideCall()
		if err != nil {
			opErr = err
			return
		}

		if !won {
			c.broadcast(func(tile.Wind) protocol.MatchEvent { return protocol.PassEvent{} })
			c.deferSelf(func() { c.drawAndBroadcast(discardingPlayer.Next()) })
			return
		}

		finalCall := protocol.FinalCall{
			Caller:      winner,
			CalledFrom:  discardingPlayer,
			Discard:     discardedTile,
			WinningCall: winningCall,
		}
		c.broadcast(func(tile.Wind) protocol.MatchEvent { return protocol.CallEvent{FinalCall: finalCall} })
		c.deferSelf(func() { c.drawAndBroadcast(winner.Next()) })
	})

	return opErr
}

// broadcast sends build(seat)'s result to every joined seat's sink.
func (c *MatchController) broadcast(build func(seat tile.Wind) protocol.MatchEvent) {
	for seat, sink := range c.seats {
		sink.SendEvent(build(seat))
	}
}
