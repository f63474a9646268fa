// Package busclient publishes match lifecycle events onto a shared NATS
// subject, the way the teacher's framework/node.NatsClient lets one
// service fan events out to others (hall, gate) without a direct
// dependency between them.
package busclient

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/lamyinia/mahjongmatch/internal/logging"
)

// MatchConcludedSubject is the subject a match-concluded event is
// published on; any interested service (a hall tallying results, a
// player-stats worker) subscribes to it independently of this node.
const MatchConcludedSubject = "matchserver.match.concluded"

// MatchConcludedEvent is the payload published when a match ends.
type MatchConcludedEvent struct {
	MatchID uint32  `json:"matchId"`
	Winner  *string `json:"winner,omitempty"`
}

// Client wraps a single NATS connection used for outbound publication.
// Its zero value is not usable; construct with Connect.
type Client struct {
	conn *nats.Conn
}

// Connect dials url and returns a ready-to-publish Client.
func Connect(url string) (*Client, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("busclient: connect %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// PublishMatchConcluded encodes and publishes ev, logging rather than
// failing the caller on a publish error: a missed bus event should never
// take down the match that produced it.
func (c *Client) PublishMatchConcluded(ev MatchConcludedEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		logging.Error("busclient: encode match-concluded event: %v", err)
		return
	}
	if err := c.conn.Publish(MatchConcludedSubject, data); err != nil {
		logging.Error("busclient: publish match-concluded event: %v", err)
	}
}

// Close drains and closes the underlying connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Drain()
}
