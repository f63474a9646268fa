package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/arl/statsviz"
	"github.com/google/uuid"

	"github.com/lamyinia/mahjongmatch/internal/account"
	"github.com/lamyinia/mahjongmatch/internal/adminhttp"
	"github.com/lamyinia/mahjongmatch/internal/busclient"
	"github.com/lamyinia/mahjongmatch/internal/config"
	"github.com/lamyinia/mahjongmatch/internal/controller"
	"github.com/lamyinia/mahjongmatch/internal/logging"
	"github.com/lamyinia/mahjongmatch/internal/persistence"
	"github.com/lamyinia/mahjongmatch/internal/protocol"
	"github.com/lamyinia/mahjongmatch/internal/tile"
	"github.com/lamyinia/mahjongmatch/internal/transport"
)

// Run builds the container, starts every listener and background loop,
// and blocks until a termination signal arrives, at which point it tears
// everything down in reverse order. Mirrors the teacher's march/app.Run
// shape: build dependencies, launch goroutines, wait on signals, stop.
func Run(ctx context.Context) error {
	c, err := NewContainer(config.Conf)
	if err != nil {
		return fmt.Errorf("app: build container: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/join", joinHandler(c))

	wsServer := &http.Server{Addr: fmt.Sprintf(":%d", config.Conf.HttpPort), Handler: mux}
	go func() {
		logging.Info("app: websocket server listening on %s", wsServer.Addr)
		if serveErr := wsServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logging.Error("app: websocket server exited: %v", serveErr)
		}
	}()

	admin := adminhttp.New(c.Hub, c.Store)
	go func() {
		addr := fmt.Sprintf(":%d", config.Conf.MetricPort+1)
		logging.Info("app: admin http listening on %s", addr)
		if serveErr := admin.Run(addr); serveErr != nil && serveErr != http.ErrServerClosed {
			logging.Error("app: admin http exited: %v", serveErr)
		}
	}()

	debugMux := http.NewServeMux()
	if err := statsviz.Register(debugMux); err != nil {
		logging.Error("app: statsviz register: %v", err)
	}
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%d", config.Conf.MetricPort)
		logging.Info("app: debug stats at http://localhost:%d/debug/statsviz/", config.Conf.MetricPort)
		if serveErr := http.ListenAndServe(addr, debugMux); serveErr != nil {
			logging.Error("app: debug stats server exited: %v", serveErr)
		}
	}()

	go c.Monitor.Report(ctx)

	stop := func() {
		logging.Info("app: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		wsServer.Shutdown(shutdownCtx)
		admin.Shutdown(shutdownCtx)
		if err := c.Close(); err != nil {
			logging.Warn("app: container close: %v", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)

	select {
	case <-ctx.Done():
		stop()
		return nil
	case <-sigCh:
		stop()
		logging.Info("app: stopped on signal")
		return nil
	}
}

// joinHandler upgrades a websocket connection and seats it into a match
// once the client authenticates, allocating a fresh table when none is
// waiting for more players.
func joinHandler(c *Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		versionStr := r.URL.Query().Get("version")
		version, _ := strconv.Atoi(versionStr)

		handshake, err := account.Authenticate(token, version, config.Conf.JwtConf.Secret)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		conn, err := transport.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Error("app: websocket upgrade: %v", err)
			return
		}

		connID := uuid.NewString()
		sink := transport.NewSink(connID, conn)

		// match is assigned below; the onEnded closure only reads it once
		// the match concludes, long after JoinOpen has returned.
		var match *controller.MatchController
		m, seat, err := c.Hub.JoinOpen(sink, func(winner *tile.Wind) {
			recordMatch(c.Store, match.ID(), handshake.UserID, winner)
			publishMatchConcluded(c.Bus, match.ID(), winner)
		})
		if err != nil {
			logging.Error("app: join: %v", err)
			sink.Close()
			return
		}
		match = m

		sink.OnRequest = func(req protocol.ClientRequest) {
			switch r := req.(type) {
			case protocol.DiscardTileRequest:
				if _, err := match.DiscardTile(seat, r.Tile); err != nil {
					logging.Warn("app: discard from %s: %v", seat, err)
				}
			case protocol.CallTileRequest:
				if err := match.CallTile(seat, r.Call); err != nil {
					logging.Warn("app: call from %s: %v", seat, err)
				}
			}
		}

		c.Hub.RouteUser(handshake.UserID, match.ID())
	}
}

// recordMatch persists a minimal record of the match: the id, the
// requesting player's user id in their seat, and the outcome. A node that
// wants a full four-player roster in history would extend Hub to track
// seat-to-user assignments; this wiring only demonstrates the persistence
// path the controller's OnEnded hook exists for.
func recordMatch(store *persistence.Store, matchID uint32, userID string, winner *tile.Wind) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec := persistence.MatchRecord{
		MatchID: matchID,
		Players: [4]string{userID},
		Winner:  winner,
		EndedAt: time.Now(),
	}
	if err := store.SaveMatch(ctx, rec); err != nil {
		logging.Error("app: save match record: %v", err)
	}
}

// publishMatchConcluded fans the match's outcome out over the bus so any
// other service subscribed to busclient.MatchConcludedSubject (a hall
// tallying results, a stats worker) learns of it without this node
// depending on that service directly.
func publishMatchConcluded(bus *busclient.Client, matchID uint32, winner *tile.Wind) {
	var winnerStr *string
	if winner != nil {
		s := winner.String()
		winnerStr = &s
	}
	bus.PublishMatchConcluded(busclient.MatchConcludedEvent{
		MatchID: matchID,
		Winner:  winnerStr,
	})
}
