// Package adminhttp exposes a small gin-gonic admin surface over a running
// matchserver node: health checks, live match stats, and a player's match
// history, following the route/response shape of the teacher's common/http
// package (unified {code, message, data} envelope, Recovery+Logger
// middleware) but wired directly against gin rather than through that
// package's HandlerFunc indirection, since this node needs only a handful
// of read-only routes.
package adminhttp

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lamyinia/mahjongmatch/internal/controller"
	"github.com/lamyinia/mahjongmatch/internal/logging"
	"github.com/lamyinia/mahjongmatch/internal/persistence"
)

// response mirrors the teacher's unified HTTP envelope.
type response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, response{Message: "success", Data: data})
}

func failure(c *gin.Context, code int, message string) {
	c.JSON(code, response{Code: code, Message: message})
}

// Server wraps the gin engine and its http.Server for graceful shutdown.
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New builds the admin engine over hub and store. store may be nil, in
// which case the history route reports it's unavailable rather than
// panicking, so a node can run without mongo configured in dev.
func New(hub *controller.Hub, store *persistence.Store) *Server {
	engine := gin.New()
	engine.Use(loggerMiddleware(), gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		success(c, gin.H{"status": "ok"})
	})

	engine.GET("/stats", func(c *gin.Context) {
		matches, players := hub.Stats()
		success(c, gin.H{"matches": matches, "players": players})
	})

	engine.GET("/players/:id/history", func(c *gin.Context) {
		if store == nil {
			failure(c, http.StatusServiceUnavailable, "match history store not configured")
			return
		}
		userID := c.Param("id")
		limit := int64(20)
		records, err := store.MatchHistory(c.Request.Context(), userID, limit)
		if err != nil {
			failure(c, http.StatusInternalServerError, err.Error())
			return
		}
		success(c, records)
	})

	return &Server{engine: engine}
}

func loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Info("adminhttp: %s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Run starts the admin server listening on addr; it blocks until the
// server stops or fails.
func (s *Server) Run(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.engine}
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the admin server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
