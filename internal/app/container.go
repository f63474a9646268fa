// Package app wires matchserver's dependencies together and runs its
// process lifecycle, grounded on the teacher's core/container
// (BaseContainer + per-node container embedding it) and march/app.Run
// (grpc/http listeners, etcd registration, NATS worker, signal-driven
// graceful shutdown).
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lamyinia/mahjongmatch/internal/accountrpc"
	"github.com/lamyinia/mahjongmatch/internal/busclient"
	"github.com/lamyinia/mahjongmatch/internal/cache"
	"github.com/lamyinia/mahjongmatch/internal/config"
	"github.com/lamyinia/mahjongmatch/internal/controller"
	"github.com/lamyinia/mahjongmatch/internal/discovery"
	"github.com/lamyinia/mahjongmatch/internal/logging"
	"github.com/lamyinia/mahjongmatch/internal/monitor"
	"github.com/lamyinia/mahjongmatch/internal/persistence"
)

// Container owns every shared dependency a running matchserver node needs,
// the way BaseContainer owns the teacher's shared mongo/redis handles.
type Container struct {
	NodeID string

	Local    *cache.Local
	Redis    *cache.Redis
	Store    *persistence.Store
	Registry *discovery.Registry
	Hub      *controller.Hub
	Monitor  *monitor.Monitor
	Accounts *accountrpc.Directory
	Bus      *busclient.Client

	mu     sync.Mutex
	closed bool
}

// NewContainer connects every configured dependency, failing fast (the
// teacher's connect-or-fatal startup pattern) so a misconfigured node
// never serves traffic half-wired.
func NewContainer(conf config.Config) (*Container, error) {
	local, err := cache.NewLocal(5 * time.Minute)
	if err != nil {
		return nil, fmt.Errorf("app: local cache: %w", err)
	}

	redis, err := cache.NewRedis(conf.Database.Redis)
	if err != nil {
		return nil, fmt.Errorf("app: redis: %w", err)
	}

	store, err := persistence.NewStore(conf.Database.Mongo)
	if err != nil {
		return nil, fmt.Errorf("app: mongo: %w", err)
	}

	registry, err := discovery.Register(conf.EtcdConf, discovery.Node{
		NodeID: conf.ID,
		Addr:   conf.EtcdConf.Register.Addr,
	})
	if err != nil {
		return nil, fmt.Errorf("app: etcd registration: %w", err)
	}

	bus, err := busclient.Connect(conf.NatsConf.URL)
	if err != nil {
		return nil, fmt.Errorf("app: nats: %w", err)
	}

	hub := controller.NewHub()
	mon := monitor.New(hub, registry, 10*time.Second)

	return &Container{
		NodeID:   conf.ID,
		Local:    local,
		Redis:    redis,
		Store:    store,
		Registry: registry,
		Hub:      hub,
		Monitor:  mon,
		Accounts: accountrpc.NewDirectory(),
		Bus:      bus,
	}, nil
}

// Close stops the monitor and the etcd registration, then closes mongo,
// redis, nats and the local cache. Idempotent.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	c.Monitor.Stop()
	c.Registry.Close()

	var errs []error
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Store.Close(closeCtx); err != nil {
		errs = append(errs, err)
	}
	if err := c.Redis.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Bus.Close(); err != nil {
		errs = append(errs, err)
	}
	c.Local.Close()

	if len(errs) > 0 {
		logging.Error("app: %d error(s) closing container", len(errs))
		return errs[0]
	}
	return nil
}
