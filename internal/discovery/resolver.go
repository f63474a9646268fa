package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"google.golang.org/grpc/resolver"

	"github.com/lamyinia/mahjongmatch/internal/config"
	"github.com/lamyinia/mahjongmatch/internal/logging"
)

// Resolver implements grpc/resolver.Builder over etcd, so a grpc client
// can dial "etcd:///<domain>" and have it resolved to every matchserver
// node registered under that domain, following the teacher's
// common/discovery resolver.
type Resolver struct {
	conf       config.EtcdConf
	cli        *clientv3.Client
	key        string
	clientConn resolver.ClientConn
	addrs      []resolver.Address
	closeCh    chan struct{}
}

// NewResolver creates a resolver builder bound to conf; register it with
// resolver.Register before dialing an "etcd://" target.
func NewResolver(conf config.EtcdConf) *Resolver {
	return &Resolver{conf: conf}
}

func (r *Resolver) Scheme() string { return "etcd" }

// Build is invoked by grpc.NewClient for each "etcd://" target.
func (r *Resolver) Build(target resolver.Target, cc resolver.ClientConn, _ resolver.BuildOptions) (resolver.Resolver, error) {
	r.clientConn = cc
	r.key = "/matchserver/" + strings.TrimPrefix(target.URL.Path, "/")
	r.closeCh = make(chan struct{})

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   r.conf.Addrs,
		DialTimeout: time.Duration(r.conf.DialTimeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: resolver connect etcd: %w", err)
	}
	r.cli = cli

	if err := r.sync(); err != nil {
		return nil, err
	}
	go r.watch()
	return r, nil
}

func (r *Resolver) sync() error {
	timeout := r.conf.RWTimeout
	if timeout == 0 {
		timeout = 5
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	res, err := r.cli.Get(ctx, r.key+"/", clientv3.WithPrefix())
	if err != nil {
		return fmt.Errorf("discovery: resolver sync: %w", err)
	}

	addrs := make([]resolver.Address, 0, len(res.Kvs))
	for _, kv := range res.Kvs {
		var n Node
		if err := json.Unmarshal(kv.Value, &n); err != nil {
			logging.Error("discovery: resolver: decode %s: %v", kv.Key, err)
			continue
		}
		addrs = append(addrs, resolver.Address{Addr: n.Addr})
	}

	r.addrs = addrs
	return r.clientConn.UpdateState(resolver.State{Addresses: r.addrs})
}

func (r *Resolver) watch() {
	watchCh := r.cli.Watch(context.Background(), r.key+"/", clientv3.WithPrefix())
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-r.closeCh:
			return
		case _, ok := <-watchCh:
			if !ok {
				return
			}
			if err := r.sync(); err != nil {
				logging.Error("discovery: resolver watch sync: %v", err)
			}
		case <-ticker.C:
			if err := r.sync(); err != nil {
				logging.Error("discovery: resolver periodic sync: %v", err)
			}
		}
	}
}

// ResolveNow is a no-op; this resolver pushes updates via watch instead.
func (r *Resolver) ResolveNow(resolver.ResolveNowOptions) {}

// Close releases the resolver's etcd client.
func (r *Resolver) Close() {
	close(r.closeCh)
	if r.cli != nil {
		r.cli.Close()
	}
}
