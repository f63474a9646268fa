// Package discovery registers a running matchserver node in etcd so a
// gateway/connector-equivalent can discover it and route players to it,
// and keeps the registration alive with a lease, following the teacher's
// common/discovery registrar shape.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/lamyinia/mahjongmatch/internal/config"
	"github.com/lamyinia/mahjongmatch/internal/logging"
)

// Node is the directory entry published for a matchserver instance.
type Node struct {
	NodeID  string  `json:"nodeId"`
	Addr    string  `json:"addr"`
	Domain  string  `json:"domain"`
	Version string  `json:"version"`
	Weight  int     `json:"weight"`
	Load    float64 `json:"load"`
}

func (n Node) key() string {
	return fmt.Sprintf("/matchserver/%s/%s", n.Domain, n.NodeID)
}

// Registry owns the etcd lease keeping a Node's registration alive.
type Registry struct {
	cli     *clientv3.Client
	leaseID clientv3.LeaseID
	ttl     int
	info    Node
	closeCh chan struct{}
}

// Register connects to etcd and registers node, renewing its lease for
// the lifetime of the process until Close is called.
func Register(conf config.EtcdConf, node Node) (*Registry, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   conf.Addrs,
		DialTimeout: time.Duration(conf.DialTimeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: connect etcd: %w", err)
	}

	ttl := conf.Register.Ttl
	if ttl == 0 {
		ttl = 10
	}
	node.Domain = conf.Register.Domain
	node.Version = conf.Register.Version
	node.Weight = conf.Register.Weight

	r := &Registry{cli: cli, ttl: ttl, info: node, closeCh: make(chan struct{})}
	if err := r.bind(); err != nil {
		cli.Close()
		return nil, err
	}

	go r.keepAlive()
	return r, nil
}

func (r *Registry) bind() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.ttl)*time.Second)
	defer cancel()

	lease, err := r.cli.Grant(ctx, int64(r.ttl))
	if err != nil {
		return fmt.Errorf("discovery: grant lease: %w", err)
	}
	r.leaseID = lease.ID

	data, err := json.Marshal(r.info)
	if err != nil {
		return fmt.Errorf("discovery: marshal node info: %w", err)
	}

	if _, err := r.cli.Put(ctx, r.info.key(), string(data), clientv3.WithLease(r.leaseID)); err != nil {
		return fmt.Errorf("discovery: put registration: %w", err)
	}
	return nil
}

func (r *Registry) keepAlive() {
	ch, err := r.cli.KeepAlive(context.Background(), r.leaseID)
	if err != nil {
		logging.Error("discovery: keepalive failed: %v", err)
		return
	}

	for {
		select {
		case resp, ok := <-ch:
			if !ok || resp == nil {
				logging.Warn("discovery: lease keepalive lost, re-registering")
				if err := r.bind(); err != nil {
					logging.Error("discovery: re-register failed: %v", err)
				}
			}
		case <-r.closeCh:
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.ttl)*time.Second)
			r.cli.Delete(ctx, r.info.key())
			r.cli.Revoke(ctx, r.leaseID)
			cancel()
			return
		}
	}
}

// UpdateLoad republishes node info with a fresh load score, letting a
// load-balancing gateway prefer the least-loaded node.
func (r *Registry) UpdateLoad(load float64) error {
	r.info.Load = load
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.ttl)*time.Second)
	defer cancel()

	data, err := json.Marshal(r.info)
	if err != nil {
		return err
	}
	_, err = r.cli.Put(ctx, r.info.key(), string(data), clientv3.WithLease(r.leaseID))
	return err
}

// Close unregisters the node and releases the etcd client.
func (r *Registry) Close() {
	close(r.closeCh)
	r.cli.Close()
}
