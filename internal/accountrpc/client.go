package accountrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/resolver"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lamyinia/mahjongmatch/internal/config"
	"github.com/lamyinia/mahjongmatch/internal/discovery"
)

// Dial connects to the account directory domain through the etcd resolver,
// matching the teacher's rpc.initClient shape: round-robin across whatever
// directory nodes are registered under domain.
func Dial(etcdConf config.EtcdConf, domain string) (AccountDirectoryClient, *grpc.ClientConn, error) {
	r := discovery.NewResolver(etcdConf)
	resolver.Register(r)

	addr := fmt.Sprintf("etcd:///%s", domain)
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultServiceConfig(`{"loadBalancingPolicy":"round_robin"}`),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("accountrpc: dial %s: %w", domain, err)
	}

	return NewAccountDirectoryClient(conn), conn, nil
}

// AllocateAccountID requests a fresh account id from the directory.
func AllocateAccountID(ctx context.Context, client AccountDirectoryClient) (string, error) {
	req, err := structpb.NewStruct(nil)
	if err != nil {
		return "", err
	}

	resp, err := client.AllocateAccountID(ctx, req)
	if err != nil {
		return "", fmt.Errorf("accountrpc: allocate account id: %w", err)
	}

	id, ok := resp.Fields["accountId"]
	if !ok {
		return "", fmt.Errorf("accountrpc: response missing accountId")
	}
	return id.GetStringValue(), nil
}
