package accountrpc

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

// Directory is the in-process AccountDirectoryServer implementation: it
// mints a fresh opaque account id on every allocation, tagged with a
// monotonic sequence for log correlation. A production directory node
// would back this with persistence.Store instead; this is the
// out-of-scope "account creation" collaborator reduced to a concrete,
// swappable interface.
type Directory struct {
	sequence uint64
}

// NewDirectory creates an empty allocator.
func NewDirectory() *Directory {
	return &Directory{}
}

// AllocateAccountID mints a new account id, ignoring req's contents (the
// real directory service would validate a reservation token or similar
// there).
func (d *Directory) AllocateAccountID(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	seq := atomic.AddUint64(&d.sequence, 1)
	id := fmt.Sprintf("%s-%d", uuid.NewString(), seq)

	out, err := structpb.NewStruct(map[string]interface{}{
		"accountId": id,
		"sequence":  seq,
	})
	if err != nil {
		return nil, fmt.Errorf("accountrpc: build response: %w", err)
	}
	return out, nil
}

var _ AccountDirectoryServer = (*Directory)(nil)
