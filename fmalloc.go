package uevr

import (
	"context"

	internal "github.com/uevr-go/uevr/internal"
)

// FMalloc is the runtime's own allocator. Buffers the runtime hands over,
// such as the element storage of foreign arrays, must be returned here and
// not to the scratch allocator.
type FMalloc struct {
	Handle
}

func (FMalloc) FromPtr(addr Ptr) FMalloc {
	return FMalloc{Handle{addr: addr}}
}

// GetFMalloc returns the runtime's global allocator instance.
func GetFMalloc(ctx context.Context) (FMalloc, error) {
	return callHandle[FMalloc](ctx, internal.TableFMalloc, internal.FnFMallocGet)
}

// Malloc allocates size bytes with the given alignment from the runtime
// heap.
func (m FMalloc) Malloc(ctx context.Context, size uint32, alignment uint32) (Ptr, error) {
	return callU32(ctx, internal.TableFMalloc, internal.FnFMallocMalloc, uint64(m.Ptr()), uint64(size), uint64(alignment))
}

// Realloc resizes an allocation from the runtime heap.
func (m FMalloc) Realloc(ctx context.Context, addr Ptr, size uint32, alignment uint32) (Ptr, error) {
	return callU32(ctx, internal.TableFMalloc, internal.FnFMallocRealloc, uint64(m.Ptr()), uint64(addr), uint64(size), uint64(alignment))
}

// Free returns an allocation to the runtime heap. Freeing address zero is a
// no-op.
func (m FMalloc) Free(ctx context.Context, addr Ptr) error {
	if addr == 0 {
		return nil
	}

	return callVoid(ctx, internal.TableFMalloc, internal.FnFMallocFree, uint64(m.Ptr()), uint64(addr))
}
