package uevr

import (
	"context"

	internal "github.com/uevr-go/uevr/internal"
)

// EFindName selects how the runtime resolves a name during FName
// construction.
type EFindName uint32

const (
	// FindName only looks the name up, construction yields the none name
	// when the name pool does not contain it.
	FindName EFindName = 0

	// AddName inserts the name into the name pool when it is missing.
	AddName EFindName = 1
)

// FName references an entry of the runtime's name pool. Names obtained from
// objects point into runtime owned storage, names built with NewFName own an
// 8 byte guest allocation that Release returns to the scratch allocator.
type FName struct {
	Handle
}

func (FName) FromPtr(addr Ptr) FName {
	return FName{Handle{addr: addr}}
}

// NewFName constructs a name value in guest memory. The caller releases it
// with Release once it is no longer needed.
func NewFName(ctx context.Context, name string, findType EFindName) (FName, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return FName{}, err
	}

	// A name value is two 4 byte words, the pool index and the instance
	// number.
	buf, err := e.Malloc(ctx, 8)
	if err != nil {
		return FName{}, err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		_ = e.Free(ctx, buf)
		return FName{}, err
	}
	defer e.Free(ctx, nameAddr)

	_, err = e.TableCall(ctx, internal.TableFName, internal.FnFNameConstructor, uint64(buf), uint64(nameAddr), uint64(findType))
	if err != nil {
		_ = e.Free(ctx, buf)
		return FName{}, err
	}

	return FromPtr[FName](buf), nil
}

// String resolves the name to its string form, an empty string for the zero
// handle.
func (n FName) String(ctx context.Context) (string, error) {
	if n.IsInvalid() {
		return "", nil
	}

	e, err := EngineFromContext(ctx)
	if err != nil {
		return "", err
	}

	return internal.ReadWideVia(ctx, e, func(ctx context.Context, buf uint32, size uint32) (uint32, error) {
		return callU32(ctx, internal.TableFName, internal.FnFNameToString, uint64(n.Ptr()), uint64(buf), uint64(size))
	})
}

// Release frees the guest allocation behind a name built with NewFName.
// Releasing a zero handle is a no-op. Names read from objects must not be
// released, their storage belongs to the runtime.
func (n FName) Release(ctx context.Context) error {
	if n.IsInvalid() {
		return nil
	}

	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	return e.Free(ctx, n.Ptr())
}
