package uevr

import (
	"context"
	"fmt"

	internal "github.com/uevr-go/uevr/internal"
)

// FUObjectArray is the runtime's global object registry.
type FUObjectArray struct {
	Handle
}

func (FUObjectArray) FromPtr(addr Ptr) FUObjectArray {
	return FUObjectArray{Handle{addr: addr}}
}

// FUObjectItem is one registry slot.
type FUObjectItem struct {
	Object       Ptr
	Flags        int32
	ClusterIndex int32
	SerialNumber int32
}

// IsChunkedUObjectArray reports whether the registry stores its items in
// chunks. The answer is a property of the runtime build, not of an instance.
func IsChunkedUObjectArray(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.TableUObjectArray, internal.FnUObjectArrayIsChunked)
}

// IsInlinedUObjectArray reports whether the registry inlines its items.
func IsInlinedUObjectArray(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.TableUObjectArray, internal.FnUObjectArrayIsInlined)
}

// UObjectArrayObjectsOffset returns the byte offset of the item storage
// within the registry.
func UObjectArrayObjectsOffset(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.TableUObjectArray, internal.FnUObjectArrayGetObjectsOffset)
}

// UObjectArrayItemDistance returns the byte stride between registry items.
func UObjectArrayItemDistance(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.TableUObjectArray, internal.FnUObjectArrayGetItemDistance)
}

// ObjectCount returns the number of registered objects.
func (a FUObjectArray) ObjectCount(ctx context.Context) (int32, error) {
	return callI32(ctx, internal.TableUObjectArray, internal.FnUObjectArrayGetObjectCount, uint64(a.Ptr()))
}

// ObjectsPtr returns the guest address of the item storage.
func (a FUObjectArray) ObjectsPtr(ctx context.Context) (Ptr, error) {
	return callU32(ctx, internal.TableUObjectArray, internal.FnUObjectArrayGetObjectsPtr, uint64(a.Ptr()))
}

// Object returns the object in the given registry slot, a zero handle for
// empty slots.
func (a FUObjectArray) Object(ctx context.Context, index int32) (UObject, error) {
	return callHandle[UObject](ctx, internal.TableUObjectArray, internal.FnUObjectArrayGetObject, uint64(a.Ptr()), uint64(uint32(index)))
}

// Item reads the registry slot at the given index.
func (a FUObjectArray) Item(ctx context.Context, index int32) (FUObjectItem, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return FUObjectItem{}, err
	}

	addr, err := callU32(ctx, internal.TableUObjectArray, internal.FnUObjectArrayGetItem, uint64(a.Ptr()), uint64(uint32(index)))
	if err != nil {
		return FUObjectItem{}, err
	}

	if addr == 0 {
		return FUObjectItem{}, fmt.Errorf("object registry has no item at index %d", index)
	}

	object, err := e.ReadWord(addr)
	if err != nil {
		return FUObjectItem{}, err
	}

	flags, err := e.ReadWord(addr + 4)
	if err != nil {
		return FUObjectItem{}, err
	}

	clusterIndex, err := e.ReadWord(addr + 8)
	if err != nil {
		return FUObjectItem{}, err
	}

	serialNumber, err := e.ReadWord(addr + 12)
	if err != nil {
		return FUObjectItem{}, err
	}

	return FUObjectItem{
		Object:       object,
		Flags:        int32(flags),
		ClusterIndex: int32(clusterIndex),
		SerialNumber: int32(serialNumber),
	}, nil
}
