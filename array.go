package uevr

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// Codec decodes one array element from guest memory. Size is the element
// stride in bytes.
type Codec[T any] interface {
	Size() uint32
	Read(memory api.Memory, addr Ptr) (T, bool)
}

// U32Codec decodes 4 byte little-endian words.
type U32Codec struct{}

func (U32Codec) Size() uint32 { return 4 }

func (U32Codec) Read(memory api.Memory, addr Ptr) (uint32, bool) {
	return memory.ReadUint32Le(addr)
}

// HandleCodec decodes 4 byte object addresses into typed handles.
type HandleCodec[T HandleType[T]] struct{}

func (HandleCodec[T]) Size() uint32 { return 4 }

func (HandleCodec[T]) Read(memory api.Memory, addr Ptr) (T, bool) {
	var zero T

	value, ok := memory.ReadUint32Le(addr)
	if !ok {
		return zero, false
	}

	return zero.FromPtr(value), true
}

// TArray is a runtime owned array of foreign elements. The host holds the
// single reference to the element buffer: consuming or freeing the array
// returns the buffer to the runtime allocator exactly once, afterwards the
// array is released and element access fails.
type TArray[T any] struct {
	data     Ptr
	count    int32
	capacity int32
	codec    Codec[T]
	released bool
}

// NewTArray wraps an element buffer the runtime handed over. A null buffer
// with zero count and capacity is the canonical empty array.
func NewTArray[T any](data Ptr, count, capacity int32, codec Codec[T]) (*TArray[T], error) {
	if count < 0 || capacity < 0 {
		return nil, fmt.Errorf("malformed array header: count %d, capacity %d", count, capacity)
	}

	if data == 0 && count > 0 {
		return nil, fmt.Errorf("malformed array header: null buffer with count %d", count)
	}

	return &TArray[T]{data: data, count: count, capacity: capacity, codec: codec}, nil
}

// EmptyTArray returns the canonical empty array.
func EmptyTArray[T any](codec Codec[T]) *TArray[T] {
	return &TArray[T]{codec: codec}
}

// ReadTArray reads an array header from guest memory. A null header address
// yields the canonical empty array.
func ReadTArray[T any](memory api.Memory, addr Ptr, codec Codec[T]) (*TArray[T], error) {
	if addr == 0 {
		return EmptyTArray[T](codec), nil
	}

	data, okData := memory.ReadUint32Le(addr)
	count, okCount := memory.ReadUint32Le(addr + 4)
	capacity, okCapacity := memory.ReadUint32Le(addr + 8)
	if !okData || !okCount || !okCapacity {
		return nil, fmt.Errorf("could not read array header at address %d", addr)
	}

	return NewTArray[T](data, int32(count), int32(capacity), codec)
}

// Len returns the element count, zero once the array was released.
func (a *TArray[T]) Len() int {
	if a.released {
		return 0
	}

	return int(a.count)
}

// Cap returns the buffer capacity in elements.
func (a *TArray[T]) Cap() int {
	return int(a.capacity)
}

// Data returns the guest address of the element buffer.
func (a *TArray[T]) Data() Ptr {
	return a.data
}

// IsEmpty reports whether the array holds no elements.
func (a *TArray[T]) IsEmpty() bool {
	return a.released || a.count == 0 || a.data == 0
}

// Released reports whether the element buffer was already returned to the
// runtime allocator.
func (a *TArray[T]) Released() bool {
	return a.released
}

// At decodes the element at index i.
func (a *TArray[T]) At(ctx context.Context, i int) (T, error) {
	var zero T

	if a.released {
		return zero, fmt.Errorf("array was already released")
	}

	if i < 0 || i >= int(a.count) {
		return zero, fmt.Errorf("array index %d out of range [0, %d)", i, a.count)
	}

	e, err := EngineFromContext(ctx)
	if err != nil {
		return zero, err
	}

	value, ok := a.codec.Read(e.Memory(), a.data+uint32(i)*a.codec.Size())
	if !ok {
		return zero, fmt.Errorf("could not read array element %d at address %d", i, a.data)
	}

	return value, nil
}

// Elements decodes all elements. The buffer stays alive, the caller still
// consumes or frees the array afterwards.
func (a *TArray[T]) Elements(ctx context.Context) ([]T, error) {
	if a.released {
		return nil, fmt.Errorf("array was already released")
	}

	if a.IsEmpty() {
		return nil, nil
	}

	elements := make([]T, 0, a.count)
	for i := 0; i < int(a.count); i++ {
		value, err := a.At(ctx, i)
		if err != nil {
			return nil, err
		}

		elements = append(elements, value)
	}

	return elements, nil
}

// Consume decodes all elements and returns the buffer to the runtime
// allocator. The array is released afterwards, consuming twice fails.
func (a *TArray[T]) Consume(ctx context.Context) ([]T, error) {
	elements, err := a.Elements(ctx)
	if err != nil {
		return nil, err
	}

	if err := a.Free(ctx); err != nil {
		return nil, err
	}

	return elements, nil
}

// Free returns the element buffer to the runtime allocator. Freeing an
// empty or already released array is a no-op, so Free is idempotent.
func (a *TArray[T]) Free(ctx context.Context) error {
	if a.released {
		return nil
	}

	data := a.data
	a.released = true
	a.data = 0
	a.count = 0
	a.capacity = 0

	if data == 0 {
		return nil
	}

	fmalloc, err := GetFMalloc(ctx)
	if err != nil {
		return err
	}

	return fmalloc.Free(ctx, data)
}
