package uevr

import (
	"context"
)

// Ptr is an address in the memory of the foreign runtime. Handles wrap a
// Ptr, they never dereference it on the host side except through the
// runtime's own function tables.
type Ptr = uint32

// Handle is the common core of every foreign object reference. A zero
// handle stands for the runtime's null pointer.
type Handle struct {
	addr Ptr
}

// FromPtr wraps a raw address. Generated bindings that attach no
// capability chain embed Handle directly and construct through it.
func (Handle) FromPtr(addr Ptr) Handle {
	return Handle{addr: addr}
}

// Ptr returns the raw address of the referenced object.
func (h Handle) Ptr() Ptr {
	return h.addr
}

// IsInvalid reports whether the handle references nothing.
func (h Handle) IsInvalid() bool {
	return h.addr == 0
}

// HandleType is implemented by every foreign object type. FromPtr is a
// value receiver constructor so that generic helpers can instantiate a
// handle from its zero value.
type HandleType[T any] interface {
	FromPtr(addr Ptr) T
	Ptr() Ptr
	IsInvalid() bool
}

// Castable is implemented by foreign object types that have a class
// descriptor registered under a stable path, which makes them targets for
// checked casts.
type Castable[T any] interface {
	HandleType[T]
	ClassPath() string
}

// FromPtr wraps a raw address without any validation.
func FromPtr[T HandleType[T]](addr Ptr) T {
	var zero T
	return zero.FromPtr(addr)
}

// FromPtrSafe wraps a raw address and reports whether it references an
// object. The second result is false for the null address.
func FromPtrSafe[T HandleType[T]](addr Ptr) (T, bool) {
	var zero T
	if addr == 0 {
		return zero, false
	}

	return zero.FromPtr(addr), true
}

// UnsafeCast reinterprets a handle as another type without consulting the
// runtime. The caller asserts the object really has the target type.
func UnsafeCast[To HandleType[To], From HandleType[From]](from From) To {
	return FromPtr[To](from.Ptr())
}

// StaticClass returns the class descriptor of T. The descriptor address is
// cached on the engine after the first lookup.
func StaticClass[T Castable[T]](ctx context.Context) (UClass, error) {
	var zero T

	e, err := EngineFromContext(ctx)
	if err != nil {
		return UClass{}, err
	}

	addr, err := e.ClassPtr(ctx, zero.ClassPath())
	if err != nil {
		return UClass{}, err
	}

	return FromPtr[UClass](addr), nil
}

// Cast checks with the runtime that the object is an instance of T and
// returns a retyped handle. A failed check or a null input yields a zero
// handle and no error, mirroring a null result from the runtime itself.
func Cast[To Castable[To]](ctx context.Context, obj UObject) (To, error) {
	var zero To

	if obj.IsInvalid() {
		return zero, nil
	}

	class, err := StaticClass[To](ctx)
	if err != nil {
		return zero, err
	}

	if class.IsInvalid() {
		return zero, nil
	}

	ok, err := obj.IsA(ctx, class)
	if err != nil {
		return zero, err
	}

	if !ok {
		return zero, nil
	}

	return FromPtr[To](obj.Ptr()), nil
}
