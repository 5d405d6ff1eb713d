package uevr

import (
	"context"

	internal "github.com/uevr-go/uevr/internal"
)

// UClass is the reflected class descriptor of an object type.
type UClass struct {
	UStruct
}

func (UClass) FromPtr(addr Ptr) UClass {
	return UClass{UStruct{UField{UObject{Handle{addr: addr}}}}}
}

func (UClass) ClassPath() string {
	return "Class /Script/CoreUObject.Class"
}

// ClassDefaultObject returns the template instance of the class.
func (c UClass) ClassDefaultObject(ctx context.Context) (UObject, error) {
	return callHandle[UObject](ctx, internal.TableUClass, internal.FnUClassGetClassDefaultObject, uint64(c.Ptr()))
}

// ObjectsMatchingRaw returns all live instances of the class. It activates
// the object tracker on first use, then drives the runtime's size-then-fill
// convention over a scratch buffer of object addresses. allowDefault
// includes class default objects in the result.
func (c UClass) ObjectsMatchingRaw(ctx context.Context, allowDefault bool) ([]UObject, error) {
	if err := ActivateObjectHook(ctx); err != nil {
		return nil, err
	}

	e, err := EngineFromContext(ctx)
	if err != nil {
		return nil, err
	}

	size, err := callU32(ctx, internal.TableUObjectHook, internal.FnUObjectHookGetObjectsByClass,
		uint64(c.Ptr()), 0, 0, boolArg(allowDefault))
	if err != nil {
		return nil, err
	}

	if size == 0 {
		return nil, nil
	}

	buf, err := e.Malloc(ctx, size*4)
	if err != nil {
		return nil, err
	}
	defer e.Free(ctx, buf)

	written, err := callU32(ctx, internal.TableUObjectHook, internal.FnUObjectHookGetObjectsByClass,
		uint64(c.Ptr()), uint64(buf), uint64(size), boolArg(allowDefault))
	if err != nil {
		return nil, err
	}

	if written > size {
		written = size
	}

	objects := make([]UObject, 0, written)
	for i := uint32(0); i < written; i++ {
		addr, err := e.ReadWord(buf + i*4)
		if err != nil {
			return nil, err
		}

		objects = append(objects, FromPtr[UObject](addr))
	}

	return objects, nil
}

// FirstObjectMatchingRaw returns one live instance of the class, a zero
// handle when none exists.
func (c UClass) FirstObjectMatchingRaw(ctx context.Context, allowDefault bool) (UObject, error) {
	if err := ActivateObjectHook(ctx); err != nil {
		return UObject{}, err
	}

	return callHandle[UObject](ctx, internal.TableUObjectHook, internal.FnUObjectHookGetFirstObjectByClass,
		uint64(c.Ptr()), boolArg(allowDefault))
}

// ObjectsMatching returns all live instances of the class retyped to T.
// Instances that fail the runtime type check are dropped.
func ObjectsMatching[T Castable[T]](ctx context.Context, class UClass, allowDefault bool) ([]T, error) {
	objects, err := class.ObjectsMatchingRaw(ctx, allowDefault)
	if err != nil {
		return nil, err
	}

	matching := make([]T, 0, len(objects))
	for _, obj := range objects {
		value, err := Cast[T](ctx, obj)
		if err != nil {
			return nil, err
		}

		if value.IsInvalid() {
			continue
		}

		matching = append(matching, value)
	}

	return matching, nil
}

// UnsafeObjectsMatching returns all live instances of the class retyped to
// T without consulting the runtime. The caller asserts the class really
// describes T.
func UnsafeObjectsMatching[T HandleType[T]](ctx context.Context, class UClass, allowDefault bool) ([]T, error) {
	objects, err := class.ObjectsMatchingRaw(ctx, allowDefault)
	if err != nil {
		return nil, err
	}

	matching := make([]T, 0, len(objects))
	for _, obj := range objects {
		matching = append(matching, UnsafeCast[T](obj))
	}

	return matching, nil
}

// FirstObjectMatching returns one live instance of the class retyped to T,
// a zero handle when none exists or the type check fails.
func FirstObjectMatching[T Castable[T]](ctx context.Context, class UClass, allowDefault bool) (T, error) {
	var zero T

	obj, err := class.FirstObjectMatchingRaw(ctx, allowDefault)
	if err != nil {
		return zero, err
	}

	if obj.IsInvalid() {
		return zero, nil
	}

	return Cast[T](ctx, obj)
}

// UnsafeFirstObjectMatching returns one live instance of the class retyped
// to T without consulting the runtime.
func UnsafeFirstObjectMatching[T HandleType[T]](ctx context.Context, class UClass, allowDefault bool) (T, error) {
	var zero T

	obj, err := class.FirstObjectMatchingRaw(ctx, allowDefault)
	if err != nil {
		return zero, err
	}

	return UnsafeCast[T](obj), nil
}

// UEnum is the reflected descriptor of an enumeration type.
type UEnum struct {
	UObject
}

func (UEnum) FromPtr(addr Ptr) UEnum {
	return UEnum{UObject{Handle{addr: addr}}}
}

// UEngine is the runtime's root engine object.
type UEngine struct {
	UObject
}

func (UEngine) FromPtr(addr Ptr) UEngine {
	return UEngine{UObject{Handle{addr: addr}}}
}

// UGameEngine is the game flavor of UEngine, handed to tick callbacks.
type UGameEngine struct {
	UEngine
}

func (UGameEngine) FromPtr(addr Ptr) UGameEngine {
	return UGameEngine{UEngine{UObject{Handle{addr: addr}}}}
}

// UWorld is a loaded game world.
type UWorld struct {
	UObject
}

func (UWorld) FromPtr(addr Ptr) UWorld {
	return UWorld{UObject{Handle{addr: addr}}}
}

func (UWorld) ClassPath() string {
	return "Class /Script/Engine.World"
}
