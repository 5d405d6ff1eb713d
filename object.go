package uevr

import (
	"context"
	"fmt"

	internal "github.com/uevr-go/uevr/internal"
)

// UObject references an object managed by the foreign runtime. All other
// object kinds embed it.
type UObject struct {
	Handle
}

func (UObject) FromPtr(addr Ptr) UObject {
	return UObject{Handle{addr: addr}}
}

func (UObject) ClassPath() string {
	return "Class /Script/CoreUObject.Object"
}

// Class returns the object's class descriptor, a zero handle when the
// runtime reports none.
func (o UObject) Class(ctx context.Context) (UClass, error) {
	return callHandle[UClass](ctx, internal.TableUObject, internal.FnUObjectGetClass, uint64(o.Ptr()))
}

// Outer returns the object's outer object, a zero handle at the root.
func (o UObject) Outer(ctx context.Context) (UObject, error) {
	return callHandle[UObject](ctx, internal.TableUObject, internal.FnUObjectGetOuter, uint64(o.Ptr()))
}

// IsA asks the runtime whether the object is an instance of the given
// class. The answer is never cached, class hierarchies can change at
// runtime.
func (o UObject) IsA(ctx context.Context, class UClass) (bool, error) {
	return callBool(ctx, internal.TableUObject, internal.FnUObjectIsA, uint64(o.Ptr()), uint64(class.Ptr()))
}

// ProcessEvent invokes a script function on the object. params is the guest
// address of the function's parameter block, zero when the function takes
// none.
func (o UObject) ProcessEvent(ctx context.Context, function UFunction, params Ptr) error {
	return callVoid(ctx, internal.TableUObject, internal.FnUObjectProcessEvent, uint64(o.Ptr()), uint64(function.Ptr()), uint64(params))
}

// CallFunction resolves a script function by name and invokes it on the
// object.
func (o UObject) CallFunction(ctx context.Context, name string, params Ptr) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		return err
	}
	defer e.Free(ctx, nameAddr)

	_, err = e.TableCall(ctx, internal.TableUObject, internal.FnUObjectCallFunction, uint64(o.Ptr()), uint64(nameAddr), 0)
	return err
}

// PropertyData returns the guest address of a named property's storage
// inside the object, zero when the object has no such property.
func (o UObject) PropertyData(ctx context.Context, name string) (Ptr, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return 0, err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		return 0, err
	}
	defer e.Free(ctx, nameAddr)

	results, err := e.TableCall(ctx, internal.TableUObject, internal.FnUObjectGetPropertyData, uint64(o.Ptr()), uint64(nameAddr))
	if err != nil {
		return 0, err
	}

	return Ptr(results[0]), nil
}

// BoolProperty reads a bool property. Unlike Property, it goes through the
// runtime so that bitfield packed bools are unmasked correctly.
func (o UObject) BoolProperty(ctx context.Context, name string) (bool, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return false, err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		return false, err
	}
	defer e.Free(ctx, nameAddr)

	results, err := e.TableCall(ctx, internal.TableUObject, internal.FnUObjectGetBoolProperty, uint64(o.Ptr()), uint64(nameAddr))
	if err != nil {
		return false, err
	}

	return results[0] != 0, nil
}

// SetBoolProperty writes a bool property through the runtime.
func (o UObject) SetBoolProperty(ctx context.Context, name string, value bool) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		return err
	}
	defer e.Free(ctx, nameAddr)

	_, err = e.TableCall(ctx, internal.TableUObject, internal.FnUObjectSetBoolProperty, uint64(o.Ptr()), uint64(nameAddr), boolArg(value))
	return err
}

// FName returns the object's name handle.
func (o UObject) FName(ctx context.Context) (FName, error) {
	return callHandle[FName](ctx, internal.TableUObject, internal.FnUObjectGetFName, uint64(o.Ptr()))
}

// Name returns the object's short name.
func (o UObject) Name(ctx context.Context) (string, error) {
	name, err := o.FName(ctx)
	if err != nil {
		return "", err
	}

	return name.String(ctx)
}

// FullName returns the object's path name prefixed with its class name, for
// example "Class /Script/CoreUObject.Object". An object whose class cannot
// be confirmed yields an empty string.
func (o UObject) FullName(ctx context.Context) (string, error) {
	class, err := o.Class(ctx)
	if err != nil {
		return "", err
	}

	classObj, err := Cast[UObject](ctx, class.UObject)
	if err != nil {
		return "", err
	}

	if classObj.IsInvalid() {
		return "", nil
	}

	name, err := o.Name(ctx)
	if err != nil {
		return "", err
	}

	outer, err := o.Outer(ctx)
	if err != nil {
		return "", err
	}

	// Self referencing outers terminate the walk, some runtime internal
	// objects are their own outer.
	for !outer.IsInvalid() {
		if outer.Ptr() == o.Ptr() {
			break
		}

		outerName, err := outer.Name(ctx)
		if err != nil {
			return "", err
		}

		name = outerName + "." + name

		outer, err = outer.Outer(ctx)
		if err != nil {
			return "", err
		}
	}

	className, err := classObj.Name(ctx)
	if err != nil {
		return "", err
	}

	return className + " " + name, nil
}

// PropValue enumerates the value types that can be read from and written to
// object property storage directly.
type PropValue interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | Vector2f | Vector3f | Vector3d | Quaternionf | Rotatorf
}

// Property reads a named property value directly from the object's storage.
// Packed bool properties must use UObject.BoolProperty instead.
func Property[T PropValue](ctx context.Context, obj UObject, name string) (T, error) {
	var zero T

	e, err := EngineFromContext(ctx)
	if err != nil {
		return zero, err
	}

	addr, err := obj.PropertyData(ctx, name)
	if err != nil {
		return zero, err
	}

	if addr == 0 {
		return zero, fmt.Errorf("object has no property %q", name)
	}

	value, ok := readPropValue[T](e, addr)
	if !ok {
		return zero, fmt.Errorf("could not read property %q at address %d", name, addr)
	}

	return value, nil
}

// SetProperty writes a named property value directly into the object's
// storage.
func SetProperty[T PropValue](ctx context.Context, obj UObject, name string, value T) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	addr, err := obj.PropertyData(ctx, name)
	if err != nil {
		return err
	}

	if addr == 0 {
		return fmt.Errorf("object has no property %q", name)
	}

	if !writePropValue(e, addr, value) {
		return fmt.Errorf("could not write property %q at address %d", name, addr)
	}

	return nil
}

func readPropValue[T PropValue](e Engine, addr Ptr) (T, bool) {
	var value T
	memory := e.Memory()

	switch out := any(&value).(type) {
	case *bool:
		b, ok := memory.ReadByte(addr)
		*out = b != 0
		return value, ok
	case *int8:
		b, ok := memory.ReadByte(addr)
		*out = int8(b)
		return value, ok
	case *uint8:
		b, ok := memory.ReadByte(addr)
		*out = b
		return value, ok
	case *int16:
		v, ok := memory.ReadUint16Le(addr)
		*out = int16(v)
		return value, ok
	case *uint16:
		v, ok := memory.ReadUint16Le(addr)
		*out = v
		return value, ok
	case *int32:
		v, ok := memory.ReadUint32Le(addr)
		*out = int32(v)
		return value, ok
	case *uint32:
		v, ok := memory.ReadUint32Le(addr)
		*out = v
		return value, ok
	case *int64:
		v, ok := memory.ReadUint64Le(addr)
		*out = int64(v)
		return value, ok
	case *uint64:
		v, ok := memory.ReadUint64Le(addr)
		*out = v
		return value, ok
	case *float32:
		v, ok := memory.ReadFloat32Le(addr)
		*out = v
		return value, ok
	case *float64:
		v, ok := memory.ReadFloat64Le(addr)
		*out = v
		return value, ok
	case *Vector2f:
		v, ok := ReadVector2f(memory, addr)
		*out = v
		return value, ok
	case *Vector3f:
		v, ok := ReadVector3f(memory, addr)
		*out = v
		return value, ok
	case *Vector3d:
		v, ok := ReadVector3d(memory, addr)
		*out = v
		return value, ok
	case *Quaternionf:
		v, ok := ReadQuaternionf(memory, addr)
		*out = v
		return value, ok
	case *Rotatorf:
		v, ok := ReadRotatorf(memory, addr)
		*out = v
		return value, ok
	}

	return value, false
}

func writePropValue[T PropValue](e Engine, addr Ptr, value T) bool {
	memory := e.Memory()

	switch v := any(value).(type) {
	case bool:
		b := byte(0)
		if v {
			b = 1
		}
		return memory.WriteByte(addr, b)
	case int8:
		return memory.WriteByte(addr, byte(v))
	case uint8:
		return memory.WriteByte(addr, v)
	case int16:
		return memory.WriteUint16Le(addr, uint16(v))
	case uint16:
		return memory.WriteUint16Le(addr, v)
	case int32:
		return memory.WriteUint32Le(addr, uint32(v))
	case uint32:
		return memory.WriteUint32Le(addr, v)
	case int64:
		return memory.WriteUint64Le(addr, uint64(v))
	case uint64:
		return memory.WriteUint64Le(addr, v)
	case float32:
		return memory.WriteFloat32Le(addr, v)
	case float64:
		return memory.WriteFloat64Le(addr, v)
	case Vector2f:
		return WriteVector2f(memory, addr, v)
	case Vector3f:
		return WriteVector3f(memory, addr, v)
	case Vector3d:
		return WriteVector3d(memory, addr, v)
	case Quaternionf:
		return WriteQuaternionf(memory, addr, v)
	case Rotatorf:
		return WriteRotatorf(memory, addr, v)
	}

	return false
}
