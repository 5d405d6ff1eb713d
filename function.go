package uevr

import (
	"context"
	"fmt"

	internal "github.com/uevr-go/uevr/internal"
)

// UFunction is a callable script function.
type UFunction struct {
	UStruct
}

func (UFunction) FromPtr(addr Ptr) UFunction {
	return UFunction{UStruct{UField{UObject{Handle{addr: addr}}}}}
}

func (UFunction) ClassPath() string {
	return "Class /Script/CoreUObject.Function"
}

// Call invokes the function on the given object. Calling on a zero handle
// is a no-op. params is the guest address of the parameter block, zero when
// the function takes none.
func (f UFunction) Call(ctx context.Context, obj UObject, params Ptr) error {
	if obj.IsInvalid() {
		return nil
	}

	return obj.ProcessEvent(ctx, f, params)
}

// NativeFunction returns the address of the function's native thunk.
func (f UFunction) NativeFunction(ctx context.Context) (Ptr, error) {
	return callU32(ctx, internal.TableUFunction, internal.FnUFunctionGetNativeFunction, uint64(f.Ptr()))
}

// FunctionFlags returns the function's flag word.
func (f UFunction) FunctionFlags(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.TableUFunction, internal.FnUFunctionGetFunctionFlags, uint64(f.Ptr()))
}

// SetFunctionFlags overwrites the function's flag word.
func (f UFunction) SetFunctionFlags(ctx context.Context, flags uint32) error {
	return callVoid(ctx, internal.TableUFunction, internal.FnUFunctionSetFunctionFlags, uint64(f.Ptr()), uint64(flags))
}

// UScriptStruct is the reflected descriptor of a plain data struct.
type UScriptStruct struct {
	UStruct
}

func (UScriptStruct) FromPtr(addr Ptr) UScriptStruct {
	return UScriptStruct{UStruct{UField{UObject{Handle{addr: addr}}}}}
}

func (UScriptStruct) ClassPath() string {
	return "Class /Script/CoreUObject.ScriptStruct"
}

// StructOps is the runtime's layout record for a script struct.
type StructOps struct {
	Size      int32
	Alignment int32
}

// StructOps reads the struct's layout record.
func (s UScriptStruct) StructOps(ctx context.Context) (StructOps, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return StructOps{}, err
	}

	addr, err := callU32(ctx, internal.TableUScriptStruct, internal.FnUScriptStructGetStructOps, uint64(s.Ptr()))
	if err != nil {
		return StructOps{}, err
	}

	if addr == 0 {
		return StructOps{}, fmt.Errorf("script struct %d has no layout record", s.Ptr())
	}

	size, err := e.ReadWord(addr)
	if err != nil {
		return StructOps{}, err
	}

	alignment, err := e.ReadWord(addr + 4)
	if err != nil {
		return StructOps{}, err
	}

	return StructOps{Size: int32(size), Alignment: int32(alignment)}, nil
}

// StructSize returns the byte size of an instance of the struct.
func (s UScriptStruct) StructSize(ctx context.Context) (int32, error) {
	return callI32(ctx, internal.TableUScriptStruct, internal.FnUScriptStructGetStructSize, uint64(s.Ptr()))
}
