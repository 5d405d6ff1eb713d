package uevr

import (
	"context"

	internal "github.com/uevr-go/uevr/internal"
)

// UField is a member of a reflected type, linked to its siblings.
type UField struct {
	UObject
}

func (UField) FromPtr(addr Ptr) UField {
	return UField{UObject{Handle{addr: addr}}}
}

func (UField) ClassPath() string {
	return "Class /Script/CoreUObject.Field"
}

// Next returns the next field in the owner's member list, a zero handle at
// the end.
func (f UField) Next(ctx context.Context) (UField, error) {
	return callHandle[UField](ctx, internal.TableUField, internal.FnUFieldGetNext, uint64(f.Ptr()))
}

// UStruct describes a reflected composite type: its inheritance chain, its
// members and its storage layout.
type UStruct struct {
	UField
}

func (UStruct) FromPtr(addr Ptr) UStruct {
	return UStruct{UField{UObject{Handle{addr: addr}}}}
}

func (UStruct) ClassPath() string {
	return "Class /Script/CoreUObject.Struct"
}

// SuperStruct returns the parent type, a zero handle at the root of the
// hierarchy.
func (s UStruct) SuperStruct(ctx context.Context) (UStruct, error) {
	return callHandle[UStruct](ctx, internal.TableUStruct, internal.FnUStructGetSuperStruct, uint64(s.Ptr()))
}

// Super is shorthand for SuperStruct.
func (s UStruct) Super(ctx context.Context) (UStruct, error) {
	return s.SuperStruct(ctx)
}

// FindFunction looks up a script function by name, a zero handle when the
// type has none.
func (s UStruct) FindFunction(ctx context.Context, name string) (UFunction, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return UFunction{}, err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		return UFunction{}, err
	}
	defer e.Free(ctx, nameAddr)

	return callHandle[UFunction](ctx, internal.TableUStruct, internal.FnUStructFindFunction, uint64(s.Ptr()), uint64(nameAddr))
}

// FindProperty looks up a reflected property by name, a zero handle when
// the type has none.
func (s UStruct) FindProperty(ctx context.Context, name string) (FProperty, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return FProperty{}, err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		return FProperty{}, err
	}
	defer e.Free(ctx, nameAddr)

	return callHandle[FProperty](ctx, internal.TableUStruct, internal.FnUStructFindProperty, uint64(s.Ptr()), uint64(nameAddr))
}

// ChildProperties returns the head of the property member list.
func (s UStruct) ChildProperties(ctx context.Context) (FField, error) {
	return callHandle[FField](ctx, internal.TableUStruct, internal.FnUStructGetChildProperties, uint64(s.Ptr()))
}

// Children returns the head of the field member list.
func (s UStruct) Children(ctx context.Context) (UField, error) {
	return callHandle[UField](ctx, internal.TableUStruct, internal.FnUStructGetChildren, uint64(s.Ptr()))
}

// PropertiesSize returns the byte size of an instance of the type.
func (s UStruct) PropertiesSize(ctx context.Context) (int32, error) {
	return callI32(ctx, internal.TableUStruct, internal.FnUStructGetPropertiesSize, uint64(s.Ptr()))
}

// MinAlignment returns the minimum alignment of an instance of the type.
func (s UStruct) MinAlignment(ctx context.Context) (int32, error) {
	return callI32(ctx, internal.TableUStruct, internal.FnUStructGetMinAlignment, uint64(s.Ptr()))
}
