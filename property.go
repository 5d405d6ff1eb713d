package uevr

import (
	"context"

	internal "github.com/uevr-go/uevr/internal"
)

// FField is a member of a reflected type in the runtime's lightweight field
// system. Fields are not objects, they only carry a name, a field class and
// a link to the next member.
type FField struct {
	Handle
}

func (FField) FromPtr(addr Ptr) FField {
	return FField{Handle{addr: addr}}
}

// Next returns the next field in the member list, a zero handle at the end.
func (f FField) Next(ctx context.Context) (FField, error) {
	return callHandle[FField](ctx, internal.TableFField, internal.FnFFieldGetNext, uint64(f.Ptr()))
}

// FName returns the field's name handle.
func (f FField) FName(ctx context.Context) (FName, error) {
	return callHandle[FName](ctx, internal.TableFField, internal.FnFFieldGetFName, uint64(f.Ptr()))
}

// Name returns the field's name.
func (f FField) Name(ctx context.Context) (string, error) {
	name, err := f.FName(ctx)
	if err != nil {
		return "", err
	}

	return name.String(ctx)
}

// Class returns the field's field class descriptor.
func (f FField) Class(ctx context.Context) (FFieldClass, error) {
	return callHandle[FFieldClass](ctx, internal.TableFField, internal.FnFFieldGetClass, uint64(f.Ptr()))
}

// FFieldClass describes the kind of a field, for example BoolProperty.
type FFieldClass struct {
	Handle
}

func (FFieldClass) FromPtr(addr Ptr) FFieldClass {
	return FFieldClass{Handle{addr: addr}}
}

// FName returns the field class name handle.
func (c FFieldClass) FName(ctx context.Context) (FName, error) {
	return callHandle[FName](ctx, internal.TableFFieldClass, internal.FnFFieldClassGetFName, uint64(c.Ptr()))
}

// Name returns the field class name.
func (c FFieldClass) Name(ctx context.Context) (string, error) {
	name, err := c.FName(ctx)
	if err != nil {
		return "", err
	}

	return name.String(ctx)
}

// FProperty is a reflected property of an object or struct.
type FProperty struct {
	FField
}

func (FProperty) FromPtr(addr Ptr) FProperty {
	return FProperty{FField{Handle{addr: addr}}}
}

// Offset returns the byte offset of the property inside its owner.
func (p FProperty) Offset(ctx context.Context) (int32, error) {
	return callI32(ctx, internal.TableFProperty, internal.FnFPropertyGetOffset, uint64(p.Ptr()))
}

// PropertyFlags returns the property's flag word.
func (p FProperty) PropertyFlags(ctx context.Context) (uint64, error) {
	return callU64(ctx, internal.TableFProperty, internal.FnFPropertyGetPropertyFlags, uint64(p.Ptr()))
}

// IsParam reports whether the property is a function parameter.
func (p FProperty) IsParam(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.TableFProperty, internal.FnFPropertyIsParam, uint64(p.Ptr()))
}

// IsOutParam reports whether the property is an output parameter.
func (p FProperty) IsOutParam(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.TableFProperty, internal.FnFPropertyIsOutParam, uint64(p.Ptr()))
}

// IsReturnParam reports whether the property is a return value.
func (p FProperty) IsReturnParam(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.TableFProperty, internal.FnFPropertyIsReturnParam, uint64(p.Ptr()))
}

// IsReferenceParam reports whether the property is passed by reference.
func (p FProperty) IsReferenceParam(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.TableFProperty, internal.FnFPropertyIsReferenceParam, uint64(p.Ptr()))
}

// IsPOD reports whether the property is plain data.
func (p FProperty) IsPOD(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.TableFProperty, internal.FnFPropertyIsPOD, uint64(p.Ptr()))
}

// FNumericProperty is a property holding a numeric value.
type FNumericProperty struct {
	FProperty
}

func (FNumericProperty) FromPtr(addr Ptr) FNumericProperty {
	return FNumericProperty{FProperty{FField{Handle{addr: addr}}}}
}

// FArrayProperty is a property holding a runtime array.
type FArrayProperty struct {
	FProperty
}

func (FArrayProperty) FromPtr(addr Ptr) FArrayProperty {
	return FArrayProperty{FProperty{FField{Handle{addr: addr}}}}
}

// Inner returns the property describing the array's elements.
func (p FArrayProperty) Inner(ctx context.Context) (FProperty, error) {
	return callHandle[FProperty](ctx, internal.TableFArrayProperty, internal.FnFArrayPropertyGetInner, uint64(p.Ptr()))
}

// FBoolProperty is a property holding a bool, possibly packed into a
// bitfield. Its accessors apply the runtime's byte and field masks.
type FBoolProperty struct {
	FProperty
}

func (FBoolProperty) FromPtr(addr Ptr) FBoolProperty {
	return FBoolProperty{FProperty{FField{Handle{addr: addr}}}}
}

// FieldSize returns the size in bytes of the bitfield the bool lives in.
func (p FBoolProperty) FieldSize(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.TableFBoolProperty, internal.FnFBoolPropertyGetFieldSize, uint64(p.Ptr()))
}

// ByteOffset returns the byte offset of the bitfield within the property
// storage.
func (p FBoolProperty) ByteOffset(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.TableFBoolProperty, internal.FnFBoolPropertyGetByteOffset, uint64(p.Ptr()))
}

// ByteMask returns the mask selecting the bool's bit within its byte.
func (p FBoolProperty) ByteMask(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.TableFBoolProperty, internal.FnFBoolPropertyGetByteMask, uint64(p.Ptr()))
}

// FieldMask returns the mask selecting the bool's bit within the bitfield.
func (p FBoolProperty) FieldMask(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.TableFBoolProperty, internal.FnFBoolPropertyGetFieldMask, uint64(p.Ptr()))
}

// ValueFromObject reads the bool from an object instance.
func (p FBoolProperty) ValueFromObject(ctx context.Context, obj UObject) (bool, error) {
	return callBool(ctx, internal.TableFBoolProperty, internal.FnFBoolPropertyGetValueFromObject, uint64(p.Ptr()), uint64(obj.Ptr()))
}

// SetValueInObject writes the bool into an object instance.
func (p FBoolProperty) SetValueInObject(ctx context.Context, obj UObject, value bool) error {
	return callVoid(ctx, internal.TableFBoolProperty, internal.FnFBoolPropertySetValueInObject, uint64(p.Ptr()), uint64(obj.Ptr()), boolArg(value))
}

// ValueFromPropBase reads the bool from raw property storage.
func (p FBoolProperty) ValueFromPropBase(ctx context.Context, base Ptr) (bool, error) {
	return callBool(ctx, internal.TableFBoolProperty, internal.FnFBoolPropertyGetValueFromPropbase, uint64(p.Ptr()), uint64(base))
}

// SetValueInPropBase writes the bool into raw property storage.
func (p FBoolProperty) SetValueInPropBase(ctx context.Context, base Ptr, value bool) error {
	return callVoid(ctx, internal.TableFBoolProperty, internal.FnFBoolPropertySetValueInPropbase, uint64(p.Ptr()), uint64(base), boolArg(value))
}

// FStructProperty is a property holding a nested struct.
type FStructProperty struct {
	FProperty
}

func (FStructProperty) FromPtr(addr Ptr) FStructProperty {
	return FStructProperty{FProperty{FField{Handle{addr: addr}}}}
}

// Struct returns the descriptor of the nested struct type.
func (p FStructProperty) Struct(ctx context.Context) (UScriptStruct, error) {
	return callHandle[UScriptStruct](ctx, internal.TableFStructProperty, internal.FnFStructPropertyGetStruct, uint64(p.Ptr()))
}

// FEnumProperty is a property holding an enumeration value.
type FEnumProperty struct {
	FProperty
}

func (FEnumProperty) FromPtr(addr Ptr) FEnumProperty {
	return FEnumProperty{FProperty{FField{Handle{addr: addr}}}}
}

// UnderlyingProp returns the numeric property backing the enum storage.
func (p FEnumProperty) UnderlyingProp(ctx context.Context) (FNumericProperty, error) {
	return callHandle[FNumericProperty](ctx, internal.TableFEnumProperty, internal.FnFEnumPropertyGetUnderlyingProp, uint64(p.Ptr()))
}

// Enum returns the enumeration descriptor.
func (p FEnumProperty) Enum(ctx context.Context) (UEnum, error) {
	return callHandle[UEnum](ctx, internal.TableFEnumProperty, internal.FnFEnumPropertyGetEnum, uint64(p.Ptr()))
}
