package uevr

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	internal "github.com/uevr-go/uevr/internal"
	"github.com/uevr-go/uevr/internal/enginetest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Walking type hierarchies", Label("library"), func() {
	var (
		guest  *enginetest.Guest
		engine Engine
		ctx    context.Context
	)

	const (
		pawn       = 0x800
		actor      = 0x810
		objectRoot = 0x820
	)

	BeforeEach(func() {
		guest, engine, ctx = newTestEngine()

		supers := map[uint32]uint32{pawn: actor, actor: objectRoot}
		guest.Provide(internal.TableUStruct, internal.FnUStructGetSuperStruct, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{uint64(supers[api.DecodeU32(params[0])])}, nil
		})

		funcs := map[string]uint32{"Jump": 0xF1}
		guest.Provide(internal.TableUStruct, internal.FnUStructFindFunction, func(_ context.Context, params ...uint64) ([]uint64, error) {
			name, err := engine.ReadWideCString(api.DecodeU32(params[1]))
			if err != nil {
				return nil, err
			}

			return []uint64{uint64(funcs[name])}, nil
		})

		props := map[string]uint32{"Health": 0x910}
		guest.Provide(internal.TableUStruct, internal.FnUStructFindProperty, func(_ context.Context, params ...uint64) ([]uint64, error) {
			name, err := engine.ReadWideCString(api.DecodeU32(params[1]))
			if err != nil {
				return nil, err
			}

			return []uint64{uint64(props[name])}, nil
		})
	})

	It("walks the inheritance chain to its root", func() {
		parent, err := FromPtr[UStruct](pawn).SuperStruct(ctx)
		Expect(err).To(BeNil())
		Expect(parent.Ptr()).To(Equal(Ptr(actor)))

		grandparent, err := parent.Super(ctx)
		Expect(err).To(BeNil())
		Expect(grandparent.Ptr()).To(Equal(Ptr(objectRoot)))

		top, err := grandparent.Super(ctx)
		Expect(err).To(BeNil())
		Expect(top.IsInvalid()).To(BeTrue())
	})

	It("finds functions and properties by name", func() {
		jump, err := FromPtr[UStruct](pawn).FindFunction(ctx, "Jump")
		Expect(err).To(BeNil())
		Expect(jump.Ptr()).To(Equal(Ptr(0xF1)))

		health, err := FromPtr[UStruct](pawn).FindProperty(ctx, "Health")
		Expect(err).To(BeNil())
		Expect(health.Ptr()).To(Equal(Ptr(0x910)))
	})

	It("returns zero handles for unknown members", func() {
		fn, err := FromPtr[UStruct](pawn).FindFunction(ctx, "Fly")
		Expect(err).To(BeNil())
		Expect(fn.IsInvalid()).To(BeTrue())

		prop, err := FromPtr[UStruct](pawn).FindProperty(ctx, "Mana")
		Expect(err).To(BeNil())
		Expect(prop.IsInvalid()).To(BeTrue())

		Expect(guest.DoubleFrees()).To(BeEmpty())
	})

	It("walks the field member list", func() {
		guest.Provide(internal.TableUStruct, internal.FnUStructGetChildren, func(_ context.Context, params ...uint64) ([]uint64, error) {
			if api.DecodeU32(params[0]) == pawn {
				return []uint64{0x700}, nil
			}

			return []uint64{0}, nil
		})

		next := map[uint32]uint32{0x700: 0x701, 0x701: 0x702}
		guest.Provide(internal.TableUField, internal.FnUFieldGetNext, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{uint64(next[api.DecodeU32(params[0])])}, nil
		})

		var visited []Ptr

		field, err := FromPtr[UStruct](pawn).Children(ctx)
		Expect(err).To(BeNil())

		for !field.IsInvalid() {
			visited = append(visited, field.Ptr())
			field, err = field.Next(ctx)
			Expect(err).To(BeNil())
		}

		Expect(visited).To(Equal([]Ptr{0x700, 0x701, 0x702}))
	})

	It("reports instance layout", func() {
		guest.Provide(internal.TableUStruct, internal.FnUStructGetChildProperties, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{0x910}, nil
		})
		guest.Provide(internal.TableUStruct, internal.FnUStructGetPropertiesSize, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{api.EncodeI32(0x2A8)}, nil
		})
		guest.Provide(internal.TableUStruct, internal.FnUStructGetMinAlignment, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{api.EncodeI32(16)}, nil
		})

		head, err := FromPtr[UStruct](pawn).ChildProperties(ctx)
		Expect(err).To(BeNil())
		Expect(head.Ptr()).To(Equal(Ptr(0x910)))

		size, err := FromPtr[UStruct](pawn).PropertiesSize(ctx)
		Expect(err).To(BeNil())
		Expect(size).To(Equal(int32(0x2A8)))

		alignment, err := FromPtr[UStruct](pawn).MinAlignment(ctx)
		Expect(err).To(BeNil())
		Expect(alignment).To(Equal(int32(16)))
	})
})

var _ = Describe("Describing reflected fields", Label("library"), func() {
	var (
		guest *enginetest.Guest
		ctx   context.Context
	)

	const (
		health     = 0x910
		velocity   = 0x920
		floatClass = 0x7F0
	)

	BeforeEach(func() {
		guest, _, ctx = newTestEngine()

		names := map[uint32]string{0x911: "Health", 0x7F1: "FloatProperty"}

		guest.Provide(internal.TableFField, internal.FnFFieldGetFName, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{params[0] + 1}, nil
		})
		guest.Provide(internal.TableFFieldClass, internal.FnFFieldClassGetFName, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{params[0] + 1}, nil
		})
		guest.Provide(internal.TableFName, internal.FnFNameToString, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return writeWideResult(guest, names[api.DecodeU32(params[0])], api.DecodeU32(params[1]), api.DecodeU32(params[2]), false)
		})
	})

	It("walks sibling fields", func() {
		next := map[uint32]uint32{health: velocity}
		guest.Provide(internal.TableFField, internal.FnFFieldGetNext, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{uint64(next[api.DecodeU32(params[0])])}, nil
		})

		sibling, err := FromPtr[FField](health).Next(ctx)
		Expect(err).To(BeNil())
		Expect(sibling.Ptr()).To(Equal(Ptr(velocity)))

		end, err := sibling.Next(ctx)
		Expect(err).To(BeNil())
		Expect(end.IsInvalid()).To(BeTrue())
	})

	It("names a field through its name handle", func() {
		name, err := FromPtr[FField](health).Name(ctx)
		Expect(err).To(BeNil())
		Expect(name).To(Equal("Health"))
	})

	It("classifies a field", func() {
		guest.Provide(internal.TableFField, internal.FnFFieldGetClass, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{floatClass}, nil
		})

		class, err := FromPtr[FField](health).Class(ctx)
		Expect(err).To(BeNil())
		Expect(class.Ptr()).To(Equal(Ptr(floatClass)))

		kind, err := class.Name(ctx)
		Expect(err).To(BeNil())
		Expect(kind).To(Equal("FloatProperty"))
	})
})

var _ = Describe("Inspecting reflected properties", Label("library"), func() {
	var (
		guest *enginetest.Guest
		ctx   context.Context
	)

	BeforeEach(func() {
		guest, _, ctx = newTestEngine()
	})

	It("reads property placement and flags", func() {
		guest.Provide(internal.TableFProperty, internal.FnFPropertyGetOffset, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{api.EncodeI32(0x30)}, nil
		})
		guest.Provide(internal.TableFProperty, internal.FnFPropertyGetPropertyFlags, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{0x8000000000000001}, nil
		})

		prop := FromPtr[FProperty](0x910)

		offset, err := prop.Offset(ctx)
		Expect(err).To(BeNil())
		Expect(offset).To(Equal(int32(0x30)))

		flags, err := prop.PropertyFlags(ctx)
		Expect(err).To(BeNil())
		Expect(flags).To(Equal(uint64(0x8000000000000001)))
	})

	It("reports parameter roles", func() {
		for _, entry := range []struct {
			fn     internal.TableFunc
			answer uint64
		}{
			{internal.FnFPropertyIsParam, 1},
			{internal.FnFPropertyIsOutParam, 0},
			{internal.FnFPropertyIsReturnParam, 0},
			{internal.FnFPropertyIsReferenceParam, 1},
			{internal.FnFPropertyIsPOD, 1},
		} {
			answer := entry.answer
			guest.Provide(internal.TableFProperty, entry.fn, func(context.Context, ...uint64) ([]uint64, error) {
				return []uint64{answer}, nil
			})
		}

		prop := FromPtr[FProperty](0x910)

		isParam, err := prop.IsParam(ctx)
		Expect(err).To(BeNil())
		Expect(isParam).To(BeTrue())

		isOut, err := prop.IsOutParam(ctx)
		Expect(err).To(BeNil())
		Expect(isOut).To(BeFalse())

		isReturn, err := prop.IsReturnParam(ctx)
		Expect(err).To(BeNil())
		Expect(isReturn).To(BeFalse())

		isRef, err := prop.IsReferenceParam(ctx)
		Expect(err).To(BeNil())
		Expect(isRef).To(BeTrue())

		isPOD, err := prop.IsPOD(ctx)
		Expect(err).To(BeNil())
		Expect(isPOD).To(BeTrue())
	})

	It("unwraps container element types", func() {
		guest.Provide(internal.TableFArrayProperty, internal.FnFArrayPropertyGetInner, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{params[0] + 4}, nil
		})
		guest.Provide(internal.TableFStructProperty, internal.FnFStructPropertyGetStruct, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{0x930}, nil
		})
		guest.Provide(internal.TableFEnumProperty, internal.FnFEnumPropertyGetUnderlyingProp, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{0x940}, nil
		})
		guest.Provide(internal.TableFEnumProperty, internal.FnFEnumPropertyGetEnum, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{0x950}, nil
		})

		inner, err := FromPtr[FArrayProperty](0x920).Inner(ctx)
		Expect(err).To(BeNil())
		Expect(inner.Ptr()).To(Equal(Ptr(0x924)))

		nested, err := FromPtr[FStructProperty](0x928).Struct(ctx)
		Expect(err).To(BeNil())
		Expect(nested.Ptr()).To(Equal(Ptr(0x930)))

		underlying, err := FromPtr[FEnumProperty](0x93C).UnderlyingProp(ctx)
		Expect(err).To(BeNil())
		Expect(underlying.Ptr()).To(Equal(Ptr(0x940)))

		enum, err := FromPtr[FEnumProperty](0x93C).Enum(ctx)
		Expect(err).To(BeNil())
		Expect(enum.Ptr()).To(Equal(Ptr(0x950)))
	})
})

var _ = Describe("Reading packed bools", Label("library"), func() {
	var (
		guest *enginetest.Guest
		ctx   context.Context
	)

	const (
		boolProp = 0x960
		instance = 0x10
	)

	BeforeEach(func() {
		guest, _, ctx = newTestEngine()
	})

	It("reads bitfield geometry", func() {
		for _, entry := range []struct {
			fn     internal.TableFunc
			answer uint64
		}{
			{internal.FnFBoolPropertyGetFieldSize, 1},
			{internal.FnFBoolPropertyGetByteOffset, 2},
			{internal.FnFBoolPropertyGetByteMask, 0x4},
			{internal.FnFBoolPropertyGetFieldMask, 0x4},
		} {
			answer := entry.answer
			guest.Provide(internal.TableFBoolProperty, entry.fn, func(context.Context, ...uint64) ([]uint64, error) {
				return []uint64{answer}, nil
			})
		}

		prop := FromPtr[FBoolProperty](boolProp)

		fieldSize, err := prop.FieldSize(ctx)
		Expect(err).To(BeNil())
		Expect(fieldSize).To(Equal(uint32(1)))

		byteOffset, err := prop.ByteOffset(ctx)
		Expect(err).To(BeNil())
		Expect(byteOffset).To(Equal(uint32(2)))

		byteMask, err := prop.ByteMask(ctx)
		Expect(err).To(BeNil())
		Expect(byteMask).To(Equal(uint32(0x4)))

		fieldMask, err := prop.FieldMask(ctx)
		Expect(err).To(BeNil())
		Expect(fieldMask).To(Equal(uint32(0x4)))
	})

	It("round trips a packed bool through an object", func() {
		packed := uint64(0)
		var sets [][]uint64

		guest.Provide(internal.TableFBoolProperty, internal.FnFBoolPropertyGetValueFromObject, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{(packed & 0x4) >> 2}, nil
		})
		guest.Provide(internal.TableFBoolProperty, internal.FnFBoolPropertySetValueInObject, func(_ context.Context, params ...uint64) ([]uint64, error) {
			sets = append(sets, append([]uint64(nil), params...))
			if params[2] != 0 {
				packed |= 0x4
			} else {
				packed &^= 0x4
			}

			return nil, nil
		})

		prop := FromPtr[FBoolProperty](boolProp)
		obj := FromPtr[UObject](instance)

		value, err := prop.ValueFromObject(ctx, obj)
		Expect(err).To(BeNil())
		Expect(value).To(BeFalse())

		Expect(prop.SetValueInObject(ctx, obj, true)).To(Succeed())

		value, err = prop.ValueFromObject(ctx, obj)
		Expect(err).To(BeNil())
		Expect(value).To(BeTrue())

		Expect(prop.SetValueInObject(ctx, obj, false)).To(Succeed())

		value, err = prop.ValueFromObject(ctx, obj)
		Expect(err).To(BeNil())
		Expect(value).To(BeFalse())

		Expect(sets).To(Equal([][]uint64{
			{boolProp, instance, 1},
			{boolProp, instance, 0},
		}))
	})

	It("round trips a packed bool through raw storage", func() {
		packed := uint64(0x4)

		guest.Provide(internal.TableFBoolProperty, internal.FnFBoolPropertyGetValueFromPropbase, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{(packed & 0x4) >> 2}, nil
		})
		guest.Provide(internal.TableFBoolProperty, internal.FnFBoolPropertySetValueInPropbase, func(_ context.Context, params ...uint64) ([]uint64, error) {
			if params[2] != 0 {
				packed |= 0x4
			} else {
				packed &^= 0x4
			}

			return nil, nil
		})

		prop := FromPtr[FBoolProperty](boolProp)

		value, err := prop.ValueFromPropBase(ctx, 0x40)
		Expect(err).To(BeNil())
		Expect(value).To(BeTrue())

		Expect(prop.SetValueInPropBase(ctx, 0x40, false)).To(Succeed())

		value, err = prop.ValueFromPropBase(ctx, 0x40)
		Expect(err).To(BeNil())
		Expect(value).To(BeFalse())
	})
})

var _ = Describe("Invoking script functions", Label("library"), func() {
	var (
		guest *enginetest.Guest
		ctx   context.Context
	)

	BeforeEach(func() {
		guest, _, ctx = newTestEngine()
	})

	It("returns the native thunk and flag word", func() {
		flags := uint32(0x00400000)

		guest.Provide(internal.TableUFunction, internal.FnUFunctionGetNativeFunction, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{0xBEE0}, nil
		})
		guest.Provide(internal.TableUFunction, internal.FnUFunctionGetFunctionFlags, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{uint64(flags)}, nil
		})
		guest.Provide(internal.TableUFunction, internal.FnUFunctionSetFunctionFlags, func(_ context.Context, params ...uint64) ([]uint64, error) {
			flags = api.DecodeU32(params[1])
			return nil, nil
		})

		fn := FromPtr[UFunction](0xF1)

		thunk, err := fn.NativeFunction(ctx)
		Expect(err).To(BeNil())
		Expect(thunk).To(Equal(Ptr(0xBEE0)))

		before, err := fn.FunctionFlags(ctx)
		Expect(err).To(BeNil())
		Expect(before).To(Equal(uint32(0x00400000)))

		Expect(fn.SetFunctionFlags(ctx, 0x00400400)).To(Succeed())

		after, err := fn.FunctionFlags(ctx)
		Expect(err).To(BeNil())
		Expect(after).To(Equal(uint32(0x00400400)))
	})

	It("invokes through the owning object", func() {
		var calls [][]uint64
		guest.Provide(internal.TableUObject, internal.FnUObjectProcessEvent, func(_ context.Context, params ...uint64) ([]uint64, error) {
			calls = append(calls, append([]uint64(nil), params...))
			return nil, nil
		})

		fn := FromPtr[UFunction](0xF1)
		Expect(fn.Call(ctx, FromPtr[UObject](0x10), 0x40)).To(Succeed())

		Expect(calls).To(Equal([][]uint64{{0x10, 0xF1, 0x40}}))
	})

	It("ignores calls on a zero handle", func() {
		fn := FromPtr[UFunction](0xF1)
		Expect(fn.Call(ctx, UObject{}, 0x40)).To(Succeed())
	})
})

var _ = Describe("Reading struct layouts", Label("library"), func() {
	var (
		guest *enginetest.Guest
		ctx   context.Context
	)

	BeforeEach(func() {
		guest, _, ctx = newTestEngine()
	})

	It("reads the layout record", func() {
		ops := guest.PlaceWords(48, 16)
		guest.Provide(internal.TableUScriptStruct, internal.FnUScriptStructGetStructOps, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{uint64(ops)}, nil
		})

		layout, err := FromPtr[UScriptStruct](0x930).StructOps(ctx)
		Expect(err).To(BeNil())
		Expect(layout).To(Equal(StructOps{Size: 48, Alignment: 16}))
	})

	It("fails when the struct has no layout record", func() {
		guest.Provide(internal.TableUScriptStruct, internal.FnUScriptStructGetStructOps, func(context.Context, ...uint64) ([]uint64, error) {
			return []uint64{0}, nil
		})

		_, err := FromPtr[UScriptStruct](0x930).StructOps(ctx)
		Expect(err).To(MatchError("script struct 2352 has no layout record"))
	})

	It("returns the struct size", func() {
		guest.Provide(internal.TableUScriptStruct, internal.FnUScriptStructGetStructSize, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{api.EncodeI32(48)}, nil
		})

		size, err := FromPtr[UScriptStruct](0x930).StructSize(ctx)
		Expect(err).To(BeNil())
		Expect(size).To(Equal(int32(48)))
	})
})
