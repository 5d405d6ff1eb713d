package uevr

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	internal "github.com/uevr-go/uevr/internal"
	"github.com/uevr-go/uevr/internal/enginetest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Wrapping foreign object handles", Label("library"), func() {
	It("round trips raw addresses", func() {
		obj := FromPtr[UObject](0x4B1D)

		Expect(obj.Ptr()).To(Equal(Ptr(0x4B1D)))
		Expect(obj.IsInvalid()).To(BeFalse())
		Expect(FromPtr[UObject](obj.Ptr())).To(Equal(obj))
	})

	It("treats the null address as the invalid handle", func() {
		Expect(FromPtr[UObject](0).IsInvalid()).To(BeTrue())
		Expect(UObject{}.IsInvalid()).To(BeTrue())
	})

	It("reports null addresses through FromPtrSafe", func() {
		_, ok := FromPtrSafe[UWorld](0)
		Expect(ok).To(BeFalse())

		world, ok := FromPtrSafe[UWorld](0x77)
		Expect(ok).To(BeTrue())
		Expect(world).To(Equal(FromPtr[UWorld](0x77)))
	})

	It("keeps the address across unchecked casts", func() {
		obj := FromPtr[UObject](0x1234)

		world := UnsafeCast[UWorld](obj)
		Expect(world.Ptr()).To(Equal(obj.Ptr()))

		back := UnsafeCast[UObject](world)
		Expect(back).To(Equal(obj))
	})

	It("builds capability chains from a single address", func() {
		class := FromPtr[UClass](0x9000)
		Expect(class.UStruct.UField.UObject.Ptr()).To(Equal(Ptr(0x9000)))
		Expect(class.Ptr()).To(Equal(Ptr(0x9000)))

		engine := FromPtr[UGameEngine](0x9100)
		Expect(engine.UEngine.UObject.Ptr()).To(Equal(Ptr(0x9100)))
	})
})

var _ = Describe("Checking casts with the runtime", Label("library"), func() {
	var (
		guest  *enginetest.Guest
		engine Engine
		ctx    context.Context

		classes   map[string]uint32
		instances map[uint32]uint32
		lookups   int
		checks    int
	)

	BeforeEach(func() {
		guest, engine, ctx = newTestEngine()

		classes = map[string]uint32{}
		instances = map[uint32]uint32{}
		lookups = 0
		checks = 0

		guest.Provide(internal.TableUObjectArray, internal.FnUObjectArrayFindUObject, func(_ context.Context, params ...uint64) ([]uint64, error) {
			lookups++

			path, err := engine.ReadWideCString(api.DecodeU32(params[0]))
			if err != nil {
				return nil, err
			}

			return []uint64{uint64(classes[path])}, nil
		})

		guest.Provide(internal.TableUObject, internal.FnUObjectIsA, func(_ context.Context, params ...uint64) ([]uint64, error) {
			checks++

			if instances[api.DecodeU32(params[0])] == api.DecodeU32(params[1]) {
				return []uint64{1}, nil
			}

			return []uint64{0}, nil
		})
	})

	It("returns the class descriptor and caches it", func() {
		classes["Class /Script/Engine.World"] = 0x600

		class, err := StaticClass[UWorld](ctx)
		Expect(err).To(BeNil())
		Expect(class.Ptr()).To(Equal(Ptr(0x600)))

		_, err = StaticClass[UWorld](ctx)
		Expect(err).To(BeNil())
		Expect(lookups).To(Equal(1))
	})

	It("does not cache failed descriptor lookups", func() {
		class, err := StaticClass[UWorld](ctx)
		Expect(err).To(BeNil())
		Expect(class.IsInvalid()).To(BeTrue())

		classes["Class /Script/Engine.World"] = 0x600

		class, err = StaticClass[UWorld](ctx)
		Expect(err).To(BeNil())
		Expect(class.Ptr()).To(Equal(Ptr(0x600)))
		Expect(lookups).To(Equal(2))
	})

	It("retypes objects the runtime confirms", func() {
		classes["Class /Script/Engine.World"] = 0x600
		instances[0x1000] = 0x600

		world, err := Cast[UWorld](ctx, FromPtr[UObject](0x1000))
		Expect(err).To(BeNil())
		Expect(world.Ptr()).To(Equal(Ptr(0x1000)))
	})

	It("yields a zero handle when the runtime denies the class", func() {
		classes["Class /Script/Engine.World"] = 0x600
		instances[0x1000] = 0x777

		world, err := Cast[UWorld](ctx, FromPtr[UObject](0x1000))
		Expect(err).To(BeNil())
		Expect(world.IsInvalid()).To(BeTrue())
	})

	It("yields a zero handle for null objects without asking the runtime", func() {
		world, err := Cast[UWorld](ctx, UObject{})
		Expect(err).To(BeNil())
		Expect(world.IsInvalid()).To(BeTrue())
		Expect(lookups).To(BeZero())
		Expect(checks).To(BeZero())
	})

	It("yields a zero handle when the class is not loaded", func() {
		world, err := Cast[UWorld](ctx, FromPtr[UObject](0x1000))
		Expect(err).To(BeNil())
		Expect(world.IsInvalid()).To(BeTrue())
		Expect(checks).To(BeZero())
	})

	It("asks the runtime on every cast", func() {
		classes["Class /Script/Engine.World"] = 0x600
		instances[0x1000] = 0x600

		for i := 0; i < 3; i++ {
			world, err := Cast[UWorld](ctx, FromPtr[UObject](0x1000))
			Expect(err).To(BeNil())
			Expect(world.IsInvalid()).To(BeFalse())
		}

		Expect(lookups).To(Equal(1))
		Expect(checks).To(Equal(3))
	})

	It("propagates runtime failures", func() {
		classes["Class /Script/Engine.World"] = 0x600

		base := guest.TableBase(internal.TableUObject)
		guest.WriteWord(base+4*internal.FnUObjectIsA.Entry, 0)

		_, err := Cast[UWorld](ctx, FromPtr[UObject](0x1000))
		Expect(err).To(MatchError(ContainSubstring("uobject.is_a is not provided")))
	})
})
