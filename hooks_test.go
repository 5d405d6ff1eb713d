package uevr

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	internal "github.com/uevr-go/uevr/internal"
	"github.com/uevr-go/uevr/internal/enginetest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tracking live objects", Label("library"), func() {
	var (
		guest *enginetest.Guest
		ctx   context.Context
	)

	BeforeEach(func() {
		guest, _, ctx = newTestEngine()
	})

	It("activates the tracker and answers liveness queries", func() {
		activations := 0
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookActivate, func(context.Context, ...uint64) ([]uint64, error) {
			activations++
			return nil, nil
		})

		alive := map[uint32]bool{0x10: true}
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookExists, func(_ context.Context, params ...uint64) ([]uint64, error) {
			if alive[api.DecodeU32(params[0])] {
				return []uint64{1}, nil
			}

			return []uint64{0}, nil
		})

		Expect(ActivateObjectHook(ctx)).To(Succeed())
		Expect(activations).To(Equal(1))

		exists, err := ObjectExists(ctx, FromPtr[UObject](0x10))
		Expect(err).To(BeNil())
		Expect(exists).To(BeTrue())

		exists, err = ObjectExists(ctx, FromPtr[UObject](0x20))
		Expect(err).To(BeNil())
		Expect(exists).To(BeFalse())
	})

	It("suspends and resumes the tracker", func() {
		disabled := false
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookIsDisabled, func(context.Context, ...uint64) ([]uint64, error) {
			if disabled {
				return []uint64{1}, nil
			}

			return []uint64{0}, nil
		})
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookSetDisabled, func(_ context.Context, params ...uint64) ([]uint64, error) {
			disabled = params[0] != 0
			return nil, nil
		})

		Expect(SetObjectHookDisabled(ctx, true)).To(Succeed())

		suspended, err := ObjectHookDisabled(ctx)
		Expect(err).To(BeNil())
		Expect(suspended).To(BeTrue())

		Expect(SetObjectHookDisabled(ctx, false)).To(Succeed())

		suspended, err = ObjectHookDisabled(ctx)
		Expect(err).To(BeNil())
		Expect(suspended).To(BeFalse())
	})
})

var _ = Describe("Querying instances by class", Label("library"), func() {
	var (
		guest  *enginetest.Guest
		engine Engine
		ctx    context.Context

		activations int
	)

	provideInstances := func(instances []uint32) *[][]uint64 {
		var calls [][]uint64

		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookGetObjectsByClass, func(_ context.Context, params ...uint64) ([]uint64, error) {
			calls = append(calls, append([]uint64(nil), params...))

			buf := api.DecodeU32(params[1])
			size := api.DecodeU32(params[2])
			if buf == 0 {
				return []uint64{uint64(len(instances))}, nil
			}

			n := uint32(len(instances))
			if n > size {
				n = size
			}

			for i := uint32(0); i < n; i++ {
				guest.WriteWord(buf+i*4, instances[i])
			}

			return []uint64{uint64(n)}, nil
		})

		return &calls
	}

	BeforeEach(func() {
		guest, engine, ctx = newTestEngine()

		activations = 0
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookActivate, func(context.Context, ...uint64) ([]uint64, error) {
			activations++
			return nil, nil
		})
	})

	It("sizes then fills a scratch buffer of instances", func() {
		calls := provideInstances([]uint32{0x10, 0x20, 0x30})

		objects, err := FromPtr[UClass](0x600).ObjectsMatchingRaw(ctx, false)
		Expect(err).To(BeNil())
		Expect(objects).To(HaveLen(3))
		Expect(objects[0].Ptr()).To(Equal(Ptr(0x10)))
		Expect(objects[2].Ptr()).To(Equal(Ptr(0x30)))

		Expect(activations).To(Equal(1))
		Expect(*calls).To(HaveLen(2))
		Expect((*calls)[0][0]).To(Equal(uint64(0x600)))
		Expect((*calls)[0][3]).To(Equal(uint64(0)))
		Expect((*calls)[1][2]).To(Equal(uint64(3)))
	})

	It("yields no instances without a second runtime call", func() {
		calls := provideInstances(nil)

		objects, err := FromPtr[UClass](0x600).ObjectsMatchingRaw(ctx, true)
		Expect(err).To(BeNil())
		Expect(objects).To(BeEmpty())
		Expect(*calls).To(HaveLen(1))
	})

	It("drops instances the runtime rejects during retyping", func() {
		provideInstances([]uint32{0x10, 0x20, 0x30})

		objects := newFakeObjects(guest, engine)
		objects.classPaths["Class /Script/Engine.World"] = 0x600
		objects.isA = func(obj, class uint32) bool { return obj != 0x20 }

		worlds, err := ObjectsMatching[UWorld](ctx, FromPtr[UClass](0x600), true)
		Expect(err).To(BeNil())
		Expect(worlds).To(HaveLen(2))
		Expect(worlds[0].Ptr()).To(Equal(Ptr(0x10)))
		Expect(worlds[1].Ptr()).To(Equal(Ptr(0x30)))
	})

	It("retypes instances without the runtime when asked to", func() {
		provideInstances([]uint32{0x10, 0x20})

		worlds, err := UnsafeObjectsMatching[UWorld](ctx, FromPtr[UClass](0x600), true)
		Expect(err).To(BeNil())
		Expect(worlds).To(HaveLen(2))
	})

	It("returns the first live instance", func() {
		first := map[uint32]uint32{0x600: 0x10}
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookGetFirstObjectByClass, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{uint64(first[api.DecodeU32(params[0])])}, nil
		})

		obj, err := FromPtr[UClass](0x600).FirstObjectMatchingRaw(ctx, false)
		Expect(err).To(BeNil())
		Expect(obj.Ptr()).To(Equal(Ptr(0x10)))

		missing, err := FromPtr[UClass](0x700).FirstObjectMatchingRaw(ctx, false)
		Expect(err).To(BeNil())
		Expect(missing.IsInvalid()).To(BeTrue())
	})

	It("returns a zero handle when no instance passes the type check", func() {
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookGetFirstObjectByClass, func(context.Context, ...uint64) ([]uint64, error) {
			return []uint64{0}, nil
		})

		world, err := FirstObjectMatching[UWorld](ctx, FromPtr[UClass](0x600), false)
		Expect(err).To(BeNil())
		Expect(world.IsInvalid()).To(BeTrue())
	})

	It("returns the class default object", func() {
		guest.Provide(internal.TableUClass, internal.FnUClassGetClassDefaultObject, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{params[0] + 1}, nil
		})

		cdo, err := FromPtr[UClass](0x600).ClassDefaultObject(ctx)
		Expect(err).To(BeNil())
		Expect(cdo.Ptr()).To(Equal(Ptr(0x601)))
	})
})

var _ = Describe("Attaching objects to motion controllers", Label("library"), func() {
	var (
		guest *enginetest.Guest
		ctx   context.Context
	)

	BeforeEach(func() {
		guest, _, ctx = newTestEngine()
	})

	It("attaches and detaches objects", func() {
		states := map[uint32]uint32{}
		next := uint32(0x5000)

		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookGetOrAddMCState, func(_ context.Context, params ...uint64) ([]uint64, error) {
			obj := api.DecodeU32(params[0])
			if states[obj] == 0 {
				states[obj] = next
				next += 0x10
			}

			return []uint64{uint64(states[obj])}, nil
		})
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookGetMCState, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{uint64(states[api.DecodeU32(params[0])])}, nil
		})
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookRemoveMCState, func(_ context.Context, params ...uint64) ([]uint64, error) {
			delete(states, api.DecodeU32(params[0]))
			return nil, nil
		})
		guest.Provide(internal.TableUObjectHook, internal.FnUObjectHookRemoveAllMCStates, func(context.Context, ...uint64) ([]uint64, error) {
			states = map[uint32]uint32{}
			return nil, nil
		})

		obj := FromPtr[UObject](0x10)

		state, err := GetOrAddMotionControllerState(ctx, obj)
		Expect(err).To(BeNil())
		Expect(state.IsInvalid()).To(BeFalse())

		again, err := GetOrAddMotionControllerState(ctx, obj)
		Expect(err).To(BeNil())
		Expect(again).To(Equal(state))

		looked, err := GetMotionControllerState(ctx, obj)
		Expect(err).To(BeNil())
		Expect(looked).To(Equal(state))

		Expect(RemoveMotionControllerState(ctx, obj)).To(Succeed())

		gone, err := GetMotionControllerState(ctx, obj)
		Expect(err).To(BeNil())
		Expect(gone.IsInvalid()).To(BeTrue())

		Expect(RemoveAllMotionControllerStates(ctx)).To(Succeed())
	})

	It("adjusts the attachment through scratch structs", func() {
		state := FromPtr[MotionControllerState](0x5000)

		var rotation Quaternionf
		guest.Provide(internal.TableMotionControllerState, internal.FnMCStateSetRotationOffset, func(_ context.Context, params ...uint64) ([]uint64, error) {
			q, ok := ReadQuaternionf(guest.Memory(), api.DecodeU32(params[1]))
			if !ok {
				return nil, fmt.Errorf("could not read quaternion at address %d", params[1])
			}

			rotation = q
			return nil, nil
		})

		var location Vector3f
		guest.Provide(internal.TableMotionControllerState, internal.FnMCStateSetLocationOffset, func(_ context.Context, params ...uint64) ([]uint64, error) {
			v, ok := ReadVector3f(guest.Memory(), api.DecodeU32(params[1]))
			if !ok {
				return nil, fmt.Errorf("could not read vector at address %d", params[1])
			}

			location = v
			return nil, nil
		})

		Expect(state.SetRotationOffset(ctx, Quaternionf{X: 0, Y: 0.7, Z: 0, W: 0.7})).To(Succeed())
		Expect(rotation).To(Equal(Quaternionf{X: 0, Y: 0.7, Z: 0, W: 0.7}))

		Expect(state.SetLocationOffset(ctx, Vector3f{X: 0, Y: 0, Z: -0.1})).To(Succeed())
		Expect(location).To(Equal(Vector3f{X: 0, Y: 0, Z: -0.1}))

		Expect(guest.DoubleFrees()).To(BeEmpty())
	})

	It("sets hand and permanence flags", func() {
		var got [][]uint64
		record := func(_ context.Context, params ...uint64) ([]uint64, error) {
			got = append(got, append([]uint64(nil), params...))
			return nil, nil
		}

		guest.Provide(internal.TableMotionControllerState, internal.FnMCStateSetHand, record)
		guest.Provide(internal.TableMotionControllerState, internal.FnMCStateSetPermanent, record)

		state := FromPtr[MotionControllerState](0x5000)
		Expect(state.SetHand(ctx, HandRight)).To(Succeed())
		Expect(state.SetPermanent(ctx, true)).To(Succeed())

		Expect(got).To(Equal([][]uint64{
			{0x5000, uint64(HandRight)},
			{0x5000, 1},
		}))
	})
})

var _ = Describe("Intercepting render targets", Label("library"), func() {
	var (
		guest  *enginetest.Guest
		engine Engine
		ctx    context.Context
	)

	BeforeEach(func() {
		guest, engine, ctx = newTestEngine()
	})

	It("activates the pool hook and resolves targets by name", func() {
		activations := 0
		guest.Provide(internal.TableRenderTargetPoolHook, internal.FnRenderHookActivate, func(context.Context, ...uint64) ([]uint64, error) {
			activations++
			return nil, nil
		})

		guest.Provide(internal.TableRenderTargetPoolHook, internal.FnRenderHookGetRenderTarget, func(_ context.Context, params ...uint64) ([]uint64, error) {
			name, err := engine.ReadWideCString(api.DecodeU32(params[0]))
			if err != nil {
				return nil, err
			}

			if name == "SceneColor" {
				return []uint64{0x7E0}, nil
			}

			return []uint64{0}, nil
		})

		Expect(ActivateRenderTargetPoolHook(ctx)).To(Succeed())
		Expect(activations).To(Equal(1))

		target, err := GetRenderTarget(ctx, "SceneColor")
		Expect(err).To(BeNil())
		Expect(target.Ptr()).To(Equal(Ptr(0x7E0)))

		missing, err := GetRenderTarget(ctx, "Bloom")
		Expect(err).To(BeNil())
		Expect(missing.IsInvalid()).To(BeTrue())
	})

	It("returns the stereo scene and UI targets", func() {
		guest.Provide(internal.TableStereoHook, internal.FnStereoHookGetSceneRenderTarget, func(context.Context, ...uint64) ([]uint64, error) {
			return []uint64{0x7E1}, nil
		})
		guest.Provide(internal.TableStereoHook, internal.FnStereoHookGetUIRenderTarget, func(context.Context, ...uint64) ([]uint64, error) {
			return []uint64{0}, nil
		})

		scene, err := GetSceneRenderTarget(ctx)
		Expect(err).To(BeNil())
		Expect(scene.IsInvalid()).To(BeFalse())

		ui, err := GetUIRenderTarget(ctx)
		Expect(err).To(BeNil())
		Expect(ui.IsInvalid()).To(BeTrue())
	})

	It("unwraps the native graphics resource", func() {
		guest.Provide(internal.TableFRHITexture2D, internal.FnFRHITexture2DGetNativeResource, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{params[0] + 0x1000}, nil
		})

		resource, err := FromPtr[FRHITexture2D](0x7E1).NativeResource(ctx)
		Expect(err).To(BeNil())
		Expect(resource).To(Equal(Ptr(0x17E1)))
	})
})

var _ = Describe("Walking the object registry", Label("library"), func() {
	var (
		guest *enginetest.Guest
		ctx   context.Context
	)

	BeforeEach(func() {
		guest, _, ctx = newTestEngine()
	})

	It("describes the registry geometry", func() {
		guest.Provide(internal.TableUObjectArray, internal.FnUObjectArrayIsChunked, func(context.Context, ...uint64) ([]uint64, error) {
			return []uint64{1}, nil
		})
		guest.Provide(internal.TableUObjectArray, internal.FnUObjectArrayIsInlined, func(context.Context, ...uint64) ([]uint64, error) {
			return []uint64{0}, nil
		})
		guest.Provide(internal.TableUObjectArray, internal.FnUObjectArrayGetObjectsOffset, func(context.Context, ...uint64) ([]uint64, error) {
			return []uint64{0x10}, nil
		})
		guest.Provide(internal.TableUObjectArray, internal.FnUObjectArrayGetItemDistance, func(context.Context, ...uint64) ([]uint64, error) {
			return []uint64{24}, nil
		})

		chunked, err := IsChunkedUObjectArray(ctx)
		Expect(err).To(BeNil())
		Expect(chunked).To(BeTrue())

		inlined, err := IsInlinedUObjectArray(ctx)
		Expect(err).To(BeNil())
		Expect(inlined).To(BeFalse())

		offset, err := UObjectArrayObjectsOffset(ctx)
		Expect(err).To(BeNil())
		Expect(offset).To(Equal(uint32(0x10)))

		distance, err := UObjectArrayItemDistance(ctx)
		Expect(err).To(BeNil())
		Expect(distance).To(Equal(uint32(24)))
	})

	It("reads registry slots", func() {
		registry := FromPtr[FUObjectArray](0xA1)

		guest.Provide(internal.TableUObjectArray, internal.FnUObjectArrayGetObjectCount, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{api.EncodeI32(2)}, nil
		})

		guest.Provide(internal.TableUObjectArray, internal.FnUObjectArrayGetObject, func(_ context.Context, params ...uint64) ([]uint64, error) {
			if api.DecodeU32(params[1]) == 0 {
				return []uint64{0x10}, nil
			}

			return []uint64{0}, nil
		})

		item := guest.PlaceWords(0x10, 0x8, 2, 77)
		guest.Provide(internal.TableUObjectArray, internal.FnUObjectArrayGetItem, func(_ context.Context, params ...uint64) ([]uint64, error) {
			if api.DecodeU32(params[1]) == 0 {
				return []uint64{uint64(item)}, nil
			}

			return []uint64{0}, nil
		})

		count, err := registry.ObjectCount(ctx)
		Expect(err).To(BeNil())
		Expect(count).To(Equal(int32(2)))

		obj, err := registry.Object(ctx, 0)
		Expect(err).To(BeNil())
		Expect(obj.Ptr()).To(Equal(Ptr(0x10)))

		empty, err := registry.Object(ctx, 1)
		Expect(err).To(BeNil())
		Expect(empty.IsInvalid()).To(BeTrue())

		slot, err := registry.Item(ctx, 0)
		Expect(err).To(BeNil())
		Expect(slot).To(Equal(FUObjectItem{Object: 0x10, Flags: 0x8, ClusterIndex: 2, SerialNumber: 77}))

		_, err = registry.Item(ctx, 1)
		Expect(err).To(MatchError("object registry has no item at index 1"))
	})
})
