package uevr

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero/api"

	internal "github.com/uevr-go/uevr/internal"
	"github.com/uevr-go/uevr/internal/enginetest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Resolving runtime function tables", Label("library"), func() {
	It("walks pointer fields from the parameter block", func() {
		guest, engine, ctx := newTestEngine()
		want := guest.TableBase(internal.TableUObject)

		base, err := engine.TablePtr(ctx, internal.TableUObject)
		Expect(err).To(BeNil())
		Expect(base).To(Equal(want))
	})

	It("keeps the first resolution when the runtime field changes", func() {
		guest, engine, ctx := newTestEngine()
		want := guest.TableBase(internal.TableConsole)

		first, err := engine.TablePtr(ctx, internal.TableConsole)
		Expect(err).To(BeNil())
		Expect(first).To(Equal(want))

		sdk := guest.ReadWord(guest.ParamAddr() + 4*internal.ParamFieldSDK)
		guest.WriteWord(sdk+4*internal.SDKFieldConsole, 0xDEAD)

		second, err := engine.TablePtr(ctx, internal.TableConsole)
		Expect(err).To(BeNil())
		Expect(second).To(Equal(first))

		// A fresh slot with the same path sees the rewritten field.
		fresh := NewTableSlot("console_fresh", TableRootSDK, internal.SDKFieldConsole)
		latest, err := engine.TablePtr(ctx, fresh)
		Expect(err).To(BeNil())
		Expect(latest).To(Equal(uint32(0xDEAD)))
	})

	It("resolves concurrently to a single address", func() {
		guest, engine, ctx := newTestEngine()
		want := guest.TableBase(internal.TableVR)

		results := make([]uint32, 32)
		errs := make([]error, 32)

		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = engine.TablePtr(ctx, internal.TableVR)
			}(i)
		}
		wg.Wait()

		for i := range results {
			Expect(errs[i]).To(BeNil())
			Expect(results[i]).To(Equal(want))
		}
	})

	It("reports tables the runtime does not provide", func() {
		_, engine, ctx := newTestEngine()

		_, err := engine.TablePtr(ctx, internal.TableStereoHook)
		Expect(err).To(MatchError(ContainSubstring("not provided by the runtime")))
	})

	It("reaches nested tables through intermediate blocks", func() {
		guest, engine, ctx := newTestEngine()
		want := guest.TableBase(internal.TableMotionControllerState)

		base, err := engine.TablePtr(ctx, internal.TableMotionControllerState)
		Expect(err).To(BeNil())
		Expect(base).To(Equal(want))

		// The state table hangs off the object hook table, not the SDK block.
		hook := guest.TableBase(internal.TableUObjectHook)
		Expect(guest.ReadWord(hook + 4*internal.UObjectHookFieldMCState)).To(Equal(want))
	})
})

var _ = Describe("Calling runtime table entries", Label("library"), func() {
	It("rejects entries the runtime left null", func() {
		guest, engine, ctx := newTestEngine()
		guest.TableBase(internal.TableUObject)

		_, err := engine.TableCall(ctx, internal.TableUObject, internal.FnUObjectGetClass, 1)
		Expect(err).To(MatchError(ContainSubstring("uobject.get_class is not provided")))
	})

	It("fails cleanly on funcref indices the guest never populated", func() {
		guest, engine, ctx := newTestEngine()
		base := guest.TableBase(internal.TableUObject)
		guest.WriteWord(base+4*internal.FnUObjectGetClass.Entry, 999)

		_, err := engine.TableCall(ctx, internal.TableUObject, internal.FnUObjectGetClass, 1)
		Expect(err).To(MatchError(ContainSubstring("could not resolve uobject.get_class")))
	})

	It("resolves each entry once and caches the function", func() {
		guest := enginetest.NewGuest()
		inner := guest.Resolver()

		var resolutions int32
		engine := CreateEngine(NewConfig(WithFunctionResolver(func(mod api.Module, idx uint32, params, results []api.ValueType) (api.Function, error) {
			atomic.AddInt32(&resolutions, 1)
			return inner(mod, idx, params, results)
		})))
		engine.BindModule(guest.Module())
		ctx := engine.Attach(context.Background())
		Expect(engine.Initialize(ctx, guest.ParamAddr())).To(Succeed())

		guest.Provide(internal.TableUObject, internal.FnUObjectGetOuter, func(context.Context, ...uint64) ([]uint64, error) {
			return []uint64{0}, nil
		})

		for i := 0; i < 3; i++ {
			_, err := engine.TableCall(ctx, internal.TableUObject, internal.FnUObjectGetOuter, 1)
			Expect(err).To(BeNil())
		}

		Expect(atomic.LoadInt32(&resolutions)).To(Equal(int32(1)))
	})

	It("invokes entries through the package level wrappers", func() {
		guest, _, ctx := newTestEngine()

		slot := NewTableSlot("scratch", TableRootVR)
		echo := TableFunc{
			Name:    "scratch.echo",
			Entry:   2,
			Params:  []api.ValueType{api.ValueTypeI32},
			Results: []api.ValueType{api.ValueTypeI32},
		}

		guest.Provide(slot, echo, func(_ context.Context, params ...uint64) ([]uint64, error) {
			return []uint64{params[0] * 2}, nil
		})

		results, err := TableCall(ctx, slot, echo, 21)
		Expect(err).To(BeNil())
		Expect(results).To(Equal([]uint64{42}))

		base, err := TablePtr(ctx, slot)
		Expect(err).To(BeNil())
		Expect(base).To(Equal(guest.TableBase(slot)))
	})

	It("propagates guest errors with the entry name", func() {
		guest, engine, ctx := newTestEngine()

		guest.Provide(internal.TableUObject, internal.FnUObjectGetClass, func(context.Context, ...uint64) ([]uint64, error) {
			return nil, context.DeadlineExceeded
		})

		_, err := engine.TableCall(ctx, internal.TableUObject, internal.FnUObjectGetClass, 1)
		Expect(err).To(MatchError(ContainSubstring("call to uobject.get_class failed")))
	})
})
