package uevr

import (
	"context"
	"fmt"

	internal "github.com/uevr-go/uevr/internal"
)

// The runtime's object tracker. It watches object creation and destruction
// so that class based queries see a consistent set of live instances. The
// tracker is off until a plugin activates it, activation is permanent and
// idempotent.

// ActivateObjectHook turns the object tracker on.
func ActivateObjectHook(ctx context.Context) error {
	return callVoid(ctx, internal.TableUObjectHook, internal.FnUObjectHookActivate)
}

// ObjectExists asks the tracker whether the object is still alive.
func ObjectExists(ctx context.Context, obj UObject) (bool, error) {
	return callBool(ctx, internal.TableUObjectHook, internal.FnUObjectHookExists, uint64(obj.Ptr()))
}

// ObjectHookDisabled reports whether the tracker is suspended.
func ObjectHookDisabled(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.TableUObjectHook, internal.FnUObjectHookIsDisabled)
}

// SetObjectHookDisabled suspends or resumes the tracker.
func SetObjectHookDisabled(ctx context.Context, disabled bool) error {
	return callVoid(ctx, internal.TableUObjectHook, internal.FnUObjectHookSetDisabled, boolArg(disabled))
}

// Controller hands.
const (
	HandLeft  uint32 = 0
	HandRight uint32 = 1
)

// MotionControllerState attaches an object to a motion controller. The
// state lives in the runtime, setters only adjust it.
type MotionControllerState struct {
	Handle
}

func (MotionControllerState) FromPtr(addr Ptr) MotionControllerState {
	return MotionControllerState{Handle{addr: addr}}
}

// GetOrAddMotionControllerState attaches the object to a controller,
// returning the existing state when the object is already attached.
func GetOrAddMotionControllerState(ctx context.Context, obj UObject) (MotionControllerState, error) {
	return callHandle[MotionControllerState](ctx, internal.TableUObjectHook, internal.FnUObjectHookGetOrAddMCState, uint64(obj.Ptr()))
}

// GetMotionControllerState returns the object's controller state, a zero
// handle when the object is not attached.
func GetMotionControllerState(ctx context.Context, obj UObject) (MotionControllerState, error) {
	return callHandle[MotionControllerState](ctx, internal.TableUObjectHook, internal.FnUObjectHookGetMCState, uint64(obj.Ptr()))
}

// RemoveMotionControllerState detaches the object from its controller.
func RemoveMotionControllerState(ctx context.Context, obj UObject) error {
	return callVoid(ctx, internal.TableUObjectHook, internal.FnUObjectHookRemoveMCState, uint64(obj.Ptr()))
}

// RemoveAllMotionControllerStates detaches every tracked object.
func RemoveAllMotionControllerStates(ctx context.Context) error {
	return callVoid(ctx, internal.TableUObjectHook, internal.FnUObjectHookRemoveAllMCStates)
}

// SetRotationOffset rotates the attached object relative to the controller.
func (s MotionControllerState) SetRotationOffset(ctx context.Context, offset Quaternionf) error {
	return s.writeAndCall(ctx, internal.FnMCStateSetRotationOffset, sizeQuaternionf, func(e Engine, addr Ptr) bool {
		return WriteQuaternionf(e.Memory(), addr, offset)
	})
}

// SetLocationOffset moves the attached object relative to the controller.
func (s MotionControllerState) SetLocationOffset(ctx context.Context, offset Vector3f) error {
	return s.writeAndCall(ctx, internal.FnMCStateSetLocationOffset, sizeVector3f, func(e Engine, addr Ptr) bool {
		return WriteVector3f(e.Memory(), addr, offset)
	})
}

func (s MotionControllerState) writeAndCall(ctx context.Context, fn internal.TableFunc, size uint32, write func(e Engine, addr Ptr) bool) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	addr, err := e.Malloc(ctx, size)
	if err != nil {
		return err
	}
	defer e.Free(ctx, addr)

	if !write(e, addr) {
		return fmt.Errorf("could not write %d bytes to guest memory at address %d", size, addr)
	}

	_, err = e.TableCall(ctx, internal.TableMotionControllerState, fn, uint64(s.Ptr()), uint64(addr))
	return err
}

// SetHand picks the controller the object follows.
func (s MotionControllerState) SetHand(ctx context.Context, hand uint32) error {
	return callVoid(ctx, internal.TableMotionControllerState, internal.FnMCStateSetHand, uint64(s.Ptr()), uint64(hand))
}

// SetPermanent keeps the attachment across level transitions.
func (s MotionControllerState) SetPermanent(ctx context.Context, permanent bool) error {
	return callVoid(ctx, internal.TableMotionControllerState, internal.FnMCStateSetPermanent, uint64(s.Ptr()), boolArg(permanent))
}

// IPooledRenderTarget is a render target managed by the runtime's pool.
type IPooledRenderTarget struct {
	Handle
}

func (IPooledRenderTarget) FromPtr(addr Ptr) IPooledRenderTarget {
	return IPooledRenderTarget{Handle{addr: addr}}
}

// ActivateRenderTargetPoolHook turns on interception of the runtime's
// render target pool. Like the object tracker, activation is permanent.
func ActivateRenderTargetPoolHook(ctx context.Context) error {
	return callVoid(ctx, internal.TableRenderTargetPoolHook, internal.FnRenderHookActivate)
}

// GetRenderTarget looks up a pooled render target by name, a zero handle
// when the pool holds none of that name.
func GetRenderTarget(ctx context.Context, name string) (IPooledRenderTarget, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return IPooledRenderTarget{}, err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		return IPooledRenderTarget{}, err
	}
	defer e.Free(ctx, nameAddr)

	return callHandle[IPooledRenderTarget](ctx, internal.TableRenderTargetPoolHook, internal.FnRenderHookGetRenderTarget, uint64(nameAddr))
}

// FRHITexture2D is a GPU texture owned by the runtime.
type FRHITexture2D struct {
	Handle
}

func (FRHITexture2D) FromPtr(addr Ptr) FRHITexture2D {
	return FRHITexture2D{Handle{addr: addr}}
}

// NativeResource returns the graphics API object behind the texture. The
// address is only meaningful to the runtime's graphics device.
func (t FRHITexture2D) NativeResource(ctx context.Context) (Ptr, error) {
	return callU32(ctx, internal.TableFRHITexture2D, internal.FnFRHITexture2DGetNativeResource, uint64(t.Ptr()))
}

// GetSceneRenderTarget returns the texture the stereo renderer draws the
// scene into, a zero handle before stereo startup.
func GetSceneRenderTarget(ctx context.Context) (FRHITexture2D, error) {
	return callHandle[FRHITexture2D](ctx, internal.TableStereoHook, internal.FnStereoHookGetSceneRenderTarget)
}

// GetUIRenderTarget returns the texture the UI layer draws into, a zero
// handle before stereo startup.
func GetUIRenderTarget(ctx context.Context) (FRHITexture2D, error) {
	return callHandle[FRHITexture2D](ctx, internal.TableStereoHook, internal.FnStereoHookGetUIRenderTarget)
}
