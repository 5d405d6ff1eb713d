// Package vr exposes the runtime's VR state: tracked devices, poses,
// input actions, haptics and the mod configuration. All calls go through
// the engine attached to the context.
package vr

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tetratelabs/wazero/api"

	"github.com/uevr-go/uevr"
	internal "github.com/uevr-go/uevr/internal"
)

// TrackedDeviceIndex identifies a tracked device within the VR runtime.
type TrackedDeviceIndex = uint32

// Action is a handle to a named input action.
type Action = uint32

// InputSource is a handle to an input device, usually one of the two
// joysticks.
type InputSource = uint32

// Eye selects one of the stereo views.
type Eye int32

const (
	EyeLeft  Eye = 0
	EyeRight Eye = 1
)

// AimMethod selects what the game's aim follows.
type AimMethod int32

const (
	AimMethodGame AimMethod = iota
	AimMethodHead
	AimMethodRightController
	AimMethodLeftController
	AimMethodTwoHandedRight
	AimMethodTwoHandedLeft
)

// Pose is a tracked device's position and orientation.
type Pose struct {
	Position uevr.Vector3f
	Rotation uevr.Quaternionf
}

const (
	sizeVector2f    = 8
	sizeVector3f    = 12
	sizeQuaternionf = 16
	sizeMatrix4x4f  = 64

	// Mod values are exchanged as C strings through a fixed size buffer.
	modValueBufferSize = 256
)

func call(ctx context.Context, fn internal.TableFunc, args ...uint64) ([]uint64, error) {
	e, err := uevr.EngineFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return e.TableCall(ctx, internal.TableVR, fn, args...)
}

func callVoid(ctx context.Context, fn internal.TableFunc, args ...uint64) error {
	_, err := call(ctx, fn, args...)
	return err
}

func callU32(ctx context.Context, fn internal.TableFunc, args ...uint64) (uint32, error) {
	results, err := call(ctx, fn, args...)
	if err != nil {
		return 0, err
	}

	return api.DecodeU32(results[0]), nil
}

func callBool(ctx context.Context, fn internal.TableFunc, args ...uint64) (bool, error) {
	value, err := callU32(ctx, fn, args...)
	if err != nil {
		return false, err
	}

	return value != 0, nil
}

func boolArg(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

// outStruct calls a getter that fills a caller provided buffer. The buffer
// address is appended to args, so it works for getters with and without
// leading arguments.
func outStruct[T any](ctx context.Context, size uint32, read func(memory api.Memory, addr uevr.Ptr) (T, bool), fn internal.TableFunc, args ...uint64) (T, error) {
	var zero T

	e, err := uevr.EngineFromContext(ctx)
	if err != nil {
		return zero, err
	}

	buf, err := e.Malloc(ctx, size)
	if err != nil {
		return zero, err
	}
	defer e.Free(ctx, buf)

	if _, err := e.TableCall(ctx, internal.TableVR, fn, append(args, uint64(buf))...); err != nil {
		return zero, err
	}

	value, ok := read(e.Memory(), buf)
	if !ok {
		return zero, fmt.Errorf("could not read %d bytes at address %d", size, buf)
	}

	return value, nil
}

// inStruct calls a setter that reads from a caller provided buffer.
func inStruct(ctx context.Context, size uint32, write func(memory api.Memory, addr uevr.Ptr) bool, fn internal.TableFunc) error {
	e, err := uevr.EngineFromContext(ctx)
	if err != nil {
		return err
	}

	buf, err := e.Malloc(ctx, size)
	if err != nil {
		return err
	}
	defer e.Free(ctx, buf)

	if !write(e.Memory(), buf) {
		return fmt.Errorf("could not write %d bytes to guest memory at address %d", size, buf)
	}

	_, err = e.TableCall(ctx, internal.TableVR, fn, uint64(buf))
	return err
}

// RuntimeReady reports whether the VR runtime finished starting up.
func RuntimeReady(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.FnVRIsRuntimeReady)
}

// IsOpenVR reports whether the active runtime is OpenVR.
func IsOpenVR(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.FnVRIsOpenVR)
}

// IsOpenXR reports whether the active runtime is OpenXR.
func IsOpenXR(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.FnVRIsOpenXR)
}

// HMDActive reports whether the headset is worn and tracking.
func HMDActive(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.FnVRIsHMDActive)
}

// StandingOrigin returns the standing play space origin.
func StandingOrigin(ctx context.Context) (uevr.Vector3f, error) {
	return outStruct(ctx, sizeVector3f, uevr.ReadVector3f, internal.FnVRGetStandingOrigin)
}

// SetStandingOrigin moves the standing play space origin.
func SetStandingOrigin(ctx context.Context, origin uevr.Vector3f) error {
	return inStruct(ctx, sizeVector3f, func(memory api.Memory, addr uevr.Ptr) bool {
		return uevr.WriteVector3f(memory, addr, origin)
	}, internal.FnVRSetStandingOrigin)
}

// RotationOffset returns the play space rotation offset.
func RotationOffset(ctx context.Context) (uevr.Quaternionf, error) {
	return outStruct(ctx, sizeQuaternionf, uevr.ReadQuaternionf, internal.FnVRGetRotationOffset)
}

// SetRotationOffset rotates the play space.
func SetRotationOffset(ctx context.Context, offset uevr.Quaternionf) error {
	return inStruct(ctx, sizeQuaternionf, func(memory api.Memory, addr uevr.Ptr) bool {
		return uevr.WriteQuaternionf(memory, addr, offset)
	}, internal.FnVRSetRotationOffset)
}

// HMDIndex returns the headset's tracked device index.
func HMDIndex(ctx context.Context) (TrackedDeviceIndex, error) {
	return callU32(ctx, internal.FnVRGetHMDIndex)
}

// LeftControllerIndex returns the left controller's tracked device index.
func LeftControllerIndex(ctx context.Context) (TrackedDeviceIndex, error) {
	return callU32(ctx, internal.FnVRGetLeftControllerIndex)
}

// RightControllerIndex returns the right controller's tracked device index.
func RightControllerIndex(ctx context.Context) (TrackedDeviceIndex, error) {
	return callU32(ctx, internal.FnVRGetRightControllerIndex)
}

func pose(ctx context.Context, fn internal.TableFunc, index TrackedDeviceIndex) (Pose, error) {
	e, err := uevr.EngineFromContext(ctx)
	if err != nil {
		return Pose{}, err
	}

	positionBuf, err := e.Malloc(ctx, sizeVector3f)
	if err != nil {
		return Pose{}, err
	}
	defer e.Free(ctx, positionBuf)

	rotationBuf, err := e.Malloc(ctx, sizeQuaternionf)
	if err != nil {
		return Pose{}, err
	}
	defer e.Free(ctx, rotationBuf)

	if _, err := e.TableCall(ctx, internal.TableVR, fn, uint64(index), uint64(positionBuf), uint64(rotationBuf)); err != nil {
		return Pose{}, err
	}

	position, okPosition := uevr.ReadVector3f(e.Memory(), positionBuf)
	rotation, okRotation := uevr.ReadQuaternionf(e.Memory(), rotationBuf)
	if !okPosition || !okRotation {
		return Pose{}, fmt.Errorf("could not read pose buffers at addresses %d, %d", positionBuf, rotationBuf)
	}

	return Pose{Position: position, Rotation: rotation}, nil
}

// GetPose returns the device's current pose.
func GetPose(ctx context.Context, index TrackedDeviceIndex) (Pose, error) {
	return pose(ctx, internal.FnVRGetPose, index)
}

// GripPose returns the device's grip pose.
func GripPose(ctx context.Context, index TrackedDeviceIndex) (Pose, error) {
	return pose(ctx, internal.FnVRGetGripPose, index)
}

// AimPose returns the device's aim pose.
func AimPose(ctx context.Context, index TrackedDeviceIndex) (Pose, error) {
	return pose(ctx, internal.FnVRGetAimPose, index)
}

// GetTransform returns the device's pose as a transform matrix.
func GetTransform(ctx context.Context, index TrackedDeviceIndex) (uevr.Matrix4x4f, error) {
	return outStruct(ctx, sizeMatrix4x4f, uevr.ReadMatrix4x4f, internal.FnVRGetTransform, uint64(index))
}

// GripTransform returns the device's grip pose as a transform matrix.
func GripTransform(ctx context.Context, index TrackedDeviceIndex) (uevr.Matrix4x4f, error) {
	return outStruct(ctx, sizeMatrix4x4f, uevr.ReadMatrix4x4f, internal.FnVRGetGripTransform, uint64(index))
}

// AimTransform returns the device's aim pose as a transform matrix.
func AimTransform(ctx context.Context, index TrackedDeviceIndex) (uevr.Matrix4x4f, error) {
	return outStruct(ctx, sizeMatrix4x4f, uevr.ReadMatrix4x4f, internal.FnVRGetAimTransform, uint64(index))
}

// EyeOffset returns the eye's offset from the head center.
func EyeOffset(ctx context.Context, eye Eye) (uevr.Vector3f, error) {
	return outStruct(ctx, sizeVector3f, uevr.ReadVector3f, internal.FnVRGetEyeOffset, uint64(uint32(eye)))
}

// UEProjectionMatrix returns the eye's projection matrix in the engine's
// convention.
func UEProjectionMatrix(ctx context.Context, eye Eye) (uevr.Matrix4x4f, error) {
	return outStruct(ctx, sizeMatrix4x4f, uevr.ReadMatrix4x4f, internal.FnVRGetUEProjectionMatrix, uint64(uint32(eye)))
}

// LeftJoystickSource returns the left joystick's input source handle.
func LeftJoystickSource(ctx context.Context) (InputSource, error) {
	return callU32(ctx, internal.FnVRGetLeftJoystickSource)
}

// RightJoystickSource returns the right joystick's input source handle.
func RightJoystickSource(ctx context.Context) (InputSource, error) {
	return callU32(ctx, internal.FnVRGetRightJoystickSource)
}

// ActionHandle resolves a named input action.
func ActionHandle(ctx context.Context, name string) (Action, error) {
	e, err := uevr.EngineFromContext(ctx)
	if err != nil {
		return 0, err
	}

	nameAddr, err := e.WriteCString(ctx, name)
	if err != nil {
		return 0, err
	}
	defer e.Free(ctx, nameAddr)

	return callU32(ctx, internal.FnVRGetActionHandle, uint64(nameAddr))
}

// IsActionActive reports whether the action fires on the given source.
func IsActionActive(ctx context.Context, action Action, source InputSource) (bool, error) {
	return callBool(ctx, internal.FnVRIsActionActive, uint64(action), uint64(source))
}

// IsActionActiveAnyJoystick reports whether the action fires on any
// joystick.
func IsActionActiveAnyJoystick(ctx context.Context, action Action) (bool, error) {
	return callBool(ctx, internal.FnVRIsActionActiveAnyJoystick, uint64(action))
}

// JoystickAxis returns the joystick's current axis values.
func JoystickAxis(ctx context.Context, source InputSource) (uevr.Vector2f, error) {
	return outStruct(ctx, sizeVector2f, uevr.ReadVector2f, internal.FnVRGetJoystickAxis, uint64(source))
}

// TriggerHapticVibration pulses the given input source. delay and duration
// are seconds, frequency is Hz, amplitude is 0 to 1.
func TriggerHapticVibration(ctx context.Context, delay, amplitude, frequency, duration float32, source InputSource) error {
	return callVoid(ctx, internal.FnVRTriggerHapticVibration,
		api.EncodeF32(delay), api.EncodeF32(amplitude), api.EncodeF32(frequency), api.EncodeF32(duration), uint64(source))
}

// UsingControllers reports whether the player holds tracked controllers.
func UsingControllers(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.FnVRIsUsingControllers)
}

// MovementOrientation returns what forward movement follows.
func MovementOrientation(ctx context.Context) (AimMethod, error) {
	value, err := callU32(ctx, internal.FnVRGetMovementOrientation)
	if err != nil {
		return 0, err
	}

	return AimMethod(value), nil
}

// LowestXInputIndex returns the lowest XInput controller index in use.
func LowestXInputIndex(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.FnVRGetLowestXinputIndex)
}

// RecenterView recenters the view on the current head pose.
func RecenterView(ctx context.Context) error {
	return callVoid(ctx, internal.FnVRRecenterView)
}

// RecenterHorizon levels the view against the horizon.
func RecenterHorizon(ctx context.Context) error {
	return callVoid(ctx, internal.FnVRRecenterHorizon)
}

// GetAimMethod returns what the game's aim follows.
func GetAimMethod(ctx context.Context) (AimMethod, error) {
	value, err := callU32(ctx, internal.FnVRGetAimMethod)
	if err != nil {
		return 0, err
	}

	return AimMethod(value), nil
}

// SetAimMethod changes what the game's aim follows.
func SetAimMethod(ctx context.Context, method AimMethod) error {
	return callVoid(ctx, internal.FnVRSetAimMethod, uint64(uint32(method)))
}

// AimAllowed reports whether aim adjustment is currently allowed.
func AimAllowed(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.FnVRIsAimAllowed)
}

// SetAimAllowed suspends or resumes aim adjustment.
func SetAimAllowed(ctx context.Context, allowed bool) error {
	return callVoid(ctx, internal.FnVRSetAimAllowed, boolArg(allowed))
}

// HMDWidth returns the per-eye render width in pixels.
func HMDWidth(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.FnVRGetHMDWidth)
}

// HMDHeight returns the per-eye render height in pixels.
func HMDHeight(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.FnVRGetHMDHeight)
}

// UIWidth returns the UI layer width in pixels.
func UIWidth(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.FnVRGetUIWidth)
}

// UIHeight returns the UI layer height in pixels.
func UIHeight(ctx context.Context) (uint32, error) {
	return callU32(ctx, internal.FnVRGetUIHeight)
}

// SnapTurnEnabled reports whether turning snaps in steps.
func SnapTurnEnabled(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.FnVRIsSnapTurnEnabled)
}

// SetSnapTurnEnabled toggles snap turning.
func SetSnapTurnEnabled(ctx context.Context, enabled bool) error {
	return callVoid(ctx, internal.FnVRSetSnapTurnEnabled, boolArg(enabled))
}

// DecoupledPitchEnabled reports whether pitch is decoupled from the head.
func DecoupledPitchEnabled(ctx context.Context) (bool, error) {
	return callBool(ctx, internal.FnVRIsDecoupledPitchEnabled)
}

// SetDecoupledPitchEnabled toggles decoupled pitch.
func SetDecoupledPitchEnabled(ctx context.Context, enabled bool) error {
	return callVoid(ctx, internal.FnVRSetDecoupledPitchEnabled, boolArg(enabled))
}

// SetModValue writes a mod configuration value in its string form.
func SetModValue(ctx context.Context, key, value string) error {
	e, err := uevr.EngineFromContext(ctx)
	if err != nil {
		return err
	}

	keyAddr, err := e.WriteCString(ctx, key)
	if err != nil {
		return err
	}
	defer e.Free(ctx, keyAddr)

	valueAddr, err := e.WriteCString(ctx, value)
	if err != nil {
		return err
	}
	defer e.Free(ctx, valueAddr)

	_, err = e.TableCall(ctx, internal.TableVR, internal.FnVRSetModValue, uint64(keyAddr), uint64(valueAddr))
	return err
}

// ModValue reads a mod configuration value in its string form. Unknown keys
// yield an empty string.
func ModValue(ctx context.Context, key string) (string, error) {
	e, err := uevr.EngineFromContext(ctx)
	if err != nil {
		return "", err
	}

	keyAddr, err := e.WriteCString(ctx, key)
	if err != nil {
		return "", err
	}
	defer e.Free(ctx, keyAddr)

	buf, err := e.Malloc(ctx, modValueBufferSize)
	if err != nil {
		return "", err
	}
	defer e.Free(ctx, buf)

	// The runtime only writes on known keys, a zeroed buffer reads back as
	// the empty string.
	if !e.Memory().Write(buf, make([]byte, modValueBufferSize)) {
		return "", fmt.Errorf("could not zero %d bytes at address %d", modValueBufferSize, buf)
	}

	if _, err := e.TableCall(ctx, internal.TableVR, internal.FnVRGetModValue, uint64(keyAddr), uint64(buf), modValueBufferSize); err != nil {
		return "", err
	}

	return e.ReadCString(buf)
}

// SetModValueBool writes a bool mod configuration value.
func SetModValueBool(ctx context.Context, key string, value bool) error {
	return SetModValue(ctx, key, strconv.FormatBool(value))
}

// ModValueBool reads a bool mod configuration value.
func ModValueBool(ctx context.Context, key string) (bool, error) {
	value, err := ModValue(ctx, key)
	if err != nil {
		return false, err
	}

	return value == "true", nil
}

// SaveConfig persists the current mod configuration.
func SaveConfig(ctx context.Context) error {
	return callVoid(ctx, internal.FnVRSaveConfig)
}

// ReloadConfig discards unsaved changes and reloads the mod configuration.
func ReloadConfig(ctx context.Context) error {
	return callVoid(ctx, internal.FnVRReloadConfig)
}
