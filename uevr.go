// Package uevr binds Go plugins to the UEVR runtime running as a wasm32
// guest under wazero. Plugins receive runtime callbacks through host
// functions and reach back into the runtime through its per-type function
// tables.
package uevr

import (
	"context"

	"go.uber.org/zap"

	internal "github.com/uevr-go/uevr/internal"
)

// RendererType identifies the graphics API the runtime renders with.
type RendererType uint32

const (
	RendererD3D11 RendererType = 0
	RendererD3D12 RendererType = 1
)

// RendererData mirrors the runtime's renderer block. Device, Swapchain and
// CommandQueue are graphics objects of the runtime's own process, only
// useful as tokens to hand back.
type RendererData struct {
	Type         RendererType
	Device       Ptr
	Swapchain    Ptr
	CommandQueue Ptr
}

// GetRendererData reads the renderer block from the parameter block.
func GetRendererData(ctx context.Context) (RendererData, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return RendererData{}, err
	}

	addr, err := e.ReadWord(e.ParamAddr() + 4*internal.ParamFieldRenderer)
	if err != nil {
		return RendererData{}, err
	}

	if addr == 0 {
		return RendererData{}, nil
	}

	kind, err := e.ReadWord(addr + 4*internal.RendererFieldType)
	if err != nil {
		return RendererData{}, err
	}

	device, err := e.ReadWord(addr + 4*internal.RendererFieldDevice)
	if err != nil {
		return RendererData{}, err
	}

	swapchain, err := e.ReadWord(addr + 4*internal.RendererFieldSwapchain)
	if err != nil {
		return RendererData{}, err
	}

	commandQueue, err := e.ReadWord(addr + 4*internal.RendererFieldCommandQueue)
	if err != nil {
		return RendererData{}, err
	}

	return RendererData{
		Type:         RendererType(kind),
		Device:       device,
		Swapchain:    swapchain,
		CommandQueue: commandQueue,
	}, nil
}

// FindUObject looks an object up by its full path and retypes it without a
// runtime type check. A zero handle means the path names nothing.
func FindUObject[T HandleType[T]](ctx context.Context, name string) (T, error) {
	var zero T

	e, err := EngineFromContext(ctx)
	if err != nil {
		return zero, err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		return zero, err
	}
	defer e.Free(ctx, nameAddr)

	addr, err := callU32(ctx, internal.TableUObjectArray, internal.FnUObjectArrayFindUObject, uint64(nameAddr))
	if err != nil {
		return zero, err
	}

	return FromPtr[T](addr), nil
}

// GetUEngine returns the runtime's engine object.
func GetUEngine(ctx context.Context) (UEngine, error) {
	return callHandle[UEngine](ctx, internal.TableSDKFunctions, internal.FnGetUEngine)
}

// GetPlayerController returns the player controller at the given index, a
// zero handle when no player is at that seat.
func GetPlayerController(ctx context.Context, index int32) (UObject, error) {
	return callHandle[UObject](ctx, internal.TableSDKFunctions, internal.FnGetPlayerController, uint64(uint32(index)))
}

// GetLocalPawn returns the pawn possessed by the player at the given index.
func GetLocalPawn(ctx context.Context, index int32) (UObject, error) {
	return callHandle[UObject](ctx, internal.TableSDKFunctions, internal.FnGetLocalPawn, uint64(uint32(index)))
}

// SpawnObject constructs a new object of the given class inside outer.
func SpawnObject(ctx context.Context, class UClass, outer UObject) (UObject, error) {
	return callHandle[UObject](ctx, internal.TableSDKFunctions, internal.FnSpawnObject, uint64(class.Ptr()), uint64(outer.Ptr()))
}

// ExecuteCommand runs a console command in the runtime's default context.
func ExecuteCommand(ctx context.Context, command string) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	commandAddr, err := e.WriteWideString(ctx, command)
	if err != nil {
		return err
	}
	defer e.Free(ctx, commandAddr)

	_, err = e.TableCall(ctx, internal.TableSDKFunctions, internal.FnExecuteCommand, uint64(commandAddr))
	return err
}

// ExecuteCommandEx runs a console command against a specific world.
// outputDevice is a runtime output device address, zero for the default.
func ExecuteCommandEx(ctx context.Context, world UWorld, command string, outputDevice Ptr) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	commandAddr, err := e.WriteWideString(ctx, command)
	if err != nil {
		return err
	}
	defer e.Free(ctx, commandAddr)

	_, err = e.TableCall(ctx, internal.TableSDKFunctions, internal.FnExecuteCommandEx,
		uint64(world.Ptr()), uint64(commandAddr), uint64(outputDevice))
	return err
}

// GetUObjectArray returns the runtime's object registry.
func GetUObjectArray(ctx context.Context) (FUObjectArray, error) {
	return callHandle[FUObjectArray](ctx, internal.TableSDKFunctions, internal.FnGetUObjectArray)
}

// GetConsoleManager returns the runtime's console manager.
func GetConsoleManager(ctx context.Context) (FConsoleManager, error) {
	return callHandle[FConsoleManager](ctx, internal.TableSDKFunctions, internal.FnGetConsoleManager)
}

// PersistentDir returns the directory the runtime persists plugin state
// under, an empty string when the runtime has none.
func PersistentDir(ctx context.Context) (string, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return "", err
	}

	return internal.ReadWideVia(ctx, e, func(ctx context.Context, buf uint32, size uint32) (uint32, error) {
		return callU32(ctx, internal.TablePluginFunctions, internal.FnGetPersistentDir, uint64(buf), uint64(size))
	})
}

// DispatchLuaEvent raises a named event in the runtime's script layer.
func DispatchLuaEvent(ctx context.Context, name string, data string) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	nameAddr, err := e.WriteCString(ctx, name)
	if err != nil {
		return err
	}
	defer e.Free(ctx, nameAddr)

	dataAddr, err := e.WriteCString(ctx, data)
	if err != nil {
		return err
	}
	defer e.Free(ctx, dataAddr)

	_, err = e.TableCall(ctx, internal.TablePluginFunctions, internal.FnDispatchLuaEvent, uint64(nameAddr), uint64(dataAddr))
	return err
}

// LogInfo writes to the runtime's log channel and mirrors the message to
// the host logger.
func LogInfo(ctx context.Context, msg string) error {
	internal.Logger().Info(msg)
	return logThroughEngine(ctx, msg, func(e Engine) func(context.Context, string) error { return e.LogInfo })
}

// LogWarn writes a warning to the runtime's log channel.
func LogWarn(ctx context.Context, msg string) error {
	internal.Logger().Warn(msg)
	return logThroughEngine(ctx, msg, func(e Engine) func(context.Context, string) error { return e.LogWarn })
}

// LogError writes an error to the runtime's log channel.
func LogError(ctx context.Context, msg string) error {
	internal.Logger().Error(msg)
	return logThroughEngine(ctx, msg, func(e Engine) func(context.Context, string) error { return e.LogError })
}

func logThroughEngine(ctx context.Context, msg string, pick func(e Engine) func(context.Context, string) error) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		internal.Logger().Debug("dropped runtime log line", zap.Error(err))
		return err
	}

	return pick(e)(ctx, msg)
}
