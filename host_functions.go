package uevr

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	internal "github.com/uevr-go/uevr/internal"
)

// Host functions the runtime imports from the plugin's host module. The
// runtime drives the whole plugin lifecycle through these: version
// negotiation, initialization, then frame and input callbacks. Memory
// failures panic, wazero turns the panic into a trap of the calling guest.

// PluginRequiredVersion writes the plugin's required runtime version into
// the version struct the runtime points at.
var PluginRequiredVersion = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	engine := MustGetEngineFromContext(ctx, mod)
	addr := api.DecodeU32(stack[0])

	if err := engine.WriteWord(addr+4*internal.VersionFieldMajor, internal.VersionMajor); err != nil {
		panic(fmt.Errorf("could not write required version: %w", err))
	}
	if err := engine.WriteWord(addr+4*internal.VersionFieldMinor, internal.VersionMinor); err != nil {
		panic(fmt.Errorf("could not write required version: %w", err))
	}
	if err := engine.WriteWord(addr+4*internal.VersionFieldPatch, internal.VersionPatch); err != nil {
		panic(fmt.Errorf("could not write required version: %w", err))
	}
})

// PluginInitialize accepts the runtime's parameter block and runs the
// plugin's OnInitialize. It returns 1 on success. On any failure the engine
// is left deactivated and 0 is returned, the runtime then unloads the
// plugin.
var PluginInitialize = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	engine := MustGetEngineFromContext(ctx, mod)
	paramAddr := api.DecodeU32(stack[0])
	stack[0] = 0

	if err := engine.Initialize(ctx, paramAddr); err != nil {
		internal.Logger().Error("rejected plugin initialization", zap.Error(err))
		return
	}

	if plugin := engine.Plugin(); plugin != nil {
		if err := runPluginInitialize(ctx, plugin); err != nil {
			internal.Logger().Error("plugin initialization failed", zap.Error(err))
			_ = engine.LogError(ctx, "plugin initialization failed: "+err.Error())
			engine.Deactivate()
			return
		}
	}

	stack[0] = 1
})

func runPluginInitialize(ctx context.Context, plugin Plugin) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("plugin initialization panicked: %v", recovered)
		}
	}()

	return plugin.OnInitialize(ctx)
}

// attachedPlugin returns the plugin driven by the engine in the context,
// nil when the embedder configured none.
func attachedPlugin(ctx context.Context, mod api.Module) (Engine, Plugin) {
	engine := MustGetEngineFromContext(ctx, mod)
	return engine, engine.Plugin()
}

var OnPresent = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnPresent(ctx)
})

var OnDeviceReset = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnDeviceReset(ctx)
})

// OnMessage forwards a window message, returning 0 when the plugin swallows
// it.
var OnMessage = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	hwnd := api.DecodeU32(stack[0])
	msg := api.DecodeU32(stack[1])
	wParam := stack[2]
	lParam := int64(stack[3])
	stack[0] = 1

	if plugin == nil {
		return
	}

	if !plugin.OnMessage(ctx, hwnd, msg, wParam, lParam) {
		stack[0] = 0
	}
})

// OnXInputGetState and OnXInputSetState let the plugin observe and rewrite
// controller state. The first argument is the guest address of the XInput
// result code.
var OnXInputGetState = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	engine, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	retvalAddr := api.DecodeU32(stack[0])
	userIndex := api.DecodeU32(stack[1])
	state := api.DecodeU32(stack[2])

	retval := readRetval(engine, retvalAddr)
	plugin.OnXInputGetState(ctx, &retval, userIndex, state)
	writeRetval(engine, retvalAddr, retval)
})

var OnXInputSetState = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	engine, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	retvalAddr := api.DecodeU32(stack[0])
	userIndex := api.DecodeU32(stack[1])
	vibration := api.DecodeU32(stack[2])

	retval := readRetval(engine, retvalAddr)
	plugin.OnXInputSetState(ctx, &retval, userIndex, vibration)
	writeRetval(engine, retvalAddr, retval)
})

func readRetval(engine Engine, addr uint32) uint32 {
	if addr == 0 {
		return 0
	}

	retval, err := engine.ReadWord(addr)
	if err != nil {
		panic(fmt.Errorf("could not read xinput result code: %w", err))
	}

	return retval
}

func writeRetval(engine Engine, addr uint32, retval uint32) {
	if addr == 0 {
		return
	}

	if err := engine.WriteWord(addr, retval); err != nil {
		panic(fmt.Errorf("could not write xinput result code: %w", err))
	}
}

var OnPostRenderVRFrameworkDX11 = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnPostRenderVRFrameworkDX11(ctx, api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
})

var OnPostRenderVRFrameworkDX12 = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnPostRenderVRFrameworkDX12(ctx, api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
})

var OnPreEngineTick = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnPreEngineTick(ctx, FromPtr[UGameEngine](api.DecodeU32(stack[0])), api.DecodeF32(stack[1]))
})

var OnPostEngineTick = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnPostEngineTick(ctx, FromPtr[UGameEngine](api.DecodeU32(stack[0])), api.DecodeF32(stack[1]))
})

var OnPreSlateDrawWindow = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnPreSlateDrawWindow(ctx, api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
})

var OnPostSlateDrawWindow = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnPostSlateDrawWindow(ctx, api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
})

var OnPreCalculateStereoViewOffset = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	dispatchStereoViewOffset(ctx, mod, stack, func(plugin Plugin) stereoViewOffsetFunc {
		return plugin.OnPreCalculateStereoViewOffset
	})
})

var OnPostCalculateStereoViewOffset = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	dispatchStereoViewOffset(ctx, mod, stack, func(plugin Plugin) stereoViewOffsetFunc {
		return plugin.OnPostCalculateStereoViewOffset
	})
})

type stereoViewOffsetFunc func(ctx context.Context, device Ptr, viewIndex int32, worldToMeters float32, position *Vector3d, rotation *Rotatord, isDouble bool)

// dispatchStereoViewOffset reads the view position and rotation out-params,
// runs the callback, then writes the possibly mutated values back. The
// runtime hands over single or double precision depending on the engine
// build, the callback always sees doubles.
func dispatchStereoViewOffset(ctx context.Context, mod api.Module, stack []uint64, pick func(plugin Plugin) stereoViewOffsetFunc) {
	engine, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	device := api.DecodeU32(stack[0])
	viewIndex := api.DecodeI32(stack[1])
	worldToMeters := api.DecodeF32(stack[2])
	positionAddr := api.DecodeU32(stack[3])
	rotationAddr := api.DecodeU32(stack[4])
	isDouble := api.DecodeU32(stack[5]) != 0

	memory := engine.Memory()

	var position Vector3d
	var rotation Rotatord
	var ok bool

	if isDouble {
		position, ok = ReadVector3d(memory, positionAddr)
		if !ok {
			panic(fmt.Errorf("could not read view position at address %d", positionAddr))
		}

		rotation, ok = ReadRotatord(memory, rotationAddr)
		if !ok {
			panic(fmt.Errorf("could not read view rotation at address %d", rotationAddr))
		}
	} else {
		positionF, okF := ReadVector3f(memory, positionAddr)
		if !okF {
			panic(fmt.Errorf("could not read view position at address %d", positionAddr))
		}

		rotationF, okR := ReadRotatorf(memory, rotationAddr)
		if !okR {
			panic(fmt.Errorf("could not read view rotation at address %d", rotationAddr))
		}

		position = Vector3d{X: float64(positionF.X), Y: float64(positionF.Y), Z: float64(positionF.Z)}
		rotation = Rotatord{Pitch: float64(rotationF.Pitch), Yaw: float64(rotationF.Yaw), Roll: float64(rotationF.Roll)}
	}

	pick(plugin)(ctx, device, viewIndex, worldToMeters, &position, &rotation, isDouble)

	if isDouble {
		ok = WriteVector3d(memory, positionAddr, position) && WriteRotatord(memory, rotationAddr, rotation)
	} else {
		positionF := Vector3f{X: float32(position.X), Y: float32(position.Y), Z: float32(position.Z)}
		rotationF := Rotatorf{Pitch: float32(rotation.Pitch), Yaw: float32(rotation.Yaw), Roll: float32(rotation.Roll)}
		ok = WriteVector3f(memory, positionAddr, positionF) && WriteRotatorf(memory, rotationAddr, rotationF)
	}

	if !ok {
		panic(fmt.Errorf("could not write view offset at addresses %d, %d", positionAddr, rotationAddr))
	}
}

var OnPreViewportClientDraw = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnPreViewportClientDraw(ctx, api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
})

var OnPostViewportClientDraw = api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
	_, plugin := attachedPlugin(ctx, mod)
	if plugin == nil {
		return
	}

	plugin.OnPostViewportClientDraw(ctx, api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
})
