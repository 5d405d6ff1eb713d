package uevr

import (
	"context"
)

// Plugin receives the runtime's callbacks. Implementations usually embed
// BasePlugin and override the callbacks they care about.
//
// Callbacks run on whatever runtime thread invoked the guest, the context
// carries the engine. Graphics and window handles are foreign addresses
// that are only meaningful to the runtime itself.
type Plugin interface {
	// OnLoad runs once when the engine is created, before the runtime
	// negotiates versions. The engine is not usable yet.
	OnLoad()

	// OnInitialize runs after the parameter block was accepted. Returning
	// an error fails plugin initialization, the runtime is told to unload
	// the plugin and the engine is deactivated.
	OnInitialize(ctx context.Context) error

	OnPresent(ctx context.Context)
	OnDeviceReset(ctx context.Context)

	// OnMessage observes window messages. Returning false swallows the
	// message.
	OnMessage(ctx context.Context, hwnd Ptr, msg uint32, wParam uint64, lParam int64) bool

	// OnXInputGetState and OnXInputSetState intercept controller state.
	// retval holds the XInput result code and may be overwritten, state
	// and vibration are addresses of the raw XInput blocks in guest
	// memory.
	OnXInputGetState(ctx context.Context, retval *uint32, userIndex uint32, state Ptr)
	OnXInputSetState(ctx context.Context, retval *uint32, userIndex uint32, vibration Ptr)

	OnPostRenderVRFrameworkDX11(ctx context.Context, deviceContext, texture, rtv Ptr)
	OnPostRenderVRFrameworkDX12(ctx context.Context, commandList, renderTarget, rtv Ptr)

	OnPreEngineTick(ctx context.Context, engine UGameEngine, delta float32)
	OnPostEngineTick(ctx context.Context, engine UGameEngine, delta float32)

	OnPreSlateDrawWindow(ctx context.Context, renderer, viewportInfo Ptr)
	OnPostSlateDrawWindow(ctx context.Context, renderer, viewportInfo Ptr)

	// OnPreCalculateStereoViewOffset and OnPostCalculateStereoViewOffset
	// may adjust the view position and rotation in place. The values are
	// converted from and to the runtime's single precision layout when the
	// runtime uses one.
	OnPreCalculateStereoViewOffset(ctx context.Context, device Ptr, viewIndex int32, worldToMeters float32, position *Vector3d, rotation *Rotatord, isDouble bool)
	OnPostCalculateStereoViewOffset(ctx context.Context, device Ptr, viewIndex int32, worldToMeters float32, position *Vector3d, rotation *Rotatord, isDouble bool)

	OnPreViewportClientDraw(ctx context.Context, viewportClient, viewport, canvas Ptr)
	OnPostViewportClientDraw(ctx context.Context, viewportClient, viewport, canvas Ptr)
}

// BasePlugin is a no-op implementation of Plugin.
type BasePlugin struct{}

var _ Plugin = BasePlugin{}

func (BasePlugin) OnLoad() {}

func (BasePlugin) OnInitialize(ctx context.Context) error { return nil }

func (BasePlugin) OnPresent(ctx context.Context) {}

func (BasePlugin) OnDeviceReset(ctx context.Context) {}

func (BasePlugin) OnMessage(ctx context.Context, hwnd Ptr, msg uint32, wParam uint64, lParam int64) bool {
	return true
}

func (BasePlugin) OnXInputGetState(ctx context.Context, retval *uint32, userIndex uint32, state Ptr) {
}

func (BasePlugin) OnXInputSetState(ctx context.Context, retval *uint32, userIndex uint32, vibration Ptr) {
}

func (BasePlugin) OnPostRenderVRFrameworkDX11(ctx context.Context, deviceContext, texture, rtv Ptr) {
}

func (BasePlugin) OnPostRenderVRFrameworkDX12(ctx context.Context, commandList, renderTarget, rtv Ptr) {
}

func (BasePlugin) OnPreEngineTick(ctx context.Context, engine UGameEngine, delta float32) {}

func (BasePlugin) OnPostEngineTick(ctx context.Context, engine UGameEngine, delta float32) {}

func (BasePlugin) OnPreSlateDrawWindow(ctx context.Context, renderer, viewportInfo Ptr) {}

func (BasePlugin) OnPostSlateDrawWindow(ctx context.Context, renderer, viewportInfo Ptr) {}

func (BasePlugin) OnPreCalculateStereoViewOffset(ctx context.Context, device Ptr, viewIndex int32, worldToMeters float32, position *Vector3d, rotation *Rotatord, isDouble bool) {
}

func (BasePlugin) OnPostCalculateStereoViewOffset(ctx context.Context, device Ptr, viewIndex int32, worldToMeters float32, position *Vector3d, rotation *Rotatord, isDouble bool) {
}

func (BasePlugin) OnPreViewportClientDraw(ctx context.Context, viewportClient, viewport, canvas Ptr) {
}

func (BasePlugin) OnPostViewportClientDraw(ctx context.Context, viewportClient, viewport, canvas Ptr) {
}
