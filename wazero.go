package uevr

import (
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	internal "github.com/uevr-go/uevr/internal"
)

// FunctionExporter configures the host functions the runtime module
// imports from the plugin's host module.
type FunctionExporter interface {
	// ExportFunctions builds the plugin entry points with a
	// wazero.HostModuleBuilder named after the engine's host module.
	ExportFunctions(wazero.HostModuleBuilder) error
}

func (e *uevrEngine) NewFunctionExporterForModule(guest wazero.CompiledModule) FunctionExporter {
	return &functionExporter{
		config: e.config,
		guest:  guest,
	}
}

type functionExporter struct {
	config *EngineConfig
	guest  wazero.CompiledModule
}

type unexportedFunctionError struct {
	name string
}

func (e unexportedFunctionError) Error() string {
	return fmt.Sprintf("the runtime module does not export the %q function, rebuild it with %q in the exported symbol list", e.name, e.name)
}

// ExportFunctions implements FunctionExporter.ExportFunctions
func (e functionExporter) ExportFunctions(b wazero.HostModuleBuilder) error {
	// The engine drives the runtime's allocator through these exports,
	// reject modules missing them before anything is instantiated.
	resolved := internal.NewConfig(e.config.options...)
	requiredFunctions := []string{resolved.MallocExport, resolved.FreeExport}
	exportedFunctions := e.guest.ExportedFunctions()
	for i := range requiredFunctions {
		requiredFunction := requiredFunctions[i]
		if _, ok := exportedFunctions[requiredFunction]; !ok {
			return unexportedFunctionError{
				name: requiredFunction,
			}
		}
	}

	i32 := api.ValueTypeI32
	i64 := api.ValueTypeI64
	f32 := api.ValueTypeF32

	b.NewFunctionBuilder().
		WithName("uevr_plugin_required_version").
		WithParameterNames("version").
		WithGoModuleFunction(PluginRequiredVersion, []api.ValueType{i32}, []api.ValueType{}).
		Export("uevr_plugin_required_version")

	b.NewFunctionBuilder().
		WithName("uevr_plugin_initialize").
		WithParameterNames("param").
		WithGoModuleFunction(PluginInitialize, []api.ValueType{i32}, []api.ValueType{i32}).
		Export("uevr_plugin_initialize")

	b.NewFunctionBuilder().
		WithName("uevr_on_present").
		WithGoModuleFunction(OnPresent, []api.ValueType{}, []api.ValueType{}).
		Export("uevr_on_present")

	b.NewFunctionBuilder().
		WithName("uevr_on_device_reset").
		WithGoModuleFunction(OnDeviceReset, []api.ValueType{}, []api.ValueType{}).
		Export("uevr_on_device_reset")

	b.NewFunctionBuilder().
		WithName("uevr_on_message").
		WithParameterNames("hwnd", "msg", "wparam", "lparam").
		WithGoModuleFunction(OnMessage, []api.ValueType{i32, i32, i64, i64}, []api.ValueType{i32}).
		Export("uevr_on_message")

	b.NewFunctionBuilder().
		WithName("uevr_on_xinput_get_state").
		WithParameterNames("retval", "user_index", "state").
		WithGoModuleFunction(OnXInputGetState, []api.ValueType{i32, i32, i32}, []api.ValueType{}).
		Export("uevr_on_xinput_get_state")

	b.NewFunctionBuilder().
		WithName("uevr_on_xinput_set_state").
		WithParameterNames("retval", "user_index", "vibration").
		WithGoModuleFunction(OnXInputSetState, []api.ValueType{i32, i32, i32}, []api.ValueType{}).
		Export("uevr_on_xinput_set_state")

	b.NewFunctionBuilder().
		WithName("uevr_on_post_render_vr_framework_dx11").
		WithParameterNames("context", "texture", "rtv").
		WithGoModuleFunction(OnPostRenderVRFrameworkDX11, []api.ValueType{i32, i32, i32}, []api.ValueType{}).
		Export("uevr_on_post_render_vr_framework_dx11")

	b.NewFunctionBuilder().
		WithName("uevr_on_post_render_vr_framework_dx12").
		WithParameterNames("command_list", "rt", "rtv").
		WithGoModuleFunction(OnPostRenderVRFrameworkDX12, []api.ValueType{i32, i32, i32}, []api.ValueType{}).
		Export("uevr_on_post_render_vr_framework_dx12")

	b.NewFunctionBuilder().
		WithName("uevr_on_pre_engine_tick").
		WithParameterNames("engine", "delta").
		WithGoModuleFunction(OnPreEngineTick, []api.ValueType{i32, f32}, []api.ValueType{}).
		Export("uevr_on_pre_engine_tick")

	b.NewFunctionBuilder().
		WithName("uevr_on_post_engine_tick").
		WithParameterNames("engine", "delta").
		WithGoModuleFunction(OnPostEngineTick, []api.ValueType{i32, f32}, []api.ValueType{}).
		Export("uevr_on_post_engine_tick")

	b.NewFunctionBuilder().
		WithName("uevr_on_pre_slate_draw_window_render_thread").
		WithParameterNames("renderer", "viewport_info").
		WithGoModuleFunction(OnPreSlateDrawWindow, []api.ValueType{i32, i32}, []api.ValueType{}).
		Export("uevr_on_pre_slate_draw_window_render_thread")

	b.NewFunctionBuilder().
		WithName("uevr_on_post_slate_draw_window_render_thread").
		WithParameterNames("renderer", "viewport_info").
		WithGoModuleFunction(OnPostSlateDrawWindow, []api.ValueType{i32, i32}, []api.ValueType{}).
		Export("uevr_on_post_slate_draw_window_render_thread")

	b.NewFunctionBuilder().
		WithName("uevr_on_pre_calculate_stereo_view_offset").
		WithParameterNames("device", "view_index", "world_to_meters", "position", "rotation", "is_double").
		WithGoModuleFunction(OnPreCalculateStereoViewOffset, []api.ValueType{i32, i32, f32, i32, i32, i32}, []api.ValueType{}).
		Export("uevr_on_pre_calculate_stereo_view_offset")

	b.NewFunctionBuilder().
		WithName("uevr_on_post_calculate_stereo_view_offset").
		WithParameterNames("device", "view_index", "world_to_meters", "position", "rotation", "is_double").
		WithGoModuleFunction(OnPostCalculateStereoViewOffset, []api.ValueType{i32, i32, f32, i32, i32, i32}, []api.ValueType{}).
		Export("uevr_on_post_calculate_stereo_view_offset")

	b.NewFunctionBuilder().
		WithName("uevr_on_pre_viewport_client_draw").
		WithParameterNames("viewport_client", "viewport", "canvas").
		WithGoModuleFunction(OnPreViewportClientDraw, []api.ValueType{i32, i32, i32}, []api.ValueType{}).
		Export("uevr_on_pre_viewport_client_draw")

	b.NewFunctionBuilder().
		WithName("uevr_on_post_viewport_client_draw").
		WithParameterNames("viewport_client", "viewport", "canvas").
		WithGoModuleFunction(OnPostViewportClientDraw, []api.ValueType{i32, i32, i32}, []api.ValueType{}).
		Export("uevr_on_post_viewport_client_draw")

	return nil
}
