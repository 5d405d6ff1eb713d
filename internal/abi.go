package uevr

// Wire layout of the runtime's parameter block and everything it points to.
// All fields are 4-byte little-endian words in guest memory; function table
// entries are funcref indices into table 0 of the guest module.

// Parameter block word indices.
const (
	ParamFieldModule uint32 = iota
	ParamFieldVersion
	ParamFieldFunctions
	ParamFieldCallbacks
	ParamFieldRenderer
	ParamFieldVR
	ParamFieldOpenVR
	ParamFieldOpenXR
	ParamFieldSDK
)

// Version block word indices.
const (
	VersionFieldMajor uint32 = iota
	VersionFieldMinor
	VersionFieldPatch
)

// Renderer data block word indices.
const (
	RendererFieldType uint32 = iota
	RendererFieldDevice
	RendererFieldSwapchain
	RendererFieldCommandQueue
)

// SDK data block word indices, one function table pointer per foreign
// subsystem.
const (
	SDKFieldFunctions uint32 = iota
	SDKFieldCallbacks
	SDKFieldUObject
	SDKFieldUObjectArray
	SDKFieldFField
	SDKFieldFName
	SDKFieldFProperty
	SDKFieldUStruct
	SDKFieldUClass
	SDKFieldUFunction
	SDKFieldUObjectHook
	SDKFieldFFieldClass
	SDKFieldFRHITexture2D
	SDKFieldUScriptStruct
	SDKFieldFArrayProperty
	SDKFieldFBoolProperty
	SDKFieldFStructProperty
	SDKFieldFEnumProperty
	SDKFieldMalloc
	SDKFieldRenderTargetPoolHook
	SDKFieldStereoHook
	SDKFieldConsole
	SDKFieldUField
)

// The motion controller state table hangs off a pointer field inside the
// object hook table rather than off the SDK block itself.
const UObjectHookFieldMCState uint32 = 10

var (
	TablePluginFunctions = &TableSlot{Name: "plugin_functions", Path: TablePath{Hops: []uint32{ParamFieldFunctions}}}
	TableVR              = &TableSlot{Name: "vr", Path: TablePath{Hops: []uint32{ParamFieldVR}}}

	TableSDKFunctions         = &TableSlot{Name: "sdk_functions", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFunctions}}}
	TableUObject              = &TableSlot{Name: "uobject", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldUObject}}}
	TableUField               = &TableSlot{Name: "ufield", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldUField}}}
	TableUObjectArray         = &TableSlot{Name: "uobject_array", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldUObjectArray}}}
	TableFField               = &TableSlot{Name: "ffield", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFField}}}
	TableFName                = &TableSlot{Name: "fname", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFName}}}
	TableFProperty            = &TableSlot{Name: "fproperty", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFProperty}}}
	TableUStruct              = &TableSlot{Name: "ustruct", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldUStruct}}}
	TableUClass               = &TableSlot{Name: "uclass", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldUClass}}}
	TableUFunction            = &TableSlot{Name: "ufunction", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldUFunction}}}
	TableUObjectHook          = &TableSlot{Name: "uobject_hook", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldUObjectHook}}}
	TableFFieldClass          = &TableSlot{Name: "ffield_class", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFFieldClass}}}
	TableFRHITexture2D        = &TableSlot{Name: "frhitexture2d", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFRHITexture2D}}}
	TableUScriptStruct        = &TableSlot{Name: "uscriptstruct", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldUScriptStruct}}}
	TableFArrayProperty       = &TableSlot{Name: "farrayproperty", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFArrayProperty}}}
	TableFBoolProperty        = &TableSlot{Name: "fboolproperty", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFBoolProperty}}}
	TableFStructProperty      = &TableSlot{Name: "fstructproperty", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFStructProperty}}}
	TableFEnumProperty        = &TableSlot{Name: "fenumproperty", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldFEnumProperty}}}
	TableFMalloc              = &TableSlot{Name: "malloc", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldMalloc}}}
	TableRenderTargetPoolHook = &TableSlot{Name: "render_target_pool_hook", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldRenderTargetPoolHook}}}
	TableStereoHook           = &TableSlot{Name: "stereo_hook", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldStereoHook}}}
	TableConsole              = &TableSlot{Name: "console", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldConsole}}}

	TableMotionControllerState = &TableSlot{Name: "mc_state", Path: TablePath{Hops: []uint32{ParamFieldSDK, SDKFieldUObjectHook, UObjectHookFieldMCState}}}
)

// Plugin functions table.
var (
	FnLogError         = TableFunc{Name: "plugin_functions.log_error", Entry: 0, Params: sig(i32)}
	FnLogWarn          = TableFunc{Name: "plugin_functions.log_warn", Entry: 1, Params: sig(i32)}
	FnLogInfo          = TableFunc{Name: "plugin_functions.log_info", Entry: 2, Params: sig(i32)}
	FnGetPersistentDir = TableFunc{Name: "plugin_functions.get_persistent_dir", Entry: 3, Params: sig(i32, i32), Results: sig(i32)}
	FnDispatchLuaEvent = TableFunc{Name: "plugin_functions.dispatch_lua_event", Entry: 4, Params: sig(i32, i32)}
)

// SDK functions table.
var (
	FnGetUEngine          = TableFunc{Name: "sdk_functions.get_uengine", Entry: 0, Results: sig(i32)}
	FnGetPlayerController = TableFunc{Name: "sdk_functions.get_player_controller", Entry: 1, Params: sig(i32), Results: sig(i32)}
	FnGetLocalPawn        = TableFunc{Name: "sdk_functions.get_local_pawn", Entry: 2, Params: sig(i32), Results: sig(i32)}
	FnSpawnObject         = TableFunc{Name: "sdk_functions.spawn_object", Entry: 3, Params: sig(i32, i32), Results: sig(i32)}
	FnExecuteCommand      = TableFunc{Name: "sdk_functions.execute_command", Entry: 4, Params: sig(i32)}
	FnExecuteCommandEx    = TableFunc{Name: "sdk_functions.execute_command_ex", Entry: 5, Params: sig(i32, i32, i32)}
	FnGetUObjectArray     = TableFunc{Name: "sdk_functions.get_uobject_array", Entry: 6, Results: sig(i32)}
	FnGetConsoleManager   = TableFunc{Name: "sdk_functions.get_console_manager", Entry: 7, Results: sig(i32)}
)

// UObject table.
var (
	FnUObjectGetClass        = TableFunc{Name: "uobject.get_class", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnUObjectGetOuter        = TableFunc{Name: "uobject.get_outer", Entry: 1, Params: sig(i32), Results: sig(i32)}
	FnUObjectProcessEvent    = TableFunc{Name: "uobject.process_event", Entry: 2, Params: sig(i32, i32, i32)}
	FnUObjectCallFunction    = TableFunc{Name: "uobject.call_function", Entry: 3, Params: sig(i32, i32, i32)}
	FnUObjectGetPropertyData = TableFunc{Name: "uobject.get_property_data", Entry: 4, Params: sig(i32, i32), Results: sig(i32)}
	FnUObjectGetBoolProperty = TableFunc{Name: "uobject.get_bool_property", Entry: 5, Params: sig(i32, i32), Results: sig(i32)}
	FnUObjectSetBoolProperty = TableFunc{Name: "uobject.set_bool_property", Entry: 6, Params: sig(i32, i32, i32)}
	FnUObjectGetFName        = TableFunc{Name: "uobject.get_fname", Entry: 7, Params: sig(i32), Results: sig(i32)}
	FnUObjectIsA             = TableFunc{Name: "uobject.is_a", Entry: 8, Params: sig(i32, i32), Results: sig(i32)}
)

// UField table.
var FnUFieldGetNext = TableFunc{Name: "ufield.get_next", Entry: 0, Params: sig(i32), Results: sig(i32)}

// UStruct table.
var (
	FnUStructGetSuperStruct     = TableFunc{Name: "ustruct.get_super_struct", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnUStructFindFunction       = TableFunc{Name: "ustruct.find_function", Entry: 1, Params: sig(i32, i32), Results: sig(i32)}
	FnUStructFindProperty       = TableFunc{Name: "ustruct.find_property", Entry: 2, Params: sig(i32, i32), Results: sig(i32)}
	FnUStructGetChildProperties = TableFunc{Name: "ustruct.get_child_properties", Entry: 3, Params: sig(i32), Results: sig(i32)}
	FnUStructGetChildren        = TableFunc{Name: "ustruct.get_children", Entry: 4, Params: sig(i32), Results: sig(i32)}
	FnUStructGetPropertiesSize  = TableFunc{Name: "ustruct.get_properties_size", Entry: 5, Params: sig(i32), Results: sig(i32)}
	FnUStructGetMinAlignment    = TableFunc{Name: "ustruct.get_min_alignment", Entry: 6, Params: sig(i32), Results: sig(i32)}
)

// UClass table.
var FnUClassGetClassDefaultObject = TableFunc{Name: "uclass.get_class_default_object", Entry: 0, Params: sig(i32), Results: sig(i32)}

// UFunction table.
var (
	FnUFunctionGetNativeFunction = TableFunc{Name: "ufunction.get_native_function", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnUFunctionGetFunctionFlags  = TableFunc{Name: "ufunction.get_function_flags", Entry: 1, Params: sig(i32), Results: sig(i32)}
	FnUFunctionSetFunctionFlags  = TableFunc{Name: "ufunction.set_function_flags", Entry: 2, Params: sig(i32, i32)}
)

// UScriptStruct table.
var (
	FnUScriptStructGetStructOps  = TableFunc{Name: "uscriptstruct.get_struct_ops", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnUScriptStructGetStructSize = TableFunc{Name: "uscriptstruct.get_struct_size", Entry: 1, Params: sig(i32), Results: sig(i32)}
)

// UObject array table.
var (
	FnUObjectArrayFindUObject      = TableFunc{Name: "uobject_array.find_uobject", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnUObjectArrayIsChunked        = TableFunc{Name: "uobject_array.is_chunked", Entry: 1, Results: sig(i32)}
	FnUObjectArrayIsInlined        = TableFunc{Name: "uobject_array.is_inlined", Entry: 2, Results: sig(i32)}
	FnUObjectArrayGetObjectsOffset = TableFunc{Name: "uobject_array.get_objects_offset", Entry: 3, Results: sig(i32)}
	FnUObjectArrayGetItemDistance  = TableFunc{Name: "uobject_array.get_item_distance", Entry: 4, Results: sig(i32)}
	FnUObjectArrayGetObjectCount   = TableFunc{Name: "uobject_array.get_object_count", Entry: 5, Params: sig(i32), Results: sig(i32)}
	FnUObjectArrayGetObjectsPtr    = TableFunc{Name: "uobject_array.get_objects_ptr", Entry: 6, Params: sig(i32), Results: sig(i32)}
	FnUObjectArrayGetObject        = TableFunc{Name: "uobject_array.get_object", Entry: 7, Params: sig(i32, i32), Results: sig(i32)}
	FnUObjectArrayGetItem          = TableFunc{Name: "uobject_array.get_item", Entry: 8, Params: sig(i32, i32), Results: sig(i32)}
)

// FField table.
var (
	FnFFieldGetNext  = TableFunc{Name: "ffield.get_next", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnFFieldGetFName = TableFunc{Name: "ffield.get_fname", Entry: 1, Params: sig(i32), Results: sig(i32)}
	FnFFieldGetClass = TableFunc{Name: "ffield.get_class", Entry: 2, Params: sig(i32), Results: sig(i32)}
)

// FProperty table.
var (
	FnFPropertyGetOffset        = TableFunc{Name: "fproperty.get_offset", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnFPropertyGetPropertyFlags = TableFunc{Name: "fproperty.get_property_flags", Entry: 1, Params: sig(i32), Results: sig(i64)}
	FnFPropertyIsParam          = TableFunc{Name: "fproperty.is_param", Entry: 2, Params: sig(i32), Results: sig(i32)}
	FnFPropertyIsOutParam       = TableFunc{Name: "fproperty.is_out_param", Entry: 3, Params: sig(i32), Results: sig(i32)}
	FnFPropertyIsReturnParam    = TableFunc{Name: "fproperty.is_return_param", Entry: 4, Params: sig(i32), Results: sig(i32)}
	FnFPropertyIsReferenceParam = TableFunc{Name: "fproperty.is_reference_param", Entry: 5, Params: sig(i32), Results: sig(i32)}
	FnFPropertyIsPOD            = TableFunc{Name: "fproperty.is_pod", Entry: 6, Params: sig(i32), Results: sig(i32)}
)

// FArrayProperty table.
var FnFArrayPropertyGetInner = TableFunc{Name: "farrayproperty.get_inner", Entry: 0, Params: sig(i32), Results: sig(i32)}

// FBoolProperty table.
var (
	FnFBoolPropertyGetFieldSize          = TableFunc{Name: "fboolproperty.get_field_size", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnFBoolPropertyGetByteOffset         = TableFunc{Name: "fboolproperty.get_byte_offset", Entry: 1, Params: sig(i32), Results: sig(i32)}
	FnFBoolPropertyGetByteMask           = TableFunc{Name: "fboolproperty.get_byte_mask", Entry: 2, Params: sig(i32), Results: sig(i32)}
	FnFBoolPropertyGetFieldMask          = TableFunc{Name: "fboolproperty.get_field_mask", Entry: 3, Params: sig(i32), Results: sig(i32)}
	FnFBoolPropertyGetValueFromObject    = TableFunc{Name: "fboolproperty.get_value_from_object", Entry: 4, Params: sig(i32, i32), Results: sig(i32)}
	FnFBoolPropertySetValueInObject      = TableFunc{Name: "fboolproperty.set_value_in_object", Entry: 5, Params: sig(i32, i32, i32)}
	FnFBoolPropertyGetValueFromPropbase  = TableFunc{Name: "fboolproperty.get_value_from_propbase", Entry: 6, Params: sig(i32, i32), Results: sig(i32)}
	FnFBoolPropertySetValueInPropbase    = TableFunc{Name: "fboolproperty.set_value_in_propbase", Entry: 7, Params: sig(i32, i32, i32)}
)

// FStructProperty table.
var FnFStructPropertyGetStruct = TableFunc{Name: "fstructproperty.get_struct", Entry: 0, Params: sig(i32), Results: sig(i32)}

// FEnumProperty table.
var (
	FnFEnumPropertyGetUnderlyingProp = TableFunc{Name: "fenumproperty.get_underlying_prop", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnFEnumPropertyGetEnum           = TableFunc{Name: "fenumproperty.get_enum", Entry: 1, Params: sig(i32), Results: sig(i32)}
)

// FFieldClass table.
var FnFFieldClassGetFName = TableFunc{Name: "ffield_class.get_fname", Entry: 0, Params: sig(i32), Results: sig(i32)}

// FName table.
var (
	FnFNameConstructor = TableFunc{Name: "fname.constructor", Entry: 0, Params: sig(i32, i32, i32)}
	FnFNameToString    = TableFunc{Name: "fname.to_string", Entry: 1, Params: sig(i32, i32, i32), Results: sig(i32)}
)

// FMalloc table.
var (
	FnFMallocGet     = TableFunc{Name: "malloc.get", Entry: 0, Results: sig(i32)}
	FnFMallocMalloc  = TableFunc{Name: "malloc.malloc", Entry: 1, Params: sig(i32, i32, i32), Results: sig(i32)}
	FnFMallocRealloc = TableFunc{Name: "malloc.realloc", Entry: 2, Params: sig(i32, i32, i32, i32), Results: sig(i32)}
	FnFMallocFree    = TableFunc{Name: "malloc.free", Entry: 3, Params: sig(i32, i32)}
)

// Console table, shared by the console manager and console objects.
var (
	FnConsoleGetConsoleObjects = TableFunc{Name: "console.get_console_objects", Entry: 0, Params: sig(i32), Results: sig(i32)}
	FnConsoleFindObject        = TableFunc{Name: "console.find_object", Entry: 1, Params: sig(i32, i32), Results: sig(i32)}
	FnConsoleFindVariable      = TableFunc{Name: "console.find_variable", Entry: 2, Params: sig(i32, i32), Results: sig(i32)}
	FnConsoleFindCommand       = TableFunc{Name: "console.find_command", Entry: 3, Params: sig(i32, i32), Results: sig(i32)}
	FnConsoleAsCommand         = TableFunc{Name: "console.as_command", Entry: 4, Params: sig(i32), Results: sig(i32)}
	FnConsoleVariableSet       = TableFunc{Name: "console.variable_set", Entry: 5, Params: sig(i32, i32)}
	FnConsoleVariableSetEx     = TableFunc{Name: "console.variable_set_ex", Entry: 6, Params: sig(i32, i32, i32)}
	FnConsoleVariableGetInt    = TableFunc{Name: "console.variable_get_int", Entry: 7, Params: sig(i32), Results: sig(i32)}
	FnConsoleVariableGetFloat  = TableFunc{Name: "console.variable_get_float", Entry: 8, Params: sig(i32), Results: sig(f32)}
	FnConsoleCommandExecute    = TableFunc{Name: "console.command_execute", Entry: 9, Params: sig(i32, i32)}
)

// FRHITexture2D table.
var FnFRHITexture2DGetNativeResource = TableFunc{Name: "frhitexture2d.get_native_resource", Entry: 0, Params: sig(i32), Results: sig(i32)}

// UObject hook table. Entry 10 is the nested motion controller state table
// pointer, not a funcref.
var (
	FnUObjectHookActivate                    = TableFunc{Name: "uobject_hook.activate", Entry: 0}
	FnUObjectHookExists                      = TableFunc{Name: "uobject_hook.exists", Entry: 1, Params: sig(i32), Results: sig(i32)}
	FnUObjectHookIsDisabled                  = TableFunc{Name: "uobject_hook.is_disabled", Entry: 2, Results: sig(i32)}
	FnUObjectHookSetDisabled                 = TableFunc{Name: "uobject_hook.set_disabled", Entry: 3, Params: sig(i32)}
	FnUObjectHookGetFirstObjectByClass       = TableFunc{Name: "uobject_hook.get_first_object_by_class", Entry: 4, Params: sig(i32, i32), Results: sig(i32)}
	FnUObjectHookGetObjectsByClass           = TableFunc{Name: "uobject_hook.get_objects_by_class", Entry: 5, Params: sig(i32, i32, i32, i32), Results: sig(i32)}
	FnUObjectHookGetOrAddMCState             = TableFunc{Name: "uobject_hook.get_or_add_motion_controller_state", Entry: 6, Params: sig(i32), Results: sig(i32)}
	FnUObjectHookGetMCState                  = TableFunc{Name: "uobject_hook.get_motion_controller_state", Entry: 7, Params: sig(i32), Results: sig(i32)}
	FnUObjectHookRemoveMCState               = TableFunc{Name: "uobject_hook.remove_motion_controller_state", Entry: 8, Params: sig(i32)}
	FnUObjectHookRemoveAllMCStates           = TableFunc{Name: "uobject_hook.remove_all_motion_controller_states", Entry: 9}
)

// Motion controller state table.
var (
	FnMCStateSetRotationOffset = TableFunc{Name: "mc_state.set_rotation_offset", Entry: 0, Params: sig(i32, i32)}
	FnMCStateSetLocationOffset = TableFunc{Name: "mc_state.set_location_offset", Entry: 1, Params: sig(i32, i32)}
	FnMCStateSetHand           = TableFunc{Name: "mc_state.set_hand", Entry: 2, Params: sig(i32, i32)}
	FnMCStateSetPermanent      = TableFunc{Name: "mc_state.set_permanent", Entry: 3, Params: sig(i32, i32)}
)

// Render target pool hook table.
var (
	FnRenderHookActivate        = TableFunc{Name: "render_target_pool_hook.activate", Entry: 0}
	FnRenderHookGetRenderTarget = TableFunc{Name: "render_target_pool_hook.get_render_target", Entry: 1, Params: sig(i32), Results: sig(i32)}
)

// Stereo hook table.
var (
	FnStereoHookGetSceneRenderTarget = TableFunc{Name: "stereo_hook.get_scene_render_target", Entry: 0, Results: sig(i32)}
	FnStereoHookGetUIRenderTarget    = TableFunc{Name: "stereo_hook.get_ui_render_target", Entry: 1, Results: sig(i32)}
)

// VR data table.
var (
	FnVRIsRuntimeReady            = TableFunc{Name: "vr.is_runtime_ready", Entry: 0, Results: sig(i32)}
	FnVRIsOpenVR                  = TableFunc{Name: "vr.is_openvr", Entry: 1, Results: sig(i32)}
	FnVRIsOpenXR                  = TableFunc{Name: "vr.is_openxr", Entry: 2, Results: sig(i32)}
	FnVRIsHMDActive               = TableFunc{Name: "vr.is_hmd_active", Entry: 3, Results: sig(i32)}
	FnVRGetStandingOrigin         = TableFunc{Name: "vr.get_standing_origin", Entry: 4, Params: sig(i32)}
	FnVRGetRotationOffset         = TableFunc{Name: "vr.get_rotation_offset", Entry: 5, Params: sig(i32)}
	FnVRSetStandingOrigin         = TableFunc{Name: "vr.set_standing_origin", Entry: 6, Params: sig(i32)}
	FnVRSetRotationOffset         = TableFunc{Name: "vr.set_rotation_offset", Entry: 7, Params: sig(i32)}
	FnVRGetHMDIndex               = TableFunc{Name: "vr.get_hmd_index", Entry: 8, Results: sig(i32)}
	FnVRGetLeftControllerIndex    = TableFunc{Name: "vr.get_left_controller_index", Entry: 9, Results: sig(i32)}
	FnVRGetRightControllerIndex   = TableFunc{Name: "vr.get_right_controller_index", Entry: 10, Results: sig(i32)}
	FnVRGetPose                   = TableFunc{Name: "vr.get_pose", Entry: 11, Params: sig(i32, i32, i32)}
	FnVRGetTransform              = TableFunc{Name: "vr.get_transform", Entry: 12, Params: sig(i32, i32)}
	FnVRGetGripPose               = TableFunc{Name: "vr.get_grip_pose", Entry: 13, Params: sig(i32, i32, i32)}
	FnVRGetAimPose                = TableFunc{Name: "vr.get_aim_pose", Entry: 14, Params: sig(i32, i32, i32)}
	FnVRGetGripTransform          = TableFunc{Name: "vr.get_grip_transform", Entry: 15, Params: sig(i32, i32)}
	FnVRGetAimTransform           = TableFunc{Name: "vr.get_aim_transform", Entry: 16, Params: sig(i32, i32)}
	FnVRGetEyeOffset              = TableFunc{Name: "vr.get_eye_offset", Entry: 17, Params: sig(i32, i32)}
	FnVRGetUEProjectionMatrix     = TableFunc{Name: "vr.get_ue_projection_matrix", Entry: 18, Params: sig(i32, i32)}
	FnVRGetLeftJoystickSource     = TableFunc{Name: "vr.get_left_joystick_source", Entry: 19, Results: sig(i32)}
	FnVRGetRightJoystickSource    = TableFunc{Name: "vr.get_right_joystick_source", Entry: 20, Results: sig(i32)}
	FnVRGetActionHandle           = TableFunc{Name: "vr.get_action_handle", Entry: 21, Params: sig(i32), Results: sig(i32)}
	FnVRIsActionActive            = TableFunc{Name: "vr.is_action_active", Entry: 22, Params: sig(i32, i32), Results: sig(i32)}
	FnVRIsActionActiveAnyJoystick = TableFunc{Name: "vr.is_action_active_any_joystick", Entry: 23, Params: sig(i32), Results: sig(i32)}
	FnVRGetJoystickAxis           = TableFunc{Name: "vr.get_joystick_axis", Entry: 24, Params: sig(i32, i32)}
	FnVRTriggerHapticVibration    = TableFunc{Name: "vr.trigger_haptic_vibration", Entry: 25, Params: sig(f32, f32, f32, f32, i32)}
	FnVRIsUsingControllers        = TableFunc{Name: "vr.is_using_controllers", Entry: 26, Results: sig(i32)}
	FnVRGetMovementOrientation    = TableFunc{Name: "vr.get_movement_orientation", Entry: 27, Results: sig(i32)}
	FnVRGetLowestXinputIndex      = TableFunc{Name: "vr.get_lowest_xinput_index", Entry: 28, Results: sig(i32)}
	FnVRRecenterView              = TableFunc{Name: "vr.recenter_view", Entry: 29}
	FnVRRecenterHorizon           = TableFunc{Name: "vr.recenter_horizon", Entry: 30}
	FnVRGetAimMethod              = TableFunc{Name: "vr.get_aim_method", Entry: 31, Results: sig(i32)}
	FnVRSetAimMethod              = TableFunc{Name: "vr.set_aim_method", Entry: 32, Params: sig(i32)}
	FnVRIsAimAllowed              = TableFunc{Name: "vr.is_aim_allowed", Entry: 33, Results: sig(i32)}
	FnVRSetAimAllowed             = TableFunc{Name: "vr.set_aim_allowed", Entry: 34, Params: sig(i32)}
	FnVRGetHMDWidth               = TableFunc{Name: "vr.get_hmd_width", Entry: 35, Results: sig(i32)}
	FnVRGetHMDHeight              = TableFunc{Name: "vr.get_hmd_height", Entry: 36, Results: sig(i32)}
	FnVRGetUIWidth                = TableFunc{Name: "vr.get_ui_width", Entry: 37, Results: sig(i32)}
	FnVRGetUIHeight               = TableFunc{Name: "vr.get_ui_height", Entry: 38, Results: sig(i32)}
	FnVRIsSnapTurnEnabled         = TableFunc{Name: "vr.is_snap_turn_enabled", Entry: 39, Results: sig(i32)}
	FnVRSetSnapTurnEnabled        = TableFunc{Name: "vr.set_snap_turn_enabled", Entry: 40, Params: sig(i32)}
	FnVRIsDecoupledPitchEnabled   = TableFunc{Name: "vr.is_decoupled_pitch_enabled", Entry: 41, Results: sig(i32)}
	FnVRSetDecoupledPitchEnabled  = TableFunc{Name: "vr.set_decoupled_pitch_enabled", Entry: 42, Params: sig(i32)}
	FnVRSetModValue               = TableFunc{Name: "vr.set_mod_value", Entry: 43, Params: sig(i32, i32)}
	FnVRGetModValue               = TableFunc{Name: "vr.get_mod_value", Entry: 44, Params: sig(i32, i32, i32)}
	FnVRSaveConfig                = TableFunc{Name: "vr.save_config", Entry: 45}
	FnVRReloadConfig              = TableFunc{Name: "vr.reload_config", Entry: 46}
)
