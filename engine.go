package uevr

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	internal "github.com/uevr-go/uevr/internal"
)

// Engine extends the runtime binding engine with the plugin it drives and
// the host module configuration.
type Engine interface {
	internal.Engine

	// Plugin returns the plugin receiving runtime callbacks, nil when none
	// was configured.
	Plugin() Plugin

	// HostModuleName returns the import namespace the plugin entry points
	// are exported under.
	HostModuleName() string

	// NewFunctionExporterForModule returns an exporter that binds the
	// plugin entry points for the given runtime module.
	NewFunctionExporterForModule(guest wazero.CompiledModule) FunctionExporter
}

type uevrEngine struct {
	internal.Engine
	config *EngineConfig
}

// Attach attaches the engine to the given context. Host functions and
// capability operations find the engine through the context.
func (e *uevrEngine) Attach(ctx context.Context) context.Context {
	return context.WithValue(ctx, internal.EngineKey{}, e)
}

func (e *uevrEngine) Plugin() Plugin {
	return e.config.plugin
}

func (e *uevrEngine) HostModuleName() string {
	return e.config.hostModuleName
}

// CreateEngine creates a new engine. A nil config is replaced with the
// defaults. When a plugin is configured its OnLoad callback runs here,
// before the runtime negotiates versions.
func CreateEngine(config *EngineConfig) Engine {
	if config == nil {
		config = NewConfig()
	}

	e := &uevrEngine{
		Engine: internal.CreateEngine(internal.NewConfig(config.options...)),
		config: config,
	}

	if config.plugin != nil {
		config.plugin.OnLoad()
	}

	return e
}

// EngineFromContext returns the engine attached to the context.
func EngineFromContext(ctx context.Context) (Engine, error) {
	attached, err := internal.GetEngineFromContext(ctx)
	if err != nil {
		return nil, err
	}

	engine, ok := attached.(Engine)
	if !ok {
		return nil, fmt.Errorf("engine in context is of foreign type %T", attached)
	}

	return engine, nil
}

// MustGetEngineFromContext returns the engine attached to the context and
// binds it to the given module when one is given. It panics when no engine
// is attached.
func MustGetEngineFromContext(ctx context.Context, mod api.Module) Engine {
	attached := internal.MustGetEngineFromContext(ctx, mod)

	engine, ok := attached.(Engine)
	if !ok {
		panic(fmt.Errorf("engine in context is of foreign type %T", attached))
	}

	return engine
}

func tableCall(ctx context.Context, slot *internal.TableSlot, fn internal.TableFunc, args ...uint64) ([]uint64, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return e.TableCall(ctx, slot, fn, args...)
}

func callVoid(ctx context.Context, slot *internal.TableSlot, fn internal.TableFunc, args ...uint64) error {
	_, err := tableCall(ctx, slot, fn, args...)
	return err
}

func callU32(ctx context.Context, slot *internal.TableSlot, fn internal.TableFunc, args ...uint64) (uint32, error) {
	results, err := tableCall(ctx, slot, fn, args...)
	if err != nil {
		return 0, err
	}

	return api.DecodeU32(results[0]), nil
}

func callI32(ctx context.Context, slot *internal.TableSlot, fn internal.TableFunc, args ...uint64) (int32, error) {
	results, err := tableCall(ctx, slot, fn, args...)
	if err != nil {
		return 0, err
	}

	return api.DecodeI32(results[0]), nil
}

func callU64(ctx context.Context, slot *internal.TableSlot, fn internal.TableFunc, args ...uint64) (uint64, error) {
	results, err := tableCall(ctx, slot, fn, args...)
	if err != nil {
		return 0, err
	}

	return results[0], nil
}

func callF32(ctx context.Context, slot *internal.TableSlot, fn internal.TableFunc, args ...uint64) (float32, error) {
	results, err := tableCall(ctx, slot, fn, args...)
	if err != nil {
		return 0, err
	}

	return api.DecodeF32(results[0]), nil
}

func callBool(ctx context.Context, slot *internal.TableSlot, fn internal.TableFunc, args ...uint64) (bool, error) {
	value, err := callU32(ctx, slot, fn, args...)
	if err != nil {
		return false, err
	}

	return value != 0, nil
}

func callHandle[T HandleType[T]](ctx context.Context, slot *internal.TableSlot, fn internal.TableFunc, args ...uint64) (T, error) {
	var zero T

	addr, err := callU32(ctx, slot, fn, args...)
	if err != nil {
		return zero, err
	}

	return FromPtr[T](addr), nil
}

func boolArg(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}
