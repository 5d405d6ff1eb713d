package uevr

import (
	"context"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// Plugin ABI version advertised to the runtime during negotiation. The
// runtime must report the same major version and at least this minor
// version.
const (
	VersionMajor uint32 = 2
	VersionMinor uint32 = 0
	VersionPatch uint32 = 0
)

// Version is a runtime version triple read from the parameter block.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Engine drives a single foreign runtime instance. It owns the negotiated
// parameter block, the lazily resolved function tables and the scratch
// allocator of one guest module.
type Engine interface {
	// Attach attaches the engine to the given context so that host
	// functions and capability operations can find it.
	Attach(ctx context.Context) context.Context

	// BindModule binds the engine to the guest module. An engine serves
	// exactly one module, binding a second one panics.
	BindModule(mod api.Module)

	// Module returns the bound guest module, nil before the first bind.
	Module() api.Module

	// Initialize validates the parameter block the runtime handed to the
	// plugin and activates the engine. It is a no-op when the engine is
	// already active.
	Initialize(ctx context.Context, paramAddr uint32) error

	// Deactivate resets the engine to its pre-initialization state. It is
	// used when plugin initialization fails after the parameter block was
	// accepted, so that no partially initialized engine stays behind.
	Deactivate()

	// Initialized reports whether Initialize has completed.
	Initialized() bool

	// ParamAddr returns the guest address of the parameter block.
	ParamAddr() uint32

	// RuntimeVersion returns the version the runtime reported during
	// initialization.
	RuntimeVersion() Version

	// TablePtr resolves the base address of a function table. Resolution
	// happens once per slot, later calls return the cached address.
	TablePtr(ctx context.Context, slot *TableSlot) (uint32, error)

	// TableCall invokes an entry of a function table.
	TableCall(ctx context.Context, slot *TableSlot, fn TableFunc, args ...uint64) ([]uint64, error)

	// ClassPtr looks up a class descriptor by its full path, for example
	// "Class /Script/CoreUObject.Object". Successful lookups are cached.
	ClassPtr(ctx context.Context, path string) (uint32, error)

	// Malloc allocates scratch memory through the guest allocator.
	Malloc(ctx context.Context, size uint32) (uint32, error)

	// Free releases scratch memory allocated with Malloc. Freeing address
	// zero is a no-op.
	Free(ctx context.Context, addr uint32) error

	// Memory returns the guest memory, nil before the first bind.
	Memory() api.Memory

	ReadWord(addr uint32) (uint32, error)
	WriteWord(addr uint32, value uint32) error

	// WriteCString writes a NUL terminated byte string to scratch memory.
	// The caller frees the returned address.
	WriteCString(ctx context.Context, s string) (uint32, error)
	ReadCString(addr uint32) (string, error)

	// WriteWideString writes a NUL terminated UTF-16LE string to scratch
	// memory. The caller frees the returned address.
	WriteWideString(ctx context.Context, s string) (uint32, error)

	// ReadWideString reads chars UTF-16LE characters from guest memory.
	ReadWideString(addr uint32, chars uint32) (string, error)

	// ReadWideCString reads a NUL terminated UTF-16LE string from guest
	// memory.
	ReadWideCString(addr uint32) (string, error)

	// LogInfo, LogWarn and LogError write to the runtime's log channel.
	LogInfo(ctx context.Context, msg string) error
	LogWarn(ctx context.Context, msg string) error
	LogError(ctx context.Context, msg string) error
}

// EngineKey is the context key an engine is attached under.
type EngineKey struct{}

// CreateEngine creates a new engine from the given config. A nil config is
// replaced with the defaults.
func CreateEngine(config *EngineConfig) Engine {
	if config == nil {
		config = NewConfig()
	}

	return &engine{
		config:  config,
		tables:  map[*TableSlot]*tableEntry{},
		funcs:   map[funcKey]api.Function{},
		classes: map[string]uint32{},
	}
}

// GetEngineFromContext returns the engine attached to the context.
func GetEngineFromContext(ctx context.Context) (Engine, error) {
	raw := ctx.Value(EngineKey{})
	if raw == nil {
		return nil, errors.New("uevr engine not found in context")
	}

	value, ok := raw.(Engine)
	if !ok {
		return nil, fmt.Errorf("context value of type %T is not a uevr engine", raw)
	}

	return value, nil
}

// MustGetEngineFromContext returns the engine attached to the context and
// binds it to the given module when one is given. It panics when no engine
// is attached, which means the embedder did not set up the context.
func MustGetEngineFromContext(ctx context.Context, mod api.Module) Engine {
	engine, err := GetEngineFromContext(ctx)
	if err != nil {
		panic(fmt.Errorf("%w, make sure to create an engine with CreateEngine() and attach it to the context with ctx = engine.Attach(ctx)", err))
	}

	if mod != nil {
		engine.BindModule(mod)
	}

	return engine
}
