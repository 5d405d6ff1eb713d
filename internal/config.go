package uevr

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/experimental/table"
)

// DefaultHostModuleName is the module name the runtime imports the plugin
// entry points from.
const DefaultHostModuleName = "uevr"

// FunctionResolver resolves a funcref index in table 0 of the guest module
// to a callable function. The given signature must match the table element
// exactly or resolution fails.
type FunctionResolver func(mod api.Module, idx uint32, params, results []api.ValueType) (api.Function, error)

// LookupTableFunction is the default FunctionResolver. It resolves entries
// through wazero's experimental table API, which only works for modules
// instantiated by a wazero runtime.
func LookupTableFunction(mod api.Module, idx uint32, params, results []api.ValueType) (fn api.Function, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("could not lookup function with index %d in the function table: %v", idx, recovered)
		}
	}()

	fn = table.LookupFunction(mod, 0, idx, params, results)

	return fn, nil
}

// EngineConfig controls how an engine binds to a guest module.
type EngineConfig struct {
	// HostModuleName is the import namespace the plugin entry points are
	// exported under.
	HostModuleName string

	// MallocExport and FreeExport name the guest exports used for scratch
	// allocations in guest memory.
	MallocExport string
	FreeExport   string

	// Resolver turns function table entries into callable functions.
	Resolver FunctionResolver
}

// Option mutates an EngineConfig.
type Option func(*EngineConfig)

// WithHostModuleName overrides the import namespace of the plugin entry
// points.
func WithHostModuleName(name string) Option {
	return func(config *EngineConfig) {
		config.HostModuleName = name
	}
}

// WithAllocatorExports overrides the names of the guest allocator exports.
func WithAllocatorExports(malloc, free string) Option {
	return func(config *EngineConfig) {
		config.MallocExport = malloc
		config.FreeExport = free
	}
}

// WithFunctionResolver overrides how function table entries are resolved.
func WithFunctionResolver(resolver FunctionResolver) Option {
	return func(config *EngineConfig) {
		config.Resolver = resolver
	}
}

// NewConfig returns an EngineConfig with defaults applied, matching the
// conventions of wasm32 guests built with a C toolchain.
func NewConfig(opts ...Option) *EngineConfig {
	config := &EngineConfig{
		HostModuleName: DefaultHostModuleName,
		MallocExport:   "malloc",
		FreeExport:     "free",
		Resolver:       LookupTableFunction,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}
