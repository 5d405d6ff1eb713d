package uevr

import (
	internal "github.com/uevr-go/uevr/internal"
)

// EngineConfig configures an engine and the plugin it drives.
type EngineConfig struct {
	plugin         Plugin
	hostModuleName string
	options        []internal.Option
}

// Option mutates an EngineConfig.
type Option func(*EngineConfig)

// WithPlugin sets the plugin that receives runtime callbacks.
func WithPlugin(plugin Plugin) Option {
	return func(config *EngineConfig) {
		config.plugin = plugin
	}
}

// WithHostModuleName overrides the import namespace the plugin entry points
// are exported under.
func WithHostModuleName(name string) Option {
	return func(config *EngineConfig) {
		config.hostModuleName = name
		config.options = append(config.options, internal.WithHostModuleName(name))
	}
}

// WithAllocatorExports overrides the names of the guest allocator exports
// used for scratch memory.
func WithAllocatorExports(malloc, free string) Option {
	return func(config *EngineConfig) {
		config.options = append(config.options, internal.WithAllocatorExports(malloc, free))
	}
}

// WithFunctionResolver overrides how function table entries are resolved
// into callable functions.
func WithFunctionResolver(resolver internal.FunctionResolver) Option {
	return func(config *EngineConfig) {
		config.options = append(config.options, internal.WithFunctionResolver(resolver))
	}
}

// NewConfig returns an EngineConfig with defaults applied.
func NewConfig(opts ...Option) *EngineConfig {
	config := &EngineConfig{
		hostModuleName: internal.DefaultHostModuleName,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}
