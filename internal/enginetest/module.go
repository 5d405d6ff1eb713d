package enginetest

import (
	"context"

	"github.com/tetratelabs/wazero/api"
)

// GoFunc is a host side stand-in for a guest function.
type GoFunc func(ctx context.Context, params ...uint64) ([]uint64, error)

// Function adapts a GoFunc to api.Function.
type Function struct {
	api.Function

	Fn GoFunc
}

func (f *Function) Definition() api.FunctionDefinition {
	return nil
}

func (f *Function) Call(ctx context.Context, params ...uint64) ([]uint64, error) {
	return f.Fn(ctx, params...)
}

func (f *Function) CallWithStack(ctx context.Context, stack []uint64) error {
	results, err := f.Fn(ctx, stack...)
	if err != nil {
		return err
	}

	copy(stack, results)
	return nil
}

// Module is an api.Module exposing a memory and a set of named exports.
type Module struct {
	api.Module

	ModuleName string
	Mem        api.Memory
	Functions  map[string]api.Function
}

func (m *Module) String() string {
	return m.ModuleName
}

func (m *Module) Name() string {
	return m.ModuleName
}

func (m *Module) Memory() api.Memory {
	return m.Mem
}

func (m *Module) ExportedFunction(name string) api.Function {
	return m.Functions[name]
}

func (m *Module) ExportedFunctionDefinitions() map[string]api.FunctionDefinition {
	return nil
}

func (m *Module) ExportedMemory(name string) api.Memory {
	return m.Mem
}

func (m *Module) ExportedMemoryDefinitions() map[string]api.MemoryDefinition {
	return nil
}

func (m *Module) ExportedGlobal(name string) api.Global {
	return nil
}

func (m *Module) Close(ctx context.Context) error {
	return nil
}

func (m *Module) CloseWithExitCode(ctx context.Context, exitCode uint32) error {
	return nil
}

func (m *Module) IsClosed() bool {
	return false
}
