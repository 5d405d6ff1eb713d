package uevr

import (
	"context"

	internal "github.com/uevr-go/uevr/internal"
)

// TableSlot, TableFunc and TablePath describe runtime function tables.
// Generated bindings build their own slots for tables the runtime exposes
// beyond the built-in set.
type (
	TableSlot = internal.TableSlot
	TableFunc = internal.TableFunc
	TablePath = internal.TablePath
)

// TableRoot anchors a table path in one of the parameter block's pointer
// fields.
type TableRoot uint32

const (
	// TableRootFunctions starts at the plugin functions block.
	TableRootFunctions = TableRoot(internal.ParamFieldFunctions)

	// TableRootVR starts at the VR data block.
	TableRootVR = TableRoot(internal.ParamFieldVR)

	// TableRootSDK starts at the SDK data block.
	TableRootSDK = TableRoot(internal.ParamFieldSDK)
)

// NewTableSlot builds a slot for a runtime table reached from the given
// root. Each hop is a word index into the block reached by the previous
// hop. Slots are identities: build one per table and reuse it, resolution
// is cached per slot per engine.
func NewTableSlot(name string, root TableRoot, hops ...uint32) *TableSlot {
	path := append([]uint32{uint32(root)}, hops...)
	return &TableSlot{Name: name, Path: TablePath{Hops: path}}
}

// TableCall invokes an entry of a function table through the engine
// attached to the context.
func TableCall(ctx context.Context, slot *TableSlot, fn TableFunc, args ...uint64) ([]uint64, error) {
	return tableCall(ctx, slot, fn, args...)
}

// TablePtr resolves the base address of a function table through the engine
// attached to the context.
func TablePtr(ctx context.Context, slot *TableSlot) (uint32, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return 0, err
	}

	return e.TablePtr(ctx, slot)
}
