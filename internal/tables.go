package uevr

import (
	"github.com/tetratelabs/wazero/api"
)

// TablePath locates a function table in guest memory. Resolution starts at
// the parameter block the runtime handed to uevr_plugin_initialize and
// follows Hops, each hop a word index into the block reached by the previous
// hop. The last read yields the table base pointer.
type TablePath struct {
	Hops []uint32
}

// TableSlot identifies one per-type function table. Slots are package-level
// identities; the resolved base pointer is cached on the engine, once per
// engine, and never reassigned afterwards.
type TableSlot struct {
	Name string
	Path TablePath
}

// TableFunc describes one entry of a function table: the word index of the
// funcref within the table struct and the wasm signature to resolve it with.
type TableFunc struct {
	Name    string
	Entry   uint32
	Params  []api.ValueType
	Results []api.ValueType
}

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
	f32 = api.ValueTypeF32
)

func sig(types ...api.ValueType) []api.ValueType {
	return types
}
