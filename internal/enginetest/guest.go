// Package enginetest simulates the runtime side of the plugin ABI in plain
// Go, so engine behavior can be tested without instantiating a wasm module.
//
// A Guest owns a fake guest module: linear memory, a bump allocator behind
// the module's malloc and free exports, a parameter block in the layout the
// runtime hands to uevr_plugin_initialize and a funcref table populated
// through Provide. Its Resolver substitutes wazero's table lookup.
package enginetest

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero/api"

	internal "github.com/uevr-go/uevr/internal"
)

const (
	memorySize = 1 << 20
	heapBase   = 0x1000

	// Generous sizes so every slot of the real ABI fits.
	pointerBlockWords = 32
	tableWords        = 64
)

// Guest simulates one guest module and the runtime data it exposes.
type Guest struct {
	mem *Memory
	mod *Module

	mu      sync.Mutex
	next    uint32
	sizes   map[uint32]uint32
	frees   map[uint32]int
	funcs   map[uint32]GoFunc
	funcref uint32

	paramAddr uint32
}

// NewGuest returns a guest with a valid parameter block: a version block
// matching the negotiated ABI version and a non-null callback table. Data
// tables are created lazily by Provide.
func NewGuest() *Guest {
	g := &Guest{
		mem:     NewMemory(memorySize),
		next:    heapBase,
		sizes:   map[uint32]uint32{},
		frees:   map[uint32]int{},
		funcs:   map[uint32]GoFunc{},
		funcref: 1, // index 0 is the null function pointer
	}

	g.mod = &Module{
		ModuleName: "guest",
		Mem:        g.mem,
		Functions: map[string]api.Function{
			"malloc": &Function{Fn: func(ctx context.Context, params ...uint64) ([]uint64, error) {
				return []uint64{uint64(g.Alloc(api.DecodeU32(params[0])))}, nil
			}},
			"free": &Function{Fn: func(ctx context.Context, params ...uint64) ([]uint64, error) {
				g.Release(api.DecodeU32(params[0]))
				return nil, nil
			}},
		},
	}

	g.paramAddr = g.PlaceWords(make([]uint32, 16)...)
	version := g.PlaceWords(internal.VersionMajor, internal.VersionMinor, internal.VersionPatch)
	g.WriteWord(g.paramAddr+4*internal.ParamFieldVersion, version)
	callbacks := g.PlaceWords(0, 0, 0, 0)
	g.WriteWord(g.paramAddr+4*internal.ParamFieldCallbacks, callbacks)

	return g
}

// Module returns the fake guest module.
func (g *Guest) Module() api.Module {
	return g.mod
}

// Memory returns the guest memory.
func (g *Guest) Memory() api.Memory {
	return g.mem
}

// ParamAddr returns the address of the parameter block.
func (g *Guest) ParamAddr() uint32 {
	return g.paramAddr
}

// Alloc allocates guest memory the way the module's malloc export does. The
// allocation is tracked, so frees of it are counted.
func (g *Guest) Alloc(size uint32) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if size == 0 {
		size = 1
	}

	addr := (g.next + 7) &^ 7
	g.next = addr + size
	g.sizes[addr] = size

	return addr
}

// Release records a free of the given address.
func (g *Guest) Release(addr uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.frees[addr]++
}

// FreeCount returns how often the address was freed.
func (g *Guest) FreeCount(addr uint32) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.frees[addr]
}

// DoubleFrees returns the addresses freed more than once, sorted.
func (g *Guest) DoubleFrees() []uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()

	var addrs []uint32
	for addr, count := range g.frees {
		if count > 1 {
			addrs = append(addrs, addr)
		}
	}

	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// Place writes fixture data into fresh guest memory. Placed data is not a
// tracked allocation.
func (g *Guest) Place(data []byte) uint32 {
	g.mu.Lock()
	addr := (g.next + 7) &^ 7
	g.next = addr + uint32(len(data)) + 1
	g.mu.Unlock()

	if len(data) > 0 && !g.mem.Write(addr, data) {
		panic(fmt.Errorf("enginetest: could not place %d bytes at address %d", len(data), addr))
	}

	return addr
}

// PlaceWords places 4-byte little-endian words.
func (g *Guest) PlaceWords(words ...uint32) uint32 {
	data := make([]byte, 4*len(words))
	for i, word := range words {
		binary.LittleEndian.PutUint32(data[4*i:], word)
	}

	return g.Place(data)
}

// PlaceCString places a NUL terminated byte string.
func (g *Guest) PlaceCString(s string) uint32 {
	return g.Place(append([]byte(s), 0))
}

// PlaceWideString places a NUL terminated UTF-16LE string.
func (g *Guest) PlaceWideString(s string) uint32 {
	encoded, err := internal.EncodeWide(s)
	if err != nil {
		panic(err)
	}

	return g.Place(append(encoded, 0, 0))
}

// ReadWord reads a word of guest memory and panics when out of range.
func (g *Guest) ReadWord(addr uint32) uint32 {
	value, ok := g.mem.ReadUint32Le(addr)
	if !ok {
		panic(fmt.Errorf("enginetest: could not read word at address %d", addr))
	}

	return value
}

// WriteWord writes a word of guest memory and panics when out of range.
func (g *Guest) WriteWord(addr uint32, value uint32) {
	if !g.mem.WriteUint32Le(addr, value) {
		panic(fmt.Errorf("enginetest: could not write word at address %d", addr))
	}
}

// SetParamField points a parameter block field at the given address.
func (g *Guest) SetParamField(field uint32, addr uint32) {
	g.WriteWord(g.paramAddr+4*field, addr)
}

// SetRuntimeVersion rewrites the version block.
func (g *Guest) SetRuntimeVersion(major, minor, patch uint32) {
	version := g.ReadWord(g.paramAddr + 4*internal.ParamFieldVersion)
	g.WriteWord(version+4*internal.VersionFieldMajor, major)
	g.WriteWord(version+4*internal.VersionFieldMinor, minor)
	g.WriteWord(version+4*internal.VersionFieldPatch, patch)
}

// RegisterFunc adds an implementation to the funcref table and returns its
// index.
func (g *Guest) RegisterFunc(impl GoFunc) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.funcref
	g.funcref++
	g.funcs[idx] = impl

	return idx
}

// TableBase returns the base address of the slot's function table. The
// table and any intermediate pointer blocks on its path are created on
// first use; blocks shared between slots are reused.
func (g *Guest) TableBase(slot *internal.TableSlot) uint32 {
	addr := g.paramAddr
	for i, hop := range slot.Path.Hops {
		next := g.ReadWord(addr + 4*hop)
		if next == 0 {
			words := pointerBlockWords
			if i == len(slot.Path.Hops)-1 {
				words = tableWords
			}

			next = g.PlaceWords(make([]uint32, words)...)
			g.WriteWord(addr+4*hop, next)
		}

		addr = next
	}

	return addr
}

// Provide implements one function table entry.
func (g *Guest) Provide(slot *internal.TableSlot, fn internal.TableFunc, impl GoFunc) {
	base := g.TableBase(slot)
	g.WriteWord(base+4*fn.Entry, g.RegisterFunc(impl))
}

// Resolver returns a FunctionResolver backed by the guest's funcref table.
func (g *Guest) Resolver() internal.FunctionResolver {
	return func(mod api.Module, idx uint32, params, results []api.ValueType) (api.Function, error) {
		g.mu.Lock()
		impl, ok := g.funcs[idx]
		g.mu.Unlock()

		if !ok {
			return nil, fmt.Errorf("funcref index %d is not populated", idx)
		}

		return &Function{Fn: impl}, nil
	}
}

// ProvideHeap wires the runtime heap table to the guest allocator, so array
// buffers can be allocated and freed in tests.
func (g *Guest) ProvideHeap() {
	self := g.PlaceWords(0)

	g.Provide(internal.TableFMalloc, internal.FnFMallocGet, func(ctx context.Context, params ...uint64) ([]uint64, error) {
		return []uint64{uint64(self)}, nil
	})
	g.Provide(internal.TableFMalloc, internal.FnFMallocMalloc, func(ctx context.Context, params ...uint64) ([]uint64, error) {
		return []uint64{uint64(g.Alloc(api.DecodeU32(params[1])))}, nil
	})
	g.Provide(internal.TableFMalloc, internal.FnFMallocRealloc, func(ctx context.Context, params ...uint64) ([]uint64, error) {
		oldAddr := api.DecodeU32(params[1])
		size := api.DecodeU32(params[2])

		newAddr := g.Alloc(size)
		if oldAddr != 0 {
			g.mu.Lock()
			oldSize := g.sizes[oldAddr]
			g.mu.Unlock()

			if oldSize > size {
				oldSize = size
			}

			if data, ok := g.mem.Read(oldAddr, oldSize); ok {
				g.mem.Write(newAddr, data)
			}

			g.Release(oldAddr)
		}

		return []uint64{uint64(newAddr)}, nil
	})
	g.Provide(internal.TableFMalloc, internal.FnFMallocFree, func(ctx context.Context, params ...uint64) ([]uint64, error) {
		g.Release(api.DecodeU32(params[1]))
		return nil, nil
	})
}

// LogSink captures messages sent through the runtime log channel.
type LogSink struct {
	mu     sync.Mutex
	infos  []string
	warns  []string
	errors []string
}

func (s *LogSink) Infos() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.infos...)
}

func (s *LogSink) Warns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warns...)
}

func (s *LogSink) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.errors...)
}

// ProvideLogs wires the runtime log channel and returns the captured
// messages.
func (g *Guest) ProvideLogs() *LogSink {
	sink := &LogSink{}

	record := func(store func(msg string)) GoFunc {
		return func(ctx context.Context, params ...uint64) ([]uint64, error) {
			msg, err := readCString(g.mem, api.DecodeU32(params[0]))
			if err != nil {
				return nil, err
			}

			store(msg)
			return nil, nil
		}
	}

	g.Provide(internal.TablePluginFunctions, internal.FnLogError, record(func(msg string) {
		sink.mu.Lock()
		sink.errors = append(sink.errors, msg)
		sink.mu.Unlock()
	}))
	g.Provide(internal.TablePluginFunctions, internal.FnLogWarn, record(func(msg string) {
		sink.mu.Lock()
		sink.warns = append(sink.warns, msg)
		sink.mu.Unlock()
	}))
	g.Provide(internal.TablePluginFunctions, internal.FnLogInfo, record(func(msg string) {
		sink.mu.Lock()
		sink.infos = append(sink.infos, msg)
		sink.mu.Unlock()
	}))

	return sink
}

func readCString(memory api.Memory, addr uint32) (string, error) {
	var data []byte
	for i := addr; ; i++ {
		b, ok := memory.ReadByte(i)
		if !ok {
			return "", fmt.Errorf("unterminated string at address %d", addr)
		}

		if b == 0 {
			break
		}

		data = append(data, b)
	}

	return string(data), nil
}
