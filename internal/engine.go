package uevr

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

type funcKey struct {
	idx  uint32
	name string
}

// tableEntry holds the resolved base address of one function table. The
// once guard makes resolution idempotent under concurrent callers, the
// resolved address is never reassigned.
type tableEntry struct {
	once sync.Once
	base uint32
	err  error
}

type engine struct {
	config *EngineConfig

	mu        sync.Mutex
	mod       api.Module
	paramAddr uint32
	runtime   Version
	active    bool

	malloc api.Function
	free   api.Function

	tables  map[*TableSlot]*tableEntry
	funcs   map[funcKey]api.Function
	classes map[string]uint32
}

func (e *engine) Attach(ctx context.Context) context.Context {
	return context.WithValue(ctx, EngineKey{}, e)
}

func (e *engine) BindModule(mod api.Module) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mod != nil && e.mod != mod {
		panic(errors.New("uevr engine is already bound to another module, create one engine per guest module"))
	}

	e.mod = mod
}

func (e *engine) Module() api.Module {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mod
}

func (e *engine) Initialize(ctx context.Context, paramAddr uint32) error {
	e.mu.Lock()
	if e.active {
		e.mu.Unlock()
		return nil
	}
	mod := e.mod
	e.mu.Unlock()

	if mod == nil {
		return errors.New("uevr engine is not bound to a module")
	}

	if paramAddr == 0 {
		return errors.New("runtime passed a null parameter block")
	}

	versionAddr, err := e.ReadWord(paramAddr + 4*ParamFieldVersion)
	if err != nil {
		return err
	}

	if versionAddr == 0 {
		return errors.New("runtime passed no version block")
	}

	major, err := e.ReadWord(versionAddr + 4*VersionFieldMajor)
	if err != nil {
		return err
	}

	minor, err := e.ReadWord(versionAddr + 4*VersionFieldMinor)
	if err != nil {
		return err
	}

	patch, err := e.ReadWord(versionAddr + 4*VersionFieldPatch)
	if err != nil {
		return err
	}

	if major != VersionMajor {
		return fmt.Errorf("runtime major version %d does not match required major version %d", major, VersionMajor)
	}

	if minor < VersionMinor {
		return fmt.Errorf("runtime minor version %d is below required minor version %d", minor, VersionMinor)
	}

	callbacksAddr, err := e.ReadWord(paramAddr + 4*ParamFieldCallbacks)
	if err != nil {
		return err
	}

	if callbacksAddr == 0 {
		return errors.New("runtime passed no callback table")
	}

	malloc := mod.ExportedFunction(e.config.MallocExport)
	if malloc == nil {
		return fmt.Errorf("guest module does not export allocator function %q", e.config.MallocExport)
	}

	free := mod.ExportedFunction(e.config.FreeExport)
	if free == nil {
		return fmt.Errorf("guest module does not export allocator function %q", e.config.FreeExport)
	}

	e.mu.Lock()
	e.paramAddr = paramAddr
	e.runtime = Version{Major: major, Minor: minor, Patch: patch}
	e.malloc = malloc
	e.free = free
	e.active = true
	e.mu.Unlock()

	Logger().Info("initialized uevr engine",
		zap.Uint32("param", paramAddr),
		zap.String("runtime_version", e.RuntimeVersion().String()))

	return nil
}

func (e *engine) Deactivate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.active = false
	e.paramAddr = 0
	e.runtime = Version{}
	e.malloc = nil
	e.free = nil
	e.tables = map[*TableSlot]*tableEntry{}
	e.funcs = map[funcKey]api.Function{}
	e.classes = map[string]uint32{}
}

func (e *engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

func (e *engine) ParamAddr() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paramAddr
}

func (e *engine) RuntimeVersion() Version {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runtime
}

// requireActive panics when the engine has not been initialized. Capability
// operations have no meaningful fallback before the runtime handed over the
// parameter block.
func (e *engine) requireActive() {
	e.mu.Lock()
	active := e.active
	e.mu.Unlock()

	if !active {
		panic(errors.New("uevr engine is not initialized, the runtime has not called uevr_plugin_initialize"))
	}
}

func (e *engine) TablePtr(ctx context.Context, slot *TableSlot) (uint32, error) {
	e.requireActive()

	e.mu.Lock()
	entry, ok := e.tables[slot]
	if !ok {
		entry = &tableEntry{}
		e.tables[slot] = entry
	}
	paramAddr := e.paramAddr
	e.mu.Unlock()

	entry.once.Do(func() {
		entry.base, entry.err = e.resolveTable(paramAddr, slot)
		if entry.err == nil {
			Logger().Debug("resolved function table",
				zap.String("table", slot.Name),
				zap.Uint32("address", entry.base))
		}
	})

	return entry.base, entry.err
}

// resolveTable walks the slot's pointer path starting at the parameter
// block. Every hop reads one word, the last read yields the table base.
func (e *engine) resolveTable(paramAddr uint32, slot *TableSlot) (uint32, error) {
	addr := paramAddr
	for _, hop := range slot.Path.Hops {
		next, err := e.ReadWord(addr + 4*hop)
		if err != nil {
			return 0, fmt.Errorf("could not resolve table %s: %w", slot.Name, err)
		}

		if next == 0 {
			return 0, fmt.Errorf("table %s is not provided by the runtime", slot.Name)
		}

		addr = next
	}

	return addr, nil
}

func (e *engine) TableCall(ctx context.Context, slot *TableSlot, fn TableFunc, args ...uint64) ([]uint64, error) {
	base, err := e.TablePtr(ctx, slot)
	if err != nil {
		return nil, err
	}

	idx, err := e.ReadWord(base + 4*fn.Entry)
	if err != nil {
		return nil, fmt.Errorf("could not read table entry of %s: %w", fn.Name, err)
	}

	// The guest toolchain reserves funcref index 0 as the null function
	// pointer.
	if idx == 0 {
		return nil, fmt.Errorf("function %s is not provided by the runtime", fn.Name)
	}

	callable, err := e.tableFunc(idx, fn)
	if err != nil {
		return nil, err
	}

	results, err := callable.Call(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("call to %s failed: %w", fn.Name, err)
	}

	return results, nil
}

func (e *engine) tableFunc(idx uint32, fn TableFunc) (api.Function, error) {
	key := funcKey{idx: idx, name: fn.Name}

	e.mu.Lock()
	if cached, ok := e.funcs[key]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	mod := e.mod
	e.mu.Unlock()

	callable, err := e.config.Resolver(mod, idx, fn.Params, fn.Results)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s: %w", fn.Name, err)
	}

	e.mu.Lock()
	e.funcs[key] = callable
	e.mu.Unlock()

	return callable, nil
}

func (e *engine) ClassPtr(ctx context.Context, path string) (uint32, error) {
	e.requireActive()

	e.mu.Lock()
	if cached, ok := e.classes[path]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	addr, err := e.WriteWideString(ctx, path)
	if err != nil {
		return 0, err
	}
	defer e.Free(ctx, addr)

	results, err := e.TableCall(ctx, TableUObjectArray, FnUObjectArrayFindUObject, uint64(addr))
	if err != nil {
		return 0, fmt.Errorf("could not look up class %s: %w", path, err)
	}

	ptr := api.DecodeU32(results[0])

	// Failed lookups are not cached, the class may be loaded later.
	if ptr != 0 {
		e.mu.Lock()
		e.classes[path] = ptr
		e.mu.Unlock()
	}

	return ptr, nil
}

func (e *engine) Malloc(ctx context.Context, size uint32) (uint32, error) {
	e.requireActive()

	e.mu.Lock()
	malloc := e.malloc
	e.mu.Unlock()

	results, err := malloc.Call(ctx, uint64(size))
	if err != nil {
		return 0, fmt.Errorf("could not allocate %d bytes of scratch memory: %w", size, err)
	}

	addr := api.DecodeU32(results[0])
	if addr == 0 {
		return 0, fmt.Errorf("guest allocator returned a null pointer for %d bytes", size)
	}

	return addr, nil
}

func (e *engine) Free(ctx context.Context, addr uint32) error {
	if addr == 0 {
		return nil
	}

	e.requireActive()

	e.mu.Lock()
	free := e.free
	e.mu.Unlock()

	if _, err := free.Call(ctx, uint64(addr)); err != nil {
		return fmt.Errorf("could not free scratch memory at %d: %w", addr, err)
	}

	return nil
}

func (e *engine) LogInfo(ctx context.Context, msg string) error {
	return e.logThroughRuntime(ctx, FnLogInfo, msg)
}

func (e *engine) LogWarn(ctx context.Context, msg string) error {
	return e.logThroughRuntime(ctx, FnLogWarn, msg)
}

func (e *engine) LogError(ctx context.Context, msg string) error {
	return e.logThroughRuntime(ctx, FnLogError, msg)
}

func (e *engine) logThroughRuntime(ctx context.Context, fn TableFunc, msg string) error {
	addr, err := e.WriteCString(ctx, msg)
	if err != nil {
		return err
	}
	defer e.Free(ctx, addr)

	_, err = e.TableCall(ctx, TablePluginFunctions, fn, uint64(addr))
	return err
}
