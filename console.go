package uevr

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	internal "github.com/uevr-go/uevr/internal"
)

// FConsoleManager owns the runtime's console variables and commands.
type FConsoleManager struct {
	Handle
}

func (FConsoleManager) FromPtr(addr Ptr) FConsoleManager {
	return FConsoleManager{Handle{addr: addr}}
}

// ConsoleObjects lists all registered console objects. The returned array
// is owned by the caller, consume or free it.
func (m FConsoleManager) ConsoleObjects(ctx context.Context) (*TArray[ConsoleObjectElement], error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return nil, err
	}

	addr, err := callU32(ctx, internal.TableConsole, internal.FnConsoleGetConsoleObjects, uint64(m.Ptr()))
	if err != nil {
		return nil, err
	}

	return ReadTArray[ConsoleObjectElement](e.Memory(), addr, ConsoleObjectElementCodec{})
}

// FindObject looks up a console object by name, a zero handle when the name
// is unknown.
func (m FConsoleManager) FindObject(ctx context.Context, name string) (IConsoleObject, error) {
	return m.find(ctx, internal.FnConsoleFindObject, name)
}

// FindVariable looks up a console variable by name, a zero handle when the
// name is unknown or names a command.
func (m FConsoleManager) FindVariable(ctx context.Context, name string) (IConsoleVariable, error) {
	obj, err := m.find(ctx, internal.FnConsoleFindVariable, name)
	if err != nil {
		return IConsoleVariable{}, err
	}

	return UnsafeCast[IConsoleVariable](obj), nil
}

// FindCommand looks up a console command by name, a zero handle when the
// name is unknown or names a variable.
func (m FConsoleManager) FindCommand(ctx context.Context, name string) (IConsoleCommand, error) {
	obj, err := m.find(ctx, internal.FnConsoleFindCommand, name)
	if err != nil {
		return IConsoleCommand{}, err
	}

	return UnsafeCast[IConsoleCommand](obj), nil
}

func (m FConsoleManager) find(ctx context.Context, fn internal.TableFunc, name string) (IConsoleObject, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return IConsoleObject{}, err
	}

	nameAddr, err := e.WriteWideString(ctx, name)
	if err != nil {
		return IConsoleObject{}, err
	}
	defer e.Free(ctx, nameAddr)

	return callHandle[IConsoleObject](ctx, internal.TableConsole, fn, uint64(m.Ptr()), uint64(nameAddr))
}

// IConsoleObject is a registered console variable or command.
type IConsoleObject struct {
	Handle
}

func (IConsoleObject) FromPtr(addr Ptr) IConsoleObject {
	return IConsoleObject{Handle{addr: addr}}
}

// AsCommand retypes the object to a command, a zero handle when the object
// is a variable.
func (o IConsoleObject) AsCommand(ctx context.Context) (IConsoleCommand, error) {
	return callHandle[IConsoleCommand](ctx, internal.TableConsole, internal.FnConsoleAsCommand, uint64(o.Ptr()))
}

// DefaultSetFlags is the set-by priority the runtime applies to console
// variable writes when the caller does not pick one.
const DefaultSetFlags uint32 = 0x80000000

// IConsoleVariable is a console object holding a value.
type IConsoleVariable struct {
	IConsoleObject
}

func (IConsoleVariable) FromPtr(addr Ptr) IConsoleVariable {
	return IConsoleVariable{IConsoleObject{Handle{addr: addr}}}
}

// Set writes the variable from its string form.
func (v IConsoleVariable) Set(ctx context.Context, value string) error {
	return v.setThroughRuntime(ctx, internal.FnConsoleVariableSet, value, nil)
}

// SetEx writes the variable from its string form with an explicit set-by
// priority.
func (v IConsoleVariable) SetEx(ctx context.Context, value string, flags uint32) error {
	return v.setThroughRuntime(ctx, internal.FnConsoleVariableSetEx, value, &flags)
}

func (v IConsoleVariable) setThroughRuntime(ctx context.Context, fn internal.TableFunc, value string, flags *uint32) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	valueAddr, err := e.WriteWideString(ctx, value)
	if err != nil {
		return err
	}
	defer e.Free(ctx, valueAddr)

	args := []uint64{uint64(v.Ptr()), uint64(valueAddr)}
	if flags != nil {
		args = append(args, uint64(*flags))
	}

	_, err = e.TableCall(ctx, internal.TableConsole, fn, args...)
	return err
}

// Int returns the variable's value as an integer.
func (v IConsoleVariable) Int(ctx context.Context) (int32, error) {
	return callI32(ctx, internal.TableConsole, internal.FnConsoleVariableGetInt, uint64(v.Ptr()))
}

// Float returns the variable's value as a float.
func (v IConsoleVariable) Float(ctx context.Context) (float32, error) {
	return callF32(ctx, internal.TableConsole, internal.FnConsoleVariableGetFloat, uint64(v.Ptr()))
}

// IConsoleCommand is a console object that runs when executed.
type IConsoleCommand struct {
	IConsoleObject
}

func (IConsoleCommand) FromPtr(addr Ptr) IConsoleCommand {
	return IConsoleCommand{IConsoleObject{Handle{addr: addr}}}
}

// Execute runs the command with the given argument string.
func (c IConsoleCommand) Execute(ctx context.Context, args string) error {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return err
	}

	argsAddr, err := e.WriteWideString(ctx, args)
	if err != nil {
		return err
	}
	defer e.Free(ctx, argsAddr)

	_, err = e.TableCall(ctx, internal.TableConsole, internal.FnConsoleCommandExecute, uint64(c.Ptr()), uint64(argsAddr))
	return err
}

// ConsoleObjectElement is one row of the console object listing: the guest
// address of the NUL terminated wide name and the object it names.
type ConsoleObjectElement struct {
	Key    Ptr
	Object IConsoleObject
}

// Name reads the element's name from guest memory.
func (el ConsoleObjectElement) Name(ctx context.Context) (string, error) {
	e, err := EngineFromContext(ctx)
	if err != nil {
		return "", err
	}

	return e.ReadWideCString(el.Key)
}

// ConsoleObjectElementCodec decodes console listing rows. A row is 24 bytes,
// the name pointer in the first word and the object pointer in the fourth.
type ConsoleObjectElementCodec struct{}

func (ConsoleObjectElementCodec) Size() uint32 { return 24 }

func (ConsoleObjectElementCodec) Read(memory api.Memory, addr Ptr) (ConsoleObjectElement, bool) {
	key, okKey := memory.ReadUint32Le(addr)
	object, okObject := memory.ReadUint32Le(addr + 12)
	if !okKey || !okObject {
		return ConsoleObjectElement{}, false
	}

	return ConsoleObjectElement{Key: key, Object: FromPtr[IConsoleObject](object)}, true
}
