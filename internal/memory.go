package uevr

import (
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

func (e *engine) Memory() api.Memory {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mod == nil {
		return nil
	}

	return e.mod.Memory()
}

func (e *engine) ReadWord(addr uint32) (uint32, error) {
	memory := e.Memory()
	if memory == nil {
		return 0, errors.New("uevr engine is not bound to a module")
	}

	value, ok := memory.ReadUint32Le(addr)
	if !ok {
		return 0, fmt.Errorf("could not read guest memory at address %d", addr)
	}

	return value, nil
}

func (e *engine) WriteWord(addr uint32, value uint32) error {
	memory := e.Memory()
	if memory == nil {
		return errors.New("uevr engine is not bound to a module")
	}

	if !memory.WriteUint32Le(addr, value) {
		return fmt.Errorf("could not write guest memory at address %d", addr)
	}

	return nil
}
