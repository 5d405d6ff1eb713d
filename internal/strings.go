package uevr

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// The runtime exchanges wide strings as 2 byte UTF-16LE code units.
var wcharCodec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeWide converts a string to UTF-16LE bytes without a terminator.
func EncodeWide(s string) ([]byte, error) {
	encoded, err := wcharCodec.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("could not encode wide string: %w", err)
	}

	return encoded, nil
}

// DecodeWide converts UTF-16LE bytes to a string.
func DecodeWide(b []byte) (string, error) {
	decoded, err := wcharCodec.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("could not decode wide string: %w", err)
	}

	return string(decoded), nil
}

func (e *engine) WriteCString(ctx context.Context, s string) (uint32, error) {
	data := append([]byte(s), 0)

	addr, err := e.Malloc(ctx, uint32(len(data)))
	if err != nil {
		return 0, err
	}

	if !e.Memory().Write(addr, data) {
		_ = e.Free(ctx, addr)
		return 0, fmt.Errorf("could not write %d bytes to guest memory at address %d", len(data), addr)
	}

	return addr, nil
}

func (e *engine) ReadCString(addr uint32) (string, error) {
	if addr == 0 {
		return "", nil
	}

	memory := e.Memory()
	if memory == nil {
		return "", errors.New("uevr engine is not bound to a module")
	}

	var data []byte
	for i := addr; ; i++ {
		b, ok := memory.ReadByte(i)
		if !ok {
			return "", fmt.Errorf("could not read guest memory at address %d", i)
		}

		if b == 0 {
			break
		}

		data = append(data, b)
	}

	return string(data), nil
}

func (e *engine) WriteWideString(ctx context.Context, s string) (uint32, error) {
	encoded, err := EncodeWide(s)
	if err != nil {
		return 0, err
	}

	encoded = append(encoded, 0, 0)

	addr, err := e.Malloc(ctx, uint32(len(encoded)))
	if err != nil {
		return 0, err
	}

	if !e.Memory().Write(addr, encoded) {
		_ = e.Free(ctx, addr)
		return 0, fmt.Errorf("could not write %d bytes to guest memory at address %d", len(encoded), addr)
	}

	return addr, nil
}

func (e *engine) ReadWideString(addr uint32, chars uint32) (string, error) {
	if addr == 0 || chars == 0 {
		return "", nil
	}

	memory := e.Memory()
	if memory == nil {
		return "", errors.New("uevr engine is not bound to a module")
	}

	raw, ok := memory.Read(addr, chars*2)
	if !ok {
		return "", fmt.Errorf("could not read %d wide characters at address %d", chars, addr)
	}

	return DecodeWide(raw)
}

func (e *engine) ReadWideCString(addr uint32) (string, error) {
	if addr == 0 {
		return "", nil
	}

	memory := e.Memory()
	if memory == nil {
		return "", errors.New("uevr engine is not bound to a module")
	}

	var raw []byte
	for i := addr; ; i += 2 {
		unit, ok := memory.ReadUint16Le(i)
		if !ok {
			return "", fmt.Errorf("could not read guest memory at address %d", i)
		}

		if unit == 0 {
			break
		}

		raw = append(raw, byte(unit), byte(unit>>8))
	}

	return DecodeWide(raw)
}

// ReadWideVia drives the runtime's size-then-fill convention for wide string
// getters. The function is called with a null buffer first to learn the
// length in wide characters, then again with a buffer of length+1
// characters. The reported lengths of some getters include the terminator,
// so the second result is clamped to the first.
func ReadWideVia(ctx context.Context, e Engine, call func(ctx context.Context, buf uint32, size uint32) (uint32, error)) (string, error) {
	length, err := call(ctx, 0, 0)
	if err != nil {
		return "", err
	}

	if length == 0 {
		return "", nil
	}

	buf, err := e.Malloc(ctx, (length+1)*2)
	if err != nil {
		return "", err
	}
	defer e.Free(ctx, buf)

	written, err := call(ctx, buf, length+1)
	if err != nil {
		return "", err
	}

	if written > length {
		written = length
	}

	return e.ReadWideString(buf, written)
}
