package enginetest

import (
	"encoding/binary"
	"math"

	"github.com/tetratelabs/wazero/api"
)

// Memory is an api.Memory backed by a plain byte slice. The embedded
// interface satisfies wazero's implementation marker and stays nil.
type Memory struct {
	api.Memory

	data []byte
}

// NewMemory returns a zeroed memory of the given size in bytes.
func NewMemory(size uint32) *Memory {
	return &Memory{data: make([]byte, size)}
}

func (m *Memory) Definition() api.MemoryDefinition {
	return nil
}

func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

func (m *Memory) Grow(deltaPages uint32) (uint32, bool) {
	previous := uint32(len(m.data)) / 65536
	m.data = append(m.data, make([]byte, deltaPages*65536)...)
	return previous, true
}

func (m *Memory) in(offset, byteCount uint32) bool {
	return uint64(offset)+uint64(byteCount) <= uint64(len(m.data))
}

func (m *Memory) ReadByte(offset uint32) (byte, bool) {
	if !m.in(offset, 1) {
		return 0, false
	}

	return m.data[offset], true
}

func (m *Memory) ReadUint16Le(offset uint32) (uint16, bool) {
	if !m.in(offset, 2) {
		return 0, false
	}

	return binary.LittleEndian.Uint16(m.data[offset:]), true
}

func (m *Memory) ReadUint32Le(offset uint32) (uint32, bool) {
	if !m.in(offset, 4) {
		return 0, false
	}

	return binary.LittleEndian.Uint32(m.data[offset:]), true
}

func (m *Memory) ReadFloat32Le(offset uint32) (float32, bool) {
	value, ok := m.ReadUint32Le(offset)
	if !ok {
		return 0, false
	}

	return math.Float32frombits(value), true
}

func (m *Memory) ReadUint64Le(offset uint32) (uint64, bool) {
	if !m.in(offset, 8) {
		return 0, false
	}

	return binary.LittleEndian.Uint64(m.data[offset:]), true
}

func (m *Memory) ReadFloat64Le(offset uint32) (float64, bool) {
	value, ok := m.ReadUint64Le(offset)
	if !ok {
		return 0, false
	}

	return math.Float64frombits(value), true
}

func (m *Memory) Read(offset, byteCount uint32) ([]byte, bool) {
	if !m.in(offset, byteCount) {
		return nil, false
	}

	return m.data[offset : offset+byteCount : offset+byteCount], true
}

func (m *Memory) WriteByte(offset uint32, v byte) bool {
	if !m.in(offset, 1) {
		return false
	}

	m.data[offset] = v
	return true
}

func (m *Memory) WriteUint16Le(offset uint32, v uint16) bool {
	if !m.in(offset, 2) {
		return false
	}

	binary.LittleEndian.PutUint16(m.data[offset:], v)
	return true
}

func (m *Memory) WriteUint32Le(offset uint32, v uint32) bool {
	if !m.in(offset, 4) {
		return false
	}

	binary.LittleEndian.PutUint32(m.data[offset:], v)
	return true
}

func (m *Memory) WriteFloat32Le(offset uint32, v float32) bool {
	return m.WriteUint32Le(offset, math.Float32bits(v))
}

func (m *Memory) WriteUint64Le(offset uint32, v uint64) bool {
	if !m.in(offset, 8) {
		return false
	}

	binary.LittleEndian.PutUint64(m.data[offset:], v)
	return true
}

func (m *Memory) WriteFloat64Le(offset uint32, v float64) bool {
	return m.WriteUint64Le(offset, math.Float64bits(v))
}

func (m *Memory) Write(offset uint32, v []byte) bool {
	if !m.in(offset, uint32(len(v))) {
		return false
	}

	copy(m.data[offset:], v)
	return true
}

func (m *Memory) WriteString(offset uint32, v string) bool {
	if !m.in(offset, uint32(len(v))) {
		return false
	}

	copy(m.data[offset:], v)
	return true
}
