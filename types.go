package uevr

import (
	"github.com/tetratelabs/wazero/api"
)

// Math types exchanged with the runtime. Their guest layout is packed
// little-endian IEEE floats in field order.

type Vector2f struct {
	X float32
	Y float32
}

type Vector3f struct {
	X float32
	Y float32
	Z float32
}

type Vector3d struct {
	X float64
	Y float64
	Z float64
}

type Vector4f struct {
	X float32
	Y float32
	Z float32
	W float32
}

type Quaternionf struct {
	X float32
	Y float32
	Z float32
	W float32
}

type Rotatorf struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

type Rotatord struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

type Matrix4x4f [4][4]float32

const (
	sizeVector2f    = 8
	sizeVector3f    = 12
	sizeVector3d    = 24
	sizeQuaternionf = 16
	sizeRotatorf    = 12
	sizeRotatord    = 24
	sizeMatrix4x4f  = 64
)

func ReadVector2f(memory api.Memory, addr Ptr) (Vector2f, bool) {
	x, okX := memory.ReadFloat32Le(addr)
	y, okY := memory.ReadFloat32Le(addr + 4)
	return Vector2f{X: x, Y: y}, okX && okY
}

func WriteVector2f(memory api.Memory, addr Ptr, v Vector2f) bool {
	return memory.WriteFloat32Le(addr, v.X) &&
		memory.WriteFloat32Le(addr+4, v.Y)
}

func ReadVector3f(memory api.Memory, addr Ptr) (Vector3f, bool) {
	x, okX := memory.ReadFloat32Le(addr)
	y, okY := memory.ReadFloat32Le(addr + 4)
	z, okZ := memory.ReadFloat32Le(addr + 8)
	return Vector3f{X: x, Y: y, Z: z}, okX && okY && okZ
}

func WriteVector3f(memory api.Memory, addr Ptr, v Vector3f) bool {
	return memory.WriteFloat32Le(addr, v.X) &&
		memory.WriteFloat32Le(addr+4, v.Y) &&
		memory.WriteFloat32Le(addr+8, v.Z)
}

func ReadVector3d(memory api.Memory, addr Ptr) (Vector3d, bool) {
	x, okX := memory.ReadFloat64Le(addr)
	y, okY := memory.ReadFloat64Le(addr + 8)
	z, okZ := memory.ReadFloat64Le(addr + 16)
	return Vector3d{X: x, Y: y, Z: z}, okX && okY && okZ
}

func WriteVector3d(memory api.Memory, addr Ptr, v Vector3d) bool {
	return memory.WriteFloat64Le(addr, v.X) &&
		memory.WriteFloat64Le(addr+8, v.Y) &&
		memory.WriteFloat64Le(addr+16, v.Z)
}

func ReadQuaternionf(memory api.Memory, addr Ptr) (Quaternionf, bool) {
	x, okX := memory.ReadFloat32Le(addr)
	y, okY := memory.ReadFloat32Le(addr + 4)
	z, okZ := memory.ReadFloat32Le(addr + 8)
	w, okW := memory.ReadFloat32Le(addr + 12)
	return Quaternionf{X: x, Y: y, Z: z, W: w}, okX && okY && okZ && okW
}

func WriteQuaternionf(memory api.Memory, addr Ptr, q Quaternionf) bool {
	return memory.WriteFloat32Le(addr, q.X) &&
		memory.WriteFloat32Le(addr+4, q.Y) &&
		memory.WriteFloat32Le(addr+8, q.Z) &&
		memory.WriteFloat32Le(addr+12, q.W)
}

func ReadRotatorf(memory api.Memory, addr Ptr) (Rotatorf, bool) {
	pitch, okP := memory.ReadFloat32Le(addr)
	yaw, okY := memory.ReadFloat32Le(addr + 4)
	roll, okR := memory.ReadFloat32Le(addr + 8)
	return Rotatorf{Pitch: pitch, Yaw: yaw, Roll: roll}, okP && okY && okR
}

func WriteRotatorf(memory api.Memory, addr Ptr, r Rotatorf) bool {
	return memory.WriteFloat32Le(addr, r.Pitch) &&
		memory.WriteFloat32Le(addr+4, r.Yaw) &&
		memory.WriteFloat32Le(addr+8, r.Roll)
}

func ReadRotatord(memory api.Memory, addr Ptr) (Rotatord, bool) {
	pitch, okP := memory.ReadFloat64Le(addr)
	yaw, okY := memory.ReadFloat64Le(addr + 8)
	roll, okR := memory.ReadFloat64Le(addr + 16)
	return Rotatord{Pitch: pitch, Yaw: yaw, Roll: roll}, okP && okY && okR
}

func WriteRotatord(memory api.Memory, addr Ptr, r Rotatord) bool {
	return memory.WriteFloat64Le(addr, r.Pitch) &&
		memory.WriteFloat64Le(addr+8, r.Yaw) &&
		memory.WriteFloat64Le(addr+16, r.Roll)
}

func ReadMatrix4x4f(memory api.Memory, addr Ptr) (Matrix4x4f, bool) {
	var m Matrix4x4f
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			value, ok := memory.ReadFloat32Le(addr + uint32(row*16+col*4))
			if !ok {
				return Matrix4x4f{}, false
			}
			m[row][col] = value
		}
	}
	return m, true
}
