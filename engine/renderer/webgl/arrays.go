//go:build js && wasm

package webgl

import (
	"syscall/js"
	"unsafe"
)

// float32Array copies data into a new JS Float32Array.
func float32Array(data []float32) js.Value {
	if len(data) == 0 {
		return js.Global().Get("Float32Array").New(0)
	}
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
	u8 := js.Global().Get("Uint8Array").New(len(bytes))
	js.CopyBytesToJS(u8, bytes)
	return js.Global().Get("Float32Array").New(u8.Get("buffer"), 0, len(data))
}

// uint16Array copies data into a new JS Uint16Array.
func uint16Array(data []uint16) js.Value {
	if len(data) == 0 {
		return js.Global().Get("Uint16Array").New(0)
	}
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
	u8 := js.Global().Get("Uint8Array").New(len(bytes))
	js.CopyBytesToJS(u8, bytes)
	return js.Global().Get("Uint16Array").New(u8.Get("buffer"), 0, len(data))
}
