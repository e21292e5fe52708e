// Package volatile provides memory-mapped register access. Every access is a
// single 32-bit load or store that the compiler keeps in program order.
package volatile

import "sync/atomic"

func LoadUint32(addr *uint32) uint32 {
	return atomic.LoadUint32(addr)
}

func StoreUint32(addr *uint32, value uint32) {
	atomic.StoreUint32(addr, value)
}

// Register32 is a 32-bit memory-mapped hardware register.
type Register32 struct {
	Reg uint32
}

func (r *Register32) Get() uint32 {
	return LoadUint32(&r.Reg)
}

func (r *Register32) Set(value uint32) {
	StoreUint32(&r.Reg, value)
}

func (r *Register32) SetBits(value uint32) {
	r.Set(r.Get() | value)
}

func (r *Register32) ClearBits(value uint32) {
	r.Set(r.Get() &^ value)
}

func (r *Register32) HasBits(value uint32) bool {
	return r.Get()&value != 0
}

// ReplaceBits replaces the field selected by mask<<pos with value.
func (r *Register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | (value&mask)<<pos)
}

// Field extracts the field selected by mask (already shifted to pos) and
// returns it right aligned.
func (r *Register32) Field(mask uint32, pos uint8) uint32 {
	return (r.Get() & mask) >> pos
}
