// Package devmem maps physical register blocks into the process through a
// memory device, so the Cortex-A7 side can inspect the M4 clock tree.
package devmem

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"

	"omibyte.io/mpboot/device/stm32mp1"
)

const (
	DefaultPath = "/dev/mem"
	RCCSize     = int(unsafe.Sizeof(stm32mp1.RCC_Type{}))
)

var ErrRegionTooSmall = errors.New("mapped region is smaller than the register block")

// Region is a mapping of [Base, Base+Size) of a memory device. The mapping
// starts at the page boundary below Base.
type Region struct {
	Base uintptr
	Size int

	buf  mmap.MMap
	offs uintptr
}

// Open maps size bytes at physical address base of the file at path.
func Open(path string, base uintptr, size int) (*Region, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", path, err)
	}
	defer f.Close()

	pagemask := ^uintptr(pageSize() - 1)
	mapAddr := base & pagemask
	offs := base - mapAddr

	mm, err := mmap.MapRegion(f, size+int(offs), mmap.RDONLY, 0, int64(mapAddr))
	if err != nil {
		return nil, fmt.Errorf("couldn't map region (%#x, %d): %w", base, size, err)
	}

	return &Region{
		Base: base,
		Size: size,
		buf:  mm,
		offs: offs,
	}, nil
}

// OpenRCC maps the RCC block at its reset address.
func OpenRCC(path string) (*Region, error) {
	return Open(path, stm32mp1.RCCBase, RCCSize)
}

// Pointer returns the address of the byte at offs from Base.
func (r *Region) Pointer(offs uintptr) unsafe.Pointer {
	return unsafe.Pointer(&r.buf[r.offs+offs])
}

// RCC overlays the RCC register block on the start of the region. The
// mapping is read-only; writing through the result faults.
func (r *Region) RCC() (*stm32mp1.RCC_Type, error) {
	if r.Size < RCCSize {
		return nil, ErrRegionTooSmall
	}
	return (*stm32mp1.RCC_Type)(r.Pointer(0)), nil
}

func (r *Region) Close() error {
	return r.buf.Unmap()
}
