// Package gpio drives STM32MP1 GPIO pins from the Cortex-M4.
package gpio

import (
	"omibyte.io/mpboot/device/stm32mp1"
)

type Direction uint8

const (
	Input Direction = iota
	Output
)

// Pin is one line of a GPIO bank.
type Pin struct {
	Bank  *stm32mp1.GPIO_Type
	Index uint8 // bank index, A = 0
	Num   uint8
}

var (
	PH7 = Pin{Bank: stm32mp1.GPIOH, Index: 7, Num: 7}
)

// EnableClock gates the bank's clock on for the MCU. The SET register only
// reacts to ones, so other banks are left alone.
func (p Pin) EnableClock(rcc *stm32mp1.RCC_Type) {
	rcc.MC_AHB4ENSETR.Set(stm32mp1.RCC_MC_AHB4ENSETR_GPIOAEN << p.Index)
}

// SetDirection switches the pin between input and push-pull output.
func (p Pin) SetDirection(dir Direction) {
	mode := uint32(stm32mp1.GPIO_MODER_Input)
	if dir == Output {
		mode = stm32mp1.GPIO_MODER_Output
		p.Bank.OTYPER.ClearBits(1 << p.Num)
	}
	p.Bank.MODER.ReplaceBits(mode, stm32mp1.GPIO_MODER_Msk, p.Num*2)
}

func (p Pin) GetDirection() Direction {
	if p.Bank.MODER.Field(stm32mp1.GPIO_MODER_Msk<<(p.Num*2), p.Num*2) == stm32mp1.GPIO_MODER_Output {
		return Output
	}
	return Input
}

func (p Pin) High() {
	p.Bank.BSRR.Set(1 << p.Num)
}

func (p Pin) Low() {
	p.Bank.BSRR.Set(1 << (p.Num + 16))
}

func (p Pin) Set(on bool) {
	if on {
		p.High()
	} else {
		p.Low()
	}
}

// Get returns the output latch for output pins and the input level
// otherwise.
func (p Pin) Get() bool {
	if p.GetDirection() == Output {
		return p.Bank.ODR.HasBits(1 << p.Num)
	}
	return p.Bank.IDR.HasBits(1 << p.Num)
}

func (p Pin) Toggle() {
	p.Set(!p.Get())
}
