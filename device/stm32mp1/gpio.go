package stm32mp1

import (
	"unsafe"

	"omibyte.io/mpboot/volatile"
)

var (
	GPIOA = gpioPort(0)
	GPIOB = gpioPort(1)
	GPIOC = gpioPort(2)
	GPIOD = gpioPort(3)
	GPIOE = gpioPort(4)
	GPIOF = gpioPort(5)
	GPIOG = gpioPort(6)
	GPIOH = gpioPort(7)
	GPIOI = gpioPort(8)
)

func gpioPort(n uintptr) *GPIO_Type {
	return (*GPIO_Type)(unsafe.Pointer(uintptr(GPIOBase + n*0x1000)))
}

type GPIO_Type struct {
	MODER   volatile.Register32 // 0x00
	OTYPER  volatile.Register32 // 0x04
	OSPEEDR volatile.Register32 // 0x08
	PUPDR   volatile.Register32 // 0x0C
	IDR     volatile.Register32 // 0x10
	ODR     volatile.Register32 // 0x14
	BSRR    volatile.Register32 // 0x18
	LCKR    volatile.Register32 // 0x1C
	AFR     [2]volatile.Register32
}

const (
	GPIO_MODER_Input     = 0x0
	GPIO_MODER_Output    = 0x1
	GPIO_MODER_Alternate = 0x2
	GPIO_MODER_Analog    = 0x3
	GPIO_MODER_Msk       = 0x3

	GPIO_OTYPER_PushPull  = 0x0
	GPIO_OTYPER_OpenDrain = 0x1
)
