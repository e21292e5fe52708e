package svd

type DeviceElement struct {
	Name             string             `xml:"name"`
	Description      string             `xml:"description"`
	Series           string             `xml:"series"`
	Version          string             `xml:"version"`
	Vendor           string             `xml:"vendor"`
	CPU              CPUElement         `xml:"cpu"`
	AddressableWidth Integer            `xml:"addressUnitBits"`
	BitWidth         Integer            `xml:"width"`
	RegisterSize     Integer            `xml:"size"`
	DefaultAccess    string             `xml:"access"`
	ResetValue       Integer            `xml:"resetValue"`
	Peripherals      PeripheralsElement `xml:"peripherals"`
}

type CPUElement struct {
	Name             string  `xml:"name"`
	Revision         string  `xml:"revision"`
	Endian           string  `xml:"endian"`
	MPUPresent       bool    `xml:"mpuPresent"`
	FPUPresent       bool    `xml:"fpuPresent"`
	NVICPriorityBits Integer `xml:"nvicPrioBits"`
}

type PeripheralsElement struct {
	Elements []PeripheralElement `xml:"peripheral"`
}

// Find returns the peripheral with the given name.
func (p PeripheralsElement) Find(name string) (PeripheralElement, bool) {
	for _, pp := range p.Elements {
		if pp.Name == name {
			return pp, true
		}
	}
	return PeripheralElement{}, false
}

// Resolve returns the peripheral with the registers of the one it derives
// from when it has none of its own.
func (p PeripheralsElement) Resolve(periph PeripheralElement) PeripheralElement {
	if len(periph.DerivedFrom) == 0 || len(periph.Registers.Elements) > 0 {
		return periph
	}
	if base, ok := p.Find(periph.DerivedFrom); ok {
		periph.Registers = base.Registers
		periph.AddressBlock = base.AddressBlock
		if len(periph.Group) == 0 {
			periph.Group = base.Group
		}
	}
	return periph
}

type PeripheralElement struct {
	Name         string              `xml:"name"`
	Description  string              `xml:"description"`
	Group        string              `xml:"groupName"`
	BaseAddress  Integer             `xml:"baseAddress"`
	AddressBlock AddressBlockElement `xml:"addressBlock"`
	Interrupts   []InterruptElement  `xml:"interrupt"`
	Registers    RegistersElement    `xml:"registers"`
	DerivedFrom  string              `xml:"derivedFrom,attr"`
}

type AddressBlockElement struct {
	Offset Integer `xml:"offset"`
	Size   Integer `xml:"size"`
}

type InterruptElement struct {
	Name        string  `xml:"name"`
	Description string  `xml:"description"`
	Value       Integer `xml:"value"`
}

type RegistersElement struct {
	Elements []RegisterElement `xml:"register"`
}

type RegisterElement struct {
	Name          string        `xml:"name"`
	DisplayName   string        `xml:"displayName"`
	Description   string        `xml:"description"`
	AddressOffset Integer       `xml:"addressOffset"`
	Size          Integer       `xml:"size"`
	Access        string        `xml:"access"`
	ResetValue    Integer       `xml:"resetValue"`
	Fields        FieldElements `xml:"fields"`
	Count         Integer       `xml:"dim"`
	Increment     Integer       `xml:"dimIncrement"`
}

// Width returns the register width in bits, defaulting to the device width.
func (r RegisterElement) Width(device DeviceElement) Integer {
	if r.Size > 0 {
		return r.Size
	}
	if device.RegisterSize > 0 {
		return device.RegisterSize
	}
	return 32
}

type FieldElements struct {
	Elements []FieldElement `xml:"field"`
}

type FieldElement struct {
	Name             string                  `xml:"name"`
	Description      string                  `xml:"description"`
	BitOffset        Integer                 `xml:"bitOffset"`
	BitWidth         Integer                 `xml:"bitWidth"`
	Access           string                  `xml:"access"`
	EnumeratedValues EnumeratedValuesElement `xml:"enumeratedValues"`
}

type EnumeratedValuesElement struct {
	Name     string                   `xml:"name"`
	Elements []EnumeratedValueElement `xml:"enumeratedValue"`
}

type EnumeratedValueElement struct {
	Name        string  `xml:"name"`
	Description string  `xml:"description"`
	Value       Integer `xml:"value"`
}
