package svd

import (
	"encoding/xml"
	"strconv"
	"strings"
)

type Integer uint64

func (h *Integer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) (err error) {
	var v string
	if err = d.DecodeElement(&v, &start); err != nil {
		return err
	}
	v = strings.TrimSpace(v)

	var value uint64
	switch {
	case strings.HasPrefix(v, "0x"), strings.HasPrefix(v, "0X"):
		value, err = strconv.ParseUint(v[2:], 16, 64)
	case strings.HasPrefix(v, "#"):
		// Binary enumerated values. STM32 SVDs do not use don't-care bits.
		value, err = strconv.ParseUint(v[1:], 2, 64)
	default:
		value, err = strconv.ParseUint(v, 10, 64)
	}

	if err != nil {
		return err
	}
	*h = Integer(value)
	return nil
}
