package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"omibyte.io/mpboot/cmd/svd-gen/generator"
	"omibyte.io/mpboot/cmd/svd-gen/generator/STM32"
	"omibyte.io/mpboot/cmd/svd-gen/svd"
)

var (
	svdIn       string
	outputDir   string
	packageName string
	peripherals string
	registers   string
	volatileImp string
)

func init() {
	flag.StringVar(&svdIn, "in", "", "input SVD file")
	flag.StringVar(&outputDir, "out", "", "output directory")
	flag.StringVar(&packageName, "pkg", "", "package name (default: device name)")
	flag.StringVar(&peripherals, "periph", "", "comma-separated peripherals to generate (default: all)")
	flag.StringVar(&registers, "regs", "", "comma-separated registers to name, others become padding (default: all)")
	flag.StringVar(&volatileImp, "volatile", "", "import path of the Register32 package")
}

func main() {
	flag.Parse()

	buf, err := os.ReadFile(svdIn)
	if err != nil {
		log.Fatal("file io error: ", err)
	}

	// Decode the SVD XML
	var device svd.DeviceElement
	if err = xml.Unmarshal(buf, &device); err != nil {
		log.Fatal("xml decode error: ", err)
	}

	fmt.Println("Generating the device package for the following machine:")
	fmt.Printf("Device:\t\t%s\n", device.Name)
	fmt.Printf("CPU:\t\t%s\n", device.CPU.Name)
	fmt.Printf("Revision:\t%s\n", device.CPU.Revision)
	fmt.Printf("Endian:\t\t%s\n", device.CPU.Endian)
	fmt.Printf("FPU:\t\t%v\n", device.CPU.FPUPresent)

	var gen generator.Generator
	switch {
	case strings.HasPrefix(strings.ToUpper(device.Name), "STM32"):
		gen = STM32.NewGenerator(device, STM32.Options{
			Package:     packageName,
			Peripherals: split(peripherals),
			Registers:   split(registers),
			Volatile:    volatileImp,
		})
	default:
		log.Fatalf("unsupported device %s", device.Name)
	}

	if err = os.MkdirAll(outputDir, 0750); err != nil {
		log.Fatal("file io error: ", err)
	}

	if err = gen.Generate(outputDir); err != nil {
		log.Fatal("generator error: ", err)
	}

	fmt.Println("Done.")
}

func split(list string) []string {
	if len(list) == 0 {
		return nil
	}
	return strings.Split(list, ",")
}
