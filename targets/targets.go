package targets

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/mpboot/bringup"
	"omibyte.io/mpboot/clock"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets

var (
	ErrSeriesNotFound = errors.New("series not found")
	ErrChipNotFound   = errors.New("chip not found")
)

func All() Targets {
	return targets
}

type Targets []TargetInfo
type TargetInfo struct {
	Series      string   `yaml:"series"`
	Chips       []string `yaml:"chips"`
	Core        string   `yaml:"core"`
	FPU         bool     `yaml:"fpu"`
	VectorTable struct {
		Relocate bool   `yaml:"relocate"`
		Offset   uint32 `yaml:"offset"`
	} `yaml:"vectorTable"`
	Oscillators      clock.Oscillators `yaml:"oscillators"`
	StartupTimeoutMs uint32            `yaml:"startupTimeoutMs"`
	Registers        map[string]uint64 `yaml:"registers"`
}

// Config returns the bring-up configuration of the target.
func (t TargetInfo) Config() (bringup.Config, error) {
	core, err := bringup.ParseCore(t.Core)
	if err != nil {
		return bringup.Config{}, fmt.Errorf("%s: %w", t.Series, err)
	}

	cfg := bringup.Config{
		Core:                core,
		FPU:                 t.FPU,
		RelocateVectorTable: t.VectorTable.Relocate,
		VectorTableOffset:   t.VectorTable.Offset,
	}
	if err = cfg.Validate(); err != nil {
		return bringup.Config{}, fmt.Errorf("%s: %w", t.Series, err)
	}
	return cfg, nil
}

// RegisterBlocks returns the names of the register blocks in address order.
func (t TargetInfo) RegisterBlocks() []string {
	names := maps.Keys(t.Registers)
	slices.SortFunc(names, func(a, b string) bool {
		return t.Registers[a] < t.Registers[b]
	})
	return names
}

func (t Targets) FindBySeries(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Series == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: %s", ErrSeriesNotFound, name)
}

func (t Targets) FindByChip(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Chips, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: %s", ErrChipNotFound, name)
}

// Load decodes a target table in the embedded format and fills in defaults.
func Load(r io.Reader) (Targets, error) {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}

	for i := range t.Elements {
		setDefaults(&t.Elements[i])
	}
	return t.Elements, nil
}

func setDefaults(t *TargetInfo) {
	if t.Oscillators.HSE == 0 {
		t.Oscillators.HSE = clock.DefaultOscillators.HSE
	}
	if t.Oscillators.HSI == 0 {
		t.Oscillators.HSI = clock.DefaultOscillators.HSI
	}
	if t.Oscillators.CSI == 0 {
		t.Oscillators.CSI = clock.DefaultOscillators.CSI
	}
	if t.StartupTimeoutMs == 0 {
		t.StartupTimeoutMs = 100
	}
}

func init() {
	var err error
	if targets, err = Load(strings.NewReader(string(rawTargets))); err != nil {
		panic(err)
	}
}
