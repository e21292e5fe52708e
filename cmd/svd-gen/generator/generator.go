package generator

// Generator writes a device package for one SVD description.
type Generator interface {
	Generate(out string) error
}
