package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/fuelforge/internal/domain"
)

// File is the on-disk YAML form of a recipe:
//
//	fuel: gasoline
//	components:
//	  - name: Isooctane
//	    percentage: 90
//	  - name: Ethanol
//	    percentage: 10
//
// The fuel key is required.
type File struct {
	Fuel       *domain.FuelType   `yaml:"fuel"`
	Components []domain.Component `yaml:"components"`
}

// ErrMissingFuel is returned for a recipe file without a fuel key.
var ErrMissingFuel = errors.New("recipe file has no fuel")

// Decode parses a recipe file.
func Decode(data []byte, opts ...Option) (domain.FuelType, *Model, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return domain.Gasoline, nil, fmt.Errorf("decode recipe: %w", err)
	}
	if f.Fuel == nil {
		return domain.Gasoline, nil, fmt.Errorf("decode recipe: %w", ErrMissingFuel)
	}
	fuel := *f.Fuel
	if len(f.Components) > domain.MaxComponents {
		return fuel, nil, fmt.Errorf("decode recipe: %w", domain.ErrCapacityExceeded)
	}

	m := New(opts...)
	for _, c := range f.Components {
		added, err := m.Add(c.Name)
		if err != nil {
			return fuel, nil, fmt.Errorf("decode recipe: %w", err)
		}
		if err := m.SetPercentage(added.ID, c.Percentage); err != nil {
			return fuel, nil, fmt.Errorf("decode recipe %q: %w", c.Name, err)
		}
	}
	return fuel, m, nil
}

// Encode renders a recipe file.
func Encode(fuel domain.FuelType, r domain.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(File{Fuel: &fuel, Components: r}); err != nil {
		return nil, fmt.Errorf("encode recipe: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode recipe: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadFile reads a recipe file from disk.
func LoadFile(path string, opts ...Option) (domain.FuelType, *Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Gasoline, nil, fmt.Errorf("read recipe: %w", err)
	}
	return Decode(data, opts...)
}

// SaveFile writes a recipe file to disk.
func SaveFile(path string, fuel domain.FuelType, r domain.Recipe) error {
	data, err := Encode(fuel, r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write recipe: %w", err)
	}
	return nil
}
