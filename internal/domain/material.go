// Package domain defines core data structures used throughout the calculator.
package domain

import "github.com/pkg/errors"

// Material identifies the metal a piece is made of.
type Material string

const (
	MaterialGold   Material = "gold"
	MaterialSilver Material = "silver"
)

// ParseMaterial converts a string into a Material.
func ParseMaterial(s string) (Material, error) {
	switch Material(s) {
	case MaterialGold:
		return MaterialGold, nil
	case MaterialSilver:
		return MaterialSilver, nil
	}
	return "", errors.Wrapf(ErrInvalidInput, "unknown material %q", s)
}

// String returns the string representation.
func (m Material) String() string {
	return string(m)
}
