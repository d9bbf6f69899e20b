// Package hwtypes provides fixed-width unsigned value arithmetic shared by
// the hardware blocks. Values are carried in uint64 and truncated to the bit
// width of the block that owns them, the same way an elaborated design fixes
// its signal widths.
package hwtypes

import (
	"errors"
	"fmt"
)

// ErrInvalidWidth is returned when a bit width is zero or wider than 64.
var ErrInvalidWidth = errors.New("width must be between 1 and 64 bits")

// Width is the bit width of a fixed-width unsigned value.
type Width uint

// NewWidth validates w as a bit width.
func NewWidth(w uint) (Width, error) {
	if w == 0 || w > 64 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWidth, w)
	}

	return Width(w), nil
}

// Valid reports whether the width is in the 1..64 range.
func (w Width) Valid() bool {
	return w >= 1 && w <= 64
}

// Mask returns the all-ones value of the width.
func (w Width) Mask() uint64 {
	if w >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << w) - 1
}

// Truncate drops the bits of v above the width.
func (w Width) Truncate(v uint64) uint64 {
	return v & w.Mask()
}

// Fits reports whether v is representable in the width.
func (w Width) Fits(v uint64) bool {
	return v == w.Truncate(v)
}

// AddSat adds two in-range values, saturating at the width's mask instead of
// wrapping.
func (w Width) AddSat(a, b uint64) uint64 {
	sum := a + b
	if sum < a || sum > w.Mask() {
		return w.Mask()
	}

	return sum
}

// SubFloor subtracts b from a, flooring at zero instead of wrapping.
func SubFloor(a, b uint64) uint64 {
	if a <= b {
		return 0
	}

	return a - b
}

// SameWidth reports whether all the given widths are equal. Connected blocks
// must agree on one width; the orchestrator checks this before wiring.
func SameWidth(ws ...Width) bool {
	for _, w := range ws[1:] {
		if w != ws[0] {
			return false
		}
	}

	return true
}
