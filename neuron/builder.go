package neuron

import (
	"errors"
	"fmt"

	"github.com/spikelab/soma/hwtypes"
)

// ErrParamTooWide is returned when a parameter does not fit the configured
// bit width.
var ErrParamTooWide = errors.New("parameter does not fit the configured width")

// ErrResetNotBelowThreshold is returned when the reset value is at or above
// the threshold. Such a neuron would fire on every cycle forever.
var ErrResetNotBelowThreshold = errors.New(
	"reset value must be below the threshold")

// Builder builds neuron update engines.
type Builder struct {
	width           hwtypes.Width
	threshold       uint64
	leakRate        uint64
	resetValue      uint64
	integrateWeight bool
}

// MakeBuilder creates a Builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		width:     8,
		threshold: 100,
		leakRate:  1,
	}
}

// WithWidth sets the bit width shared by the potential and all parameters.
func (b Builder) WithWidth(width hwtypes.Width) Builder {
	b.width = width
	return b
}

// WithThreshold sets the firing threshold.
func (b Builder) WithThreshold(threshold uint64) Builder {
	b.threshold = threshold
	return b
}

// WithLeakRate sets the per-cycle leak.
func (b Builder) WithLeakRate(leakRate uint64) Builder {
	b.leakRate = leakRate
	return b
}

// WithResetValue sets the potential the neuron resets to after a spike.
func (b Builder) WithResetValue(resetValue uint64) Builder {
	b.resetValue = resetValue
	return b
}

// WithWeightIntegration selects the corrected update order in which the
// incoming weight is integrated into the potential before the leak and
// threshold tests. The default is the literal order of the source hardware
// description, in which the weight never reaches the stored state.
func (b Builder) WithWeightIntegration() Builder {
	b.integrateWeight = true
	return b
}

// Build builds a neuron update engine in its power-on state.
func (b Builder) Build(name string) (*Comp, error) {
	if !b.width.Valid() {
		return nil, fmt.Errorf(
			"%w: got %d", hwtypes.ErrInvalidWidth, b.width)
	}

	for _, p := range []struct {
		name  string
		value uint64
	}{
		{"threshold", b.threshold},
		{"leak rate", b.leakRate},
		{"reset value", b.resetValue},
	} {
		if !b.width.Fits(p.value) {
			return nil, fmt.Errorf("%w: %s %d exceeds %d bits",
				ErrParamTooWide, p.name, p.value, b.width)
		}
	}

	if b.resetValue >= b.threshold {
		return nil, fmt.Errorf("%w: reset %d, threshold %d",
			ErrResetNotBelowThreshold, b.resetValue, b.threshold)
	}

	c := &Comp{
		name:            name,
		width:           b.width,
		threshold:       b.threshold,
		leakRate:        b.leakRate,
		resetValue:      b.resetValue,
		integrateWeight: b.integrateWeight,
	}
	c.Reset()

	return c, nil
}
