package spikebuffer

import (
	"errors"
	"fmt"

	"github.com/spikelab/soma/hwtypes"
)

// ErrZeroCapacity is returned when a buffer is built with capacity < 1.
var ErrZeroCapacity = errors.New("buffer capacity must be at least 1")

// Builder builds spike buffers.
type Builder struct {
	capacity int
	width    hwtypes.Width
}

// MakeBuilder creates a Builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		capacity: 16,
		width:    8,
	}
}

// WithCapacity sets the fixed capacity of the buffer.
func (b Builder) WithCapacity(capacity int) Builder {
	b.capacity = capacity
	return b
}

// WithWidth sets the bit width of the stored values.
func (b Builder) WithWidth(width hwtypes.Width) Builder {
	b.width = width
	return b
}

// Build builds a spike buffer. The storage is allocated once here and never
// resized afterwards.
func (b Builder) Build(name string) (*Comp, error) {
	if b.capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrZeroCapacity, b.capacity)
	}

	if !b.width.Valid() {
		return nil, fmt.Errorf(
			"%w: got %d", hwtypes.ErrInvalidWidth, b.width)
	}

	c := &Comp{
		name:     name,
		width:    b.width,
		capacity: b.capacity,
		storage:  make([]uint64, b.capacity),
	}

	return c, nil
}
