// Package spikebuffer models a fixed-capacity circular spike buffer.
//
// The buffer is a synchronous state machine. Each call to Tick advances it by
// one cycle on the global clock: at most one write and one read are admitted
// per cycle, both judged against the full/empty state as it stood at the
// start of the cycle. Overflow and underflow are defined no-ops; the caller
// consults the returned WasFull/WasEmpty flags to detect a dropped intent.
package spikebuffer

import (
	"github.com/spikelab/soma/hwtypes"
	"github.com/spikelab/soma/sim"
)

// HookPosWrite marks when a value is written into the buffer.
var HookPosWrite = &sim.HookPos{Name: "Buffer Write"}

// HookPosRead marks when a value is read out of the buffer.
var HookPosRead = &sim.HookPos{Name: "Buffer Read"}

// HookPosDrop marks when a write or read intent is dropped because the
// buffer was full or empty.
var HookPosDrop = &sim.HookPos{Name: "Buffer Drop"}

// TickInput carries the intents presented to the buffer for one cycle.
type TickInput struct {
	WantWrite bool
	Value     uint64
	WantRead  bool
}

// TickOutput carries the buffer outputs observable after the cycle.
//
// ReadValue is the read-data register. An honored read loads it with the
// value at the read index before the index advances; between honored reads
// it holds its previous value. WasFull and WasEmpty report the flags as they
// stood at the start of the cycle, which is also what admission was judged
// against.
type TickOutput struct {
	ReadValue uint64
	WasFull   bool
	WasEmpty  bool
}

// Comp is the spike buffer.
type Comp struct {
	sim.HookableBase
	name string

	width    hwtypes.Width
	capacity int

	storage    []uint64
	writeIndex int
	readIndex  int
	occupancy  int
	readValue  uint64
}

// Name returns the name of the buffer.
func (c *Comp) Name() string {
	return c.name
}

// Capacity returns the fixed capacity of the buffer.
func (c *Comp) Capacity() int {
	return c.capacity
}

// Occupancy returns the number of valid entries in the buffer.
func (c *Comp) Occupancy() int {
	return c.occupancy
}

// Width returns the bit width of the stored values.
func (c *Comp) Width() hwtypes.Width {
	return c.width
}

// Full reports whether the buffer holds capacity entries.
func (c *Comp) Full() bool {
	return c.occupancy == c.capacity
}

// Empty reports whether the buffer holds no entries.
func (c *Comp) Empty() bool {
	return c.occupancy == 0
}

// PeekReadValue returns the read-data register without advancing the buffer.
func (c *Comp) PeekReadValue() uint64 {
	return c.readValue
}

// Tick advances the buffer by one cycle.
//
// The full/empty flags are sampled once from the pre-tick state and used for
// both the admission decisions and the occupancy delta, so a write admitted
// in this cycle can never unblock a read in the same cycle, and vice versa.
func (c *Comp) Tick(in TickInput) TickOutput {
	wasFull := c.Full()
	wasEmpty := c.Empty()

	writeHonored := in.WantWrite && !wasFull
	readHonored := in.WantRead && !wasEmpty

	if writeHonored {
		c.storage[c.writeIndex] = c.width.Truncate(in.Value)
		c.writeIndex = (c.writeIndex + 1) % c.capacity
	}

	if readHonored {
		c.readValue = c.storage[c.readIndex]
		c.readIndex = (c.readIndex + 1) % c.capacity
	}

	switch {
	case writeHonored && !readHonored:
		c.occupancy++
	case readHonored && !writeHonored:
		c.occupancy--
	}

	c.invokeTickHooks(in, writeHonored, readHonored)

	return TickOutput{
		ReadValue: c.readValue,
		WasFull:   wasFull,
		WasEmpty:  wasEmpty,
	}
}

func (c *Comp) invokeTickHooks(
	in TickInput,
	writeHonored, readHonored bool,
) {
	if c.NumHooks() == 0 {
		return
	}

	if writeHonored {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosWrite,
			Item:   in.Value,
			Detail: c.occupancy,
		})
	}

	if readHonored {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosRead,
			Item:   c.readValue,
			Detail: c.occupancy,
		})
	}

	if in.WantWrite && !writeHonored || in.WantRead && !readHonored {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosDrop,
			Item:   in,
			Detail: c.occupancy,
		})
	}
}

// Reset synchronously returns the buffer to the empty state. The storage and
// the read-data register keep their stale contents; a reader must not read
// before the first write after a reset.
func (c *Comp) Reset() {
	c.writeIndex = 0
	c.readIndex = 0
	c.occupancy = 0
}
