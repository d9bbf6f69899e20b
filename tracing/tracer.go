// Package tracing records the activity of neurons and spike buffers through
// their hooks.
package tracing

import (
	"github.com/spikelab/soma/neuron"
	"github.com/spikelab/soma/sim"
	"github.com/spikelab/soma/spikebuffer"
)

// SpikeEntry is one fired spike.
type SpikeEntry struct {
	Cycle     uint64
	Neuron    string
	Potential uint64
}

// PotentialEntry is the membrane potential committed by one cycle.
type PotentialEntry struct {
	Cycle     uint64
	Neuron    string
	Potential uint64
}

// BufferOpEntry is one buffer write, read, or dropped intent.
type BufferOpEntry struct {
	Cycle     uint64
	Buffer    string
	Op        string
	Value     uint64
	Occupancy int
}

// A Backend stores trace entries.
type Backend interface {
	WriteSpike(SpikeEntry)
	WritePotential(PotentialEntry)
	WriteBufferOp(BufferOpEntry)
}

// A Tracer is a hook that converts neuron and buffer hook invocations into
// trace entries. Attach it to a component with AcceptHook.
type Tracer struct {
	cycleTeller sim.CycleTeller
	backend     Backend
}

// NewTracer creates a Tracer that timestamps entries with the given
// CycleTeller and stores them in the given backend.
func NewTracer(cycleTeller sim.CycleTeller, backend Backend) *Tracer {
	return &Tracer{
		cycleTeller: cycleTeller,
		backend:     backend,
	}
}

// Func implements sim.Hook.
func (t *Tracer) Func(ctx sim.HookCtx) {
	cycle := uint64(t.cycleTeller.CurrentCycle())

	switch ctx.Pos {
	case neuron.HookPosSpike:
		t.backend.WriteSpike(SpikeEntry{
			Cycle:     cycle,
			Neuron:    ctx.Domain.(sim.Named).Name(),
			Potential: ctx.Item.(uint64),
		})
	case neuron.HookPosPotential:
		t.backend.WritePotential(PotentialEntry{
			Cycle:     cycle,
			Neuron:    ctx.Domain.(sim.Named).Name(),
			Potential: ctx.Item.(uint64),
		})
	case spikebuffer.HookPosWrite:
		t.writeBufferOp(ctx, cycle, "write", ctx.Item.(uint64))
	case spikebuffer.HookPosRead:
		t.writeBufferOp(ctx, cycle, "read", ctx.Item.(uint64))
	case spikebuffer.HookPosDrop:
		t.writeBufferOp(ctx, cycle, "drop", 0)
	}
}

func (t *Tracer) writeBufferOp(
	ctx sim.HookCtx,
	cycle uint64,
	op string,
	value uint64,
) {
	t.backend.WriteBufferOp(BufferOpEntry{
		Cycle:     cycle,
		Buffer:    ctx.Domain.(sim.Named).Name(),
		Op:        op,
		Value:     value,
		Occupancy: ctx.Detail.(int),
	})
}
