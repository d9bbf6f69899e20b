// Package neuron models a leaky-integrate-and-fire neuron update engine.
//
// The engine is a synchronous state machine. Each call to Tick advances it by
// one cycle: the membrane potential leaks toward zero, and when the
// start-of-cycle potential has reached the threshold the engine fires a spike
// and resets the potential, all committed atomically at the tick boundary.
//
// Two update orders are supported. The default order reproduces the source
// hardware description literally: the leak and threshold computations are
// evaluated against the start-of-cycle potential and unconditionally override
// the weight integration, so the incoming weight never reaches the stored
// state. Builder.WithWeightIntegration selects the corrected order, in which
// the weight is integrated into the potential before the leak and threshold
// tests.
package neuron

import (
	"github.com/spikelab/soma/hwtypes"
	"github.com/spikelab/soma/sim"
)

// HookPosSpike marks when the neuron fires. The hook item is the potential
// that crossed the threshold, before the reset.
var HookPosSpike = &sim.HookPos{Name: "Neuron Spike"}

// HookPosPotential marks the committed membrane potential of each cycle.
var HookPosPotential = &sim.HookPos{Name: "Neuron Potential"}

// TickInput carries the inputs presented to the neuron for one cycle.
type TickInput struct {
	SpikeIn bool
	Weight  uint64
}

// TickOutput carries the outputs latched at the end of the cycle.
type TickOutput struct {
	Spike             bool
	MembranePotential uint64
}

// Comp is the neuron update engine.
type Comp struct {
	sim.HookableBase
	name string

	width           hwtypes.Width
	threshold       uint64
	leakRate        uint64
	resetValue      uint64
	integrateWeight bool

	membranePotential uint64
	spikeOutput       bool
}

// Name returns the name of the neuron.
func (c *Comp) Name() string {
	return c.name
}

// Width returns the bit width shared by the potential and the parameters.
func (c *Comp) Width() hwtypes.Width {
	return c.width
}

// Threshold returns the firing threshold.
func (c *Comp) Threshold() uint64 {
	return c.threshold
}

// LeakRate returns the per-cycle leak.
func (c *Comp) LeakRate() uint64 {
	return c.leakRate
}

// ResetValue returns the potential the neuron resets to after a spike.
func (c *Comp) ResetValue() uint64 {
	return c.resetValue
}

// Potential returns the membrane potential as committed by the last tick.
func (c *Comp) Potential() uint64 {
	return c.membranePotential
}

// SpikeOut returns the spike output latched by the last tick.
func (c *Comp) SpikeOut() bool {
	return c.spikeOutput
}

// Tick advances the neuron by one cycle. The whole transition is computed
// from the potential as it stood at the start of the cycle; the new potential
// and the spike output commit together at the end.
func (c *Comp) Tick(in TickInput) TickOutput {
	prev := c.membranePotential

	acc := prev
	if c.integrateWeight && in.SpikeIn {
		acc = c.width.AddSat(prev, c.width.Truncate(in.Weight))
	}

	var nextPotential uint64
	var spike bool

	if acc >= c.threshold {
		nextPotential = c.resetValue
		spike = true
	} else {
		nextPotential = hwtypes.SubFloor(acc, c.leakRate)
		spike = false
	}

	c.membranePotential = nextPotential
	c.spikeOutput = spike

	if c.NumHooks() > 0 {
		if spike {
			c.InvokeHook(sim.HookCtx{
				Domain: c,
				Pos:    HookPosSpike,
				Item:   acc,
			})
		}

		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosPotential,
			Item:   nextPotential,
		})
	}

	return TickOutput{
		Spike:             spike,
		MembranePotential: nextPotential,
	}
}

// Reset synchronously returns the neuron to its power-on state.
func (c *Comp) Reset() {
	c.membranePotential = c.resetValue
	c.spikeOutput = false
}
