package neuron

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spikelab/soma/hwtypes"
	"github.com/spikelab/soma/sim"
)

type spikeRecordingHook struct {
	spikes     []uint64
	potentials []uint64
}

func (h *spikeRecordingHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosSpike:
		h.spikes = append(h.spikes, ctx.Item.(uint64))
	case HookPosPotential:
		h.potentials = append(h.potentials, ctx.Item.(uint64))
	}
}

var _ = Describe("Builder", func() {
	It("should reject invalid widths", func() {
		_, err := MakeBuilder().WithWidth(0).Build("N")
		Expect(err).To(MatchError(hwtypes.ErrInvalidWidth))

		_, err = MakeBuilder().WithWidth(65).Build("N")
		Expect(err).To(MatchError(hwtypes.ErrInvalidWidth))
	})

	It("should reject parameters wider than the configured width", func() {
		_, err := MakeBuilder().
			WithWidth(4).
			WithThreshold(16).
			Build("N")
		Expect(err).To(MatchError(ErrParamTooWide))

		_, err = MakeBuilder().
			WithWidth(8).
			WithLeakRate(300).
			Build("N")
		Expect(err).To(MatchError(ErrParamTooWide))
	})

	It("should reject a reset value at or above the threshold", func() {
		_, err := MakeBuilder().
			WithThreshold(100).
			WithResetValue(100).
			Build("N")
		Expect(err).To(MatchError(ErrResetNotBelowThreshold))

		_, err = MakeBuilder().
			WithThreshold(100).
			WithResetValue(120).
			Build("N")
		Expect(err).To(MatchError(ErrResetNotBelowThreshold))
	})

	It("should build a neuron in its power-on state", func() {
		n, err := MakeBuilder().
			WithThreshold(100).
			WithLeakRate(1).
			WithResetValue(20).
			Build("N")

		Expect(err).ToNot(HaveOccurred())
		Expect(n.Potential()).To(Equal(uint64(20)))
		Expect(n.SpikeOut()).To(BeFalse())
		Expect(n.Threshold()).To(Equal(uint64(100)))
		Expect(n.LeakRate()).To(Equal(uint64(1)))
		Expect(n.ResetValue()).To(Equal(uint64(20)))
	})
})

var _ = Describe("Comp (literal update order)", func() {
	var n *Comp

	BeforeEach(func() {
		var err error
		n, err = MakeBuilder().
			WithWidth(8).
			WithThreshold(100).
			WithLeakRate(5).
			WithResetValue(50).
			Build("N")
		Expect(err).ToNot(HaveOccurred())
	})

	It("should leak down to zero and hold", func() {
		expected := []uint64{45, 40, 35, 30, 25, 20, 15, 10, 5, 0, 0, 0}

		for _, want := range expected {
			out := n.Tick(TickInput{})
			Expect(out.Spike).To(BeFalse())
			Expect(out.MembranePotential).To(Equal(want))
		}
	})

	It("should ignore the incoming weight", func() {
		out := n.Tick(TickInput{SpikeIn: true, Weight: 200})

		Expect(out.Spike).To(BeFalse())
		Expect(out.MembranePotential).To(Equal(uint64(45)))
	})

	It("should fire and reset when the potential is at the threshold", func() {
		n.membranePotential = 100

		out := n.Tick(TickInput{SpikeIn: true, Weight: 77})

		Expect(out.Spike).To(BeTrue())
		Expect(out.MembranePotential).To(Equal(uint64(50)))
		Expect(n.SpikeOut()).To(BeTrue())
	})

	It("should fire when the potential is above the threshold", func() {
		n.membranePotential = 130

		out := n.Tick(TickInput{})

		Expect(out.Spike).To(BeTrue())
		Expect(out.MembranePotential).To(Equal(uint64(50)))
	})

	It("should not fire just below the threshold", func() {
		n.membranePotential = 99

		out := n.Tick(TickInput{SpikeIn: true, Weight: 10})

		Expect(out.Spike).To(BeFalse())
		Expect(out.MembranePotential).To(Equal(uint64(94)))
	})

	It("should clear the spike output on the next tick", func() {
		n.membranePotential = 100

		out := n.Tick(TickInput{})
		Expect(out.Spike).To(BeTrue())

		out = n.Tick(TickInput{})
		Expect(out.Spike).To(BeFalse())
		Expect(n.SpikeOut()).To(BeFalse())
	})

	It("should reset to the power-on state", func() {
		n.Tick(TickInput{})
		n.Tick(TickInput{})

		n.Reset()

		Expect(n.Potential()).To(Equal(uint64(50)))
		Expect(n.SpikeOut()).To(BeFalse())
	})

	It("should invoke spike and potential hooks", func() {
		hook := &spikeRecordingHook{}
		n.AcceptHook(hook)
		n.membranePotential = 100

		n.Tick(TickInput{})
		n.Tick(TickInput{})

		Expect(hook.spikes).To(Equal([]uint64{100}))
		Expect(hook.potentials).To(Equal([]uint64{50, 45}))
	})
})

var _ = Describe("Comp (weight integration)", func() {
	var n *Comp

	BeforeEach(func() {
		var err error
		n, err = MakeBuilder().
			WithWidth(8).
			WithThreshold(100).
			WithLeakRate(1).
			WithResetValue(0).
			WithWeightIntegration().
			Build("N")
		Expect(err).ToNot(HaveOccurred())
	})

	It("should integrate the weight before the leak", func() {
		out := n.Tick(TickInput{SpikeIn: true, Weight: 10})

		Expect(out.Spike).To(BeFalse())
		Expect(out.MembranePotential).To(Equal(uint64(9)))
	})

	It("should not integrate without an input spike", func() {
		n.Tick(TickInput{SpikeIn: true, Weight: 10})

		out := n.Tick(TickInput{Weight: 50})

		Expect(out.Spike).To(BeFalse())
		Expect(out.MembranePotential).To(Equal(uint64(8)))
	})

	It("should fire once the integrated potential reaches the threshold", func() {
		// 29, 58, 87, then 87+30=117 crosses the threshold.
		for _, want := range []uint64{29, 58, 87} {
			out := n.Tick(TickInput{SpikeIn: true, Weight: 30})
			Expect(out.Spike).To(BeFalse())
			Expect(out.MembranePotential).To(Equal(want))
		}

		out := n.Tick(TickInput{SpikeIn: true, Weight: 30})
		Expect(out.Spike).To(BeTrue())
		Expect(out.MembranePotential).To(Equal(uint64(0)))
	})

	It("should fire and reset independent of that tick's weight", func() {
		n.membranePotential = 100

		out := n.Tick(TickInput{SpikeIn: true, Weight: 200})

		Expect(out.Spike).To(BeTrue())
		Expect(out.MembranePotential).To(Equal(uint64(0)))
	})

	It("should saturate the integration at the width's mask", func() {
		n.membranePotential = 90

		// 90 + 250 saturates at 255, which is above the threshold.
		out := n.Tick(TickInput{SpikeIn: true, Weight: 250})

		Expect(out.Spike).To(BeTrue())
		Expect(out.MembranePotential).To(Equal(uint64(0)))
	})

	It("should truncate the weight to the configured width", func() {
		// 0x102 truncates to 2.
		out := n.Tick(TickInput{SpikeIn: true, Weight: 0x102})

		Expect(out.Spike).To(BeFalse())
		Expect(out.MembranePotential).To(Equal(uint64(1)))
	})
})
