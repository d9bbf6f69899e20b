package spikebuffer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spikelab/soma/hwtypes"
	"github.com/spikelab/soma/sim"
)

type positionCountingHook struct {
	counts map[string]int
}

func (h *positionCountingHook) Func(ctx sim.HookCtx) {
	h.counts[ctx.Pos.Name]++
}

func write(c *Comp, v uint64) TickOutput {
	return c.Tick(TickInput{WantWrite: true, Value: v})
}

func read(c *Comp) TickOutput {
	return c.Tick(TickInput{WantRead: true})
}

var _ = Describe("Comp", func() {
	var buf *Comp

	BeforeEach(func() {
		var err error
		buf, err = MakeBuilder().
			WithCapacity(4).
			WithWidth(8).
			Build("SB")
		Expect(err).ToNot(HaveOccurred())
	})

	It("should reject zero capacity", func() {
		_, err := MakeBuilder().WithCapacity(0).Build("SB")
		Expect(err).To(MatchError(ErrZeroCapacity))
	})

	It("should reject invalid width", func() {
		_, err := MakeBuilder().WithWidth(0).Build("SB")
		Expect(err).To(MatchError(hwtypes.ErrInvalidWidth))

		_, err = MakeBuilder().WithWidth(65).Build("SB")
		Expect(err).To(MatchError(hwtypes.ErrInvalidWidth))
	})

	It("should start empty", func() {
		Expect(buf.Occupancy()).To(Equal(0))
		Expect(buf.Empty()).To(BeTrue())
		Expect(buf.Full()).To(BeFalse())
	})

	It("should become full after capacity writes and drop the next", func() {
		for i := 0; i < buf.Capacity(); i++ {
			out := write(buf, uint64(i))
			Expect(out.WasFull).To(BeFalse())
		}

		Expect(buf.Full()).To(BeTrue())
		Expect(buf.Occupancy()).To(Equal(4))

		out := write(buf, 99)
		Expect(out.WasFull).To(BeTrue())
		Expect(buf.Occupancy()).To(Equal(4))
	})

	It("should drop a read from an empty buffer", func() {
		out := read(buf)

		Expect(out.WasEmpty).To(BeTrue())
		Expect(buf.Occupancy()).To(Equal(0))
	})

	It("should return written values in order", func() {
		values := []uint64{11, 22, 33, 44}
		for _, v := range values {
			write(buf, v)
		}

		for _, v := range values {
			out := read(buf)
			Expect(out.ReadValue).To(Equal(v))
		}

		Expect(buf.Empty()).To(BeTrue())
	})

	It("should keep occupancy unchanged on simultaneous write and read", func() {
		write(buf, 1)
		write(buf, 2)

		out := buf.Tick(TickInput{WantWrite: true, Value: 3, WantRead: true})

		Expect(out.WasFull).To(BeFalse())
		Expect(out.WasEmpty).To(BeFalse())
		Expect(out.ReadValue).To(Equal(uint64(1)))
		Expect(buf.Occupancy()).To(Equal(2))
	})

	It("should judge admission against the pre-tick state when full", func() {
		for i := 0; i < 4; i++ {
			write(buf, uint64(i))
		}

		// The read frees a slot, but the write was judged against the
		// pre-tick full flag and must still be dropped.
		out := buf.Tick(TickInput{WantWrite: true, Value: 99, WantRead: true})

		Expect(out.WasFull).To(BeTrue())
		Expect(out.ReadValue).To(Equal(uint64(0)))
		Expect(buf.Occupancy()).To(Equal(3))
	})

	It("should judge admission against the pre-tick state when empty", func() {
		out := buf.Tick(TickInput{WantWrite: true, Value: 7, WantRead: true})

		Expect(out.WasEmpty).To(BeTrue())
		Expect(buf.Occupancy()).To(Equal(1))

		out = read(buf)
		Expect(out.ReadValue).To(Equal(uint64(7)))
	})

	It("should hold the read-data register between honored reads", func() {
		write(buf, 42)
		write(buf, 43)

		out := read(buf)
		Expect(out.ReadValue).To(Equal(uint64(42)))

		out = buf.Tick(TickInput{})
		Expect(out.ReadValue).To(Equal(uint64(42)))
		Expect(buf.PeekReadValue()).To(Equal(uint64(42)))

		out = read(buf)
		Expect(out.ReadValue).To(Equal(uint64(43)))
	})

	It("should truncate written values to the configured width", func() {
		write(buf, 0x1ff)

		out := read(buf)
		Expect(out.ReadValue).To(Equal(uint64(0xff)))
	})

	It("should wrap around the storage", func() {
		for round := 0; round < 3; round++ {
			for i := 0; i < 4; i++ {
				write(buf, uint64(round*10+i))
			}
			for i := 0; i < 4; i++ {
				out := read(buf)
				Expect(out.ReadValue).To(Equal(uint64(round*10 + i)))
			}
		}
	})

	It("should track occupancy as honored writes minus honored reads", func() {
		intents := []TickInput{
			{WantWrite: true, Value: 1},
			{WantWrite: true, Value: 2},
			{WantRead: true},
			{WantWrite: true, Value: 3, WantRead: true},
			{WantRead: true},
			{WantRead: true},
			{WantRead: true}, // empty, dropped
		}

		honored := 0
		for _, in := range intents {
			out := buf.Tick(in)
			if in.WantWrite && !out.WasFull {
				honored++
			}
			if in.WantRead && !out.WasEmpty {
				honored--
			}
			Expect(buf.Occupancy()).To(Equal(honored))
			Expect(buf.Occupancy()).To(BeNumerically(">=", 0))
			Expect(buf.Occupancy()).To(BeNumerically("<=", buf.Capacity()))
		}
	})

	It("should reset to the empty state", func() {
		write(buf, 1)
		write(buf, 2)
		read(buf)

		buf.Reset()

		Expect(buf.Occupancy()).To(Equal(0))
		Expect(buf.Empty()).To(BeTrue())
		Expect(buf.Full()).To(BeFalse())

		write(buf, 5)
		out := read(buf)
		Expect(out.ReadValue).To(Equal(uint64(5)))
	})

	It("should run the documented capacity-4 scenario", func() {
		write(buf, 10)
		Expect(buf.Occupancy()).To(Equal(1))

		write(buf, 20)
		Expect(buf.Occupancy()).To(Equal(2))

		out := read(buf)
		Expect(out.ReadValue).To(Equal(uint64(10)))
		Expect(buf.Occupancy()).To(Equal(1))

		// Single write port: 30 and 40 take one tick each.
		write(buf, 30)
		write(buf, 40)
		Expect(buf.Occupancy()).To(Equal(3))

		for _, v := range []uint64{20, 30, 40} {
			out = read(buf)
			Expect(out.ReadValue).To(Equal(v))
		}
	})

	It("should invoke hooks on writes, reads, and drops", func() {
		hook := &positionCountingHook{counts: map[string]int{}}
		buf.AcceptHook(hook)

		write(buf, 1)
		read(buf)
		read(buf) // dropped

		Expect(hook.counts[HookPosWrite.Name]).To(Equal(1))
		Expect(hook.counts[HookPosRead.Name]).To(Equal(1))
		Expect(hook.counts[HookPosDrop.Name]).To(Equal(1))
	})
})
