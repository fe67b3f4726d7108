package pattern_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/brlcal/brlcal/internal/pattern"
)

var _ = Describe("Engine", func() {
	newEngine := func(cfg pattern.Config) *pattern.Engine {
		eng, err := pattern.New(cfg, 42)
		Expect(err).NotTo(HaveOccurred())
		return eng
	}

	Describe("blink cycle", func() {
		var eng *pattern.Engine

		BeforeEach(func() {
			cfg := pattern.Default()
			cfg.Columns, cfg.Rows = 4, 1
			eng = newEngine(cfg)
		})

		It("starts in the ON phase with the first cell lit", func() {
			st := eng.Start()
			Expect(st.PhaseOn).To(BeTrue())

			line := eng.Render(st)
			Expect(line).To(HaveLen(4))
			Expect(line[0]).To(Equal(uint8(0xFF)))
			Expect(line[1:]).To(HaveEach(uint8(0)))
		})

		It("blanks the line on the OFF phase", func() {
			st, stop := eng.Advance(eng.Start())
			Expect(stop).To(BeFalse())
			Expect(st.PhaseOn).To(BeFalse())
			Expect(eng.Render(st)).To(HaveEach(uint8(0)))
		})

		It("moves the walk one cell per ON/OFF unit", func() {
			st := eng.Start()
			st, _ = eng.Advance(st) // ON -> OFF
			st, _ = eng.Advance(st) // OFF -> ON, walk advances
			Expect(st.StepIndex).To(Equal(1))
			Expect(eng.Render(st)[1]).To(Equal(uint8(0xFF)))
		})
	})

	Describe("dash cycle", func() {
		It("rotates through all four dash masks before the walk moves", func() {
			cfg := pattern.Config{Columns: 3, Rows: 1, IntervalMs: 100, Mode: pattern.ModeDashes, Loop: true}
			eng := newEngine(cfg)

			st := eng.Start()
			var masks []uint8
			for len(masks) < 4 {
				if st.PhaseOn {
					masks = append(masks, eng.Render(st)[0])
				}
				st, _ = eng.Advance(st)
			}
			Expect(masks).To(Equal([]uint8{0x09, 0x12, 0x24, 0xC0}))
			Expect(st.StepIndex).To(Equal(1))
		})
	})

	Describe("looping", func() {
		It("wraps the walk and never requests stop", func() {
			cfg := pattern.Config{Columns: 3, Rows: 1, IntervalMs: 100, Mode: pattern.ModeRowWalk, Loop: true}
			eng := newEngine(cfg)

			st := eng.Start()
			for i := 0; i < 20; i++ {
				var stop bool
				st, stop = eng.Advance(st)
				Expect(stop).To(BeFalse())
				Expect(st.StepIndex).To(BeNumerically("<", 3))
			}
		})

		It("requests stop after the last cell when loop is off", func() {
			cfg := pattern.Config{Columns: 3, Rows: 1, IntervalMs: 100, Mode: pattern.ModeRowWalk, Loop: false}
			eng := newEngine(cfg)

			st := eng.Start()
			stops := 0
			for i := 0; i < 6; i++ {
				var stop bool
				st, stop = eng.Advance(st)
				if stop {
					stops++
				}
			}
			Expect(stops).To(Equal(1))
		})
	})

	Describe("validation", func() {
		It("accepts a 5000-cell grid and rejects 5001", func() {
			ok := pattern.Config{Columns: 1000, Rows: 5, IntervalMs: 500}
			Expect(ok.Validate()).To(Succeed())

			bad := pattern.Config{Columns: 5001, Rows: 1, IntervalMs: 500}
			Expect(bad.Validate()).To(MatchError(pattern.ErrTotalCells))
		})
	})
})
