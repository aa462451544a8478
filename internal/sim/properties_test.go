package sim_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/eclipsehunter/internal/config"
	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/sim"
)

var _ = Describe("Simulation", func() {
	var (
		s   *sim.Simulation
		rng *rand.Rand
	)

	BeforeEach(func() {
		cfg := config.DefaultConfig()
		cfg.Seed = GinkgoRandomSeed() + 1
		var err error
		s, err = sim.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		rng = rand.New(rand.NewSource(GinkgoRandomSeed()))
	})

	It("keeps the speed multiplier in range under any key sequence", func() {
		for i := 0; i < 5000; i++ {
			if rng.Intn(2) == 0 {
				s.SpeedUp()
			} else {
				s.SpeedDown()
			}
			Expect(s.Speed()).To(BeNumerically(">=", config.MinSpeed))
			Expect(s.Speed()).To(BeNumerically("<=", config.MaxSpeed))
		}
	})

	It("freezes every position while paused", func() {
		warmup := rng.Intn(500)
		for i := 0; i < warmup; i++ {
			s.Tick()
		}
		s.TogglePause()

		snapshot := func() []dynamo.Vec2 {
			var ps []dynamo.Vec2
			for _, p := range s.System().Planets() {
				ps = append(ps, p.Pos)
			}
			return append(ps, s.System().Moon().Pos)
		}
		before := snapshot()

		paused := 1 + rng.Intn(1000)
		for i := 0; i < paused; i++ {
			s.Tick()
			Expect(snapshot()).To(Equal(before))
		}
	})

	It("never lets angles decrease while running", func() {
		prev := s.System().State()
		for i := 0; i < 300; i++ {
			if rng.Intn(10) == 0 {
				s.SpeedDown()
			}
			s.Tick()
			cur := s.System().State()
			for j := range cur {
				Expect(cur[j]).To(BeNumerically(">", prev[j]))
			}
			prev = cur
		}
	})

	It("counts a tracker event for every banner it raises", func() {
		raised := 0
		for i := 0; i < 3000; i++ {
			if s.Tick() {
				raised++
				Expect(s.BannerActive()).To(BeTrue())
			}
		}
		Expect(s.Stats().Count).To(Equal(raised))
	})
})
