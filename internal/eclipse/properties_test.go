package eclipse_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/eclipse"
)

func randomPoint(rng *rand.Rand) dynamo.Vec2 {
	return dynamo.Vec2{X: rng.Float64() * 1200, Y: rng.Float64() * 900}
}

var _ = Describe("Check", func() {
	It("holds exactly when the moon is nearer the sun and within 50px of the planet", func() {
		rng := rand.New(rand.NewSource(11))
		sun := dynamo.Vec2{X: 600, Y: 450}
		for i := 0; i < 20000; i++ {
			planet := randomPoint(rng)
			// Half the samples put the moon near the planet so both branches are exercised.
			moon := randomPoint(rng)
			if i%2 == 0 {
				a := rng.Float64() * 2 * math.Pi
				r := rng.Float64() * 80
				moon = dynamo.Vec2{X: planet.X + r*math.Cos(a), Y: planet.Y + r*math.Sin(a)}
			}

			sunPlanet := math.Hypot(planet.X-sun.X, planet.Y-sun.Y)
			sunMoon := math.Hypot(moon.X-sun.X, moon.Y-sun.Y)
			moonPlanet := math.Hypot(moon.X-planet.X, moon.Y-planet.Y)
			want := sunMoon < sunPlanet && moonPlanet < 50

			got := eclipse.Check(eclipse.Geometry{Sun: sun, Planet: planet, Moon: moon}, eclipse.DefaultThreshold)
			Expect(got).To(Equal(want), "planet=%v moon=%v", planet, moon)
		}
	})

	It("never fires when the moon sits on the far side of the planet", func() {
		sun := dynamo.Vec2{X: 600, Y: 450}
		planet := dynamo.Vec2{X: 810, Y: 450}
		for r := 1.0; r < 50; r += 0.5 {
			moon := dynamo.Vec2{X: planet.X + r, Y: planet.Y}
			Expect(eclipse.Check(eclipse.Geometry{Sun: sun, Planet: planet, Moon: moon}, eclipse.DefaultThreshold)).To(BeFalse())
		}
	})
})

var _ = Describe("Tracker", func() {
	var tr *eclipse.Tracker

	BeforeEach(func() {
		tr = eclipse.NewTracker(eclipse.DefaultWindow)
	})

	It("never accepts two events within 60 consecutive frames", func() {
		rng := rand.New(rand.NewSource(5))
		var accepted []int
		for frame := 1; frame <= 50000; frame++ {
			// Runs of true of random length mimic alignments of varying duration.
			detected := rng.Intn(4) != 0
			if tr.Observe(detected) {
				accepted = append(accepted, frame)
			}
		}
		Expect(accepted).NotTo(BeEmpty())
		for i := 1; i < len(accepted); i++ {
			Expect(accepted[i] - accepted[i-1]).To(BeNumerically(">", 60))
		}
		Expect(tr.Count).To(Equal(len(accepted)))
	})

	It("counts an always-true signal once per window", func() {
		for i := 0; i < 61*10; i++ {
			tr.Observe(true)
		}
		Expect(tr.Count).To(Equal(10))
	})

	It("reports the frame of the last accepted event", func() {
		for i := 0; i < 5; i++ {
			tr.Observe(false)
		}
		Expect(tr.Observe(true)).To(BeTrue())
		Expect(tr.LastFrame).To(Equal(6))
	})
})
