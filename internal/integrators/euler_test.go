package integrators

import (
	"testing"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
)

type constantRates struct {
	rates []float64
}

func (c *constantRates) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State(c.rates)
}

func (c *constantRates) StateDim() int { return len(c.rates) }

func TestEulerConstantRates(t *testing.T) {
	sys := &constantRates{rates: []float64{0.04, 0.03, 0.02, 0.018, 0.08}}
	integ := NewEuler()

	x := dynamo.State{1.0, 2.0, 3.0, 4.0, 0.0}
	mult := 2.5
	next := integ.Step(sys, x, 0, mult)

	for i := range x {
		want := x[i] + sys.rates[i]*mult
		if next[i] != want {
			t.Errorf("entry %d: got %v, want %v", i, next[i], want)
		}
	}
	if x[0] != 1.0 {
		t.Error("Step mutated its input state")
	}
}

func TestEulerMonotonic(t *testing.T) {
	sys := &constantRates{rates: []float64{0.04, 0.018}}
	integ := NewEuler()

	x := dynamo.State{0, 0}
	for i := 0; i < 1000; i++ {
		next := integ.Step(sys, x, float64(i), 0.5)
		for j := range x {
			if next[j] < x[j] {
				t.Fatalf("angle %d decreased at step %d: %v -> %v", j, i, x[j], next[j])
			}
		}
		x = next
	}
}

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler()
	sys := &constantRates{rates: []float64{0.04, 0.03, 0.02, 0.018, 0.08}}
	x := dynamo.State{0, 0, 0, 0, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(sys, x, 0, 1)
	}
}
