package systems

import (
	"testing"

	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/spatial/r2"
)

// Benchmark a full frame of particle updates with the pointer in the field
func BenchmarkUpdateParticles(b *testing.B) {
	g := newTestGrid()
	field := newTestField()
	in := FrameInput{Time: 1.5, Mode: ModeStar, Transition: 0.6, Pointer: r2.Vec{X: 120, Y: -40}}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		g.UpdateParticles(in, field)
	}
}

func BenchmarkUpdateLines(b *testing.B) {
	g := newTestGrid()
	in := FrameInput{Time: 1.5, Mode: ModeCircle, Transition: 0.6}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		g.UpdateLines(in)
	}
}

// Benchmark the position snapshot with a plain loop
func BenchmarkSnapshotScalar(b *testing.B) {
	g := newTestGrid()
	dst := make([]float32, len(g.Positions))

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range dst {
			dst[i] = g.Positions[i]
		}
	}
}

// Benchmark the position snapshot with blas32
func BenchmarkSnapshotBLAS(b *testing.B) {
	g := newTestGrid()
	size := len(g.Positions)
	src := blas32.Vector{N: size, Inc: 1, Data: g.Positions}
	dst := blas32.Vector{N: size, Inc: 1, Data: make([]float32, size)}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		blas32.Copy(src, dst)
	}
}
