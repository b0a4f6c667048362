// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package davidson

import (
	"math"
	"testing"

	"github.com/curioloop/eigensolver/operator"
	"github.com/curioloop/eigensolver/tensor"
)

func randomGuess(n int) tensor.T {
	v := tensor.NewDense(n)
	v.Randomize()
	return v
}

func TestDavidsonDiagonal2x2(t *testing.T) {
	a := operator.Diagonal(1, 2)
	phi0 := tensor.NewDenseFrom([]complex128{1 / math.Sqrt2, 1 / math.Sqrt2})

	opts := DefaultOptions()
	opts.ErrGoal = 1e-6

	lambdas, err := RealDavidson(a, []tensor.T{phi0}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lambdas[0]-1.0) > 1e-5 {
		t.Fatalf("lambda = %v, want ~1.0", lambdas[0])
	}
}

func TestDavidsonHarmonicOscillator(t *testing.T) {
	const n = 50
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = float64(i) + 0.5
	}
	a := operator.Tridiagonal(diag, -0.1)

	opts := DefaultOptions()
	opts.MaxIter = 20
	opts.ErrGoal = 1e-5

	lambdas, err := RealDavidson(a, []tensor.T{randomGuess(n)}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lambdas[0]-0.49599) > 2e-3 {
		t.Fatalf("lambda = %v, want ~0.49599", lambdas[0])
	}
}

func TestDavidsonBlockThree(t *testing.T) {
	a := operator.Diagonal(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	guesses := []tensor.T{randomGuess(10), randomGuess(10), randomGuess(10)}

	opts := DefaultOptions()
	opts.ErrGoal = 1e-4
	opts.MaxIter = 30 // shared across all 3 deflated targets; clamps to n-1=9

	lambdas, err := RealDavidson(a, guesses, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3}
	for i, w := range want {
		if math.Abs(lambdas[i]-w) > 1e-2 {
			t.Fatalf("lambda[%d] = %v, want ~%v", i, lambdas[i], w)
		}
	}
}

func TestSelectRitzSkewSymmetricSpectrum(t *testing.T) {
	// Exact spectrum of [[0,1,0],[-1,0,1],[0,-1,0]]: 0, +i*sqrt(2), -i*sqrt(2).
	sqrt2 := math.Sqrt2
	dr := []float64{0, 0, 0}
	di := []float64{0, sqrt2, -sqrt2}

	// num=0 is the largest-modulus-deflation seed: one of the two
	// degenerate-modulus complex pair, earlier index wins on ties.
	if w := SelectRitz(dr, di, 0); w != 1 {
		t.Fatalf("SelectRitz(0) = %d, want 1", w)
	}
	// num=2 has displaced past both complex entries, landing on the
	// real, smallest-modulus eigenvalue.
	if w := SelectRitz(dr, di, 2); w != 0 {
		t.Fatalf("SelectRitz(2) = %d, want 0", w)
	}
}

func TestDavidsonNonHermitianDominant(t *testing.T) {
	// Upper triangular, real distinct eigenvalues 3 and 1: a Krylov
	// projection favors the dominant-modulus eigenvalue first,
	// matching SelectRitz's largest-modulus-deflation convention for
	// target 0.
	a := operator.NewDense(2, []complex128{
		3, 1,
		0, 1,
	})
	phi0 := randomGuess(2)

	opts := DefaultOptions()
	opts.Hermitian = false
	opts.MaxIter = 5

	lambdas, err := ComplexDavidson(a, []tensor.T{phi0}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(real(lambdas[0])-3) > 1e-2 || math.Abs(imag(lambdas[0])) > 1e-6 {
		t.Fatalf("lambda = %v, want ~3", lambdas[0])
	}
}

func TestDavidsonNullDiagStillConverges(t *testing.T) {
	a := operator.NoDiag{A: operator.Diagonal(1, 5, 9)}
	phi0 := tensor.NewDenseFrom([]complex128{1, 1, 1})

	opts := DefaultOptions()
	opts.MaxIter = 10
	opts.ErrGoal = 1e-4

	lambdas, err := RealDavidson(a, []tensor.T{phi0}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lambdas[0]-1) > 1e-2 {
		t.Fatalf("lambda = %v, want ~1", lambdas[0])
	}
}

func TestDavidsonSingleDimension(t *testing.T) {
	a := operator.Diagonal(7)
	phi0 := tensor.NewDenseFrom([]complex128{1})

	lambdas, err := RealDavidson(a, []tensor.T{phi0}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lambdas[0]-7) > 1e-9 {
		t.Fatalf("lambda = %v, want 7", lambdas[0])
	}
}

func TestDavidsonMaxIterZeroReturnsRayleighQuotient(t *testing.T) {
	a := operator.Diagonal(1, 2)
	phi0 := tensor.NewDenseFrom([]complex128{1 / math.Sqrt2, 1 / math.Sqrt2})

	opts := DefaultOptions()
	opts.MaxIter = 0

	lambdas, err := RealDavidson(a, []tensor.T{phi0}, opts)
	if err != nil {
		t.Fatal(err)
	}
	// Rayleigh quotient of (1,2) with equal weights is 1.5.
	if math.Abs(lambdas[0]-1.5) > 1e-9 {
		t.Fatalf("lambda = %v, want 1.5", lambdas[0])
	}
}

func TestDavidsonRejectsZeroNormGuess(t *testing.T) {
	a := operator.Diagonal(1, 2)
	phi0 := tensor.NewDense(2)
	if _, err := RealDavidson(a, []tensor.T{phi0}, DefaultOptions()); err == nil {
		t.Fatal("expected error for zero-norm guess")
	}
}

func TestDavidsonRejectsDimensionMismatch(t *testing.T) {
	a := operator.Diagonal(1, 2)
	phi0 := tensor.NewDenseFrom([]complex128{1, 1, 1})
	if _, err := RealDavidson(a, []tensor.T{phi0}, DefaultOptions()); err == nil {
		t.Fatal("expected error for dimension mismatch")
	}
}

func TestDavidsonNgetExceedsSizeTerminates(t *testing.T) {
	a := operator.Diagonal(1, 2)
	guesses := []tensor.T{randomGuess(2), randomGuess(2), randomGuess(2), randomGuess(2)}

	opts := DefaultOptions()
	opts.MaxIter = 5

	if _, err := RealDavidson(a, guesses, opts); err != nil {
		t.Fatal(err)
	}
}

func TestPowerMethodDominance(t *testing.T) {
	a := operator.Diagonal(10, 5, 3)
	vecs := []tensor.T{randomGuess(3), randomGuess(3), randomGuess(3)}

	lambdas := PowerMethod(a, vecs, DefaultOptions())
	want := []float64{10, 5, 3}
	for i, w := range want {
		if math.Abs(lambdas[i]-w) > 1e-3 {
			t.Fatalf("lambda[%d] = %v, want ~%v", i, lambdas[i], w)
		}
	}
}

func TestNonOrthDavidsonIdentityB(t *testing.T) {
	a := operator.Diagonal(2, 5, 9)
	b := operator.Diagonal(1, 1, 1)
	phi0 := tensor.NewDenseFrom([]complex128{1, 1, 1})

	opts := DefaultOptions()
	opts.MaxIter = 10

	lambda, phi, err := NonOrthDavidson(a, b, phi0, opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lambda-2) > 1e-3 {
		t.Fatalf("lambda = %v, want ~2", lambda)
	}
	if phi.Dim() != 3 {
		t.Fatalf("phi dim = %d, want 3", phi.Dim())
	}
}
