// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package denseeigen

import (
	"math"
	"testing"
)

func TestRealSymmetric(t *testing.T) {
	// diag(3, 1, 2) ascending -> 1, 2, 3
	m := [][]float64{
		{3, 0, 0},
		{0, 1, 0},
		{0, 0, 2},
	}
	vals, vecs, err := RealSymmetric(m)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3}
	for i, w := range want {
		if math.Abs(vals[i]-w) > 1e-9 {
			t.Fatalf("eigenvalue %d = %v, want %v", i, vals[i], w)
		}
	}
	r, c := vecs.Dims()
	if r != 3 || c != 3 {
		t.Fatalf("vecs dims = %d,%d want 3,3", r, c)
	}
}

func TestRealGeneralRealSpectrum(t *testing.T) {
	m := [][]float64{
		{2, 1},
		{0, 3},
	}
	dr, di, _, _, err := RealGeneral(m)
	if err != nil {
		t.Fatal(err)
	}
	for i, im := range di {
		if math.Abs(im) > 1e-9 {
			t.Fatalf("eigenvalue %d has nonzero imaginary part %v", i, im)
		}
	}
	got := map[float64]bool{}
	for _, v := range dr {
		got[math.Round(v*1e6)/1e6] = true
	}
	if !got[2] || !got[3] {
		t.Fatalf("eigenvalues = %v, want {2,3}", dr)
	}
}

func TestComplexHermitian(t *testing.T) {
	// [[1, i],[-i, 1]] is Hermitian with eigenvalues 0 and 2.
	re := [][]float64{{1, 0}, {0, 1}}
	im := [][]float64{{0, 1}, {-1, 0}}
	vals, vecsR, vecsI, err := ComplexHermitian(2, re, im)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(vals[0]-0) > 1e-9 || math.Abs(vals[1]-2) > 1e-9 {
		t.Fatalf("eigenvalues = %v, want [0 2]", vals)
	}
	// Check A v = lambda v for the lambda=2 eigenvector.
	v0r, v1r := vecsR.At(0, 1), vecsR.At(1, 1)
	v0i, v1i := vecsI.At(0, 1), vecsI.At(1, 1)
	// row 0: 1*v0 + i*v1
	lhsRe := 1*v0r - 1*v1i
	lhsIm := 1*v0i + 1*v1r
	if math.Abs(lhsRe-2*v0r) > 1e-7 || math.Abs(lhsIm-2*v0i) > 1e-7 {
		t.Fatalf("A v != lambda v: lhs=(%v,%v) want (%v,%v)", lhsRe, lhsIm, 2*v0r, 2*v0i)
	}
}

func TestGeneralizedIdentityB(t *testing.T) {
	a := [][]float64{
		{2, 0},
		{0, 5},
	}
	b := [][]float64{
		{1, 0},
		{0, 1},
	}
	dr, di, _, err := Generalized(a, b)
	if err != nil {
		t.Fatal(err)
	}
	for i, im := range di {
		if math.Abs(im) > 1e-7 {
			t.Fatalf("eigenvalue %d has nonzero imaginary part %v", i, im)
		}
	}
	got := map[float64]bool{}
	for _, v := range dr {
		got[math.Round(v*1e6)/1e6] = true
	}
	if !got[2] || !got[5] {
		t.Fatalf("eigenvalues = %v, want {2,5}", dr)
	}
}

func TestGeneralizedNotPositiveDefinite(t *testing.T) {
	a := [][]float64{{1, 0}, {0, 1}}
	b := [][]float64{{0, 0}, {0, 1}}
	_, _, _, err := Generalized(a, b)
	if err == nil {
		t.Fatal("expected error for non positive definite B")
	}
}
