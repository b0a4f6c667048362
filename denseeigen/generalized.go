// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package denseeigen

import (
	"math"

	"github.com/pkg/errors"
)

// ErrNotPositiveDefinite is returned by Generalized when B fails its
// Cholesky factorization, i.e. is not positive definite as the
// generalized Davidson driver requires.
var ErrNotPositiveDefinite = errors.New("denseeigen: B is not positive definite")

// Generalized solves the small dense generalized eigenproblem
// A phi = lambda B phi for real, not-necessarily-symmetric m x m
// matrices, with B assumed positive definite. It reduces to a
// standard problem via B's Cholesky factor B = L L^T:
//
//	C = L^-1 A L^-T,  C y = lambda y,  phi = L^-T y
//
// The reduction itself is a small hand-rolled Cholesky and pair of
// triangular solves (m here is the current subspace size, at most a
// few dozen); the eigendecomposition of C is delegated to
// RealGeneral. Returns the eigenvalues and eigenvectors (columns of
// vecs) of the reduced-then-restored problem, unsorted.
func Generalized(a, b [][]float64) (dr, di []float64, vecs [][]float64, err error) {
	m := len(a)
	l, err := cholesky(b)
	if err != nil {
		return nil, nil, nil, err
	}

	// X = L^-1 A, solving L X = A column by column.
	x := make([][]float64, m)
	for i := range x {
		x[i] = make([]float64, m)
	}
	col := make([]float64, m)
	for j := 0; j < m; j++ {
		for i := 0; i < m; i++ {
			col[i] = a[i][j]
		}
		solved := forwardSubstitute(l, col)
		for i := 0; i < m; i++ {
			x[i][j] = solved[i]
		}
	}

	// C = X L^-T, i.e. each row of C, as a column, solves
	// L (C row)^T = (X row)^T.
	c := make([][]float64, m)
	for i := range c {
		c[i] = make([]float64, m)
	}
	for i := 0; i < m; i++ {
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			row[j] = x[i][j]
		}
		solved := forwardSubstitute(l, row)
		for j := 0; j < m; j++ {
			c[i][j] = solved[j]
		}
	}

	dr, di, vecsR, _, ferr := RealGeneral(c)
	if ferr != nil {
		return nil, nil, nil, ferr
	}

	// phi = L^-T y for each eigenvector column y.
	vecs = make([][]float64, m)
	for i := range vecs {
		vecs[i] = make([]float64, m)
	}
	for k := 0; k < m; k++ {
		y := make([]float64, m)
		for i := 0; i < m; i++ {
			y[i] = vecsR.At(i, k)
		}
		phi := backSubstituteTranspose(l, y)
		for i := 0; i < m; i++ {
			vecs[i][k] = phi[i]
		}
	}
	return dr, di, vecs, nil
}

// cholesky computes the lower-triangular factor of a symmetric
// positive definite matrix, b = l l^T.
func cholesky(b [][]float64) (l [][]float64, err error) {
	m := len(b)
	l = make([][]float64, m)
	for i := range l {
		l[i] = make([]float64, m)
	}
	for i := 0; i < m; i++ {
		for j := 0; j <= i; j++ {
			sum := b[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 0 {
					return nil, ErrNotPositiveDefinite
				}
				l[i][j] = math.Sqrt(sum)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	return l, nil
}

// forwardSubstitute solves l*x = rhs for lower-triangular l.
func forwardSubstitute(l [][]float64, rhs []float64) []float64 {
	m := len(l)
	x := make([]float64, m)
	for i := 0; i < m; i++ {
		sum := rhs[i]
		for k := 0; k < i; k++ {
			sum -= l[i][k] * x[k]
		}
		x[i] = sum / l[i][i]
	}
	return x
}

// backSubstituteTranspose solves l^T*x = rhs for lower-triangular l.
func backSubstituteTranspose(l [][]float64, rhs []float64) []float64 {
	m := len(l)
	x := make([]float64, m)
	for i := m - 1; i >= 0; i-- {
		sum := rhs[i]
		for k := i + 1; k < m; k++ {
			sum -= l[k][i] * x[k]
		}
		x[i] = sum / l[i][i]
	}
	return x
}
