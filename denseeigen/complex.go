// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package denseeigen

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// complexToReal embeds an n x n complex matrix C = A + iB as the
// 2n x 2n real matrix R = [[A, -B], [B, A]]. If C is Hermitian, R is
// symmetric and its spectrum is C's spectrum with every eigenvalue
// appearing twice. If C is not Hermitian, R's spectrum is C's spectrum union
// its complex conjugate. Either way R's eigenvectors recover C's
// eigenvectors; see realPairToComplexVector and the case split in
// ComplexGeneral.
func complexToReal(n int, re, im [][]float64) [][]float64 {
	r := make([][]float64, 2*n)
	for i := range r {
		r[i] = make([]float64, 2*n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r[i][j] = re[i][j]
			r[i][n+j] = -im[i][j]
			r[n+i][j] = im[i][j]
			r[n+i][n+j] = re[i][j]
		}
	}
	return r
}

// ComplexHermitian diagonalizes an n x n complex Hermitian matrix
// given as separate real and imaginary parts. Eigenvalues come back
// real and ascending (duplicates collapsed: the 2n-sized real
// embedding produces every eigenvalue twice). vecsR/vecsI are n x n
// with eigenvectors as columns, recovered via the p+iq rule below.
func ComplexHermitian(n int, re, im [][]float64) (vals []float64, vecsR, vecsI *mat.Dense, err error) {
	embedded := complexToReal(n, re, im)
	rawVals, rawVecs, ferr := RealSymmetric(embedded)
	if ferr != nil {
		return nil, nil, nil, ferr
	}

	vals = make([]float64, n)
	vecsR = mat.NewDense(n, n, nil)
	vecsI = mat.NewDense(n, n, nil)
	for k := 0; k < n; k++ {
		// rawVals is ascending with each eigenvalue repeated twice
		// (degenerate pair); take every other one.
		vals[k] = rawVals[2*k]
		p := make([]float64, n)
		q := make([]float64, n)
		for i := 0; i < n; i++ {
			p[i] = rawVecs.At(i, 2*k)
			q[i] = rawVecs.At(n+i, 2*k)
		}
		normalizeComplexVector(p, q)
		for i := 0; i < n; i++ {
			vecsR.Set(i, k, p[i])
			vecsI.Set(i, k, q[i])
		}
	}
	return
}

// ComplexGeneral diagonalizes an n x n complex matrix, not assumed
// Hermitian, given as separate real and imaginary parts.
func ComplexGeneral(n int, re, im [][]float64) (dr, di []float64, vecsR, vecsI *mat.Dense, err error) {
	embedded := complexToReal(n, re, im)
	rawDr, rawDi, rawVecsR, rawVecsI, ferr := RealGeneral(embedded)
	if ferr != nil {
		return nil, nil, nil, nil, ferr
	}

	dr = make([]float64, n)
	di = make([]float64, n)
	vecsR = mat.NewDense(n, n, nil)
	vecsI = mat.NewDense(n, n, nil)

	// The 2n real embedding produces C's spectrum union its conjugate.
	// Walk raw eigenpairs and keep one representative per conjugate
	// pair, preferring non-negative imaginary part.
	used := make([]bool, 2*n)
	k := 0
	const tol = 1e-9
	for a := 0; a < 2*n && k < n; a++ {
		if used[a] {
			continue
		}
		if rawDi[a] < -tol {
			// conjugate of some later eigenvalue; skip, it'll be
			// picked up when we hit its positive-imaginary partner.
			continue
		}
		used[a] = true
		dr[k] = rawDr[a]
		di[k] = rawDi[a]

		if rawDi[a] > tol {
			// Genuinely complex eigenvalue: w_R = [v; -iv], so v is
			// the top half of the raw complex eigenvector directly.
			for i := 0; i < n; i++ {
				vecsR.Set(i, k, rawVecsR.At(i, a))
				vecsI.Set(i, k, rawVecsI.At(i, a))
			}
			// mark its conjugate partner used too, if present.
			for b := a + 1; b < 2*n; b++ {
				if !used[b] && abs64(rawDr[b]-rawDr[a]) < tol && abs64(rawDi[b]+rawDi[a]) < tol {
					used[b] = true
					break
				}
			}
		} else {
			// Real eigenvalue: appears with multiplicity 2 in the
			// embedding (R has [v_re; v_im] and a second independent
			// real eigenvector for the same eigenvalue). Either one
			// already satisfies R w = lambda w with w = [p; q], so
			// v = p + iq recovers C's eigenvector without needing the
			// degenerate partner; just mark it used so it isn't
			// double-counted as a distinct eigenvalue.
			for b := a + 1; b < 2*n; b++ {
				if !used[b] && abs64(rawDr[b]-rawDr[a]) < tol && abs64(rawDi[b]) < tol {
					used[b] = true
					break
				}
			}
			p := make([]float64, n)
			q := make([]float64, n)
			for i := 0; i < n; i++ {
				p[i] = rawVecsR.At(i, a)
				q[i] = rawVecsR.At(n+i, a)
			}
			normalizeComplexVector(p, q)
			for i := 0; i < n; i++ {
				vecsR.Set(i, k, p[i])
				vecsI.Set(i, k, q[i])
			}
		}
		k++
	}
	return
}

func normalizeComplexVector(p, q []float64) {
	var norm float64
	for i := range p {
		norm += p[i]*p[i] + q[i]*q[i]
	}
	if norm == 0 {
		return
	}
	norm = 1 / math.Sqrt(norm)
	for i := range p {
		p[i] *= norm
		q[i] *= norm
	}
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
