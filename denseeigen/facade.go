// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package denseeigen is the thin facade the Davidson core calls into
// to diagonalize the small projected matrices it builds. It does not
// reimplement dense linear algebra: the real work is done by
// gonum.org/v1/gonum/mat, which is the dense-eigendecomposition layer
// this pack's own gonum/lapack tree already standardizes on. This
// package's job is only to adapt gonum's real-valued API to the four
// shapes the core needs (real symmetric, complex Hermitian, real
// general, complex general) and to fail loudly when gonum does.
package denseeigen

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrFactorizeFailed is wrapped into the error returned whenever the
// underlying gonum factorization does not converge.
var ErrFactorizeFailed = errors.New("denseeigen: dense eigendecomposition did not converge")

// RealSymmetric diagonalizes a real symmetric matrix. Eigenvalues are
// ascending; vecs has the corresponding eigenvectors as columns.
func RealSymmetric(mr [][]float64) (vals []float64, vecs *mat.Dense, err error) {
	n := len(mr)
	flat := make([]float64, n*n)
	for i, row := range mr {
		copy(flat[i*n:i*n+n], row)
	}
	sym := mat.NewSymDense(n, flat)

	var es mat.EigenSym
	if !es.Factorize(sym, true) {
		return nil, nil, errors.Wrap(ErrFactorizeFailed, "real symmetric")
	}
	vals = es.Values(nil)
	vecs = mat.NewDense(n, n, nil)
	es.VectorsTo(vecs)
	return
}

// RealGeneral diagonalizes a real, not-necessarily-symmetric matrix.
// Eigenvalues may be complex and are returned split into real/imag
// parts; eigenvectors are split the same way. No ordering guarantee
// is made (the Ritz Selector in the davidson package imposes one).
func RealGeneral(mr [][]float64) (dr, di []float64, vecsR, vecsI *mat.Dense, err error) {
	n := len(mr)
	flat := make([]float64, n*n)
	for i, row := range mr {
		copy(flat[i*n:i*n+n], row)
	}
	m := mat.NewDense(n, n, flat)

	var e mat.Eigen
	if !e.Factorize(m, mat.EigenRight) {
		return nil, nil, nil, nil, errors.Wrap(ErrFactorizeFailed, "real general")
	}
	vecs := mat.NewCDense(n, n, nil)
	e.VectorsTo(vecs)
	return splitEigen(n, e.Values(nil), vecs)
}

func splitEigen(n int, vals []complex128, vecs *mat.CDense) (dr, di []float64, vecsR, vecsI *mat.Dense, err error) {
	dr = make([]float64, n)
	di = make([]float64, n)
	for i, v := range vals {
		dr[i] = real(v)
		di[i] = imag(v)
	}
	vecsR = mat.NewDense(n, n, nil)
	vecsI = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			z := vecs.At(i, j)
			vecsR.Set(i, j, real(z))
			vecsI.Set(i, j, imag(z))
		}
	}
	return
}
