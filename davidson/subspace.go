// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package davidson

import (
	"math"

	"github.com/curioloop/eigensolver/denseeigen"
	"github.com/curioloop/eigensolver/operator"
	"github.com/curioloop/eigensolver/tensor"
)

// approx0 is the tolerance below which an imaginary part is treated
// as numerically zero when deciding whether a Ritz value or
// eigenvector is genuinely complex.
const approx0 = 1e-12

// subspace is the Krylov-like basis V, its image AV, and the
// projected matrix M = Vᴴ·A·V (stored split into real/imaginary
// parts) that the Davidson drivers expand and diagonalize each outer
// iteration. It owns the most recent Ritz spectrum (D, DI, UR, UI) so
// the driver can harvest unconverged targets after the main loop
// exits.
type subspace struct {
	a         operator.A
	hermitian bool
	n         int // a.Size(), the cap on basis growth

	V, AV []tensor.T
	MR, MI [][]float64

	complexDiag bool

	D, DI  []float64
	UR, UI *denseMatrix

	logger *Logger
}

// denseMatrix is a tiny column-major-agnostic wrapper so subspace
// doesn't have to carry a gonum import just to read At(i,j); it is
// filled from whatever denseeigen hands back.
type denseMatrix struct {
	data [][]float64
}

func (m *denseMatrix) At(i, j int) float64 {
	if m == nil || m.data == nil {
		return 0
	}
	return m.data[i][j]
}

func fromColumns(d [][]float64) *denseMatrix { return &denseMatrix{data: d} }

func newSubspace(a operator.A, hermitian bool, logger *Logger) *subspace {
	return &subspace{a: a, hermitian: hermitian, n: a.Size(), logger: logger}
}

// seed initializes the subspace from a single normalized vector: sets
// V[0], AV[0] and the 1x1 projected matrix. The returned lambda is the
// real part of <v0|A v0>; the imaginary part is kept in MI only on the
// non-Hermitian path.
func (s *subspace) seed(v0 tensor.T) (lambda float64) {
	av0 := v0.Clone()
	s.a.Product(v0, av0)
	z := v0.Inner(av0)
	lambda = real(z)
	s.V = []tensor.T{v0}
	s.AV = []tensor.T{av0}
	s.MR = [][]float64{{lambda}}
	s.MI = [][]float64{{0}}
	if !s.hermitian {
		s.MI[0][0] = imag(z)
		s.complexDiag = math.Abs(imag(z)) > approx0
	}
	return lambda
}

// expand appends q (already orthonormal against V) to the basis,
// computes its image and grows M with the new row and column.
func (s *subspace) expand(q tensor.T) {
	ni := len(s.V)
	av := q.Clone()
	s.a.Product(q, av)
	s.V = append(s.V, q)
	s.AV = append(s.AV, av)

	newColR := make([]float64, ni+1)
	newColI := make([]float64, ni+1)
	for k := 0; k <= ni; k++ {
		z := s.V[k].Inner(s.AV[ni])
		newColR[k] = real(z)
		newColI[k] = imag(z)
	}
	for i := 0; i < ni; i++ {
		s.MR[i] = append(s.MR[i], newColR[i])
		s.MI[i] = append(s.MI[i], newColI[i])
	}

	rowR := make([]float64, ni+1)
	rowI := make([]float64, ni+1)
	if s.hermitian {
		copy(rowR, newColR)
		for k := range newColI {
			rowI[k] = -newColI[k]
		}
	} else {
		for k := 0; k < ni; k++ {
			z := s.V[ni].Inner(s.AV[k])
			rowR[k] = real(z)
			rowI[k] = imag(z)
		}
		rowR[ni] = newColR[ni]
		rowI[ni] = newColI[ni]
	}
	s.MR = append(s.MR, rowR)
	s.MI = append(s.MI, rowI)

	if !s.complexDiag && normReal(newColI) > approx0 {
		s.complexDiag = true
	}
}

// projectAndSelect diagonalizes the current M, picks the target Ritz
// index for t (directly for the Hermitian path, via SelectRitz
// otherwise), and synthesizes the Ritz vector phi and residual q.
// D, DI, UR, UI are left populated on s for post-loop harvesting.
func (s *subspace) projectAndSelect(t int) (phi, q tensor.T, lambda complex128, err error) {
	ni := len(s.V)
	w, err := s.diagonalize(t, ni)
	if err != nil {
		return nil, nil, 0, err
	}

	phi = s.V[0].Clone()
	phi.Scale(complex(s.UR.At(0, w), valOrZero(s.UI, 0, w)))
	q = s.AV[0].Clone()
	q.Scale(complex(s.UR.At(0, w), valOrZero(s.UI, 0, w)))
	for k := 1; k < ni; k++ {
		cfac := complex(s.UR.At(k, w), valOrZero(s.UI, k, w))
		phi.AddScaled(cfac, s.V[k])
		q.AddScaled(cfac, s.AV[k])
	}

	lambda = complex(s.D[w], s.DI[w])
	if math.Abs(imag(lambda)) <= approx0 {
		q.AddScaled(complex(-real(lambda), 0), phi)
	} else {
		q.AddScaled(-lambda, phi)
	}

	if s.UR.At(0, w) < 0 {
		phi.Scale(-1)
		q.Scale(-1)
	}
	return phi, q, lambda, nil
}

func valOrZero(m *denseMatrix, i, j int) float64 {
	if m == nil {
		return 0
	}
	return m.At(i, j)
}

// diagonalize dispatches to the appropriate dense facade routine
// based on the Hermitian flag and the sticky complex_diag flag, and
// returns the selected Ritz index for target t.
func (s *subspace) diagonalize(t, ni int) (w int, err error) {
	if s.complexDiag {
		if s.hermitian {
			vals, vecsR, vecsI, ferr := denseeigen.ComplexHermitian(ni, s.MR, s.MI)
			if ferr != nil {
				return 0, ferr
			}
			s.D = vals
			s.DI = make([]float64, ni)
			s.UR = fromColumns(denseToColumns(vecsR, ni))
			s.UI = fromColumns(denseToColumns(vecsI, ni))
			w = t
		} else {
			dr, di, vecsR, vecsI, ferr := denseeigen.ComplexGeneral(ni, s.MR, s.MI)
			if ferr != nil {
				return 0, ferr
			}
			s.D, s.DI = dr, di
			s.UR = fromColumns(denseToColumns(vecsR, ni))
			s.UI = fromColumns(denseToColumns(vecsI, ni))
			w = SelectRitz(dr, di, t)
		}
	} else {
		if s.hermitian {
			vals, vecs, ferr := denseeigen.RealSymmetric(s.MR)
			if ferr != nil {
				return 0, ferr
			}
			s.D = vals
			s.DI = make([]float64, ni)
			s.UR = fromColumns(denseToColumns(vecs, ni))
			s.UI = nil
			w = t
		} else {
			dr, di, vecsR, vecsI, ferr := denseeigen.RealGeneral(s.MR)
			if ferr != nil {
				return 0, ferr
			}
			s.D, s.DI = dr, di
			s.UR = fromColumns(denseToColumns(vecsR, ni))
			s.UI = fromColumns(denseToColumns(vecsI, ni))
			w = SelectRitz(dr, di, t)
		}
	}
	return w, nil
}

// orthogonalize runs one pass of modified Gram-Schmidt of q against
// the current basis, normalizes, and on breakdown randomizes and
// retries up to 3 times. ok is false if the basis has saturated the
// full operator dimension or randomization keeps failing; the driver
// treats that as an early-but-successful exit.
func (s *subspace) orthogonalize(q tensor.T) (out tensor.T, ok bool) {
	ni := len(s.V)
	const npass = 1
	count := 0
	for pass := 0; pass < npass; pass++ {
		for k := 0; k < ni; k++ {
			c := s.V[k].Inner(q)
			q.AddScaled(-c, s.V[k])
		}
		qn := q.Norm()
		if qn < 1e-10 {
			count++
			if s.logger.enable(LogIteration) {
				s.logger.log("davidson: vector not independent, randomizing\n")
			}
			q = s.V[ni-1].Clone()
			q.Randomize()
			if ni >= s.n {
				return nil, false
			}
			if count > npass*3 {
				return nil, false
			}
			pass--
			continue
		}
		tensor.ScaleReal(q, 1/qn)
	}
	return q, true
}

func normReal(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

// denseToColumns copies the leading n x n block of a gonum *mat.Dense
// into a [][]float64 indexed [row][col], matching denseMatrix.At's
// (i, j) = row, col convention.
func denseToColumns(m matAt, n int) [][]float64 {
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// matAt is satisfied by *mat.Dense; declared locally so this file
// doesn't need to import gonum just to name the parameter type.
type matAt interface {
	At(i, j int) float64
}
