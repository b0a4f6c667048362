// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operator

import "github.com/curioloop/eigensolver/tensor"

// Dense is a reference operator backed by an explicit dense complex
// matrix, row-major. It exists for tests and small toy problems; any
// real user of the solver is expected to supply an operator whose
// Product routine never materializes A.
type Dense struct {
	n    int
	data []complex128 // row-major n*n
	diag tensor.T
}

// NewDense builds a Dense operator from a row-major matrix.
func NewDense(n int, data []complex128) *Dense {
	d := &Dense{n: n, data: data}
	diag := tensor.NewDense(n)
	for i := 0; i < n; i++ {
		diag.Data()[i] = data[i*n+i]
	}
	d.diag = diag
	return d
}

func (d *Dense) Product(x tensor.T, out tensor.T) {
	xv := x.(*tensor.Dense).Data()
	ov := out.(*tensor.Dense).Data()
	for i := 0; i < d.n; i++ {
		var s complex128
		row := d.data[i*d.n : i*d.n+d.n]
		for j, a := range row {
			s += a * xv[j]
		}
		ov[i] = s
	}
}

func (d *Dense) Size() int { return d.n }

func (d *Dense) Diag() tensor.T { return d.diag }

// Diagonal builds a Dense operator whose matrix is diagonal with the
// given real entries, e.g. for A = diag(1,2,...).
func Diagonal(values ...float64) *Dense {
	n := len(values)
	data := make([]complex128, n*n)
	for i, v := range values {
		data[i*n+i] = complex(v, 0)
	}
	return NewDense(n, data)
}

// Tridiagonal builds a Dense operator with the given diagonal and
// symmetric off-diagonal (same value on both sub/super diagonals),
// e.g. the harmonic-oscillator toy problem of spec.md §8 scenario 2.
func Tridiagonal(diagVals []float64, off float64) *Dense {
	n := len(diagVals)
	data := make([]complex128, n*n)
	for i, v := range diagVals {
		data[i*n+i] = complex(v, 0)
		if i+1 < n {
			data[i*n+i+1] = complex(off, 0)
			data[(i+1)*n+i] = complex(off, 0)
		}
	}
	return NewDense(n, data)
}

// NoDiag wraps an operator and hides its diagonal, exercising the
// null-diagonal / skip-preconditioning path.
type NoDiag struct {
	A
}

func (n NoDiag) Diag() tensor.T { return tensor.NullDense() }
