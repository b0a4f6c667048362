// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
)

// Dense is a flat complex128-backed implementation of T. It exists
// mainly as a reference and as the fixture used by the solver tests;
// production callers with a tensor-network or block-sparse
// representation implement T directly over their own storage.
type Dense struct {
	data []complex128
	null bool
}

// NewDense allocates a zeroed Dense tensor of the given dimension.
func NewDense(n int) *Dense {
	return &Dense{data: make([]complex128, n)}
}

// NewDenseFrom wraps an existing slice without copying.
func NewDenseFrom(data []complex128) *Dense {
	return &Dense{data: data}
}

// NullDense returns the sentinel "absent" tensor used in place of a
// missing operator diagonal.
func NullDense() *Dense {
	return &Dense{null: true}
}

// Data exposes the backing slice for callers that need direct access
// (e.g. to seed a reference operator's product routine).
func (d *Dense) Data() []complex128 { return d.data }

func (d *Dense) AddScaled(alpha complex128, x T) {
	o := x.(*Dense)
	for i := range d.data {
		d.data[i] += alpha * o.data[i]
	}
}

func (d *Dense) Scale(alpha complex128) {
	for i := range d.data {
		d.data[i] *= alpha
	}
}

func (d *Dense) Norm() float64 {
	var s float64
	for _, v := range d.data {
		s += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(s)
}

func (d *Dense) Inner(x T) complex128 {
	o := x.(*Dense)
	var s complex128
	for i, v := range d.data {
		s += cmplx.Conj(v) * o.data[i]
	}
	return s
}

func (d *Dense) DivElem(x T) {
	o := x.(*Dense)
	for i := range d.data {
		d.data[i] /= o.data[i]
	}
}

func (d *Dense) MapReal(f func(float64) float64) {
	for i, v := range d.data {
		d.data[i] = complex(f(real(v)), f(imag(v)))
	}
}

func (d *Dense) Randomize() {
	for i := range d.data {
		d.data[i] = complex(rand.NormFloat64(), rand.NormFloat64())
	}
}

func (d *Dense) IsNull() bool { return d.null }

func (d *Dense) Dim() int { return len(d.data) }

func (d *Dense) Clone() T {
	cp := make([]complex128, len(d.data))
	copy(cp, d.data)
	return &Dense{data: cp}
}

