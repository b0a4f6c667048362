// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package operator defines the implicit-matrix interface the
// eigensolver core drives via matrix-vector products. Nothing in this
// package materializes the operator; A is only ever accessed through
// Product, Size and Diag.
package operator

import "github.com/curioloop/eigensolver/tensor"

// A is a large, sparse or implicitly-defined linear operator. If the
// solver is invoked with the Hermitian option, Product is assumed
// Hermitian; no check is performed.
type A interface {
	// Product writes A*x into out. out must have the same dimension
	// as x. Product must be linear in x.
	Product(x tensor.T, out tensor.T)
	// Size returns the linear dimension n of A.
	Size() int
	// Diag returns a tensor holding the diagonal entries of A, or a
	// null tensor (tensor.T.IsNull() true) if unavailable. A null
	// diagonal disables preconditioning; the solver still converges,
	// just more slowly.
	Diag() tensor.T
}
