// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package davidson implements the Davidson subspace-iteration
// eigensolver core: the outer state machine, its subspace engine,
// dense-projection bridge and deflated power method, driven entirely
// through the tensor and operator capability interfaces so the large
// operator A is never materialized.
package davidson

import (
	"math"

	"github.com/pkg/errors"

	"github.com/curioloop/eigensolver/operator"
	"github.com/curioloop/eigensolver/tensor"
)

// Eigenpair is one converged or harvested (eigenvalue, eigenvector)
// result from a Davidson driver invocation.
type Eigenpair struct {
	Lambda complex128
	Phi    tensor.T
}

// driver is the Davidson outer iteration state machine. It owns the
// subspace and walks targets t = 0..nget-1 by deflation through the
// Ritz index, exactly as a single flat loop over i with t advanced
// in place rather than a nested loop, so the iteration budget is
// shared across targets.
type driver struct {
	a       operator.A
	s       *subspace
	opts    Options
	nget    int
	results []Eigenpair
}

// Davidson computes the block of Ritz pairs Davidson(1975)-style for
// a possibly non-Hermitian A, returning complex eigenvalues. phi is
// mutated in place: phi[j] becomes (up to the usual sign convention)
// the converged or harvested Ritz vector for target j.
func Davidson(a operator.A, phi []tensor.T, opts Options) ([]complex128, error) {
	if err := validate(a, phi); err != nil {
		return nil, err
	}
	d := &driver{a: a, opts: opts, nget: len(phi)}
	d.s = newSubspace(a, opts.Hermitian, opts.logger())
	pairs, err := d.run(phi)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, len(pairs))
	for i, p := range pairs {
		out[i] = p.Lambda
		phi[i] = p.Phi
	}
	return out, nil
}

// ComplexDavidson is Davidson under a non-Hermitian assumption,
// returning the possibly-complex Ritz values directly rather than
// dropping their imaginary parts.
func ComplexDavidson(a operator.A, phi []tensor.T, opts Options) ([]complex128, error) {
	opts.Hermitian = false
	return Davidson(a, phi, opts)
}

// RealDavidson is the real-valued convenience wrapper over Davidson
// for the common Hermitian case: imaginary parts above 1e-12 are
// reported as a warning through the logger and then dropped.
func RealDavidson(a operator.A, phi []tensor.T, opts Options) ([]float64, error) {
	lambdas, err := Davidson(a, phi, opts)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(lambdas))
	log := opts.logger()
	for i, l := range lambdas {
		if math.Abs(imag(l)) > approx0 && log.enable(LogTrace) {
			log.log("davidson: dropping imaginary part %.3e of eigenvalue %d\n", imag(l), i)
		}
		out[i] = real(l)
	}
	return out, nil
}

func validate(a operator.A, phi []tensor.T) error {
	if len(phi) == 0 {
		return errors.New("davidson: no initial vectors passed")
	}
	n := a.Size()
	for j, p := range phi {
		if p.Dim() != n {
			return errors.Errorf("davidson: size of initial vector %d does not match operator size", j)
		}
		if p.Norm() == 0 {
			return errors.Errorf("davidson: norm of 0 in initial vector %d", j)
		}
	}
	return nil
}

func (d *driver) run(phi []tensor.T) ([]Eigenpair, error) {
	nget := d.nget
	n := d.a.Size()
	actualMaxIter := d.opts.MaxIter
	if m := n - 1; actualMaxIter > m {
		actualMaxIter = m
	}
	errGoal := d.opts.errGoal()
	log := d.opts.logger()

	eigs := make([]complex128, nget)
	vecs := make([]tensor.T, nget)

	v0 := phi[0].Clone()
	tensor.ScaleReal(v0, 1/v0.Norm())
	lambda0 := d.s.seed(v0)

	t := 0
	lastLambda := complex(1000, 0)
	eigs[0] = complex(lambda0, 0)
	vecs[0] = v0

	var qn float64
	done := false

	for i := 0; i <= actualMaxIter && !done; i++ {
		var phiT, q tensor.T
		var lambda complex128

		if i == 0 {
			phiT = v0
			q = d.s.AV[0].Clone()
			q.AddScaled(complex(-lambda0, 0), v0)
			lambda = complex(lambda0, 0)
		} else {
			var err error
			phiT, q, lambda, err = d.s.projectAndSelect(t)
			if err != nil {
				return nil, err
			}
			eigs[t] = lambda
			vecs[t] = phiT
		}

		qn = q.Norm()
		converged := (qn < errGoal && cAbs(lambda-lastLambda) < errGoal) ||
			qn < math.Max(approx0, errGoal*1e-3)
		lastLambda = lambda

		if log.enable(LogIteration) || (i == 0 && log.enable(LogSummary)) {
			log.out("davidson: iter %d target %d qnorm %.3e lambda %v\n", i, t, qn, lambda)
		}

		if qn < 1e-20 || (converged && i >= d.opts.MinIter) || i == actualMaxIter {
			if t < nget-1 && i < actualMaxIter {
				// Advance to the next target, but fall through to
				// precondition/orthogonalize/expand below using this
				// iteration's residual: the original has no
				// goto/continue here, so the subspace still grows by
				// one vector on every outer iteration except the
				// terminal exit.
				t++
				lastLambda = complex(1000, 0)
			} else {
				done = true
				continue
			}
		}

		if diag := d.a.Diag(); !diag.IsNull() {
			cond := diag.Clone()
			cond.MapReal(DavidsonPrecond(real(lambda)))
			q.DivElem(cond)
		}

		next, ok := d.s.orthogonalize(q)
		if !ok {
			done = true
			continue
		}
		d.s.expand(next)
	}

	// Harvest any targets the main loop never reached. ni caps how
	// many columns the last projection actually produced; a request
	// for nget beyond the operator's dimension leaves the excess
	// targets at their zero Eigenpair rather than indexing out of
	// bounds.
	ni := len(d.s.V)
	for j := t + 1; j < nget && j < ni; j++ {
		eigs[j] = complex(d.s.D[j], d.s.DI[j])
		phiJ := d.s.V[0].Clone()
		phiJ.Scale(complex(d.s.UR.At(0, j), valOrZero(d.s.UI, 0, j)))
		for k := 1; k < ni; k++ {
			phiJ.AddScaled(complex(d.s.UR.At(k, j), valOrZero(d.s.UI, k, j)), d.s.V[k])
		}
		vecs[j] = phiJ
	}

	out := make([]Eigenpair, nget)
	for j := 0; j < nget; j++ {
		out[j] = Eigenpair{Lambda: eigs[j], Phi: vecs[j]}
	}
	return out, nil
}

func cAbs(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}
