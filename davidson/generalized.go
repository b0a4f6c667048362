// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package davidson

import (
	"math"

	"github.com/pkg/errors"

	"github.com/curioloop/eigensolver/denseeigen"
	"github.com/curioloop/eigensolver/operator"
	"github.com/curioloop/eigensolver/tensor"
)

// NonOrthDavidson solves the generalized eigenvalue problem
// A phi = lambda B phi for the smallest real lambda, with B assumed
// positive definite. Unlike the main Davidson driver it does not
// B-orthogonalize new basis directions: any residual
// non-orthogonality is absorbed into N = Vᴴ B V on the next
// projection, which is cheaper than a second set of operator
// applications per step.
func NonOrthDavidson(a, b operator.A, phi0 tensor.T, opts Options) (lambda float64, phi tensor.T, err error) {
	n := a.Size()
	if phi0.Dim() != n {
		return 0, nil, errors.New("davidson: size of initial vector does not match operator size")
	}
	if phi0.Norm() == 0 {
		return 0, nil, errors.New("davidson: norm of 0 in initial vector")
	}
	errGoal := opts.errGoal()
	log := opts.logger()

	actualMaxIter := opts.MaxIter
	if actualMaxIter > n {
		actualMaxIter = n
	}

	bphi := phi0.Clone()
	b.Product(phi0, bphi)
	phiBphi := real(phi0.Inner(bphi))

	v0 := phi0.Clone()
	tensor.ScaleReal(v0, 1/math.Sqrt(phiBphi))

	av0 := v0.Clone()
	a.Product(v0, av0)
	bv0 := v0.Clone()
	b.Product(v0, bv0)

	V := []tensor.T{v0}
	AV := []tensor.T{av0}
	BV := []tensor.T{bv0}
	MR := [][]float64{{real(v0.Inner(av0))}}
	NR := [][]float64{{real(v0.Inner(bv0))}}

	lambda = MR[0][0] / (NR[0][0] + 1e-33)
	lastLambda := lambda

	var U [][]float64
	idx := 0

	for i := 0; i < actualMaxIter; i++ {
		var q tensor.T
		if i == 0 {
			q = AV[0].Clone()
			q.AddScaled(complex(-lambda, 0), BV[0])
		} else {
			dr, di, vecs, ferr := denseeigen.Generalized(MR, NR)
			if ferr != nil {
				return 0, nil, ferr
			}
			idx = smallestRealRitz(dr, di)
			lambda = dr[idx]
			U = vecs

			// Every k contributes: q accumulates the full sum
			// U[k][idx]*(AV[k] - lambda*BV[k]) rather than keeping only
			// the last term (see DESIGN.md, davidson/generalized.go).
			for k := range V {
				term := AV[k].Clone()
				term.AddScaled(complex(-lambda, 0), BV[k])
				term.Scale(complex(U[k][idx], 0))
				if q == nil {
					q = term
				} else {
					q.AddScaled(1, term)
				}
			}
		}

		qn := q.Norm()
		if (qn < errGoal && math.Abs(lambda-lastLambda) < errGoal) || qn < 1e-12 {
			break
		}
		lastLambda = lambda

		if log.enable(LogIteration) || (i == 0 && log.enable(LogSummary)) {
			log.out("nonOrthDavidson: iter %d qnorm %.3e lambda %.10f\n", i, qn, lambda)
		}

		if i+1 >= actualMaxIter {
			continue
		}

		d := q.Clone()
		tensor.ScaleReal(d, 1/(d.Norm()+1e-33))

		avNew := d.Clone()
		a.Product(d, avNew)
		bvNew := d.Clone()
		b.Product(d, bvNew)

		if len(V) > 1 {
			if real(V[1].Inner(bvNew)) < 0 {
				tensor.ScaleReal(bvNew, -1)
				tensor.ScaleReal(avNew, -1)
				tensor.ScaleReal(d, -1)
			}
		}

		expandGeneralized(&V, &AV, &BV, &MR, &NR, d, avNew, bvNew)
	}

	if U == nil {
		phi = V[0].Clone()
	} else {
		phi = V[0].Clone()
		phi.Scale(complex(U[0][idx], 0))
		for k := 1; k < len(V); k++ {
			phi.AddScaled(complex(U[k][idx], 0), V[k])
		}
	}
	return lambda, phi, nil
}

// expandGeneralized appends d (and its A/B images) to the basis and
// grows M, N with the new row and column. Row is set equal to column
// (M, N are treated as symmetric, consistent with A, B both being
// assumed Hermitian in the generalized setting) rather than computed
// by a second set of inner products.
func expandGeneralized(V, AV, BV *[]tensor.T, MR, NR *[][]float64, d, avNew, bvNew tensor.T) {
	ni := len(*V)
	*V = append(*V, d)
	*AV = append(*AV, avNew)
	*BV = append(*BV, bvNew)

	newColM := make([]float64, ni+1)
	newColN := make([]float64, ni+1)
	for k := 0; k <= ni; k++ {
		newColM[k] = real((*V)[k].Inner(avNew))
		newColN[k] = real((*V)[k].Inner(bvNew))
	}
	for i := 0; i < ni; i++ {
		(*MR)[i] = append((*MR)[i], newColM[i])
		(*NR)[i] = append((*NR)[i], newColN[i])
	}
	*MR = append(*MR, newColM)
	*NR = append(*NR, newColN)
}

func smallestRealRitz(dr, di []float64) int {
	const tol = 1e-8
	best := -1
	for i := range dr {
		if math.Abs(di[i]) > tol {
			continue
		}
		if best == -1 || dr[i] < dr[best] {
			best = i
		}
	}
	if best == -1 {
		for i := range dr {
			if best == -1 || math.Abs(di[i]) < math.Abs(di[best]) {
				best = i
			}
		}
	}
	return best
}
