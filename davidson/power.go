// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package davidson

import (
	"math"

	"github.com/curioloop/eigensolver/operator"
	"github.com/curioloop/eigensolver/tensor"
)

// powerMaxIter bounds the inner iteration count per eigenvector; it
// is not configurable, matching the fixed cap the power method has
// always used.
const powerMaxIter = 1000

// PowerMethod runs a deflated power iteration to find the nget
// largest-modulus eigenvalues of a, each reported as the norm of A
// applied to the normalized iterate (so always non-negative), using vecs as the
// initial guesses (mutated in place into the converged eigenvectors,
// up to normalization). It assumes A has a dominant real spectrum and
// needs neither diag(A) nor a dense eigensolver.
func PowerMethod(a operator.A, vecs []tensor.T, opts Options) []float64 {
	nget := len(vecs)
	errGoal := opts.errGoal()
	log := opts.logger()

	eigs := make([]float64, nget)
	for i := range eigs {
		eigs[i] = 1000
	}

	for t := 0; t < nget; t++ {
		v := vecs[t]
		tensor.ScaleReal(v, 1/v.Norm())
		lastLambda := 1000.0

		for ii := 1; ii <= powerMaxIter; ii++ {
			vp := v.Clone()
			a.Product(v, vp)

			for j := 0; j < t; j++ {
				c := vecs[j].Inner(v)
				vp.AddScaled(-complex(eigs[j], 0)*c, vecs[j])
			}
			v = vp

			lastLambda = eigs[t]
			eigs[t] = v.Norm()
			tensor.ScaleReal(v, 1/eigs[t])

			if log.enable(LogSummary) {
				log.out("power: target %d iter %d lambda %.10f\n", t, ii, eigs[t])
			}
			if math.Abs(eigs[t]-lastLambda) < errGoal {
				break
			}
		}
		vecs[t] = v
	}
	return eigs
}
