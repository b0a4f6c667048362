// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package davidson

// DavidsonPrecond returns the diagonal-shift functor f(x) = 1/(θ−x),
// the diagonal approximation to (θI − A)⁻¹ used to precondition a
// Davidson residual. f(θ) = 0 rather than +Inf.
func DavidsonPrecond(theta float64) func(float64) float64 {
	return func(x float64) float64 {
		if theta == x {
			return 0
		}
		return 1.0 / (theta - x)
	}
}

// LanczosPrecond returns a Lanczos-style alternative to
// DavidsonPrecond: a constant shift independent of x. Unused by any
// driver in this package; kept only in case a caller outside the
// core wants to plug it in as an alternative to DavidsonPrecond.
func LanczosPrecond(theta float64) func(float64) float64 {
	return func(float64) float64 {
		return 1.0 / (theta - 1 + 1e-33)
	}
}
