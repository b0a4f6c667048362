// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package davidson

// SelectRitz picks the index of the `num`-th (zero-based) largest
// modulus among the complex pairs (dr[i], di[i]). It seeds on the
// global maximum and then repeatedly displaces downward to the next
// strictly smaller modulus, so num=0 is the dominant Ritz value and
// increasing num walks the spectrum in decreasing-modulus order. Ties
// favor the earlier index: the inner scan only ever replaces on a
// strict improvement.
func SelectRitz(dr, di []float64, num int) int {
	l := len(dr)
	modulus := make([]float64, l)
	maxVal := -1.0
	w := -1
	for i := 0; i < l; i++ {
		modulus[i] = dr[i]*dr[i] + di[i]*di[i]
		if modulus[i] > maxVal {
			maxVal = modulus[i]
			w = i
		}
	}
	for j := 0; j < num; j++ {
		nextMax := -1.0
		for i := 0; i < l; i++ {
			if modulus[i] > nextMax && modulus[i] < maxVal {
				nextMax = modulus[i]
				w = i
			}
		}
		maxVal = nextMax
	}
	return w
}
