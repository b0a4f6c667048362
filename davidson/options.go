// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package davidson

// Options configures a driver invocation. The zero value is a valid
// Options except for ErrGoal, which is silently treated as 1e-4 when
// non-positive: unlike MaxIter or Hermitian, a literal zero ErrGoal
// is not a meaningful convergence goal and has no corresponding
// boundary case to preserve. DefaultOptions returns the documented
// defaults for every field; start from it and override what you need.
type Options struct {
	// MaxIter is the number of outer iterations per target. A value
	// of 0 is a legal boundary case: the driver returns the initial
	// Rayleigh quotient without expanding the subspace.
	MaxIter int
	// MinIter floors the number of iterations accepted before
	// convergence is honored.
	MinIter int
	// ErrGoal is the convergence threshold on residual norm and on
	// Ritz-value change between iterations.
	ErrGoal float64
	// DebugLevel controls textual tracing; see LogOff/LogSummary/
	// LogIteration/LogTrace.
	DebugLevel LogLevel
	// Hermitian enables the Hermitian fast path. The product routine
	// is trusted, not checked.
	Hermitian bool
	// Logger receives the tracing. A non-nil Logger is used as given:
	// its own Level selects the tracing and DebugLevel is ignored. A
	// nil Logger means a standard-output Logger at DebugLevel; with
	// DebugLevel left at its zero value it is silent.
	Logger *Logger
}

// DefaultOptions returns {MaxIter: 2, MinIter: 1, ErrGoal: 1e-4,
// DebugLevel: LogOff, Hermitian: true}.
func DefaultOptions() Options {
	return Options{
		MaxIter:    2,
		MinIter:    1,
		ErrGoal:    1e-4,
		DebugLevel: LogOff,
		Hermitian:  true,
	}
}

func (o Options) errGoal() float64 {
	if o.ErrGoal > 0 {
		return o.ErrGoal
	}
	return 1e-4
}

func (o Options) logger() *Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return &Logger{Level: o.DebugLevel}
}
