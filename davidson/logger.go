// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package davidson

import (
	"fmt"
	"io"
	"os"
)

// LogLevel controls the verbosity of the drivers' textual tracing.
type LogLevel int

const (
	// LogOff disables all tracing.
	LogOff LogLevel = -1
	// LogSummary prints the energy/residual line of the first
	// iteration of Davidson and NonOrthDavidson, and the line of every
	// iteration of PowerMethod. No final summary is printed.
	LogSummary LogLevel = 1
	// LogIteration prints the energy/residual line of every iteration
	// and Gram-Schmidt breakdown notices. The subspace size is not
	// printed.
	LogIteration LogLevel = 2
	// LogTrace additionally prints RealDavidson's notice when it drops
	// an imaginary part. The complex_diag flag, the Ritz spectrum and
	// orthogonality checks are not printed at any level.
	LogTrace LogLevel = 3
)

// Logger handles the drivers' optional textual tracing. The zero
// value is silent. Msg carries human-readable trace lines (breakdown
// warnings, dropped-imaginary-part notices); Out carries the
// tabular per-iteration energy/residual data, so a caller can redirect
// the two independently.
type Logger struct {
	Level LogLevel
	Msg   io.Writer
	Out   io.Writer
}

func (l *Logger) enable(level LogLevel) bool {
	return l != nil && l.Level >= level
}

func (l *Logger) msgWriter() io.Writer {
	if l.Msg != nil {
		return l.Msg
	}
	return os.Stdout
}

func (l *Logger) outWriter() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

// log writes a human-readable trace line.
func (l *Logger) log(format string, a ...any) {
	if l == nil {
		return
	}
	if len(a) > 0 {
		_, _ = fmt.Fprintf(l.msgWriter(), format, a...)
	} else {
		_, _ = fmt.Fprint(l.msgWriter(), format)
	}
}

// out writes a tabular per-iteration data line.
func (l *Logger) out(format string, a ...any) {
	if l == nil {
		return
	}
	if len(a) > 0 {
		_, _ = fmt.Fprintf(l.outWriter(), format, a...)
	} else {
		_, _ = fmt.Fprint(l.outWriter(), format)
	}
}
