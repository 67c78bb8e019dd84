// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package cliutil contains helpers shared by the command line tools.
package cliutil

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProgramName returns the name the program was invoked as.
func ProgramName(arg0 string) string {
	// handle both separators, a Windows path might be passed on any platform
	if idx := strings.LastIndexAny(arg0, `/\`); idx != -1 {
		return arg0[idx+1:]
	}

	return arg0
}

// NewLogger builds the console logger used for diagnostics.
//
// Messages are written to w prefixed with the level and the program name.
func NewLogger(w io.Writer, name string, verbose bool) *zap.Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.TimeKey = ""
	config.CallerKey = ""
	config.StacktraceKey = ""
	config.EncodeLevel = zapcore.LowercaseLevelEncoder

	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(zapcore.AddSync(w)), level)

	return zap.New(core).Named(name)
}
