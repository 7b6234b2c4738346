// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the printf style console used by the library packages.
// Output goes to the global zap logger unless replaced.
package conlog

import (
	"strings"

	"go.uber.org/zap"
)

var (
	p  func(string, ...interface{})
	dp func(string, ...interface{})
	wp func(string, ...interface{})
)

func init() {
	Reset()
}

// Reset routes all output back to the global zap logger.
func Reset() {
	p = zapf(func(s *zap.SugaredLogger) func(string, ...interface{}) { return s.Infof })
	dp = zapf(func(s *zap.SugaredLogger) func(string, ...interface{}) { return s.Debugf })
	wp = zapf(func(s *zap.SugaredLogger) func(string, ...interface{}) { return s.Warnf })
}

// zapf resolves the global logger per call so zap.ReplaceGlobals is honored.
func zapf(level func(*zap.SugaredLogger) func(string, ...interface{})) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		level(zap.S())(strings.TrimSuffix(format, "\n"), v...)
	}
}

func SetPrintf(f func(string, ...interface{})) {
	p = f
}

func SetDPrintf(f func(string, ...interface{})) {
	dp = f
}

func SetWarnf(f func(string, ...interface{})) {
	wp = f
}

func Printf(format string, v ...interface{}) {
	p(format, v...)
}

// DPrintf prints developer messages.
func DPrintf(format string, v ...interface{}) {
	dp(format, v...)
}

func Warnf(format string, v ...interface{}) {
	wp(format, v...)
}
