// SPDX-License-Identifier: GPL-2.0-or-later

// Package commandline holds the process flags.
package commandline

import (
	"flag"
	"fmt"
	"strconv"
)

const defaultTraceFrames = 1000

var (
	areaIndex bool

	trace = boolInt{false, defaultTraceFrames}

	ticks int

	configFile string
	logFile    string
	logLevel   string
	recordFile string
	scene      string
	sentryDSN  string
)

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

func init() {
	flag.BoolVar(&areaIndex, "areaindex", false, "build the area tree for world queries")

	flag.Var(&trace, "trace", "record movement traces, optional number of frames to keep")

	flag.IntVar(&ticks, "ticks", -1, "number of frames to simulate, negative uses the config")

	flag.StringVar(&configFile, "config", "", "yaml run configuration")
	flag.StringVar(&logFile, "logfile", "", "rotating log file")
	flag.StringVar(&logLevel, "loglevel", "", "debug, info, warn or error")
	flag.StringVar(&recordFile, "record", "", "write the trace log to this file")
	flag.StringVar(&scene, "scene", "", "yaml scene file, empty runs the demo")
	flag.StringVar(&sentryDSN, "sentry-dsn", "", "report failed runs to sentry")
}

func AreaIndex() bool {
	return areaIndex
}

func Trace() bool {
	return trace.set
}

func TraceFrames() int {
	return trace.num
}

func Ticks() int {
	return ticks
}

func ConfigFile() string {
	return configFile
}

func LogFile() string {
	return logFile
}

func LogLevel() string {
	return logLevel
}

func RecordFile() string {
	return recordFile
}

func Scene() string {
	return scene
}

func SentryDSN() string {
	return sentryDSN
}
