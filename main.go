// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"quakemove/commandline"
	"quakemove/config"
	"quakemove/conlog"
	"quakemove/cvar"
	"quakemove/filesystem"
	"quakemove/host"
	"quakemove/logger"
	"quakemove/scene"
	"quakemove/trace"
)

func main() {
	flag.Parse()
	if dsn := commandline.SentryDSN(); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			conlog.Warnf("sentry: %v\n", err)
		}
	}
	err := run()
	if err != nil {
		conlog.Warnf("%v\n", err)
		if commandline.SentryDSN() != "" {
			hub := sentry.CurrentHub().Clone()
			hub.CaptureException(err)
			hub.Flush(5 * time.Second)
		}
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// splitFS opens the directory of path so the loaders can read it by name.
func splitFS(path string) (dir, name string) {
	return filepath.Dir(path), filepath.Base(path)
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if p := commandline.ConfigFile(); p != "" {
		dir, name := splitFS(p)
		var err error
		if cfg, err = config.Load(os.DirFS(dir), name); err != nil {
			return cfg, err
		}
	}
	if l := commandline.LogLevel(); l != "" {
		cfg.Log.Level = l
	}
	if f := commandline.LogFile(); f != "" {
		cfg.Log.File = f
	}
	if s := commandline.Scene(); s != "" {
		cfg.Scene = s
	}
	if t := commandline.Ticks(); t >= 0 {
		cfg.Ticks = t
	}
	if r := commandline.RecordFile(); r != "" {
		cfg.Record = r
	}
	cfg.AreaIndex = cfg.AreaIndex || commandline.AreaIndex()
	return cfg, nil
}

// loadScene looks for the scene next to the given path first, then among
// the built in scenes. The .yaml extension is optional.
func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Demo(), nil
	}
	ns := filesystem.New(scene.Files)
	defer ns.Close()
	dir, name := splitFS(path)
	if err := ns.UseDir(dir); err != nil {
		conlog.DPrintf("%v\n", err)
	}
	if filesystem.Ext(name) == "" {
		name += ".yaml"
	}
	return scene.Load(ns, name)
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		return errors.Wrap(err, "logger")
	}
	if err := cfg.Apply(cvar.Default()); err != nil {
		return err
	}
	s, err := loadScene(cfg.Scene)
	if err != nil {
		return err
	}

	var rec *trace.Recorder
	if commandline.Trace() || cfg.Record != "" {
		rec = trace.NewRecorder(commandline.TraceFrames())
	}
	h, err := host.New(s, host.Options{AreaIndex: cfg.AreaIndex, Recorder: rec})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	zap.L().Info("run",
		zap.String("scene", s.Name),
		zap.Int("ticks", cfg.Ticks),
		zap.Int("triangles", h.World.Len()))
	runErr := h.Run(ctx, cfg.Ticks, cfg.FrameTime, cfg.Script)

	p := h.Player.State
	zap.L().Info("done",
		zap.Uint64("tick", h.Tick()),
		zap.Float64s("origin", p.Origin[:]),
		zap.Float64s("velocity", p.Velocity[:]),
		zap.Bool("on_ground", p.OnGround))
	if rec != nil && cfg.Record != "" {
		if err := writeRecord(rec, cfg.Record); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

func writeRecord(rec *trace.Recorder, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "record")
	}
	if _, err := rec.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrap(err, "record")
	}
	return errors.Wrap(f.Close(), "record")
}
