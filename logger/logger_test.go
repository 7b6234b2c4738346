// SPDX-License-Identifier: GPL-2.0-or-later

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"quakemove/conlog"
)

func TestFileOutput(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())
	path := filepath.Join(t.TempDir(), "run.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false
	if _, err := InitWithFileConfig("info", cfg, false); err != nil {
		t.Fatal(err)
	}
	conlog.Printf("player fell at %v\n", -10.5)
	conlog.DPrintf("hidden below info\n")
	Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	if !strings.Contains(out, "player fell at -10.5") {
		t.Errorf("log file missing the message: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
}

func TestBadLevel(t *testing.T) {
	if _, err := Init("loud", ""); err == nil {
		t.Errorf("Init accepted an unknown level")
	}
}
