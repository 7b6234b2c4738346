// SPDX-License-Identifier: GPL-2.0-or-later

// Package filesystem searches a stack of file systems, the first one
// holding a name wins.
package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"quakemove/pack"
)

// NameSpace is an fs.FS over ordered layers. Bound layers are searched
// before the ones already present.
type NameSpace struct {
	mu     sync.RWMutex
	layers []fs.FS
	packs  []*pack.Pack
}

func New(layers ...fs.FS) *NameSpace {
	return &NameSpace{layers: layers}
}

// BindBefore puts l in front of all other layers.
func (ns *NameSpace) BindBefore(l fs.FS) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.layers = append([]fs.FS{l}, ns.layers...)
}

// UseDir binds the directory dir and then its pak0.pak, pak1.pak, ...
// archives, so later paks override earlier ones and loose files.
func (ns *NameSpace) UseDir(dir string) error {
	st, err := os.Stat(dir)
	if err != nil {
		return errors.Wrap(err, "game directory")
	}
	if !st.IsDir() {
		return errors.Errorf("game directory %s is not a directory", dir)
	}
	ns.BindBefore(os.DirFS(dir))
	for i := 0; ; i++ {
		p, err := pack.NewPackReader(filepath.Join(dir, fmt.Sprintf("pak%d.pak", i)))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		}
		ns.mu.Lock()
		ns.packs = append(ns.packs, p)
		ns.mu.Unlock()
		ns.BindBefore(p)
	}
}

// Close releases the bound pak files.
func (ns *NameSpace) Close() error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	var first error
	for _, p := range ns.packs {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	ns.packs = nil
	return first
}

func (ns *NameSpace) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	for _, l := range ns.layers {
		f, err := l.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
