// SPDX-License-Identifier: GPL-2.0-or-later

// Package pack reads and writes PAK archives: a header pointing at a
// directory of 64 byte entries, each naming a slice of the file.
package pack

import (
	"bytes"
	"encoding/binary"
	"io"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
)

type header struct {
	ID     [4]byte
	Offset int32
	Size   int32
}

type entry struct {
	Name   [56]byte
	Offset int32
	Size   int32
}

const entrySize = 64

var magic = []byte("PACK")

type Pack struct {
	r      io.ReaderAt
	closer io.Closer
	files  map[string]qfile
	name   string
}

type qfile struct {
	offset int64
	size   int64
}

func (p *Pack) String() string {
	return p.name
}

func (p *Pack) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// Names returns the entries in name order.
func (p *Pack) Names() []string {
	n := make([]string, 0, len(p.files))
	for k := range p.files {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Section returns a reader over the named entry.
func (p *Pack) Section(name string) (*io.SectionReader, error) {
	q, ok := p.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NewSectionReader(p.r, q.offset, q.size), nil
}

// Open implements fs.FS. Paks have no directories, names are matched as is.
func (p *Pack) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	s, err := p.Section(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &file{SectionReader: s, name: name}, nil
}

type file struct {
	*io.SectionReader
	name string
}

func (f *file) Stat() (fs.FileInfo, error) { return fileInfo{f.name, f.Size()}, nil }
func (f *file) Close() error               { return nil }

type fileInfo struct {
	name string
	size int64
}

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return 0444 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

// NewReader reads the directory of the pak in r.
func NewReader(r io.ReaderAt, name string) (*Pack, error) {
	p := &Pack{r: r, name: name}
	if err := p.init(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}

// NewPackReader opens the pak file name.
func NewPackReader(name string) (*Pack, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	p, err := NewReader(f, name)
	if err != nil {
		f.Close()
		return nil, err
	}
	p.closer = f
	return p, nil
}

func (p *Pack) init() error {
	var h header
	if err := binary.Read(io.NewSectionReader(p.r, 0, 12), binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "header")
	}
	if !bytes.Equal(magic, h.ID[:]) {
		return errors.New("not a pack")
	}
	if h.Offset < 0 || h.Size < 0 || h.Size%entrySize != 0 {
		return errors.New("bad directory")
	}
	dir := io.NewSectionReader(p.r, int64(h.Offset), int64(h.Size))
	filenum := h.Size / entrySize
	p.files = make(map[string]qfile, filenum)
	for i := int32(0); i < filenum; i++ {
		var e entry
		if err := binary.Read(dir, binary.LittleEndian, &e); err != nil {
			return errors.Wrap(err, "directory")
		}
		n := bytes.IndexByte(e.Name[:], 0)
		if n < 0 {
			n = len(e.Name)
		}
		name := string(e.Name[:n])
		if _, ok := p.files[name]; ok {
			return errors.Errorf("%s is in the pack twice", name)
		}
		p.files[name] = qfile{
			offset: int64(e.Offset),
			size:   int64(e.Size),
		}
	}
	return nil
}

// Write stores files as a pak in name order.
func Write(w io.Writer, files map[string][]byte) error {
	names := make([]string, 0, len(files))
	for n := range files {
		if len(n) >= len(entry{}.Name) {
			return errors.Errorf("name %s too long", n)
		}
		names = append(names, n)
	}
	sort.Strings(names)

	var data bytes.Buffer
	entries := make([]entry, 0, len(names))
	offset := int32(12)
	for _, n := range names {
		var e entry
		copy(e.Name[:], n)
		e.Offset = offset + int32(data.Len())
		e.Size = int32(len(files[n]))
		data.Write(files[n])
		entries = append(entries, e)
	}
	h := header{
		Offset: offset + int32(data.Len()),
		Size:   int32(len(entries) * entrySize),
	}
	copy(h.ID[:], magic)
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, entries)
}
