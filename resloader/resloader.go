// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resloader locates resources by name in an ordered list of
// search paths, over a file system made of mounted directories.
// Opened resources are sniffed for their file type.
package resloader

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"cogentcore.org/engine/base/errors"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/hack-pad/hackpadfs/mount"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/mitchellh/go-homedir"
)

// ErrNotFound is returned when no search path has the resource.
var ErrNotFound = errors.New("resloader: resource not found")

// sniffLen is the number of leading bytes used to detect the file type.
const sniffLen = 262

// Loader locates and opens resources. It is safe for concurrent use.
type Loader struct {
	mu    sync.RWMutex
	fsys  *mount.FS
	root  *mem.FS
	paths []string
	dirs  int
}

// New returns a loader over an empty file system, searching its root.
func New() (*Loader, error) {
	root, err := mem.NewFS()
	if err != nil {
		return nil, err
	}
	fsys, err := mount.NewFS(root)
	if err != nil {
		return nil, err
	}
	return &Loader{fsys: fsys, root: root, paths: []string{"."}}, nil
}

// NormPath cleans a path and makes it non-rooted, as all paths in
// the loader file system are.
func NormPath(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

// FS returns the file system of the loader.
func (l *Loader) FS() hackpadfs.FS { return l.fsys }

// Mount mounts fsys at the directory dir of the loader file system.
func (l *Loader) Mount(dir string, fsys hackpadfs.FS) error {
	dir = NormPath(dir)
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := hackpadfs.MkdirAll(l.root, dir, 0o755); err != nil {
		return fmt.Errorf("resloader: mount %s: %w", dir, err)
	}
	if err := l.fsys.AddMount(dir, fsys); err != nil {
		return fmt.Errorf("resloader: mount %s: %w", dir, err)
	}
	return nil
}

// AddDir mounts a directory of the host file system and appends it
// to the search paths. A leading ~ is expanded to the home directory.
// It returns the directory in the loader file system.
func (l *Loader) AddDir(dir string) (string, error) {
	p, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("resloader: %s: %w", dir, err)
	}
	p, err = filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resloader: %s: %w", dir, err)
	}
	sub, err := osfs.NewFS().Sub(NormPath(filepath.ToSlash(strings.TrimPrefix(p, filepath.VolumeName(p)))))
	if err != nil {
		return "", fmt.Errorf("resloader: %s: %w", dir, err)
	}
	l.mu.Lock()
	l.dirs++
	mp := "dirs/" + strconv.Itoa(l.dirs)
	l.mu.Unlock()
	if err := l.Mount(mp, sub); err != nil {
		return "", err
	}
	l.AddPath(mp)
	slog.Debug("resource dir added", "dir", p, "mount", mp)
	return mp, nil
}

// AddPath appends a search path of the loader file system.
func (l *Loader) AddPath(p string) {
	p = NormPath(p)
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, q := range l.paths {
		if q == p {
			return
		}
	}
	l.paths = append(l.paths, p)
}

// DelPath removes a search path, returning false if there is none.
func (l *Loader) DelPath(p string) bool {
	p = NormPath(p)
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, q := range l.paths {
		if q == p {
			l.paths = append(l.paths[:i], l.paths[i+1:]...)
			return true
		}
	}
	return false
}

// Paths returns the search paths in order.
func (l *Loader) Paths() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.paths...)
}

// Locate returns the path of the first regular file named name in
// the search paths.
func (l *Loader) Locate(name string) (string, error) {
	name = NormPath(name)
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.paths {
		fp := path.Join(p, name)
		fi, err := hackpadfs.Stat(l.fsys, fp)
		if err == nil && fi.Mode().IsRegular() {
			return fp, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("resource stat failed", "path", fp, "err", err)
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Resource is an opened resource. Reads see the whole file,
// including the bytes read to detect its type.
type Resource struct {
	// Name is the name the resource was opened by.
	Name string

	// Path is the located path in the loader file system.
	Path string

	// Type is the detected file type, or [filetype.Unknown].
	Type types.Type

	r *bufio.Reader
	f hackpadfs.File
}

// Open locates and opens the named resource.
func (l *Loader) Open(name string) (*Resource, error) {
	fp, err := l.Locate(name)
	if err != nil {
		return nil, err
	}
	f, err := l.fsys.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("resloader: open %s: %w", fp, err)
	}
	res := &Resource{Name: name, Path: fp, r: bufio.NewReader(f), f: f}
	head, err := res.r.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, fmt.Errorf("resloader: read %s: %w", fp, err)
	}
	res.Type = errors.Ignore1(filetype.Match(head))
	return res, nil
}

// ReadFile locates and reads the whole named resource.
func (l *Loader) ReadFile(name string) ([]byte, error) {
	res, err := l.Open(name)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	return io.ReadAll(res)
}

func (r *Resource) Read(p []byte) (int, error) { return r.r.Read(p) }

func (r *Resource) Close() error { return r.f.Close() }

// MIME returns the MIME type, empty if unknown.
func (r *Resource) MIME() string { return r.Type.MIME.Value }

// Kind returns the top-level MIME type, such as image or audio,
// empty if unknown.
func (r *Resource) Kind() string { return r.Type.MIME.Type }

func (r *Resource) IsImage() bool { return r.Kind() == "image" }
func (r *Resource) IsAudio() bool { return r.Kind() == "audio" }
