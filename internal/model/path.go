package model

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"
)

// Kind is the type of a filesystem entry as reported by lstat.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
	KindFIFO
	KindSocket
	KindBlockDevice
	KindCharDevice
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	case KindFIFO:
		return "fifo"
	case KindSocket:
		return "socket"
	case KindBlockDevice:
		return "block-device"
	case KindCharDevice:
		return "char-device"
	default:
		return "unknown"
	}
}

// KindOf maps a file mode to a Kind.
func KindOf(m fs.FileMode) Kind {
	switch {
	case m&fs.ModeSymlink != 0:
		return KindSymlink
	case m&fs.ModeDir != 0:
		return KindDir
	case m&fs.ModeNamedPipe != 0:
		return KindFIFO
	case m&fs.ModeSocket != 0:
		return KindSocket
	case m&fs.ModeDevice != 0:
		if m&fs.ModeCharDevice != 0 {
			return KindCharDevice
		}
		return KindBlockDevice
	case m&fs.ModeCharDevice != 0:
		return KindCharDevice
	default:
		return KindFile
	}
}

// Metadata is the stat information of one entry.
type Metadata struct {
	Mode    fs.FileMode
	Nlink   uint64
	UID     uint32
	GID     uint32
	Size    int64
	ModTime time.Time
}

// Kind returns the entry kind encoded in the mode bits.
func (m Metadata) Kind() Kind { return KindOf(m.Mode) }

// DirEntry is a read-only view of one filesystem entry. Metadata is fetched
// lazily through the FileSystem it was created with and cached.
type DirEntry struct {
	Name string // raw file name, may start with "."
	Path string // location used for metadata operations
	Kind Kind   // kind of the entry itself, links are not followed

	fsys FileSystem
	meta *Metadata
	err  error
}

// NewDirEntry stats path without following links and returns the entry.
func NewDirEntry(fsys FileSystem, path string) (*DirEntry, error) {
	meta, err := fsys.Lstat(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	return &DirEntry{
		Name: name,
		Path: path,
		Kind: meta.Kind(),
		fsys: fsys,
		meta: &meta,
	}, nil
}

// IsSymlink reports whether the entry itself is a symbolic link.
func (e *DirEntry) IsSymlink() bool { return e.Kind == KindSymlink }

// Metadata returns the lstat metadata of the entry.
func (e *DirEntry) Metadata() (Metadata, error) {
	if e.meta == nil && e.err == nil {
		m, err := e.fsys.Lstat(e.Path)
		if err != nil {
			e.err = err
		} else {
			e.meta = &m
		}
	}
	if e.err != nil {
		return Metadata{}, e.err
	}
	return *e.meta, nil
}

// ResolvedKind returns the kind of the entry after following symlinks.
func (e *DirEntry) ResolvedKind() (Kind, error) {
	if !e.IsSymlink() {
		return e.Kind, nil
	}
	m, err := e.fsys.Stat(e.Path)
	if err != nil {
		return e.Kind, err
	}
	return m.Kind(), nil
}

// IsDir reports whether the entry is a directory, following symlinks.
// Broken or looping links return an error.
func (e *DirEntry) IsDir() (bool, error) {
	k, err := e.ResolvedKind()
	if err != nil {
		return false, err
	}
	return k == KindDir, nil
}

// Exists reports whether the entry still exists once links are followed.
func (e *DirEntry) Exists() bool {
	if !e.IsSymlink() {
		return true
	}
	_, err := e.fsys.Stat(e.Path)
	return err == nil
}

// Target returns the raw symlink text, unresolved.
func (e *DirEntry) Target() (string, error) {
	if !e.IsSymlink() {
		return "", errors.New("not a symlink: " + e.Path)
	}
	return e.fsys.Readlink(e.Path)
}

// RealPath follows exactly one symlink hop. Relative targets are resolved
// against the directory holding the link.
func (e *DirEntry) RealPath() string {
	if !e.IsSymlink() {
		return e.Path
	}
	target, err := e.fsys.Readlink(e.Path)
	if err != nil {
		return e.Path
	}
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(filepath.Dir(e.Path), target)
}

// Executable reports whether the current process may execute the entry.
func (e *DirEntry) Executable() bool {
	return e.fsys.Executable(e.RealPath())
}

// FS returns the accessor backing the entry.
func (e *DirEntry) FS() FileSystem { return e.fsys }

// IsHiddenName reports whether a bare file name starts with a dot.
func IsHiddenName(name string) bool {
	return name != "" && name[0] == '.'
}

// IsPermission reports whether err is a permission failure.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
