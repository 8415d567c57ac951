// Package memfs is an in-memory model.FileSystem for deterministic tests.
// Children keep insertion order so that "as-is" ordering is observable, and
// any directory can be marked unreadable to simulate permission errors.
package memfs

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strconv"
	"time"

	"xlsd/internal/model"
)

// ErrLoop is returned when following symlinks does not terminate.
var ErrLoop = errors.New("too many levels of symbolic links")

const maxHops = 40

type node struct {
	meta     model.Metadata
	target   string
	content  []byte
	children []string
	denied   bool
}

// FS is an in-memory filesystem rooted at "/".
type FS struct {
	nodes map[string]*node
	now   time.Time
}

// New returns an FS holding only the root directory.
func New() *FS {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	m := &FS{nodes: map[string]*node{}, now: now}
	m.nodes["/"] = &node{meta: model.Metadata{Mode: fs.ModeDir | 0o755, Nlink: 2, ModTime: now}}
	return m
}

func clean(p string) string {
	return filepath.Clean("/" + p)
}

func (m *FS) add(p string, n *node) *node {
	p = clean(p)
	parent := filepath.Dir(p)
	if _, ok := m.nodes[parent]; !ok && p != "/" {
		m.Dir(parent)
	}
	if _, exists := m.nodes[p]; !exists && p != "/" {
		m.nodes[parent].children = append(m.nodes[parent].children, filepath.Base(p))
	}
	if n.meta.ModTime.IsZero() {
		n.meta.ModTime = m.now
	}
	if n.meta.Nlink == 0 {
		n.meta.Nlink = 1
	}
	m.nodes[p] = n
	return n
}

// Dir creates a directory and any missing parents.
func (m *FS) Dir(p string) *FS {
	m.add(p, &node{meta: model.Metadata{Mode: fs.ModeDir | 0o755, Nlink: 2, Size: 4096}})
	return m
}

// File creates a regular file with the given permission bits.
func (m *FS) File(p string, content string, perm fs.FileMode) *FS {
	m.add(p, &node{
		meta:    model.Metadata{Mode: perm, Size: int64(len(content))},
		content: []byte(content),
	})
	return m
}

// Special creates a node of an arbitrary mode, such as a fifo or a device.
func (m *FS) Special(p string, mode fs.FileMode) *FS {
	m.add(p, &node{meta: model.Metadata{Mode: mode}})
	return m
}

// Symlink creates a link at p pointing to target.
func (m *FS) Symlink(p, target string) *FS {
	m.add(p, &node{
		meta:   model.Metadata{Mode: fs.ModeSymlink | 0o777, Size: int64(len(target))},
		target: target,
	})
	return m
}

// Owner sets the numeric owner of p.
func (m *FS) Owner(p string, uid, gid uint32) *FS {
	if n, ok := m.nodes[clean(p)]; ok {
		n.meta.UID, n.meta.GID = uid, gid
	}
	return m
}

// Deny makes listing p fail with fs.ErrPermission.
func (m *FS) Deny(p string) *FS {
	if n, ok := m.nodes[clean(p)]; ok {
		n.denied = true
	}
	return m
}

func (m *FS) lookup(p string) (*node, error) {
	n, ok := m.nodes[clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: p, Err: fs.ErrNotExist}
	}
	return n, nil
}

func (m *FS) resolve(p string) (string, *node, error) {
	p = clean(p)
	for range maxHops {
		n, err := m.lookup(p)
		if err != nil {
			return "", nil, err
		}
		if n.meta.Mode&fs.ModeSymlink == 0 {
			return p, n, nil
		}
		if filepath.IsAbs(n.target) {
			p = clean(n.target)
		} else {
			p = clean(filepath.Join(filepath.Dir(p), n.target))
		}
	}
	return "", nil, &fs.PathError{Op: "stat", Path: p, Err: ErrLoop}
}

func (m *FS) ReadDir(dir string) ([]string, error) {
	_, n, err := m.resolve(dir)
	if err != nil {
		return nil, err
	}
	if !n.meta.Mode.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: errors.New("not a directory")}
	}
	if n.denied {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrPermission}
	}
	return append([]string(nil), n.children...), nil
}

func (m *FS) Lstat(p string) (model.Metadata, error) {
	n, err := m.lookup(p)
	if err != nil {
		return model.Metadata{}, err
	}
	return n.meta, nil
}

func (m *FS) Stat(p string) (model.Metadata, error) {
	_, n, err := m.resolve(p)
	if err != nil {
		return model.Metadata{}, err
	}
	return n.meta, nil
}

func (m *FS) Readlink(p string) (string, error) {
	n, err := m.lookup(p)
	if err != nil {
		return "", err
	}
	if n.meta.Mode&fs.ModeSymlink == 0 {
		return "", &fs.PathError{Op: "readlink", Path: p, Err: fs.ErrInvalid}
	}
	return n.target, nil
}

func (m *FS) Executable(p string) bool {
	_, n, err := m.resolve(p)
	if err != nil {
		return false
	}
	return n.meta.Mode&0o111 != 0
}

func (m *FS) Head(p string, size int) ([]byte, error) {
	_, n, err := m.resolve(p)
	if err != nil {
		return nil, err
	}
	if len(n.content) < size {
		size = len(n.content)
	}
	return n.content[:size], nil
}

// StaticIdentity maps ids to fixed names. Unknown ids fall back to the number.
type StaticIdentity struct {
	Users  map[uint32]string
	Groups map[uint32]string
}

func (s StaticIdentity) UserName(uid uint32) string {
	if name, ok := s.Users[uid]; ok {
		return name
	}
	return itoa(uid)
}

func (s StaticIdentity) GroupName(gid uint32) string {
	if name, ok := s.Groups[gid]; ok {
		return name
	}
	return itoa(gid)
}

func itoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// StaticSniffer answers from a fixed path → MIME table.
type StaticSniffer map[string]string

func (s StaticSniffer) Sniff(p string) (string, error) {
	if t, ok := s[clean(p)]; ok {
		return t, nil
	}
	return "", fs.ErrNotExist
}
