package model

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"os/user"
	"strconv"
)

// FileSystem is the metadata accessor the renderer reads through.
type FileSystem interface {
	// ReadDir returns the child names of dir in the order the OS reports them.
	ReadDir(dir string) ([]string, error)
	Lstat(path string) (Metadata, error)
	Stat(path string) (Metadata, error)
	Readlink(path string) (string, error)
	// Executable reports whether the current process may execute path.
	Executable(path string) bool
	// Head returns up to n leading bytes of a regular file.
	Head(path string, n int) ([]byte, error)
}

// Identity resolves numeric owner ids to names.
type Identity interface {
	UserName(uid uint32) string
	GroupName(gid uint32) string
}

// ContentSniffer returns the MIME type of a file's content.
type ContentSniffer interface {
	Sniff(path string) (string, error)
}

// OSFileSystem reads the real filesystem.
type OSFileSystem struct{}

func (OSFileSystem) ReadDir(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Readdirnames keeps the OS order, unlike os.ReadDir which sorts.
	return f.Readdirnames(-1)
}

func (OSFileSystem) Lstat(path string) (Metadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Metadata{}, err
	}
	return metadataOf(info), nil
}

func (OSFileSystem) Stat(path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, err
	}
	return metadataOf(info), nil
}

func (OSFileSystem) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

func (OSFileSystem) Executable(path string) bool {
	return executable(path)
}

func (OSFileSystem) Head(path string, n int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

func metadataOf(info fs.FileInfo) Metadata {
	m := Metadata{
		Mode:    info.Mode(),
		Nlink:   1,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	fillOwner(&m, info)
	return m
}

// OSIdentity looks names up in the user database and caches them.
type OSIdentity struct {
	users  map[uint32]string
	groups map[uint32]string
}

func NewOSIdentity() *OSIdentity {
	return &OSIdentity{users: map[uint32]string{}, groups: map[uint32]string{}}
}

// UserName returns the login name for uid, or the number when unknown.
func (id *OSIdentity) UserName(uid uint32) string {
	if name, ok := id.users[uid]; ok {
		return name
	}
	name := strconv.FormatUint(uint64(uid), 10)
	if u, err := user.LookupId(name); err == nil {
		name = u.Username
	}
	id.users[uid] = name
	return name
}

// GroupName returns the group name for gid, or the number when unknown.
func (id *OSIdentity) GroupName(gid uint32) string {
	if name, ok := id.groups[gid]; ok {
		return name
	}
	name := strconv.FormatUint(uint64(gid), 10)
	if g, err := user.LookupGroupId(name); err == nil {
		name = g.Name
	}
	id.groups[gid] = name
	return name
}
