//go:build !windows

package model

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/unix"
)

func fillOwner(m *Metadata, info fs.FileInfo) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return
	}
	m.Nlink = uint64(st.Nlink)
	m.UID = st.Uid
	m.GID = st.Gid
}

// executable asks access(2), so ACLs and the effective ids are honored.
func executable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
