package icons

import "xlsd/internal/model"

var kindIcons = map[model.Kind]string{
	model.KindFile:        "text",
	model.KindDir:         "folder",
	model.KindSymlink:     "symlink",
	model.KindFIFO:        "fifo",
	model.KindSocket:      "socket",
	model.KindBlockDevice: "block_device",
	model.KindCharDevice:  "char_device",
}

// Kind names icons after the entry type reported by lstat. It answers for
// every entry, so it belongs at the end of a chain.
type Kind struct{}

func (Kind) Name() string { return "kind" }

func (Kind) Icon(e *model.DirEntry) (string, bool) {
	icon, ok := kindIcons[e.Kind]
	return icon, ok
}

// kindMediaType is the inode/* type of entries that have no content to sniff.
func kindMediaType(k model.Kind) (string, bool) {
	switch k {
	case model.KindDir:
		return "inode/directory", true
	case model.KindFIFO:
		return "inode/fifo", true
	case model.KindSocket:
		return "inode/socket", true
	case model.KindBlockDevice:
		return "inode/blockdevice", true
	case model.KindCharDevice:
		return "inode/chardevice", true
	}
	return "", false
}
