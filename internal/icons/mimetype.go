package icons

import (
	"path"

	"github.com/charmbracelet/log"

	"xlsd/internal/model"
)

type mimeRule struct {
	pattern string
	icon    string
}

// mimeTable is matched in order; patterns are exact types or "type/*".
var mimeTable = []mimeRule{
	{"inode/directory", "folder"},
	{"inode/fifo", "fifo"},
	{"inode/socket", "socket"},
	{"inode/blockdevice", "block_device"},
	{"inode/chardevice", "char_device"},
	// documents
	{"application/pdf", "rich_text"},
	{"application/vnd.oasis.opendocument.text", "rich_text"},
	{"application/msword", "rich_text"},
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "rich_text"},
	{"text/html", "rich_text"},
	// spreadsheets
	{"application/vnd.oasis.opendocument.spreadsheet", "chart"},
	{"application/vnd.ms-excel", "chart"},
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "chart"},
	{"text/csv", "chart"},
	// archives and executables
	{"application/java-archive", "java"},
	{"application/x-java-applet", "java"},
	{"application/x-iso9660-image", "iso"},
	{"application/zip", "compressed"},
	{"application/gzip", "compressed"},
	{"application/x-xz", "compressed"},
	{"application/x-7z-compressed", "compressed"},
	{"application/x-dosexec", "windows"},
	{"application/vnd.microsoft.portable-executable", "windows"},
	{"text/x-script.python", "python"},
	{"text/x-python", "python"},
	{"text/x-php", "php"},
	{"application/x-pie-executable", "linux"},
	{"application/x-executable", "linux"},
	{"application/x-elf", "linux"},
	{"application/x-sharedlib", "linux"},
	{"text/vcard", "contacts"},
	{"text/calendar", "calendar"},
	{"application/vnd.sqlite3", "database"},
	{"application/x-bittorrent", "pirate"},
	// generics
	{"text/*", "text"},
	{"application/*", "application"},
	{"image/*", "photo"},
	{"audio/*", "music"},
	{"video/*", "video"},
}

// MatchMIME returns the icon for a media type.
func MatchMIME(mediaType string) (string, bool) {
	for _, rule := range mimeTable {
		if rule.pattern == mediaType {
			return rule.icon, true
		}
		if ok, _ := path.Match(rule.pattern, mediaType); ok {
			return rule.icon, true
		}
	}
	return "", false
}

// ContentSniff resolves icons from the MIME type of the file content.
type ContentSniff struct {
	Sniffer model.ContentSniffer
	Logger  *log.Logger
}

func (*ContentSniff) Name() string { return "content-sniff" }

// Icon only reads regular files. Other kinds are typed from the inode, so
// fifos and devices are never opened.
func (s *ContentSniff) Icon(e *model.DirEntry) (string, bool) {
	if s.Sniffer == nil {
		return "", false
	}
	kind, err := e.ResolvedKind()
	if err != nil {
		debug(s.Logger, "content-sniff: stat failed", "path", e.Path, "err", err)
		return "", false
	}
	mediaType, ok := kindMediaType(kind)
	if !ok {
		mediaType, err = s.Sniffer.Sniff(e.RealPath())
		if err != nil {
			debug(s.Logger, "content-sniff: sniffer failed", "path", e.Path, "err", err)
			return "", false
		}
	}
	return MatchMIME(mediaType)
}
