package icons

import (
	"strings"

	"xlsd/internal/model"
)

type category struct {
	exts []string
	icon string
}

// extensionTable is checked top to bottom; the first category holding the
// extension wins, so "pl" is perl and never linux.
var extensionTable = []category{
	{[]string{"txt", "log"}, "text"},
	{[]string{"json", "yml", "yaml", "toml", "xml", "ini", "conf", "rc", "cfg", "vbox", "vbox-prev"}, "config"},
	{[]string{"eml"}, "mail"},
	{[]string{"jpe", "jpg", "jpeg", "png", "apng", "gif", "bmp", "ico", "tif", "tiff", "tga", "webp", "xpm", "xcf", "svg"}, "photo"},
	{[]string{"flac", "ogg", "mp3", "wav"}, "music"},
	{[]string{"avi", "mp4", "mkv", "webm"}, "video"},
	{[]string{"pdf", "odt", "doc", "docx", "html", "htm", "xhtm", "xhtml", "md", "rtf", "tex", "rst"}, "rich_text"},
	{[]string{"ods", "xls", "xlsx", "csv"}, "chart"},
	{[]string{"jar", "jad", "java"}, "java"},
	{[]string{"py", "pyc"}, "python"},
	{[]string{"php"}, "php"},
	{[]string{"rs", "rlib", "rmeta"}, "rust"},
	{[]string{"lua"}, "lua"},
	{[]string{"pl"}, "perl"},
	{[]string{"css", "less", "colorscheme", "theme", "xsl"}, "stylesheet"},
	{[]string{"c", "h"}, "c"},
	{[]string{"xsh", "xonshrc"}, "xonsh"},
	{[]string{"hs", "lhs", "hi"}, "haskell"},
	{[]string{"go"}, "go"},
	{[]string{"zip", "7z", "rar", "gz", "xz", "bz2", "zst", "tar"}, "compressed"},
	{[]string{"exe", "bat", "cmd", "dll"}, "windows"},
	{[]string{"so", "elf", "sh", "zsh", "ksh", "pl", "o"}, "linux"},
	{[]string{"iso", "cue"}, "iso"},
	{[]string{"vcard", "vcf"}, "contacts"},
	{[]string{"ics"}, "calendar"},
	{[]string{"lock", "lck"}, "lock"},
	{[]string{"reg"}, "windows"},
	{[]string{"pkg", "deb", "rpm", "apk"}, "package"},
	{[]string{"db", "sqlite", "sqlite3", "kdbx"}, "database"},
	{[]string{"torrent"}, "pirate"},
}

// extIndex maps an extension to its first category.
var extIndex = func() map[string]string {
	idx := map[string]string{}
	for _, c := range extensionTable {
		for _, ext := range c.exts {
			if _, seen := idx[ext]; !seen {
				idx[ext] = c.icon
			}
		}
	}
	return idx
}()

// Extension resolves icons from the file name suffix.
type Extension struct{}

func (Extension) Name() string { return "extension" }

func (Extension) Icon(e *model.DirEntry) (string, bool) {
	isDir, err := e.IsDir()
	if err != nil {
		return "", false
	}
	if isDir {
		return "folder", true
	}
	ext := Suffix(e.Name)
	if ext == "" {
		return "", false
	}
	icon, ok := extIndex[ext]
	return icon, ok
}

// Suffix returns the lower-cased extension of name without the dot. A dotfile
// without another dot yields the text after the leading dot, so ".xonshrc"
// gives "xonshrc".
func Suffix(name string) string {
	name = strings.ToLower(name)
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}
