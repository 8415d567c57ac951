package model

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// execExts is the set of executable filename extensions from %PATHEXT%.
var execExts = map[string]bool{}

func init() {
	s := os.Getenv("PATHEXT")
	if s == "" {
		s = ".COM;.EXE;.BAT;.CMD;.VBS;.VBE;.JS;.JSE;.WSF;.WSH;.MSC;.CPL"
	}
	for ext := range strings.SplitSeq(s, ";") {
		if ext == "" {
			continue
		}
		execExts[strings.ToLower(ext)] = true
	}
}

func fillOwner(*Metadata, fs.FileInfo) {}

func executable(path string) bool {
	return execExts[strings.ToLower(filepath.Ext(path))]
}
