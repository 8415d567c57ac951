package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"xlsd/internal/listing"
	"xlsd/internal/model"
	"xlsd/internal/width"
)

// Tree renders nested directories with box-drawing prefixes.
type Tree struct {
	Collector *listing.Collector
	Formatter *Formatter
	MaxDepth  int // 0 means unlimited
	Logger    *log.Logger
}

// Render writes the tree below dir. Only the listing of dir itself can fail;
// errors further down render as empty subtrees.
func (t *Tree) Render(w io.Writer, dir string, showHidden bool) error {
	entries, err := t.Collector.List(dir, showHidden)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, model.NoFiles)
		return err
	}
	return t.walk(w, entries, showHidden, "", 1)
}

func (t *Tree) walk(w io.Writer, entries []*model.DirEntry, showHidden bool, prefix string, depth int) error {
	for i, e := range entries {
		last := i == len(entries)-1
		connector, indent := model.TreeTee, model.TreeBar
		if last {
			connector, indent = model.TreeCorner, model.TreeBlank
		}
		if _, err := fmt.Fprintln(w, prefix+connector+width.Unescape(t.Formatter.Format(e, true))); err != nil {
			return err
		}
		if !t.descend(e, depth) {
			continue
		}
		children, err := t.Collector.List(e.Path, showHidden)
		if err != nil {
			if t.Logger != nil {
				t.Logger.Warn("cannot list directory", "path", e.Path, "err", err)
			}
			continue
		}
		if err := t.walk(w, children, showHidden, prefix+indent, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// descend reports whether e is a real directory within the depth limit.
// Directory symlinks are never followed.
func (t *Tree) descend(e *model.DirEntry, depth int) bool {
	if e.IsSymlink() {
		return false
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return false
	}
	isDir, err := e.IsDir()
	return err == nil && isDir
}
