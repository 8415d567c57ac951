package listing

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"xlsd/internal/model"
)

// Collector lists directories through a FileSystem.
type Collector struct {
	FS     model.FileSystem
	Sort   SortFunc
	Logger *log.Logger
}

// List returns the children of dir in sort order. Hidden entries are dropped
// unless showHidden is set. A directory that cannot be read for lack of
// permission yields no entries and no error.
func (c *Collector) List(dir string, showHidden bool) ([]*model.DirEntry, error) {
	names, err := c.FS.ReadDir(dir)
	if err != nil {
		if model.IsPermission(err) {
			c.debug("permission denied", "dir", dir, "err", err)
			return nil, nil
		}
		return nil, err
	}

	entries := make([]*model.DirEntry, 0, len(names))
	for _, name := range names {
		if !showHidden && model.IsHiddenName(name) {
			continue
		}
		e, err := model.NewDirEntry(c.FS, filepath.Join(dir, name))
		if err != nil {
			// Removed between the listing and the stat.
			c.debug("skipping entry", "name", name, "err", err)
			continue
		}
		entries = append(entries, e)
	}
	if c.Sort != nil {
		c.Sort(entries)
	}
	return entries, nil
}

func (c *Collector) debug(msg string, keyvals ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, keyvals...)
	}
}
