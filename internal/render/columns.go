package render

import (
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"time"

	"xlsd/internal/layout"
	"xlsd/internal/model"
	"xlsd/internal/style"
	"xlsd/internal/width"
)

// Extractor produces the cell of one entry.
type Extractor func(e *model.DirEntry) (string, error)

// Column is a named extractor with its alignment.
type Column struct {
	Name    string
	Align   layout.Align
	Extract Extractor
}

// Cell runs the extractor. A failing extractor yields the error marker.
func (c Column) Cell(e *model.DirEntry) string {
	v, err := c.Extract(e)
	if err != nil {
		return model.ErrorCell
	}
	return v
}

// unknownColumn stands in for a configured name that is not registered.
func unknownColumn(name string) Column {
	return Column{
		Name:    name,
		Align:   layout.AlignLeft,
		Extract: func(*model.DirEntry) (string, error) { return model.UnknownColumn, nil },
	}
}

// ColumnRegistry holds the columns selectable for long listings.
type ColumnRegistry struct {
	columns map[string]Column
	order   []string
}

// NewColumnRegistry returns an empty registry.
func NewColumnRegistry() *ColumnRegistry {
	return &ColumnRegistry{columns: map[string]Column{}}
}

// Register adds or replaces a column.
func (r *ColumnRegistry) Register(c Column) {
	if _, ok := r.columns[c.Name]; !ok {
		r.order = append(r.order, c.Name)
	}
	r.columns[c.Name] = c
}

// Lookup returns the column registered under name.
func (r *ColumnRegistry) Lookup(name string) (Column, bool) {
	c, ok := r.columns[name]
	return c, ok
}

// Names lists the columns in registration order.
func (r *ColumnRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// ColumnEnv is what the built-in columns need to render their cells.
type ColumnEnv struct {
	Formatter *Formatter
	Identity  model.Identity
	Now       time.Time
}

// DefaultColumns returns a registry with mode, hardlinks, uid, gid, size,
// mtime and name.
func DefaultColumns(env ColumnEnv) *ColumnRegistry {
	styler, palette := env.Formatter.Styler, env.Formatter.Palette
	r := NewColumnRegistry()
	r.Register(Column{Name: "mode", Align: layout.AlignLeft, Extract: func(e *model.DirEntry) (string, error) {
		m, err := e.Metadata()
		if err != nil {
			return "", err
		}
		return PermString(m.Mode), nil
	}})
	r.Register(Column{Name: "hardlinks", Align: layout.AlignRight, Extract: func(e *model.DirEntry) (string, error) {
		m, err := e.Metadata()
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(m.Nlink, 10), nil
	}})
	r.Register(Column{Name: "uid", Align: layout.AlignLeft, Extract: func(e *model.DirEntry) (string, error) {
		m, err := e.Metadata()
		if err != nil {
			return "", err
		}
		return styler.Render(ownerName(env.Identity, m.UID, true), palette.Get(style.OwnerUser)), nil
	}})
	r.Register(Column{Name: "gid", Align: layout.AlignLeft, Extract: func(e *model.DirEntry) (string, error) {
		m, err := e.Metadata()
		if err != nil {
			return "", err
		}
		return styler.Render(ownerName(env.Identity, m.GID, false), palette.Get(style.OwnerGroup)), nil
	}})
	r.Register(Column{Name: "size", Align: layout.AlignRight, Extract: func(e *model.DirEntry) (string, error) {
		m, err := e.Metadata()
		if err != nil {
			return "", err
		}
		if m.Kind() == model.KindDir {
			return "-", nil
		}
		num, unit := HumanSize(m.Size)
		return num + styler.Render(unit, palette.Get(style.SizeUnit)), nil
	}})
	r.Register(Column{Name: "mtime", Align: layout.AlignLeft, Extract: func(e *model.DirEntry) (string, error) {
		m, err := e.Metadata()
		if err != nil {
			return "", err
		}
		return FormatTime(m.ModTime, env.Now), nil
	}})
	r.Register(Column{Name: "name", Align: layout.AlignIgnore, Extract: func(e *model.DirEntry) (string, error) {
		return env.Formatter.Format(e, true), nil
	}})
	return r
}

func ownerName(id model.Identity, n uint32, user bool) string {
	switch {
	case id == nil:
		return strconv.FormatUint(uint64(n), 10)
	case user:
		return width.Escape(id.UserName(n))
	}
	return width.Escape(id.GroupName(n))
}

// PermString renders permission bits ls-style. fs.FileMode.String is avoided as it
// prints the special bits as separate letters.
func PermString(m fs.FileMode) string {
	b := []byte(m.Perm().String())
	switch {
	case m&fs.ModeDevice != 0:
		if m&fs.ModeCharDevice != 0 {
			b[0] = 'c'
		} else {
			b[0] = 'b'
		}
	case m&fs.ModeDir != 0:
		b[0] = 'd'
	case m&fs.ModeSymlink != 0:
		b[0] = 'l'
	case m&fs.ModeNamedPipe != 0:
		b[0] = 'p'
	case m&fs.ModeSocket != 0:
		b[0] = 's'
	default:
		b[0] = '-'
	}
	special := func(set bool, i int, lower, upper byte) {
		if !set {
			return
		}
		if b[i] == 'x' {
			b[i] = lower
		} else {
			b[i] = upper
		}
	}
	special(m&fs.ModeSetuid != 0, 3, 's', 'S')
	special(m&fs.ModeSetgid != 0, 6, 's', 'S')
	special(m&fs.ModeSticky != 0, 9, 't', 'T')
	return string(b)
}

// HumanSize splits a byte count into a short number and its unit.
func HumanSize(size int64) (num, unit string) {
	if size < 1024 {
		return strconv.FormatInt(size, 10), "B"
	}
	units := []string{"K", "M", "G", "T", "P"}
	v := float64(size)
	for _, u := range units {
		v /= 1024
		if v < 99.95 {
			return fmt.Sprintf("%.1f", math.Round(v*10)/10), u
		}
		if v < 1024-0.5 {
			return fmt.Sprintf("%.0f", math.Round(v)), u
		}
	}
	return "+999", units[len(units)-1]
}

// FormatTime prints the time of day for the current year and the year
// otherwise.
func FormatTime(t, now time.Time) string {
	if t.Year() == now.Year() {
		return t.Format("Jan _2 15:04")
	}
	return t.Format("Jan _2  2006")
}

// SelectColumns resolves names against the registry. Unknown names become
// columns rendering the unknown marker.
func (r *ColumnRegistry) SelectColumns(names []string) (cols []Column, unknown []string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		c, ok := r.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			c = unknownColumn(name)
		}
		cols = append(cols, c)
	}
	return cols, unknown
}
