// Package render turns collected entries into styled terminal lines: packed
// grids, aligned long listings and trees.
package render

import (
	"strings"

	"github.com/charmbracelet/log"

	"xlsd/internal/colors"
	"xlsd/internal/icons"
	"xlsd/internal/model"
	"xlsd/internal/style"
	"xlsd/internal/width"
)

// Formatter builds the label of a single entry.
type Formatter struct {
	Icons   *icons.Chain
	Colors  *colors.Resolver
	Styler  *style.Styler
	Palette style.Palette
	Logger  *log.Logger
}

// Format returns the icon, name and decorations of e wrapped in its style.
// Directories get a trailing separator, and so do entries whose directory-ness
// cannot be determined. With showTarget, symlinks are followed by an arrow and
// the raw link text. Names and targets are escaped with width.Escape.
func (f *Formatter) Format(e *model.DirEntry, showTarget bool) string {
	var b strings.Builder
	if f.Icons != nil {
		if glyph := f.Icons.Glyph(e); glyph != "" {
			b.WriteString(glyph)
			b.WriteByte(' ')
		}
	}
	b.WriteString(width.Escape(e.Name))

	isDir, err := e.IsDir()
	if err != nil || isDir {
		b.WriteByte('/')
	}

	label := f.Styler.Render(b.String(), f.styleOf(e, isDir && err == nil))
	if showTarget && e.IsSymlink() {
		target, err := e.Target()
		if err != nil {
			f.debug("readlink failed", "path", e.Path, "err", err)
			target = model.ErrorCell
		}
		label += " " + model.SymlinkArrow + " " + f.Styler.Render(width.Escape(target), f.Palette.Get(style.SymlinkTarget))
	}
	return label
}

// styleOf layers emphasis for executable regular files and underline for
// symlinks on top of the color rules.
func (f *Formatter) styleOf(e *model.DirEntry, isDir bool) style.Set {
	var set style.Set
	if f.Colors != nil {
		set = f.Colors.Resolve(e)
	}
	if !isDir {
		kind, err := e.ResolvedKind()
		if err == nil && kind == model.KindFile && e.Executable() {
			set = set.With(f.Palette.Get(style.Emphasis)...)
		}
	}
	if e.IsSymlink() {
		set = set.With(f.Palette.Get(style.Underline)...)
	}
	return set
}

func (f *Formatter) debug(msg string, keyvals ...any) {
	if f.Logger != nil {
		f.Logger.Debug(msg, keyvals...)
	}
}
