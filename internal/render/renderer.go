package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"xlsd/internal/layout"
	"xlsd/internal/listing"
	"xlsd/internal/model"
	"xlsd/internal/width"
)

// Mode selects the shape of the output.
type Mode int

const (
	ModeGrid Mode = iota
	ModeLong
	ModeTree
)

func (m Mode) String() string {
	switch m {
	case ModeGrid:
		return "grid"
	case ModeLong:
		return "long"
	case ModeTree:
		return "tree"
	}
	return "unknown"
}

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

var headerStyle = lipgloss.NewStyle().Bold(true)

// Request is one invocation: the paths to list and how.
type Request struct {
	Paths      []string
	ShowHidden bool
	Mode       Mode
}

// Options configures a Renderer.
type Options struct {
	FS        model.FileSystem
	Sort      listing.SortFunc
	Formatter *Formatter
	Columns   *ColumnRegistry
	// ColumnNames selects and orders the long listing columns.
	ColumnNames []string
	Width       int
	TreeDepth   int
	Logger      *log.Logger
}

// Renderer lists paths in grid, long or tree form. The columns are resolved
// when the Renderer is built.
type Renderer struct {
	collector *listing.Collector
	formatter *Formatter
	columns   []Column
	tree      *Tree
	width     int
	logger    *log.Logger
}

// New builds a Renderer from opts.
func New(opts Options) *Renderer {
	collector := &listing.Collector{FS: opts.FS, Sort: opts.Sort, Logger: opts.Logger}
	registry := opts.Columns
	if registry == nil {
		registry = NewColumnRegistry()
	}
	cols, unknown := registry.SelectColumns(opts.ColumnNames)
	for _, name := range unknown {
		if opts.Logger != nil {
			opts.Logger.Warn("unknown column", "name", name)
		}
	}
	termWidth := opts.Width
	if termWidth <= 0 {
		termWidth = DefaultWidth
	}
	return &Renderer{
		collector: collector,
		formatter: opts.Formatter,
		columns:   cols,
		tree: &Tree{
			Collector: collector,
			Formatter: opts.Formatter,
			MaxDepth:  opts.TreeDepth,
			Logger:    opts.Logger,
		},
		width:  termWidth,
		logger: opts.Logger,
	}
}

// Render writes every path of req to w. A path that cannot be listed does not
// stop the others; the failures are returned together.
func (r *Renderer) Render(w io.Writer, req Request) error {
	headers := len(req.Paths) > 1 || req.Mode == ModeTree
	var errs []error
	first := true
	for _, p := range req.Paths {
		root, err := model.NewDirEntry(r.collector.FS, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if headers {
			if _, err := fmt.Fprintln(w, headerStyle.Render(p+":")); err != nil {
				return err
			}
		}
		if r.logger != nil {
			r.logger.Debug("rendering", "path", p, "mode", req.Mode)
		}
		if err := r.renderPath(w, root, req); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Renderer) renderPath(w io.Writer, root *model.DirEntry, req Request) error {
	isDir, err := root.IsDir()
	if err != nil || !isDir {
		// A file, or a link that does not lead to a directory, lists itself.
		return r.writeLines(w, r.lines([]*model.DirEntry{root}, req.Mode))
	}
	if req.Mode == ModeTree {
		return r.tree.Render(w, root.Path, req.ShowHidden)
	}
	entries, err := r.collector.List(root.Path, req.ShowHidden)
	if err != nil {
		return err
	}
	return r.writeLines(w, r.lines(entries, req.Mode))
}

func (r *Renderer) lines(entries []*model.DirEntry, mode Mode) []string {
	if len(entries) == 0 {
		return []string{model.NoFiles}
	}
	switch mode {
	case ModeLong:
		return r.table(entries).Lines()
	case ModeTree:
		// Single entries only; directories go through Tree.
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = r.formatter.Format(e, true)
		}
		return out
	}
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = r.formatter.Format(e, false)
	}
	return layout.Layout(labels, r.width).Lines()
}

func (r *Renderer) table(entries []*model.DirEntry) layout.Table {
	t := layout.Table{
		Columns: make([][]string, len(r.columns)),
		Aligns:  make([]layout.Align, len(r.columns)),
	}
	for c, col := range r.columns {
		t.Aligns[c] = col.Align
		cells := make([]string, len(entries))
		for i, e := range entries {
			cells[i] = col.Cell(e)
		}
		t.Columns[c] = cells
	}
	return t
}

func (r *Renderer) writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, width.Unescape(l)); err != nil {
			return err
		}
	}
	return nil
}
