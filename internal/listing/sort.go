// Package listing collects the children of a directory and orders them.
package listing

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"xlsd/internal/model"
)

// Built-in sort strategy names.
const (
	DirectoriesFirst = "directories-first"
	Alphabetical     = "alphabetical"
	AsIs             = "as-is"
)

// SortFunc orders entries in place.
type SortFunc func(entries []*model.DirEntry)

// Registry maps normalized strategy names to sort functions.
type Registry struct {
	strategies map[string]SortFunc
}

// NewRegistry returns a registry holding the built-in strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: map[string]SortFunc{}}
	r.Register(DirectoriesFirst, SortDirectoriesFirst)
	r.Register(Alphabetical, SortAlphabetical)
	r.Register(AsIs, func([]*model.DirEntry) {})
	return r
}

// Register adds or replaces a strategy.
func (r *Registry) Register(name string, fn SortFunc) {
	r.strategies[normalize(name)] = fn
}

// Lookup returns the strategy registered under name. Unknown names give the
// identity order and a warning.
func (r *Registry) Lookup(name string, logger *log.Logger) SortFunc {
	if fn, ok := r.strategies[normalize(name)]; ok {
		return fn
	}
	if logger != nil {
		logger.Warn("unknown sort method, keeping listing order", "name", name)
	}
	return r.strategies[AsIs]
}

// Names lists the registered strategies, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// normalize makes "directories_first", "Directories-First" and
// "directories-first" equivalent.
func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

func byLowerName(a, b *model.DirEntry) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// SortAlphabetical orders entries by case-insensitive name.
func SortAlphabetical(entries []*model.DirEntry) {
	slices.SortStableFunc(entries, byLowerName)
}

// SortDirectoriesFirst puts directories ahead of everything else, each group
// in case-insensitive name order. Links that cannot be resolved count as
// directories.
func SortDirectoriesFirst(entries []*model.DirEntry) {
	dirs := make(map[*model.DirEntry]bool, len(entries))
	for _, e := range entries {
		isDir, err := e.IsDir()
		dirs[e] = isDir || err != nil
	}
	slices.SortStableFunc(entries, func(a, b *model.DirEntry) int {
		switch {
		case dirs[a] && !dirs[b]:
			return -1
		case !dirs[a] && dirs[b]:
			return 1
		}
		return byLowerName(a, b)
	})
}
