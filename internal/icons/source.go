// Package icons resolves a semantic icon name for each entry through an
// ordered chain of sources.
package icons

import (
	"github.com/charmbracelet/log"

	"xlsd/internal/model"
)

// Source names an icon for an entry. ok is false when the source has no
// opinion; sources never fail the resolution.
type Source interface {
	Name() string
	Icon(e *model.DirEntry) (icon string, ok bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc struct {
	ID string
	Fn func(e *model.DirEntry) (string, bool)
}

func (s SourceFunc) Name() string { return s.ID }

func (s SourceFunc) Icon(e *model.DirEntry) (string, bool) { return s.Fn(e) }

// Registry holds every known source by name. It is written during setup and
// only read afterwards.
type Registry struct {
	sources map[string]Source
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// DefaultRegistry returns a registry with every built-in source.
func DefaultRegistry(sniffer model.ContentSniffer, logger *log.Logger) *Registry {
	r := NewRegistry()
	r.Register(Extension{})
	r.Register(&ContentSniff{Sniffer: sniffer, Logger: logger})
	r.Register(&Language{Logger: logger})
	r.Register(Kind{})
	return r
}

// Register adds or replaces a source.
func (r *Registry) Register(s Source) {
	if _, exists := r.sources[s.Name()]; !exists {
		r.order = append(r.order, s.Name())
	}
	r.sources[s.Name()] = s
}

// Names lists registered sources in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Chain snapshots the sources named in order. Unknown names are skipped and
// reported through logger.
func (r *Registry) Chain(order []string, glyphs *GlyphSet, logger *log.Logger) *Chain {
	c := &Chain{glyphs: glyphs}
	for _, name := range order {
		s, ok := r.sources[name]
		if !ok {
			if logger != nil {
				logger.Warn("unknown icon source", "name", name)
			}
			continue
		}
		c.sources = append(c.sources, s)
	}
	return c
}

// Chain is an immutable, ordered list of sources.
type Chain struct {
	sources []Source
	glyphs  *GlyphSet
}

// Resolve returns the icon name of the first source with an opinion, or
// DefaultIcon.
func (c *Chain) Resolve(e *model.DirEntry) string {
	for _, s := range c.sources {
		if name, ok := s.Icon(e); ok && name != "" {
			return name
		}
	}
	return DefaultIcon
}

// Glyph resolves the icon of e and looks its glyph up.
func (c *Chain) Glyph(e *model.DirEntry) string {
	if c.glyphs == nil {
		return ""
	}
	return c.glyphs.Glyph(c.Resolve(e))
}

func debug(logger *log.Logger, msg string, keyvals ...any) {
	if logger != nil {
		logger.Debug(msg, keyvals...)
	}
}
