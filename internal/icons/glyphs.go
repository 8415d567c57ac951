package icons

import (
	"maps"
	"strings"

	"xlsd/internal/width"
)

// DefaultIcon is used when no source has an opinion.
const DefaultIcon = "default"

// GlyphSet maps icon names to glyphs. Every glyph is padded to the width of
// the widest one so names line up regardless of the icon.
type GlyphSet struct {
	glyphs map[string]string
	width  int
}

// NewGlyphSet returns a set holding a copy of glyphs.
func NewGlyphSet(glyphs map[string]string) *GlyphSet {
	g := &GlyphSet{glyphs: maps.Clone(glyphs)}
	if g.glyphs == nil {
		g.glyphs = map[string]string{}
	}
	g.measure()
	return g
}

func (g *GlyphSet) measure() {
	g.width = 0
	for _, glyph := range g.glyphs {
		g.width = max(g.width, width.Of(glyph))
	}
}

// Add sets the glyph for name.
func (g *GlyphSet) Add(name, glyph string) {
	g.glyphs[name] = glyph
	g.measure()
}

// Width is the cell width of every padded glyph.
func (g *GlyphSet) Width() int { return g.width }

// Glyph returns the padded glyph for name, or the padded default glyph.
func (g *GlyphSet) Glyph(name string) string {
	if glyph, ok := g.Lookup(name); ok {
		return glyph
	}
	return g.Default()
}

// Lookup returns the padded glyph for name if one is registered.
func (g *GlyphSet) Lookup(name string) (string, bool) {
	glyph, ok := g.glyphs[name]
	if !ok {
		return "", false
	}
	return g.pad(glyph), true
}

// Default returns the glyph for DefaultIcon, falling back to a question mark
// sized to the set.
func (g *GlyphSet) Default() string {
	if glyph, ok := g.glyphs[DefaultIcon]; ok {
		return g.pad(glyph)
	}
	switch {
	case g.width == 1:
		return "?"
	case g.width > 1:
		return g.pad("❔")
	}
	return ""
}

// pad centers glyph, putting the odd cell on the right.
func (g *GlyphSet) pad(glyph string) string {
	gap := g.width - width.Of(glyph)
	if gap <= 0 {
		return glyph
	}
	left := gap / 2
	return strings.Repeat(" ", left) + glyph + strings.Repeat(" ", gap-left)
}

// DefaultGlyphs returns the built-in icon table.
func DefaultGlyphs() map[string]string {
	return map[string]string{
		DefaultIcon:    "❔",
		"error":        "🚫",
		"folder":       "📁",
		"text":         "📄",
		"chart":        "📊",
		"music":        "🎵",
		"video":        "🎬",
		"photo":        "📷",
		"iso":          "💿",
		"compressed":   "🗜",
		"application":  "⚙",
		"rich_text":    "📰",
		"stylesheet":   "🎨",
		"contacts":     "📇",
		"calendar":     "📅",
		"config":       "🔧",
		"lock":         "🔒",
		"pirate":       "🕱",
		"database":     "🗃",
		"package":      "📦",
		"mail":         "✉",
		"windows":      "🍷",
		"linux":        "🐧",
		"java":         "☕",
		"python":       "🐍",
		"php":          "🐘",
		"rust":         "🦀",
		"lua":          "🌙",
		"perl":         "🧅",
		"c":            "𝐂",
		"xonsh":        "🐚",
		"haskell":      "λ",
		"go":           "🐹",
		"javascript":   "📜",
		"ruby":         "💎",
		"symlink":      "🔗",
		"fifo":         "🚿",
		"socket":       "🌐",
		"block_device": "💾",
		"char_device":  "🖶",
	}
}
