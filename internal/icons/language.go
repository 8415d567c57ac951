package icons

import (
	"github.com/charmbracelet/log"
	"github.com/go-enry/go-enry/v2"

	"xlsd/internal/model"
)

// sampleSize is how much content the classifier reads.
const sampleSize = 4096

// languageIcons maps Linguist language names to icon names.
var languageIcons = map[string]string{
	"C":          "c",
	"C++":        "c",
	"Go":         "go",
	"Haskell":    "haskell",
	"Java":       "java",
	"JavaScript": "javascript",
	"TypeScript": "javascript",
	"Lua":        "lua",
	"Perl":       "perl",
	"PHP":        "php",
	"Python":     "python",
	"Ruby":       "ruby",
	"Rust":       "rust",
	"Shell":      "linux",
	"Xonsh":      "xonsh",
	"CSS":        "stylesheet",
	"SCSS":       "stylesheet",
	"Less":       "stylesheet",
	"Markdown":   "rich_text",
	"HTML":       "rich_text",
	"TeX":        "rich_text",
	"JSON":       "config",
	"YAML":       "config",
	"TOML":       "config",
	"INI":        "config",
	"XML":        "config",
	"CSV":        "chart",
}

// Language guesses the programming language of regular files with go-enry.
// It reads the first bytes of the file, so it is not in the default chain.
type Language struct {
	Logger *log.Logger
}

func (*Language) Name() string { return "language" }

func (l *Language) Icon(e *model.DirEntry) (string, bool) {
	kind, err := e.ResolvedKind()
	if err != nil || kind != model.KindFile {
		return "", false
	}
	if enry.IsVendor(e.Name) {
		return "", false
	}
	content, err := e.FS().Head(e.RealPath(), sampleSize)
	if err != nil {
		debug(l.Logger, "language: read failed", "path", e.Path, "err", err)
		return "", false
	}
	if enry.IsBinary(content) {
		return "", false
	}
	lang := enry.GetLanguage(e.Name, content)
	if lang == "" {
		return "", false
	}
	icon, ok := languageIcons[lang]
	return icon, ok
}
