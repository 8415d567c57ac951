// Package colors maps entries to style directives the way LS_COLORS does.
package colors

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"xlsd/internal/style"
)

// Kind codes understood by the resolver.
const (
	CodeDir          = "di"
	CodeOrphan       = "or"
	CodeLink         = "ln"
	CodePipe         = "pi"
	CodeBlock        = "bd"
	CodeChar         = "cd"
	CodeSocket       = "so"
	CodeSetuid       = "su"
	CodeSetgid       = "sg"
	CodeStickyOthers = "tw"
	CodeOthers       = "ow"
	CodeSticky       = "st"
	CodeExec         = "ex"
	CodeFile         = "fi"
)

// linkTarget is the LS_COLORS value asking links to take their target's color.
const linkTarget = "target"

type glob struct {
	pattern string
	set     style.Set
}

// Rules holds the kind table and the ordered glob table.
type Rules struct {
	Kinds map[string]style.Set
	globs []glob
}

// NewRules returns empty rules.
func NewRules() *Rules {
	return &Rules{Kinds: map[string]style.Set{}}
}

// SetKind sets the directives for a two-letter kind code.
func (r *Rules) SetKind(code string, set style.Set) {
	r.Kinds[code] = set
}

// AddGlob appends a pattern matched against bare file names. A pattern
// already present is replaced in place.
func (r *Rules) AddGlob(pattern string, set style.Set) error {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("glob %q: %w", pattern, err)
	}
	for i := range r.globs {
		if r.globs[i].pattern == pattern {
			r.globs[i].set = set
			return nil
		}
	}
	r.globs = append(r.globs, glob{pattern: pattern, set: set})
	return nil
}

// Globs lists the glob patterns in match order.
func (r *Rules) Globs() []string {
	out := make([]string, len(r.globs))
	for i, g := range r.globs {
		out[i] = g.pattern
	}
	return out
}

// Clone returns a deep copy, used as the immutable snapshot of a render.
func (r *Rules) Clone() *Rules {
	c := NewRules()
	for k, v := range r.Kinds {
		c.Kinds[k] = append(style.Set(nil), v...)
	}
	c.globs = make([]glob, len(r.globs))
	for i, g := range r.globs {
		c.globs[i] = glob{pattern: g.pattern, set: append(style.Set(nil), g.set...)}
	}
	return c
}

// ParseLSColors reads an LS_COLORS string ("di=01;34:*.tar=01;31:...").
// Two-letter keys go to the kind table, anything else is a glob. Malformed
// entries are skipped and reported together; the remaining rules are usable.
func ParseLSColors(s string) (*Rules, error) {
	r := NewRules()
	var errs []error
	for _, field := range strings.Split(s, ":") {
		if field == "" {
			continue
		}
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			errs = append(errs, fmt.Errorf("malformed entry %q", field))
			continue
		}
		set := style.ParseSet(value)
		if isKindCode(key) {
			r.SetKind(key, set)
			continue
		}
		if err := r.AddGlob(key, set); err != nil {
			errs = append(errs, err)
		}
	}
	return r, errors.Join(errs...)
}

func isKindCode(key string) bool {
	return len(key) == 2 && !strings.ContainsAny(key, "*?[\\")
}

// DefaultRules mirrors the dircolors defaults.
func DefaultRules() *Rules {
	r, _ := ParseLSColors(defaultLSColors)
	return r
}

const defaultLSColors = "rs=0:di=01;34:ln=01;36:pi=40;33:so=01;35:do=01;35:" +
	"bd=40;33;01:cd=40;33;01:or=40;31;01:su=37;41:sg=30;43:" +
	"tw=30;42:ow=34;42:st=37;44:ex=01;32:" +
	// archives
	"*.tar=01;31:*.tgz=01;31:*.zip=01;31:*.7z=01;31:*.rar=01;31:*.gz=01;31:" +
	"*.xz=01;31:*.bz2=01;31:*.zst=01;31:*.deb=01;31:*.rpm=01;31:*.jar=01;31:" +
	"*.iso=01;31:*.apk=01;31:" +
	// images and video
	"*.jpg=01;35:*.jpeg=01;35:*.png=01;35:*.gif=01;35:*.bmp=01;35:*.svg=01;35:" +
	"*.tif=01;35:*.tiff=01;35:*.webp=01;35:*.xcf=01;35:*.mp4=01;35:*.mkv=01;35:" +
	"*.webm=01;35:*.avi=01;35:" +
	// audio
	"*.flac=00;36:*.mp3=00;36:*.ogg=00;36:*.wav=00;36:" +
	// leftovers
	"*~=00;90:*.bak=00;90:*.swp=00;90:*.tmp=00;90"
