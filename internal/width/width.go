// Package width measures how many terminal cells a styled string occupies.
package width

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"

	"xlsd/internal/style"
)

const (
	bel  = '\a'
	esc  = ansi.Marker
	vs16 = '\uFE0F'
)

// Of returns the display width of s once escape sequences and style markup
// are removed. Emoji presentation (VS16) counts as two cells.
func Of(s string) int {
	w := 0
	prev := 0
	for _, r := range Strip(s) {
		if r == vs16 {
			if prev == 1 {
				w++
				prev = 2
			}
			continue
		}
		prev = runewidth.RuneWidth(r)
		w += prev
	}
	return w
}

// Strip removes complete escape sequences and recognized {TOKEN} markup, and
// turns an escaped "{{" into a literal brace. Unterminated sequences are kept
// as text.
func Strip(s string) string {
	if !strings.ContainsAny(s, "\x1b{") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); {
		switch runes[i] {
		case esc:
			if n := escapeLen(runes[i:]); n > 0 {
				i += n
				continue
			}
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				b.WriteRune('{')
				i += 2
				continue
			}
			if n := markupLen(runes[i:]); n > 0 {
				i += n
				continue
			}
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

// escapeLen returns the length of the escape sequence starting at rs[0], or 0
// if it is not terminated.
func escapeLen(rs []rune) int {
	if len(rs) < 2 {
		return 0
	}
	switch rs[1] {
	case '[':
		// CSI: parameters and intermediates, then a final byte in 0x40-0x7e.
		for j := 2; j < len(rs); j++ {
			if rs[j] >= 0x40 && rs[j] <= 0x7e {
				return j + 1
			}
			if rs[j] < 0x20 || rs[j] > 0x3f {
				return 0
			}
		}
		return 0
	case ']':
		// OSC, terminated by BEL or ESC \.
		for j := 2; j < len(rs); j++ {
			if rs[j] == bel {
				return j + 1
			}
			if rs[j] == esc && j+1 < len(rs) && rs[j+1] == '\\' {
				return j + 2
			}
		}
		return 0
	default:
		return 2
	}
}

func markupLen(rs []rune) int {
	for j := 1; j < len(rs) && j < 40; j++ {
		if rs[j] == '}' {
			if style.IsMarkupToken(string(rs[1:j])) {
				return j + 1
			}
			return 0
		}
	}
	return 0
}

// Escape protects literal braces in s, such as those of a file name, from
// being read as markup.
func Escape(s string) string {
	return strings.ReplaceAll(s, "{", "{{")
}

// Unescape reverses Escape once text is ready to be written.
func Unescape(s string) string {
	return strings.ReplaceAll(s, "{{", "{")
}

// Pad appends spaces to s until it is n cells wide.
func Pad(s string, n int) string {
	if gap := n - Of(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PadLeft prepends spaces to s until it is n cells wide.
func PadLeft(s string, n int) string {
	if gap := n - Of(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
