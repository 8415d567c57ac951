// Package style turns abstract style directives into terminal escape
// sequences.
//
// A directive is one of:
//
//	bold, faint, italic, underline, blink, reverse, crossout
//	a color name (red, intense_blue, bg_cyan, bold_green, ...)
//	a hex color (#5f87af) or a 256-palette index (color208)
//	raw SGR parameters as found in LS_COLORS (01;34)
//	any of the above wrapped as markup, e.g. {INTENSE_YELLOW}
//
// Colors are degraded to the active termenv profile; the Ascii profile
// disables styling entirely.
package style

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Set is an ordered list of directives applied to one piece of text.
type Set []string

// With returns a copy of s with directives appended.
func (s Set) With(directives ...string) Set {
	out := make(Set, 0, len(s)+len(directives))
	out = append(out, s...)
	return append(out, directives...)
}

var colorIndex = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"purple":  5,
	"cyan":    6,
	"white":   7,
}

var attributes = map[string]string{
	"bold":      termenv.BoldSeq,
	"faint":     termenv.FaintSeq,
	"italic":    termenv.ItalicSeq,
	"underline": termenv.UnderlineSeq,
	"blink":     termenv.BlinkSeq,
	"reverse":   termenv.ReverseSeq,
	"crossout":  termenv.CrossOutSeq,
}

// Styler renders directive sets for one color profile.
type Styler struct {
	profile termenv.Profile
}

// NewStyler returns a Styler for profile.
func NewStyler(profile termenv.Profile) *Styler {
	return &Styler{profile: profile}
}

// Render wraps text in the SGR sequence for set followed by a reset. Text is
// returned untouched when nothing applies.
func (s *Styler) Render(text string, set Set) string {
	if s == nil || s.profile == termenv.Ascii || text == "" {
		return text
	}
	params := s.Params(set)
	if len(params) == 0 {
		return text
	}
	return termenv.CSI + strings.Join(params, ";") + "m" + text + termenv.CSI + termenv.ResetSeq + "m"
}

// Params translates every directive of set and concatenates the SGR
// parameters. Unknown directives contribute nothing.
func (s *Styler) Params(set Set) []string {
	var params []string
	for _, d := range set {
		params = append(params, s.directive(d)...)
	}
	return params
}

func (s *Styler) directive(d string) []string {
	d = normalize(d)
	switch {
	case d == "" || d == "reset" || d == "normal" || d == "default":
		return nil
	case isRawSGR(d):
		return strings.Split(strings.Trim(d, ";"), ";")
	}
	if seq, ok := attributes[d]; ok {
		return []string{seq}
	}
	if seq := s.color(d, false); seq != "" {
		return []string{seq}
	}
	for _, prefix := range []string{"bg_", "background_"} {
		if rest, ok := strings.CutPrefix(d, prefix); ok {
			if seq := s.color(rest, true); seq != "" {
				return []string{seq}
			}
			return nil
		}
	}
	// Compound markup such as BOLD_RED or UNDERLINE_INTENSE_CYAN.
	for attr, seq := range attributes {
		if rest, ok := strings.CutPrefix(d, attr+"_"); ok {
			if c := s.color(rest, false); c != "" {
				return []string{seq, c}
			}
		}
	}
	return nil
}

func (s *Styler) color(name string, background bool) string {
	var c termenv.Color
	switch {
	case strings.HasPrefix(name, "#"):
		c = s.profile.Color(name)
	case strings.HasPrefix(name, "color"):
		n, err := strconv.Atoi(strings.TrimPrefix(name, "color"))
		if err != nil || n < 0 || n > 255 {
			return ""
		}
		c = s.profile.Convert(termenv.ANSI256Color(n))
	default:
		idx, ok := ansiIndex(name)
		if !ok {
			return ""
		}
		c = s.profile.Convert(termenv.ANSIColor(idx))
	}
	if c == nil {
		return ""
	}
	return c.Sequence(background)
}

func ansiIndex(name string) (int, bool) {
	for _, prefix := range []string{"intense_", "bright_", "light_"} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			idx, ok := colorIndex[rest]
			return idx + 8, ok
		}
	}
	idx, ok := colorIndex[name]
	return idx, ok
}

func normalize(d string) string {
	d = strings.TrimSpace(d)
	if len(d) > 1 && d[0] == '{' && d[len(d)-1] == '}' {
		d = d[1 : len(d)-1]
	}
	return strings.ToLower(d)
}

func isRawSGR(d string) bool {
	if d == "" {
		return false
	}
	for _, r := range d {
		if (r < '0' || r > '9') && r != ';' {
			return false
		}
	}
	return true
}

// IsMarkupToken reports whether tok (without braces) names a directive, so
// that "{CYAN}" in a text fragment can be recognized as markup.
func IsMarkupToken(tok string) bool {
	if tok == "" || tok != strings.ToUpper(tok) {
		return false
	}
	d := strings.ToLower(tok)
	switch d {
	case "reset", "normal", "default", "no_color":
		return true
	}
	// Markup never carries raw SGR parameters.
	if isRawSGR(d) {
		return false
	}
	return len(NewStyler(termenv.TrueColor).directive(d)) > 0
}
