package style

import "strings"

// Palette keys.
const (
	Reset         = "reset"
	Emphasis      = "emphasis"
	Underline     = "underline"
	OwnerUser     = "owner_user"
	OwnerGroup    = "owner_group"
	SizeUnit      = "size_unit"
	SymlinkTarget = "symlink_target"
)

// Palette is the base set of named styles used outside of the color rules.
type Palette map[string]Set

// DefaultPalette returns the built-in palette.
func DefaultPalette() Palette {
	return Palette{
		Reset:         {"{RESET}"},
		Emphasis:      {"{BOLD}"},
		Underline:     {"{UNDERLINE}"},
		OwnerUser:     {"{INTENSE_YELLOW}"},
		OwnerGroup:    {"{BLUE}"},
		SizeUnit:      {"{CYAN}"},
		SymlinkTarget: {"{CYAN}"},
	}
}

// Merge returns a copy of p where every entry of overrides replaces the
// default. Values are whitespace or comma separated directive lists.
func (p Palette) Merge(overrides map[string]string) Palette {
	out := make(Palette, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[strings.ToLower(k)] = ParseSet(v)
	}
	return out
}

// Get returns the set stored under key, or an empty set.
func (p Palette) Get(key string) Set {
	return p[key]
}

// ParseSet splits a directive list such as "bold, {CYAN}" or "01;34".
func ParseSet(v string) Set {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	set := make(Set, 0, len(fields))
	for _, f := range fields {
		set = append(set, splitMarkup(f)...)
	}
	return set
}

// splitMarkup breaks "{BOLD}{RED}" into separate directives.
func splitMarkup(f string) []string {
	if !strings.HasPrefix(f, "{") || strings.Count(f, "{") < 2 {
		return []string{f}
	}
	var out []string
	for part := range strings.SplitSeq(f, "}") {
		if part == "" {
			continue
		}
		out = append(out, part+"}")
	}
	return out
}
