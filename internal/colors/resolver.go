package colors

import (
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"

	"xlsd/internal/model"
	"xlsd/internal/style"
)

// Resolver computes the style set of an entry from a snapshot of rules.
type Resolver struct {
	rules  *Rules
	logger *log.Logger
}

// NewResolver snapshots rules. Later edits to rules are not observed.
func NewResolver(rules *Rules, logger *log.Logger) *Resolver {
	if rules == nil {
		rules = NewRules()
	}
	return &Resolver{rules: rules.Clone(), logger: logger}
}

// Resolve returns the kind directives of e followed by the directives of every
// glob matching its bare name. The result may be empty.
func (r *Resolver) Resolve(e *model.DirEntry) style.Set {
	var set style.Set
	if code := r.Code(e); code != "" {
		set = append(set, r.rules.Kinds[code]...)
	}
	for _, g := range r.rules.globs {
		if ok, _ := filepath.Match(g.pattern, e.Name); ok {
			set = append(set, g.set...)
		}
	}
	return set
}

// Code returns the kind code selected for e, or "" when its metadata cannot
// be read.
func (r *Resolver) Code(e *model.DirEntry) string {
	meta, err := e.Metadata()
	if err != nil {
		if r.logger != nil {
			r.logger.Debug("color: metadata failed", "path", e.Path, "err", err)
		}
		return ""
	}
	if e.IsSymlink() {
		if !e.Exists() {
			return CodeOrphan
		}
		if !r.followLinks() {
			return CodeLink
		}
		target, err := e.FS().Stat(e.Path)
		if err != nil {
			return CodeOrphan
		}
		return r.code(target, e.Executable)
	}
	return r.code(meta, e.Executable)
}

func (r *Resolver) followLinks() bool {
	set := r.rules.Kinds[CodeLink]
	return len(set) == 1 && set[0] == linkTarget
}

func (r *Resolver) code(meta model.Metadata, executable func() bool) string {
	mode := meta.Mode
	switch meta.Kind() {
	case model.KindDir:
		return r.dirCode(mode)
	case model.KindFIFO:
		return CodePipe
	case model.KindBlockDevice:
		return CodeBlock
	case model.KindCharDevice:
		return CodeChar
	case model.KindSocket:
		return CodeSocket
	}
	switch {
	case mode&fs.ModeSetuid != 0:
		return CodeSetuid
	case mode&fs.ModeSetgid != 0:
		return CodeSetgid
	case executable():
		return CodeExec
	}
	return CodeFile
}

// dirCode refines "di" with the sticky and other-writable bits, when the
// table styles the refinement.
func (r *Resolver) dirCode(mode fs.FileMode) string {
	sticky := mode&fs.ModeSticky != 0
	others := mode&0o002 != 0
	var code string
	switch {
	case sticky && others:
		code = CodeStickyOthers
	case others:
		code = CodeOthers
	case sticky:
		code = CodeSticky
	default:
		return CodeDir
	}
	if _, ok := r.rules.Kinds[code]; ok {
		return code
	}
	return CodeDir
}
