package foldersize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/common"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
)

// IgnoreSpec is an ordered list of shell glob patterns tested against file
// basenames. A file is ignored when any pattern matches. The zero value
// ignores nothing.
type IgnoreSpec []string

// NoIgnore excludes nothing
func NoIgnore() IgnoreSpec { return nil }

// Pattern builds a spec from a single glob
func Pattern(pattern string) IgnoreSpec { return IgnoreSpec{pattern} }

// Patterns builds a spec from several globs, OR-combined
func Patterns(patterns ...string) IgnoreSpec { return IgnoreSpec(patterns) }

// Compile validates every pattern and returns a Matcher
func (s IgnoreSpec) Compile() (*Matcher, error) {
	for _, p := range s {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("%w %q: %w", common.ErrInvalidPattern, p, err)
		}
	}
	return &Matcher{patterns: append([]string(nil), s...)}, nil
}

// Matcher tests basenames against a compiled IgnoreSpec
type Matcher struct {
	patterns []string
}

// Match reports whether name matches any pattern. Only the final path
// element of name is considered.
func (m *Matcher) Match(name string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}
	base := filepath.Base(name)
	for _, p := range m.patterns {
		// Patterns were validated by Compile, so the error is always nil here
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

// rulesFile holds gitignore-style rules loaded from a file in the walk root
type rulesFile struct {
	gi *ignore.GitIgnore
}

func (r *rulesFile) match(rel string) bool {
	if r == nil || r.gi == nil {
		return false
	}
	return r.gi.MatchesPath(filepath.ToSlash(rel))
}

// loadRulesFile reads name from root. A missing file yields nil rules.
func loadRulesFile(fs afero.Fs, root, name string) (*rulesFile, error) {
	if name == "" {
		return nil, nil
	}

	path := filepath.Join(root, name)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if common.IsAlreadyAbsent(err) {
			return nil, nil
		}
		return nil, common.IOFailure(err, "read ignore file %s", path)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	return &rulesFile{gi: ignore.CompileIgnoreLines(lines...)}, nil
}
