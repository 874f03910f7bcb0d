// Package filtering selects MCP servers by name using glob patterns.
package filtering

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern is returned for a malformed glob pattern
var ErrInvalidPattern = errors.New("invalid name pattern")

// NameFilter includes or excludes names by glob pattern. Exclude takes precedence over
// include. The zero value includes everything.
type NameFilter struct {
	Include []string
	Exclude []string
}

// IsEmpty reports whether the filter has no patterns
func (f NameFilter) IsEmpty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Validate reports every invalid pattern of the filter
func (f NameFilter) Validate() error {
	var errs []error
	for _, p := range f.Include {
		if _, err := compile(p); err != nil {
			errs = append(errs, fmt.Errorf("%w: include pattern '%s': %w", ErrInvalidPattern, p, err))
		}
	}
	for _, p := range f.Exclude {
		if _, err := compile(p); err != nil {
			errs = append(errs, fmt.Errorf("%w: exclude pattern '%s': %w", ErrInvalidPattern, p, err))
		}
	}
	return errors.Join(errs...)
}

// compile validates pattern with filepath.Match syntax and compiles it without
// separators, so * also matches across slashes.
func compile(pattern string) (glob.Glob, error) {
	if _, err := filepath.Match(pattern, "test"); err != nil {
		return nil, err
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	return g, nil
}

func matchAny(patterns []string, name string) (string, bool, error) {
	for _, p := range patterns {
		g, err := compile(p)
		if err != nil {
			return p, false, err
		}
		if g.Match(name) {
			return p, true, nil
		}
	}
	return "", false, nil
}

// ShouldInclude determines if name passes the filter.
// Returns (shouldInclude bool, reason string). Invalid patterns exclude every name.
//
// Logic:
// 1. A name matching an exclude pattern is excluded
// 2. With include patterns, a name must match one of them
// 3. Otherwise the name is included
func (f NameFilter) ShouldInclude(name string) (bool, string) {
	pattern, matched, err := matchAny(f.Exclude, name)
	if err != nil {
		return false, fmt.Sprintf("invalid exclude pattern '%s': %v", pattern, err)
	}
	if matched {
		return false, fmt.Sprintf("excluded by pattern '%s'", pattern)
	}

	if len(f.Include) > 0 {
		pattern, matched, err = matchAny(f.Include, name)
		if err != nil {
			return false, fmt.Sprintf("invalid include pattern '%s': %v", pattern, err)
		}
		if matched {
			return true, fmt.Sprintf("included by pattern '%s'", pattern)
		}
		return false, fmt.Sprintf("no match found in include patterns %v", f.Include)
	}

	if len(f.Exclude) > 0 {
		return true, fmt.Sprintf("no match in exclude patterns %v", f.Exclude)
	}
	return true, "no name filters specified"
}
