package pathutil

import "strings"

// IgnoreSet matches candidate paths against a descriptor's ignore fragments.
//
// A fragment is resolved against the project root the same way source paths are,
// and a candidate is ignored when its normalized form contains any normalized
// fragment. Empty fragments are dropped; they would otherwise match every path.
type IgnoreSet struct {
	fragments []string
}

// NewIgnoreSet builds an IgnoreSet for the given project root.
func NewIgnoreSet(root string, fragments []string) *IgnoreSet {
	s := &IgnoreSet{}
	for _, f := range fragments {
		if strings.TrimSpace(f) == "" {
			continue
		}
		s.fragments = append(s.fragments, Normalize(root, f))
	}
	return s
}

// Match reports whether candidate, an absolute or normalized path, is ignored.
func (s *IgnoreSet) Match(candidate string) bool {
	if s == nil || len(s.fragments) == 0 {
		return false
	}
	c := Clean(candidate)
	for _, f := range s.fragments {
		if strings.Contains(c, f) {
			return true
		}
	}
	return false
}

// Len returns the number of active fragments.
func (s *IgnoreSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fragments)
}
