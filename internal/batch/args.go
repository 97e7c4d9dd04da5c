// Package batch runs non-interactive exports driven by command-line tokens.
package batch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Recognized argument keys.
const (
	KeyID                       = "id"
	KeyVersion                  = "version"
	KeyGenerateVersionConstants = "generateversionconstants"
)

// Args holds parsed command-line tokens keyed by case-folded name.
// A nil value marks a bare token with no "=value" part.
type Args map[string]*string

// ParseArgs parses key=value tokens. Keys are matched case-insensitively and
// split from the value on the first "="; a later token for the same key wins.
func ParseArgs(tokens []string) Args {
	fold := cases.Fold()
	args := make(Args, len(tokens))
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		key = fold.String(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if !ok {
			if _, seen := args[key]; !seen {
				args[key] = nil
			}
			continue
		}
		args[key] = &value
	}
	return args
}

// Has reports whether key was passed, with or without a value.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Value returns the value for key and whether one was given.
func (a Args) Value(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// IDs returns the descriptor IDs passed in the id argument, or nil when every
// descriptor should be processed.
func (a Args) IDs() []string {
	raw, ok := a.Value(KeyID)
	if !ok {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Version returns the version override, or "" when none was passed.
func (a Args) Version() string {
	v, _ := a.Value(KeyVersion)
	return strings.TrimSpace(v)
}

// GenerateVersionConstants reports whether version constants should be generated.
// A bare flag counts as true.
func (a Args) GenerateVersionConstants() (bool, error) {
	if !a.Has(KeyGenerateVersionConstants) {
		return false, nil
	}
	raw, ok := a.Value(KeyGenerateVersionConstants)
	if !ok {
		return true, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s: %w", KeyGenerateVersionConstants, err)
	}
	return b, nil
}

// String renders the arguments as sorted "key => value" lines.
func (a Args) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		v, _ := a.Value(k)
		fmt.Fprintf(&sb, "%s => %s\n", k, v)
	}
	return sb.String()
}
