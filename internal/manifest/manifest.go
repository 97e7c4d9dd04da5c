// Package manifest serializes package descriptors into Unity's package.json format.
package manifest

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/vmunix/unipack/internal/descriptor"
)

// Filename is the name of the generated manifest.
const Filename = "package.json"

// Option configures Generate.
type Option func(*options)

type options struct {
	escape bool
}

// WithEscaping applies JSON string escaping to every value.
// Without it, values are inserted verbatim and must already be manifest-safe.
func WithEscaping() Option {
	return func(o *options) { o.escape = true }
}

// Generate produces the package.json document for d.
//
// Fields are written in the fixed order name, displayName, version, unity,
// description, keywords, category, author, dependencies. Keywords, author and
// dependencies are omitted when empty. The output has no trailing newline.
func Generate(d *descriptor.Descriptor, opts ...Option) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	w := &writer{escape: o.escape}

	w.raw("{")
	w.field("name", d.PackageName)
	w.raw(",")
	w.field("displayName", d.DisplayName)
	w.raw(",")
	w.field("version", d.Version)
	w.raw(",")
	w.field("unity", d.UnityVersion)
	w.raw(",")
	w.field("description", d.Description)

	if len(d.Keywords) > 0 {
		w.raw(`,"keywords":[`)
		for i, k := range d.Keywords {
			if i > 0 {
				w.raw(",")
			}
			w.str(k)
		}
		w.raw("]")
	}

	w.raw(",")
	w.field("category", d.Category)

	if d.HasAuthor() {
		w.raw(`,"author":{`)
		w.field("name", d.Author.Name)
		w.raw(",")
		w.field("email", d.Author.Email)
		w.raw(",")
		w.field("url", d.Author.URL)
		w.raw("}")
	}

	if deps := emittedDependencies(d.Dependencies); len(deps) > 0 {
		w.raw(`,"dependencies":{`)
		for i, dep := range deps {
			if i > 0 {
				w.raw(",")
			}
			w.field(dep.Name, dep.Version)
		}
		w.raw("}")
	}

	w.raw("}")
	return w.buf.String(), nil
}

// emittedDependencies drops entries with an empty name or version.
func emittedDependencies(deps []descriptor.Dependency) []descriptor.Dependency {
	var out []descriptor.Dependency
	for _, dep := range deps {
		if dep.Name == "" || dep.Version == "" {
			continue
		}
		out = append(out, dep)
	}
	return out
}

type writer struct {
	buf    strings.Builder
	escape bool
}

func (w *writer) raw(s string) {
	w.buf.WriteString(s)
}

func (w *writer) field(key, value string) {
	w.str(key)
	w.raw(":")
	w.str(value)
}

func (w *writer) str(s string) {
	if !w.escape {
		w.raw(`"` + s + `"`)
		return
	}
	w.raw(quote(s))
}

// quote returns s as a JSON string literal without HTML escaping.
func quote(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}
