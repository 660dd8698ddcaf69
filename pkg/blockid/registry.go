// Package blockid allocates and tracks the identifiers of editor blocks.
package blockid

import "strconv"

// DefaultPrefix is used when a Registry is created with an empty prefix.
const DefaultPrefix = "mdl"

// Registry hands out block identifiers and tracks which ones are live.
//
// Identifiers are built from a monotonically increasing counter, so an id is
// never issued twice within the lifetime of a Registry, even after it has been
// released. A Registry is not safe for concurrent use.
type Registry struct {
	prefix string
	next   uint64
	live   map[string]struct{}
}

// New creates an empty registry whose ids start with prefix.
func New(prefix string) *Registry {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Registry{
		prefix: prefix,
		live:   make(map[string]struct{}),
	}
}

// Prefix returns the prefix shared by every id of this registry.
func (r *Registry) Prefix() string {
	return r.prefix
}

// Allocate returns a fresh identifier and marks it live.
func (r *Registry) Allocate() string {
	for {
		r.next++
		id := r.prefix + "-" + strconv.FormatUint(r.next, 10)
		if _, taken := r.live[id]; taken {
			continue
		}
		r.live[id] = struct{}{}
		return id
	}
}

// Release removes id from the live set. Unknown ids are ignored.
func (r *Registry) Release(id string) {
	delete(r.live, id)
}

// Has reports whether id is currently live.
func (r *Registry) Has(id string) bool {
	_, ok := r.live[id]
	return ok
}

// Len returns the number of live identifiers.
func (r *Registry) Len() int {
	return len(r.live)
}

// Clear releases every live identifier. The counter is not reset.
func (r *Registry) Clear() {
	clear(r.live)
}
