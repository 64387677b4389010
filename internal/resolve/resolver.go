package resolve

import "sync"

// Resolver is a session-scoped view over the process-wide registry: it adds
// the "search path" semantics of get_type/add_import_path -- a dotted name
// that doesn't match the registry outright is retried with each import
// root prepended, most-recently-added root first -- plus a per-session
// cache so repeated lookups of the same name are idempotent, matching
// spec's "type-resolver lookups are idempotent" invariant.
type Resolver struct {
	mu    sync.Mutex
	roots []string
	cache map[string]Constructor
}

// NewResolver returns a Resolver with no import roots and an empty cache.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]Constructor)}
}

// AddImportRoot prepends root to the search path used by GetType for names
// that don't resolve directly. The most recently added root is tried
// first, matching the original's "prepend to search roots" behaviour.
func (r *Resolver) AddImportRoot(root string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roots = append([]string{root}, r.roots...)
}

// GetType resolves dottedName to a Constructor, trying the exact name
// first, then root+"."+dottedName for each import root in search order.
// The result is cached so a second lookup for the same name is a cache hit
// even if the registry changed in between (the original's module cache is
// equally insensitive to concurrent re-imports).
func (r *Resolver) GetType(dottedName string) (Constructor, error) {
	r.mu.Lock()
	if ctor, ok := r.cache[dottedName]; ok {
		r.mu.Unlock()
		return ctor, nil
	}
	roots := append([]string(nil), r.roots...)
	r.mu.Unlock()

	if ctor, ok := lookup(dottedName); ok {
		r.remember(dottedName, ctor)
		return ctor, nil
	}
	for _, root := range roots {
		qualified := root + "." + dottedName
		if ctor, ok := lookup(qualified); ok {
			r.remember(dottedName, ctor)
			return ctor, nil
		}
	}
	return nil, &NotFoundError{Name: dottedName}
}

func (r *Resolver) remember(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[name] = ctor
}

// NotFoundError reports that no constructor matched a dotted name under
// any of the resolver's current search roots.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "no fixture type registered for " + e.Name
}
