// Package resolve is the Type Resolver: it turns a dotted fixture name such
// as "fixtures.EchoFixture" into a Constructor that can build an instance of
// it. The original resolves names by importing Python modules at runtime;
// a statically compiled Go binary cannot load arbitrary code at runtime, so
// per the plugin-registry redesign this package resolves against a
// build-time catalog populated by each fixture package's init() function,
// plus descriptor files scanned from --syspath directories that alias
// additional names onto already-compiled constructors.
package resolve

import (
	"fmt"
	"sync"
)

// Constructor builds one fixture instance from its SLIM constructor
// arguments (already plain strings off the wire; argument conversion, if
// any, is the constructed fixture's own concern for anything beyond
// zero-arg construction -- most SLIM fixtures take no constructor args).
type Constructor func(args []string) (interface{}, error)

// registry is the process-wide catalog, populated once at init() time by
// every fixture package that wants to be constructible by name -- the
// static equivalent of the original's "module import cache populated
// process-wide".
var (
	regMu    sync.RWMutex
	registry = map[string]Constructor{}
)

// Register associates dottedName with ctor. Call this from a fixture
// package's init(). Re-registering the same name is an error: the original
// get_module cache would otherwise silently keep returning whichever
// module won the race, masking a packaging mistake.
func Register(dottedName string, ctor Constructor) error {
	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := registry[dottedName]; exists {
		return fmt.Errorf("resolve: %q already registered", dottedName)
	}
	registry[dottedName] = ctor
	return nil
}

// lookup returns the Constructor registered under exactly dottedName.
func lookup(dottedName string) (Constructor, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	ctor, ok := registry[dottedName]
	return ctor, ok
}

// Names returns every dotted name currently registered, for diagnostics
// and descriptor validation. The order is unspecified.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}
