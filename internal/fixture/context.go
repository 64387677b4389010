// Package fixture implements the Execution Context: the per-session
// facade over instance storage, symbol binding, library fallback, and
// case-convention method resolution that every instruction executes
// against.
package fixture

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AleksandrIakhnev/waferslim/internal/alias"
	"github.com/AleksandrIakhnev/waferslim/internal/convert"
	"github.com/AleksandrIakhnev/waferslim/internal/resolve"
	"github.com/AleksandrIakhnev/waferslim/internal/slimerr"
)

// Context holds everything one SLIM connection accumulates: instances,
// symbols, the type resolver's session-local import roots, and a library
// fallback stack. It is created when a connection is accepted and
// discarded when it closes; nothing here is shared between connections.
type Context struct {
	resolver   *resolve.Resolver
	converters *convert.Registry

	instances map[string]interface{}
	symbols   map[string]string
	libraries []interface{}
}

// NewContext returns an empty Context backed by its own resolver (session
// search roots) and its own cloned converter registry (session-local
// converter overrides).
func NewContext(baseConverters *convert.Registry) *Context {
	return &Context{
		resolver:   resolve.NewResolver(),
		converters: baseConverters.Clone(),
		instances:  make(map[string]interface{}),
		symbols:    make(map[string]string),
	}
}

// Converters returns this session's converter registry, so instructions
// can mutate it (e.g. a fixture call that switches bool spelling) or read
// it when stringifying a call result.
func (c *Context) Converters() *convert.Registry { return c.converters }

// StoreInstance binds name to obj for the remainder of the session.
func (c *Context) StoreInstance(name string, obj interface{}) {
	c.instances[name] = obj
}

// GetInstance returns the instance bound to name, or a ResolutionError of
// kind NoInstance if nothing is bound.
func (c *Context) GetInstance(name string) (interface{}, error) {
	obj, ok := c.instances[name]
	if !ok {
		return nil, &slimerr.ResolutionError{Kind: slimerr.NoInstance, Target: name}
	}
	return obj, nil
}

// StoreSymbol binds name to value (the already-stringified result of a
// prior call) for callAndAssign.
func (c *Context) StoreSymbol(name, value string) {
	c.symbols[name] = value
}

// GetSymbol returns the value bound to name and whether it was bound.
func (c *Context) GetSymbol(name string) (string, bool) {
	v, ok := c.symbols[name]
	return v, ok
}

// GetType resolves dottedName against this session's resolver.
func (c *Context) GetType(dottedName string) (resolve.Constructor, error) {
	ctor, err := c.resolver.GetType(dottedName)
	if err != nil {
		return nil, &slimerr.ResolutionError{Kind: slimerr.NoClass, Target: dottedName, Detail: err.Error()}
	}
	return ctor, nil
}

// AddLibrary pushes obj onto the library fallback stack; target_for
// consults this stack, most recently added first, when a method isn't
// found directly on the addressed instance.
func (c *Context) AddLibrary(obj interface{}) {
	c.libraries = append(c.libraries, obj)
}

// ImportPath adds path to the session's lookup roots: GetType retries a
// name that does not resolve directly with path+"." prepended. A path
// containing a path separator is only recorded that way; nothing is read
// from the filesystem. Anything else is a dotted package/namespace name,
// and if it also resolves to a registered constructor, is auto-instantiated
// and pushed onto the library stack the way importing a library module in the
// original implicitly made its top-level functions callable as fallback
// methods.
func (c *Context) ImportPath(path string) error {
	if strings.ContainsAny(path, "/\\") {
		c.resolver.AddImportRoot(path)
		return nil
	}
	c.resolver.AddImportRoot(path)
	if ctor, err := c.resolver.GetType(path); err == nil {
		obj, buildErr := ctor(nil)
		if buildErr == nil {
			c.AddLibrary(obj)
		}
	}
	return nil
}

// ToArgs expands raw instruction arguments, substituting any token of the
// exact form "$name" with the bound symbol's string value; tokens that
// don't match a bound symbol pass through unchanged.
func (c *Context) ToArgs(rawArgs []string) []string {
	out := make([]string, len(rawArgs))
	for i, a := range rawArgs {
		if strings.HasPrefix(a, "$") {
			if v, ok := c.GetSymbol(a[1:]); ok {
				out[i] = v
				continue
			}
		}
		out[i] = a
	}
	return out
}

// TargetFor resolves methodName on instance: first by exact name, then by
// every case-convention alias (camelCase<->snake_case, both initial
// cases), then by the same search against each library on the fallback
// stack, most recently added first. It returns the zero reflect.Value
// (IsValid reports false) if nothing matches.
func (c *Context) TargetFor(instance interface{}, methodName string) reflect.Value {
	if m := findMethod(instance, methodName); m.IsValid() {
		return m
	}
	for i := len(c.libraries) - 1; i >= 0; i-- {
		if m := findMethod(c.libraries[i], methodName); m.IsValid() {
			return m
		}
	}
	return reflect.Value{}
}

func findMethod(receiver interface{}, name string) reflect.Value {
	if receiver == nil {
		return reflect.Value{}
	}
	rv := reflect.ValueOf(receiver)
	for _, candidate := range alias.Aliases(name) {
		if m := rv.MethodByName(candidate); m.IsValid() {
			return m
		}
	}
	return reflect.Value{}
}

// Invoke resolves methodName on instance, converts args per the target's
// declared parameter types, calls it, and converts the result back to a
// wire-ready form. NoMethodInClass is returned if no method matches.
func (c *Context) Invoke(instance interface{}, methodName string, args []string) (interface{}, error) {
	method := c.TargetFor(instance, methodName)
	if !method.IsValid() {
		return nil, &slimerr.ResolutionError{
			Kind:   slimerr.NoMethodInClass,
			Target: methodName,
			Detail: fmt.Sprintf("%T", instance),
		}
	}
	invoke := convert.Result(convert.Arg(method, c.converters), c.converters)
	return invoke(c.ToArgs(args))
}
