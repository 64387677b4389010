package convert

import (
	"fmt"
	"reflect"
)

// Invoker calls a bound fixture method with raw wire argument strings and
// returns a wire-ready result: either a string, a []interface{} (for a
// method returning a slice), or the literal string "/__VOID__/" for a
// method with no return value.
//
// This replaces the original's decorator stack (ArgumentConverterDecorator,
// ResultConverterDecorator) with two composable builder functions: Arg binds
// a bound method value (a reflect.Value) and converts incoming argument text to the
// parameter types it declares, Result wraps an Invoker so its return value
// is converted back to text. Composing them --
// Result(Arg(method, registry), registry) -- reproduces the two-sided
// decoration the original applies to every fixture call.
type Invoker func(args []string) (interface{}, error)

// Void is the sentinel a call result carries when the underlying fixture
// method returns nothing.
const Void = "/__VOID__/"

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Arg builds an Invoker around method (a bound reflect.Value, i.e. the
// result of reflect.ValueOf(receiver).MethodByName(name)) that converts
// each positional argument string to the type method declares at that
// position, using registry, before calling method. The raw (unconverted)
// return value is passed through unchanged -- pair with Result to also
// stringify it.
func Arg(method reflect.Value, registry *Registry) Invoker {
	if method.Kind() != reflect.Func {
		return func([]string) (interface{}, error) {
			return nil, fmt.Errorf("convert.Arg: %v is not a callable method", method)
		}
	}
	mtype := method.Type()
	want := mtype.NumIn()

	return func(args []string) (interface{}, error) {
		if len(args) != want {
			return nil, fmt.Errorf("expected %d argument(s), got %d", want, len(args))
		}
		in := make([]reflect.Value, want)
		for i, raw := range args {
			paramType := mtype.In(i)
			value, err := registry.FromString(raw, paramType)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i+1, err)
			}
			rv := reflect.ValueOf(value)
			if !rv.IsValid() {
				rv = reflect.Zero(paramType)
			} else if rv.Type() != paramType && rv.Type().ConvertibleTo(paramType) {
				rv = rv.Convert(paramType)
			}
			in[i] = rv
		}
		return unpackResults(method.Call(in))
	}
}

// Result wraps inner so its successful return value is converted to a
// wire-ready form with registry: a string, a []interface{} of strings for a
// slice return, or Void for no return value.
func Result(inner Invoker, registry *Registry) Invoker {
	return func(args []string) (interface{}, error) {
		raw, err := inner(args)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return Void, nil
		}
		return registry.ToString(raw), nil
	}
}

// unpackResults interprets the []reflect.Value produced by calling a
// fixture method, recognising the conventional Go signatures: no return,
// a single value, a single error, or (value, error).
func unpackResults(out []reflect.Value) (interface{}, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errType {
			if out[0].IsNil() {
				return nil, nil
			}
			return nil, out[0].Interface().(error)
		}
		return out[0].Interface(), nil
	case 2:
		if out[1].Type() != errType {
			return nil, fmt.Errorf("fixture method's second return value must be error, got %s", out[1].Type())
		}
		var err error
		if !out[1].IsNil() {
			err = out[1].Interface().(error)
		}
		if err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	default:
		return nil, fmt.Errorf("fixture method has unsupported signature with %d return values", len(out))
	}
}
