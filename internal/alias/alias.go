// Package alias is the identifier case-convention aliaser: a pure helper
// that lets method lookup match "echoString" against "EchoString" against
// "echo_string" without the caller caring which spelling a fixture author
// used.
package alias

import "strings"

// ToPythonic converts CamelCase or camelCase to snake_case, e.g.
// "EchoString" and "echoString" both become "echo_string".
func ToPythonic(name string) string {
	if name == "" {
		return name
	}
	var b strings.Builder
	b.WriteByte(lower(name[0]))
	for i := 1; i < len(name); i++ {
		c := name[i]
		if isUpper(c) {
			b.WriteByte('_')
			b.WriteByte(lower(c))
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ToLowerCamelCase converts snake_case to lowerCamelCase, e.g.
// "echo_string" becomes "echoString". Already-camel input passes through
// unchanged apart from lower-casing its first byte, making the function
// idempotent on lowerCamel input.
func ToLowerCamelCase(name string) string {
	camel := camelize(name)
	if camel == "" {
		return camel
	}
	return string(lower(camel[0])) + camel[1:]
}

// ToUpperCamelCase converts snake_case to UpperCamelCase, e.g.
// "echo_string" becomes "EchoString".
func ToUpperCamelCase(name string) string {
	camel := camelize(name)
	if camel == "" {
		return camel
	}
	return string(upper(camel[0])) + camel[1:]
}

// camelize replaces each underscore and the byte after it with that byte
// upper-cased, leaving everything else untouched; a trailing underscore is
// kept.
func camelize(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] == '_' && i+1 < len(name) {
			b.WriteByte(upper(name[i+1]))
			i++
			continue
		}
		b.WriteByte(name[i])
	}
	return b.String()
}

// Aliases returns every case-convention spelling of name that method
// lookup should accept, canonical spelling included.
func Aliases(name string) []string {
	seen := make(map[string]bool, 4)
	out := make([]string, 0, 4)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(name)
	add(ToPythonic(name))
	add(ToLowerCamelCase(name))
	add(ToUpperCamelCase(name))
	return out
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
