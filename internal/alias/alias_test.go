package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPythonic(t *testing.T) {
	assert.Equal(t, "pythonic_case", ToPythonic("pythonicCase"))
	assert.Equal(t, "camel_case", ToPythonic("CamelCase"))
}

func TestToLowerCamelCase(t *testing.T) {
	assert.Equal(t, "pythonicCase", ToLowerCamelCase("pythonic_case"))
	assert.Equal(t, "camelCase", ToLowerCamelCase("CamelCase"))
	assert.Equal(t, "camelCase", ToLowerCamelCase("camelCase"))
}

func TestToUpperCamelCase(t *testing.T) {
	assert.Equal(t, "PythonicCase", ToUpperCamelCase("pythonic_case"))
	assert.Equal(t, "CamelCase", ToUpperCamelCase("CamelCase"))
	assert.Equal(t, "CamelCase", ToUpperCamelCase("camelCase"))
}

func TestRoundTripSnakeThroughUpperCamel(t *testing.T) {
	assert.Equal(t, "echo_string", ToPythonic(ToUpperCamelCase("echo_string")))
}

func TestAliasesIncludesAllConventionSpellings(t *testing.T) {
	got := Aliases("echo_string")
	assert.Contains(t, got, "echo_string")
	assert.Contains(t, got, "echoString")
	assert.Contains(t, got, "EchoString")
}

func TestAliasesDeduplicates(t *testing.T) {
	got := Aliases("simple")
	seen := make(map[string]int)
	for _, s := range got {
		seen[s]++
	}
	for s, n := range seen {
		assert.Equal(t, 1, n, "duplicate alias %q", s)
	}
}
