// Package fixtures bundles a couple of minimal demo fixtures so the
// end-to-end scenarios a SLIM client drives against slimrelay have
// something real to import/make/call, mirroring the role
// original_source/examples/library.py plays for the Python original.
package fixtures

import "github.com/AleksandrIakhnev/waferslim/internal/resolve"

func init() {
	_ = resolve.Register("fixtures.EchoFixture", func(args []string) (interface{}, error) {
		return &EchoFixture{}, nil
	})
}

// EchoFixture is the smallest possible fixture: it hands back whatever it
// is given, converted through the session's registry, and tracks the last
// value it saw for a void-returning setter scenario.
type EchoFixture struct {
	last string
}

// Echo returns s unchanged.
func (f *EchoFixture) Echo(s string) string { return s }

// SetLast stores s and returns nothing, exercising the /__VOID__/ result
// path.
func (f *EchoFixture) SetLast(s string) { f.last = s }

// GetLast returns whatever SetLast last stored.
func (f *EchoFixture) GetLast() string { return f.last }

// Compute pretends to do work with n and returns a fixed label, enough to
// exercise callAndAssign's symbol-binding scenario.
func (f *EchoFixture) Compute(n int) string { return "computed" }
