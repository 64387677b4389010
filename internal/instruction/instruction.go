// Package instruction implements the four SLIM instruction verbs --
// import, make, call, callAndAssign -- and the dispatcher that turns one
// decoded instruction record into the matching variant.
package instruction

import (
	"fmt"
	"strings"

	"github.com/AleksandrIakhnev/waferslim/internal/fixture"
	"github.com/AleksandrIakhnev/waferslim/internal/slimerr"
)

// Result is one entry of a response list: a two-element [id, payload]
// record.
type Result struct {
	ID      string
	Payload string
}

// Instruction is the common contract: every instruction posts exactly one
// Result when executed, success or failure alike.
type Instruction interface {
	Execute(ctx *fixture.Context) Result
}

// InstructionFor selects the Instruction variant for one decoded record by
// its verb (record[1]), case-insensitively. A record too short to carry a
// verb, or carrying an unrecognised one, produces the base "unrecognised"
// instruction.
func InstructionFor(record []interface{}) Instruction {
	fields, ok := asStrings(record)
	if !ok || len(fields) < 2 {
		return &unrecognised{id: safeField(fields, 0), head: safeField(fields, 1)}
	}

	id := fields[0]
	verb := fields[1]
	args := fields[2:]

	switch strings.ToLower(verb) {
	case "import":
		return &importInstr{id: id, args: args}
	case "make":
		return &makeInstr{id: id, args: args}
	case "call":
		return &callInstr{id: id, args: args}
	case "callandassign":
		return &callAndAssignInstr{id: id, args: args}
	default:
		return &unrecognised{id: id, head: verb}
	}
}

// unrecognised is the base Instruction: any record whose head token
// doesn't match a known verb fails with INVALID_STATEMENT.
type unrecognised struct {
	id   string
	head string
}

func (u *unrecognised) Execute(*fixture.Context) Result {
	return Result{ID: u.id, Payload: fmt.Sprintf("%s %s", slimerr.InvalidStatement, u.head)}
}

// IsFailure reports whether payload is a failed instruction result: a
// formatted "__EXCEPTION__" (ResolutionError/FixtureError/recovered panic)
// or a bare "INVALID_STATEMENT" code. Used by the session loop to decide
// which results are worth a structured log line.
func IsFailure(payload string) bool {
	return strings.HasPrefix(payload, "__EXCEPTION__") || strings.HasPrefix(payload, string(slimerr.InvalidStatement))
}

func safeField(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// asStrings converts a decoded instruction record (produced by
// wire.Unpack, so each element is either a string or a nested
// []interface{}) into a flat []string, rejecting any record that contains
// a nested list -- instruction records are always flat.
func asStrings(record []interface{}) ([]string, bool) {
	out := make([]string, len(record))
	for i, v := range record {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}
