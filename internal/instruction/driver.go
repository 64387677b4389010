package instruction

import (
	"fmt"

	"github.com/AleksandrIakhnev/waferslim/internal/fixture"
	"github.com/AleksandrIakhnev/waferslim/internal/slimerr"
)

// Execute runs every record in records against ctx in order and returns
// one Result per record, preserving order; the response list's length
// always equals the request list's length. A fixture is arbitrary
// user-supplied code invoked through reflection, so a single instruction
// is allowed to panic (nil deref, bad type assertion, explicit panic) --
// safeExecute recovers it into an ordinary failed Result instead of
// taking the whole session (and every other session sharing the process)
// down with it.
func Execute(ctx *fixture.Context, records []interface{}) []Result {
	results := make([]Result, len(records))
	for i, r := range records {
		nested, ok := r.([]interface{})
		if !ok {
			results[i] = Result{ID: "", Payload: "INVALID_STATEMENT " + "malformed instruction record"}
			continue
		}
		results[i] = safeExecute(ctx, nested)
	}
	return results
}

// safeExecute runs one decoded record's Instruction, converting a panic
// raised anywhere below it (constructor, method call, conversion) into a
// FixtureError result rather than letting it propagate.
func safeExecute(ctx *fixture.Context, record []interface{}) (result Result) {
	instr := InstructionFor(record)
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				ID: recordID(record),
				Payload: slimerr.FormatException(&slimerr.FixtureError{
					Operation: "execute",
					Err:       fmt.Errorf("recovered panic: %v", r),
				}),
			}
		}
	}()
	return instr.Execute(ctx)
}

// recordID returns a decoded record's first field if it is a string, the
// conventional position of an instruction's id, or "" otherwise.
func recordID(record []interface{}) string {
	if len(record) == 0 {
		return ""
	}
	if s, ok := record[0].(string); ok {
		return s
	}
	return ""
}

// Pack converts results into the flat []interface{} form wire.Pack
// expects: a list of [id, payload] two-element lists.
func Pack(results []Result) []interface{} {
	out := make([]interface{}, len(results))
	for i, r := range results {
		out[i] = []interface{}{r.ID, r.Payload}
	}
	return out
}
