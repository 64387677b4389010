package instruction

import (
	"fmt"

	"github.com/AleksandrIakhnev/waferslim/internal/convert"
	"github.com/AleksandrIakhnev/waferslim/internal/fixture"
	"github.com/AleksandrIakhnev/waferslim/internal/slimerr"
)

// callInstr is "call <instance> <method> <arg...>": invokes method on the
// instance (or a fallback library) and records its stringified return, or
// /__VOID__/ if it returned nothing.
type callInstr struct {
	id   string
	args []string // [instanceName, methodName, arg...]
}

func (c *callInstr) Execute(ctx *fixture.Context) Result {
	result, err := invokeCall(ctx, c.args)
	if err != nil {
		return Result{ID: c.id, Payload: slimerr.FormatException(err)}
	}
	return Result{ID: c.id, Payload: result}
}

// invokeCall is the shared body of call and callAndAssign: resolve the
// instance, resolve the method (own name, case alias, or library
// fallback), convert arguments, invoke, and stringify the result.
func invokeCall(ctx *fixture.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "", &slimerr.ResolutionError{Kind: slimerr.NoInstance, Target: ""}
	}
	instanceName, methodName, callArgs := args[0], args[1], args[2:]

	instance, err := ctx.GetInstance(instanceName)
	if err != nil {
		return "", err
	}

	raw, err := ctx.Invoke(instance, methodName, callArgs)
	if err != nil {
		return "", err
	}
	if raw == nil {
		return convert.Void, nil
	}
	if s, ok := raw.(string); ok {
		return s, nil
	}
	return "", &slimerr.FixtureError{
		Operation: "call",
		Err:       fmt.Errorf("method returned a non-scalar value (%T), which call cannot stringify", raw),
	}
}
