package instruction

import (
	"github.com/AleksandrIakhnev/waferslim/internal/fixture"
	"github.com/AleksandrIakhnev/waferslim/internal/slimerr"
)

// callAndAssignInstr is "callAndAssign <symbol> <instance> <method>
// <arg...>": behaves exactly like call, additionally binding the
// (stringified) result to symbol for later $symbol substitution.
type callAndAssignInstr struct {
	id   string
	args []string // [symbolName, instanceName, methodName, arg...]
}

func (c *callAndAssignInstr) Execute(ctx *fixture.Context) Result {
	if len(c.args) < 1 {
		return Result{ID: c.id, Payload: slimerr.FormatException(&slimerr.ResolutionError{
			Kind: slimerr.NoInstance, Target: "",
		})}
	}
	symbolName, rest := c.args[0], c.args[1:]

	result, err := invokeCall(ctx, rest)
	if err != nil {
		return Result{ID: c.id, Payload: slimerr.FormatException(err)}
	}
	ctx.StoreSymbol(symbolName, result)
	return Result{ID: c.id, Payload: result}
}
