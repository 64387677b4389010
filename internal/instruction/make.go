package instruction

import (
	"github.com/AleksandrIakhnev/waferslim/internal/fixture"
	"github.com/AleksandrIakhnev/waferslim/internal/slimerr"
)

// makeInstr is "make <instance> <type> <arg...>": resolves type, builds an
// instance with the (substituted) constructor args, and binds it to
// instance_name.
type makeInstr struct {
	id   string
	args []string // [instanceName, typeName, ctorArg...]
}

func (m *makeInstr) Execute(ctx *fixture.Context) Result {
	if len(m.args) < 2 {
		return Result{ID: m.id, Payload: slimerr.FormatException(&slimerr.ResolutionError{
			Kind:   slimerr.NoClass,
			Target: "",
			Detail: "make requires an instance name and a type name",
		})}
	}
	instanceName, typeName, ctorArgs := m.args[0], m.args[1], m.args[2:]

	ctor, err := ctx.GetType(typeName)
	if err != nil {
		return Result{ID: m.id, Payload: slimerr.FormatException(err)}
	}

	instance, err := ctor(ctx.ToArgs(ctorArgs))
	if err != nil {
		return Result{ID: m.id, Payload: slimerr.FormatException(&slimerr.ResolutionError{
			Kind:   slimerr.NoConstruction,
			Target: typeName,
			Detail: err.Error(),
		})}
	}

	ctx.StoreInstance(instanceName, instance)
	return Result{ID: m.id, Payload: "OK"}
}
