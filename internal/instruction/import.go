package instruction

import "github.com/AleksandrIakhnev/waferslim/internal/fixture"

// importInstr is "import <path>": adds path to the session's search roots.
// It always succeeds locally; a bad path only surfaces once something
// tries to resolve against it.
type importInstr struct {
	id   string
	args []string
}

func (i *importInstr) Execute(ctx *fixture.Context) Result {
	if len(i.args) == 0 {
		return Result{ID: i.id, Payload: "OK"}
	}
	ctx.ImportPath(i.args[0])
	return Result{ID: i.id, Payload: "OK"}
}
