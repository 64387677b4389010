package fixtures

import (
	"strconv"

	"github.com/AleksandrIakhnev/waferslim/internal/resolve"
)

func init() {
	_ = resolve.Register("fixtures.CounterFixture", func(args []string) (interface{}, error) {
		start := 0
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				start = n
			}
		}
		return &CounterFixture{n: start}, nil
	})
}

// CounterFixture holds a single mutable integer, useful for exercising
// instance state across a sequence of call instructions within one
// session.
type CounterFixture struct {
	n int
}

// Increment adds one and returns the new total.
func (c *CounterFixture) Increment() int {
	c.n++
	return c.n
}

// Value returns the current total without mutating it.
func (c *CounterFixture) Value() int { return c.n }

// Reset sets the total back to zero.
func (c *CounterFixture) Reset() { c.n = 0 }
