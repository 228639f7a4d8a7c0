package sqlgen

import (
	"fmt"
	"strings"
)

// renderContext is the per-statement working state a dialect's visitor
// methods write into: a fresh indented string builder, per spec.md
// §4.5's "stateful... indented string builder", plus the generator's
// variable-name counter for dialects that declare local variables
// (spec.md §4.6's `@var0`, `@var1`, ...). Grounded on the teacher's
// SQLWriter, which is likewise a thin strings.Builder wrapper rebuilt
// fresh per statement.
type renderContext struct {
	sb         strings.Builder
	varCounter *int
}

func (c *renderContext) WriteString(s string) {
	c.sb.WriteString(s)
}

func (c *renderContext) String() string {
	return c.sb.String()
}

// NextVar returns a fresh "@varN" name and advances the shared counter.
func (c *renderContext) NextVar() string {
	name := fmt.Sprintf("@var%d", *c.varCounter)
	*c.varCounter++
	return name
}
