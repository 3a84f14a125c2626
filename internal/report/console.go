// Package report renders training results for people: coloured console
// output and HTML charts. The engine never formats output itself.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/uks22/penalty-kick/internal/engine"
)

// Console prints per-keeper blocks and the final strategy.
type Console struct {
	out      io.Writer
	au       aurora.Aurora
	space    engine.ActionSpace
	total    int
	decimals int
}

func NewConsole(out io.Writer, space engine.ActionSpace, total, decimals int, color bool) *Console {
	return &Console{
		out:      out,
		au:       aurora.NewAurora(color),
		space:    space,
		total:    total,
		decimals: decimals,
	}
}

func (c *Console) fmtList(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%g", engine.Round(v, c.decimals))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Opponent prints one keeper's parameters and the kicker's resulting strategy.
func (c *Console) Opponent(res engine.OpponentResult) {
	fmt.Fprintf(c.out, "%s\n", c.au.Bold(fmt.Sprintf("Goalkeeper %d/%d", res.Index+1, c.total)))
	fmt.Fprintf(c.out, "  keeper: %s\n", c.au.Cyan(c.fmtList(res.Keeper)))
	fmt.Fprintf(c.out, "  best shot: %s\n", c.au.Green(res.Best.String()))
	if c.space.Variant() == engine.VariantGrid {
		c.grid(res.Distribution)
		sum := 0.0
		for _, p := range res.Distribution {
			sum += p
		}
		fmt.Fprintf(c.out, "  precise sum: %v\n", sum)
		return
	}
	fmt.Fprintf(c.out, "  kicker: %s\n", c.fmtList(res.Distribution))
}

func (c *Console) grid(dist []float64) {
	rows, cols := c.space.Dims()
	for r := 0; r < rows; r++ {
		x := c.space.Shot(r * cols).X
		fmt.Fprintf(c.out, "  x=%d: %s\n", x, c.fmtList(dist[r*cols:(r+1)*cols]))
	}
}

// Final prints the mean strategy, highlighting shots inside the goal.
func (c *Console) Final(res *engine.Result) {
	fmt.Fprintf(c.out, "\n%s\n", c.au.Bold(fmt.Sprintf("Final cumulative kicker probabilities (run %s, seed %d)", res.RunID, res.Seed)))
	if res.Variant == engine.VariantGrid {
		c.grid(res.Mean)
	} else {
		for _, sp := range res.Final(c.decimals) {
			label := fmt.Sprintf("%3s", sp.Shot)
			if c.space.InGoal(sp.Shot) {
				fmt.Fprintf(c.out, "  %s: %v\n", c.au.Green(label), c.au.Green(sp.Probability))
			} else {
				fmt.Fprintf(c.out, "  %s: %v\n", c.au.Red(label), c.au.Red(sp.Probability))
			}
		}
	}
	fmt.Fprintf(c.out, "best shot: %s, mass on target: %s\n",
		c.au.Green(res.Best().String()), c.au.Yellow(fmt.Sprintf("%.3f", res.GoalMass())))
}
