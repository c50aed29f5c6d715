package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/lox/holdem-mcts/equity"
)

// TableCmd prints the preflop reference table.
type TableCmd struct {
	Top     int  `short:"t" help:"Only show the strongest N hands (0 = all)"`
	NoColor bool `env:"NO_COLOR" help:"Disable colored output"`
}

func (c *TableCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *TableCmd) run(out io.Writer) error {
	if c.Top < 0 {
		return fmt.Errorf("top must be >= 0, got %d", c.Top)
	}
	if c.NoColor {
		disableColor()
	}

	hands := equity.PreflopHands()
	if c.Top > 0 && c.Top < len(hands) {
		hands = hands[:c.Top]
	}

	bar := newEquityBar(c.NoColor)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		labelStyle.UnsetWidth().Render("hand"),
		labelStyle.UnsetWidth().Render("category"),
		labelStyle.UnsetWidth().Render("equity"),
		"")
	for _, h := range hands {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			handStyle.Render(h.Hand.String()),
			categoryStyle.Render(string(h.Hand.Category())),
			equityStyle.Render(fmt.Sprintf("%d%%", h.Percent)),
			bar.ViewAs(float64(h.Percent)/100))
	}
	return w.Flush()
}
