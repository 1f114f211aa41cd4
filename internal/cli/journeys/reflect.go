package journeys

import (
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/tui/forms"
)

type ReflectCmd struct {
	Week     int    `help:"Week to reflect on. Defaults to the week that is due."`
	Helped   string `help:"What helped you this week."`
	Hindered string `help:"What got in the way."`
	Patterns string `help:"Patterns you noticed."`
	Skip     bool   `help:"Skip this week's reflection."`
	List     bool   `help:"List past reflections."`
}

func (c *ReflectCmd) Run(ctx *cli.Context) error {
	if c.List {
		return listReflections(ctx)
	}

	week := c.Week
	if week == 0 {
		due, dueWeek, err := ctx.Journey.IsReflectionDue()
		if err != nil {
			return err
		}
		if !due {
			fmt.Println("No reflection is due today. Reflections open every 7th day.")
			return nil
		}
		week = dueWeek
	}

	if c.Skip {
		if _, err := ctx.Journey.SkipReflection(week); err != nil {
			return err
		}
		fmt.Printf("Skipped week %d reflection.\n", week)
		return nil
	}

	in := forms.ReflectionInput{WhatHelped: c.Helped, WhatHindered: c.Hindered, PatternsNoticed: c.Patterns}
	if in == (forms.ReflectionInput{}) {
		if err := forms.Reflection(&in, week).Run(); err != nil {
			return err
		}
	}

	r, err := ctx.Journey.SubmitReflection(week, in.WhatHelped, in.WhatHindered, in.PatternsNoticed)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Saved %s reflection.\n", r.WeekLabel())
	return nil
}

func listReflections(ctx *cli.Context) error {
	reflections, err := ctx.Journey.Reflections()
	if err != nil {
		return fmt.Errorf("failed to load reflections: %w", err)
	}
	if len(reflections) == 0 {
		fmt.Println("No reflections yet.")
		return nil
	}
	for _, r := range reflections {
		if r.Skipped {
			fmt.Printf("%s (skipped)\n\n", r.WeekLabel())
			continue
		}
		fmt.Println(r.WeekLabel())
		printAnswer("Helped", r.WhatHelped)
		printAnswer("Hindered", r.WhatHindered)
		printAnswer("Patterns", r.PatternsNoticed)
		fmt.Println()
	}
	return nil
}

func printAnswer(label, answer string) {
	if answer != "" {
		fmt.Printf("  %-9s %s\n", label+":", answer)
	}
}
