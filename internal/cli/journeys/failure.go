package journeys

import (
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/tui/forms"
)

type CheckCmd struct{}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	failed, err := ctx.Journey.CheckJourneyFailure()
	if err != nil {
		return err
	}
	if !failed {
		stats, err := ctx.Journey.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("On track: day %d, %d flex day(s) left.\n", stats.CurrentDay, stats.FlexDaysRemaining)
		return nil
	}
	fmt.Println("This journey can no longer reach 66 days.")
	fmt.Println("Run 'onefocus analyze' to record what you learned, then 'onefocus fresh' to start again.")
	return nil
}

type AnalyzeCmd struct {
	WhatWorked string `help:"What worked during this journey."`
	WhatDidnt  string `help:"What did not work."`
	NextTime   string `help:"What you will change next time."`
	GiveUp     bool   `help:"End a journey that has not failed yet."`
}

var ErrJourneyOnTrack = errors.New("journey has not failed")

func (c *AnalyzeCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Journey.GetOrCreateJourney()
	if err != nil {
		return err
	}
	if !current.IsActive() {
		return fmt.Errorf("journey is already %s", current.Status)
	}
	failed, err := ctx.Journey.CheckJourneyFailure()
	if err != nil {
		return err
	}
	if !failed && !c.GiveUp {
		return fmt.Errorf("%w; run 'onefocus check' to see where you stand, or pass --give-up to end it anyway", ErrJourneyOnTrack)
	}

	in := forms.FailureInput{WhatWorked: c.WhatWorked, WhatDidnt: c.WhatDidnt, NextTimeChanges: c.NextTime}
	if in == (forms.FailureInput{}) {
		if err := forms.FailureAnalysis(&in).Run(); err != nil {
			return err
		}
	}

	j, err := ctx.Journey.SaveFailureAnalysis(in.WhatWorked, in.WhatDidnt, in.NextTimeChanges)
	if errors.Is(err, journey.ErrJourneyNotActive) {
		return fmt.Errorf("journey is already %s", j.Status)
	}
	if err != nil {
		return err
	}

	analysis, err := j.FailureAnalysis()
	if err != nil {
		return err
	}
	fmt.Println("Analysis saved. This journey is now archived.")
	if analysis != nil {
		fmt.Printf("Best week: %d · Toughest week: %d\n", analysis.BestWeek, analysis.WorstWeek)
	}
	fmt.Println("Run 'onefocus fresh' when you're ready to start again.")
	return nil
}

type FreshCmd struct{}

func (c *FreshCmd) Run(ctx *cli.Context) error {
	archived, fresh, err := ctx.Journey.StartFreshJourney()
	if errors.Is(err, journey.ErrJourneyStillActive) {
		return fmt.Errorf("current journey is still active; finish it with 'onefocus complete' or 'onefocus analyze', or restart it with 'onefocus reset'")
	}
	if err != nil {
		return err
	}
	if archived.ID != "" {
		fmt.Printf("Archived previous journey (%s).\n", archived.Status)
	}
	fmt.Printf("✓ New journey started on %s. Day 1 of 66.\n", fresh.StartDate)
	return nil
}

type CompleteCmd struct{}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	_, err := ctx.Journey.CompleteJourney()
	switch {
	case errors.Is(err, journey.ErrJourneyNotFinished):
		day, dayErr := ctx.Journey.CurrentDay()
		if dayErr != nil {
			return dayErr
		}
		return fmt.Errorf("journey is on day %d; it can be completed on day 66", day)
	case errors.Is(err, journey.ErrJourneyFailed):
		return fmt.Errorf("journey did not meet the completion requirements; run 'onefocus analyze'")
	case err != nil:
		return err
	}

	stats, err := ctx.Journey.Stats()
	if err != nil {
		return err
	}
	fmt.Println("🎊 Journey complete! Your habit is now ingrained.")
	fmt.Printf("Completed %d days with a best streak of %d.\n", stats.CompletedDays, stats.BestStreak)
	return nil
}
