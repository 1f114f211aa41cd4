package journeys

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/tidwall/gjson"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/models"
)

type HistoryCmd struct {
	Notes bool `help:"Include failure analysis answers."`
}

// historyEntry is one archived journey as shown by the history command.
type historyEntry struct {
	Journey   models.Journey
	Stats     journey.Stats
	BestWeek  int
	WorstWeek int
	Notes     gjson.Result
}

func buildHistoryEntry(j models.Journey) historyEntry {
	// An archived journey is measured as of the day it ended.
	asOf := j.StartDate.AddDays(65)
	if j.EndDate != nil {
		asOf = civil.DateOf(*j.EndDate)
	}
	e := historyEntry{Journey: j, Stats: journey.StatsFor(j, asOf)}

	if j.FailureAnalysisNotes != nil && gjson.Valid(*j.FailureAnalysisNotes) {
		e.Notes = gjson.Parse(*j.FailureAnalysisNotes)
		e.BestWeek = int(e.Notes.Get("bestWeek").Int())
		e.WorstWeek = int(e.Notes.Get("worstWeek").Int())
	} else {
		e.BestWeek, e.WorstWeek = journey.BestAndWorstWeek(journey.WeeklyCompletion(j))
	}
	return e
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	journeys, err := ctx.Journey.ArchivedJourneys()
	if err != nil {
		return fmt.Errorf("failed to load archived journeys: %w", err)
	}
	if len(journeys) == 0 {
		fmt.Println("No past journeys yet.")
		return nil
	}

	for _, j := range journeys {
		e := buildHistoryEntry(j)
		ended := "-"
		if j.EndDate != nil {
			ended = civil.DateOf(*j.EndDate).String()
		}
		fmt.Printf("%s → %s  %-9s  %d/66 days  %s  best week %d, toughest week %d\n",
			j.StartDate, ended, j.Status, e.Stats.CompletedDays,
			cli.FormatPercent(e.Stats.CompletionRate), e.BestWeek, e.WorstWeek)

		if c.Notes && e.Notes.Exists() {
			for _, field := range []struct{ label, path string }{
				{"Worked", "whatWorked"},
				{"Didn't", "whatDidnt"},
				{"Next time", "nextTimeChanges"},
			} {
				if v := e.Notes.Get(field.path).String(); v != "" {
					fmt.Printf("    %-10s %s\n", field.label+":", v)
				}
			}
		}
	}
	return nil
}
