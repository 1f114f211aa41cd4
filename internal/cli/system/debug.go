package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/logger"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	LogPath      *DebugLogPathCmd      `cmd:"" help:"Show log file path."`
	DumpJourney  *DebugDumpJourneyCmd  `cmd:"" help:"Dump the current journey as JSON."`
	DumpHabits   *DebugDumpHabitsCmd   `cmd:"" help:"Dump habits as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugLogPathCmd struct{}

func (cmd *DebugLogPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": logger.Path()})
}

type DebugDumpJourneyCmd struct{}

func (cmd *DebugDumpJourneyCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Store.GetCurrentJourney()
	if err != nil {
		return fmt.Errorf("failed to get journey: %w", err)
	}
	return printJSON(j)
}

type DebugDumpHabitsCmd struct{}

func (cmd *DebugDumpHabitsCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	return printJSON(habits)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}
