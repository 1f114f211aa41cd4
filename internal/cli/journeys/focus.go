package journeys

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/tui/components/breathing"
)

type FocusCmd struct {
	Secondary bool `help:"Complete the secondary habit when the session ends."`
}

// focusModel runs a single breathing session outside the full TUI.
type focusModel struct {
	breathing breathing.Model
	start     tea.Cmd
	result    *breathing.FinishedMsg
}

func newFocusModel() focusModel {
	b, cmd := breathing.New().Start()
	return focusModel{breathing: b, start: cmd}
}

func (m focusModel) Init() tea.Cmd {
	return m.start
}

func (m focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s", "esc":
			var cmd tea.Cmd
			m.breathing, cmd = m.breathing.Skip()
			return m, cmd
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case breathing.FinishedMsg:
		m.result = &msg
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.breathing, cmd = m.breathing.Update(msg)
	return m, cmd
}

func (m focusModel) View() string {
	return "\n" + m.breathing.View() + "\n"
}

func (c *FocusCmd) Run(ctx *cli.Context) error {
	final, err := tea.NewProgram(newFocusModel()).Run()
	if err != nil {
		return fmt.Errorf("focus session failed: %w", err)
	}

	m, ok := final.(focusModel)
	if !ok || m.result == nil {
		fmt.Println("Focus session cancelled.")
		return nil
	}
	return finishFocus(ctx, c.Secondary, *m.result)
}

// finishFocus marks the slot complete and adds the elapsed session time.
// A skipped session still counts as done.
func finishFocus(ctx *cli.Context, secondary bool, result breathing.FinishedMsg) error {
	if _, err := ctx.Journey.MarkComplete(slotFor(secondary)); err != nil {
		return err
	}
	if _, err := ctx.Journey.AddFocusTime(result.Elapsed); err != nil {
		return err
	}
	fmt.Printf("Focus session done (%s).\n", journey.FormatFocusTime(int(result.Elapsed.Seconds())))
	return printCompletion(ctx)
}
