// Package forms holds the huh forms shared by the TUI and the interactive
// CLI commands.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/models"
)

// HabitInput is the editable form state for a new habit. Numbers are kept
// as text until ToHabit.
type HabitInput struct {
	Name         string
	Type         models.HabitType
	TriggerType  models.TriggerType
	Trigger      string
	StartValue   string
	TargetValue  string
	DailyTarget  string
	TimedMinutes string
	Secondary    bool
}

func parseOptionalInt(field, v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", field)
	}
	return &n, nil
}

// ToHabit converts the input into a habit; validation of the values is left
// to the journey service.
func (in HabitInput) ToHabit() (models.Habit, error) {
	h := models.Habit{
		Name:        strings.TrimSpace(in.Name),
		Type:        in.Type,
		TriggerType: in.TriggerType,
		Trigger:     strings.TrimSpace(in.Trigger),
		IsSecondary: in.Secondary,
	}
	var err error
	if h.StartValue, err = parseOptionalInt("start value", in.StartValue); err != nil {
		return h, err
	}
	if h.TargetValue, err = parseOptionalInt("target value", in.TargetValue); err != nil {
		return h, err
	}
	if h.StartValue != nil {
		current := *h.StartValue
		h.CurrentValue = &current
	}
	if h.DailyTarget, err = parseOptionalInt("daily target", in.DailyTarget); err != nil {
		return h, err
	}
	if h.TimedMinutes, err = parseOptionalInt("minutes", in.TimedMinutes); err != nil {
		return h, err
	}
	return h, nil
}

func validateNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// Habit asks for the habit in three groups: what, when, how much. Groups
// that do not apply to the chosen type are hidden.
func Habit(in *HabitInput) *huh.Form {
	typeOptions := make([]huh.Option[models.HabitType], 0, len(models.HabitTypes))
	for _, t := range models.HabitTypes {
		typeOptions = append(typeOptions, huh.NewOption(fmt.Sprintf("%s - %s", t.Label(), t.Description()), t))
	}
	triggerOptions := []huh.Option[models.TriggerType]{
		huh.NewOption(models.TriggerAnchor.Label(), models.TriggerAnchor),
		huh.NewOption(models.TriggerContext.Label(), models.TriggerContext),
		huh.NewOption(models.TriggerThroughout.Label(), models.TriggerThroughout),
	}
	if in.Type == "" {
		in.Type = models.HabitTypeBinary
	}
	if in.TriggerType == "" {
		in.TriggerType = models.TriggerAnchor
	}

	title := "What one habit will you build?"
	if in.Secondary {
		title = "What second habit will you add?"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(&in.Name).Validate(notEmpty),
			huh.NewSelect[models.HabitType]().Title("Type").Options(typeOptions...).Value(&in.Type),
		),
		huh.NewGroup(
			huh.NewSelect[models.TriggerType]().Title("When will you do it?").Options(triggerOptions...).Value(&in.TriggerType),
			huh.NewInput().Title("Trigger").Description("e.g. \"pour my morning coffee\"").Value(&in.Trigger),
		).WithHideFunc(func() bool { return in.Type == models.HabitTypeRepeating }),
		huh.NewGroup(
			huh.NewInput().Title("Minutes per session").Value(&in.TimedMinutes).Validate(validateNumber),
		).WithHideFunc(func() bool { return in.Type != models.HabitTypeTimed }),
		huh.NewGroup(
			huh.NewInput().Title("Start value").Value(&in.StartValue).Validate(validateNumber),
			huh.NewInput().Title("Target value").Value(&in.TargetValue).Validate(validateNumber),
		).WithHideFunc(func() bool {
			return in.Type != models.HabitTypeIncrement && in.Type != models.HabitTypeReduction
		}),
		huh.NewGroup(
			huh.NewInput().Title("Times per day").Value(&in.DailyTarget).Validate(validateNumber),
		).WithHideFunc(func() bool { return in.Type != models.HabitTypeRepeating }),
	)
}

// Mood asks for a 1-5 mood.
func Mood(mood *int, before bool) *huh.Form {
	title := "How do you feel now that it's done?"
	if before {
		title = "How are you feeling right now?"
	}
	options := make([]huh.Option[int], 0, constants.MaxMood)
	for v := constants.MaxMood; v >= constants.MinMood; v-- {
		options = append(options, huh.NewOption(models.MoodLabel(v), v))
	}
	if *mood == 0 {
		*mood = 3
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().Title(title).Options(options...).Value(mood),
	))
}

type ReflectionInput struct {
	WhatHelped      string
	WhatHindered    string
	PatternsNoticed string
}

func Reflection(in *ReflectionInput, week int) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(fmt.Sprintf("Week %d reflection", week)).
			Description("A few words is enough. Leave blank what you don't want to answer."),
		huh.NewText().Title("What helped you this week?").Value(&in.WhatHelped),
		huh.NewText().Title("What got in the way?").Value(&in.WhatHindered),
		huh.NewText().Title("Any patterns you noticed?").Value(&in.PatternsNoticed),
	))
}

type FailureInput struct {
	WhatWorked      string
	WhatDidnt       string
	NextTimeChanges string
}

func FailureAnalysis(in *FailureInput) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewNote().Title("Let's learn from this journey").
			Description("Missing days is part of building habits. What you write here is kept with the journey."),
		huh.NewText().Title("What worked?").Value(&in.WhatWorked),
		huh.NewText().Title("What didn't?").Value(&in.WhatDidnt),
		huh.NewText().Title("What will you change next time?").Value(&in.NextTimeChanges),
	))
}

func Confirm(title, description string, v *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Description(description).Affirmative("Yes").Negative("No").Value(v),
	))
}
