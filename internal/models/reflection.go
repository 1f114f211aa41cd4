package models

import (
	"fmt"
	"time"
)

// Reflection is the weekly check-in answered every 7th journey day
type Reflection struct {
	ID              string    `json:"id"`
	JourneyID       string    `json:"journey_id"`
	CreatedAt       time.Time `json:"created_at"`
	WeekNumber      int       `json:"week_number"`
	WhatHelped      string    `json:"what_helped"`
	WhatHindered    string    `json:"what_hindered"`
	PatternsNoticed string    `json:"patterns_noticed"`
	Skipped         bool      `json:"skipped"`
}

func (r Reflection) WeekLabel() string {
	return fmt.Sprintf("Week %d", r.WeekNumber)
}

func (r Reflection) IsEmpty() bool {
	return r.WhatHelped == "" && r.WhatHindered == "" && r.PatternsNoticed == ""
}
