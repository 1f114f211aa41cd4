package models

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

const (
	PrimarySlot   = 0
	SecondarySlot = 1

	// SecondarySlotSuffix marks completion keys of the secondary habit.
	SecondarySlotSuffix = "_2"
)

// DateKey returns the completion ledger key for a day and habit slot:
// "YYYY-MM-DD" for the primary habit and "YYYY-MM-DD_2" for the secondary one.
func DateKey(d civil.Date, slot int) string {
	if slot == PrimarySlot {
		return d.String()
	}
	return d.String() + SecondarySlotSuffix
}

// ParseDateKey splits a completion ledger key into its day and habit slot.
func ParseDateKey(key string) (civil.Date, int, error) {
	slot := PrimarySlot
	raw := key
	if strings.HasSuffix(key, SecondarySlotSuffix) {
		slot = SecondarySlot
		raw = strings.TrimSuffix(key, SecondarySlotSuffix)
	}
	d, err := civil.ParseDate(raw)
	if err != nil {
		return civil.Date{}, 0, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return d, slot, nil
}

// RepeatingKey returns the counter key for repeating habits: "YYYY-MM-DD_<slot>".
func RepeatingKey(d civil.Date, slot int) string {
	return fmt.Sprintf("%s_%d", d.String(), slot)
}
