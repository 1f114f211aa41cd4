package models

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestDateKey(t *testing.T) {
	d := civil.Date{Year: 2025, Month: time.January, Day: 5}
	if got := DateKey(d, PrimarySlot); got != "2025-01-05" {
		t.Errorf("primary key = %q", got)
	}
	if got := DateKey(d, SecondarySlot); got != "2025-01-05_2" {
		t.Errorf("secondary key = %q", got)
	}
	if got := RepeatingKey(d, SecondarySlot); got != "2025-01-05_1" {
		t.Errorf("repeating key = %q", got)
	}
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		key      string
		wantDate civil.Date
		wantSlot int
		wantErr  bool
	}{
		{"2025-01-05", civil.Date{Year: 2025, Month: time.January, Day: 5}, PrimarySlot, false},
		{"2025-01-05_2", civil.Date{Year: 2025, Month: time.January, Day: 5}, SecondarySlot, false},
		{"2024-02-29", civil.Date{Year: 2024, Month: time.February, Day: 29}, PrimarySlot, false},
		{"2025-02-29", civil.Date{}, 0, true},
		{"2025-01-05_3", civil.Date{}, 0, true},
		{"not-a-date", civil.Date{}, 0, true},
		{"", civil.Date{}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			d, slot, err := ParseDateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if d != tt.wantDate || slot != tt.wantSlot {
				t.Errorf("ParseDateKey(%q) = %s, %d; want %s, %d", tt.key, d, slot, tt.wantDate, tt.wantSlot)
			}
		})
	}
}
