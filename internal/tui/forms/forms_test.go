package forms

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/onefocus/internal/models"
)

func intPtr(v int) *int { return &v }

func TestHabitInputToHabit(t *testing.T) {
	tests := []struct {
		name    string
		in      HabitInput
		want    models.Habit
		wantErr bool
	}{
		{
			name: "binary",
			in:   HabitInput{Name: " Read ", Type: models.HabitTypeBinary, TriggerType: models.TriggerAnchor, Trigger: " coffee "},
			want: models.Habit{Name: "Read", Type: models.HabitTypeBinary, TriggerType: models.TriggerAnchor, Trigger: "coffee"},
		},
		{
			name: "increment",
			in:   HabitInput{Name: "Pushups", Type: models.HabitTypeIncrement, TriggerType: models.TriggerThroughout, StartValue: "5", TargetValue: " 20"},
			want: models.Habit{
				Name: "Pushups", Type: models.HabitTypeIncrement, TriggerType: models.TriggerThroughout,
				StartValue: intPtr(5), TargetValue: intPtr(20), CurrentValue: intPtr(5),
			},
		},
		{
			name: "repeating secondary",
			in:   HabitInput{Name: "Water", Type: models.HabitTypeRepeating, DailyTarget: "8", Secondary: true},
			want: models.Habit{Name: "Water", Type: models.HabitTypeRepeating, DailyTarget: intPtr(8), IsSecondary: true},
		},
		{
			name:    "bad number",
			in:      HabitInput{Name: "Walk", Type: models.HabitTypeTimed, TimedMinutes: "ten"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.ToHabit()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToHabit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToHabit() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormsBuild(t *testing.T) {
	in := HabitInput{}
	if Habit(&in) == nil || in.Type != models.HabitTypeBinary || in.TriggerType != models.TriggerAnchor {
		t.Errorf("Habit form defaults not applied: %+v", in)
	}

	mood := 0
	if Mood(&mood, true) == nil || mood != 3 {
		t.Errorf("Mood form default = %d, want 3", mood)
	}
}

func TestValidateNumber(t *testing.T) {
	for _, ok := range []string{"", " 12 ", "0"} {
		if err := validateNumber(ok); err != nil {
			t.Errorf("validateNumber(%q) = %v", ok, err)
		}
	}
	if err := validateNumber("1.5"); err == nil {
		t.Error("validateNumber(1.5) should fail")
	}
}
