package settings

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return cli.NewContext(store), cleanup
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	enabled := true
	tz := "Europe/Berlin"
	at := "07:45"
	cmd := &SettingsCmd{NotificationsEnabled: &enabled, Timezone: &tz, NotificationTime: &at}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	want := models.Settings{
		Timezone:             tz,
		NotificationsEnabled: true,
		NotificationTime:     at,
		NotificationSound:    got.NotificationSound,
		BadgeEnabled:         got.BadgeEnabled,
	}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestSettingsCmd_RejectsInvalid(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"bad time", SettingsCmd{NotificationTime: ptr("25:99")}},
		{"bad timezone", SettingsCmd{Timezone: ptr("Nowhere/Special")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := ctx.Store.GetSettings()
			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected validation error")
			}
			after, _ := ctx.Store.GetSettings()
			if before != after {
				t.Errorf("invalid settings were saved: %+v", after)
			}
		})
	}
}

func ptr(s string) *string { return &s }
