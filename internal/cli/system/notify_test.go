package system

import (
	"errors"
	"testing"

	"github.com/julianstephens/onefocus/internal/notifier"
)

func TestNotifyCmd_Disabled(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Errorf("notify with notifications disabled: %v", err)
	}
}

func TestNotifyCmd_DryRun(t *testing.T) {
	ctx, store := setupTestDB(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.NotificationsEnabled = true
	settings.NotificationTime = "21:30"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	// Outside the configured minute nothing is sent, even without a tray.
	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Errorf("notify outside notification time: %v", err)
	}
	if err := (&NotifyCmd{DryRun: true, Force: true}).Run(ctx); err != nil {
		t.Errorf("notify --dry-run --force: %v", err)
	}
}

func TestNotifyCmd_TrayNotRunning(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	ctx, store := setupTestDB(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.NotificationsEnabled = true
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	err = (&NotifyCmd{Force: true}).Run(ctx)
	if !errors.Is(err, notifier.ErrTrayNotRunning) {
		t.Errorf("error = %v, want ErrTrayNotRunning", err)
	}
}
