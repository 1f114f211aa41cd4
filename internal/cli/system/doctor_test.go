package system

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/onefocus/internal/backup"
	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/storage/sqlite"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := cli.NewContext(store,
		journey.WithClock(func() time.Time { return testNow }),
		journey.WithLocation(time.UTC),
	)
	return ctx, store
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _ := setupTestDB(t)

	// Missing backups is a warning, not a failure
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, _ := setupTestDB(t)

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if err := checkBackupsPresent(ctx); err != nil {
		t.Errorf("checkBackupsPresent: %v", err)
	}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store := setupTestDB(t)

	db := store.GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestCheckMigrationsComplete_Incomplete(t *testing.T) {
	ctx, store := setupTestDB(t)

	current, _, err := store.SchemaVersions()
	if err != nil {
		t.Fatalf("SchemaVersions: %v", err)
	}
	if current <= 1 {
		t.Skip("only one migration")
	}

	db := store.GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", current-1); err != nil {
		t.Fatalf("failed to insert downgraded schema version: %v", err)
	}

	if err := checkMigrationsComplete(ctx); err == nil {
		t.Error("checkMigrationsComplete should fail with incomplete migrations")
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx, store := setupTestDB(t)
	if err := checkClockTimezone(ctx); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.Timezone = "Mars/Olympus_Mons"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestCheckJourneys_InvalidKey(t *testing.T) {
	ctx, store := setupTestDB(t)

	j, err := ctx.Journey.GetOrCreateJourney()
	if err != nil {
		t.Fatal(err)
	}
	j.CompletedDays = append(j.CompletedDays, "not-a-date")
	if err := store.UpdateJourney(j); err != nil {
		t.Fatal(err)
	}

	if err := checkJourneys(ctx); err == nil {
		t.Error("expected unreadable key to be reported")
	}
}
