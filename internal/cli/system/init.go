package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/config"
	"github.com/julianstephens/onefocus/internal/storage"
	"github.com/julianstephens/onefocus/internal/storage/postgres"
	"github.com/julianstephens/onefocus/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`

	// ConfigFile receives a default application config when set and missing.
	ConfigFile string `kong:"-"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first so the file is not held open while it is removed
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized onefocus storage at: %s\n", ctx.Store.GetConfigPath())

	if c.ConfigFile != "" {
		if err := config.InstallDefaults(c.ConfigFile); err != nil {
			fmt.Printf("⚠️  Failed to write default config: %v\n", err)
		}
	}

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func openSource(sourcePath string) (storage.Provider, error) {
	switch {
	case strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://"):
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(sourcePath), nil
	case strings.HasSuffix(sourcePath, ".json"):
		return storage.NewJSONStore(sourcePath), nil
	default:
		return sqlite.NewStore(sourcePath), nil
	}
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := openSource(sourcePath)
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating journeys...")
	journeys, err := sourceStore.GetAllJourneys()
	if err != nil {
		return fmt.Errorf("failed to get journeys from source: %w", err)
	}
	for _, j := range journeys {
		if err := ctx.Store.AddJourney(j); err != nil {
			return fmt.Errorf("failed to add journey %s: %w", j.ID, err)
		}
	}
	fmt.Printf("    Migrated %d journeys\n", len(journeys))

	fmt.Println("  Migrating habits...")
	habits, err := sourceStore.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, h := range habits {
		if err := ctx.Store.AddHabit(h); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", h.ID, err)
		}
	}
	fmt.Printf("    Migrated %d habits\n", len(habits))

	fmt.Println("  Migrating mood entries...")
	moods, err := sourceStore.GetMoodEntries()
	if err != nil {
		return fmt.Errorf("failed to get mood entries from source: %w", err)
	}
	for _, m := range moods {
		if err := ctx.Store.AddMoodEntry(m); err != nil {
			return fmt.Errorf("failed to add mood entry %s: %w", m.ID, err)
		}
	}
	fmt.Printf("    Migrated %d mood entries\n", len(moods))

	fmt.Println("  Migrating reflections...")
	reflections, err := sourceStore.GetAllReflections()
	if err != nil {
		return fmt.Errorf("failed to get reflections from source: %w", err)
	}
	for _, r := range reflections {
		if err := ctx.Store.AddReflection(r); err != nil {
			return fmt.Errorf("failed to add reflection %s: %w", r.ID, err)
		}
	}
	fmt.Printf("    Migrated %d reflections\n", len(reflections))

	return nil
}
