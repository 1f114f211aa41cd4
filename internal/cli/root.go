package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/onefocus/internal/backup"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/logger"
	"github.com/julianstephens/onefocus/internal/storage"
	"github.com/julianstephens/onefocus/internal/storage/sqlite"
)

type Context struct {
	Store   storage.Provider
	Journey *journey.Service

	// In is read by confirmation prompts; nil means os.Stdin.
	In io.Reader
}

// NewContext wires a journey service to store.
func NewContext(store storage.Provider, opts ...journey.Option) *Context {
	return &Context{
		Store:   store,
		Journey: journey.NewService(store, opts...),
	}
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only file-backed SQLite databases are backed up.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		logger.Debug("Skipping automatic backup for non-SQLite store")
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm prints prompt and reads a y/N answer.
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [y/N]: ", prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// FormatPercent renders a 0..1 ratio as a whole percentage.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}
