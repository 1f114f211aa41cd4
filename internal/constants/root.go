package constants

import "time"

const (
	AppName            = "onefocus"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/onefocus/onefocus.db"
	Version            = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "onefocus-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "onefocus-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.onefocus"
	TrayAppExecutable      = "onefocus-tray"

	// Environment variables
	EnvDBConnection = "ONEFOCUS_DB_CONNECTION"
)
