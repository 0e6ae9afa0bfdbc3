package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/swimlog/internal/cli"
	"github.com/xolan/swimlog/internal/storage"
)

// Validate reports on the health of the stored catalog
func Validate(deps *cli.Deps) {
	svc, ok := openCatalog(deps)
	if !ok {
		return
	}

	health, err := svc.Health()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to validate storage: %v\n", err)
		deps.Exit(1)
		return
	}

	if loc := svc.Location(); loc != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Storage file: %s\n", loc)
	}

	if !health.Exists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: No saved events (the default event list is used)")
		return
	}

	if !health.Valid {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Corrupted")
		_, _ = fmt.Fprintf(deps.Stdout, "Details: %s\n", health.Error)
		_, _ = fmt.Fprintln(deps.Stdout, "The default event list is used until the file is fixed or restored.")
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Run 'swimlog restore' to restore from a backup")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Status: Healthy")
	_, _ = fmt.Fprintf(deps.Stdout, "Size: %s\n", cli.FormatBytes(health.Bytes))
	_, _ = fmt.Fprintf(deps.Stdout, "Events: %d\n", health.EventCount)
	_, _ = fmt.Fprintf(deps.Stdout, "Times: %d\n", health.TimeCount)
	if len(health.Duplicates) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Warning: Duplicate event names are merged on load: %s\n", strings.Join(health.Duplicates, ", "))
	}
}

// RestoreBackup restores the stored catalog from a backup. With no argument
// the most recent backup is used.
func RestoreBackup(deps *cli.Deps, args []string) {
	svc, ok := openCatalog(deps)
	if !ok {
		return
	}

	backups, err := svc.Backups()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, backup := range backups {
		line := cli.FormatBackup(backup)
		if backup.Number == 1 {
			line += " (most recent)"
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	exists := false
	for _, backup := range backups {
		if backup.Number == backupNum {
			exists = true
			break
		}
	}
	if !exists {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", backupNum)
		deps.Exit(1)
		return
	}

	if err := svc.Restore(backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
}
