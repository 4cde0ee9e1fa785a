package utils

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/robfig/cron/v3"
)

// rotated log files look like access.log.2026-08-29
var rotatedLogPattern = regexp.MustCompile(`^(access|server)\.log\.\d{4}-\d{2}-\d{2}$`)

// MoveRotatedLogs moves rotated log files from logDir into a fresh
// Logs_<timestamp> folder under arcDir. Returns the number of files
// moved. A missing log directory is not an error.
func MoveRotatedLogs(logDir, arcDir string) (int, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	var matched []string
	for _, entry := range entries {
		if !entry.IsDir() && rotatedLogPattern.MatchString(entry.Name()) {
			matched = append(matched, entry.Name())
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	archiveFolder := filepath.Join(arcDir, "Logs_"+timestamp)
	if err := os.MkdirAll(archiveFolder, 0o755); err != nil {
		return 0, err
	}

	moved := 0
	for _, name := range matched {
		src := filepath.Join(logDir, name)
		dest := filepath.Join(archiveFolder, name)
		if err := os.Rename(src, dest); err != nil {
			log.Printf("[LOG-ARCHIVER] Failed to move %s: %v", name, err)
			continue
		}
		moved++
	}
	return moved, nil
}

// InitializeLogArchiver schedules the nightly log archival run
func InitializeLogArchiver(logDir, arcDir string) *cron.Cron {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Printf("[LOG-ARCHIVER] Failed to create log dir: %v", err)
	}
	if err := os.MkdirAll(arcDir, 0o755); err != nil {
		log.Printf("[LOG-ARCHIVER] Failed to create archive dir: %v", err)
	}

	c := cron.New()

	// Just past midnight, after the logger has rolled its files
	c.AddFunc("5 0 * * *", func() {
		moved, err := MoveRotatedLogs(logDir, arcDir)
		if err != nil {
			log.Printf("[LOG-ARCHIVER] Archival run failed: %v", err)
			return
		}
		if moved > 0 {
			log.Printf("[LOG-ARCHIVER] Archived %d rotated log files", moved)
		}
	})

	c.Start()
	log.Println("[LOG-ARCHIVER] Log archiver started - runs daily at 00:05")
	return c
}
