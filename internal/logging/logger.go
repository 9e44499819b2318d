package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"gorm.io/gorm"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(newJSONHandler(os.Stdout)))
}

// AttachDatabase switches the default logger to stdout plus a PGHandler on db.
// The caller owns the returned handler and must Stop it on shutdown.
func AttachDatabase(db *gorm.DB) *PGHandler {
	pg := NewPGHandler(db)
	slog.SetDefault(slog.New(NewMultiHandler(newJSONHandler(os.Stdout), pg)))
	return pg
}

// PurgeSystemLogs deletes system_logs rows older than retentionDays.
func PurgeSystemLogs(db *gorm.DB, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

func newJSONHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}
