package logging

import (
	"log/slog"
	"time"

	"github.com/oakmart/storefront-backend/internal/models"
	"gorm.io/gorm"
)

// system_logs rows older than this are deleted by the daily sweep.
const logRetention = 30 * 24 * time.Hour

// StartCleanup launches the daily retention sweep over system_logs. Closing
// done stops it.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().Add(-logRetention)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
