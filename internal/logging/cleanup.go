package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/stubuddies/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StartCleanup runs a daily goroutine that deletes system_logs documents
// older than 30 days.
func StartCleanup(db *mongo.Database, done chan struct{}) {
	col := db.Collection(models.SystemLogCollection)
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -30)
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				res, err := col.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
				cancel()
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if res.DeletedCount > 0 {
					slog.Info("log cleanup completed", "deleted", res.DeletedCount)
				}
			case <-done:
				return
			}
		}
	}()
}
