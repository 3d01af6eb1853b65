package daemon

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AzmainZaman/CSE470-Project/internal/models"
	"github.com/AzmainZaman/CSE470-Project/internal/utils"
)

// LogExporter drains unexported audit entries on an interval and marks
// them exported.
type LogExporter struct {
	Coll     *mongo.Collection
	Interval time.Duration

	stop chan struct{}
}

func (l *LogExporter) Start() {
	if l.Interval <= 0 {
		l.Interval = 30 * time.Second
	}
	l.stop = make(chan struct{})

	go func() {
		ticker := time.NewTicker(l.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.exportPending()
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *LogExporter) Stop() {
	if l.stop != nil {
		close(l.stop)
	}
}

func (l *LogExporter) exportPending() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := l.Coll.Find(ctx, bson.M{"exported": false})
	if err != nil {
		log.Printf("log exporter: find failed: %v", err)
		return
	}

	var logs []models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		log.Printf("log exporter: decode failed: %v", err)
		return
	}
	if len(logs) == 0 {
		return
	}

	if err := utils.ExportData(logs); err != nil {
		log.Printf("log exporter: export failed: %v", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(logs))
	for _, entry := range logs {
		ids = append(ids, entry.ID)
	}
	_, err = l.Coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"exported": true}})
	if err != nil {
		log.Printf("log exporter: mark exported failed: %v", err)
	}
}
