package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const collectionApplicationEvents = "application_events"

type eventDoc struct {
	ApplicationID int64     `bson:"application_id"`
	From          string    `bson:"from,omitempty"`
	To            string    `bson:"to"`
	ActorUserID   int64     `bson:"actor_user_id"`
	Timestamp     time.Time `bson:"timestamp"`
	RecordedAt    time.Time `bson:"recorded_at"`
}

// EventRepository implements ports.ApplicationEventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionApplicationEvents)}
}

// InsertEvent appends a status change to the application audit trail.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.ApplicationEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := eventDoc{
		ApplicationID: event.ApplicationID,
		From:          string(event.From),
		To:            string(event.To),
		ActorUserID:   event.ActorUserID,
		Timestamp:     event.Timestamp.UTC(),
		RecordedAt:    time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert application event: %w", err)
	}
	return nil
}

// ListEvents returns the trail of one application, oldest first.
func (r *EventRepository) ListEvents(ctx context.Context, applicationID int64) ([]domain.ApplicationEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"application_id": applicationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find application events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []eventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode application events: %w", err)
	}

	events := make([]domain.ApplicationEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.ApplicationEvent{
			ApplicationID: d.ApplicationID,
			From:          domain.ApplicationStatus(d.From),
			To:            domain.ApplicationStatus(d.To),
			ActorUserID:   d.ActorUserID,
			Timestamp:     d.Timestamp,
		})
	}
	return events, nil
}

var _ ports.ApplicationEventRepository = (*EventRepository)(nil)
