package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	collectionThreads  = "threads"
	collectionMessages = "messages"
)

type threadDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	PairKey       string             `bson:"pair_key"`
	Participants  []int64            `bson:"participants"`
	ApplicationID *int64             `bson:"application_id,omitempty"`
	LastMessageAt time.Time          `bson:"last_message_at"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (d threadDoc) toDomain() *domain.Thread {
	return &domain.Thread{
		ID:            d.ID.Hex(),
		Participants:  d.Participants,
		ApplicationID: d.ApplicationID,
		LastMessageAt: d.LastMessageAt,
		CreatedAt:     d.CreatedAt,
	}
}

type messageDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ThreadID    primitive.ObjectID `bson:"thread_id"`
	SenderID    int64              `bson:"sender_id"`
	RecipientID int64              `bson:"recipient_id"`
	Body        string             `bson:"body"`
	ReadAt      *time.Time         `bson:"read_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d messageDoc) toDomain() *domain.Message {
	return &domain.Message{
		ID:          d.ID.Hex(),
		ThreadID:    d.ThreadID.Hex(),
		SenderID:    d.SenderID,
		RecipientID: d.RecipientID,
		Body:        d.Body,
		ReadAt:      d.ReadAt,
		CreatedAt:   d.CreatedAt,
	}
}

// MessageRepository implements ports.MessageRepository using MongoDB.
type MessageRepository struct {
	threads  *mongo.Collection
	messages *mongo.Collection
	now      func() time.Time
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		threads:  db.Collection(collectionThreads),
		messages: db.Collection(collectionMessages),
		now:      time.Now,
	}
}

// pairKey identifies the thread of two users regardless of argument order.
func pairKey(a, b int64) (string, []int64) {
	if a > b {
		a, b = b, a
	}
	return strconv.FormatInt(a, 10) + ":" + strconv.FormatInt(b, 10), []int64{a, b}
}

// FindOrCreateThread upserts the thread keyed by the participant pair. A
// concurrent insert losing the unique index race re-reads the winner.
func (r *MessageRepository) FindOrCreateThread(ctx context.Context, a, b int64, applicationID *int64) (*domain.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	key, participants := pairKey(a, b)
	now := r.now().UTC()
	onInsert := bson.M{
		"participants":    participants,
		"last_message_at": now,
		"created_at":      now,
	}
	if applicationID != nil {
		onInsert["application_id"] = *applicationID
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc threadDoc
	err := r.threads.FindOneAndUpdate(ctx, bson.M{"pair_key": key}, bson.M{"$setOnInsert": onInsert}, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		err = r.threads.FindOne(ctx, bson.M{"pair_key": key}).Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert thread: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MessageRepository) FindThread(ctx context.Context, id string) (*domain.Thread, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrThreadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc threadDoc
	if err := r.threads.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrThreadNotFound
		}
		return nil, fmt.Errorf("find thread: %w", err)
	}
	return doc.toDomain(), nil
}

// ListThreads returns the threads a user takes part in, most recent activity first.
func (r *MessageRepository) ListThreads(ctx context.Context, participantID int64) ([]*domain.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.threads.Find(ctx, bson.M{"participants": participantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find threads: %w", err)
	}
	defer cur.Close(ctx)

	var docs []threadDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode threads: %w", err)
	}
	threads := make([]*domain.Thread, 0, len(docs))
	for _, d := range docs {
		threads = append(threads, d.toDomain())
	}
	return threads, nil
}

// InsertMessage stores msg and advances the thread's last activity.
func (r *MessageRepository) InsertMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	threadID, err := primitive.ObjectIDFromHex(msg.ThreadID)
	if err != nil {
		return nil, domain.ErrThreadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := messageDoc{
		ID:          primitive.NewObjectID(),
		ThreadID:    threadID,
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Body:        msg.Body,
		CreatedAt:   msg.CreatedAt.UTC(),
	}
	if _, err := r.messages.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	_, err = r.threads.UpdateOne(ctx,
		bson.M{"_id": threadID},
		bson.M{"$max": bson.M{"last_message_at": doc.CreatedAt}})
	if err != nil {
		return nil, fmt.Errorf("touch thread: %w", err)
	}
	return doc.toDomain(), nil
}

// ListMessages returns a thread's messages, oldest first.
func (r *MessageRepository) ListMessages(ctx context.Context, threadID string) ([]*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(threadID)
	if err != nil {
		return nil, domain.ErrThreadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.messages.Find(ctx, bson.M{"thread_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	defer cur.Close(ctx)

	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	msgs := make([]*domain.Message, 0, len(docs))
	for _, d := range docs {
		msgs = append(msgs, d.toDomain())
	}
	return msgs, nil
}

// MarkRead stamps every unread message addressed to recipientID and returns
// how many changed.
func (r *MessageRepository) MarkRead(ctx context.Context, threadID string, recipientID int64, at time.Time) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(threadID)
	if err != nil {
		return 0, domain.ErrThreadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.messages.UpdateMany(ctx,
		bson.M{"thread_id": oid, "recipient_id": recipientID, "read_at": nil},
		bson.M{"$set": bson.M{"read_at": at.UTC()}})
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}
	return res.ModifiedCount, nil
}

var _ ports.MessageRepository = (*MessageRepository)(nil)
