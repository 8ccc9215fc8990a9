package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/database"
	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JournalRepository handles database operations related to journal entries.
type JournalRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewJournalRepository(db *mongo.Database) *JournalRepository {
	return &JournalRepository{
		collection: db.Collection(database.JournalCollection),
		now:        time.Now,
	}
}

// CreateEntry inserts a journal entry exactly as written.
func (r *JournalRepository) CreateEntry(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = stamp(r.now())

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		logrus.WithError(err).Error("Failed to insert journal entry")
		return nil, fmt.Errorf("failed to insert journal entry: %w", err)
	}

	logrus.WithField("entry_id", entry.ID.Hex()).Info("Journal entry created successfully")
	return entry, nil
}

// ListEntries returns one newest-first page of a user's journal.
func (r *JournalRepository) ListEntries(ctx context.Context, userID primitive.ObjectID, pageSize int, cursor string) (*models.Page[models.JournalEntry], error) {
	page, err := findPage(ctx, r.collection, userID, pageSize, cursor, func(e *models.JournalEntry) (time.Time, primitive.ObjectID) {
		return e.CreatedAt, e.ID
	})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to list journal entries")
		return nil, err
	}
	return page, nil
}

// ListEntryDates returns the creation time of every entry, newest first.
func (r *JournalRepository) ListEntryDates(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetProjection(bson.M{"createdAt": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal dates: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode journal dates: %w", err)
	}

	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		if !row.CreatedAt.IsZero() {
			dates = append(dates, row.CreatedAt)
		}
	}
	return dates, nil
}

// UpdateEntry replaces the text of an entry owned by userID.
func (r *JournalRepository) UpdateEntry(ctx context.Context, userID, id primitive.ObjectID, update models.JournalUpdate) (*models.JournalEntry, error) {
	var entry models.JournalEntry

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"entry": *update.Entry}},
		opts,
	).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		logrus.WithError(err).WithField("entry_id", id.Hex()).Error("Failed to update journal entry")
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	logrus.WithField("entry_id", id.Hex()).Info("Journal entry updated successfully")
	return &entry, nil
}

// DeleteEntry removes an entry owned by userID.
func (r *JournalRepository) DeleteEntry(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		logrus.WithError(err).WithField("entry_id", id.Hex()).Error("Failed to delete journal entry")
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	logrus.WithField("entry_id", id.Hex()).Info("Journal entry deleted successfully")
	return nil
}
