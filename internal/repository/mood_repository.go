package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/database"
	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/Dias221467/Mindful_Companion/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MoodRepository handles database operations related to mood check-ins.
type MoodRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMoodRepository creates a new instance of MoodRepository.
func NewMoodRepository(db *mongo.Database) *MoodRepository {
	return &MoodRepository{
		collection: db.Collection(database.MoodsCollection),
		now:        time.Now,
	}
}

// CreateCheckIn stores a check-in and assigns its id and creation time.
func (r *MoodRepository) CreateCheckIn(ctx context.Context, checkIn *models.MoodCheckIn) (*models.MoodCheckIn, error) {
	checkIn.ID = primitive.NewObjectID()
	checkIn.CreatedAt = stamp(r.now())

	if _, err := r.collection.InsertOne(ctx, checkIn); err != nil {
		logger.Log.WithError(err).Error("Failed to insert check-in")
		return nil, fmt.Errorf("failed to insert check-in: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"checkin_id": checkIn.ID.Hex(),
		"user_id":    checkIn.UserID.Hex(),
	}).Info("Check-in created successfully")
	return checkIn, nil
}

// ListCheckIns returns one newest-first page of a user's check-ins.
func (r *MoodRepository) ListCheckIns(ctx context.Context, userID primitive.ObjectID, pageSize int, cursor string) (*models.Page[models.MoodCheckIn], error) {
	page, err := findPage(ctx, r.collection, userID, pageSize, cursor, func(c *models.MoodCheckIn) (time.Time, primitive.ObjectID) {
		return c.CreatedAt, c.ID
	})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to list check-ins")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id":  userID.Hex(),
		"count":    len(page.Items),
		"has_more": page.HasMore,
	}).Info("Check-ins fetched successfully")
	return page, nil
}

// LatestCheckIn returns the most recent check-in or ErrNotFound.
func (r *MoodRepository) LatestCheckIn(ctx context.Context, userID primitive.ObjectID) (*models.MoodCheckIn, error) {
	var checkIn models.MoodCheckIn

	opts := options.FindOne().SetSort(newestFirst)
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&checkIn)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch latest check-in")
		return nil, fmt.Errorf("failed to fetch latest check-in: %w", err)
	}
	return &checkIn, nil
}

// CountCheckIns counts every check-in a user has recorded.
func (r *MoodRepository) CountCheckIns(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to count check-ins")
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}
	return n, nil
}

// UpdateCheckIn applies the non-nil fields of update. The creation time never changes.
func (r *MoodRepository) UpdateCheckIn(ctx context.Context, userID, id primitive.ObjectID, update models.CheckInUpdate) (*models.MoodCheckIn, error) {
	set := bson.M{}
	if update.Mood != nil {
		set["mood"] = *update.Mood
	}
	if update.StressLevel != nil {
		set["stressLevel"] = *update.StressLevel
	}
	if update.JournalEntry != nil {
		set["journalEntry"] = *update.JournalEntry
	}

	var checkIn models.MoodCheckIn
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set}, opts).Decode(&checkIn)
	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.Log.WithField("checkin_id", id.Hex()).Warn("Check-in to update not found")
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("checkin_id", id.Hex()).Error("Failed to update check-in")
		return nil, fmt.Errorf("failed to update check-in: %w", err)
	}

	logger.Log.WithField("checkin_id", id.Hex()).Info("Check-in updated successfully")
	return &checkIn, nil
}

// DeleteCheckIn removes a check-in owned by userID.
func (r *MoodRepository) DeleteCheckIn(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("checkin_id", id.Hex()).Error("Failed to delete check-in")
		return fmt.Errorf("failed to delete check-in: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	logger.Log.WithField("checkin_id", id.Hex()).Info("Check-in deleted successfully")
	return nil
}
