package services

import (
	"context"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoodStore is the persistence the mood features need. *repository.MoodRepository implements it.
type MoodStore interface {
	CreateCheckIn(ctx context.Context, checkIn *models.MoodCheckIn) (*models.MoodCheckIn, error)
	ListCheckIns(ctx context.Context, userID primitive.ObjectID, pageSize int, cursor string) (*models.Page[models.MoodCheckIn], error)
	LatestCheckIn(ctx context.Context, userID primitive.ObjectID) (*models.MoodCheckIn, error)
	CountCheckIns(ctx context.Context, userID primitive.ObjectID) (int64, error)
	UpdateCheckIn(ctx context.Context, userID, id primitive.ObjectID, update models.CheckInUpdate) (*models.MoodCheckIn, error)
	DeleteCheckIn(ctx context.Context, userID, id primitive.ObjectID) error
}

// JournalStore is implemented by *repository.JournalRepository.
type JournalStore interface {
	CreateEntry(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error)
	ListEntries(ctx context.Context, userID primitive.ObjectID, pageSize int, cursor string) (*models.Page[models.JournalEntry], error)
	ListEntryDates(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error)
	UpdateEntry(ctx context.Context, userID, id primitive.ObjectID, update models.JournalUpdate) (*models.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID, id primitive.ObjectID) error
}

// UserStore is implemented by *repository.UserRepository.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	TouchLastActive(ctx context.Context, id primitive.ObjectID, at time.Time) error
	GetInactiveUsers(ctx context.Context, since, remindedBefore time.Time) ([]models.User, error)
}
