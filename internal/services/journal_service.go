package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalService handles free-text journal entries.
type JournalService struct {
	store JournalStore
}

func NewJournalService(store JournalStore) *JournalService {
	return &JournalService{store: store}
}

// CreateEntry stores the entry exactly as written.
func (s *JournalService) CreateEntry(ctx context.Context, userID primitive.ObjectID, entry models.JournalEntry) (*models.JournalEntry, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}
	entry.UserID = userID

	if err := entry.Validate(); err != nil {
		logrus.WithField("userID", userID.Hex()).WithError(err).Warn("Rejected journal entry")
		return nil, err
	}

	created, err := s.store.CreateEntry(ctx, &entry)
	if err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	return created, nil
}

func (s *JournalService) ListEntries(ctx context.Context, userID primitive.ObjectID, pageSize int, cursor string) (*models.Page[models.JournalEntry], error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}
	return s.store.ListEntries(ctx, userID, pageSize, cursor)
}

func (s *JournalService) UpdateEntry(ctx context.Context, userID, id primitive.ObjectID, update models.JournalUpdate) (*models.JournalEntry, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateEntry(ctx, userID, id, update)
}

func (s *JournalService) DeleteEntry(ctx context.Context, userID, id primitive.ObjectID) error {
	if userID.IsZero() {
		return ErrUnauthenticated
	}
	return s.store.DeleteEntry(ctx, userID, id)
}
