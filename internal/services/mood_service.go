package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/insights"
	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoodService handles mood check-ins and the history derived from them.
type MoodService struct {
	store MoodStore
	loc   *time.Location
}

// NewMoodService creates a new instance of MoodService. Chart labels are rendered in loc.
func NewMoodService(store MoodStore, loc *time.Location) *MoodService {
	if loc == nil {
		loc = time.Local
	}
	return &MoodService{store: store, loc: loc}
}

// MoodHistory is one page of check-ins with the chart and summary drawn from it.
type MoodHistory struct {
	*models.Page[models.MoodCheckIn]
	Chart   []insights.ChartPoint `json:"chart"`
	Summary insights.Summary      `json:"summary"`
}

// CreateCheckIn validates and stores a check-in for userID.
func (s *MoodService) CreateCheckIn(ctx context.Context, userID primitive.ObjectID, checkIn models.MoodCheckIn) (*models.MoodCheckIn, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}
	checkIn.UserID = userID

	if err := checkIn.Validate(); err != nil {
		logrus.WithField("userID", userID.Hex()).WithError(err).Warn("Rejected check-in")
		return nil, err
	}

	created, err := s.store.CreateCheckIn(ctx, &checkIn)
	if err != nil {
		return nil, fmt.Errorf("failed to save check-in: %w", err)
	}
	return created, nil
}

// ListCheckIns returns one newest-first page.
func (s *MoodService) ListCheckIns(ctx context.Context, userID primitive.ObjectID, pageSize int, cursor string) (*models.Page[models.MoodCheckIn], error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}
	return s.store.ListCheckIns(ctx, userID, pageSize, cursor)
}

// LatestCheckIn returns the most recent check-in or ErrNotFound.
func (s *MoodService) LatestCheckIn(ctx context.Context, userID primitive.ObjectID) (*models.MoodCheckIn, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}
	return s.store.LatestCheckIn(ctx, userID)
}

// History returns a page of check-ins with a chart of its newest seven.
func (s *MoodService) History(ctx context.Context, userID primitive.ObjectID, pageSize int, cursor string) (*MoodHistory, error) {
	page, err := s.ListCheckIns(ctx, userID, pageSize, cursor)
	if err != nil {
		return nil, err
	}

	chart := insights.ChartSeries(page.Items, s.loc)
	return &MoodHistory{
		Page:    page,
		Chart:   chart,
		Summary: insights.Summarize(chart),
	}, nil
}

// UpdateCheckIn applies a partial update to one of the user's own check-ins.
func (s *MoodService) UpdateCheckIn(ctx context.Context, userID, id primitive.ObjectID, update models.CheckInUpdate) (*models.MoodCheckIn, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateCheckIn(ctx, userID, id, update)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logrus.WithFields(logrus.Fields{"userID": userID.Hex(), "checkInID": id.Hex()}).Warn("Check-in not found for update")
		}
		return nil, err
	}
	return updated, nil
}

// DeleteCheckIn removes one of the user's own check-ins.
func (s *MoodService) DeleteCheckIn(ctx context.Context, userID, id primitive.ObjectID) error {
	if userID.IsZero() {
		return ErrUnauthenticated
	}
	return s.store.DeleteCheckIn(ctx, userID, id)
}
