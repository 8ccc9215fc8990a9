package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/insights"
	"github.com/Dias221467/Mindful_Companion/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardService assembles the home screen.
type DashboardService struct {
	users    UserStore
	moods    MoodStore
	journals JournalStore
	now      func() time.Time
}

func NewDashboardService(users UserStore, moods MoodStore, journals JournalStore) *DashboardService {
	return &DashboardService{users: users, moods: moods, journals: journals, now: time.Now}
}

// Dashboard is everything the home screen renders except the affirmation.
type Dashboard struct {
	FirstName     string                `json:"firstName"`
	TotalCheckIns int64                 `json:"totalCheckIns"`
	Chart         []insights.ChartPoint `json:"chart"`
	Summary       insights.Summary      `json:"summary"`
	JournalStreak int                   `json:"journalStreak"`
}

// Get builds the dashboard with calendar days and labels in loc.
func (s *DashboardService) Get(ctx context.Context, userID primitive.ObjectID, loc *time.Location) (*Dashboard, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}
	if loc == nil {
		loc = time.Local
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	total, err := s.moods.CountCheckIns(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.moods.ListCheckIns(ctx, userID, insights.ChartWindow, "")
	if err != nil {
		return nil, err
	}

	dates, err := s.journals.ListEntryDates(ctx, userID)
	if err != nil {
		return nil, err
	}

	chart := insights.ChartSeries(recent.Items, loc)
	return &Dashboard{
		FirstName:     firstNameOrDefault(user),
		TotalCheckIns: total,
		Chart:         chart,
		Summary:       insights.Summarize(chart),
		JournalStreak: insights.JournalStreak(dates, s.now().In(loc)),
	}, nil
}

func firstNameOrDefault(u *models.User) string {
	if u.FirstName == "" {
		return "there"
	}
	return u.FirstName
}
