package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDashboard(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), FirstName: "Ada"}
	now := time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC)

	moods := &fakeMoodStore{}
	for i := 0; i < 12; i++ {
		moods.items = append(moods.items, models.MoodCheckIn{
			ID:          primitive.NewObjectID(),
			UserID:      user.ID,
			Mood:        models.MoodHappy,
			StressLevel: 2,
			CreatedAt:   now.Add(-time.Duration(i) * time.Hour),
		})
	}
	journals := &fakeJournalStore{dates: []time.Time{
		now.Add(-time.Hour),
		now.Add(-24 * time.Hour),
		now.Add(-48 * time.Hour),
		now.Add(-96 * time.Hour),
	}}

	svc := NewDashboardService(newFakeUserStore(user), moods, journals)
	svc.now = func() time.Time { return now }

	got, err := svc.Get(context.Background(), user.ID, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.EqualValues(t, 12, got.TotalCheckIns)
	assert.Len(t, got.Chart, 7)
	assert.Equal(t, "Happy", got.Summary.Label)
	assert.Equal(t, 3, got.JournalStreak)
}

func TestDashboardEmpty(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	svc := NewDashboardService(newFakeUserStore(user), &fakeMoodStore{}, &fakeJournalStore{})

	got, err := svc.Get(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "there", got.FirstName)
	assert.Zero(t, got.TotalCheckIns)
	assert.Empty(t, got.Chart)
	assert.Equal(t, "No data", got.Summary.Label)
	assert.Zero(t, got.JournalStreak)

	_, err = svc.Get(context.Background(), primitive.NilObjectID, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
