package services

import (
	"context"
	"testing"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateCheckIn(t *testing.T) {
	store := &fakeMoodStore{}
	svc := NewMoodService(store, nil)
	userID := primitive.NewObjectID()

	created, err := svc.CreateCheckIn(context.Background(), userID, models.MoodCheckIn{
		Mood:         models.MoodAnxious,
		StressLevel:  8,
		JournalEntry: "worried about exams",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, created.UserID)
	assert.False(t, created.ID.IsZero())

	_, err = svc.CreateCheckIn(context.Background(), primitive.NilObjectID, models.MoodCheckIn{Mood: models.MoodHappy, StressLevel: 1})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.CreateCheckIn(context.Background(), userID, models.MoodCheckIn{Mood: "Bored", StressLevel: 0})
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Equal(t, 1, store.created)
}

func TestCheckInOwnership(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	store := &fakeMoodStore{}
	svc := NewMoodService(store, nil)

	created, err := svc.CreateCheckIn(context.Background(), owner, models.MoodCheckIn{Mood: models.MoodSad, StressLevel: 6})
	require.NoError(t, err)

	level := 3
	_, err = svc.UpdateCheckIn(context.Background(), other, created.ID, models.CheckInUpdate{StressLevel: &level})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteCheckIn(context.Background(), other, created.ID), ErrNotFound)

	updated, err := svc.UpdateCheckIn(context.Background(), owner, created.ID, models.CheckInUpdate{StressLevel: &level})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.StressLevel)
	assert.Equal(t, models.MoodSad, updated.Mood)

	_, err = svc.UpdateCheckIn(context.Background(), owner, created.ID, models.CheckInUpdate{})
	assert.Error(t, err)

	require.NoError(t, svc.DeleteCheckIn(context.Background(), owner, created.ID))
	_, err = svc.LatestCheckIn(context.Background(), owner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryChartsNewestSeven(t *testing.T) {
	userID := primitive.NewObjectID()
	store := &fakeMoodStore{}
	svc := NewMoodService(store, nil)

	for i := 0; i < 9; i++ {
		_, err := svc.CreateCheckIn(context.Background(), userID, models.MoodCheckIn{Mood: models.MoodCalm, StressLevel: 2})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), userID, 0, "")
	require.NoError(t, err)
	assert.Len(t, history.Items, 9)
	assert.Len(t, history.Chart, 7)
	assert.Equal(t, "Calm", history.Summary.Label)
	assert.Equal(t, "steady", history.Summary.Trend)
}

func TestJournalService(t *testing.T) {
	userID := primitive.NewObjectID()
	store := &fakeJournalStore{}
	svc := NewJournalService(store)

	text := "  Today I walked by the river.\n"
	created, err := svc.CreateEntry(context.Background(), userID, models.JournalEntry{Entry: text})
	require.NoError(t, err)
	assert.Equal(t, text, created.Entry)

	_, err = svc.CreateEntry(context.Background(), userID, models.JournalEntry{Entry: " \n\t"})
	assert.Error(t, err)

	_, err = svc.CreateEntry(context.Background(), primitive.NilObjectID, models.JournalEntry{Entry: "x"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	page, err := svc.ListEntries(context.Background(), userID, 10, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	edited := "Edited"
	updated, err := svc.UpdateEntry(context.Background(), userID, created.ID, models.JournalUpdate{Entry: &edited})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Entry)

	assert.ErrorIs(t, svc.DeleteEntry(context.Background(), primitive.NewObjectID(), created.ID), ErrNotFound)
	assert.NoError(t, svc.DeleteEntry(context.Background(), userID, created.ID))
}
