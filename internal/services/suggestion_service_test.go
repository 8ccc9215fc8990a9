package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/genai"
	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/Dias221467/Mindful_Companion/internal/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const activitiesReply = `{"activities":[
	{"title":"Box breathing","category":"Breathing","description":"Breathe in for four, hold for four."},
	{"title":"Brain dump","category":"Journaling","description":"Write every worry down for five minutes."}
]}`

func newSuggestionFixture(t *testing.T, gen *fakeGenerator) (*SuggestionService, *fakeMoodStore, primitive.ObjectID) {
	t.Helper()
	dob := time.Date(2005, time.June, 15, 0, 0, 0, 0, time.UTC)
	user := &models.User{ID: primitive.NewObjectID(), FirstName: "Ada", DOB: &dob}

	moods := &fakeMoodStore{}
	svc := NewSuggestionService(gen, moods, newFakeUserStore(user))
	svc.now = func() time.Time { return time.Date(2024, time.June, 14, 12, 0, 0, 0, time.UTC) }
	return svc, moods, user.ID
}

func TestSelfCareActivitiesUsesProfileAge(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{prompts.FlowSelfCare: activitiesReply}}
	svc, _, userID := newSuggestionFixture(t, gen)

	activities, err := svc.SelfCareActivities(context.Background(), userID, prompts.SelfCareInput{
		Mood:         models.MoodAnxious,
		StressLevel:  8,
		JournalEntry: "worried about exams",
	})
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, models.CategoryBreathing, activities[0].Category)

	require.Equal(t, 1, gen.calls())
	prompt := gen.requests[0].Prompt
	assert.Contains(t, prompt, "Mood: Anxious")
	assert.Contains(t, prompt, "Stress Level (1-10): 8")
	assert.Contains(t, prompt, "worried about exams")
	// Birthday is tomorrow.
	assert.Contains(t, prompt, "Age: 18")
}

func TestSelfCareActivitiesRejectsBadReplies(t *testing.T) {
	tests := map[string]string{
		"empty list":       `{"activities":[]}`,
		"unknown category": `{"activities":[{"title":"Knit","category":"Crafts","description":"Knit a row."}]}`,
	}

	for name, reply := range tests {
		t.Run(name, func(t *testing.T) {
			gen := &fakeGenerator{replies: map[string]string{prompts.FlowSelfCare: reply}}
			svc, _, userID := newSuggestionFixture(t, gen)

			_, err := svc.SelfCareActivities(context.Background(), userID, prompts.SelfCareInput{Mood: models.MoodOkay, StressLevel: 4})
			assert.ErrorIs(t, err, ErrGeneration)
			assert.ErrorIs(t, err, genai.ErrMalformedResponse)
		})
	}
}

func TestValidationFailsBeforeCallingService(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _, userID := newSuggestionFixture(t, gen)

	_, err := svc.ActivityDetails(context.Background(), userID, prompts.ActivityDetailsInput{Mood: models.MoodOkay, StressLevel: 12, Activity: "Walk"})
	var verrs models.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Zero(t, gen.calls())

	_, err = svc.JournalPrompt(context.Background(), primitive.NilObjectID, prompts.JournalPromptInput{Mood: models.MoodOkay})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestServiceFailureIsGenerationError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream 503")}
	svc, _, userID := newSuggestionFixture(t, gen)

	_, err := svc.JournalPrompt(context.Background(), userID, prompts.JournalPromptInput{Mood: models.MoodSad})
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Contains(t, err.Error(), "upstream 503")
}

func TestJournalPromptAndDetails(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{
		prompts.FlowJournalPrompt:   `{"prompt":"What helped you feel calm today?"}`,
		prompts.FlowActivityDetails: `{"details":"Sit comfortably and breathe slowly."}`,
	}}
	svc, _, userID := newSuggestionFixture(t, gen)

	age := 30
	prompt, err := svc.JournalPrompt(context.Background(), userID, prompts.JournalPromptInput{Mood: models.MoodCalm, Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "What helped you feel calm today?", prompt)
	assert.Contains(t, gen.requests[0].Prompt, "Age: 30")

	details, err := svc.ActivityDetails(context.Background(), userID, prompts.ActivityDetailsInput{Mood: models.MoodCalm, StressLevel: 2, Activity: "Box breathing"})
	require.NoError(t, err)
	assert.Equal(t, "Sit comfortably and breathe slowly.", details)
}

func TestActivitiesForLatestCheckIn(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{prompts.FlowSelfCare: activitiesReply}}
	svc, moods, userID := newSuggestionFixture(t, gen)

	empty, err := svc.ActivitiesForLatestCheckIn(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, empty.CheckIn)
	assert.Empty(t, empty.Activities)
	assert.Zero(t, gen.calls())

	_, err = moods.CreateCheckIn(context.Background(), &models.MoodCheckIn{
		UserID:       userID,
		Mood:         models.MoodAnxious,
		StressLevel:  8,
		JournalEntry: "worried about exams",
	})
	require.NoError(t, err)

	got, err := svc.ActivitiesForLatestCheckIn(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, got.CheckIn)
	assert.Equal(t, models.MoodAnxious, got.CheckIn.Mood)
	assert.Len(t, got.Activities, 2)
	assert.Contains(t, gen.requests[0].Prompt, "worried about exams")
}
