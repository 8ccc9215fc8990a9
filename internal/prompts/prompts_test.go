package prompts

import (
	"errors"
	"testing"

	"github.com/Dias221467/Mindful_Companion/internal/genai"
	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSelfCareActivitiesRequest(t *testing.T) {
	req, err := SelfCareActivities(SelfCareInput{
		Mood:         models.MoodAnxious,
		StressLevel:  8,
		JournalEntry: "worried about exams",
		Age:          intPtr(19),
	})
	require.NoError(t, err)

	assert.Equal(t, FlowSelfCare, req.Flow)
	assert.Contains(t, req.Prompt, "Mood: Anxious")
	assert.Contains(t, req.Prompt, "Stress Level (1-10): 8")
	assert.Contains(t, req.Prompt, "User's thoughts: worried about exams")
	assert.Contains(t, req.Prompt, "Age: 19")
	assert.Contains(t, req.Prompt, "Breathing, Journaling, Movement, Music, Games, Surprise Me")

	require.NotNil(t, req.Schema)
	assert.Equal(t, []string{"activities"}, req.Schema.Required)
	items := req.Schema.Properties["activities"].Items
	require.NotNil(t, items)
	assert.Equal(t, []string{"category", "description", "title"}, items.Required)
	assert.Len(t, items.Properties["category"].Enum, len(models.ActivityCategories))

	assert.Equal(t, userTextSafety, req.Safety)
}

func TestOptionalFieldsAreOmitted(t *testing.T) {
	req, err := JournalPrompt(JournalPromptInput{Mood: models.MoodCalm})
	require.NoError(t, err)

	assert.Contains(t, req.Prompt, "Mood: Calm")
	assert.NotContains(t, req.Prompt, "Age:")
	assert.NotContains(t, req.Prompt, "Journal Entry:")
	assert.Empty(t, req.Safety)
}

func TestActivityDetailsRequest(t *testing.T) {
	req, err := ActivityDetails(ActivityDetailsInput{
		Mood:        models.MoodSad,
		StressLevel: 6,
		Activity:    "Box breathing",
	})
	require.NoError(t, err)

	assert.Contains(t, req.Prompt, "stress level of 6 out of 10")
	assert.Contains(t, req.Prompt, `"Box breathing"`)
	assert.NotContains(t, req.Prompt, "years old")
	assert.Equal(t, []string{"details"}, req.Schema.Required)
	assert.Len(t, req.Safety, 4)
}

func TestDailyAffirmationRequest(t *testing.T) {
	req := DailyAffirmation()
	assert.Equal(t, FlowAffirmation, req.Flow)
	assert.Equal(t, []string{"affirmation"}, req.Schema.Required)
}

func TestInputValidation(t *testing.T) {
	_, err := SelfCareActivities(SelfCareInput{Mood: "Bored", StressLevel: 11})
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "mood")
	assert.Contains(t, verrs, "stressLevel")

	_, err = ActivityDetails(ActivityDetailsInput{Mood: models.MoodOkay, StressLevel: 1, Activity: "  "})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "is required", verrs["activity"])

	_, err = JournalPrompt(JournalPromptInput{})
	assert.Error(t, err)
}

func TestSelfCareOutputValidate(t *testing.T) {
	good := SelfCareOutput{Activities: []models.SelfCareActivity{
		{Title: "Box breathing", Category: models.CategoryBreathing, Description: "Breathe in four counts."},
	}}
	assert.NoError(t, good.Validate())

	empty := SelfCareOutput{}
	assert.ErrorIs(t, empty.Validate(), ErrNoActivities)
	assert.True(t, IsDataQuality(empty.Validate()))

	bad := SelfCareOutput{Activities: []models.SelfCareActivity{
		{Title: "Knitting", Category: "Crafts", Description: "Knit a row."},
	}}
	err := bad.Validate()
	var catErr *CategoryError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, models.ActivityCategory("Crafts"), catErr.Category)
	assert.ErrorIs(t, err, genai.ErrMalformedResponse)

	blank := SelfCareOutput{Activities: []models.SelfCareActivity{
		{Title: " ", Category: models.CategoryMusic, Description: "Listen."},
	}}
	assert.ErrorIs(t, blank.Validate(), genai.ErrMalformedResponse)
}

func TestTextOutputsRejectBlank(t *testing.T) {
	assert.ErrorIs(t, (&JournalPromptOutput{}).Validate(), genai.ErrMalformedResponse)
	assert.ErrorIs(t, (&ActivityDetailsOutput{Details: "\n"}).Validate(), genai.ErrMalformedResponse)
	assert.ErrorIs(t, (&AffirmationOutput{}).Validate(), genai.ErrMalformedResponse)
	assert.NoError(t, (&AffirmationOutput{Affirmation: "I am enough."}).Validate())
}
