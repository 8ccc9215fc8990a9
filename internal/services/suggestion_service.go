package services

import (
	"context"
	"errors"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/genai"
	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/Dias221467/Mindful_Companion/internal/prompts"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SuggestionService produces journaling prompts and self-care guidance for a user.
type SuggestionService struct {
	gen   genai.Generator
	moods MoodStore
	users UserStore
	now   func() time.Time
}

func NewSuggestionService(gen genai.Generator, moods MoodStore, users UserStore) *SuggestionService {
	return &SuggestionService{gen: gen, moods: moods, users: users, now: time.Now}
}

// LatestSuggestions is the reply for the "use last check-in" flow.
// CheckIn is nil when the user has never checked in.
type LatestSuggestions struct {
	CheckIn    *models.MoodCheckIn       `json:"checkIn"`
	Activities []models.SelfCareActivity `json:"activities"`
}

// JournalPrompt returns one reflective prompt for the user's mood.
func (s *SuggestionService) JournalPrompt(ctx context.Context, userID primitive.ObjectID, in prompts.JournalPromptInput) (string, error) {
	if userID.IsZero() {
		return "", ErrUnauthenticated
	}
	if in.Age == nil {
		in.Age = s.age(ctx, userID)
	}

	req, err := prompts.JournalPrompt(in)
	if err != nil {
		return "", err
	}

	var out prompts.JournalPromptOutput
	if err := generate(ctx, s.gen, req, &out); err != nil {
		return "", err
	}
	return out.Prompt, nil
}

// SelfCareActivities returns suggestions for the given mood and stress level.
func (s *SuggestionService) SelfCareActivities(ctx context.Context, userID primitive.ObjectID, in prompts.SelfCareInput) ([]models.SelfCareActivity, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}
	if in.Age == nil {
		in.Age = s.age(ctx, userID)
	}

	req, err := prompts.SelfCareActivities(in)
	if err != nil {
		return nil, err
	}

	var out prompts.SelfCareOutput
	if err := generate(ctx, s.gen, req, &out); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"userID": userID.Hex(),
		"count":  len(out.Activities),
	}).Info("Self-care activities generated")
	return out.Activities, nil
}

// ActivitiesForLatestCheckIn suggests activities from the most recent check-in.
// Having no check-in is an empty result, not an error.
func (s *SuggestionService) ActivitiesForLatestCheckIn(ctx context.Context, userID primitive.ObjectID) (*LatestSuggestions, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}

	latest, err := s.moods.LatestCheckIn(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return &LatestSuggestions{Activities: []models.SelfCareActivity{}}, nil
	}
	if err != nil {
		return nil, err
	}

	activities, err := s.SelfCareActivities(ctx, userID, prompts.SelfCareInput{
		Mood:         latest.Mood,
		StressLevel:  latest.StressLevel,
		JournalEntry: latest.JournalEntry,
	})
	if err != nil {
		return nil, err
	}
	return &LatestSuggestions{CheckIn: latest, Activities: activities}, nil
}

// ActivityDetails returns a short guide to the chosen activity.
func (s *SuggestionService) ActivityDetails(ctx context.Context, userID primitive.ObjectID, in prompts.ActivityDetailsInput) (string, error) {
	if userID.IsZero() {
		return "", ErrUnauthenticated
	}
	if in.Age == nil {
		in.Age = s.age(ctx, userID)
	}

	req, err := prompts.ActivityDetails(in)
	if err != nil {
		return "", err
	}

	var out prompts.ActivityDetailsOutput
	if err := generate(ctx, s.gen, req, &out); err != nil {
		return "", err
	}
	return out.Details, nil
}

// age is best effort: a missing profile only means the prompt goes without an age.
func (s *SuggestionService) age(ctx context.Context, userID primitive.ObjectID) *int {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		logrus.WithField("userID", userID.Hex()).WithError(err).Warn("Could not load profile for age")
		return nil
	}
	return user.Age(s.now())
}
