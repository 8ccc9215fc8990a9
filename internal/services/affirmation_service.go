package services

import (
	"context"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/cache"
	"github.com/Dias221467/Mindful_Companion/internal/genai"
	"github.com/Dias221467/Mindful_Companion/internal/prompts"
	"github.com/sirupsen/logrus"
)

// DefaultAffirmation is shown when the generative service cannot be reached.
const DefaultAffirmation = "I am worthy of peace, and I give myself permission to take today one breath at a time."

// AffirmationService hands out one affirmation per calendar day.
type AffirmationService struct {
	gen   genai.Generator
	cache *cache.Daily[string]
}

// NewAffirmationService keys the cache by calendar day in loc.
func NewAffirmationService(gen genai.Generator, loc *time.Location, now func() time.Time) *AffirmationService {
	return &AffirmationService{
		gen:   gen,
		cache: cache.NewDaily[string](loc, now),
	}
}

// Affirmation is the payload served to clients.
type Affirmation struct {
	Text     string `json:"affirmation"`
	Day      string `json:"day"`
	Fallback bool   `json:"fallback"`
}

// Today returns today's affirmation. A failed fetch yields DefaultAffirmation,
// which is not cached so the next request tries again.
func (s *AffirmationService) Today(ctx context.Context) Affirmation {
	text, err := s.cache.GetOrLoad(ctx, s.fetch)
	if err != nil {
		logrus.WithError(err).Warn("Serving default affirmation")
		return Affirmation{Text: DefaultAffirmation, Day: s.cache.Today(), Fallback: true}
	}
	return Affirmation{Text: text, Day: s.cache.Today()}
}

// Refresh drops the cached value and fetches a new one.
func (s *AffirmationService) Refresh(ctx context.Context) error {
	s.cache.Invalidate()
	_, err := s.cache.GetOrLoad(ctx, s.fetch)
	return err
}

func (s *AffirmationService) fetch(ctx context.Context) (string, error) {
	var out prompts.AffirmationOutput
	if err := generate(ctx, s.gen, prompts.DailyAffirmation(), &out); err != nil {
		return "", err
	}
	logrus.WithField("day", s.cache.Today()).Info("Fetched daily affirmation")
	return out.Affirmation, nil
}
