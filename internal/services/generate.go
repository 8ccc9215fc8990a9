package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/Mindful_Companion/internal/genai"
	"github.com/sirupsen/logrus"
)

type validatable interface {
	Validate() error
}

// generate runs one request and checks the decoded reply. Every failure is
// reported as ErrGeneration wrapping the cause.
func generate(ctx context.Context, gen genai.Generator, req genai.Request, out validatable) error {
	if err := gen.GenerateJSON(ctx, req, out); err != nil {
		logrus.WithFields(logrus.Fields{
			"flow":  req.Flow,
			"error": err,
		}).Error("Generative request failed")
		return fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	if err := out.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"flow":  req.Flow,
			"error": err,
		}).Warn("Generative reply failed validation")
		return fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return nil
}
