package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	// Shortly after midnight, once the daily cache has rolled over.
	affirmationSpec = "5 0 * * *"
	reminderSpec    = "0 18 * * *"
	jobTimeout      = 5 * time.Minute
)

// AffirmationRefresher prefetches the affirmation of the new day.
type AffirmationRefresher interface {
	Refresh(ctx context.Context) error
}

// ReminderScanner emails inactive users.
type ReminderScanner interface {
	RunDailyScan(ctx context.Context) (int, error)
}

// NewCronJobs registers the daily jobs in loc without starting them.
func NewCronJobs(loc *time.Location, affirmations AffirmationRefresher, reminders ReminderScanner) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(affirmationSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := affirmations.Refresh(ctx); err != nil {
			logrus.WithError(err).Error("Affirmation refresh failed")
		}
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(reminderSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := reminders.RunDailyScan(ctx); err != nil {
			logrus.WithError(err).Error("Check-in reminder scan failed")
		}
	}); err != nil {
		return nil, err
	}

	return c, nil
}

// StartCronJobs registers and starts the daily jobs. Stop the returned scheduler on shutdown.
func StartCronJobs(loc *time.Location, affirmations AffirmationRefresher, reminders ReminderScanner) (*cron.Cron, error) {
	c, err := NewCronJobs(loc, affirmations, reminders)
	if err != nil {
		return nil, err
	}
	c.Start()
	logrus.WithField("jobs", len(c.Entries())).Info("Cron jobs started")
	return c, nil
}
