package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/Dias221467/Mindful_Companion/pkg/email"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InactivityWindow is how long a user may go without activity before a reminder.
// A user is reminded at most once per window.
const InactivityWindow = 3 * 24 * time.Hour

// ReminderStore is the slice of the user repository the reminder needs.
type ReminderStore interface {
	GetInactiveUsers(ctx context.Context, since, remindedBefore time.Time) ([]models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
}

// CheckInReminder emails users who have not opened the app for a while.
type CheckInReminder struct {
	Users  ReminderStore
	Mailer email.Sender
	now    func() time.Time
}

// NewCheckInReminder creates a new instance of CheckInReminder.
func NewCheckInReminder(users ReminderStore, mailer email.Sender) *CheckInReminder {
	return &CheckInReminder{Users: users, Mailer: mailer, now: time.Now}
}

// RunDailyScan sends one reminder to every inactive user and returns how many were sent.
// A failed send is logged and the scan moves on to the next user.
func (c *CheckInReminder) RunDailyScan(ctx context.Context) (int, error) {
	now := c.now()
	cutoff := now.Add(-InactivityWindow)

	users, err := c.Users.GetInactiveUsers(ctx, cutoff, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch inactive users: %w", err)
	}

	sent := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		body := fmt.Sprintf("Hi %s,\n\nIt has been a few days since your last check-in. "+
			"Take a minute today to note how you feel, it can make a difference.\n\nMindful Companion", firstNameOr(user.FirstName))
		if err := c.Mailer.Send(user.Email, "How are you feeling today?", body); err != nil {
			logrus.WithError(err).WithField("userID", user.ID.Hex()).Error("Failed to send check-in reminder")
			continue
		}

		if _, err := c.Users.UpdateUser(ctx, user.ID, bson.M{"lastReminderAt": now.UTC()}); err != nil {
			logrus.WithError(err).WithField("userID", user.ID.Hex()).Error("Failed to record reminder")
			continue
		}
		sent++
	}

	logrus.WithField("sent", sent).Info("Check-in reminder scan completed")
	return sent, nil
}

func firstNameOr(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
