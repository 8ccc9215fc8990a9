package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mood is one of the fixed check-in labels.
type Mood string

const (
	MoodHappy   Mood = "Happy"
	MoodCalm    Mood = "Calm"
	MoodOkay    Mood = "Okay"
	MoodSad     Mood = "Sad"
	MoodAnxious Mood = "Anxious"
	MoodAngry   Mood = "Angry"
)

const (
	MinStressLevel = 1
	MaxStressLevel = 10
)

// Moods lists the labels in the order the check-in form shows them.
var Moods = []Mood{MoodHappy, MoodCalm, MoodOkay, MoodSad, MoodAnxious, MoodAngry}

var moodValues = map[Mood]int{
	MoodAngry:   1,
	MoodSad:     2,
	MoodAnxious: 3,
	MoodOkay:    4,
	MoodCalm:    5,
	MoodHappy:   6,
}

// Valid reports whether m belongs to the closed label set.
func (m Mood) Valid() bool {
	_, ok := moodValues[m]
	return ok
}

// Value maps the label onto the 1 (Angry) .. 6 (Happy) chart scale; unknown labels map to 0.
func (m Mood) Value() int {
	return moodValues[m]
}

// MoodFromValue is the inverse of Mood.Value.
func MoodFromValue(v int) (Mood, bool) {
	for mood, value := range moodValues {
		if value == v {
			return mood, true
		}
	}
	return "", false
}

// MoodCheckIn is a single timestamped mood + stress record.
type MoodCheckIn struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Mood         Mood               `bson:"mood" json:"mood"`
	StressLevel  int                `bson:"stressLevel" json:"stressLevel"`
	JournalEntry string             `bson:"journalEntry,omitempty" json:"journalEntry,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Validate checks the mood label and the stress range.
func (c *MoodCheckIn) Validate() error {
	errs := ValidationErrors{}
	validateMood(errs, c.Mood)
	validateStress(errs, c.StressLevel)
	return errs.OrNil()
}

// CheckInUpdate carries the editable fields of a check-in. Nil fields are left untouched.
type CheckInUpdate struct {
	Mood         *Mood   `json:"mood,omitempty"`
	StressLevel  *int    `json:"stressLevel,omitempty"`
	JournalEntry *string `json:"journalEntry,omitempty"`
}

func (u *CheckInUpdate) Validate() error {
	errs := ValidationErrors{}
	if u.Mood == nil && u.StressLevel == nil && u.JournalEntry == nil {
		errs["body"] = "at least one of mood, stressLevel or journalEntry is required"
	}
	if u.Mood != nil {
		validateMood(errs, *u.Mood)
	}
	if u.StressLevel != nil {
		validateStress(errs, *u.StressLevel)
	}
	return errs.OrNil()
}

func validateMood(errs ValidationErrors, m Mood) {
	if m == "" {
		errs["mood"] = "mood is required"
		return
	}
	if !m.Valid() {
		errs["mood"] = fmt.Sprintf("unknown mood %q", string(m))
	}
}

func validateStress(errs ValidationErrors, level int) {
	if level < MinStressLevel || level > MaxStressLevel {
		errs["stressLevel"] = fmt.Sprintf("stress level must be between %d and %d", MinStressLevel, MaxStressLevel)
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
