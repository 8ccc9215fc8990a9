package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalEntry is a standalone free text entry, optionally inspired by a generated prompt.
type JournalEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Entry     string             `bson:"entry" json:"entry"`
	Mood      *Mood              `bson:"mood,omitempty" json:"mood,omitempty"`
	Prompt    *string            `bson:"prompt" json:"prompt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func (j *JournalEntry) Validate() error {
	errs := ValidationErrors{}
	if isBlank(j.Entry) {
		errs["entry"] = "entry cannot be empty"
	}
	if j.Mood != nil {
		validateMood(errs, *j.Mood)
	}
	return errs.OrNil()
}

// JournalUpdate edits an entry in place. Only the text is editable.
type JournalUpdate struct {
	Entry *string `json:"entry"`
}

func (u *JournalUpdate) Validate() error {
	errs := ValidationErrors{}
	if u.Entry == nil || isBlank(*u.Entry) {
		errs["entry"] = "entry cannot be empty"
	}
	return errs.OrNil()
}
