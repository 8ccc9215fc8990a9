package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the profile and credential record of an account.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"uid"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	Email          string             `bson:"email" json:"email"`
	PhotoURL       string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	DOB            *time.Time         `bson:"dob,omitempty" json:"dob,omitempty"`
	HashedPassword string             `bson:"hashedPassword" json:"-"`
	IsVerified     bool               `bson:"isVerified" json:"emailVerified"`
	VerifyToken    string             `bson:"verifyToken,omitempty" json:"-"`
	ResetToken     string             `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExp  time.Time          `bson:"resetTokenExp,omitempty" json:"-"`
	LastActiveAt   time.Time          `bson:"lastActiveAt,omitempty" json:"-"`
	LastReminderAt time.Time          `bson:"lastReminderAt,omitempty" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DisplayName joins first and last name.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Age returns the age in whole years at now, or nil when no date of birth is on file.
func (u *User) Age(now time.Time) *int {
	if u.DOB == nil || u.DOB.IsZero() {
		return nil
	}
	// dob is a calendar date kept at UTC midnight, read it without zone conversion.
	year, month, day := u.DOB.UTC().Date()
	age := now.Year() - year
	if now.Month() < month || (now.Month() == month && now.Day() < day) {
		age--
	}
	if age < 0 {
		return nil
	}
	return &age
}

// Profile is the public view of a user returned by the API.
type Profile struct {
	UID           string     `json:"uid"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	DisplayName   string     `json:"displayName"`
	Email         string     `json:"email"`
	PhotoURL      string     `json:"photoURL,omitempty"`
	DOB           *time.Time `json:"dob,omitempty"`
	EmailVerified bool       `json:"emailVerified"`
}

func (u *User) Profile() Profile {
	return Profile{
		UID:           u.ID.Hex(),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		DisplayName:   u.DisplayName(),
		Email:         u.Email,
		PhotoURL:      u.PhotoURL,
		DOB:           u.DOB,
		EmailVerified: u.IsVerified,
	}
}

// ProfileUpdate holds the fields a user may change about themselves. Email is not among them.
type ProfileUpdate struct {
	FirstName *string    `json:"firstName,omitempty"`
	LastName  *string    `json:"lastName,omitempty"`
	PhotoURL  *string    `json:"photoURL,omitempty"`
	DOB       *time.Time `json:"dob,omitempty"`
}

func (p *ProfileUpdate) Validate(now time.Time) error {
	errs := ValidationErrors{}
	if p.FirstName != nil && isBlank(*p.FirstName) {
		errs["firstName"] = "first name cannot be empty"
	}
	if p.LastName != nil && isBlank(*p.LastName) {
		errs["lastName"] = "last name cannot be empty"
	}
	if p.DOB != nil && p.DOB.After(now) {
		errs["dob"] = "date of birth cannot be in the future"
	}
	return errs.OrNil()
}
