package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/Dias221467/Mindful_Companion/internal/repository"
	"github.com/Dias221467/Mindful_Companion/pkg/email"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	resetTokenTTL     = time.Hour
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserServiceConfig holds the settings the account flows depend on.
type UserServiceConfig struct {
	// PublicBaseURL prefixes the links sent by email.
	PublicBaseURL            string
	RequireEmailVerification bool
}

// UserService encapsulates the business logic for accounts and profiles.
type UserService struct {
	repo   UserStore
	mailer email.Sender
	cfg    UserServiceConfig
	now    func() time.Time
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore, mailer email.Sender, cfg UserServiceConfig) *UserService {
	return &UserService{repo: repo, mailer: mailer, cfg: cfg, now: time.Now}
}

// Registration is the sign-up form.
type Registration struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	DOB       *time.Time `json:"dob,omitempty"`
}

func (r *Registration) Validate(now time.Time) error {
	errs := models.ValidationErrors{}
	if strings.TrimSpace(r.FirstName) == "" {
		errs["firstName"] = "first name is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs["lastName"] = "last name is required"
	}
	if !emailRegex.MatchString(r.Email) {
		errs["email"] = "invalid email format"
	}
	if len(r.Password) < minPasswordLength {
		errs["password"] = fmt.Sprintf("must be at least %d characters", minPasswordLength)
	}
	if r.DOB != nil && r.DOB.After(now) {
		errs["dob"] = "date of birth cannot be in the future"
	}
	return errs.OrNil()
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RegisterUser creates an account, assigns a default avatar and sends the verification link.
func (s *UserService) RegisterUser(ctx context.Context, reg Registration) (*models.User, error) {
	logrus.Info("Registering new user")

	now := s.now()
	reg.Email = normalizeEmail(reg.Email)
	if err := reg.Validate(now); err != nil {
		logrus.WithField("email", reg.Email).WithError(err).Warn("Invalid registration")
		return nil, err
	}

	if existing, err := s.repo.GetUserByEmail(ctx, reg.Email); err == nil && existing != nil {
		logrus.WithField("email", reg.Email).Warn("Email already in use")
		return nil, ErrEmailInUse
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:      strings.TrimSpace(reg.FirstName),
		LastName:       strings.TrimSpace(reg.LastName),
		Email:          reg.Email,
		PhotoURL:       models.AvatarFor(reg.Email),
		DOB:            reg.DOB,
		HashedPassword: string(hashedPwd),
		IsVerified:     !s.cfg.RequireEmailVerification,
		LastActiveAt:   now.UTC(),
	}
	if s.cfg.RequireEmailVerification {
		user.VerifyToken = uuid.NewString()
	}

	created, err := s.repo.CreateUser(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailInUse
	}
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if s.cfg.RequireEmailVerification {
		link := fmt.Sprintf("%s/users/verify?token=%s", s.cfg.PublicBaseURL, created.VerifyToken)
		body := fmt.Sprintf("Welcome to Mindful Companion, %s!\n\nPlease verify your email by clicking the link below:\n%s", created.FirstName, link)
		if err := s.mailer.Send(created.Email, "Verify your email", body); err != nil {
			logrus.WithError(err).WithField("userID", created.ID.Hex()).Error("Failed to send verification email")
		}
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// VerifyEmail marks the account behind token as verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.repo.GetUserByVerificationToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}

	if _, err := s.repo.UpdateUser(ctx, user.ID, bson.M{"isVerified": true, "verifyToken": ""}); err != nil {
		return fmt.Errorf("failed to update user verification status: %w", err)
	}

	logrus.WithField("userID", user.ID.Hex()).Info("Email verified")
	return nil
}

// RequestPasswordReset emails a reset link. Unknown addresses and failed sends
// succeed silently.
func (s *UserService) RequestPasswordReset(ctx context.Context, address string) error {
	address = normalizeEmail(address)
	user, err := s.repo.GetUserByEmail(ctx, address)
	if errors.Is(err, repository.ErrNotFound) {
		logrus.WithField("email", address).Warn("Password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	fields := bson.M{
		"resetToken":    token,
		"resetTokenExp": s.now().Add(resetTokenTTL).UTC(),
	}
	if _, err := s.repo.UpdateUser(ctx, user.ID, fields); err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	link := fmt.Sprintf("%s/users/reset-password?token=%s", s.cfg.PublicBaseURL, token)
	body := fmt.Sprintf("Use the link below to reset your password. It expires in one hour.\n\n%s", link)
	if err := s.mailer.Send(user.Email, "Reset your password", body); err != nil {
		// Same answer as an unknown address, so the response does not reveal the account.
		logrus.WithError(err).WithField("userID", user.ID.Hex()).Error("Failed to send password reset email")
		return nil
	}

	logrus.WithField("userID", user.ID.Hex()).Info("Password reset email sent")
	return nil
}

// ResetPassword replaces the password of the account behind a live reset token.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return models.ValidationErrors{"password": fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}

	user, err := s.repo.GetUserByResetToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if s.now().After(user.ResetTokenExp) {
		logrus.WithField("userID", user.ID.Hex()).Warn("Expired reset token used")
		return ErrInvalidToken
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fields := bson.M{
		"hashedPassword": string(hashedPwd),
		"resetToken":     "",
		"resetTokenExp":  time.Time{},
	}
	if _, err := s.repo.UpdateUser(ctx, user.ID, fields); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// AuthenticateUser verifies the email and password and returns the user if credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, address, password string) (*models.User, error) {
	address = normalizeEmail(address)
	logrus.WithField("email", address).Info("Authenticating user")

	user, err := s.repo.GetUserByEmail(ctx, address)
	if errors.Is(err, repository.ErrNotFound) {
		logrus.WithField("email", address).Warn("User not found")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", address).Warn("Invalid credentials")
		return nil, ErrInvalidCredentials
	}

	if s.cfg.RequireEmailVerification && !user.IsVerified {
		logrus.WithField("email", address).Warn("Attempt to login with unverified email")
		return nil, ErrEmailNotVerified
	}

	if err := s.UpdateLastActive(ctx, user.ID); err != nil {
		logrus.WithError(err).Warn("Failed to record login activity")
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if id.IsZero() {
		return nil, ErrUnauthenticated
	}
	return s.repo.GetUserByID(ctx, id)
}

// UpdateProfile applies the editable profile fields. Email cannot change.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (*models.User, error) {
	if id.IsZero() {
		return nil, ErrUnauthenticated
	}
	if err := update.Validate(s.now()); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if update.FirstName != nil {
		fields["firstName"] = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		fields["lastName"] = strings.TrimSpace(*update.LastName)
	}
	if update.PhotoURL != nil {
		fields["photoURL"] = *update.PhotoURL
	}
	if update.DOB != nil {
		fields["dob"] = update.DOB.UTC()
	}
	if len(fields) == 0 {
		return nil, models.ValidationErrors{"profile": "no fields to update"}
	}

	user, err := s.repo.UpdateUser(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	logrus.WithField("userID", id.Hex()).Info("Profile updated")
	return user, nil
}

// UpdateLastActive records activity for the inactivity reminder.
func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.TouchLastActive(ctx, id, s.now())
}
