package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUserFixture(requireVerification bool) (*UserService, *fakeUserStore, *fakeMailer) {
	store := newFakeUserStore()
	mailer := &fakeMailer{}
	svc := NewUserService(store, mailer, UserServiceConfig{
		PublicBaseURL:            "https://mindful.example",
		RequireEmailVerification: requireVerification,
	})
	return svc, store, mailer
}

func tokenFromLink(t *testing.T, body string) string {
	t.Helper()
	_, token, ok := strings.Cut(body, "token=")
	require.True(t, ok, body)
	return strings.TrimSpace(token)
}

func TestRegisterVerifyLogin(t *testing.T) {
	svc, _, mailer := newUserFixture(true)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, Registration{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "  Ada@Example.com ",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.False(t, user.IsVerified)
	assert.True(t, strings.HasPrefix(user.PhotoURL, "data:image/svg+xml;base64,"))
	assert.NotEqual(t, "secret123", user.HashedPassword)

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Body, "https://mindful.example/users/verify?token=")

	_, err = svc.AuthenticateUser(ctx, "ada@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	assert.ErrorIs(t, svc.VerifyEmail(ctx, "bogus"), ErrInvalidToken)
	require.NoError(t, svc.VerifyEmail(ctx, tokenFromLink(t, mailer.sent[0].Body)))

	_, err = svc.AuthenticateUser(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateUser(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := svc.AuthenticateUser(ctx, "ADA@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.IsVerified)
}

func TestRegisterRejects(t *testing.T) {
	svc, _, _ := newUserFixture(false)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, Registration{Email: "not-an-email", Password: "123"})
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "firstName")
	assert.Contains(t, verrs, "lastName")
	assert.Contains(t, verrs, "email")
	assert.Contains(t, verrs, "password")

	reg := Registration{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "secret123"}
	_, err = svc.RegisterUser(ctx, reg)
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, reg)
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegisterWithoutVerificationCanLogIn(t *testing.T) {
	svc, store, mailer := newUserFixture(false)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, Registration{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Empty(t, mailer.sent)

	_, err = svc.AuthenticateUser(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Contains(t, store.touched, user.ID)
}

func TestPasswordReset(t *testing.T) {
	svc, _, mailer := newUserFixture(false)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, Registration{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "unknown@example.com"))
	assert.Empty(t, mailer.sent)

	require.NoError(t, svc.RequestPasswordReset(ctx, "ada@example.com"))
	require.Len(t, mailer.sent, 1)
	token := tokenFromLink(t, mailer.sent[0].Body)

	assert.Error(t, svc.ResetPassword(ctx, token, "123"))
	assert.ErrorIs(t, svc.ResetPassword(ctx, "bogus", "newsecret"), ErrInvalidToken)
	require.NoError(t, svc.ResetPassword(ctx, token, "newsecret"))

	_, err = svc.AuthenticateUser(ctx, "ada@example.com", "newsecret")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "another1"), ErrInvalidToken)
}

func TestPasswordResetExpires(t *testing.T) {
	svc, _, mailer := newUserFixture(false)
	ctx := context.Background()
	start := time.Now()
	svc.now = func() time.Time { return start }

	_, err := svc.RegisterUser(ctx, Registration{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "ada@example.com"))

	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	assert.ErrorIs(t, svc.ResetPassword(ctx, tokenFromLink(t, mailer.sent[0].Body), "newsecret"), ErrInvalidToken)
}

func TestPasswordResetMailFailureLooksLikeSuccess(t *testing.T) {
	svc, _, mailer := newUserFixture(false)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, Registration{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	mailer.err = errors.New("smtp down")
	assert.NoError(t, svc.RequestPasswordReset(ctx, "ada@example.com"))
	assert.Len(t, mailer.sent, 1)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newUserFixture(false)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, Registration{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	first := " Augusta "
	dob := time.Date(1990, time.December, 10, 0, 0, 0, 0, time.UTC)
	photo := models.DefaultAvatarURIs()[2]
	updated, err := svc.UpdateProfile(ctx, user.ID, models.ProfileUpdate{FirstName: &first, DOB: &dob, PhotoURL: &photo})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, photo, updated.PhotoURL)
	require.NotNil(t, updated.DOB)
	assert.True(t, dob.Equal(*updated.DOB))

	_, err = svc.UpdateProfile(ctx, user.ID, models.ProfileUpdate{})
	assert.Error(t, err)

	_, err = svc.UpdateProfile(ctx, primitive.NilObjectID, models.ProfileUpdate{FirstName: &first})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
