package user

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/campaignforge/pkg/domain"
)

const testSecret = "test-secret-key-minimum-32-characters-long"

type fakeRepo struct {
	byID    map[uuid.UUID]*User
	byEmail map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uuid.UUID]*User{}, byEmail: map[string]*User{}}
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return domain.NewConflictError("email already registered")
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	return u, nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	return u, nil
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	r.byID[u.ID] = u
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newFakeRepo(), testSecret, 24, nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Jamie@Example.com", "Jamie", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "jamie@example.com", registered.User.Email)

	loggedIn, err := svc.Login(ctx, "jamie@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), testSecret, 24, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jamie@example.com", "Jamie", "supersecret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "jamie@example.com", "Other", "supersecret")
	require.Error(t, err)
	de, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeConflict, de.Code)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := NewService(newFakeRepo(), testSecret, 24, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "Jamie", "supersecret")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Register(ctx, "jamie@example.com", "", "supersecret")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Register(ctx, "jamie@example.com", "Jamie", "short")
	assert.True(t, domain.IsValidation(err))
}

func TestLogin_WrongCredentialsIndistinguishable(t *testing.T) {
	svc := NewService(newFakeRepo(), testSecret, 24, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jamie@example.com", "Jamie", "supersecret")
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(ctx, "jamie@example.com", "wrongpassword")
	_, errUnknownEmail := svc.Login(ctx, "nobody@example.com", "supersecret")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownEmail)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestSetBrandVoice(t *testing.T) {
	svc := NewService(newFakeRepo(), testSecret, 24, nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "jamie@example.com", "Jamie", "supersecret")
	require.NoError(t, err)

	updated, err := svc.SetBrandVoice(ctx, registered.User.ID, "  friendly and upbeat  ")
	require.NoError(t, err)
	assert.Equal(t, "friendly and upbeat", updated.BrandVoice)
}
