package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "recruit-auth-service/internal/domain/user"
	pkgerrors "recruit-auth-service/pkg/errors"
	"recruit-auth-service/pkg/security"
	"recruit-auth-service/pkg/token"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupTest(t *testing.T) (*Service, *MockRepository, *token.Manager) {
	repo := new(MockRepository)
	tokens := token.NewManager("test-secret", time.Hour)
	svc := New(repo, tokens, zaptest.NewLogger(t))
	return svc, repo, tokens
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "a@x.com" && u.Name == "A" &&
				u.PasswordHash != "" && u.PasswordHash != "secret1"
		})).Return(&domain.User{
			ID:        "id-1",
			Email:     "a@x.com",
			Name:      "A",
			CreatedAt: time.Now(),
		}, nil)

		resp, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "a@x.com",
			Password: "secret1",
			Name:     "A",
		})
		require.NoError(t, err)
		assert.Equal(t, "id-1", resp.ID)
		assert.Equal(t, "a@x.com", resp.Email)
		assert.False(t, resp.CreatedAt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("Hashes Password", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		var stored string
		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, nil)
		repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.User).PasswordHash
		}).Return(&domain.User{ID: "id-1", Email: "a@x.com"}, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@x.com", Password: "secret1"})
		require.NoError(t, err)
		assert.True(t, security.VerifyPassword(stored, "secret1"))
	})

	t.Run("Email Already In Use", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{ID: "id-1", Email: "a@x.com"}, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, pkgerrors.ErrEmailInUse)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Email", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		_, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "secret1"})

		var validationErr *pkgerrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Issues, 1)
		assert.Equal(t, "email", validationErr.Issues[0].Field)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Short Password", func(t *testing.T) {
		svc, _, _ := setupTest(t)

		_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@x.com", Password: "12345"})

		var validationErr *pkgerrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Issues, 1)
		assert.Equal(t, "password", validationErr.Issues[0].Field)
	})

	t.Run("Name Too Long", func(t *testing.T) {
		svc, _, _ := setupTest(t)

		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}

		_, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "a@x.com",
			Password: "secret1",
			Name:     string(long),
		})

		var validationErr *pkgerrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "name", validationErr.Issues[0].Field)
	})

	t.Run("Name Optional", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(&domain.User{ID: "id-1", Email: "a@x.com"}, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@x.com", Password: "secret1"})
		assert.NoError(t, err)
	})
}

func TestLogin(t *testing.T) {
	hash, err := security.HashPassword("secret1")
	if err != nil {
		t.Fatal(err)
	}
	existing := &domain.User{ID: "id-1", Email: "a@x.com", PasswordHash: hash, Name: "A"}

	t.Run("Success", func(t *testing.T) {
		svc, repo, tokens := setupTest(t)

		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(existing, nil)

		resp, err := svc.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "secret1"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
		assert.Equal(t, "id-1", resp.User.ID)
		assert.Equal(t, "a@x.com", resp.User.Email)

		claims, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "id-1", claims.UserID)
		assert.Equal(t, "a@x.com", claims.Email)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		repo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, nil)

		_, err := svc.Login(context.Background(), LoginRequest{Email: "b@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidCredentials)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(existing, nil)

		_, err := svc.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidCredentials)
	})

	t.Run("Failure Causes Indistinguishable", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(existing, nil)
		repo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, nil)

		_, unknownErr := svc.Login(context.Background(), LoginRequest{Email: "b@x.com", Password: "secret1"})
		_, wrongErr := svc.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "nope-nope"})

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("Missing Password", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		_, err := svc.Login(context.Background(), LoginRequest{Email: "a@x.com"})

		var validationErr *pkgerrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, repo, tokens := setupTest(t)

		signed, err := tokens.Issue("id-1", "a@x.com")
		require.NoError(t, err)

		repo.On("GetByID", mock.Anything, "id-1").Return(&domain.User{
			ID:    "id-1",
			Email: "a@x.com",
			Name:  "A",
			Bio:   "hiring manager",
		}, nil)

		resp, err := svc.Authenticate(context.Background(), signed)
		require.NoError(t, err)
		assert.Equal(t, "id-1", resp.ID)
		assert.Equal(t, "hiring manager", resp.Bio)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		_, err := svc.Authenticate(context.Background(), "garbage")
		assert.ErrorIs(t, err, pkgerrors.ErrUnauthorized)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Expired Token", func(t *testing.T) {
		svc, repo, _ := setupTest(t)

		expired := token.NewManager("test-secret", -time.Minute)
		signed, err := expired.Issue("id-1", "a@x.com")
		require.NoError(t, err)

		_, err = svc.Authenticate(context.Background(), signed)
		assert.ErrorIs(t, err, pkgerrors.ErrUnauthorized)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("User Deleted After Issuance", func(t *testing.T) {
		svc, repo, tokens := setupTest(t)

		signed, err := tokens.Issue("id-gone", "a@x.com")
		require.NoError(t, err)

		repo.On("GetByID", mock.Anything, "id-gone").Return(nil, pkgerrors.ErrUserNotFound)

		_, err = svc.Authenticate(context.Background(), signed)
		assert.ErrorIs(t, err, pkgerrors.ErrUserNotFound)
	})
}
