package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type AdminUserRepoMock struct{ mock.Mock }

func (m *AdminUserRepoMock) FindByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.AdminUser)
	return u, args.Error(1)
}

func (m *AdminUserRepoMock) Create(ctx context.Context, u model.AdminUser) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AdminUserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type IssuerMock struct{ mock.Mock }

func (m *IssuerMock) Issue(userID int64, email string, role model.Role, now time.Time) (string, time.Time, error) {
	args := m.Called(userID, email, role, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func adminWithPassword(t *testing.T, password string) model.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return model.AdminUser{
		ID:           1,
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	users := &AdminUserRepoMock{}
	issuer := &IssuerMock{}
	uc := usecase.NewAuthUsecase(users, issuer)

	users.On("FindByEmail", mock.Anything, "admin@example.com").
		Return(adminWithPassword(t, "s3cret"), nil)
	issuer.On("Issue", int64(1), "admin@example.com", model.RoleAdmin, mock.Anything).
		Return("token123", time.Now().Add(15*time.Minute), nil)

	out, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    " Admin@Example.com ",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "token123", out.AccessToken)
	assert.Equal(t, "ADMIN", out.Role)
	assert.InDelta(t, 900, out.ExpiresIn, 2)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &AdminUserRepoMock{}
	issuer := &IssuerMock{}
	uc := usecase.NewAuthUsecase(users, issuer)

	users.On("FindByEmail", mock.Anything, "admin@example.com").
		Return(adminWithPassword(t, "s3cret"), nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    "admin@example.com",
		Password: "wrong",
	})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 401, he.Status)
	assert.Equal(t, "invalid credentials", he.Message)
}

func TestLogin_UnknownUserSameAnswer(t *testing.T) {
	users := &AdminUserRepoMock{}
	uc := usecase.NewAuthUsecase(users, &IssuerMock{})

	users.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(model.AdminUser{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 401, he.Status)
	assert.Equal(t, "invalid credentials", he.Message)
}

func TestLogin_InactiveUser(t *testing.T) {
	users := &AdminUserRepoMock{}
	uc := usecase.NewAuthUsecase(users, &IssuerMock{})

	user := adminWithPassword(t, "s3cret")
	user.IsActive = false
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    "admin@example.com",
		Password: "s3cret",
	})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 401, he.Status)
}
