package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"devcollab/internal/identity/domain"
	"devcollab/pkg/encrypt"
	errprocess "devcollab/pkg/err"
	"devcollab/pkg/logger"
	token "devcollab/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const strongPassword = "!!Securepassword111"

func TestIdentityUseCase_Register(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("register success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRedis := new(MockRedisRepo)
		mockRepo.On("FindByUser", ctx, mock.Anything).Return(nil, errors.New("not found"))
		mockRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == "alice" && u.Email == "alice@example.com" && u.UserID != ""
		})).Return(nil)

		uc := NewIdentityUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Register(ctx, "alice", "alice@example.com", strongPassword)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByUser", ctx, mock.Anything).
			Return(&domain.User{Email: "alice@example.com"}, nil)

		uc := NewIdentityUseCase(mockRepo, time.Hour, new(MockRedisRepo))
		err := uc.Register(ctx, "alice", "alice@example.com", strongPassword)

		assert.True(t, errors.Is(err, errprocess.ErrBadRequest))
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByUser", ctx, mock.Anything).Return(nil, errors.New("not found"))

		uc := NewIdentityUseCase(mockRepo, time.Hour, new(MockRedisRepo))
		err := uc.Register(ctx, "alice", "alice@example.com", "weak")

		assert.True(t, errors.Is(err, errprocess.ErrBadRequest))
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		uc := NewIdentityUseCase(new(MockUserRepo), time.Hour, new(MockRedisRepo))
		err := uc.Register(ctx, "", "alice@example.com", strongPassword)
		assert.True(t, errors.Is(err, errprocess.ErrBadRequest))
	})
}

func TestIdentityUseCase_Login(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	hashed, err := encrypt.HashPassword(strongPassword)
	assert.NoError(t, err)
	user := &domain.User{UserID: "u1", Name: "alice", Email: "alice@example.com", Password: hashed}

	t.Run("login success creates a session", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRedis := new(MockRedisRepo)
		mockRepo.On("FindByUser", ctx, mock.Anything).Return(user, nil)
		mockRedis.On("Set", ctx, "u1", mock.Anything, time.Hour).Return(nil)
		mockRepo.On("UpdateUserStatus", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Status == domain.UserStatusOnline
		})).Return(nil)

		uc := NewIdentityUseCase(mockRepo, time.Hour, mockRedis)
		bearer, err := uc.Login(ctx, "alice@example.com", strongPassword)

		assert.NoError(t, err)
		claims, err := token.ParseJWT(bearer)
		assert.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "alice", claims.Name)
		mockRedis.AssertExpectations(t)
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByUser", ctx, mock.Anything).Return(nil, errors.New("no rows"))

		uc := NewIdentityUseCase(mockRepo, time.Hour, new(MockRedisRepo))
		_, err := uc.Login(ctx, "ghost@example.com", strongPassword)
		assert.True(t, errors.Is(err, errprocess.ErrUnauthorized))
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByUser", ctx, mock.Anything).Return(user, nil)

		uc := NewIdentityUseCase(mockRepo, time.Hour, new(MockRedisRepo))
		_, err := uc.Login(ctx, "alice@example.com", "!!Wrongpassword111")
		assert.True(t, errors.Is(err, errprocess.ErrUnauthorized))
	})
}

func TestIdentityUseCase_Logout(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	bearer, err := token.GenerateJWT("u1", "alice", "devcollab")
	assert.NoError(t, err)

	mockRepo := new(MockUserRepo)
	mockRedis := new(MockRedisRepo)
	mockRedis.On("Del", ctx, "u1").Return(nil)
	mockRepo.On("UpdateUserStatus", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.UserID == "u1" && u.Status == domain.UserStatusOffline
	})).Return(nil)

	uc := NewIdentityUseCase(mockRepo, time.Hour, mockRedis)
	assert.NoError(t, uc.Logout(ctx, bearer))
	mockRedis.AssertExpectations(t)

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		uc := NewIdentityUseCase(new(MockUserRepo), time.Hour, new(MockRedisRepo))
		err := uc.Logout(ctx, "not-a-jwt")
		assert.True(t, errors.Is(err, errprocess.ErrUnauthorized))
	})
}

func TestIdentityUseCase_CheckSessionTimeout(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	bearer, err := token.GenerateJWT("u1", "alice", "devcollab")
	assert.NoError(t, err)

	t.Run("live session is not expired", func(t *testing.T) {
		mockRedis := new(MockRedisRepo)
		mockRedis.On("GetTTL", ctx, "u1").Return(600, nil)

		uc := NewIdentityUseCase(new(MockUserRepo), time.Hour, mockRedis)
		expired, err := uc.CheckSessionTimeout(ctx, bearer)

		assert.NoError(t, err)
		assert.False(t, expired)
	})

	t.Run("deleted session reads as expired", func(t *testing.T) {
		mockRedis := new(MockRedisRepo)
		mockRedis.On("GetTTL", ctx, "u1").Return(0, nil)

		uc := NewIdentityUseCase(new(MockUserRepo), time.Hour, mockRedis)
		expired, err := uc.CheckSessionTimeout(ctx, bearer)

		assert.NoError(t, err)
		assert.True(t, expired)
	})

	t.Run("garbage token is expired", func(t *testing.T) {
		uc := NewIdentityUseCase(new(MockUserRepo), time.Hour, new(MockRedisRepo))
		expired, _ := uc.CheckSessionTimeout(ctx, "not-a-jwt")
		assert.True(t, expired)
	})
}

func TestIdentityUseCase_SearchUsers(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("empty term is rejected", func(t *testing.T) {
		uc := NewIdentityUseCase(new(MockUserRepo), time.Hour, new(MockRedisRepo))
		_, err := uc.SearchUsers(ctx, "")
		assert.True(t, errors.Is(err, errprocess.ErrBadRequest))
	})

	t.Run("delegates with the search limit", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("SearchUsers", ctx, "ali", searchLimit).
			Return([]domain.UserSummary{{ID: "u1", Name: "alice"}}, nil)

		uc := NewIdentityUseCase(mockRepo, time.Hour, new(MockRedisRepo))
		users, err := uc.SearchUsers(ctx, "ali")

		assert.NoError(t, err)
		assert.Len(t, users, 1)
	})
}
