package app

import (
	"context"
	"time"

	"devcollab/internal/identity/domain"
	"devcollab/internal/identity/repository"
	"devcollab/pkg/config"
	"devcollab/pkg/database"
	"devcollab/pkg/encrypt"
	errprocess "devcollab/pkg/err"
	"devcollab/pkg/logger"
	token "devcollab/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const searchLimit = 20

// IdentityUseCase application services around accounts and sessions
type IdentityUseCase interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, bearer string) error
	FindUsers(ctx context.Context, userIDs []string) ([]domain.UserSummary, error)
	SearchUsers(ctx context.Context, term string) ([]domain.UserSummary, error)
	CheckSessionTimeout(ctx context.Context, bearer string) (bool, error)
}

type identityUseCase struct {
	userRepo   repository.UserRepository
	sessionTTL time.Duration
	redisRepo  database.RedisRepository[domain.UserSession]
}

// NewIdentityUseCase create a new IdentityUseCase
func NewIdentityUseCase(userRepo repository.UserRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.UserSession],
) IdentityUseCase {
	return &identityUseCase{
		userRepo:   userRepo,
		sessionTTL: sessionTTL,
		redisRepo:  redisRepo,
	}
}

func (m *identityUseCase) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" {
		return errprocess.BadRequest("name and email are required")
	}

	if _, err := m.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &email}); err == nil {
		return errprocess.BadRequest("email already exists")
	}

	pw, err := encrypt.HashPassword(password)
	if err != nil {
		return errprocess.BadRequest(err.Error())
	}

	user := domain.User{
		UserID:   uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: pw,
	}

	if err := m.userRepo.CreateUser(ctx, &user); err != nil {
		return err
	}

	logger.Log.Info("user registered", zap.String("user_id", user.UserID), zap.String("email", email))
	return nil
}

func (m *identityUseCase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := m.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &email})
	if err != nil {
		return "", errprocess.Unauthorized("user not found")
	}

	if err = user.IsPasswordMatch(password); err != nil {
		return "", errprocess.Unauthorized("password does not match")
	}

	user.Status = domain.UserStatusOnline

	t, err := token.GenerateJWT(user.UserID, user.Name, config.EnvConfig.ServiceName)
	if err != nil {
		return "", err
	}

	now := time.Now()
	session := domain.UserSession{
		Token:        t,
		UserID:       user.UserID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(m.sessionTTL),
	}
	m.redisRepo.Set(ctx, user.UserID, session, m.sessionTTL)

	if err := m.userRepo.UpdateUserStatus(ctx, user); err != nil {
		return "", err
	}

	return t, nil
}

func (m *identityUseCase) Logout(ctx context.Context, bearer string) error {
	tokenInfo, err := token.ParseJWT(bearer)
	if err != nil {
		return errprocess.Unauthorized(err.Error())
	}

	m.redisRepo.Del(ctx, tokenInfo.UserID)

	return m.userRepo.UpdateUserStatus(ctx, &domain.User{
		UserID: tokenInfo.UserID,
		Status: domain.UserStatusOffline,
	})
}

// FindUsers batch-resolve user ids to their public summaries. Unknown ids are
// simply absent from the result.
func (m *identityUseCase) FindUsers(ctx context.Context, userIDs []string) ([]domain.UserSummary, error) {
	return m.userRepo.FindSummaries(ctx, userIDs)
}

func (m *identityUseCase) SearchUsers(ctx context.Context, term string) ([]domain.UserSummary, error) {
	if term == "" {
		return nil, errprocess.BadRequest("search term is required")
	}
	return m.userRepo.SearchUsers(ctx, term, searchLimit)
}

func (m *identityUseCase) CheckSessionTimeout(ctx context.Context, bearer string) (bool, error) {
	tokenInfo, err := token.ParseJWT(bearer)
	if err != nil {
		return true, err
	}

	ttl, err := m.redisRepo.GetTTL(ctx, tokenInfo.UserID)
	if err != nil {
		return true, err
	}

	return ttl <= 0, nil
}
