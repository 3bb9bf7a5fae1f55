package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/metrics"
	"github.com/Skotchmaster/storefront/pkg/tokens"
	"gorm.io/gorm"
)

type AuthService struct {
	Repo    *repo.GormRepo
	Tokens  *tokens.Issuer
	Events  events.Publisher
	Metrics *metrics.Metrics

	SignupBalance float64
}

type AuthResult struct {
	User  *models.User
	Token string
}

func (s *AuthService) SignUp(ctx context.Context, cmd transport.SignUpCommand) (res *AuthResult, err error) {
	defer func() { s.Metrics.AuthAttempt("sign_up", err) }()

	pw, err := hash.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: pw,
		Balance:  s.SignupBalance,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fail(ErrConflict, MsgEmailExists)
		}
		return nil, err
	}
	user.Cart = []models.CartItem{}
	user.BoughtProducts = []models.BoughtProduct{}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	publish(ctx, s.Events, events.TopicUser, userKey(user.ID), events.New("user_registered", map[string]any{
		"userId": user.ID,
		"email":  user.Email,
	}))

	return &AuthResult{User: &user, Token: token}, nil
}

func (s *AuthService) SignIn(ctx context.Context, cmd transport.SignInCommand) (res *AuthResult, err error) {
	defer func() { s.Metrics.AuthAttempt("sign_in", err) }()

	user, err := s.Repo.UserByCredentials(ctx, cmd.Email, cmd.Password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			return nil, fail(ErrInvalidCredentials, MsgInvalidCredentials)
		}
		return nil, err
	}

	full, err := s.Repo.UserWithRelations(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.Tokens.Issue(full.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	publish(ctx, s.Events, events.TopicUser, userKey(full.ID), events.New("user_signed_in", map[string]any{
		"userId": full.ID,
	}))

	return &AuthResult{User: full, Token: token}, nil
}

// ResolveUser maps a bearer token to its user with cart and purchases loaded.
// Bad tokens and deleted users both yield ErrUnauthorized.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	id, err := s.Tokens.Verify(token)
	if err != nil {
		logging.FromContext(ctx).Debug("token_rejected", "error", err)
		return nil, fail(ErrUnauthorized, MsgInvalidToken)
	}

	user, err := s.Repo.UserWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrUnauthorized, MsgInvalidToken)
		}
		return nil, err
	}
	return user, nil
}

// Validate re-issues a token for an already resolved user.
func (s *AuthService) Validate(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func userKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
