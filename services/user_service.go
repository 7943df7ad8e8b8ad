// services/user_service.go - Accounts, signup and login
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"clubhouse/auth"
	"clubhouse/models"
	"clubhouse/repository"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

type UserStore interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	TouchLogin(ctx context.Context, id uint, at time.Time) error
}

// TokenIssuer signs session tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(email string, role models.Role) (string, error)
}

type SignupInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Coach Player User"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
}

type UserService struct {
	users  UserStore
	tokens TokenIssuer
	clock  clockwork.Clock
}

func NewUserService(users UserStore, tokens TokenIssuer, clock clockwork.Clock) *UserService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &UserService{users: users, tokens: tokens, clock: clock}
}

func (s *UserService) GetAll(ctx context.Context, id auth.Identity) ([]models.User, error) {
	if err := Authorize(id, ViewUsers); err != nil {
		return nil, err
	}
	return s.users.FindAll(ctx)
}

// Signup registers a new account. Admin accounts are only created by the
// seed tool, never through this path.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate(in); err != nil {
		return nil, err
	}

	role := models.RoleUser
	if in.Role != "" {
		role = models.Role(in.Role)
	}
	if role == models.RoleAdmin {
		return nil, newError(ErrForbidden, "admin accounts cannot be created through signup")
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, newError(ErrConflict, "user with email %s already exists", in.Email)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: in.Email, Password: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError(err, "user with email %s already exists", in.Email)
	}

	log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user signed up")
	return user, nil
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrUnauthenticated, "user not found")
	}
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(user.Password, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, newError(ErrUnauthenticated, "incorrect password")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchLogin(ctx, user.ID, s.clock.Now().UTC()); err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record login time")
	}

	return &LoginResult{
		Message: "User authenticated",
		Token:   token,
		Email:   user.Email,
		Role:    user.Role,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
