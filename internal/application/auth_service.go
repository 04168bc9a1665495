package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	repo "github.com/oksasatya/climate-action-backend/internal/domain/repository"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Notifier *Notifier
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, notifier *Notifier, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Notifier: notifier, Logger: logger}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// Session is a signed-in user together with its bearer token.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Register creates the account and signs the new user in. A duplicate email is reported
// as ErrEmailTaken whether the pre-check or the unique index catches it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := entity.NormalizeEmail(in.Email)
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	sess, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	registrations.Add(1)
	s.Notifier.Welcome(ctx, u)
	return sess, nil
}

// Login reports ErrUserNotFound for an unknown email and ErrInvalidCredentials for a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	sess, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	logins.Add(1)
	return sess, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}
