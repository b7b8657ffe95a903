package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/repository"
)

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpsertAdmin(ctx context.Context, username, passwordHash string) error
	UpdateUserRole(ctx context.Context, username, role string) error
}

type AuthService struct {
	repo           UserStore
	tokens         *TokenIssuer
	allowPlaintext bool
	log            *zap.Logger
}

func NewAuthService(repo UserStore, tokens *TokenIssuer, allowPlaintext bool, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, allowPlaintext: allowPlaintext, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	ok, plaintext := VerifyPassword(user.PasswordHash, password, s.allowPlaintext)
	if !ok {
		return "", nil, ErrInvalidCredentials
	}
	if plaintext {
		s.log.Warn("login matched a plaintext password; rehash this account",
			zap.String("username", user.Username))
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SeedAdmin creates the admin login, or resets its password and role.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidInput
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpsertAdmin(ctx, username, hash); err != nil {
		return err
	}
	s.log.Info("admin account seeded", zap.String("username", username))
	return nil
}

func (s *AuthService) Tokens() *TokenIssuer { return s.tokens }
