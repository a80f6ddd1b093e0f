package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-tracker/internal/auth"
	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	users  repo.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(users repo.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register создает учетную запись и сразу выдает токен
func (s *AuthService) Register(ctx context.Context, email, password string) (model.User, string, error) {
	email = normalizeEmail(email)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, "", err
	}

	user, err := s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, repo.ErrorConflict) {
		return model.User{}, "", ErrEmailTaken
	}
	if err != nil {
		return model.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

// Login проверяет учетные данные и выдает токен.
// Неизвестный email и неверный пароль дают один и тот же результат -
// ответ не раскрывает, какая из двух проверок не прошла.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.User, string, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return model.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

// Email приводится к нижнему регистру, чтобы a@b и A@B не давали два аккаунта
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
