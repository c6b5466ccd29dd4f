package service

import (
	"context"
	"errors"
	"fmt"

	"socialfeed/internal/model"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=users.go -destination=./user_storage_mock.go -package=service socialfeed/internal/service UserStorage
type UserStorage interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

// TokenIssuer mints a bearer token carrying the user id.
type TokenIssuer interface {
	IssueToken(userID int64) (string, error)
}

type UserService struct {
	userStorage UserStorage
	tokens      TokenIssuer
}

func NewUserService(userStorage UserStorage, tokens TokenIssuer) *UserService {
	return &UserService{
		userStorage: userStorage,
		tokens:      tokens,
	}
}

// Register creates a user and returns a signed token for it.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if err := validator.New().Struct(req); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.userStorage.CreateUser(ctx, model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Avatar:       req.Avatar,
	})
	if err != nil {
		return "", err
	}

	return s.tokens.IssueToken(user.ID)
}

func (s *UserService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := validator.New().Struct(req); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	user, err := s.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.IssueToken(user.ID)
}

// GetByID returns the user with the password hash stripped.
func (s *UserService) GetByID(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, ErrInvalidRequest
	}
	user, err := s.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
