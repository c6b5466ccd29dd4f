package inmemory

import (
	"context"
	"sync"
	"time"

	"socialfeed/internal/model"
	"socialfeed/internal/service"
)

type UserStorage struct {
	mu      sync.RWMutex
	users   []model.User
	byEmail map[string]int64
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		users:   []model.User{{}},
		byEmail: make(map[string]int64),
	}
}

func (s *UserStorage) CreateUser(_ context.Context, in model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[in.Email]; ok {
		return model.User{}, service.ErrEmailTaken
	}

	in.ID = int64(len(s.users))
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	s.users = append(s.users, in)
	s.byEmail[in.Email] = in.ID
	return in, nil
}

func (s *UserStorage) GetUserByID(_ context.Context, userID int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if userID <= 0 || int(userID) >= len(s.users) {
		return model.User{}, service.ErrNotFound
	}
	u := s.users[userID]
	if u.ID == 0 {
		return model.User{}, service.ErrNotFound
	}
	return u, nil
}

func (s *UserStorage) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return model.User{}, service.ErrNotFound
	}
	return s.users[id], nil
}
