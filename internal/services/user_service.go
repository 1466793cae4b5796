package services

import (
	"context"
	"users-api/internal/models"
	"users-api/internal/wsnotify"
)

// Notifier receives a user after it has been created, updated or deleted.
type Notifier interface {
	NotifyUser(eventType string, user *models.User)
}

type UserService struct {
	repo     models.UserRepository
	notifier Notifier
}

// NewUserService builds the service once at startup. A nil notifier
// disables change events.
func NewUserService(repo models.UserRepository, notifier Notifier) *UserService {
	return &UserService{repo: repo, notifier: notifier}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.Find(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	user, err := s.repo.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	s.notify(wsnotify.EventUserCreated, user)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.Remove(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	s.notify(wsnotify.EventUserDeleted, user)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in models.UserInput) (*models.User, error) {
	user, err := s.repo.Update(ctx, id, in)
	if err != nil || user == nil {
		return user, err
	}
	s.notify(wsnotify.EventUserUpdated, user)
	return user, nil
}

func (s *UserService) notify(eventType string, user *models.User) {
	if s.notifier != nil {
		s.notifier.NotifyUser(eventType, user)
	}
}
