package services

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"playbook/ledger-service/config"
	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/events"
	"playbook/ledger-service/domain/interfaces"
)

type userService struct {
	userRepo       interfaces.UserRepository
	eventPublisher interfaces.EventPublisher
}

// NewUserService creates a new user service
func NewUserService(userRepo interfaces.UserRepository, eventPublisher interfaces.EventPublisher) interfaces.UserService {
	return &userService{
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *userService) GetOrCreateUser(ctx context.Context, username string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	if user != nil {
		return user, nil
	}

	initialBalance := config.Get().InitialBalance
	user, err = s.userRepo.Create(ctx, username, initialBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	if err := s.eventPublisher.Publish(events.UserCreatedEvent{
		UserID:         user.ID,
		Username:       user.Username,
		InitialBalance: initialBalance,
	}); err != nil {
		log.WithError(err).Error("Failed to publish user created event")
	}

	log.WithFields(log.Fields{
		"userID":   user.ID,
		"username": user.Username,
	}).Info("Created new user")

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
