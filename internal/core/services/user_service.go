package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/dto"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	name, err := domain.NewName(req.Name.Given, req.Name.Family)
	if err != nil {
		return nil, err
	}
	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date of birth must use the YYYY-MM-DD layout", apperrors.ErrValidation)
	}
	user, err := domain.NewUser(name, dob, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to create user")
		return nil, err
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, err
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name == nil {
		return user, nil
	}
	name, err := domain.NewName(req.Name.Given, req.Name.Family)
	if err != nil {
		return nil, err
	}
	user.Rename(name)
	if err := s.userRepo.UpdateUserName(ctx, userID, user.Name, user.LastUpdatedAt); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

func (s *userService) AddEmail(ctx context.Context, userID string, req dto.AddEmailRequest) (*domain.User, error) {
	emailType, err := domain.ParseEmailType(req.Type)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(req.Address, emailType)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	added, err := user.AddEmail(email)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.AddEmail(ctx, added); err != nil {
		s.LogError(ctx, err, "Failed to add email", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) RemoveEmail(ctx context.Context, userID, emailID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.RemoveEmail(emailID); err != nil {
		return nil, err
	}
	if err := s.userRepo.RemoveEmail(ctx, userID, emailID); err != nil {
		s.LogError(ctx, err, "Failed to remove email", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) AddAddress(ctx context.Context, userID string, req dto.AddAddressRequest) (*domain.User, error) {
	address, err := domain.NewAddress(req.Street, req.City, req.PostalCode, req.Country, req.Region)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	added := user.AddAddress(address)
	if err := s.userRepo.AddAddress(ctx, added); err != nil {
		s.LogError(ctx, err, "Failed to add address", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) RemoveAddress(ctx context.Context, userID, addressID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.RemoveAddress(addressID); err != nil {
		return nil, err
	}
	if err := s.userRepo.RemoveAddress(ctx, userID, addressID); err != nil {
		s.LogError(ctx, err, "Failed to remove address", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}
