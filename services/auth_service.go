package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gridironlabs/playoff-system/models"
	"github.com/gridironlabs/playoff-system/repositories"
	"github.com/gridironlabs/playoff-system/utils"
)

// AuthService authenticates dynasty owners. Registration happens out of
// band when a league save is imported, so only login lives here.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*models.Dynasty, error)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	dynastyRepo repositories.DynastyRepository
}

func NewAuthService(dynastyRepo repositories.DynastyRepository) AuthService {
	return &authService{dynastyRepo: dynastyRepo}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.Dynasty, error) {
	dynasty, err := s.dynastyRepo.GetByOwnerEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrDynastyNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find dynasty by owner email: %w", err)
	}

	if !utils.CheckPasswordHash(input.Password, dynasty.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return dynasty, nil
}
