package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
	"pkfit.com.br/pkfitsystem/internal/modules/auth/dto"
	"pkfit.com.br/pkfitsystem/internal/modules/user/repository"
	"pkfit.com.br/pkfitsystem/pkg/apperror"
	"pkfit.com.br/pkfitsystem/pkg/password"
	"pkfit.com.br/pkfitsystem/pkg/token"
)

// AuthService drives the progressive login flow: the client first submits an
// email, then either logs in or creates a password depending on whether the
// pre-provisioned account already has one.
type AuthService interface {
	CheckEmail(ctx context.Context, email string) (*dto.CheckEmailResult, error)
	CreatePassword(ctx context.Context, email, rawPassword string) (*dto.AuthResponse, error)
	Login(ctx context.Context, email, rawPassword string) (*dto.AuthResponse, error)
}

type authService struct {
	repo   repository.UserRepository
	tokens *token.Service
}

func NewAuthService(repo repository.UserRepository, tokens *token.Service) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) CheckEmail(ctx context.Context, email string) (*dto.CheckEmailResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.CheckEmailResult{Exists: false}, nil
		}
		return nil, err
	}

	return &dto.CheckEmailResult{
		Exists:      true,
		HasPassword: user.HasPassword(),
		User:        user,
	}, nil
}

func (s *authService) CreatePassword(ctx context.Context, email, rawPassword string) (*dto.AuthResponse, error) {
	if violations := password.ValidatePolicy(rawPassword); len(violations) > 0 {
		return nil, apperror.BadRequest(strings.Join(violations, ". "))
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	// This endpoint provisions the first password only. Rotation goes
	// through the global admin user update.
	if user.HasPassword() {
		return nil, apperror.Conflict("this user already has a password set")
	}

	hash, err := password.Hash(rawPassword)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetPassword(ctx, user.ID, hash); err != nil {
		return nil, err
	}

	user.PasswordHash = &hash
	user.FirstAccess = false

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, email, rawPassword string) (*dto.AuthResponse, error) {
	// Unknown user, no password set, and wrong password all fail with the
	// same message so the endpoint cannot be used to enumerate accounts.
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if !user.HasPassword() || !password.Verify(rawPassword, *user.PasswordHash) {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	signed, expiresAt, err := s.tokens.Issue(user.ID, user.Email, string(user.Role), user.AcademyID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:      user,
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
		HomeRoute: user.Role.HomeRoute(),
	}, nil
}
