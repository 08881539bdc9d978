package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
	academyRepo "pkfit.com.br/pkfitsystem/internal/modules/academy/repository"
	"pkfit.com.br/pkfitsystem/internal/modules/user/dto"
	"pkfit.com.br/pkfitsystem/internal/modules/user/repository"
	"pkfit.com.br/pkfitsystem/pkg/apperror"
	"pkfit.com.br/pkfitsystem/pkg/password"
)

// UserService is the global-admin raw user CRUD, unscoped by tenant.
type UserService interface {
	List(ctx context.Context, filter repository.Filter) ([]*entity.User, error)
	Create(ctx context.Context, input dto.CreateUserInput) (*entity.User, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	users     repository.UserRepository
	academies academyRepo.AcademyRepository
}

func NewUserService(users repository.UserRepository, academies academyRepo.AcademyRepository) UserService {
	return &userService{
		users:     users,
		academies: academies,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) List(ctx context.Context, filter repository.Filter) ([]*entity.User, error) {
	return s.users.List(ctx, filter)
}

func (s *userService) Create(ctx context.Context, input dto.CreateUserInput) (*entity.User, error) {
	if input.Role == entity.RoleAdminGlobal {
		if input.AcademyID != nil {
			return nil, apperror.BadRequest("a global administrator cannot be linked to an academy")
		}
	} else if input.AcademyID == nil {
		return nil, apperror.BadRequest("academy_id is required for this role")
	}

	if input.AcademyID != nil {
		if _, err := s.academies.FindByID(ctx, *input.AcademyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound("academy not found")
			}
			return nil, err
		}
	}

	email := normalizeEmail(input.Email)
	taken, err := s.users.EmailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("email already registered")
	}

	user := &entity.User{
		Name:        input.Name,
		Email:       email,
		Role:        input.Role,
		AcademyID:   input.AcademyID,
		Specialty:   input.Specialty,
		Status:      entity.StatusActive,
		FirstAccess: true,
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
		user.FirstAccess = false
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			taken, err := s.users.EmailTaken(ctx, email, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperror.Conflict("email already in use")
			}
			user.Email = email
		}
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.AcademyID != nil {
		if _, err := s.academies.FindByID(ctx, *input.AcademyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound("academy not found")
			}
			return nil, err
		}
		user.AcademyID = input.AcademyID
	}
	if input.Specialty != nil {
		user.Specialty = input.Specialty
	}
	if input.Status != nil {
		user.Status = *input.Status
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
		user.FirstAccess = false
	}

	user.Academy = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}

	return s.users.Delete(ctx, id)
}
