package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
	"pkfit.com.br/pkfitsystem/internal/modules/academy/dto"
	academyRepo "pkfit.com.br/pkfitsystem/internal/modules/academy/repository"
	userRepo "pkfit.com.br/pkfitsystem/internal/modules/user/repository"
	"pkfit.com.br/pkfitsystem/pkg/apperror"
)

// AcademyService is the global-admin view over tenants.
type AcademyService interface {
	List(ctx context.Context) ([]*dto.AcademyWithAdmin, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Academy, error)
	Create(ctx context.Context, input dto.CreateAcademyInput) (*dto.CreateAcademyResult, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateAcademyInput) (*entity.Academy, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type academyService struct {
	academies academyRepo.AcademyRepository
	users     userRepo.UserRepository
}

func NewAcademyService(academies academyRepo.AcademyRepository, users userRepo.UserRepository) AcademyService {
	return &academyService{
		academies: academies,
		users:     users,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *academyService) List(ctx context.Context) ([]*dto.AcademyWithAdmin, error) {
	academies, err := s.academies.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AcademyWithAdmin, 0, len(academies))
	for _, academy := range academies {
		entry := &dto.AcademyWithAdmin{Academy: academy}
		if len(academy.Users) > 0 {
			entry.Admin = &dto.AdminPreview{
				Name:  academy.Users[0].Name,
				Email: academy.Users[0].Email,
			}
		}
		academy.Users = nil
		result = append(result, entry)
	}

	return result, nil
}

func (s *academyService) Get(ctx context.Context, id uuid.UUID) (*entity.Academy, error) {
	academy, err := s.academies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("academy not found")
		}
		return nil, err
	}

	return academy, nil
}

// Create provisions a tenant together with its first ADMIN_ACADEMIA user.
// Uniqueness is pre-checked here; the unique constraints in the database are
// the backstop for a losing race.
func (s *academyService) Create(ctx context.Context, input dto.CreateAcademyInput) (*dto.CreateAcademyResult, error) {
	taken, err := s.academies.CNPJTaken(ctx, input.CNPJ, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("CNPJ already registered")
	}

	adminEmail := normalizeEmail(input.AdminEmail)
	emailTaken, err := s.users.EmailTaken(ctx, adminEmail, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperror.Conflict("administrator email already in use by another user")
	}

	academy := &entity.Academy{
		Name:            input.Name,
		CNPJ:            input.CNPJ,
		ResponsibleName: input.AdminName,
		Phone:           input.Phone,
		Status:          entity.StatusActive,
		PaymentStatus:   entity.PaymentPending,
	}

	admin := &entity.User{
		Name:        input.AdminName,
		Email:       adminEmail,
		Role:        entity.RoleAdminAcademia,
		Status:      entity.StatusActive,
		FirstAccess: true,
	}

	if err := s.academies.CreateWithAdmin(ctx, academy, admin); err != nil {
		return nil, err
	}

	return &dto.CreateAcademyResult{Academy: academy, Admin: admin}, nil
}

func (s *academyService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateAcademyInput) (*entity.Academy, error) {
	academy, err := s.academies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("academy not found")
		}
		return nil, err
	}

	if input.CNPJ != nil && *input.CNPJ != academy.CNPJ {
		taken, err := s.academies.CNPJTaken(ctx, *input.CNPJ, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.Conflict("CNPJ already registered to another academy")
		}
		academy.CNPJ = *input.CNPJ
	}
	if input.Name != nil {
		academy.Name = *input.Name
	}

	academy.Users = nil
	if err := s.academies.Update(ctx, academy); err != nil {
		return nil, err
	}

	return academy, nil
}

func (s *academyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.academies.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("academy not found")
		}
		return err
	}

	return s.academies.Delete(ctx, id)
}
