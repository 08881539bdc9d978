package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
)

// Filter narrows the global user listing (ADMIN_GLOBAL views).
type Filter struct {
	Role      string `form:"role"`
	AcademyID string `form:"academy_id"`
	Search    string `form:"search"`
}

// MemberFilter narrows an academy's own member listing.
type MemberFilter struct {
	Role   string `form:"role"`
	Status string `form:"status"`
	Search string `form:"search"`
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// EmailTaken reports whether the email is used by any user other than exclude.
	// Pass uuid.Nil to check against every user.
	EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error)
	// FindInAcademy resolves a user only when it belongs to the given academy,
	// optionally restricted to a role set. Cross-tenant ids come back as
	// gorm.ErrRecordNotFound.
	FindInAcademy(ctx context.Context, id, academyID uuid.UUID, roles ...entity.Role) (*entity.User, error)
	List(ctx context.Context, filter Filter) ([]*entity.User, error)
	ListByAcademy(ctx context.Context, academyID uuid.UUID, filter MemberFilter) ([]*entity.User, error)
	ListProfessors(ctx context.Context, academyID uuid.UUID) ([]*entity.User, error)
	CountByRole(ctx context.Context, academyID uuid.UUID, role entity.Role, status entity.Status) (int64, error)
	RecentByAcademy(ctx context.Context, academyID uuid.UUID, limit int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// SetPassword stores the hash and clears the first-access flag in one write.
	SetPassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *userRepository) FindInAcademy(ctx context.Context, id, academyID uuid.UUID, roles ...entity.Role) (*entity.User, error) {
	query := r.db.WithContext(ctx).
		Where("id = ? AND academy_id = ?", id, academyID)
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}

	var user entity.User
	if err := query.First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter Filter) ([]*entity.User, error) {
	query := r.db.WithContext(ctx).Model(&entity.User{}).Preload("Academy")

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.AcademyID != "" {
		query = query.Where("academy_id = ?", filter.AcademyID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var users []*entity.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) ListByAcademy(ctx context.Context, academyID uuid.UUID, filter MemberFilter) ([]*entity.User, error) {
	query := r.db.WithContext(ctx).Model(&entity.User{}).Where("academy_id = ?", academyID)

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	} else {
		// The academy admin manages members; it is not listed among them.
		query = query.Where("role <> ?", entity.RoleAdminAcademia)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var users []*entity.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) ListProfessors(ctx context.Context, academyID uuid.UUID) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.db.WithContext(ctx).
		Where("academy_id = ? AND role IN ? AND status = ?",
			academyID, []entity.Role{entity.RoleProfessor, entity.RolePersonal}, entity.StatusActive).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) CountByRole(ctx context.Context, academyID uuid.UUID, role entity.Role, status entity.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("academy_id = ? AND role = ? AND status = ?", academyID, role, status).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) RecentByAcademy(ctx context.Context, academyID uuid.UUID, limit int) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.db.WithContext(ctx).
		Where("academy_id = ?", academyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SetPassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash": hash,
			"first_access":  false,
		}).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id).Error
}
