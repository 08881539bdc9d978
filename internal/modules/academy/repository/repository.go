package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
)

type AcademyRepository interface {
	// List returns every academy with its ADMIN_ACADEMIA user preloaded.
	List(ctx context.Context) ([]*entity.Academy, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Academy, error)
	// CNPJTaken reports whether the tax id is used by any academy other than
	// exclude. Pass uuid.Nil to check against every academy.
	CNPJTaken(ctx context.Context, cnpj string, exclude uuid.UUID) (bool, error)
	// CreateWithAdmin inserts the academy and its first admin user in one
	// transaction: either both rows persist or neither does.
	CreateWithAdmin(ctx context.Context, academy *entity.Academy, admin *entity.User) error
	Update(ctx context.Context, academy *entity.Academy) error
	// Delete removes the academy's users and the academy row in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

type academyRepository struct {
	db *gorm.DB
}

func NewAcademyRepository(db *gorm.DB) AcademyRepository {
	return &academyRepository{db: db}
}

func (r *academyRepository) List(ctx context.Context) ([]*entity.Academy, error) {
	var academies []*entity.Academy
	if err := r.db.WithContext(ctx).
		Preload("Users", "role = ?", entity.RoleAdminAcademia).
		Order("created_at DESC").
		Find(&academies).Error; err != nil {
		return nil, err
	}

	return academies, nil
}

func (r *academyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Academy, error) {
	var academy entity.Academy
	if err := r.db.WithContext(ctx).
		Preload("Users").
		Where("id = ?", id).
		First(&academy).Error; err != nil {
		return nil, err
	}

	return &academy, nil
}

func (r *academyRepository) CNPJTaken(ctx context.Context, cnpj string, exclude uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.Academy{}).Where("cnpj = ?", cnpj)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *academyRepository) CreateWithAdmin(ctx context.Context, academy *entity.Academy, admin *entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(academy).Error; err != nil {
			return err
		}

		admin.AcademyID = &academy.ID
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *academyRepository) Update(ctx context.Context, academy *entity.Academy) error {
	return r.db.WithContext(ctx).Save(academy).Error
}

func (r *academyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("academy_id = ?", id).Delete(&entity.User{}).Error; err != nil {
			return err
		}

		return tx.Delete(&entity.Academy{}, "id = ?", id).Error
	})
}
