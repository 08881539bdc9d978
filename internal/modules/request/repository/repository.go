package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
)

type RequestRepository interface {
	ListByAcademy(ctx context.Context, academyID uuid.UUID, status string) ([]*entity.WorkoutRequest, error)
	// FindInAcademy resolves a request only when it belongs to the given
	// academy; cross-tenant ids come back as gorm.ErrRecordNotFound.
	FindInAcademy(ctx context.Context, id, academyID uuid.UUID) (*entity.WorkoutRequest, error)
	Create(ctx context.Context, request *entity.WorkoutRequest) error
	Update(ctx context.Context, request *entity.WorkoutRequest) error
	CountPending(ctx context.Context, academyID uuid.UUID) (int64, error)
	RecentByAcademy(ctx context.Context, academyID uuid.UUID, limit int) ([]*entity.WorkoutRequest, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) ListByAcademy(ctx context.Context, academyID uuid.UUID, status string) ([]*entity.WorkoutRequest, error) {
	query := r.db.WithContext(ctx).
		Preload("Student").
		Where("academy_id = ?", academyID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []*entity.WorkoutRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *requestRepository) FindInAcademy(ctx context.Context, id, academyID uuid.UUID) (*entity.WorkoutRequest, error) {
	var request entity.WorkoutRequest
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("id = ? AND academy_id = ?", id, academyID).
		First(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) Create(ctx context.Context, request *entity.WorkoutRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) Update(ctx context.Context, request *entity.WorkoutRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *requestRepository) CountPending(ctx context.Context, academyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.WorkoutRequest{}).
		Where("academy_id = ? AND status = ?", academyID, entity.RequestPending).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *requestRepository) RecentByAcademy(ctx context.Context, academyID uuid.UUID, limit int) ([]*entity.WorkoutRequest, error) {
	var requests []*entity.WorkoutRequest
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("academy_id = ?", academyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}
