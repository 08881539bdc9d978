package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
)

// Filter narrows an academy's workout listing.
type Filter struct {
	ProfessorID string `form:"professor_id"`
	StudentID   string `form:"student_id"`
	Status      string `form:"status"`
}

type WorkoutRepository interface {
	ListByAcademy(ctx context.Context, academyID uuid.UUID, filter Filter) ([]*entity.Workout, error)
	// FindInAcademy resolves a workout only when it belongs to the given
	// academy; cross-tenant ids come back as gorm.ErrRecordNotFound.
	FindInAcademy(ctx context.Context, id, academyID uuid.UUID) (*entity.Workout, error)
	Create(ctx context.Context, workout *entity.Workout) error
	Update(ctx context.Context, workout *entity.Workout) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActive(ctx context.Context, academyID uuid.UUID) (int64, error)
	RecentByAcademy(ctx context.Context, academyID uuid.UUID, limit int) ([]*entity.Workout, error)
}

type workoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) ListByAcademy(ctx context.Context, academyID uuid.UUID, filter Filter) ([]*entity.Workout, error) {
	query := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Professor").
		Where("academy_id = ?", academyID)

	if filter.ProfessorID != "" {
		query = query.Where("professor_id = ?", filter.ProfessorID)
	}
	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var workouts []*entity.Workout
	if err := query.Order("created_at DESC").Find(&workouts).Error; err != nil {
		return nil, err
	}

	return workouts, nil
}

func (r *workoutRepository) FindInAcademy(ctx context.Context, id, academyID uuid.UUID) (*entity.Workout, error) {
	var workout entity.Workout
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Professor").
		Where("id = ? AND academy_id = ?", id, academyID).
		First(&workout).Error; err != nil {
		return nil, err
	}

	return &workout, nil
}

func (r *workoutRepository) Create(ctx context.Context, workout *entity.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *workoutRepository) Update(ctx context.Context, workout *entity.Workout) error {
	return r.db.WithContext(ctx).Save(workout).Error
}

func (r *workoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Workout{}, "id = ?", id).Error
}

func (r *workoutRepository) CountActive(ctx context.Context, academyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Workout{}).
		Where("academy_id = ? AND status = ?", academyID, entity.StatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *workoutRepository) RecentByAcademy(ctx context.Context, academyID uuid.UUID, limit int) ([]*entity.Workout, error) {
	var workouts []*entity.Workout
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("academy_id = ?", academyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&workouts).Error; err != nil {
		return nil, err
	}

	return workouts, nil
}
