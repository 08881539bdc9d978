package dto

import (
	"encoding/json"

	"github.com/google/uuid"

	"pkfit.com.br/pkfitsystem/internal/entity"
)

type Stats struct {
	Students        int64 `json:"students"`
	Professors      int64 `json:"professors"`
	Personals       int64 `json:"personals"`
	Workouts        int64 `json:"workouts"`
	PendingRequests int64 `json:"pendingRequests"`
}

type Activity struct {
	RecentUsers    []*entity.User           `json:"recentUsers"`
	RecentWorkouts []*entity.Workout        `json:"recentWorkouts"`
	RecentRequests []*entity.WorkoutRequest `json:"recentRequests"`
}

type CreateMemberInput struct {
	Name      string        `json:"name" binding:"required"`
	Email     string        `json:"email" binding:"required,email"`
	Role      entity.Role   `json:"role" binding:"required,oneof=PROFESSOR PERSONAL ALUNO"`
	Specialty *string       `json:"specialty"`
	Status    entity.Status `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UpdateMemberInput struct {
	Name      *string        `json:"name"`
	Email     *string        `json:"email" binding:"omitempty,email"`
	Specialty *string        `json:"specialty"`
	Status    *entity.Status `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type CreateWorkoutInput struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	ModelType   entity.WorkoutModel     `json:"model_type" binding:"required,oneof=PPL ABC ABCDE FULLBODY"`
	Objective   entity.WorkoutObjective `json:"objective" binding:"required,oneof=HYPERTROPHY FAT_LOSS STRENGTH ENDURANCE"`
	StudentID   uuid.UUID               `json:"student_id" binding:"required"`
	ProfessorID *uuid.UUID              `json:"professor_id"`
	WeeklySplit json.RawMessage         `json:"weekly_split"`
}

type UpdateWorkoutInput struct {
	Name        *string                  `json:"name"`
	Description *string                  `json:"description"`
	ModelType   *entity.WorkoutModel     `json:"model_type" binding:"omitempty,oneof=PPL ABC ABCDE FULLBODY"`
	Objective   *entity.WorkoutObjective `json:"objective" binding:"omitempty,oneof=HYPERTROPHY FAT_LOSS STRENGTH ENDURANCE"`
	ProfessorID *uuid.UUID               `json:"professor_id"`
	WeeklySplit json.RawMessage          `json:"weekly_split"`
	Status      *entity.Status           `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type ProcessRequestInput struct {
	Status     entity.RequestStatus `json:"status" binding:"required,oneof=APPROVED REJECTED FORWARDED"`
	Response   *string              `json:"response"`
	AssignedTo *uuid.UUID           `json:"assigned_to"`
}

type UpdateAcademyInput struct {
	Name            *string `json:"name"`
	ResponsibleName *string `json:"responsible_name"`
	Phone           *string `json:"phone"`
	LogoURL         *string `json:"logo_url"`
}
