package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkoutModel string

const (
	ModelPPL      WorkoutModel = "PPL"
	ModelABC      WorkoutModel = "ABC"
	ModelABCDE    WorkoutModel = "ABCDE"
	ModelFullBody WorkoutModel = "FULLBODY"
)

type WorkoutObjective string

const (
	ObjectiveHypertrophy WorkoutObjective = "HYPERTROPHY"
	ObjectiveFatLoss     WorkoutObjective = "FAT_LOSS"
	ObjectiveStrength    WorkoutObjective = "STRENGTH"
	ObjectiveEndurance   WorkoutObjective = "ENDURANCE"
)

type Workout struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	AcademyID   uuid.UUID        `gorm:"type:uuid;index;not null" json:"academy_id"`
	Academy     *Academy         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	StudentID   uuid.UUID        `gorm:"type:uuid;index;not null" json:"student_id"`
	Student     *User            `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	ProfessorID *uuid.UUID       `gorm:"type:uuid;index" json:"professor_id,omitempty"`
	Professor   *User            `gorm:"foreignKey:ProfessorID;constraint:OnDelete:SET NULL" json:"professor,omitempty"`
	Name        string           `gorm:"size:100;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	ModelType   WorkoutModel     `gorm:"size:10;not null" json:"model_type"`
	Objective   WorkoutObjective `gorm:"size:20;not null" json:"objective"`
	// WeeklySplit holds the per-day exercise plan serialized as JSON text.
	WeeklySplit *string   `gorm:"type:text" json:"weekly_split,omitempty"`
	Status      Status    `gorm:"size:10;not null" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Status == "" {
		w.Status = StatusActive
	}
	return nil
}

type RequestType string

const (
	RequestNewWorkout  RequestType = "NEW_WORKOUT"
	RequestSwapWorkout RequestType = "SWAP_WORKOUT"
	RequestLink        RequestType = "LINK_REQUEST"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestApproved  RequestStatus = "APPROVED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestForwarded RequestStatus = "FORWARDED"
)

type WorkoutRequest struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	AcademyID  uuid.UUID     `gorm:"type:uuid;index;not null" json:"academy_id"`
	Academy    *Academy      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	StudentID  uuid.UUID     `gorm:"type:uuid;index;not null" json:"student_id"`
	Student    *User         `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Type       RequestType   `gorm:"size:20;not null" json:"type"`
	Status     RequestStatus `gorm:"size:10;not null" json:"status"`
	Response   *string       `gorm:"type:text" json:"response,omitempty"`
	AssignedTo *uuid.UUID    `gorm:"type:uuid" json:"assigned_to,omitempty"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (r *WorkoutRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = RequestPending
	}
	return nil
}
