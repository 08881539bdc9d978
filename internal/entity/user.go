package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdminGlobal   Role = "ADMIN_GLOBAL"
	RoleAdminAcademia Role = "ADMIN_ACADEMIA"
	RoleProfessor     Role = "PROFESSOR"
	RolePersonal      Role = "PERSONAL"
	RoleAluno         Role = "ALUNO"
)

// HomeRoute maps a role to the dashboard route the client should land on
// after login. Unknown roles fall back to the login screen.
func (r Role) HomeRoute() string {
	switch r {
	case RoleAdminGlobal:
		return "/admin"
	case RoleAdminAcademia:
		return "/academy"
	case RoleProfessor:
		return "/professor"
	case RolePersonal:
		return "/personal"
	case RoleAluno:
		return "/student"
	default:
		return "/login"
	}
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash *string    `gorm:"size:255" json:"-"`
	Role         Role       `gorm:"size:20;not null" json:"role"`
	AcademyID    *uuid.UUID `gorm:"type:uuid;index" json:"academy_id,omitempty"`
	Academy      *Academy   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"academy,omitempty"`
	Status       Status     `gorm:"size:10;not null" json:"status"`
	Specialty    *string    `gorm:"size:100" json:"specialty,omitempty"`
	FirstAccess  bool       `gorm:"not null" json:"first_access"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

// HasPassword reports whether the user has already finished first access.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
