package dto

import (
	"github.com/google/uuid"

	"pkfit.com.br/pkfitsystem/internal/entity"
)

type CreateUserInput struct {
	Name      string      `json:"name" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Role      entity.Role `json:"role" binding:"required,oneof=ADMIN_GLOBAL ADMIN_ACADEMIA PROFESSOR PERSONAL ALUNO"`
	AcademyID *uuid.UUID  `json:"academy_id"`
	Specialty *string     `json:"specialty"`
	// Password is optional: without it the account starts in first access and
	// the user sets their own password through the login wizard.
	Password *string `json:"password"`
}

type UpdateUserInput struct {
	Name      *string        `json:"name"`
	Email     *string        `json:"email" binding:"omitempty,email"`
	Role      *entity.Role   `json:"role" binding:"omitempty,oneof=ADMIN_GLOBAL ADMIN_ACADEMIA PROFESSOR PERSONAL ALUNO"`
	AcademyID *uuid.UUID     `json:"academy_id"`
	Specialty *string        `json:"specialty"`
	Status    *entity.Status `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	// Password here is the admin rotation path: it re-hashes and clears
	// first access.
	Password *string `json:"password"`
}
