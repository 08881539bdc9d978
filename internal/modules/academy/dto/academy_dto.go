package dto

import "pkfit.com.br/pkfitsystem/internal/entity"

type CreateAcademyInput struct {
	Name       string `json:"name" binding:"required"`
	CNPJ       string `json:"cnpj" binding:"required"`
	AdminName  string `json:"adminName" binding:"required"`
	AdminEmail string `json:"adminEmail" binding:"required,email"`
	Phone      string `json:"phone"`
}

type UpdateAcademyInput struct {
	Name *string `json:"name"`
	CNPJ *string `json:"cnpj"`
}

type AdminPreview struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AcademyWithAdmin struct {
	*entity.Academy
	Admin *AdminPreview `json:"admin"`
}

type CreateAcademyResult struct {
	Academy *entity.Academy `json:"academy"`
	Admin   *entity.User    `json:"admin"`
}
