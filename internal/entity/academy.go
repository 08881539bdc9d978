package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentOverdue PaymentStatus = "OVERDUE"
)

type Academy struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string        `gorm:"size:100;not null" json:"name"`
	CNPJ            string        `gorm:"size:20;uniqueIndex;not null" json:"cnpj"`
	ResponsibleName string        `gorm:"size:100" json:"responsible_name"`
	Phone           string        `gorm:"size:30" json:"phone"`
	Status          Status        `gorm:"size:10;not null" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"size:10;not null" json:"payment_status"`
	LogoURL         *string       `gorm:"type:text" json:"logo_url,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	Users           []User        `gorm:"constraint:OnDelete:CASCADE" json:"users,omitempty"`
}

func (a *Academy) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusActive
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = PaymentPending
	}
	return nil
}
