// Package actorrepo is the actor directory: one profile table per role.
// A profile is created when a user completes onboarding for that role.
package actorrepo

import (
	"time"

	"github.com/google/uuid"
)

type VendorDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string    `gorm:"size:200;not null"`
	CreatedAt   time.Time
}

func (VendorDTO) TableName() string {
	return "vendors"
}

type SupplierDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string    `gorm:"size:200;not null"`
	CreatedAt   time.Time
}

func (SupplierDTO) TableName() string {
	return "suppliers"
}

type DeliveryPartnerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string    `gorm:"size:200;not null"`
	CreatedAt   time.Time
}

func (DeliveryPartnerDTO) TableName() string {
	return "delivery_partners"
}
