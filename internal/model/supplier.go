package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier represents a vendor purchase orders are placed against
type Supplier struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(100);not null" json:"name"`
	Address       string         `gorm:"type:varchar(200)" json:"address"`
	City          string         `gorm:"type:varchar(100)" json:"city"`
	State         string         `gorm:"type:varchar(50)" json:"state"`
	ZipCode       string         `gorm:"type:varchar(20)" json:"zip_code"`
	Country       string         `gorm:"type:varchar(50)" json:"country"`
	Phone         string         `gorm:"type:varchar(20)" json:"phone"`
	Email         string         `gorm:"type:varchar(100)" json:"email"`
	ContactPerson string         `gorm:"type:varchar(100)" json:"contact_person"`
	TaxID         string         `gorm:"type:varchar(50)" json:"tax_id"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
