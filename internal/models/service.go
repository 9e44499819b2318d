package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a listing owned by one provider. Rating and ReviewCount are a
// cached aggregate of the listing's ratings.
type Service struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:150;not null;index" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"categoryId"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"-"`
	ProviderID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"providerId"`
	Provider    *Provider  `gorm:"foreignKey:ProviderID" json:"-"`
	Price       float64    `gorm:"not null;default:0" json:"price"`
	City        string     `gorm:"size:100;index" json:"city"`
	State       string     `gorm:"size:100" json:"state"`
	Pincode     int        `json:"pincode"`
	Rating      float64    `gorm:"not null;default:0" json:"rating"`
	ReviewCount int        `gorm:"not null;default:0" json:"reviewCount"`
	IsActive    bool       `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (Service) TableName() string {
	return "services"
}
