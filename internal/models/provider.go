package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider is a service-offering account. It can also act as the booker of
// another provider's service.
type Provider struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Email           string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Phone           string    `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	DoorNo          string    `gorm:"size:50" json:"doorNo"`
	AddressLine     string    `gorm:"size:255" json:"addressLine"`
	City            string    `gorm:"size:100;index" json:"city"`
	State           string    `gorm:"size:100" json:"state"`
	Pincode         int       `json:"pincode"`
	Country         string    `gorm:"size:100" json:"country"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	ServiceType     string    `gorm:"size:100;index" json:"serviceType"`
	Price           float64   `gorm:"not null;default:0" json:"price"`
	Verified        bool      `gorm:"not null;default:false" json:"verified"`
	Role            string    `gorm:"size:20;not null" json:"role"`
	ProfileImage    []byte    `json:"-"`
	ProfileImageURL string    `gorm:"size:500" json:"profileImageUrl,omitempty"`
	EmailVerified   bool      `gorm:"not null;default:false" json:"emailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Role == "" {
		p.Role = RoleProvider
	}
	return nil
}

func (Provider) TableName() string {
	return "providers"
}
