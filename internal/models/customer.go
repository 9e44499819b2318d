package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
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
	Verified        bool      `gorm:"not null;default:false" json:"verified"`
	Role            string    `gorm:"size:20;not null" json:"role"`
	ProfileImage    []byte    `json:"-"`
	ProfileImageURL string    `gorm:"size:500" json:"profileImageUrl,omitempty"`
	EmailVerified   bool      `gorm:"not null;default:false" json:"emailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	if c.Role == "" {
		c.Role = RoleCustomer
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}
