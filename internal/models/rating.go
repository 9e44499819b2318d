package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rating struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"serviceId"`
	Service    *Service   `gorm:"foreignKey:ServiceID" json:"-"`
	BookingID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"bookingId"`
	Booking    *Booking   `gorm:"foreignKey:BookingID" json:"-"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	Stars      float64    `gorm:"not null" json:"stars"`
	Review     string     `gorm:"type:text" json:"review"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

func (Rating) TableName() string {
	return "ratings"
}
