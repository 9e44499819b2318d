package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken belongs to a customer, provider or admin row; AccountRole says which table.
type RefreshToken struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   uuid.UUID `gorm:"type:uuid;not null;index" json:"accountId"`
	AccountRole string    `gorm:"size:20;not null" json:"accountRole"`
	TokenHash   string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt   time.Time `gorm:"not null" json:"expiresAt"`
	Revoked     bool      `gorm:"not null;default:false" json:"revoked"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
