package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipient roles used by notification routing on the client.
const (
	RecipientCustomer = "CUSTOMER"
	RecipientProvider = "SERVICE_PROVIDER"
	RecipientAdmin    = "ADMIN"
)

const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
)

type Notification struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientEmail    string     `gorm:"size:255;not null;index:idx_notifications_recipient" json:"recipientEmail"`
	RecipientRole     string     `gorm:"size:30" json:"recipientRole"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	Message           string     `gorm:"size:1000;not null" json:"message"`
	Type              string     `gorm:"size:50;not null;index" json:"type"`
	IsRead            bool       `gorm:"not null;default:false;index:idx_notifications_recipient" json:"isRead"`
	ReadAt            *time.Time `json:"readAt"`
	RelatedEntityID   *uuid.UUID `gorm:"type:uuid" json:"relatedEntityId"`
	RelatedEntityType string     `gorm:"size:30" json:"relatedEntityType"`
	ActionURL         string     `gorm:"size:255" json:"actionUrl"`
	SenderName        string     `gorm:"size:100" json:"senderName"`
	Priority          string     `gorm:"size:10;not null" json:"priority"`
	CreatedAt         time.Time  `gorm:"index" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	ensureID(&n.ID)
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}
	return nil
}

func (Notification) TableName() string {
	return "notifications"
}
