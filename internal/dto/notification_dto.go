package dto

import "github.com/google/uuid"

type NotificationRequest struct {
	RecipientEmail    string     `json:"recipientEmail" validate:"required,email"`
	RecipientRole     string     `json:"recipientRole"`
	Title             string     `json:"title" validate:"required,max=255"`
	Message           string     `json:"message" validate:"required"`
	Type              string     `json:"type" validate:"required,max=50"`
	RelatedEntityID   *uuid.UUID `json:"relatedEntityId"`
	RelatedEntityType string     `json:"relatedEntityType"`
	ActionURL         string     `json:"actionUrl"`
	SenderName        string     `json:"senderName"`
	Priority          string     `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH"`
}
