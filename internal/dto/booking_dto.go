package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CustomerID       *uuid.UUID `json:"customerId"`
	ProviderBookerID *uuid.UUID `json:"providerBookerId"`
	ProviderID       uuid.UUID  `json:"providerId" validate:"required"`
	ServiceID        uuid.UUID  `json:"serviceId" validate:"required"`
	Date             string     `json:"date" validate:"required"`
	Time             string     `json:"time" validate:"required"`
	Notes            string     `json:"notes" validate:"max=2000"`
	TotalAmount      float64    `json:"totalAmount"`
}

// UpdateBookingRequest is a partial update; nil fields are left unchanged.
type UpdateBookingRequest struct {
	Status      *string `json:"status"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
	BookingDate *string `json:"bookingDate"`
	BookingTime *string `json:"bookingTime"`
	// CancelledBy is matched case-insensitively by the booking service.
	CancelledBy string  `json:"cancelledBy"`
}

type CancelBookingRequest struct {
	CancelledBy string `json:"cancelledBy"`
}

type BookingResponse struct {
	ID          uuid.UUID  `json:"id"`
	ServiceID   uuid.UUID  `json:"serviceId"`
	ServiceName string     `json:"serviceName"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	TotalAmount float64    `json:"totalAmount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`

	CustomerID           *uuid.UUID `json:"customerId"`
	CustomerName         string     `json:"customerName,omitempty"`
	CustomerPhone        string     `json:"customerPhone,omitempty"`
	CustomerEmail        string     `json:"customerEmail,omitempty"`
	CustomerProfileImage string     `json:"customerProfileImage,omitempty"`

	ProviderBookerID           *uuid.UUID `json:"providerBookerId"`
	ProviderBookerName         string     `json:"providerBookerName,omitempty"`
	ProviderBookerPhone        string     `json:"providerBookerPhone,omitempty"`
	ProviderBookerEmail        string     `json:"providerBookerEmail,omitempty"`
	ProviderBookerProfileImage string     `json:"providerBookerProfileImage,omitempty"`

	ProviderID           uuid.UUID `json:"providerId"`
	ProviderName         string    `json:"providerName,omitempty"`
	ProviderPhone        string    `json:"providerPhone,omitempty"`
	ProviderEmail        string    `json:"providerEmail,omitempty"`
	ProviderProfileImage string    `json:"providerProfileImage,omitempty"`
}
