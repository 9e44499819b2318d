package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountProfile is the public view of a customer or provider.
type AccountProfile struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	DoorNo        string    `json:"doorNo"`
	AddressLine   string    `json:"addressLine"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Pincode       int       `json:"pincode"`
	Country       string    `json:"country"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	Verified      bool      `json:"verified"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	ProfileImage  string    `json:"profileImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CustomerResponse struct {
	AccountProfile
}

type ProviderResponse struct {
	AccountProfile
	ServiceType        string   `json:"serviceType"`
	Price              float64  `json:"price"`
	Distance           *float64 `json:"distance,omitempty"`
	ActiveServiceCount *int64   `json:"activeServiceCount,omitempty"`
}

// UpdateAccountRequest carries a partial update; nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone" validate:"omitempty,min=1,max=20"`
	DoorNo      *string  `json:"doorNo"`
	AddressLine *string  `json:"addressLine"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	Pincode     *int     `json:"pincode"`
	Country     *string  `json:"country"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type UpdateCustomerRequest struct {
	UpdateAccountRequest
}

type UpdateProviderRequest struct {
	UpdateAccountRequest
	ServiceType *string  `json:"serviceType" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ImageCheckResponse reports whether an account has a profile image. Exactly
// one of CustomerID and ProviderID is set.
type ImageCheckResponse struct {
	CustomerID     *uuid.UUID `json:"customerId,omitempty"`
	ProviderID     *uuid.UUID `json:"providerId,omitempty"`
	Name           string     `json:"name"`
	HasImage       bool       `json:"hasImage"`
	ImageSizeBytes int        `json:"imageSizeBytes,omitempty"`
	ImageURL       string     `json:"imageUrl,omitempty"`
}
