package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name        string     `json:"name" validate:"required,max=150"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	ProviderID  uuid.UUID  `json:"providerId" validate:"required"`
	Price       float64    `json:"price" validate:"gte=0"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	Pincode     int        `json:"pincode"`
	IsActive    *bool      `json:"isActive"`
}

// UpdateServiceRequest is a partial update; nil fields are left unchanged.
type UpdateServiceRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string    `json:"description"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Price       *float64   `json:"price" validate:"omitempty,gte=0"`
	City        *string    `json:"city"`
	State       *string    `json:"state"`
	Pincode     *int       `json:"pincode"`
	IsActive    *bool      `json:"isActive"`
}

type ServiceResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	CategoryID       *uuid.UUID `json:"categoryId"`
	CategoryName     string     `json:"categoryName,omitempty"`
	ProviderID       uuid.UUID  `json:"providerId"`
	ProviderName     string     `json:"providerName,omitempty"`
	ProviderVerified bool       `json:"providerVerified"`
	Price            float64    `json:"price"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Pincode          int        `json:"pincode"`
	Rating           float64    `json:"rating"`
	ReviewCount      int        `json:"reviewCount"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"max=255"`
}
