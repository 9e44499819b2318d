package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRatingRequest struct {
	BookingID  uuid.UUID  `json:"bookingId" validate:"required"`
	ServiceID  *uuid.UUID `json:"serviceId"`
	CustomerID *uuid.UUID `json:"customerId"`
	Stars      float64    `json:"stars"`
	Review     string     `json:"review" validate:"max=2000"`
}

type RatingResponse struct {
	ID           uuid.UUID  `json:"id"`
	ServiceID    uuid.UUID  `json:"serviceId"`
	BookingID    uuid.UUID  `json:"bookingId"`
	CustomerID   *uuid.UUID `json:"customerId"`
	CustomerName string     `json:"customerName,omitempty"`
	Stars        float64    `json:"stars"`
	Review       string     `json:"review"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type AverageRatingResponse struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int64   `json:"reviewCount"`
}
