package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusAccepted  BookingStatus = "Accepted"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

var ErrInvalidBooker = errors.New("exactly one of customerId or providerBookerId is required")

var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusAccepted, StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusAccepted:  {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ParseBookingStatus matches s case-insensitively against the known statuses.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, st := range []BookingStatus{StatusPending, StatusAccepted, StatusConfirmed, StatusCompleted, StatusCancelled} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether a booking in status from may move to to.
func CanTransition(from, to BookingStatus) error {
	if from.Terminal() {
		return fmt.Errorf("no transitions allowed from %s", from)
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("invalid transition from %s to %s", from, to)
}

type Booking struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID       *uuid.UUID    `gorm:"type:uuid;index" json:"customerId"`
	Customer         *Customer     `gorm:"foreignKey:CustomerID" json:"-"`
	ProviderBookerID *uuid.UUID    `gorm:"type:uuid;index" json:"providerBookerId"`
	ProviderBooker   *Provider     `gorm:"foreignKey:ProviderBookerID" json:"-"`
	ProviderID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"providerId"`
	Provider         *Provider     `gorm:"foreignKey:ProviderID" json:"-"`
	ServiceID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"serviceId"`
	Service          *Service      `gorm:"foreignKey:ServiceID" json:"-"`
	ServiceName      string        `gorm:"size:150" json:"serviceName"`
	BookingDate      string        `gorm:"size:10;not null" json:"bookingDate"`
	BookingTime      string        `gorm:"size:8;not null" json:"bookingTime"`
	ScheduledDate    *time.Time    `json:"scheduledDate"`
	Status           BookingStatus `gorm:"size:20;not null;index" json:"status"`
	Notes            string        `gorm:"type:text" json:"notes"`
	TotalAmount      float64       `gorm:"type:decimal(10,2)" json:"totalAmount"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
	CompletedAt      *time.Time    `json:"completedAt"`
	CancelledAt      *time.Time    `json:"cancelledAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if (b.CustomerID == nil) == (b.ProviderBookerID == nil) {
		return ErrInvalidBooker
	}
	ensureID(&b.ID)
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// BookerEmail returns the e-mail of whichever account made the booking.
// Customer and ProviderBooker must be preloaded.
func (b *Booking) BookerEmail() string {
	if b.Customer != nil {
		return b.Customer.Email
	}
	if b.ProviderBooker != nil {
		return b.ProviderBooker.Email
	}
	return ""
}

func (b *Booking) BookerName() string {
	if b.Customer != nil {
		return b.Customer.Name
	}
	if b.ProviderBooker != nil {
		return b.ProviderBooker.Name
	}
	return ""
}

func (Booking) TableName() string {
	return "bookings"
}
