package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrAlreadyRated   = errors.New("This booking has already been rated")
	ErrInvalidStars   = errors.New("stars must be between 1 and 5")
)

type RatingService struct {
	db            *gorm.DB
	notifications *NotificationService
	filter        *ContentFilter
}

func NewRatingService(db *gorm.DB, notifications *NotificationService, filter *ContentFilter) *RatingService {
	return &RatingService{db: db, notifications: notifications, filter: filter}
}

// ContentError carries the filter's rejection reason.
type ContentError struct {
	Reason string
}

func (e *ContentError) Error() string {
	return RejectionMessage(e.Reason)
}

func (e *ContentError) Unwrap() error {
	return ErrContentRejected
}

// Create stores a rating for a booking and refreshes the service aggregate in
// the same transaction. A booking can be rated once.
func (s *RatingService) Create(ctx context.Context, req *dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	if req.Stars < 1 || req.Stars > 5 || math.IsNaN(req.Stars) {
		return nil, ErrInvalidStars
	}
	review := strings.TrimSpace(req.Review)
	if reason := s.filter.Check(review); reason != "" {
		return nil, &ContentError{Reason: reason}
	}

	var rating models.Rating
	var booking models.Booking
	var service models.Service

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := withParties(tx).First(&booking, "id = ?", req.BookingID).Error; err != nil {
			return notFound(err, ErrBookingNotFound)
		}

		var existing int64
		if err := tx.Model(&models.Rating{}).Where("booking_id = ?", booking.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyRated
		}

		serviceID := booking.ServiceID
		if req.ServiceID != nil {
			serviceID = *req.ServiceID
		}
		if err := tx.First(&service, "id = ?", serviceID).Error; err != nil {
			return notFound(err, ErrServiceNotFound)
		}

		customerID := req.CustomerID
		if customerID == nil {
			customerID = booking.CustomerID
		}

		rating = models.Rating{
			ServiceID:  service.ID,
			BookingID:  booking.ID,
			CustomerID: customerID,
			Stars:      req.Stars,
			Review:     review,
		}
		if err := tx.Create(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRated
			}
			return fmt.Errorf("failed to create rating: %w", err)
		}
		return recomputeServiceRating(tx, service.ID)
	})
	if err != nil {
		return nil, err
	}
	metrics.RatingsCreatedTotal.Inc()

	if booking.Provider != nil {
		s.notifications.NotifyReviewReceived(ctx, booking.Provider.Email, booking.BookerName(), rating.ID,
			int(math.Round(rating.Stars)), service.Name)
	}

	if rating.CustomerID != nil && booking.Customer != nil && *rating.CustomerID == booking.Customer.ID {
		rating.Customer = booking.Customer
	}
	resp := toRatingResponse(&rating)
	return &resp, nil
}

func (s *RatingService) ByService(ctx context.Context, serviceID uuid.UUID) ([]dto.RatingResponse, error) {
	var list []models.Rating
	if err := s.db.WithContext(ctx).Preload("Customer").
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]dto.RatingResponse, 0, len(list))
	for i := range list {
		out = append(out, toRatingResponse(&list[i]))
	}
	return out, nil
}

func (s *RatingService) ByBooking(ctx context.Context, bookingID uuid.UUID) (*dto.RatingResponse, error) {
	var r models.Rating
	if err := s.db.WithContext(ctx).Preload("Customer").First(&r, "booking_id = ?", bookingID).Error; err != nil {
		return nil, notFound(err, ErrRatingNotFound)
	}
	resp := toRatingResponse(&r)
	return &resp, nil
}

func (s *RatingService) Average(ctx context.Context, serviceID uuid.UUID) (*dto.AverageRatingResponse, error) {
	avg, count, err := ratingAggregate(s.db.WithContext(ctx), serviceID)
	if err != nil {
		return nil, err
	}
	return &dto.AverageRatingResponse{AverageRating: avg, ReviewCount: count}, nil
}

func (s *RatingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Rating
		if err := tx.First(&r, "id = ?", id).Error; err != nil {
			return notFound(err, ErrRatingNotFound)
		}
		if err := tx.Delete(&r).Error; err != nil {
			return err
		}
		return recomputeServiceRating(tx, r.ServiceID)
	})
}

func ratingAggregate(db *gorm.DB, serviceID uuid.UUID) (float64, int64, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	err := db.Model(&models.Rating{}).
		Select("AVG(stars) AS avg, COUNT(*) AS count").
		Where("service_id = ?", serviceID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Avg == nil {
		return 0, 0, nil
	}
	return math.Round(*row.Avg*100) / 100, row.Count, nil
}

// recomputeServiceRating writes the rating aggregate onto the service row.
func recomputeServiceRating(tx *gorm.DB, serviceID uuid.UUID) error {
	avg, count, err := ratingAggregate(tx, serviceID)
	if err != nil {
		return err
	}
	return tx.Model(&models.Service{}).Where("id = ?", serviceID).
		Updates(map[string]interface{}{"rating": avg, "review_count": count}).Error
}
