package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidBookingDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidBookingTime  = errors.New("time must be in HH:MM or HH:MM:SS format")
	ErrInvalidStatus       = errors.New("unknown booking status")
	ErrInvalidTransition   = errors.New("invalid booking status change")
	ErrServiceNotOffered   = errors.New("service is not offered by this provider")
	ErrInvalidCancelledBy  = errors.New("cancelledBy must be PROVIDER or CUSTOMER")
	ErrBookingStateChanged = errors.New("booking was modified concurrently, retry")
	ErrSelfBooking         = errors.New("a provider cannot book their own service")
)

const (
	CancelledByProvider = "PROVIDER"
	CancelledByCustomer = "CUSTOMER"
)

type BookingService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewBookingService(db *gorm.DB, notifications *NotificationService) *BookingService {
	return &BookingService{db: db, notifications: notifications}
}

func (s *BookingService) Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if (req.CustomerID == nil) == (req.ProviderBookerID == nil) {
		return nil, models.ErrInvalidBooker
	}

	date, clock, scheduled, err := parseSchedule(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var provider models.Provider
	if err := db.First(&provider, "id = ?", req.ProviderID).Error; err != nil {
		return nil, notFound(err, ErrProviderNotFound)
	}
	var service models.Service
	if err := db.First(&service, "id = ?", req.ServiceID).Error; err != nil {
		return nil, notFound(err, ErrServiceNotFound)
	}
	if service.ProviderID != provider.ID {
		return nil, ErrServiceNotOffered
	}

	booking := models.Booking{
		CustomerID:       req.CustomerID,
		ProviderBookerID: req.ProviderBookerID,
		ProviderID:       provider.ID,
		ServiceID:        service.ID,
		ServiceName:      service.Name,
		BookingDate:      date,
		BookingTime:      clock,
		ScheduledDate:    &scheduled,
		Status:           models.StatusPending,
		Notes:            strings.TrimSpace(req.Notes),
		TotalAmount:      req.TotalAmount,
	}
	if booking.TotalAmount <= 0 {
		booking.TotalAmount = service.Price
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := db.First(&customer, "id = ?", *req.CustomerID).Error; err != nil {
			return nil, notFound(err, ErrCustomerNotFound)
		}
		booking.Customer = &customer
	} else {
		if *req.ProviderBookerID == provider.ID {
			return nil, ErrSelfBooking
		}
		var booker models.Provider
		if err := db.First(&booker, "id = ?", *req.ProviderBookerID).Error; err != nil {
			return nil, notFound(err, ErrProviderNotFound)
		}
		booking.ProviderBooker = &booker
	}
	booking.Provider = &provider

	if err := db.Omit("Customer", "ProviderBooker", "Provider", "Service").Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	metrics.BookingsCreatedTotal.Inc()

	s.notifications.NotifyBookingCreated(ctx, provider.Email, booking.BookerName(), booking.ID, booking.ServiceName)
	s.notifications.NotifyCustomerBookingRequested(ctx, booking.BookerEmail(), provider.Name, booking.ID,
		booking.ServiceName, booking.BookingDate, booking.BookingTime)

	resp := toBookingResponse(&booking)
	return &resp, nil
}

func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	b, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := toBookingResponse(b)
	return &resp, nil
}

func (s *BookingService) List(ctx context.Context) ([]dto.BookingResponse, error) {
	return s.find(ctx, "")
}

func (s *BookingService) ByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.BookingResponse, error) {
	return s.find(ctx, "customer_id = ?", customerID)
}

// ByProvider returns bookings the provider received.
func (s *BookingService) ByProvider(ctx context.Context, providerID uuid.UUID) ([]dto.BookingResponse, error) {
	return s.find(ctx, "provider_id = ?", providerID)
}

// ByProviderBooker returns bookings the provider made for another provider's service.
func (s *BookingService) ByProviderBooker(ctx context.Context, providerID uuid.UUID) ([]dto.BookingResponse, error) {
	return s.find(ctx, "provider_booker_id = ?", providerID)
}

func (s *BookingService) ByService(ctx context.Context, serviceID uuid.UUID) ([]dto.BookingResponse, error) {
	return s.find(ctx, "service_id = ?", serviceID)
}

func (s *BookingService) ByStatus(ctx context.Context, status string) ([]dto.BookingResponse, error) {
	st, ok := models.ParseBookingStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	return s.find(ctx, "status = ?", st)
}

func (s *BookingService) find(ctx context.Context, query string, args ...interface{}) ([]dto.BookingResponse, error) {
	q := withParties(s.db.WithContext(ctx))
	if query != "" {
		q = q.Where(query, args...)
	}
	var list []models.Booking
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return toBookingResponses(list), nil
}

// Update applies a partial update. A status change goes through the same
// transition rules and side effects as Cancel and Complete.
func (s *BookingService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	db := s.db.WithContext(ctx)
	b, err := s.load(db, id)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, b.Status)
	}

	fields := map[string]interface{}{}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.BookingDate != nil || req.BookingTime != nil {
		date, clock := b.BookingDate, b.BookingTime
		if req.BookingDate != nil {
			date = *req.BookingDate
		}
		if req.BookingTime != nil {
			clock = *req.BookingTime
		}
		date, clock, scheduled, err := parseSchedule(date, clock)
		if err != nil {
			return nil, err
		}
		fields["booking_date"] = date
		fields["booking_time"] = clock
		fields["scheduled_date"] = scheduled
	}

	target := b.Status
	if req.Status != nil {
		st, ok := models.ParseBookingStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		target = st
	}

	if target == b.Status {
		if len(fields) > 0 {
			if err := s.apply(db, b, fields); err != nil {
				return nil, err
			}
		}
		return s.Get(ctx, id)
	}

	return s.transition(ctx, b, target, req.CancelledBy, fields)
}

// Cancel moves the booking to Cancelled and notifies the party that did not
// cancel. An empty cancelledBy means the booker cancelled.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID, cancelledBy string) (*dto.BookingResponse, error) {
	b, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, models.StatusCancelled, cancelledBy, nil)
}

func (s *BookingService) Complete(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	b, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, models.StatusCompleted, "", nil)
}

func (s *BookingService) transition(ctx context.Context, b *models.Booking, target models.BookingStatus, cancelledBy string, fields map[string]interface{}) (*dto.BookingResponse, error) {
	if err := models.CanTransition(b.Status, target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	by := strings.ToUpper(strings.TrimSpace(cancelledBy))
	if by == "" {
		by = CancelledByCustomer
	}
	if target == models.StatusCancelled && by != CancelledByProvider && by != CancelledByCustomer {
		return nil, ErrInvalidCancelledBy
	}

	if fields == nil {
		fields = map[string]interface{}{}
	}
	now := time.Now()
	fields["status"] = target
	switch target {
	case models.StatusCompleted:
		fields["completed_at"] = now
	case models.StatusCancelled:
		fields["cancelled_at"] = now
	}

	if err := s.apply(s.db.WithContext(ctx), b, fields); err != nil {
		return nil, err
	}
	metrics.BookingTransitionsTotal.WithLabelValues(string(target)).Inc()

	s.notifyTransition(ctx, b, target, by)
	return s.Get(ctx, b.ID)
}

// apply writes fields only if the booking still has the status it was read with.
func (s *BookingService) apply(db *gorm.DB, b *models.Booking, fields map[string]interface{}) error {
	res := db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, b.Status).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookingStateChanged
	}
	return nil
}

func (s *BookingService) notifyTransition(ctx context.Context, b *models.Booking, target models.BookingStatus, cancelledBy string) {
	providerName := ""
	providerEmail := ""
	if b.Provider != nil {
		providerName = b.Provider.Name
		providerEmail = b.Provider.Email
	}

	switch target {
	case models.StatusAccepted:
		s.notifications.NotifyBookingAccepted(ctx, b.BookerEmail(), providerName, b.ID, b.ServiceName, b.BookingDate, b.BookingTime)
	case models.StatusConfirmed:
		s.notifications.NotifyBookingConfirmed(ctx, b.BookerEmail(), providerName, b.ID, b.ServiceName)
	case models.StatusCompleted:
		s.notifications.NotifyBookingCompleted(ctx, b.BookerEmail(), providerName, b.ID, b.ServiceName)
	case models.StatusCancelled:
		if cancelledBy == CancelledByProvider {
			s.notifications.NotifyBookingCancelled(ctx, b.BookerEmail(), models.RecipientCustomer, providerName, b.ID, b.ServiceName)
		} else {
			s.notifications.NotifyBookingCancelled(ctx, providerEmail, models.RecipientProvider, b.BookerName(), b.ID, b.ServiceName)
		}
	}
}

// Delete removes the booking together with its rating and refreshes the
// service aggregate.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return notFound(err, ErrBookingNotFound)
		}
		return deleteBookings(tx, []models.Booking{b})
	})
}

func (s *BookingService) load(db *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	if err := withParties(db).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return &b, nil
}

func withParties(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer").Preload("ProviderBooker").Preload("Provider")
}

// deleteBookings removes bookings and their ratings, then recomputes the
// aggregate of every service that lost a rating. Must run inside tx.
func deleteBookings(tx *gorm.DB, bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	var serviceIDs []uuid.UUID
	if err := tx.Model(&models.Rating{}).Where("booking_id IN ?", ids).Distinct().Pluck("service_id", &serviceIDs).Error; err != nil {
		return err
	}
	if err := tx.Where("booking_id IN ?", ids).Delete(&models.Rating{}).Error; err != nil {
		return err
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Booking{}).Error; err != nil {
		return err
	}
	for _, sid := range serviceIDs {
		if err := recomputeServiceRating(tx, sid); err != nil {
			return err
		}
	}
	return nil
}

func parseSchedule(date, clock string) (string, string, time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", "", time.Time{}, ErrInvalidBookingDate
	}

	var t time.Time
	if t, err = time.Parse("15:04:05", clock); err != nil {
		if t, err = time.Parse("15:04", clock); err != nil {
			return "", "", time.Time{}, ErrInvalidBookingTime
		}
	}

	scheduled := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	return d.Format("2006-01-02"), t.Format("15:04"), scheduled, nil
}

// notFound maps gorm.ErrRecordNotFound to sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
