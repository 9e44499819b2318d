package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidNotification  = errors.New("recipientEmail, title and type are required")
)

const (
	maxMessageLength = 1000
	pushTimeout      = 2 * time.Second
)

// Pusher delivers a payload to every live connection of a user.
type Pusher interface {
	Push(ctx context.Context, email string, payload interface{}) error
}

type NotificationService struct {
	db         *gorm.DB
	pusher     Pusher
	adminEmail string
}

func NewNotificationService(db *gorm.DB, pusher Pusher, adminEmail string) *NotificationService {
	return &NotificationService{db: db, pusher: pusher, adminEmail: normalizeEmail(adminEmail)}
}

// Create persists the notification and then pushes it. The stored row is the
// durable record; a failed push is only logged.
func (s *NotificationService) Create(ctx context.Context, req *dto.NotificationRequest) (*models.Notification, error) {
	n := models.Notification{
		RecipientEmail:    normalizeEmail(req.RecipientEmail),
		RecipientRole:     req.RecipientRole,
		Title:             req.Title,
		Message:           truncateRunes(req.Message, maxMessageLength),
		Type:              req.Type,
		RelatedEntityID:   req.RelatedEntityID,
		RelatedEntityType: req.RelatedEntityType,
		ActionURL:         req.ActionURL,
		SenderName:        req.SenderName,
		Priority:          strings.ToUpper(req.Priority),
	}
	if n.RecipientEmail == "" || n.Title == "" || n.Type == "" {
		return nil, ErrInvalidNotification
	}

	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	metrics.NotificationsTotal.WithLabelValues(n.Type).Inc()

	s.push(ctx, &n)
	return &n, nil
}

func (s *NotificationService) push(ctx context.Context, n *models.Notification) {
	if s.pusher == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
	defer cancel()
	if err := s.pusher.Push(pctx, n.RecipientEmail, n); err != nil {
		metrics.NotificationPushTotal.WithLabelValues("failed").Inc()
		slog.Warn("notification push failed", "recipient", n.RecipientEmail, "notification_id", n.ID, "error", err)
	}
}

func (s *NotificationService) ListForUser(ctx context.Context, email string) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_email = ?", normalizeEmail(email)).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *NotificationService) Unread(ctx context.Context, email string) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_email = ? AND is_read = ?", normalizeEmail(email), false).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *NotificationService) UnreadCount(ctx context.Context, email string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_email = ? AND is_read = ?", normalizeEmail(email), false).
		Count(&count).Error
	return count, err
}

// Recent returns notifications created in the last days days.
func (s *NotificationService) Recent(ctx context.Context, email string, days int) ([]models.Notification, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	var out []models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_email = ? AND created_at >= ?", normalizeEmail(email), since).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if n.IsRead {
		return &n, nil
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&n).Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	n.IsRead = true
	n.ReadAt = &now
	return &n, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, email string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_email = ? AND is_read = ?", normalizeEmail(email), false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// CleanupRead deletes read notifications older than daysOld days.
func (s *NotificationService) CleanupRead(ctx context.Context, daysOld int) (int64, error) {
	if daysOld <= 0 {
		daysOld = 30
	}
	cutoff := time.Now().AddDate(0, 0, -daysOld)
	res := s.db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

// notify is used by the domain helpers below. Callers have already committed
// their own change, so failures are logged and not returned.
func (s *NotificationService) notify(ctx context.Context, req dto.NotificationRequest) {
	if req.RecipientEmail == "" {
		return
	}
	if _, err := s.Create(ctx, &req); err != nil {
		slog.Error("failed to create notification", "type", req.Type, "recipient", req.RecipientEmail, "error", err)
	}
}

func (s *NotificationService) NotifyBookingCreated(ctx context.Context, providerEmail, bookerName string, bookingID uuid.UUID, serviceName string) {
	s.notify(ctx, dto.NotificationRequest{
		RecipientEmail:    providerEmail,
		RecipientRole:     models.RecipientProvider,
		Title:             "New Booking Request",
		Message:           fmt.Sprintf("%s has booked your service: %s", bookerName, serviceName),
		Type:              "BOOKING_CREATED",
		RelatedEntityID:   &bookingID,
		RelatedEntityType: "BOOKING",
		ActionURL:         "/provider-bookings",
		SenderName:        bookerName,
		Priority:          models.PriorityHigh,
	})
}

func (s *NotificationService) NotifyCustomerBookingRequested(ctx context.Context, bookerEmail, providerName string, bookingID uuid.UUID, serviceName, date, clock string) {
	s.notify(ctx, dto.NotificationRequest{
		RecipientEmail: bookerEmail,
		RecipientRole:  models.RecipientCustomer,
		Title:          "Booking Request Received",
		Message: fmt.Sprintf("Your booking request for %s with %s on %s at %s has been submitted successfully",
			serviceName, providerName, date, clock),
		Type:              "BOOKING_CREATED",
		RelatedEntityID:   &bookingID,
		RelatedEntityType: "BOOKING",
		ActionURL:         "/customer-bookings",
		SenderName:        providerName,
		Priority:          models.PriorityHigh,
	})
}

func (s *NotificationService) NotifyBookingAccepted(ctx context.Context, bookerEmail, providerName string, bookingID uuid.UUID, serviceName, date, clock string) {
	s.notify(ctx, dto.NotificationRequest{
		RecipientEmail:    bookerEmail,
		RecipientRole:     models.RecipientCustomer,
		Title:             "Booking Accepted! 🎉",
		Message:           fmt.Sprintf("%s has accepted your booking for %s on %s at %s", providerName, serviceName, date, clock),
		Type:              "BOOKING_ACCEPTED",
		RelatedEntityID:   &bookingID,
		RelatedEntityType: "BOOKING",
		ActionURL:         "/customer-bookings",
		SenderName:        providerName,
		Priority:          models.PriorityHigh,
	})
}

func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, bookerEmail, providerName string, bookingID uuid.UUID, serviceName string) {
	s.notify(ctx, dto.NotificationRequest{
		RecipientEmail:    bookerEmail,
		RecipientRole:     models.RecipientCustomer,
		Title:             "Booking Confirmed",
		Message:           fmt.Sprintf("Your booking for %s with %s has been confirmed", serviceName, providerName),
		Type:              "BOOKING_CONFIRMED",
		RelatedEntityID:   &bookingID,
		RelatedEntityType: "BOOKING",
		ActionURL:         "/customer-bookings",
		SenderName:        providerName,
		Priority:          models.PriorityHigh,
	})
}

// NotifyBookingCancelled tells recipient that senderName cancelled the booking.
func (s *NotificationService) NotifyBookingCancelled(ctx context.Context, recipientEmail, recipientRole, senderName string, bookingID uuid.UUID, serviceName string) {
	actionURL := "/provider-bookings"
	if recipientRole == models.RecipientCustomer {
		actionURL = "/customer-bookings"
	}
	s.notify(ctx, dto.NotificationRequest{
		RecipientEmail:    recipientEmail,
		RecipientRole:     recipientRole,
		Title:             "Booking Cancelled",
		Message:           fmt.Sprintf("%s has cancelled the booking for %s", senderName, serviceName),
		Type:              "BOOKING_CANCELLED",
		RelatedEntityID:   &bookingID,
		RelatedEntityType: "BOOKING",
		ActionURL:         actionURL,
		SenderName:        senderName,
		Priority:          models.PriorityHigh,
	})
}

func (s *NotificationService) NotifyBookingCompleted(ctx context.Context, bookerEmail, providerName string, bookingID uuid.UUID, serviceName string) {
	s.notify(ctx, dto.NotificationRequest{
		RecipientEmail:    bookerEmail,
		RecipientRole:     models.RecipientCustomer,
		Title:             "Service Completed",
		Message:           fmt.Sprintf("Your service %s with %s has been completed. Please leave a review!", serviceName, providerName),
		Type:              "BOOKING_COMPLETED",
		RelatedEntityID:   &bookingID,
		RelatedEntityType: "BOOKING",
		ActionURL:         "/customer-bookings",
		SenderName:        providerName,
		Priority:          models.PriorityNormal,
	})
}

func (s *NotificationService) NotifyReviewReceived(ctx context.Context, providerEmail, customerName string, ratingID uuid.UUID, stars int, serviceName string) {
	if stars > 5 {
		stars = 5
	}
	s.notify(ctx, dto.NotificationRequest{
		RecipientEmail: providerEmail,
		RecipientRole:  models.RecipientProvider,
		Title:          "New Review Received",
		Message: fmt.Sprintf("%s rated your service '%s' %d stars %s",
			customerName, serviceName, stars, strings.Repeat("⭐", stars)),
		Type:              "REVIEW_RECEIVED",
		RelatedEntityID:   &ratingID,
		RelatedEntityType: "REVIEW",
		ActionURL:         "/provider-profile",
		SenderName:        customerName,
		Priority:          models.PriorityNormal,
	})
}

// NotifyAdmin sends an ADMIN notification to the default admin mailbox.
func (s *NotificationService) NotifyAdmin(ctx context.Context, title, message, notifType, senderName, priority, actionURL string) {
	s.notify(ctx, dto.NotificationRequest{
		RecipientEmail: s.adminEmail,
		RecipientRole:  models.RecipientAdmin,
		Title:          title,
		Message:        message,
		Type:           notifType,
		ActionURL:      actionURL,
		SenderName:     senderName,
		Priority:       priority,
	})
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
