package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact not found")

const contactPreviewLength = 50

type ContactService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewContactService(db *gorm.DB, notifications *NotificationService) *ContactService {
	return &ContactService{db: db, notifications: notifications}
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.find(s.db.WithContext(ctx))
}

func (s *ContactService) ByResolved(ctx context.Context, resolved bool) ([]models.Contact, error) {
	return s.find(s.db.WithContext(ctx).Where("is_resolved = ?", resolved))
}

func (s *ContactService) ByEmail(ctx context.Context, email string) ([]models.Contact, error) {
	return s.find(s.db.WithContext(ctx).Where("LOWER(email) = ?", normalizeEmail(email)))
}

func (s *ContactService) find(q *gorm.DB) ([]models.Contact, error) {
	var list []models.Contact
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var c models.Contact
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrContactNotFound)
	}
	return &c, nil
}

// Create stores a contact form submission and tells the admin about it.
func (s *ContactService) Create(ctx context.Context, req *dto.ContactRequest) (*models.Contact, error) {
	c := models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeEmail(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	preview := c.Message
	if r := []rune(preview); len(r) > contactPreviewLength {
		preview = string(r[:contactPreviewLength]) + "..."
	}
	s.notifications.NotifyAdmin(ctx,
		"New Contact Form Submission",
		fmt.Sprintf("New support request from '%s' (%s): %s", c.Name, c.Email, preview),
		"CONTACT_FORM_SUBMITTED", c.Name, models.PriorityNormal, "/admin-contacts")

	return &c, nil
}

func (s *ContactService) Update(ctx context.Context, id uuid.UUID, req *dto.ContactRequest) (*models.Contact, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Email = normalizeEmail(req.Email)
	c.Phone = strings.TrimSpace(req.Phone)
	c.Subject = strings.TrimSpace(req.Subject)
	c.Message = req.Message
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return c, nil
}

func (s *ContactService) Resolve(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(c).Update("is_resolved", true).Error; err != nil {
		return nil, err
	}
	c.IsResolved = true
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}
