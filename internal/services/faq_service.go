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

var ErrFAQNotFound = errors.New("faq not found")

type FAQService struct {
	db *gorm.DB
}

func NewFAQService(db *gorm.DB) *FAQService {
	return &FAQService{db: db}
}

func (s *FAQService) List(ctx context.Context) ([]models.FAQ, error) {
	return s.find(s.db.WithContext(ctx))
}

func (s *FAQService) Active(ctx context.Context) ([]models.FAQ, error) {
	return s.find(s.db.WithContext(ctx).Where("is_active = ?", true))
}

func (s *FAQService) ByCategory(ctx context.Context, category string) ([]models.FAQ, error) {
	return s.find(s.db.WithContext(ctx).
		Where("is_active = ? AND LOWER(category) = ?", true, strings.ToLower(strings.TrimSpace(category))))
}

func (s *FAQService) find(q *gorm.DB) ([]models.FAQ, error) {
	var list []models.FAQ
	err := q.Order("display_order ASC").Order("created_at ASC").Find(&list).Error
	return list, err
}

func (s *FAQService) Get(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	var f models.FAQ
	if err := s.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrFAQNotFound)
	}
	return &f, nil
}

func (s *FAQService) Create(ctx context.Context, req *dto.FAQRequest) (*models.FAQ, error) {
	f := models.FAQ{
		Question:     strings.TrimSpace(req.Question),
		Answer:       req.Answer,
		Category:     strings.TrimSpace(req.Category),
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := s.db.WithContext(ctx).Create(&f).Error; err != nil {
		return nil, fmt.Errorf("failed to create faq: %w", err)
	}
	return &f, nil
}

func (s *FAQService) Update(ctx context.Context, id uuid.UUID, req *dto.FAQRequest) (*models.FAQ, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Question = strings.TrimSpace(req.Question)
	f.Answer = req.Answer
	f.Category = strings.TrimSpace(req.Category)
	f.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := s.db.WithContext(ctx).Save(f).Error; err != nil {
		return nil, fmt.Errorf("failed to update faq: %w", err)
	}
	return f, nil
}

func (s *FAQService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.FAQ, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(f).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	f.IsActive = active
	return f, nil
}

func (s *FAQService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.FAQ{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFAQNotFound
	}
	return nil
}
