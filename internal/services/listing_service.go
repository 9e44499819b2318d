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

var ErrServiceNotFound = errors.New("service not found")

// ListingService manages the services providers offer.
type ListingService struct {
	db *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{db: db}
}

func (s *ListingService) base(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Category").Preload("Provider")
}

func (s *ListingService) find(q *gorm.DB) ([]dto.ServiceResponse, error) {
	var list []models.Service
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return toServiceResponses(list), nil
}

func (s *ListingService) ListActive(ctx context.Context) ([]dto.ServiceResponse, error) {
	return s.find(s.base(ctx).Where("is_active = ?", true).Order("created_at DESC"))
}

func (s *ListingService) ListAll(ctx context.Context) ([]dto.ServiceResponse, error) {
	return s.find(s.base(ctx).Order("created_at DESC"))
}

func (s *ListingService) Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	var svc models.Service
	if err := s.base(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrServiceNotFound)
	}
	resp := toServiceResponse(&svc)
	return &resp, nil
}

func (s *ListingService) ByProvider(ctx context.Context, providerID uuid.UUID) ([]dto.ServiceResponse, error) {
	return s.find(s.base(ctx).Where("provider_id = ?", providerID).Order("created_at DESC"))
}

func (s *ListingService) ByCategory(ctx context.Context, categoryID uuid.UUID) ([]dto.ServiceResponse, error) {
	return s.find(s.base(ctx).Where("category_id = ? AND is_active = ?", categoryID, true).Order("rating DESC"))
}

// Search matches active listings whose name or description contains keyword,
// optionally limited to a city.
func (s *ListingService) Search(ctx context.Context, keyword, city string) ([]dto.ServiceResponse, error) {
	q := s.base(ctx).Where("is_active = ?", true)
	if kw := strings.ToLower(strings.TrimSpace(keyword)); kw != "" {
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", likePattern(kw), likePattern(kw))
	}
	if c := strings.TrimSpace(city); c != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(c))
	}
	return s.find(q.Order("rating DESC"))
}

func (s *ListingService) ByLocation(ctx context.Context, city, state string) ([]dto.ServiceResponse, error) {
	q := s.base(ctx).Where("is_active = ?", true)
	q = equalFold(q, "city", city)
	q = equalFold(q, "state", state)
	return s.find(q.Order("rating DESC"))
}

func (s *ListingService) ByCity(ctx context.Context, city string) ([]dto.ServiceResponse, error) {
	return s.find(equalFold(s.base(ctx).Where("is_active = ?", true), "city", city).Order("rating DESC"))
}

// ByCategoryAndCity puts verified providers first, then higher ratings.
func (s *ListingService) ByCategoryAndCity(ctx context.Context, categoryID uuid.UUID, city string) ([]dto.ServiceResponse, error) {
	q := s.verifiedFirst(ctx).Where("services.category_id = ?", categoryID)
	return s.find(equalFold(q, "services.city", city))
}

// ByNameAndCity puts verified providers first, then higher ratings.
func (s *ListingService) ByNameAndCity(ctx context.Context, name, city string) ([]dto.ServiceResponse, error) {
	q := s.verifiedFirst(ctx)
	if n := strings.ToLower(strings.TrimSpace(name)); n != "" {
		q = q.Where("LOWER(services.name) LIKE ? ESCAPE '\\'", likePattern(n))
	}
	return s.find(equalFold(q, "services.city", city))
}

func (s *ListingService) ByLocationAndCategory(ctx context.Context, city, state string, categoryID uuid.UUID) ([]dto.ServiceResponse, error) {
	q := s.base(ctx).Where("is_active = ? AND category_id = ?", true, categoryID)
	q = equalFold(q, "city", city)
	q = equalFold(q, "state", state)
	return s.find(q.Order("rating DESC"))
}

func (s *ListingService) verifiedFirst(ctx context.Context) *gorm.DB {
	return s.base(ctx).
		Joins("JOIN providers ON providers.id = services.provider_id").
		Where("services.is_active = ?", true).
		Order("providers.verified DESC").
		Order("services.rating DESC")
}

func (s *ListingService) Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	db := s.db.WithContext(ctx)

	var provider models.Provider
	if err := db.First(&provider, "id = ?", req.ProviderID).Error; err != nil {
		return nil, notFound(err, ErrProviderNotFound)
	}
	if req.CategoryID != nil {
		if err := db.First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
			return nil, notFound(err, ErrCategoryNotFound)
		}
	}

	svc := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ProviderID:  provider.ID,
		Price:       req.Price,
		City:        strings.TrimSpace(req.City),
		State:       strings.TrimSpace(req.State),
		Pincode:     req.Pincode,
		IsActive:    true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if svc.City == "" {
		svc.City = provider.City
	}
	if svc.State == "" {
		svc.State = provider.State
	}
	if svc.Pincode == 0 {
		svc.Pincode = provider.Pincode
	}

	if err := db.Create(&svc).Error; err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return s.Get(ctx, svc.ID)
}

func (s *ListingService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	db := s.db.WithContext(ctx)
	if err := db.First(&models.Service{}, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrServiceNotFound)
	}

	fields := map[string]interface{}{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CategoryID != nil {
		if err := db.First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
			return nil, notFound(err, ErrCategoryNotFound)
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.City != nil && strings.TrimSpace(*req.City) != "" {
		fields["city"] = strings.TrimSpace(*req.City)
	}
	if req.State != nil && strings.TrimSpace(*req.State) != "" {
		fields["state"] = strings.TrimSpace(*req.State)
	}
	if req.Pincode != nil && *req.Pincode > 0 {
		fields["pincode"] = *req.Pincode
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if len(fields) > 0 {
		if err := db.Model(&models.Service{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update service: %w", err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the listing with its bookings and ratings.
func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.First(&svc, "id = ?", id).Error; err != nil {
			return notFound(err, ErrServiceNotFound)
		}
		var bookings []models.Booking
		if err := tx.Where("service_id = ?", id).Find(&bookings).Error; err != nil {
			return err
		}
		if err := deleteBookings(tx, bookings); err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&svc).Error
	})
}

// equalFold adds a case-insensitive equality filter when value is not blank.
func equalFold(q *gorm.DB, column, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" {
		return q
	}
	return q.Where("LOWER("+column+") = ?", strings.ToLower(value))
}
