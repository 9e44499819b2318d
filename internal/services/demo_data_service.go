package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the login password of every seeded provider.
const DemoPassword = "password123"

type demoProvider struct {
	name, email, phone string
	address            string
	city, state        string
	pincode            int
	serviceType        string
	price              float64
}

type demoListing struct {
	name, description string
	category          string
	provider          int
	price, rating     float64
	reviews           int
}

var demoCategories = []struct{ name, description string }{
	{"Electrician", "Wiring, fittings and electrical repairs"},
	{"Plumber", "Pipes, taps and bathroom fittings"},
	{"Painter", "Interior and exterior painting"},
	{"Home Cleaning", "Deep cleaning for homes and offices"},
}

var demoProviders = []demoProvider{
	{"Raj Kumar", "raj@example.com", "9999999991", "123 Main Street", "Hyderabad", "Telangana", 500001, "Electrician", 500},
	{"Arjun Singh", "arjun@example.com", "9999999992", "456 Second Lane", "Hyderabad", "Telangana", 500002, "Plumber", 400},
	{"Vikram Patel", "vikram@example.com", "9999999993", "789 Third Road", "Mumbai", "Maharashtra", 400001, "Painter", 300},
}

var demoListings = []demoListing{
	{"Electrical Wiring Installation", "Complete wiring for new homes and renovations", "Electrician", 0, 500, 4.5, 25},
	{"Pipe Leakage Repair", "Fast fixes for leaking pipes and taps", "Plumber", 1, 400, 4.8, 32},
	{"House Painting", "Interior and exterior painting with premium finishes", "Painter", 2, 300, 4.6, 18},
	{"Circuit Breaker Replacement", "Safe replacement of faulty breakers and fuse boxes", "Electrician", 0, 600, 4.9, 42},
	{"Bathroom Renovation", "Full bathroom plumbing and fitting makeover", "Plumber", 1, 5000, 4.7, 15},
	{"Home Cleaning Service", "Deep cleaning of kitchens, bathrooms and living areas", "Home Cleaning", 2, 800, 4.4, 28},
}

// DemoDataService seeds a small catalogue for local setups and demos.
type DemoDataService struct {
	db *gorm.DB
}

func NewDemoDataService(db *gorm.DB) *DemoDataService {
	return &DemoDataService{db: db}
}

// Seed creates the demo categories, providers and listings that do not exist
// yet. Running it again creates nothing.
func (s *DemoDataService) Seed(ctx context.Context) (*dto.DemoDataResponse, error) {
	resp := &dto.DemoDataResponse{Log: []string{}}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]*models.Category, len(demoCategories))
		for _, dc := range demoCategories {
			c, created, err := demoCategory(tx, dc.name, dc.description)
			if err != nil {
				return err
			}
			categories[dc.name] = c
			if created {
				resp.CategoriesCreated++
				resp.Log = append(resp.Log, "Created category: "+c.Name)
			} else {
				resp.Log = append(resp.Log, "Category exists: "+c.Name)
			}
		}

		providers := make([]*models.Provider, len(demoProviders))
		for i, dp := range demoProviders {
			p, created, err := demoAccount(tx, dp, string(hash))
			if err != nil {
				return err
			}
			providers[i] = p
			if created {
				resp.ProvidersCreated++
				resp.Log = append(resp.Log, "Created provider: "+p.Name)
			} else {
				resp.Log = append(resp.Log, "Provider exists: "+p.Name)
			}
		}

		for _, dl := range demoListings {
			p := providers[dl.provider]
			var n int64
			if err := tx.Model(&models.Service{}).
				Where("LOWER(name) = ? AND provider_id = ?", strings.ToLower(dl.name), p.ID).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				resp.Log = append(resp.Log, "Service exists: "+dl.name)
				continue
			}
			svc := &models.Service{
				Name:        dl.name,
				Description: dl.description,
				CategoryID:  &categories[dl.category].ID,
				ProviderID:  p.ID,
				Price:       dl.price,
				City:        p.City,
				State:       p.State,
				Pincode:     p.Pincode,
				Rating:      dl.rating,
				ReviewCount: dl.reviews,
				IsActive:    true,
			}
			if err := tx.Create(svc).Error; err != nil {
				return fmt.Errorf("failed to create service %q: %w", dl.name, err)
			}
			resp.ServicesCreated++
			resp.Log = append(resp.Log, "Created service: "+dl.name)
		}

		return tx.Model(&models.Service{}).Count(&resp.TotalServicesInDB).Error
	})
	if err != nil {
		return nil, err
	}

	resp.Success = true
	resp.Message = "Demo data initialization completed"
	slog.Info("demo data seeded",
		"categories", resp.CategoriesCreated,
		"providers", resp.ProvidersCreated,
		"services", resp.ServicesCreated,
	)
	return resp, nil
}

func demoCategory(tx *gorm.DB, name, description string) (*models.Category, bool, error) {
	var c models.Category
	err := tx.First(&c, "LOWER(name) = ?", strings.ToLower(name)).Error
	if err == nil {
		return &c, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	c = models.Category{Name: name, Description: description}
	if err := tx.Create(&c).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	return &c, true, nil
}

func demoAccount(tx *gorm.DB, dp demoProvider, hash string) (*models.Provider, bool, error) {
	var p models.Provider
	err := tx.First(&p, "email = ?", dp.email).Error
	if err == nil {
		return &p, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	p = models.Provider{
		Name:          dp.name,
		Email:         dp.email,
		Password:      hash,
		Phone:         dp.phone,
		AddressLine:   dp.address,
		City:          dp.city,
		State:         dp.state,
		Pincode:       dp.pincode,
		Country:       "India",
		ServiceType:   dp.serviceType,
		Price:         dp.price,
		Verified:      true,
		EmailVerified: true,
	}
	if err := tx.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, fmt.Errorf("%w: demo provider %s", ErrPhoneTaken, dp.phone)
		}
		return nil, false, fmt.Errorf("failed to create provider %q: %w", dp.name, err)
	}
	return &p, true, nil
}
