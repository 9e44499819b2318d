package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CustomerService struct {
	db       *gorm.DB
	uploader storage.ImageUploader
}

func NewCustomerService(db *gorm.DB, uploader storage.ImageUploader) *CustomerService {
	return &CustomerService{db: db, uploader: uploader}
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

func (s *CustomerService) ByEmail(ctx context.Context, email string) (*dto.CustomerResponse, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, "email = ?", normalizeEmail(email)).Error; err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	resp := toCustomerResponse(&c)
	return &resp, nil
}

func (s *CustomerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	var list []models.Customer
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for i := range list {
		out = append(out, toCustomerResponse(&list[i]))
	}
	return out, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.load(db, id); err != nil {
		return nil, err
	}

	fields := accountUpdates(&req.UpdateAccountRequest)
	if err := checkUnique(db, stringField(fields, "email"), stringField(fields, "phone"), id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := db.Model(&models.Customer{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
	}
	return s.Get(ctx, id)
}

func (s *CustomerService) UpdatePassword(ctx context.Context, id uuid.UUID, req *dto.UpdatePasswordRequest) error {
	db := s.db.WithContext(ctx)
	c, err := s.load(db, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return db.Model(c).Update("password", string(hash)).Error
}

func (s *CustomerService) UploadProfileImage(ctx context.Context, id uuid.UUID, data []byte) (*dto.CustomerResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.load(db, id); err != nil {
		return nil, err
	}
	fields, err := storeProfileImage(ctx, s.uploader, "customer", id, data)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&models.Customer{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to save profile image: %w", err)
	}
	return s.Get(ctx, id)
}

// ImageCheck reports whether the customer has a profile image stored inline
// or at a remote URL.
func (s *CustomerService) ImageCheck(ctx context.Context, id uuid.UUID) (*dto.ImageCheckResponse, error) {
	c, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return &dto.ImageCheckResponse{
		CustomerID:     &c.ID,
		Name:           c.Name,
		HasImage:       len(c.ProfileImage) > 0 || c.ProfileImageURL != "",
		ImageSizeBytes: len(c.ProfileImage),
		ImageURL:       c.ProfileImageURL,
	}, nil
}

// Delete removes the customer with their bookings, ratings and sessions.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.load(tx, id)
		if err != nil {
			return err
		}

		var bookings []models.Booking
		if err := tx.Where("customer_id = ?", id).Find(&bookings).Error; err != nil {
			return err
		}
		if err := deleteBookings(tx, bookings); err != nil {
			return err
		}

		var serviceIDs []uuid.UUID
		if err := tx.Model(&models.Rating{}).Where("customer_id = ?", id).Distinct().Pluck("service_id", &serviceIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		for _, sid := range serviceIDs {
			if err := recomputeServiceRating(tx, sid); err != nil {
				return err
			}
		}

		if err := tx.Where("account_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(c).Error
	})
}

func (s *CustomerService) load(db *gorm.DB, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	return &c, nil
}
