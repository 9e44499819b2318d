package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrPhoneTaken       = errors.New("phone number already registered")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProviderNotFound = errors.New("provider not found")
	ErrEmptyImage       = errors.New("image is empty")
)

// emailInUse checks every account table, skipping the row with id except.
func emailInUse(db *gorm.DB, email string, except uuid.UUID) (bool, error) {
	for _, m := range []interface{}{&models.Customer{}, &models.Provider{}, &models.Admin{}} {
		var n int64
		if err := db.Model(m).Where("LOWER(email) = ? AND id <> ?", normalizeEmail(email), except).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func phoneInUse(db *gorm.DB, phone string, except uuid.UUID) (bool, error) {
	for _, m := range []interface{}{&models.Customer{}, &models.Provider{}} {
		var n int64
		if err := db.Model(m).Where("phone = ? AND id <> ?", strings.TrimSpace(phone), except).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func checkUnique(db *gorm.DB, email, phone string, except uuid.UUID) error {
	if email != "" {
		taken, err := emailInUse(db, email, except)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
	}
	if phone != "" {
		taken, err := phoneInUse(db, phone, except)
		if err != nil {
			return err
		}
		if taken {
			return ErrPhoneTaken
		}
	}
	return nil
}

// accountUpdates turns a partial update into column values. Blank strings are
// ignored so a client cannot clear a required field by accident.
func accountUpdates(req *dto.UpdateAccountRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			fields[col] = strings.TrimSpace(*v)
		}
	}
	set("name", req.Name)
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		fields["email"] = normalizeEmail(*req.Email)
	}
	set("phone", req.Phone)
	set("door_no", req.DoorNo)
	set("address_line", req.AddressLine)
	set("city", req.City)
	set("state", req.State)
	set("country", req.Country)
	if req.Pincode != nil && *req.Pincode > 0 {
		fields["pincode"] = *req.Pincode
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	return fields
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// storeProfileImage uploads data when an uploader is configured and otherwise
// keeps the bytes on the row.
func storeProfileImage(ctx context.Context, uploader storage.ImageUploader, kind string, id uuid.UUID, data []byte) (map[string]interface{}, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if uploader == nil {
		return map[string]interface{}{"profile_image": data, "profile_image_url": ""}, nil
	}
	url, err := uploader.UploadImage(ctx, data, fmt.Sprintf("%s-%s", kind, id))
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile image: %w", err)
	}
	return map[string]interface{}{"profile_image": nil, "profile_image_url": url}, nil
}
