package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidOTP = errors.New("invalid or expired OTP")

type OTPService struct {
	db     *gorm.DB
	email  *EmailService
	expiry time.Duration
}

func NewOTPService(db *gorm.DB, email *EmailService, expiry time.Duration) *OTPService {
	if expiry <= 0 {
		expiry = 10 * time.Minute
	}
	return &OTPService{db: db, email: email, expiry: expiry}
}

// Issue replaces any outstanding code for (email, otpType) and mails a new one.
func (s *OTPService) Issue(ctx context.Context, email, otpType string) error {
	email = normalizeEmail(email)
	code, err := generateOTP()
	if err != nil {
		return err
	}

	record := models.OTP{
		Email:     email,
		Code:      code,
		OTPType:   otpType,
		ExpiresAt: time.Now().Add(s.expiry),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ? AND otp_type = ?", email, otpType).Delete(&models.OTP{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	metrics.OTPIssuedTotal.WithLabelValues(otpType).Inc()
	return s.email.SendOTP(ctx, email, code, otpType)
}

// Verify consumes a matching unexpired code. A code verifies at most once.
func (s *OTPService) Verify(ctx context.Context, email, code, otpType string) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.OTP{}).
		Where("email = ? AND otp = ? AND otp_type = ? AND verified = ? AND expires_at > ?",
			normalizeEmail(email), strings.TrimSpace(code), otpType, false, now).
		Updates(map[string]interface{}{"verified": true, "verified_at": now})
	if res.Error != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to verify OTP: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		metrics.OTPVerificationsTotal.WithLabelValues("rejected").Inc()
		return ErrInvalidOTP
	}
	metrics.OTPVerificationsTotal.WithLabelValues("accepted").Inc()
	return nil
}

// DeleteExpired removes codes whose expiry has passed.
func (s *OTPService) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.OTP{})
	return res.RowsAffected, res.Error
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
