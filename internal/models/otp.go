package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OTPTypeRegistration  = "REGISTRATION"
	OTPTypePasswordReset = "PASSWORD_RESET"
)

type OTP struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string     `gorm:"size:255;not null;index:idx_otps_email_type" json:"email"`
	Code       string     `gorm:"column:otp;size:6;not null" json:"-"`
	OTPType    string     `gorm:"column:otp_type;size:20;not null;index:idx_otps_email_type" json:"otpType"`
	Verified   bool       `gorm:"not null;default:false" json:"verified"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  time.Time  `gorm:"not null;index" json:"expiresAt"`
	VerifiedAt *time.Time `json:"verifiedAt"`
}

func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

func (OTP) TableName() string {
	return "otps"
}
