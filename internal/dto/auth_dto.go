package dto

import "github.com/google/uuid"

// AccountFields are the registration fields shared by customers and providers.
type AccountFields struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Phone       string   `json:"phone" validate:"required,max=20"`
	DoorNo      string   `json:"doorNo" validate:"required"`
	AddressLine string   `json:"addressLine" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required"`
	Pincode     int      `json:"pincode" validate:"required"`
	Country     string   `json:"country"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type RegisterCustomerRequest struct {
	AccountFields
}

type RegisterProviderRequest struct {
	AccountFields
	ServiceType string  `json:"serviceType" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ResendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	OTPType string `json:"otpType" validate:"required,oneof=REGISTRATION PASSWORD_RESET"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	Success       bool       `json:"success"`
	Message       string     `json:"message"`
	UserID        *uuid.UUID `json:"userId,omitempty"`
	Email         string     `json:"email,omitempty"`
	Name          string     `json:"name,omitempty"`
	Role          string     `json:"role,omitempty"`
	EmailVerified bool       `json:"emailVerified"`
	AccessToken   string     `json:"accessToken,omitempty"`
	RefreshToken  string     `json:"refreshToken,omitempty"`
}
