package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified, please verify your email first")
	ErrAccountNotFound    = errors.New("no account found with this email")
	ErrAlreadyVerified    = errors.New("email already verified")
)

type AuthService struct {
	db            *gorm.DB
	tokens        *TokenIssuer
	otp           *OTPService
	notifications *NotificationService
}

func NewAuthService(db *gorm.DB, tokens *TokenIssuer, otp *OTPService, notifications *NotificationService) *AuthService {
	return &AuthService{db: db, tokens: tokens, otp: otp, notifications: notifications}
}

func (s *AuthService) RegisterCustomer(ctx context.Context, req *dto.RegisterCustomerRequest) (*dto.AuthResponse, error) {
	f := &req.AccountFields
	hash, err := s.prepareAccount(ctx, f)
	if err != nil {
		return nil, err
	}

	c := models.Customer{
		Name:        strings.TrimSpace(f.Name),
		Email:       normalizeEmail(f.Email),
		Password:    hash,
		Phone:       strings.TrimSpace(f.Phone),
		DoorNo:      f.DoorNo,
		AddressLine: f.AddressLine,
		City:        strings.TrimSpace(f.City),
		State:       strings.TrimSpace(f.State),
		Pincode:     f.Pincode,
		Country:     f.Country,
		Latitude:    f.Latitude,
		Longitude:   f.Longitude,
		Role:        models.RoleCustomer,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, duplicateOr(err, "failed to create customer")
	}

	s.sendRegistrationOTP(ctx, c.Email)
	s.notifications.NotifyAdmin(ctx,
		"New Customer Registered",
		fmt.Sprintf("New customer '%s' (%s) has registered and needs verification.", c.Name, c.Email),
		"NEW_CUSTOMER_REGISTERED", c.Name, models.PriorityNormal, "/admin-customers")

	return registeredResponse(customerPrincipal(&c)), nil
}

func (s *AuthService) RegisterProvider(ctx context.Context, req *dto.RegisterProviderRequest) (*dto.AuthResponse, error) {
	f := &req.AccountFields
	hash, err := s.prepareAccount(ctx, f)
	if err != nil {
		return nil, err
	}

	p := models.Provider{
		Name:        strings.TrimSpace(f.Name),
		Email:       normalizeEmail(f.Email),
		Password:    hash,
		Phone:       strings.TrimSpace(f.Phone),
		DoorNo:      f.DoorNo,
		AddressLine: f.AddressLine,
		City:        strings.TrimSpace(f.City),
		State:       strings.TrimSpace(f.State),
		Pincode:     f.Pincode,
		Country:     f.Country,
		Latitude:    f.Latitude,
		Longitude:   f.Longitude,
		ServiceType: strings.TrimSpace(req.ServiceType),
		Price:       req.Price,
		Role:        models.RoleProvider,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, duplicateOr(err, "failed to create provider")
	}

	s.sendRegistrationOTP(ctx, p.Email)
	s.notifications.NotifyAdmin(ctx,
		"New Provider Registered",
		fmt.Sprintf("New provider '%s' (%s) has registered. Service: %s. Please verify.", p.Name, p.Email, p.ServiceType),
		"NEW_PROVIDER_REGISTERED", p.Name, models.PriorityHigh, "/admin-providers")

	return registeredResponse(providerPrincipal(&p)), nil
}

func (s *AuthService) prepareAccount(ctx context.Context, f *dto.AccountFields) (string, error) {
	if err := checkUnique(s.db.WithContext(ctx), f.Email, f.Phone, uuid.Nil); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// sendRegistrationOTP does not fail the registration; the user can ask for a
// new code through resend-otp.
func (s *AuthService) sendRegistrationOTP(ctx context.Context, email string) {
	if err := s.otp.Issue(ctx, email, models.OTPTypeRegistration); err != nil {
		slog.Error("failed to issue registration OTP", "email", email, "error", err)
	}
}

func registeredResponse(p *principal) *dto.AuthResponse {
	return &dto.AuthResponse{
		Success:       true,
		Message:       "Registration successful. Please check your email for the verification code.",
		UserID:        &p.ID,
		Email:         p.Email,
		Name:          p.Name,
		Role:          p.Role,
		EmailVerified: false,
	}
}

func (s *AuthService) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*dto.AuthResponse, error) {
	p, err := s.findAccount(s.db.WithContext(ctx), req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.otp.Verify(ctx, req.Email, req.OTP, models.OTPTypeRegistration); err != nil {
		return nil, err
	}

	model := accountModel(p.Kind)
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", p.ID).Update("email_verified", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}
	p.EmailVerified = true

	return &dto.AuthResponse{
		Success:       true,
		Message:       "Email verified successfully. You can now log in.",
		UserID:        &p.ID,
		Email:         p.Email,
		Name:          p.Name,
		Role:          p.Role,
		EmailVerified: true,
	}, nil
}

// Login checks customers first and then providers.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	db := s.db.WithContext(ctx)
	email := normalizeEmail(req.Email)

	var p *principal
	var hash string

	var c models.Customer
	if err := db.First(&c, "email = ?", email).Error; err == nil {
		p, hash = customerPrincipal(&c), c.Password
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		var pr models.Provider
		if err := db.First(&pr, "email = ?", email).Error; err != nil {
			return nil, ErrInvalidCredentials
		}
		p, hash = providerPrincipal(&pr), pr.Password
	} else {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !p.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	return s.tokenResponse(ctx, p, "Login successful")
}

func (s *AuthService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	if _, err := s.findAccount(s.db.WithContext(ctx), req.Email); err != nil {
		return err
	}
	return s.otp.Issue(ctx, req.Email, models.OTPTypePasswordReset)
}

// ResetPassword sets a new password and signs the account out everywhere.
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	p, err := s.findAccount(s.db.WithContext(ctx), req.Email)
	if err != nil {
		return err
	}
	if err := s.otp.Verify(ctx, req.Email, req.OTP, models.OTPTypePasswordReset); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(accountModel(p.Kind)).Where("id = ?", p.ID).Update("password", string(hash)).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return s.tokens.revokeAll(ctx, p.ID)
}

func (s *AuthService) ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error {
	p, err := s.findAccount(s.db.WithContext(ctx), req.Email)
	if err != nil {
		return err
	}
	if req.OTPType == models.OTPTypeRegistration && p.EmailVerified {
		return ErrAlreadyVerified
	}
	return s.otp.Issue(ctx, req.Email, req.OTPType)
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	stored, err := s.tokens.consume(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	p, err := loadPrincipal(s.db.WithContext(ctx), stored.AccountRole, stored.AccountID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.tokenResponse(ctx, p, "Token refreshed")
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return s.tokens.revoke(ctx, req.RefreshToken)
}

func (s *AuthService) tokenResponse(ctx context.Context, p *principal, message string) (*dto.AuthResponse, error) {
	access, refresh, err := s.tokens.issue(ctx, p)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Success:       true,
		Message:       message,
		UserID:        &p.ID,
		Email:         p.Email,
		Name:          p.Name,
		Role:          p.Role,
		EmailVerified: p.EmailVerified,
		AccessToken:   access,
		RefreshToken:  refresh,
	}, nil
}

// findAccount looks up a customer or provider by e-mail.
func (s *AuthService) findAccount(db *gorm.DB, email string) (*principal, error) {
	email = normalizeEmail(email)
	var c models.Customer
	if err := db.First(&c, "email = ?", email).Error; err == nil {
		return customerPrincipal(&c), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	var p models.Provider
	if err := db.First(&p, "email = ?", email).Error; err != nil {
		return nil, notFound(err, ErrAccountNotFound)
	}
	return providerPrincipal(&p), nil
}

func accountModel(kind string) interface{} {
	switch kind {
	case KindProvider:
		return &models.Provider{}
	case KindAdmin:
		return &models.Admin{}
	default:
		return &models.Customer{}
	}
}

// duplicateOr turns a unique violation that slipped past checkUnique into ErrEmailTaken.
func duplicateOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return fmt.Errorf("%s: %w", msg, err)
}
