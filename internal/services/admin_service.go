package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminNotFound         = errors.New("admin not found")
	ErrAdminPasswordRequired = errors.New("DEFAULT_ADMIN_PASSWORD is not set")
)

type AdminService struct {
	db     *gorm.DB
	tokens *TokenIssuer
}

func NewAdminService(db *gorm.DB, tokens *TokenIssuer) *AdminService {
	return &AdminService{db: db, tokens: tokens}
}

// Login accepts an admin row, or a customer or provider promoted to ADMIN.
func (s *AdminService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	db := s.db.WithContext(ctx)
	email := normalizeEmail(req.Email)

	var p *principal
	var hash string

	var a models.Admin
	var c models.Customer
	var pr models.Provider
	switch {
	case db.First(&a, "email = ?", email).Error == nil:
		p, hash = adminPrincipal(&a), a.Password
	case db.First(&c, "email = ? AND role = ?", email, models.RoleAdmin).Error == nil:
		p, hash = customerPrincipal(&c), c.Password
	case db.First(&pr, "email = ? AND role = ?", email, models.RoleAdmin).Error == nil:
		p, hash = providerPrincipal(&pr), pr.Password
	default:
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := s.tokens.issue(ctx, p)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Success:       true,
		Message:       "Admin login successful",
		UserID:        &p.ID,
		Email:         p.Email,
		Name:          p.Name,
		Role:          models.RoleAdmin,
		EmailVerified: true,
		AccessToken:   access,
		RefreshToken:  refresh,
	}, nil
}

// EnsureDefaultAdmin creates the admin account when it does not exist yet.
// It reports whether a row was created.
func (s *AdminService) EnsureDefaultAdmin(ctx context.Context, email, password string) (*models.Admin, bool, error) {
	db := s.db.WithContext(ctx)
	email = normalizeEmail(email)

	var existing models.Admin
	err := db.First(&existing, "email = ?", email).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if password == "" {
		return nil, false, ErrAdminPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := models.Admin{Name: "Admin", Email: email, Password: string(hash), Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create admin: %w", err)
	}
	return &admin, true, nil
}

func (s *AdminService) Get(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var a models.Admin
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrAdminNotFound)
	}
	return &a, nil
}

// SetCustomerAdmin promotes a customer to ADMIN or demotes them back.
func (s *AdminService) SetCustomerAdmin(ctx context.Context, id uuid.UUID, admin bool) error {
	role := models.RoleCustomer
	if admin {
		role = models.RoleAdmin
	}
	return s.update(ctx, &models.Customer{}, id, "role", role, ErrCustomerNotFound)
}

func (s *AdminService) SetProviderAdmin(ctx context.Context, id uuid.UUID, admin bool) error {
	role := models.RoleProvider
	if admin {
		role = models.RoleAdmin
	}
	return s.update(ctx, &models.Provider{}, id, "role", role, ErrProviderNotFound)
}

func (s *AdminService) SetCustomerVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return s.update(ctx, &models.Customer{}, id, "verified", verified, ErrCustomerNotFound)
}

func (s *AdminService) SetProviderVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return s.update(ctx, &models.Provider{}, id, "verified", verified, ErrProviderNotFound)
}

func (s *AdminService) update(ctx context.Context, model interface{}, id uuid.UUID, column string, value interface{}, missing error) error {
	res := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missing
	}
	return nil
}

func (s *AdminService) Statistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	db := s.db.WithContext(ctx)
	stats := &dto.StatisticsResponse{Success: true}

	counts := []struct {
		query *gorm.DB
		dst   *int64
	}{
		{db.Model(&models.Customer{}), &stats.TotalCustomers},
		{db.Model(&models.Provider{}), &stats.TotalProviders},
		{db.Model(&models.Provider{}).Where("verified = ?", true), &stats.VerifiedProviders},
		{db.Model(&models.Service{}), &stats.TotalServices},
		{db.Model(&models.Booking{}), &stats.TotalBookings},
		{db.Model(&models.Booking{}).Where("status = ?", models.StatusCompleted), &stats.CompletedBookings},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var avg sql.NullFloat64
	if err := db.Model(&models.Rating{}).Select("AVG(stars)").Row().Scan(&avg); err != nil {
		return nil, err
	}
	if avg.Valid {
		stats.AverageRating = math.Round(avg.Float64*100) / 100
	}
	return stats, nil
}
