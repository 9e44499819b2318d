package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidToken = errors.New("invalid or expired refresh token")

// Account kinds identify the table a token subject lives in.
const (
	KindCustomer = models.RoleCustomer
	KindProvider = models.RoleProvider
	KindAdmin    = models.RoleAdmin
)

// principal is the identity a token pair is issued for. Role is the
// authorisation role and may be ADMIN for a promoted customer or provider.
type principal struct {
	ID            uuid.UUID
	Kind          string
	Email         string
	Name          string
	Role          string
	EmailVerified bool
}

type TokenIssuer struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewTokenIssuer(db *gorm.DB, cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{db: db, cfg: cfg}
}

func (t *TokenIssuer) issue(ctx context.Context, p *principal) (string, string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   p.ID.String(),
		"email": p.Email,
		"role":  p.Role,
		"kind":  p.Kind,
		"iat":   now.Unix(),
		"exp":   now.Add(t.cfg.JWTAccessExpiry).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	raw := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		AccountID:   p.ID,
		AccountRole: p.Kind,
		TokenHash:   hashToken(raw),
		ExpiresAt:   now.Add(t.cfg.JWTRefreshExpiry),
	}
	if err := t.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return access, raw, nil
}

// consume revokes the refresh token and returns its owner. A token can be
// consumed once.
func (t *TokenIssuer) consume(ctx context.Context, raw string) (*models.RefreshToken, error) {
	db := t.db.WithContext(ctx)
	var stored models.RefreshToken
	if err := db.Where("token_hash = ? AND revoked = ?", hashToken(raw), false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	res := db.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked = ?", stored.ID, false).
		Update("revoked", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}
	return &stored, nil
}

func (t *TokenIssuer) revoke(ctx context.Context, raw string) error {
	return t.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", hashToken(raw)).
		Update("revoked", true).Error
}

func (t *TokenIssuer) revokeAll(ctx context.Context, accountID uuid.UUID) error {
	return t.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("account_id = ? AND revoked = ?", accountID, false).
		Update("revoked", true).Error
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

func customerPrincipal(c *models.Customer) *principal {
	return &principal{ID: c.ID, Kind: KindCustomer, Email: c.Email, Name: c.Name, Role: c.Role, EmailVerified: c.EmailVerified}
}

func providerPrincipal(p *models.Provider) *principal {
	return &principal{ID: p.ID, Kind: KindProvider, Email: p.Email, Name: p.Name, Role: p.Role, EmailVerified: p.EmailVerified}
}

func adminPrincipal(a *models.Admin) *principal {
	return &principal{ID: a.ID, Kind: KindAdmin, Email: a.Email, Name: a.Name, Role: models.RoleAdmin, EmailVerified: true}
}

// loadPrincipal reads the current state of an account by kind and id.
func loadPrincipal(db *gorm.DB, kind string, id uuid.UUID) (*principal, error) {
	switch kind {
	case KindCustomer:
		var c models.Customer
		if err := db.First(&c, "id = ?", id).Error; err != nil {
			return nil, notFound(err, ErrAccountNotFound)
		}
		return customerPrincipal(&c), nil
	case KindProvider:
		var p models.Provider
		if err := db.First(&p, "id = ?", id).Error; err != nil {
			return nil, notFound(err, ErrAccountNotFound)
		}
		return providerPrincipal(&p), nil
	case KindAdmin:
		var a models.Admin
		if err := db.First(&a, "id = ?", id).Error; err != nil {
			return nil, notFound(err, ErrAccountNotFound)
		}
		return adminPrincipal(&a), nil
	}
	return nil, ErrAccountNotFound
}
