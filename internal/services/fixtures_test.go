package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const adminEmail = "admin@servicespot.com"

type recordingPusher struct {
	mu     sync.Mutex
	pushes map[string][]*models.Notification
}

func newRecordingPusher() *recordingPusher {
	return &recordingPusher{pushes: make(map[string][]*models.Notification)}
}

func (r *recordingPusher) Push(_ context.Context, email string, payload interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := payload.(*models.Notification); ok {
		r.pushes[email] = append(r.pushes[email], n)
	}
	return nil
}

func (r *recordingPusher) To(email string) []*models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Notification(nil), r.pushes[email]...)
}

type env struct {
	db            *gorm.DB
	cfg           *config.Config
	outbox        *mail.Outbox
	pusher        *recordingPusher
	notifications *services.NotificationService
	otp           *services.OTPService
	tokens        *services.TokenIssuer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.OpenDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		OTPExpiry:        10 * time.Minute,
	}
	outbox := &mail.Outbox{}
	pusher := newRecordingPusher()
	return &env{
		db:            db,
		cfg:           cfg,
		outbox:        outbox,
		pusher:        pusher,
		notifications: services.NewNotificationService(db, pusher, adminEmail),
		otp:           services.NewOTPService(db, services.NewEmailService(outbox), cfg.OTPExpiry),
		tokens:        services.NewTokenIssuer(db, cfg),
	}
}

func createCustomer(t *testing.T, db *gorm.DB, name, email, phone string) *models.Customer {
	t.Helper()
	c := &models.Customer{
		Name:          name,
		Email:         email,
		Password:      "x",
		Phone:         phone,
		City:          "Hyderabad",
		State:         "Telangana",
		EmailVerified: true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createProvider(t *testing.T, db *gorm.DB, name, email, phone, serviceType, city string) *models.Provider {
	t.Helper()
	p := &models.Provider{
		Name:          name,
		Email:         email,
		Password:      "x",
		Phone:         phone,
		ServiceType:   serviceType,
		City:          city,
		State:         "Telangana",
		AddressLine:   "Banjara Hills",
		EmailVerified: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createService(t *testing.T, db *gorm.DB, provider *models.Provider, name string, price float64) *models.Service {
	t.Helper()
	s := &models.Service{
		Name:       name,
		ProviderID: provider.ID,
		Price:      price,
		City:       provider.City,
		IsActive:   true,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func ptr[T any](v T) *T {
	return &v
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
