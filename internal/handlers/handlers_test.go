package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/realtime"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret     = "handler-test-secret"
	testAdminToken = "static-admin-token"
)

type testServer struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.OpenDB(t)
	cfg := &config.Config{
		JWTSecret:            testSecret,
		JWTAccessExpiry:      15 * time.Minute,
		JWTRefreshExpiry:     time.Hour,
		OTPExpiry:            10 * time.Minute,
		AdminToken:           testAdminToken,
		AdminEmails:          "Owner@ServiceSpot.com",
		DefaultAdminEmail:    "admin@servicespot.com",
		DefaultAdminPassword: "admin-password",
		SupportEmail:         "support@servicespot.com",
	}

	hub := realtime.NewHub()
	notifications := services.NewNotificationService(db, hub, cfg.DefaultAdminEmail)
	otp := services.NewOTPService(db, services.NewEmailService(&mail.Outbox{}), cfg.OTPExpiry)
	tokens := services.NewTokenIssuer(db, cfg)
	customers := services.NewCustomerService(db, nil)
	providers := services.NewProviderService(db, nil)
	listings := services.NewListingService(db)

	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(services.NewAuthService(db, tokens, otp, notifications)),
		Admin:        handlers.NewAdminHandler(services.NewAdminService(db, tokens), customers, providers, listings, cfg),
		Booking:      handlers.NewBookingHandler(services.NewBookingService(db, notifications)),
		Rating:       handlers.NewRatingHandler(services.NewRatingService(db, notifications, services.NewContentFilter())),
		Notification: handlers.NewNotificationHandler(notifications),
		WebSocket:    handlers.NewWebSocketHandler(hub),
		Customer:     handlers.NewCustomerHandler(customers),
		Provider:     handlers.NewProviderHandler(providers),
		Listing:      handlers.NewListingHandler(listings),
		Category:     handlers.NewCategoryHandler(services.NewCategoryService(db)),
		Contact:      handlers.NewContactHandler(services.NewContactService(db, notifications)),
		FAQ:          handlers.NewFAQHandler(services.NewFAQService(db)),
		Article:      handlers.NewArticleHandler(services.NewArticleService(db)),
		Legal:        handlers.NewLegalHandler(cfg.SupportEmail),
		Health:       handlers.NewHealthHandler(db, nil, hub),
		DataInit:     handlers.NewDataInitHandler(services.NewDemoDataService(db), listings),
	}

	app := fiber.New()
	routes.Setup(app, cfg, db, h)
	return &testServer{app: app, db: db, cfg: cfg}
}

// do sends a request and decodes a JSON response body into out when non-nil.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func bearer(t *testing.T, sub, email, role, kind string) map[string]string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"role":  role,
		"kind":  kind,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + signed}
}

type marketplace struct {
	customer *models.Customer
	provider *models.Provider
	booker   *models.Provider
	service  *models.Service
}

func seedMarketplace(t *testing.T, db *gorm.DB) *marketplace {
	t.Helper()
	m := &marketplace{
		customer: &models.Customer{
			Name: "Asha", Email: "asha@example.com", Password: "x", Phone: "9000000002",
			City: "Hyderabad", State: "Telangana", EmailVerified: true,
		},
		provider: &models.Provider{
			Name: "Ravi Electric", Email: "ravi@example.com", Password: "x", Phone: "9000000001",
			ServiceType: "Electrician", City: "Hyderabad", State: "Telangana", AddressLine: "Banjara Hills",
			EmailVerified: true,
		},
		booker: &models.Provider{
			Name: "Kiran Plumbing", Email: "kiran@example.com", Password: "x", Phone: "9000000003",
			ServiceType: "Plumber", City: "Warangal", State: "Telangana", AddressLine: "Hanamkonda",
			EmailVerified: true,
		},
	}
	require.NoError(t, db.Create(m.customer).Error)
	require.NoError(t, db.Create(m.provider).Error)
	require.NoError(t, db.Create(m.booker).Error)

	m.service = &models.Service{Name: "Wiring repair", ProviderID: m.provider.ID, Price: 450, City: "Hyderabad", IsActive: true}
	require.NoError(t, db.Create(m.service).Error)
	return m
}

func (m *marketplace) bookingRequest() map[string]interface{} {
	return map[string]interface{}{
		"customerId": m.customer.ID,
		"providerId": m.provider.ID,
		"serviceId":  m.service.ID,
		"date":       "2026-11-02",
		"time":       "10:30",
	}
}

func (s *testServer) createBooking(t *testing.T, m *marketplace) map[string]interface{} {
	t.Helper()
	var created map[string]interface{}
	status := s.do(t, http.MethodPost, "/booking/create", m.bookingRequest(), nil, &created)
	require.Equal(t, http.StatusCreated, status)
	return created
}
