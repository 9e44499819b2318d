package handlers_test

import (
	"net/http"
	"testing"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingCreateAndDuplicate(t *testing.T) {
	s := newTestServer(t)
	m := seedMarketplace(t, s.db)
	bookingID := s.createBooking(t, m)["id"].(string)

	var rating dto.RatingResponse
	req := map[string]interface{}{"bookingId": bookingID, "stars": 4, "review": "Neat work"}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/rating/create", req, nil, &rating))
	assert.Equal(t, m.service.ID, rating.ServiceID)
	assert.Equal(t, 4.0, rating.Stars)

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/rating/create", req, nil, nil))

	var avg dto.AverageRatingResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/rating/service/"+m.service.ID.String()+"/average", nil, nil, &avg))
	assert.Equal(t, 4.0, avg.AverageRating)
	assert.EqualValues(t, 1, avg.ReviewCount)
}

func TestRatingRejectsOutOfRangeStarsAndLinks(t *testing.T) {
	s := newTestServer(t)
	m := seedMarketplace(t, s.db)
	bookingID := s.createBooking(t, m)["id"].(string)

	status := s.do(t, http.MethodPost, "/api/rating/create", map[string]interface{}{"bookingId": bookingID, "stars": 6}, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = s.do(t, http.MethodPost, "/api/rating/create",
		map[string]interface{}{"bookingId": bookingID, "stars": 5, "review": "visit https://spam.example.com"}, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProviderSearchIsCaseInsensitive(t *testing.T) {
	s := newTestServer(t)
	seedMarketplace(t, s.db)

	var found []dto.ProviderResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/search?service=ELECTRIC&city=hyderabad", nil, nil, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Ravi Electric", found[0].Name)

	var byCity []dto.ProviderResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/search/city?city=WARANGAL", nil, nil, &byCity))
	require.Len(t, byCity, 1)
	assert.Equal(t, "Kiran Plumbing", byCity[0].Name)
}

func TestProviderSearchEscapesWildcards(t *testing.T) {
	s := newTestServer(t)
	seedMarketplace(t, s.db)

	var found []dto.ProviderResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/search?service=%25", nil, nil, &found))
	assert.Empty(t, found)
}

func TestDropdownAreasIsNeverNull(t *testing.T) {
	s := newTestServer(t)

	var areas []string
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/dropdown/areas?city=Nowhere", nil, nil, &areas))
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestNearbyRequiresCoordinates(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/provider/nearby?lat=abc&lon=78.4", nil, nil, nil))
}

func TestHealthReportsComponents(t *testing.T) {
	s := newTestServer(t)

	var health dto.HealthResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/health", nil, nil, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
	assert.Equal(t, "disabled", health.Redis)
	assert.Equal(t, 0, health.Connections)
}

func TestNotificationCleanupIsAdminOnly(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodDelete, "/api/notifications/cleanup", nil, nil, nil))

	var resp map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/notifications/cleanup?daysOld=10", nil,
		map[string]string{"X-Admin-Token": testAdminToken}, &resp))
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 0, resp["deletedCount"])
}

func TestNotificationCreateRequiresFields(t *testing.T) {
	s := newTestServer(t)

	var resp dto.ValidationErrorResponse
	status := s.do(t, http.MethodPost, "/api/notifications/", map[string]string{"recipientEmail": "not-an-email"}, nil, &resp)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "must be a valid email address", resp.ValidationErrors["recipientEmail"])
	assert.Equal(t, "is required", resp.ValidationErrors["title"])
}

func TestLegalPagesRenderHTML(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/legal/privacy", "/api/legal/terms"} {
		assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, nil, nil, nil), path)
	}
}
