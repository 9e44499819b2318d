package handlers_test

import (
	"net/http"
	"testing"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRequireAuthentication(t *testing.T) {
	s := newTestServer(t)

	var resp dto.ErrorResponse
	status := s.do(t, http.MethodGet, "/api/admin/statistics", nil, nil, &resp)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.True(t, resp.Error)
}

func TestAdminTokenHeaderBypassesJWT(t *testing.T) {
	s := newTestServer(t)
	seedMarketplace(t, s.db)

	var stats dto.StatisticsResponse
	status := s.do(t, http.MethodGet, "/api/admin/statistics", nil, map[string]string{"X-Admin-Token": testAdminToken}, &stats)

	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, stats.TotalCustomers)
	assert.EqualValues(t, 2, stats.TotalProviders)
	assert.EqualValues(t, 1, stats.TotalServices)

	status = s.do(t, http.MethodGet, "/api/admin/statistics", nil, map[string]string{"X-Admin-Token": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminRequiredChecksRole(t *testing.T) {
	s := newTestServer(t)
	m := seedMarketplace(t, s.db)

	plain := bearer(t, m.customer.ID.String(), m.customer.Email, models.RoleCustomer, models.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/admin/customers", nil, plain, nil))

	// A role claim alone is not enough until the account holds the role.
	claimed := bearer(t, m.customer.ID.String(), m.customer.Email, models.RoleAdmin, models.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/admin/customers", nil, claimed, nil))

	require.NoError(t, s.db.Model(m.customer).Update("role", models.RoleAdmin).Error)
	var list []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/admin/customers", nil, claimed, &list))
	assert.Len(t, list, 1)
}

func TestAdminEmailsAreCaseInsensitive(t *testing.T) {
	s := newTestServer(t)
	m := seedMarketplace(t, s.db)

	headers := bearer(t, m.provider.ID.String(), "owner@servicespot.com", models.RoleProvider, models.RoleProvider)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/admin/providers", nil, headers, nil))
}

func TestAdminInitIsPublicAndIdempotent(t *testing.T) {
	s := newTestServer(t)

	var first, second map[string]interface{}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/admin/init", nil, nil, &first))
	assert.Equal(t, "admin@servicespot.com", first["email"])

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/admin/init", nil, nil, &second))
	assert.Equal(t, "Admin already exists", second["message"])
}

func TestProviderVerificationIsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	m := seedMarketplace(t, s.db)
	path := "/api/provider/" + m.provider.ID.String() + "/verify"

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPut, path, nil, nil, nil))

	var resp map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, path, nil, map[string]string{"X-Admin-Token": testAdminToken}, &resp))

	var p models.Provider
	require.NoError(t, s.db.First(&p, "id = ?", m.provider.ID).Error)
	assert.True(t, p.Verified)
}
