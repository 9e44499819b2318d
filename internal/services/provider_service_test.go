package services_test

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeProvider(t *testing.T, e *env, p *models.Provider, lat, lon float64, verified bool) {
	t.Helper()
	require.NoError(t, e.db.Model(p).Updates(map[string]interface{}{
		"latitude": lat, "longitude": lon, "verified": verified,
	}).Error)
}

func TestNearbyFiltersByRadiusAndSortsByDistance(t *testing.T) {
	e := newEnv(t)
	providers := services.NewProviderService(e.db, nil)
	ctx := context.Background()

	near := createProvider(t, e.db, "Near", "near@example.com", "9100000001", "Electrician", "Hyderabad")
	mid := createProvider(t, e.db, "Mid", "mid@example.com", "9100000002", "Plumber", "Hyderabad")
	far := createProvider(t, e.db, "Far", "far@example.com", "9100000003", "Plumber", "Vijayawada")
	createProvider(t, e.db, "Nowhere", "nowhere@example.com", "9100000004", "Plumber", "Hyderabad")

	placeProvider(t, e, near, 17.3860, 78.4870, true)
	placeProvider(t, e, mid, 17.4399, 78.4983, false)
	placeProvider(t, e, far, 16.5062, 80.6480, true)
	createService(t, e.db, near, "Fan install", 200)
	createService(t, e.db, near, "Wiring", 500)

	list, err := providers.Nearby(ctx, 17.3850, 78.4867, 20, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Near", list[0].Name)
	assert.Equal(t, "Mid", list[1].Name)
	assert.Less(t, *list[0].Distance, *list[1].Distance)
	assert.Equal(t, int64(2), *list[0].ActiveServiceCount)
	assert.Equal(t, int64(0), *list[1].ActiveServiceCount)

	verified, err := providers.Nearby(ctx, 17.3850, 78.4867, 20, true)
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, "Near", verified[0].Name)

	wide, err := providers.Nearby(ctx, 17.3850, 78.4867, 500, false)
	require.NoError(t, err)
	assert.Len(t, wide, 3)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	e := newEnv(t)
	providers := services.NewProviderService(e.db, nil)
	ctx := context.Background()

	createProvider(t, e.db, "Ravi", "ravi@example.com", "9100000001", "electrician", "hyderabad")
	createProvider(t, e.db, "Kiran", "kiran@example.com", "9100000002", "Plumber", "Hyderabad")
	createProvider(t, e.db, "Suresh", "suresh@example.com", "9100000003", "Electrician", "Chennai")

	list, err := providers.Search(ctx, "Electrician", "", "Hyderabad")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ravi", list[0].Name)

	all, err := providers.Search(ctx, "", "banjara", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byBoth, err := providers.ByServiceTypeAndCity(ctx, "ELECTRICIAN", "chennai")
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, "Suresh", byBoth[0].Name)

	cities, err := providers.DistinctCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chennai", "Hyderabad", "hyderabad"}, cities)

	areas, err := providers.DistinctAreas(ctx, "Chennai")
	require.NoError(t, err)
	assert.Equal(t, []string{"Banjara Hills"}, areas)
}

func TestProviderUpdateAndVerify(t *testing.T) {
	e := newEnv(t)
	providers := services.NewProviderService(e.db, nil)
	ctx := context.Background()
	p := createProvider(t, e.db, "Ravi", "ravi@example.com", "9100000001", "Electrician", "Hyderabad")
	createCustomer(t, e.db, "Asha", "asha@example.com", "9100000009")

	updated, err := providers.Update(ctx, p.ID, &dto.UpdateProviderRequest{
		UpdateAccountRequest: dto.UpdateAccountRequest{Name: ptr("Ravi Kumar"), City: ptr("  ")},
		Price:                ptr(350.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", updated.Name)
	assert.Equal(t, "Hyderabad", updated.City)
	assert.Equal(t, 350.0, updated.Price)

	_, err = providers.Update(ctx, p.ID, &dto.UpdateProviderRequest{
		UpdateAccountRequest: dto.UpdateAccountRequest{Email: ptr("asha@example.com")},
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	v, err := providers.SetVerified(ctx, p.ID, true)
	require.NoError(t, err)
	assert.True(t, v.Verified)

	unverified, err := providers.ListByVerified(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, unverified)
}

func TestProfileImageStoredInlineWithoutUploader(t *testing.T) {
	e := newEnv(t)
	customers := services.NewCustomerService(e.db, nil)
	c := createCustomer(t, e.db, "Asha", "asha@example.com", "9100000009")

	resp, err := customers.UploadProfileImage(context.Background(), c.ID, []byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,/9j/", resp.ProfileImage)

	_, err = customers.UploadProfileImage(context.Background(), c.ID, nil)
	assert.ErrorIs(t, err, services.ErrEmptyImage)
}

type stubUploader struct {
	publicID string
}

func (s *stubUploader) UploadImage(_ context.Context, _ []byte, publicID string) (string, error) {
	s.publicID = publicID
	return "https://res.cloudinary.com/demo/image/upload/" + publicID + ".jpg", nil
}

func TestProfileImageUsesUploader(t *testing.T) {
	e := newEnv(t)
	up := &stubUploader{}
	providers := services.NewProviderService(e.db, up)
	p := createProvider(t, e.db, "Ravi", "ravi@example.com", "9100000001", "Electrician", "Hyderabad")

	resp, err := providers.UploadProfileImage(context.Background(), p.ID, []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "provider-"+p.ID.String(), up.publicID)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/provider-"+p.ID.String()+".jpg", resp.ProfileImage)
}

func TestDeleteProviderCascades(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	providers := services.NewProviderService(f.db, nil)
	f.createForCustomer(t)

	require.NoError(t, providers.Delete(ctx, f.provider.ID))

	var bookings, listings int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&bookings).Error)
	require.NoError(t, f.db.Model(&models.Service{}).Count(&listings).Error)
	assert.Zero(t, bookings)
	assert.Zero(t, listings)

	_, err := providers.Get(ctx, f.provider.ID)
	assert.ErrorIs(t, err, services.ErrProviderNotFound)
}

func TestCustomerUpdatePassword(t *testing.T) {
	e := newEnv(t)
	customers := services.NewCustomerService(e.db, nil)
	c := createCustomer(t, e.db, "Asha", "asha@example.com", "9100000009")
	require.NoError(t, e.db.Model(c).Update("password", mustHash(t, "old-password")).Error)
	ctx := context.Background()

	err := customers.UpdatePassword(ctx, c.ID, &dto.UpdatePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	require.NoError(t, customers.UpdatePassword(ctx, c.ID, &dto.UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}))
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	e := newEnv(t)
	providers := services.NewProviderService(e.db, nil)
	listings := services.NewListingService(e.db)
	ctx := context.Background()

	ravi := createProvider(t, e.db, "Ravi", "ravi@example.com", "9100000001", "Electrician", "Hyderabad")
	createProvider(t, e.db, "Kiran", "kiran@example.com", "9100000002", "Plumber_Pro", "Hyderabad")
	createService(t, e.db, ravi, "Wiring repair", 450)
	createService(t, e.db, ravi, "100% cleaning", 300)

	for _, term := range []string{"%", "_", `\`} {
		list, err := providers.Search(ctx, term, "", "")
		require.NoError(t, err)
		assert.Empty(t, list, "service=%q", term)
	}

	underscored, err := providers.Search(ctx, "r_pro", "", "")
	require.NoError(t, err)
	require.Len(t, underscored, 1)
	assert.Equal(t, "Kiran", underscored[0].Name)

	percent, err := listings.Search(ctx, "0%", "")
	require.NoError(t, err)
	require.Len(t, percent, 1)
	assert.Equal(t, "100% cleaning", percent[0].Name)

	byName, err := listings.ByNameAndCity(ctx, "%", "Hyderabad")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "100% cleaning", byName[0].Name)
}
