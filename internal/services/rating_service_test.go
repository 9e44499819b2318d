package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingUpdatesServiceAggregate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	ratings := services.NewRatingService(f.db, f.notifications, services.NewContentFilter())

	b1 := f.createForCustomer(t)
	b2 := f.createForCustomer(t)

	r1, err := ratings.Create(ctx, &dto.CreateRatingRequest{BookingID: b1.ID, Stars: 5, Review: "Quick and tidy work"})
	require.NoError(t, err)
	assert.Equal(t, f.service.ID, r1.ServiceID)
	assert.Equal(t, f.customer.ID, *r1.CustomerID)
	assert.Equal(t, "Asha", r1.CustomerName)

	_, err = ratings.Create(ctx, &dto.CreateRatingRequest{BookingID: b2.ID, Stars: 2})
	require.NoError(t, err)

	avg, err := ratings.Average(ctx, f.service.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, avg.AverageRating)
	assert.Equal(t, int64(2), avg.ReviewCount)

	var svc models.Service
	require.NoError(t, f.db.First(&svc, "id = ?", f.service.ID).Error)
	assert.Equal(t, 3.5, svc.Rating)
	assert.Equal(t, 2, svc.ReviewCount)

	require.NoError(t, ratings.Delete(ctx, r1.ID))
	require.NoError(t, f.db.First(&svc, "id = ?", f.service.ID).Error)
	assert.Equal(t, 2.0, svc.Rating)
	assert.Equal(t, 1, svc.ReviewCount)

	toProvider := f.pusher.To("ravi@example.com")
	last := toProvider[len(toProvider)-1]
	assert.Equal(t, "New Review Received", last.Title)
	assert.Contains(t, last.Message, "⭐⭐")
}

func TestSecondRatingForBookingIsRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	ratings := services.NewRatingService(f.db, f.notifications, services.NewContentFilter())
	b := f.createForCustomer(t)

	_, err := ratings.Create(ctx, &dto.CreateRatingRequest{BookingID: b.ID, Stars: 4})
	require.NoError(t, err)

	_, err = ratings.Create(ctx, &dto.CreateRatingRequest{BookingID: b.ID, Stars: 1})
	assert.ErrorIs(t, err, services.ErrAlreadyRated)
	assert.Equal(t, "This booking has already been rated", err.Error())

	var count int64
	require.NoError(t, f.db.Model(&models.Rating{}).Where("booking_id = ?", b.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRatingValidation(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	ratings := services.NewRatingService(f.db, f.notifications, services.NewContentFilter())
	b := f.createForCustomer(t)

	for _, stars := range []float64{0, 5.5, -1} {
		_, err := ratings.Create(ctx, &dto.CreateRatingRequest{BookingID: b.ID, Stars: stars})
		assert.ErrorIs(t, err, services.ErrInvalidStars, "stars=%v", stars)
	}

	_, err := ratings.Create(ctx, &dto.CreateRatingRequest{BookingID: b.ID, Stars: 3, Review: "see www.spam.example.com now"})
	require.ErrorIs(t, err, services.ErrContentRejected)
	var ce *services.ContentError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "url_not_allowed", ce.Reason)

	_, err = ratings.Create(ctx, &dto.CreateRatingRequest{BookingID: f.service.ID, Stars: 3})
	assert.ErrorIs(t, err, services.ErrBookingNotFound)
}

func TestRatingLookups(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	ratings := services.NewRatingService(f.db, f.notifications, services.NewContentFilter())
	b := f.createForCustomer(t)

	created, err := ratings.Create(ctx, &dto.CreateRatingRequest{BookingID: b.ID, Stars: 4, Review: "Good"})
	require.NoError(t, err)

	byBooking, err := ratings.ByBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byBooking.ID)

	byService, err := ratings.ByService(ctx, f.service.ID)
	require.NoError(t, err)
	assert.Len(t, byService, 1)

	avg, err := ratings.Average(ctx, f.booker.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg.AverageRating)
	assert.Equal(t, int64(0), avg.ReviewCount)
}
