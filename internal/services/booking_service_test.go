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

type bookingFixture struct {
	*env
	svc      *services.BookingService
	customer *models.Customer
	provider *models.Provider
	booker   *models.Provider
	service  *models.Service
}

func newBookingFixture(t *testing.T) *bookingFixture {
	e := newEnv(t)
	provider := createProvider(t, e.db, "Ravi Electric", "ravi@example.com", "9000000001", "Electrician", "Hyderabad")
	return &bookingFixture{
		env:      e,
		svc:      services.NewBookingService(e.db, e.notifications),
		customer: createCustomer(t, e.db, "Asha", "asha@example.com", "9000000002"),
		provider: provider,
		booker:   createProvider(t, e.db, "Kiran Plumbing", "kiran@example.com", "9000000003", "Plumber", "Hyderabad"),
		service:  createService(t, e.db, provider, "Wiring repair", 450),
	}
}

func (f *bookingFixture) createForCustomer(t *testing.T) *dto.BookingResponse {
	t.Helper()
	b, err := f.svc.Create(context.Background(), &dto.CreateBookingRequest{
		CustomerID: idPtr(f.customer.ID),
		ProviderID: f.provider.ID,
		ServiceID:  f.service.ID,
		Date:       "2026-11-02",
		Time:       "10:30",
	})
	require.NoError(t, err)
	return b
}

func TestCreateBookingForCustomer(t *testing.T) {
	f := newBookingFixture(t)

	b := f.createForCustomer(t)

	assert.Equal(t, string(models.StatusPending), b.Status)
	assert.Equal(t, "Wiring repair", b.ServiceName)
	assert.Equal(t, 450.0, b.TotalAmount)
	assert.Equal(t, "2026-11-02", b.Date)
	assert.Equal(t, "10:30", b.Time)
	assert.Equal(t, "Asha", b.CustomerName)
	assert.Equal(t, "Ravi Electric", b.ProviderName)

	toProvider := f.pusher.To("ravi@example.com")
	require.Len(t, toProvider, 1)
	assert.Equal(t, "New Booking Request", toProvider[0].Title)
	assert.Equal(t, models.PriorityHigh, toProvider[0].Priority)

	toCustomer := f.pusher.To("asha@example.com")
	require.Len(t, toCustomer, 1)
	assert.Equal(t, "Booking Request Received", toCustomer[0].Title)
}

func TestCreateBookingByProviderBooker(t *testing.T) {
	f := newBookingFixture(t)

	b, err := f.svc.Create(context.Background(), &dto.CreateBookingRequest{
		ProviderBookerID: idPtr(f.booker.ID),
		ProviderID:       f.provider.ID,
		ServiceID:        f.service.ID,
		Date:             "2026-11-02",
		Time:             "09:00:00",
		TotalAmount:      600,
	})
	require.NoError(t, err)
	assert.Nil(t, b.CustomerID)
	assert.Equal(t, "Kiran Plumbing", b.ProviderBookerName)
	assert.Equal(t, 600.0, b.TotalAmount)

	made, err := f.svc.ByProviderBooker(context.Background(), f.booker.ID)
	require.NoError(t, err)
	assert.Len(t, made, 1)
}

func TestCreateBookingRequiresExactlyOneBooker(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, &dto.CreateBookingRequest{
		ProviderID: f.provider.ID, ServiceID: f.service.ID, Date: "2026-11-02", Time: "10:00",
	})
	assert.ErrorIs(t, err, models.ErrInvalidBooker)

	_, err = f.svc.Create(ctx, &dto.CreateBookingRequest{
		CustomerID:       idPtr(f.customer.ID),
		ProviderBookerID: idPtr(f.booker.ID),
		ProviderID:       f.provider.ID, ServiceID: f.service.ID, Date: "2026-11-02", Time: "10:00",
	})
	assert.ErrorIs(t, err, models.ErrInvalidBooker)
}

func TestCreateBookingValidatesSchedule(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, &dto.CreateBookingRequest{
		CustomerID: idPtr(f.customer.ID), ProviderID: f.provider.ID, ServiceID: f.service.ID,
		Date: "02/11/2026", Time: "10:00",
	})
	assert.ErrorIs(t, err, services.ErrInvalidBookingDate)

	_, err = f.svc.Create(ctx, &dto.CreateBookingRequest{
		CustomerID: idPtr(f.customer.ID), ProviderID: f.provider.ID, ServiceID: f.service.ID,
		Date: "2026-11-02", Time: "10am",
	})
	assert.ErrorIs(t, err, services.ErrInvalidBookingTime)
}

func TestCompleteSetsTimestampAndIsTerminal(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	b := f.createForCustomer(t)

	done, err := f.svc.Complete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusCompleted), done.Status)
	assert.NotNil(t, done.CompletedAt)
	assert.Nil(t, done.CancelledAt)

	_, err = f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{Status: ptr("Pending")})
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = f.svc.Cancel(ctx, b.ID, "")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	completed := f.pusher.To("asha@example.com")
	assert.Equal(t, "Service Completed", completed[len(completed)-1].Title)
}

func TestCancelByProviderNotifiesBooker(t *testing.T) {
	f := newBookingFixture(t)
	b := f.createForCustomer(t)
	before := len(f.pusher.To("ravi@example.com"))

	cancelled, err := f.svc.Cancel(context.Background(), b.ID, "PROVIDER")
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	toCustomer := f.pusher.To("asha@example.com")
	last := toCustomer[len(toCustomer)-1]
	assert.Equal(t, "Booking Cancelled", last.Title)
	assert.Equal(t, models.RecipientCustomer, last.RecipientRole)
	assert.Equal(t, "/customer-bookings", last.ActionURL)
	assert.Contains(t, last.Message, "Ravi Electric")
	assert.Len(t, f.pusher.To("ravi@example.com"), before)
}

func TestCancelByCustomerNotifiesProvider(t *testing.T) {
	f := newBookingFixture(t)
	b := f.createForCustomer(t)
	before := len(f.pusher.To("asha@example.com"))

	_, err := f.svc.Cancel(context.Background(), b.ID, "CUSTOMER")
	require.NoError(t, err)

	toProvider := f.pusher.To("ravi@example.com")
	last := toProvider[len(toProvider)-1]
	assert.Equal(t, "Booking Cancelled", last.Title)
	assert.Equal(t, models.RecipientProvider, last.RecipientRole)
	assert.Equal(t, "/provider-bookings", last.ActionURL)
	assert.Contains(t, last.Message, "Asha")
	assert.Len(t, f.pusher.To("asha@example.com"), before)
}

func TestCancelRejectsUnknownInitiator(t *testing.T) {
	f := newBookingFixture(t)
	b := f.createForCustomer(t)

	_, err := f.svc.Cancel(context.Background(), b.ID, "ADMIN")
	assert.ErrorIs(t, err, services.ErrInvalidCancelledBy)
}

func TestUpdateStatusAcceptedNotifiesBooker(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	b := f.createForCustomer(t)

	updated, err := f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{Status: ptr("accepted"), Notes: ptr("bring a ladder")})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusAccepted), updated.Status)
	assert.Equal(t, "bring a ladder", updated.Notes)

	toCustomer := f.pusher.To("asha@example.com")
	assert.Equal(t, "Booking Accepted! 🎉", toCustomer[len(toCustomer)-1].Title)

	_, err = f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{Status: ptr("Pending")})
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{Status: ptr("Finished")})
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
}

func TestBookingQueries(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	first := f.createForCustomer(t)
	f.createForCustomer(t)
	_, err := f.svc.Complete(ctx, first.ID)
	require.NoError(t, err)

	byCustomer, err := f.svc.ByCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	byProvider, err := f.svc.ByProvider(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Len(t, byProvider, 2)

	completed, err := f.svc.ByStatus(ctx, "COMPLETED")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, first.ID, completed[0].ID)

	_, err = f.svc.ByStatus(ctx, "nope")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
}

func TestDeleteBookingRemovesRatingAndRefreshesAggregate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	b := f.createForCustomer(t)
	ratings := services.NewRatingService(f.db, f.notifications, services.NewContentFilter())
	_, err := ratings.Create(ctx, &dto.CreateRatingRequest{BookingID: b.ID, Stars: 4})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, b.ID))

	_, err = f.svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, services.ErrBookingNotFound)

	var svc models.Service
	require.NoError(t, f.db.First(&svc, "id = ?", f.service.ID).Error)
	assert.Equal(t, 0, svc.ReviewCount)
	assert.Equal(t, 0.0, svc.Rating)
}

func TestUpdateStatusCompletedMatchesComplete(t *testing.T) {
	f := newBookingFixture(t)
	b := f.createForCustomer(t)

	done, err := f.svc.Update(context.Background(), b.ID, &dto.UpdateBookingRequest{Status: ptr("completed")})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusCompleted), done.Status)
	assert.NotNil(t, done.CompletedAt)
	assert.Nil(t, done.CancelledAt)

	toCustomer := f.pusher.To("asha@example.com")
	last := toCustomer[len(toCustomer)-1]
	assert.Equal(t, "Service Completed", last.Title)
	assert.Equal(t, "BOOKING_COMPLETED", last.Type)
}

func TestUpdateStatusCancelledMatchesCancel(t *testing.T) {
	f := newBookingFixture(t)
	b := f.createForCustomer(t)
	before := len(f.pusher.To("ravi@example.com"))

	cancelled, err := f.svc.Update(context.Background(), b.ID, &dto.UpdateBookingRequest{
		Status:      ptr("cancelled"),
		CancelledBy: "provider",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Nil(t, cancelled.CompletedAt)

	toCustomer := f.pusher.To("asha@example.com")
	last := toCustomer[len(toCustomer)-1]
	assert.Equal(t, "Booking Cancelled", last.Title)
	assert.Equal(t, models.RecipientCustomer, last.RecipientRole)
	assert.Len(t, f.pusher.To("ravi@example.com"), before)
}

func TestUpdateStatusCancelledDefaultsToCustomer(t *testing.T) {
	f := newBookingFixture(t)
	b := f.createForCustomer(t)

	_, err := f.svc.Update(context.Background(), b.ID, &dto.UpdateBookingRequest{Status: ptr("Cancelled")})
	require.NoError(t, err)

	toProvider := f.pusher.To("ravi@example.com")
	last := toProvider[len(toProvider)-1]
	assert.Equal(t, "Booking Cancelled", last.Title)
	assert.Equal(t, models.RecipientProvider, last.RecipientRole)
}

func TestUpdateStatusConfirmedNotifiesBooker(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	b := f.createForCustomer(t)

	_, err := f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{Status: ptr("Accepted")})
	require.NoError(t, err)
	confirmed, err := f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{Status: ptr("CONFIRMED")})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusConfirmed), confirmed.Status)

	toCustomer := f.pusher.To("asha@example.com")
	last := toCustomer[len(toCustomer)-1]
	assert.Equal(t, "Booking Confirmed", last.Title)
	assert.Equal(t, "BOOKING_CONFIRMED", last.Type)
	assert.Contains(t, last.Message, "Ravi Electric")
}

func TestUpdateReschedules(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	b := f.createForCustomer(t)

	moved, err := f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{BookingDate: ptr("2026-11-09")})
	require.NoError(t, err)
	assert.Equal(t, "2026-11-09", moved.Date)
	assert.Equal(t, "10:30", moved.Time)
	assert.Equal(t, string(models.StatusPending), moved.Status)

	moved, err = f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{BookingTime: ptr("14:15:00")})
	require.NoError(t, err)
	assert.Equal(t, "2026-11-09", moved.Date)
	assert.Equal(t, "14:15", moved.Time)

	var stored models.Booking
	require.NoError(t, f.db.First(&stored, "id = ?", b.ID).Error)
	require.NotNil(t, stored.ScheduledDate)
	assert.Equal(t, 14, stored.ScheduledDate.UTC().Hour())
	assert.Equal(t, 9, stored.ScheduledDate.UTC().Day())

	_, err = f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{BookingDate: ptr("09/11/2026")})
	assert.ErrorIs(t, err, services.ErrInvalidBookingDate)
	_, err = f.svc.Update(ctx, b.ID, &dto.UpdateBookingRequest{BookingTime: ptr("2pm")})
	assert.ErrorIs(t, err, services.ErrInvalidBookingTime)
}
