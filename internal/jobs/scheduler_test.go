package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestScheduler(t *testing.T, spec string) (*Scheduler, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	cfg := &config.Config{OTPSweepSpec: spec, NotificationRetentionDays: 30, OTPExpiry: 10 * time.Minute}
	otp := services.NewOTPService(db, services.NewEmailService(&mail.Outbox{}), cfg.OTPExpiry)
	notifications := services.NewNotificationService(db, nil, "admin@servicespot.com")
	return NewScheduler(db, otp, notifications, cfg), db
}

func TestSweepRemovesOnlyExpiredOTPs(t *testing.T) {
	s, db := newTestScheduler(t, "@every 1h")
	expired := models.OTP{Email: "a@example.com", Code: "111111", OTPType: models.OTPTypeRegistration, ExpiresAt: time.Now().Add(-time.Minute)}
	live := models.OTP{Email: "b@example.com", Code: "222222", OTPType: models.OTPTypeRegistration, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&live).Error)

	n, err := s.sweepOTPs(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left []models.OTP
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, live.ID, left[0].ID)
}

func TestCleanupKeepsUnreadAndRecent(t *testing.T) {
	s, db := newTestScheduler(t, "@every 1h")
	old := time.Now().AddDate(0, 0, -40)
	rows := []models.Notification{
		{RecipientEmail: "a@example.com", Title: "old read", Message: "m", Type: "T", Priority: "NORMAL", IsRead: true, CreatedAt: old},
		{RecipientEmail: "a@example.com", Title: "old unread", Message: "m", Type: "T", Priority: "NORMAL", CreatedAt: old},
		{RecipientEmail: "a@example.com", Title: "new read", Message: "m", Type: "T", Priority: "NORMAL", IsRead: true},
	}
	require.NoError(t, db.Create(&rows).Error)

	n, err := s.cleanupNotifications(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var titles []string
	require.NoError(t, db.Model(&models.Notification{}).Order("title").Pluck("title", &titles).Error)
	assert.Equal(t, []string{"new read", "old unread"}, titles)
}

func TestPurgeSystemLogsJob(t *testing.T) {
	s, db := newTestScheduler(t, "@every 1h")
	require.NoError(t, db.Create(&models.SystemLog{Timestamp: time.Now().AddDate(0, 0, -31), Level: "ERROR", Message: "old"}).Error)
	require.NoError(t, db.Create(&models.SystemLog{Timestamp: time.Now(), Level: "ERROR", Message: "new"}).Error)

	s.run("system_log_purge", s.purgeSystemLogs)

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s, _ := newTestScheduler(t, "not a schedule")
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "otp_sweep")
}

func TestStartAndStop(t *testing.T) {
	s, _ := newTestScheduler(t, "@every 1h")
	require.NoError(t, s.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
