package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandlerFansOut(t *testing.T) {
	var info, errOnly bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errOnly, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("booking created")
	logger.Error("push failed")

	assert.Equal(t, 2, bytes.Count(info.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(errOnly.Bytes(), []byte("\n")))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(errOnly.Bytes()), &line))
	assert.Equal(t, "push failed", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
}

func TestPGHandlerPersistsErrorsOnStop(t *testing.T) {
	db := testutil.OpenDB(t)
	h := NewPGHandler(db)
	logger := slog.New(h)

	logger.Info("not persisted")
	logger.With("request_id", "req-42").Error("rating insert failed",
		"error", "constraint violation",
		"action", "rating.create",
		"booking_id", "b-1",
	)
	h.Stop()

	var rows []models.SystemLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "ERROR", row.Level)
	assert.Equal(t, "rating insert failed", row.Message)
	assert.Equal(t, "req-42", row.RequestID)
	assert.Equal(t, "rating.create", row.Action)
	assert.Equal(t, "constraint violation", row.Error)

	var extra map[string]interface{}
	require.NoError(t, json.Unmarshal(row.Extra, &extra))
	assert.Equal(t, "b-1", extra["booking_id"])
}

func TestPurgeSystemLogs(t *testing.T) {
	db := testutil.OpenDB(t)
	old := models.SystemLog{ID: uuid.New(), Timestamp: time.Now().AddDate(0, 0, -45), Level: "ERROR", Message: "old"}
	fresh := models.SystemLog{ID: uuid.New(), Timestamp: time.Now(), Level: "ERROR", Message: "fresh"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&fresh).Error)

	deleted, err := PurgeSystemLogs(db, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var remaining int64
	db.Model(&models.SystemLog{}).Count(&remaining)
	assert.EqualValues(t, 1, remaining)
}
