package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hydration-tracker/internal/model"
	"hydration-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() { gin.SetMode(gin.TestMode) }

func newAPIRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "water.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	svc := service.NewWaterService(db)
	require.NoError(t, svc.Migrate(context.Background()))
	return NewAPIRouter(NewWaterHandler(svc))
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listWater(t *testing.T, r http.Handler) []model.WaterIntake {
	t.Helper()
	w := do(r, http.MethodGet, "/api/water", "")
	require.Equal(t, http.StatusOK, w.Code)
	var recs []model.WaterIntake
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	return recs
}

func TestHealth(t *testing.T) {
	r := newAPIRouter(t)
	w := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Water Tracker Backend is running!", w.Body.String())
}

func TestCreateWithoutCapacity(t *testing.T) {
	r := newAPIRouter(t)

	for _, body := range []string{``, `{}`, `null`, `{"timestamp":"2026-10-17T08:00:00Z"}`, `{"capacity":0}`} {
		w := do(r, http.MethodPost, "/api/water", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Capacity is required"}`, w.Body.String())
	}
	assert.Empty(t, listWater(t, r))
}

func TestCreateMalformed(t *testing.T) {
	r := newAPIRouter(t)

	w := do(r, http.MethodPost, "/api/water", `{"capacity":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/water", `{"capacity":250,"timestamp":"yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid timestamp"}`, w.Body.String())

	assert.Empty(t, listWater(t, r))
}

func TestCreateThenListNewestFirst(t *testing.T) {
	r := newAPIRouter(t)

	w := do(r, http.MethodPost, "/api/water", `{"capacity":250,"timestamp":"2020-01-01T08:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/api/water", `{"capacity":500}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.WaterIntake
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 500.0, created.Capacity)
	assert.False(t, created.Timestamp.IsZero())

	recs := listWater(t, r)
	require.Len(t, recs, 2)
	assert.Equal(t, created.ID, recs[0].ID)
	assert.Equal(t, 250.0, recs[1].Capacity)
}

func TestCreateEpochMillisTimestamp(t *testing.T) {
	r := newAPIRouter(t)

	w := do(r, http.MethodPost, "/api/water", `{"capacity":500,"timestamp":1700000000000}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	recs := listWater(t, r)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Timestamp.Equal(time.UnixMilli(1700000000000)), recs[0].Timestamp)
}

func TestDecodeTimestamp(t *testing.T) {
	for _, raw := range []string{``, `null`, `""`} {
		ts, err := decodeTimestamp(json.RawMessage(raw))
		assert.NoError(t, err, raw)
		assert.Nil(t, ts, raw)
	}

	ts, err := decodeTimestamp(json.RawMessage(`"2026-10-17T08:00:00Z"`))
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2026, time.October, 17, 8, 0, 0, 0, time.UTC)))

	_, err = decodeTimestamp(json.RawMessage(`true`))
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	for _, s := range []string{"2026-10-17T08:00:00Z", "2026-10-17T08:00:00.123+02:00", "2026-10-17T08:00:00", "2026-10-17"} {
		_, err := parseTimestamp(s)
		assert.NoError(t, err, s)
	}
	_, err := parseTimestamp("17/10/2026")
	assert.Error(t, err)
}
