package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"hydration-tracker/internal/handler"
	"hydration-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "water.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	svc := service.NewWaterService(db)
	require.NoError(t, svc.Migrate(context.Background()))

	srv := httptest.NewServer(handler.NewAPIRouter(handler.NewWaterHandler(svc)))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return srv
}

func TestAppendAndList(t *testing.T) {
	srv := newServer(t)
	c := NewWaterClient(srv.URL + "/")
	ctx := context.Background()

	old := time.Date(2026, time.October, 1, 7, 0, 0, 0, time.UTC)
	_, err := c.Append(ctx, 250, &old)
	require.NoError(t, err)

	rec, err := c.Append(ctx, 500, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	recs, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, rec.ID, recs[0].ID)
	assert.True(t, recs[1].Timestamp.Equal(old))
}

func TestAppendMissingCapacity(t *testing.T) {
	srv := newServer(t)
	c := NewWaterClient(srv.URL)

	_, err := c.Append(context.Background(), 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400: Capacity is required")
}

func TestUnreachable(t *testing.T) {
	c := NewWaterClient("http://127.0.0.1:1")
	_, err := c.List(context.Background())
	assert.Error(t, err)
}
