package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type staticHeaders http.Header

func (h staticHeaders) AuthHeaders() http.Header { return http.Header(h) }

// newBackend starts a fake REST backend mounted under /api.
func newBackend(t *testing.T, setup func(api *gin.RouterGroup)) (*RestClient, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setup(r.Group("/api"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewRestClient(srv.URL+"/api", 5*time.Second), srv
}

func newTestStorage(t *testing.T) *ClientStorage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.StorageEntry{}))
	return NewClientStorage(db, uuid.NewString())
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
}
