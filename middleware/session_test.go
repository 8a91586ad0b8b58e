package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rental-admin/models"
	"rental-admin/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sessionEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.StorageEntry{}))

	r := gin.New()
	g := r.Group("/", Session(db, "sid", false))
	g.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, SessionFrom(c).Username()) })
	g.GET("/private", RequireSession(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r, db
}

func TestSession_IssuesCookie(t *testing.T) {
	r, _ := sessionEngine(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.NoError(t, uuid.Validate(cookies[0].Value))
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestSession_ReplacesMalformedCookie(t *testing.T) {
	r, _ := sessionEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "../../etc"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "../../etc", cookies[0].Value)
}

func TestSession_ReusesStoredSession(t *testing.T) {
	r, db := sessionEngine(t)
	sid := uuid.NewString()
	session := services.NewSessionContext(services.NewClientStorage(db, sid))
	require.NoError(t, session.Establish(models.LoginResponse{Token: "tok", Username: "rosa"}))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "rosa", rec.Body.String())
}

func TestRequireSession_RedirectsToLogin(t *testing.T) {
	r, _ := sessionEngine(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
