package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"rental-admin/middleware"
	"rental-admin/models"
	"rental-admin/services"
	"rental-admin/views"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testCookie = "sid"

type harness struct {
	t       *testing.T
	db      *gorm.DB
	sid     string
	console *gin.Engine
}

// newHarness starts a fake backend and a console wired to it, with a
// browser that is already logged in.
func newHarness(t *testing.T, backend func(api *gin.RouterGroup), register func(rg *gin.RouterGroup, app *Console)) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	be := gin.New()
	backend(be.Group("/api"))
	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.StorageEntry{}))

	pages, err := views.Load()
	require.NoError(t, err)
	app := &Console{
		Client:        services.NewRestClient(srv.URL+"/api", 5*time.Second),
		Views:         pages,
		ToastPolicy:   services.ToastReplace,
		ToastDuration: 4 * time.Second,
		Nav:           []NavItem{{Path: "/", Label: "Panel", Icon: "fa-chart-line"}},
		Now:           func() time.Time { return time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC) },
	}

	r := gin.New()
	web := r.Group("/", middleware.Session(db, testCookie, false))
	auth := NewAuthController(app)
	web.GET("/login", auth.LoginPage)
	web.POST("/login", auth.Login)
	web.POST("/logout", auth.Logout)
	register(web.Group("", middleware.RequireSession()), app)

	h := &harness{t: t, db: db, sid: uuid.NewString(), console: r}
	require.NoError(t, h.session().Establish(models.LoginResponse{Token: "tok", Username: "admin"}))
	return h
}

func registerRooms(rg *gin.RouterGroup, app *Console) {
	NewPageController(app, services.RoomPage()).Register(rg)
}

func (h *harness) storage() *services.ClientStorage {
	return services.NewClientStorage(h.db, h.sid)
}

func (h *harness) session() *services.SessionContext {
	return services.NewSessionContext(h.storage())
}

func (h *harness) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: testCookie, Value: h.sid})
	rec := httptest.NewRecorder()
	h.console.ServeHTTP(rec, req)
	return rec
}

func (h *harness) doc(rec *httptest.ResponseRecorder) *goquery.Document {
	h.t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(h.t, err)
	return doc
}
