package controllers

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"rental-admin/middleware"
	"rental-admin/services"
	"rental-admin/utils"
	"rental-admin/views"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// NavItem is one entry of the sidebar.
type NavItem struct {
	Path  string
	Label string
	Icon  string
}

// Console carries what every page handler needs.
type Console struct {
	Client        *services.RestClient
	Views         *views.Views
	ToastPolicy   services.ToastPolicy
	ToastDuration time.Duration
	Nav           []NavItem
	Now           func() time.Time

	// inflight holds one key per browser and page while a mutation runs.
	inflight sync.Map
}

type pageData struct {
	Title    string
	Active   string
	Username string
	Nav      []NavItem
	Toasts   []services.Toast
	Data     any
}

func (app *Console) notifier(c *gin.Context) *services.Notifier {
	n := services.NewNotifier(app.ToastPolicy, app.ToastDuration)
	if err := n.Restore(middleware.StorageFrom(c)); err != nil {
		utils.Logger.Warnf("restore toasts: %v", err)
	}
	return n
}

// client returns the backend client authenticated as the browser's session.
func (app *Console) client(c *gin.Context) *services.RestClient {
	return app.Client.WithHeaders(middleware.SessionFrom(c))
}

func (app *Console) render(c *gin.Context, status int, view, title, active string, n *services.Notifier, data any) {
	pd := pageData{
		Title:    title,
		Active:   active,
		Username: middleware.SessionFrom(c).Username(),
		Toasts:   n.Toasts(),
		Data:     data,
	}
	if view != "login" {
		pd.Nav = app.Nav
	}

	var buf bytes.Buffer
	if err := app.Views.Render(&buf, view, pd); err != nil {
		utils.Logger.WithField("view", view).Errorf("render: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// begin reserves the page for one mutation of the browser's session. It
// reports false while another one is running; release ends the reservation.
func (app *Console) begin(c *gin.Context, page string) (release func(), ok bool) {
	key := middleware.StorageFrom(c).SID + "|" + page
	if _, busy := app.inflight.LoadOrStore(key, struct{}{}); busy {
		return nil, false
	}
	return func() { app.inflight.Delete(key) }, true
}

// redirect keeps the pending toasts for the next page and sends the
// browser there.
func (app *Console) redirect(c *gin.Context, n *services.Notifier, location string) {
	if err := n.Persist(middleware.StorageFrom(c)); err != nil {
		utils.Logger.Warnf("persist toasts: %v", err)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// expired handles a token the backend no longer accepts.
func (app *Console) expired(c *gin.Context, n *services.Notifier) {
	if err := middleware.SessionFrom(c).Clear(); err != nil {
		utils.Logger.Warnf("clear session: %v", err)
	}
	n.Clear()
	n.ShowTitled("Sesión expirada", "Inicie sesión nuevamente", services.ToastWarning)
	app.redirect(c, n, "/login")
}

func isUnauthorized(err error) bool {
	var httpErr *services.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized
}
