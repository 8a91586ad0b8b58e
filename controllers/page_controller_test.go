package controllers

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rental-admin/models"
	"rental-admin/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomsBackend(posts *atomic.Int32, lastBody *string, mu *sync.Mutex) func(api *gin.RouterGroup) {
	return func(api *gin.RouterGroup) {
		api.GET("/propietarios", func(c *gin.Context) {
			c.String(http.StatusOK, `[{"id":1,"nombre":"Rosa","apellido":"Paz"}]`)
		})
		api.GET("/cuartos", func(c *gin.Context) {
			c.String(http.StatusOK, `[{"id":4,"propietarioId":1,"nombre":"<b>Suite</b>","precio":350,"estado":"DISPONIBLE"},{"id":5,"propietarioId":1,"nombre":"Ático","precio":200,"estado":"OCUPADO"}]`)
		})
		api.POST("/cuartos", func(c *gin.Context) {
			raw, _ := io.ReadAll(c.Request.Body)
			mu.Lock()
			*lastBody = string(raw)
			mu.Unlock()
			posts.Add(1)
			c.String(http.StatusCreated, `{"id":6}`)
		})
		api.DELETE("/cuartos/:id", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db locked"})
		})
	}
}

func TestPageController_ListRendersRows(t *testing.T) {
	var posts atomic.Int32
	var body string
	var mu sync.Mutex
	h := newHarness(t, roomsBackend(&posts, &body, &mu), registerRooms)

	rec := h.do(http.MethodGet, "/cuartos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := h.doc(rec)

	assert.Equal(t, 2, doc.Find("#cuartos-table tbody tr[data-id]").Length())
	assert.Equal(t, "<b>Suite</b>", doc.Find(`tr[data-id="4"] td`).First().Text())
	assert.Equal(t, 0, doc.Find("#cuartos-table b").Length())
	assert.Contains(t, doc.Find(".count").Text(), "Mostrando 2 de 2")
	assert.Equal(t, 0, doc.Find(".modal").Length())
}

func TestPageController_ListAppliesFilters(t *testing.T) {
	var posts atomic.Int32
	var body string
	var mu sync.Mutex
	h := newHarness(t, roomsBackend(&posts, &body, &mu), registerRooms)

	doc := h.doc(h.do(http.MethodGet, "/cuartos?estado=OCUPADO", nil))
	rows := doc.Find("#cuartos-table tbody tr[data-id]")
	require.Equal(t, 1, rows.Length())
	id, _ := rows.Attr("data-id")
	assert.Equal(t, "5", id)
	assert.Equal(t, 1, doc.Find(`select[name="estado"] option[value="OCUPADO"][selected]`).Length())
}

func TestPageController_EditModalPrefilled(t *testing.T) {
	var posts atomic.Int32
	var body string
	var mu sync.Mutex
	h := newHarness(t, roomsBackend(&posts, &body, &mu), registerRooms)

	doc := h.doc(h.do(http.MethodGet, "/cuartos?modal=edit&id=4", nil))
	modal := doc.Find(".modal")
	require.Equal(t, 1, modal.Length())
	action, _ := modal.Find("form").Attr("action")
	assert.Equal(t, "/cuartos/4", action)
	name, _ := modal.Find("#f-nombre").Attr("value")
	assert.Equal(t, "<b>Suite</b>", name)
	assert.Equal(t, 1, modal.Find(`#f-propietarioId option[value="1"][selected]`).Length())
}

func TestPageController_CreateValidationKeepsModalOpen(t *testing.T) {
	var posts atomic.Int32
	var body string
	var mu sync.Mutex
	h := newHarness(t, roomsBackend(&posts, &body, &mu), registerRooms)

	rec := h.do(http.MethodPost, "/cuartos", url.Values{
		"nombre":        {""},
		"propietarioId": {"1"},
		"precio":        {"300"},
		"estado":        {"DISPONIBLE"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	doc := h.doc(rec)
	assert.Equal(t, "Campo obligatorio", strings.TrimSpace(doc.Find(".has-error .field-error").First().Text()))
	assert.Equal(t, 1, doc.Find(".toast-warning").Length())
	assert.Equal(t, int32(0), posts.Load())
}

func TestPageController_ModalCloseKeepsFilters(t *testing.T) {
	var posts atomic.Int32
	var body string
	var mu sync.Mutex
	h := newHarness(t, roomsBackend(&posts, &body, &mu), registerRooms)

	doc := h.doc(h.do(http.MethodGet, "/cuartos?estado=OCUPADO&modal=new", nil))
	backdrop := doc.Find(".modal-backdrop")
	require.Equal(t, 1, backdrop.Length())
	closeURL, _ := backdrop.Find(".modal .modal-close").Attr("href")
	assert.Equal(t, "/cuartos?estado=OCUPADO", closeURL)
	assert.Equal(t, 1, backdrop.Find(`.modal form[method="post"] button[type="submit"]`).Length())
}

func TestPageController_CreateRejectsBlankName(t *testing.T) {
	var posts atomic.Int32
	var body string
	var mu sync.Mutex
	h := newHarness(t, roomsBackend(&posts, &body, &mu), registerRooms)

	rec := h.do(http.MethodPost, "/cuartos", url.Values{
		"nombre":        {"   "},
		"propietarioId": {"1"},
		"precio":        {"300"},
		"estado":        {"DISPONIBLE"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	doc := h.doc(rec)
	assert.Equal(t, "Campo obligatorio", strings.TrimSpace(doc.Find(".has-error .field-error").First().Text()))
	assert.Equal(t, int32(0), posts.Load())
}

func TestPageController_SecondSubmitWhileInFlightIsRejected(t *testing.T) {
	var posts atomic.Int32
	entered := make(chan struct{})
	unblock := make(chan struct{})
	h := newHarness(t, func(api *gin.RouterGroup) {
		api.GET("/propietarios", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":1,"nombre":"Rosa"}]`) })
		api.GET("/cuartos", func(c *gin.Context) { c.String(http.StatusOK, `[]`) })
		api.POST("/cuartos", func(c *gin.Context) {
			if posts.Add(1) == 1 {
				close(entered)
				<-unblock
			}
			c.Status(http.StatusCreated)
		})
	}, registerRooms)

	form := url.Values{
		"nombre":        {"Nuevo"},
		"propietarioId": {"1"},
		"precio":        {"300"},
		"estado":        {"DISPONIBLE"},
	}
	first := make(chan int, 1)
	go func() { first <- h.do(http.MethodPost, "/cuartos", form).Code }()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first submit never reached the backend")
	}

	rec := h.do(http.MethodPost, "/cuartos", form)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cuartos", rec.Header().Get("Location"))
	assert.Equal(t, int32(1), posts.Load())

	var toasts []services.Toast
	found, err := h.storage().Get(models.KeyToast, &toasts)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Operación en curso", toasts[0].Title)

	close(unblock)
	assert.Equal(t, http.StatusSeeOther, <-first)
	assert.Equal(t, int32(1), posts.Load())

	rec = h.do(http.MethodPost, "/cuartos", form)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, int32(2), posts.Load())
}

func TestPageController_CreateRedirectsWithToast(t *testing.T) {
	var posts atomic.Int32
	var body string
	var mu sync.Mutex
	h := newHarness(t, roomsBackend(&posts, &body, &mu), registerRooms)

	rec := h.do(http.MethodPost, "/cuartos", url.Values{
		"nombre":        {"Nuevo"},
		"propietarioId": {"1"},
		"precio":        {"300"},
		"estado":        {"disponible"},
		"_query":        {"estado=DISPONIBLE"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cuartos?estado=DISPONIBLE", rec.Header().Get("Location"))
	assert.Equal(t, int32(1), posts.Load())
	mu.Lock()
	assert.Contains(t, body, `"estado":"DISPONIBLE"`)
	mu.Unlock()

	doc := h.doc(h.do(http.MethodGet, "/cuartos", nil))
	assert.Equal(t, "Cuarto creado correctamente", strings.TrimSpace(doc.Find(".toast-success .toast-message").Text()))

	doc = h.doc(h.do(http.MethodGet, "/cuartos", nil))
	assert.Equal(t, 0, doc.Find(".toast").Length())
}

func TestPageController_DeleteFailureShowsBackendMessage(t *testing.T) {
	var posts atomic.Int32
	var body string
	var mu sync.Mutex
	h := newHarness(t, roomsBackend(&posts, &body, &mu), registerRooms)

	rec := h.do(http.MethodPost, "/cuartos/4/delete", url.Values{})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	doc := h.doc(rec)
	assert.Equal(t, "db locked", strings.TrimSpace(doc.Find(".toast-error .toast-message").Text()))
	assert.Equal(t, "Error al eliminar Cuarto", strings.TrimSpace(doc.Find(".toast-error .toast-title").Text()))
	state, _ := doc.Find(".modal").Attr("data-state")
	assert.Equal(t, "confirming-delete", state)
	assert.Equal(t, 2, doc.Find("#cuartos-table tbody tr[data-id]").Length())
}

func TestPageController_UnknownActionIs404(t *testing.T) {
	var posts atomic.Int32
	var body string
	var mu sync.Mutex
	h := newHarness(t, roomsBackend(&posts, &body, &mu), registerRooms)

	rec := h.do(http.MethodPost, "/cuartos/4/explotar", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPageController_ExpiredTokenRedirectsToLogin(t *testing.T) {
	h := newHarness(t, func(api *gin.RouterGroup) {
		api.GET("/propietarios", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "token expirado"})
		})
		api.GET("/cuartos", func(c *gin.Context) { c.String(http.StatusOK, `[]`) })
	}, registerRooms)

	rec := h.do(http.MethodGet, "/cuartos", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	_, ok := h.session().Token()
	assert.False(t, ok)

	var toasts []services.Toast
	found, err := h.storage().Get(models.KeyToast, &toasts)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Sesión expirada", toasts[0].Title)
}

func TestPageController_RequiresSession(t *testing.T) {
	h := newHarness(t, func(api *gin.RouterGroup) {}, registerRooms)
	require.NoError(t, h.session().Clear())

	rec := h.do(http.MethodGet, "/cuartos", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&services.ValidationError{Fields: map[string]string{"x": "y"}}))
	assert.Equal(t, http.StatusConflict, statusFor(services.ErrBusy))
	assert.Equal(t, http.StatusBadGateway, statusFor(&services.HTTPError{Status: 500, Message: "boom"}))
}
