package services

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rental-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
}

func (f *fakeBackend) record(c *gin.Context) {
	raw, _ := io.ReadAll(c.Request.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	key := c.Request.Method + " " + c.Request.URL.Path
	f.requests = append(f.requests, key)
	if f.bodies == nil {
		f.bodies = map[string]string{}
	}
	f.bodies[key] = string(raw)
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r == key {
			n++
		}
	}
	return n
}

func (f *fakeBackend) body(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

func TestEntityViewController_EmptyRoomNameNeverPosts(t *testing.T) {
	fb := &fakeBackend{}
	client, _ := newBackend(t, func(api *gin.RouterGroup) {
		api.GET("/propietarios", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":1,"nombre":"Rosa"}]`) })
		api.GET("/cuartos", func(c *gin.Context) { c.String(http.StatusOK, `[]`) })
		api.POST("/cuartos", func(c *gin.Context) {
			fb.record(c)
			c.Status(http.StatusCreated)
		})
	})
	vc := NewEntityViewController(RoomPage(), client, NewNotifier(ToastReplace, 4*time.Second), fixedNow)
	require.NoError(t, vc.Init(context.Background()))
	vc.OpenCreate()

	err := vc.Submit(context.Background(), url.Values{
		"nombre":        {""},
		"propietarioId": {"1"},
		"precio":        {"300"},
		"estado":        {"DISPONIBLE"},
	})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Campo obligatorio", valErr.Fields["nombre"])
	assert.Equal(t, 0, fb.count("POST /api/cuartos"))
	assert.Equal(t, ModalCreating, vc.Form.State())

	view := vc.View()
	require.True(t, view.Modal.Open)
	for _, field := range view.Modal.Fields {
		if field.Name == "nombre" {
			assert.Equal(t, "Campo obligatorio", field.Error)
		}
		if field.Name == "precio" {
			assert.Equal(t, "300", field.Value)
		}
	}
}

func TestEntityViewController_BlankRoomNameNeverPosts(t *testing.T) {
	fb := &fakeBackend{}
	client, _ := newBackend(t, func(api *gin.RouterGroup) {
		api.GET("/propietarios", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":1,"nombre":"Rosa"}]`) })
		api.GET("/cuartos", func(c *gin.Context) { c.String(http.StatusOK, `[]`) })
		api.POST("/cuartos", func(c *gin.Context) {
			fb.record(c)
			c.Status(http.StatusCreated)
		})
	})
	vc := NewEntityViewController(RoomPage(), client, NewNotifier(ToastReplace, 4*time.Second), fixedNow)
	require.NoError(t, vc.Init(context.Background()))

	for _, name := range []string{"   ", "\t", " \n "} {
		vc.OpenCreate()
		err := vc.Submit(context.Background(), url.Values{
			"nombre":        {name},
			"propietarioId": {"1"},
			"precio":        {"300"},
			"estado":        {"DISPONIBLE"},
		})
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr, "nombre %q", name)
		assert.Equal(t, "Campo obligatorio", valErr.Fields["nombre"])
		assert.Equal(t, ModalCreating, vc.Form.State())
	}
	assert.Equal(t, 0, fb.count("POST /api/cuartos"))
}

func TestEntityViewController_FailedDeleteKeepsCache(t *testing.T) {
	client, _ := newBackend(t, func(api *gin.RouterGroup) {
		api.GET("/inquilinos", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":1,"nombre":"Ana"}]`) })
		api.GET("/cuartos", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":10,"nombre":"A-101"}]`) })
		api.GET("/contratos", func(c *gin.Context) {
			c.String(http.StatusOK, `[{"id":5,"inquilinoId":1,"cuartoId":10,"estado":"ACTIVO"},{"id":6,"inquilinoId":1,"cuartoId":10,"estado":"FINALIZADO"}]`)
		})
		api.DELETE("/contratos/:id", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db locked"})
		})
	})
	notifier := NewNotifier(ToastReplace, 4*time.Second)
	vc := NewEntityViewController(ContractPage(), client, notifier, fixedNow)
	require.NoError(t, vc.Init(context.Background()))
	before := vc.Cache.All()

	require.True(t, vc.OpenDelete(5))
	err := vc.ConfirmDelete(context.Background())
	require.Error(t, err)

	toasts := notifier.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "db locked", toasts[0].Message)
	assert.Equal(t, ToastError, toasts[0].Kind)
	assert.Equal(t, before, vc.Cache.All())
	assert.Equal(t, ModalConfirmingDelete, vc.Form.State())
}

func TestEntityViewController_SubmitReloadsAndCloses(t *testing.T) {
	fb := &fakeBackend{}
	var created atomic.Bool
	client, _ := newBackend(t, func(api *gin.RouterGroup) {
		api.GET("/propietarios", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":1,"nombre":"Rosa"}]`) })
		api.GET("/cuartos", func(c *gin.Context) {
			if created.Load() {
				c.String(http.StatusOK, `[{"id":1,"propietarioId":1,"nombre":"A-101","precio":300,"estado":"DISPONIBLE"}]`)
				return
			}
			c.String(http.StatusOK, `[]`)
		})
		api.POST("/cuartos", func(c *gin.Context) {
			fb.record(c)
			created.Store(true)
			c.JSON(http.StatusCreated, gin.H{"id": 1})
		})
	})
	notifier := NewNotifier(ToastReplace, 4*time.Second)
	vc := NewEntityViewController(RoomPage(), client, notifier, fixedNow)
	require.NoError(t, vc.Init(context.Background()))
	require.Equal(t, 0, vc.Cache.Len())

	vc.OpenCreate()
	err := vc.Submit(context.Background(), url.Values{
		"nombre":        {" A-101 "},
		"propietarioId": {"1"},
		"precio":        {"300"},
		"estado":        {"disponible"},
		"descripcion":   {""},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"propietarioId":1,"nombre":"A-101","precio":300,"estado":"DISPONIBLE","descripcion":null}`, fb.body("POST /api/cuartos"))
	assert.Equal(t, ModalClosed, vc.Form.State())
	assert.Equal(t, 1, vc.Cache.Len())
	require.Len(t, notifier.Toasts(), 1)
	assert.Equal(t, "Cuarto creado correctamente", notifier.Toasts()[0].Message)
}

func TestEntityViewController_EditSendsPut(t *testing.T) {
	fb := &fakeBackend{}
	client, _ := newBackend(t, func(api *gin.RouterGroup) {
		api.GET("/propietarios", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":1,"nombre":"Rosa"},{"id":2,"nombre":"Raúl"}]`) })
		api.GET("/cuartos", func(c *gin.Context) {
			c.String(http.StatusOK, `[{"id":4,"propietarioId":1,"nombre":"A","precio":100,"estado":"OCUPADO","descripcion":"vista"}]`)
		})
		api.PUT("/cuartos/:id", func(c *gin.Context) {
			fb.record(c)
			c.Status(http.StatusNoContent)
		})
	})
	vc := NewEntityViewController(RoomPage(), client, NewNotifier(ToastReplace, 4*time.Second), fixedNow)
	require.NoError(t, vc.Init(context.Background()))

	require.True(t, vc.OpenEdit(4))
	values := vc.Form.Values()
	values.Set("propietarioId", "2")
	require.NoError(t, vc.Submit(context.Background(), values))

	assert.Equal(t, 1, fb.count("PUT /api/cuartos/4"))
	assert.JSONEq(t, `{"propietarioId":2,"nombre":"A","precio":100,"estado":"OCUPADO","descripcion":"vista"}`, fb.body("PUT /api/cuartos/4"))
}

func TestEntityViewController_RunAction(t *testing.T) {
	fb := &fakeBackend{}
	var attended atomic.Bool
	client, _ := newBackend(t, func(api *gin.RouterGroup) {
		api.GET("/cuartos", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":10,"nombre":"A-101"}]`) })
		api.GET("/mantenimientos", func(c *gin.Context) {
			status := "PENDIENTE"
			if attended.Load() {
				status = "ATENDIDO"
			}
			c.String(http.StatusOK, `[{"id":3,"cuartoId":10,"descripcion":"fuga","estado":"`+status+`"}]`)
		})
		api.PATCH("/mantenimientos/:id/atender", func(c *gin.Context) {
			fb.record(c)
			attended.Store(true)
			c.Status(http.StatusOK)
		})
	})
	notifier := NewNotifier(ToastReplace, 4*time.Second)
	vc := NewEntityViewController(MaintenancePage(), client, notifier, fixedNow)
	require.NoError(t, vc.Init(context.Background()))

	require.NoError(t, vc.RunAction(context.Background(), "atender", 99))
	assert.Equal(t, 0, fb.count("PATCH /api/mantenimientos/99/atender"))

	require.NoError(t, vc.RunAction(context.Background(), "atender", 3))
	assert.Equal(t, 1, fb.count("PATCH /api/mantenimientos/3/atender"))
	rec, ok := vc.Cache.FindByID(3)
	require.True(t, ok)
	assert.Equal(t, models.MaintenanceAttended, rec.Status)
	assert.Equal(t, "Mantenimiento marcado como atendido", notifier.Toasts()[0].Message)

	assert.ErrorIs(t, vc.RunAction(context.Background(), "desconocida", 3), ErrNoSelection)
}

func TestEntityViewController_SourceFollowsFilter(t *testing.T) {
	var hits sync.Map
	client, _ := newBackend(t, func(api *gin.RouterGroup) {
		api.GET("/contratos", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":5,"inquilinoId":1}]`) })
		api.GET("/inquilinos", func(c *gin.Context) { c.String(http.StatusOK, `[{"id":1,"nombre":"Ana"}]`) })
		api.GET("/pagos", func(c *gin.Context) {
			hits.Store("all", true)
			c.String(http.StatusOK, `[]`)
		})
		api.GET("/pagos/inquilino/:id", func(c *gin.Context) {
			hits.Store("tenant-"+c.Param("id"), true)
			c.String(http.StatusOK, `[{"id":8,"contratoId":5,"monto":50,"estado":"PAGADO"}]`)
		})
	})
	vc := NewEntityViewController(PaymentPage(), client, NewNotifier(ToastReplace, 4*time.Second), fixedNow)
	vc.SetFilters(FilterState{Values: map[string]string{"inquilinoId": "1"}})
	require.NoError(t, vc.Init(context.Background()))

	_, usedTenantPath := hits.Load("tenant-1")
	_, usedAll := hits.Load("all")
	assert.True(t, usedTenantPath)
	assert.False(t, usedAll)

	visible := vc.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Ana", paymentTenantName(visible[0], vc.Refs))
}

func TestEntityViewController_InitFailureNotifies(t *testing.T) {
	client, _ := newBackend(t, func(api *gin.RouterGroup) {
		api.GET("/inquilinos", func(c *gin.Context) { c.String(http.StatusOK, `[]`) })
		api.GET("/cuartos", func(c *gin.Context) { c.String(http.StatusServiceUnavailable, "mantenimiento programado") })
	})
	notifier := NewNotifier(ToastReplace, 4*time.Second)
	vc := NewEntityViewController(ContractPage(), client, notifier, fixedNow)

	require.Error(t, vc.Init(context.Background()))
	toasts := notifier.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Error al cargar Contratos", toasts[0].Title)
	assert.Equal(t, "mantenimiento programado", toasts[0].Message)

	view := vc.View()
	assert.Equal(t, 0, view.Total)
	assert.Contains(t, string(view.Rows), "No hay registros")
}

func TestEntityViewController_BusyRejectsSecondSubmit(t *testing.T) {
	vc := NewEntityViewController(RoomPage(), NewRestClient("http://127.0.0.1:0/api", time.Second), NewNotifier(ToastReplace, 4*time.Second), fixedNow)
	vc.OpenCreate()
	require.True(t, vc.Form.begin())
	defer vc.Form.end()

	assert.ErrorIs(t, vc.Submit(context.Background(), url.Values{}), ErrBusy)
}
