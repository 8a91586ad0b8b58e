package controllers

import (
	"net/http"
	"net/url"

	"rental-admin/models"
	"rental-admin/services"
	"rental-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const queryField = "_query"

// PageController binds one entity page to HTTP:
//
//	GET  /{page}              list, with ?modal=new|edit|delete&id=
//	POST /{page}              create
//	POST /{page}/:id          update
//	POST /{page}/:id/delete   confirm delete
//	POST /{page}/:id/:action  row action
type PageController[T models.Record, F any] struct {
	app  *Console
	spec *services.PageSpec[T, F]
}

func NewPageController[T models.Record, F any](app *Console, spec *services.PageSpec[T, F]) *PageController[T, F] {
	return &PageController[T, F]{app: app, spec: spec}
}

func (pc *PageController[T, F]) Register(rg *gin.RouterGroup) {
	g := rg.Group("/" + pc.spec.Name)
	g.GET("", pc.List)
	g.POST("", pc.Create)
	g.POST("/:id", pc.Update)
	g.POST("/:id/:action", pc.Action)
}

// controller builds the page's view controller with the filters of query.
func (pc *PageController[T, F]) controller(c *gin.Context, query url.Values) *services.EntityViewController[T, F] {
	vc := services.NewEntityViewController(pc.spec, pc.app.client(c), pc.app.notifier(c), pc.app.Now)
	vc.SetFilters(services.FilterStateFromQuery(pc.spec.Filters, query))
	return vc
}

// init loads the page. It reports false when the response has already been
// written.
func (pc *PageController[T, F]) init(c *gin.Context, vc *services.EntityViewController[T, F]) bool {
	if err := vc.Init(c.Request.Context()); err != nil && isUnauthorized(err) {
		pc.app.expired(c, vc.Notifier)
		return false
	}
	return true
}

func (pc *PageController[T, F]) List(c *gin.Context) {
	query := c.Request.URL.Query()
	vc := pc.controller(c, query)
	if !pc.init(c, vc) {
		return
	}

	switch query.Get("modal") {
	case "new":
		vc.OpenCreate()
	case "edit":
		if id, ok := utils.ParseID(query.Get("id")); ok {
			vc.OpenEdit(id)
		}
	case "delete":
		if id, ok := utils.ParseID(query.Get("id")); ok {
			vc.OpenDelete(id)
		}
	}
	pc.render(c, http.StatusOK, vc)
}

func (pc *PageController[T, F]) Create(c *gin.Context) {
	values, query := pc.postValues(c)
	vc := pc.controller(c, query)
	release, ok := pc.begin(c, vc)
	if !ok {
		return
	}
	defer release()
	if !pc.init(c, vc) {
		return
	}
	vc.OpenCreate()
	pc.submit(c, vc, values)
}

func (pc *PageController[T, F]) Update(c *gin.Context) {
	values, query := pc.postValues(c)
	vc := pc.controller(c, query)
	release, ok := pc.begin(c, vc)
	if !ok {
		return
	}
	defer release()
	if !pc.init(c, vc) {
		return
	}
	id, ok := utils.ParseID(c.Param("id"))
	if !ok || !vc.OpenEdit(id) {
		vc.Notifier.Show("El registro ya no existe", services.ToastWarning)
		pc.app.redirect(c, vc.Notifier, pc.listURL(vc))
		return
	}
	pc.submit(c, vc, values)
}

// Action confirms a delete or runs a row action.
func (pc *PageController[T, F]) Action(c *gin.Context) {
	_, query := pc.postValues(c)
	vc := pc.controller(c, query)
	release, ok := pc.begin(c, vc)
	if !ok {
		return
	}
	defer release()
	if !pc.init(c, vc) {
		return
	}
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		pc.app.redirect(c, vc.Notifier, pc.listURL(vc))
		return
	}

	ctx := c.Request.Context()
	if c.Param("action") == "delete" {
		if !vc.OpenDelete(id) {
			pc.app.redirect(c, vc.Notifier, pc.listURL(vc))
			return
		}
		if err := vc.ConfirmDelete(ctx); err != nil {
			if isUnauthorized(err) {
				pc.app.expired(c, vc.Notifier)
				return
			}
			pc.render(c, statusFor(err), vc)
			return
		}
		pc.app.redirect(c, vc.Notifier, pc.listURL(vc))
		return
	}

	err := vc.RunAction(ctx, c.Param("action"), id)
	switch {
	case errors.Is(err, services.ErrNoSelection):
		utils.JSONError(c, http.StatusNotFound, "acción desconocida")
		return
	case isUnauthorized(err):
		pc.app.expired(c, vc.Notifier)
		return
	}
	pc.app.redirect(c, vc.Notifier, pc.listURL(vc))
}

// begin guards a mutation against a second one from the same browser on
// this page. A rejected request goes back to the list untouched.
func (pc *PageController[T, F]) begin(c *gin.Context, vc *services.EntityViewController[T, F]) (func(), bool) {
	release, ok := pc.app.begin(c, pc.spec.Name)
	if !ok {
		vc.Notifier.ShowTitled("Operación en curso", "Espere a que termine la operación anterior", services.ToastWarning)
		pc.app.redirect(c, vc.Notifier, pc.listURL(vc))
		return nil, false
	}
	return release, true
}

func (pc *PageController[T, F]) submit(c *gin.Context, vc *services.EntityViewController[T, F], values url.Values) {
	if err := vc.Submit(c.Request.Context(), values); err != nil {
		if isUnauthorized(err) {
			pc.app.expired(c, vc.Notifier)
			return
		}
		pc.render(c, statusFor(err), vc)
		return
	}
	pc.app.redirect(c, vc.Notifier, pc.listURL(vc))
}

func (pc *PageController[T, F]) render(c *gin.Context, status int, vc *services.EntityViewController[T, F]) {
	pc.app.render(c, status, "entity", pc.spec.Title, pc.spec.Endpoint, vc.Notifier, vc.View())
}

// postValues splits the posted form into the record's values and the list
// query the form was opened from.
func (pc *PageController[T, F]) postValues(c *gin.Context) (url.Values, url.Values) {
	if err := c.Request.ParseForm(); err != nil {
		return url.Values{}, url.Values{}
	}
	values := url.Values{}
	for k, v := range c.Request.PostForm {
		if k != queryField {
			values[k] = v
		}
	}
	query, err := url.ParseQuery(c.Request.PostForm.Get(queryField))
	if err != nil {
		query = url.Values{}
	}
	return values, query
}

func (pc *PageController[T, F]) listURL(vc *services.EntityViewController[T, F]) string {
	if q := vc.Filters.Query().Encode(); q != "" {
		return pc.spec.Endpoint + "?" + q
	}
	return pc.spec.Endpoint
}

func statusFor(err error) int {
	var valErr *services.ValidationError
	switch {
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
