package services

import (
	"context"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"rental-admin/models"
	"rental-admin/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultDeleteMessage = "¿Está seguro de eliminar este registro? Esta acción no se puede deshacer."

// PageAction is a row-level state transition such as PATCH .../atender.
type PageAction[T models.Record] struct {
	RowAction[T]
	Title   string
	Success string
	Run     func(ctx context.Context, client *RestClient, rec T) error
}

// PageSpec declares one entity management page.
type PageSpec[T models.Record, F any] struct {
	Name     string
	Title    string
	Singular string
	Icon     string
	Endpoint string

	// Source picks the list path for the current filters, such as
	// /pagos/inquilino/{id}. Nil or "" loads Endpoint.
	Source func(state FilterState) string

	// NewRefs builds fresh caches for the collections this page joins.
	NewRefs      func() Refs
	Columns      []Column[T]
	Filters      []FilterDef[T]
	SearchFields func(rec T, refs Refs) []string
	Actions      []PageAction[T]

	// Form is nil for pages without create/edit.
	Form          *FormSpec[T, F]
	CanDelete     bool
	DeleteMessage func(rec T, refs Refs) string
	EmptyMessage  string
}

// BasePath is the console path of the page, which mirrors the REST path.
func (s *PageSpec[T, F]) BasePath() string { return s.Endpoint }

// EntityViewController owns the caches, selection, filters and modal of one
// page view.
type EntityViewController[T models.Record, F any] struct {
	Spec     *PageSpec[T, F]
	Client   *RestClient
	Notifier *Notifier
	Cache    *EntityCache[T]
	Refs     Refs
	Filters  FilterState
	Form     *FormController[T, F]

	engine   FilterEngine[T]
	renderer Renderer[T]
	log      *logrus.Entry
}

func NewEntityViewController[T models.Record, F any](spec *PageSpec[T, F], client *RestClient, notifier *Notifier, now func() time.Time) *EntityViewController[T, F] {
	cache := NewEntityCache[T](spec.Endpoint)
	refs := Refs{}
	if spec.NewRefs != nil {
		refs = spec.NewRefs()
	}
	rowActions := make([]RowAction[T], 0, len(spec.Actions))
	for _, a := range spec.Actions {
		rowActions = append(rowActions, a.RowAction)
	}
	return &EntityViewController[T, F]{
		Spec:     spec,
		Client:   client,
		Notifier: notifier,
		Cache:    cache,
		Refs:     refs,
		Filters:  FilterState{Values: map[string]string{}},
		Form:     NewFormController(spec.Endpoint, spec.Form, cache, now),
		engine:   FilterEngine[T]{Filters: spec.Filters, SearchFields: spec.SearchFields},
		renderer: Renderer[T]{
			BasePath:     spec.Endpoint,
			Columns:      spec.Columns,
			Actions:      rowActions,
			CanEdit:      spec.Form != nil,
			CanDelete:    spec.CanDelete,
			EmptyMessage: spec.EmptyMessage,
		},
		log: utils.Logger.WithField("page", spec.Name),
	}
}

// Init loads the joined caches concurrently and then the page's own cache,
// so rows never render against a missing reference.
func (c *EntityViewController[T, F]) Init(ctx context.Context) error {
	if err := c.load(ctx); err != nil {
		c.Notifier.ShowTitled("Error al cargar "+c.Spec.Title, UserMessage(err), ToastError)
		return err
	}
	return nil
}

func (c *EntityViewController[T, F]) load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, ref := range c.Refs {
		g.Go(func() error { return ref.Load(gctx, c.Client) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	path := c.Spec.Endpoint
	if c.Spec.Source != nil {
		if p := c.Spec.Source(c.Filters); p != "" {
			path = p
		}
	}
	return c.Cache.LoadFrom(ctx, c.Client, path)
}

// SetFilters replaces the filter state; it is re-applied on every render.
func (c *EntityViewController[T, F]) SetFilters(state FilterState) {
	if state.Values == nil {
		state.Values = map[string]string{}
	}
	c.Filters = state
}

// Visible returns Cache ∩ Filter State in cache order.
func (c *EntityViewController[T, F]) Visible() []T {
	return c.engine.Apply(c.Cache.All(), c.Filters, c.Refs)
}

func (c *EntityViewController[T, F]) RenderRows() template.HTML {
	return c.renderer.Render(c.Visible(), c.Refs, c.Filters.Query())
}

func (c *EntityViewController[T, F]) OpenCreate() { c.Form.OpenCreate() }

func (c *EntityViewController[T, F]) OpenEdit(id int64) bool { return c.Form.OpenEdit(id) }

func (c *EntityViewController[T, F]) OpenDelete(id int64) bool {
	if !c.Spec.CanDelete {
		return false
	}
	msg := defaultDeleteMessage
	if rec, ok := c.Cache.FindByID(id); ok && c.Spec.DeleteMessage != nil {
		msg = c.Spec.DeleteMessage(rec, c.Refs)
	}
	return c.Form.OpenDelete(id, msg)
}

func (c *EntityViewController[T, F]) CloseModal() { c.Form.Close() }

// Submit sends the open form. Validation failures never reach the backend.
// On success the modal closes and the caches are reloaded; on failure the
// modal stays open with the submitted values.
func (c *EntityViewController[T, F]) Submit(ctx context.Context, values url.Values) error {
	if !c.Form.begin() {
		return ErrBusy
	}
	defer c.Form.end()

	creating := c.Form.State() == ModalCreating
	title := "Error al actualizar " + c.Spec.Singular
	if creating {
		title = "Error al crear " + c.Spec.Singular
	}

	method, path, payload, err := c.Form.Prepare(values, c.Refs)
	if err != nil {
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			c.Notifier.ShowTitled("Datos incompletos", UserMessage(err), ToastWarning)
		} else if !errors.Is(err, ErrNoSelection) {
			c.Notifier.ShowTitled(title, UserMessage(err), ToastError)
		}
		return err
	}

	if err := c.Client.Do(ctx, method, path, payload, nil); err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path}).Warnf("submit failed: %v", err)
		c.Notifier.ShowTitled(title, UserMessage(err), ToastError)
		return err
	}

	if creating {
		c.Notifier.Show(c.Spec.Singular+" creado correctamente", ToastSuccess)
	} else {
		c.Notifier.Show(c.Spec.Singular+" actualizado correctamente", ToastSuccess)
	}
	c.Form.Close()
	c.reloadAfterMutation(ctx)
	return nil
}

// ConfirmDelete issues the DELETE for the record awaiting confirmation.
// On failure the cache is left as it was.
func (c *EntityViewController[T, F]) ConfirmDelete(ctx context.Context) error {
	path, ok := c.Form.DeleteTarget()
	if !ok {
		return ErrNoSelection
	}
	if !c.Form.begin() {
		return ErrBusy
	}
	defer c.Form.end()

	if err := c.Client.Delete(ctx, path); err != nil {
		c.Notifier.ShowTitled("Error al eliminar "+c.Spec.Singular, UserMessage(err), ToastError)
		return err
	}
	c.Notifier.Show(c.Spec.Singular+" eliminado correctamente", ToastSuccess)
	c.Form.Close()
	c.reloadAfterMutation(ctx)
	return nil
}

// RunAction executes the named row action on a cached record. Unknown ids
// are ignored.
func (c *EntityViewController[T, F]) RunAction(ctx context.Context, name string, id int64) error {
	var action *PageAction[T]
	for i := range c.Spec.Actions {
		if c.Spec.Actions[i].Name == name {
			action = &c.Spec.Actions[i]
			break
		}
	}
	if action == nil {
		return ErrNoSelection
	}
	rec, ok := c.Cache.FindByID(id)
	if !ok {
		return nil
	}
	if action.Visible != nil && !action.Visible(rec) {
		return nil
	}
	if !c.Form.begin() {
		return ErrBusy
	}
	defer c.Form.end()

	if err := action.Run(ctx, c.Client, rec); err != nil {
		c.Notifier.ShowTitled(action.Title, UserMessage(err), ToastError)
		return err
	}
	c.Notifier.Show(action.Success, ToastSuccess)
	c.reloadAfterMutation(ctx)
	return nil
}

func (c *EntityViewController[T, F]) reloadAfterMutation(ctx context.Context) {
	if err := c.load(ctx); err != nil {
		c.log.Warnf("reload after mutation failed: %v", err)
		c.Notifier.ShowTitled("Error al recargar "+c.Spec.Title, UserMessage(err), ToastError)
	}
}

// View flattens the controller into the data the page template renders.
func (c *EntityViewController[T, F]) View() PageView {
	visible := c.Visible()
	v := PageView{
		Name:      c.Spec.Name,
		Title:     c.Spec.Title,
		Singular:  c.Spec.Singular,
		Icon:      c.Spec.Icon,
		BasePath:  c.Spec.Endpoint,
		Rows:      c.renderer.Render(visible, c.Refs, c.Filters.Query()),
		Total:     c.Cache.Len(),
		Shown:     len(visible),
		Search:    c.Filters.Search,
		CanCreate: c.Spec.Form != nil,
		Query:     c.Filters.Query().Encode(),
		Filtered:  c.Filters.Active(),
		Headers:   make([]string, 0, len(c.Spec.Columns)),
	}
	if v.CanCreate {
		q := c.Filters.Query()
		q.Set("modal", "new")
		v.NewURL = c.Spec.Endpoint + "?" + q.Encode()
	}
	for _, col := range c.Spec.Columns {
		v.Headers = append(v.Headers, col.Header)
	}
	for _, def := range c.Spec.Filters {
		fv := FilterView{Key: def.Key, Label: def.Label, Value: c.Filters.Values[def.Key]}
		if def.Options != nil {
			fv.Options = def.Options(c.Refs)
		}
		v.Filters = append(v.Filters, fv)
	}
	v.Modal = c.modalView()
	v.Toasts = c.Notifier.Toasts()
	return v
}

func (c *EntityViewController[T, F]) modalView() ModalView {
	state := c.Form.State()
	m := ModalView{State: state.String(), Open: state != ModalClosed, CloseURL: c.Spec.Endpoint}
	if q := c.Filters.Query().Encode(); q != "" {
		m.CloseURL += "?" + q
	}
	switch state {
	case ModalCreating:
		m.Title = "Nuevo " + c.Spec.Singular
		m.Action = c.Spec.Endpoint
	case ModalEditing:
		rec, _ := c.Form.Current()
		m.Title = "Editar " + c.Spec.Singular
		m.Action = c.Spec.Endpoint + "/" + strconv.FormatInt(rec.RecordID(), 10)
	case ModalConfirmingDelete:
		rec, _ := c.Form.Current()
		m.Title = "Eliminar " + c.Spec.Singular
		m.Action = c.Spec.Endpoint + "/" + strconv.FormatInt(rec.RecordID(), 10) + "/delete"
		m.ConfirmMessage = c.Form.ConfirmMessage()
		return m
	default:
		return m
	}

	values := c.Form.Values()
	errs := c.Form.FieldErrors()
	for _, def := range c.Spec.Form.Fields {
		fv := FieldView{
			Name:     def.Name,
			Label:    def.Label,
			Kind:     string(def.Kind),
			Required: def.Required || (def.RequiredOnCreate && state == ModalCreating),
			Step:     def.Step,
			Value:    values.Get(def.Name),
			Error:    errs[def.Name],
		}
		if def.Kind == FieldCheckbox {
			fv.Checked = fv.Value == "true"
		}
		if def.Options != nil {
			fv.Options = def.Options(c.Refs)
		}
		m.Fields = append(m.Fields, fv)
	}
	return m
}

// PageView is the template data of an entity page.
type PageView struct {
	Name      string
	Title     string
	Singular  string
	Icon      string
	BasePath  string
	Headers   []string
	Rows      template.HTML
	Total     int
	Shown     int
	Search    string
	Query     string
	Filtered  bool
	CanCreate bool
	NewURL    string
	Filters   []FilterView
	Modal     ModalView
	Toasts    []Toast
}

type FilterView struct {
	Key     string
	Label   string
	Value   string
	Options []models.Option
}

type ModalView struct {
	Open           bool
	State          string
	Title          string
	Action         string
	CloseURL       string
	ConfirmMessage string
	Fields         []FieldView
}

type FieldView struct {
	Name     string
	Label    string
	Kind     string
	Required bool
	Step     string
	Value    string
	Checked  bool
	Error    string
	Options  []models.Option
}
