package services

import (
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"rental-admin/models"
	"rental-admin/utils"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
)

type ModalState int

const (
	ModalClosed ModalState = iota
	ModalCreating
	ModalEditing
	ModalConfirmingDelete
)

func (s ModalState) String() string {
	switch s {
	case ModalCreating:
		return "creating"
	case ModalEditing:
		return "editing"
	case ModalConfirmingDelete:
		return "confirming-delete"
	default:
		return "closed"
	}
}

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldNumber   FieldKind = "number"
	FieldDate     FieldKind = "date"
	FieldEmail    FieldKind = "email"
	FieldPassword FieldKind = "password"
	FieldSelect   FieldKind = "select"
	FieldTextarea FieldKind = "textarea"
	FieldCheckbox FieldKind = "checkbox"
)

// FieldDef describes one input of a modal form. Name matches the form tag
// of the page's form struct.
type FieldDef struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	// RequiredOnCreate makes the field mandatory only for new records.
	RequiredOnCreate bool
	Step             string
	Options          func(refs Refs) []models.Option
}

// FormSpec binds a record type to its form struct and backend payload.
type FormSpec[T models.Record, F any] struct {
	Fields     []FieldDef
	Blank      func(today string) F
	FromRecord func(rec T) F
	// Payload converts a validated form into the request body. It may
	// return a *ValidationError for values only checkable against refs.
	Payload func(f F, refs Refs) (any, error)
}

var (
	formDecoder = sync.OnceValue(func() *form.Decoder { return form.NewDecoder() })
	formEncoder = sync.OnceValue(func() *form.Encoder { return form.NewEncoder() })
	validate    = sync.OnceValue(func() *validator.Validate {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
		return v
	})
)

// FormController is the modal state machine of a page. It holds the
// selection (current record) and the values shown in the open form.
type FormController[T models.Record, F any] struct {
	basePath string
	spec     *FormSpec[T, F]
	cache    *EntityCache[T]
	now      func() time.Time

	state          ModalState
	current        *T
	confirmMessage string
	values         url.Values
	fieldErrors    map[string]string

	busy atomic.Bool
}

func NewFormController[T models.Record, F any](basePath string, spec *FormSpec[T, F], cache *EntityCache[T], now func() time.Time) *FormController[T, F] {
	if now == nil {
		now = time.Now
	}
	return &FormController[T, F]{basePath: basePath, spec: spec, cache: cache, now: now}
}

func (f *FormController[T, F]) State() ModalState { return f.state }

// Current returns the selected record, if any.
func (f *FormController[T, F]) Current() (T, bool) {
	if f.current == nil {
		var zero T
		return zero, false
	}
	return *f.current, true
}

func (f *FormController[T, F]) Values() url.Values { return f.values }

func (f *FormController[T, F]) FieldErrors() map[string]string { return f.fieldErrors }

func (f *FormController[T, F]) ConfirmMessage() string { return f.confirmMessage }

// OpenCreate clears the form and pre-fills its defaults.
func (f *FormController[T, F]) OpenCreate() {
	f.Close()
	if f.spec == nil {
		return
	}
	f.state = ModalCreating
	blank := f.spec.Blank(f.now().Format(utils.DateLayout))
	f.values = encodeForm(&blank)
}

// OpenEdit populates the form from the cached record. An id that is not
// cached leaves the controller untouched.
func (f *FormController[T, F]) OpenEdit(id int64) bool {
	if f.spec == nil {
		return false
	}
	rec, ok := f.cache.FindByID(id)
	if !ok {
		return false
	}
	f.Close()
	f.state = ModalEditing
	f.current = &rec
	populated := f.spec.FromRecord(rec)
	f.values = encodeForm(&populated)
	return true
}

// OpenDelete asks for confirmation before deleting the cached record.
func (f *FormController[T, F]) OpenDelete(id int64, message string) bool {
	rec, ok := f.cache.FindByID(id)
	if !ok {
		return false
	}
	f.Close()
	f.state = ModalConfirmingDelete
	f.current = &rec
	f.confirmMessage = message
	return true
}

// Close returns to the closed state and clears the selection.
func (f *FormController[T, F]) Close() {
	f.state = ModalClosed
	f.current = nil
	f.confirmMessage = ""
	f.values = nil
	f.fieldErrors = nil
}

// Prepare decodes and validates posted values and resolves the request to
// send: POST to the collection when creating, PUT to the record when
// editing. The values stay in the form so they can be corrected.
func (f *FormController[T, F]) Prepare(values url.Values, refs Refs) (method, path string, payload any, err error) {
	if f.spec == nil || (f.state != ModalCreating && f.state != ModalEditing) {
		return "", "", nil, ErrNoSelection
	}
	f.values = values
	f.fieldErrors = nil

	var decoded F
	if err := BindForm(values, &decoded); err != nil {
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			f.fieldErrors = f.withCreateErrors(valErr.Fields, values)
			return "", "", nil, &ValidationError{Fields: f.fieldErrors}
		}
		return "", "", nil, err
	}
	if missing := f.withCreateErrors(nil, values); len(missing) > 0 {
		f.fieldErrors = missing
		return "", "", nil, &ValidationError{Fields: missing}
	}

	payload, err = f.spec.Payload(decoded, refs)
	if err != nil {
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			f.fieldErrors = valErr.Fields
		}
		return "", "", nil, err
	}

	if f.state == ModalEditing && f.current != nil {
		return http.MethodPut, f.basePath + "/" + strconv.FormatInt((*f.current).RecordID(), 10), payload, nil
	}
	return http.MethodPost, f.basePath, payload, nil
}

// withCreateErrors adds an error for every RequiredOnCreate field left
// blank while creating.
func (f *FormController[T, F]) withCreateErrors(fields map[string]string, values url.Values) map[string]string {
	if f.state != ModalCreating {
		return fields
	}
	for _, def := range f.spec.Fields {
		if !def.RequiredOnCreate || strings.TrimSpace(values.Get(def.Name)) != "" {
			continue
		}
		if fields == nil {
			fields = map[string]string{}
		}
		fields[def.Name] = "Campo obligatorio"
	}
	return fields
}

// DeleteTarget returns the path of the record awaiting confirmation.
func (f *FormController[T, F]) DeleteTarget() (string, bool) {
	if f.state != ModalConfirmingDelete || f.current == nil {
		return "", false
	}
	return f.basePath + "/" + strconv.FormatInt((*f.current).RecordID(), 10), true
}

// begin marks an operation in flight; it fails while another one runs.
func (f *FormController[T, F]) begin() bool { return f.busy.CompareAndSwap(false, true) }

func (f *FormController[T, F]) end() { f.busy.Store(false) }

// BindForm decodes posted values into out, a pointer to a form struct, and
// validates it. Failures are reported as *ValidationError keyed by form
// field name.
func BindForm(values url.Values, out any) error {
	if err := formDecoder().Decode(out, values); err != nil {
		return &ValidationError{Fields: map[string]string{"form": "Formato inválido"}}
	}
	if err := validate().Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Wrap(err, "validate form")
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}

func encodeForm(v any) url.Values {
	values, err := formEncoder().Encode(v)
	if err != nil {
		utils.Logger.Warnf("encode form values: %v", err)
		return url.Values{}
	}
	return values
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "Campo obligatorio"
	case "number", "numeric":
		return "Debe ser un número"
	case "datetime":
		return "Fecha inválida (AAAA-MM-DD)"
	case "email":
		return "Correo inválido"
	case "min", "max":
		return "Longitud inválida"
	default:
		return "Valor inválido"
	}
}
