package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthenticated means no auth token is stored for the browser.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrBusy is returned when an operation is already in flight.
	ErrBusy = errors.New("operation already in progress")
	// ErrNoSelection is returned when a submit or confirm has no open modal.
	ErrNoSelection = errors.New("no modal is open")
)

// NetworkError is a request that failed before any response arrived.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a response whose status is not 2xx. Message holds the
// normalized, user-facing text.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

// ValidationError lists local form errors keyed by field name. No request
// is sent when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "Complete correctamente los campos: " + strings.Join(names, ", ")
}

// UserMessage is the text shown to the user for err.
func UserMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "No se pudo conectar con el servidor"
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	if errors.Is(err, ErrUnauthenticated) {
		return "Sesión expirada, inicie sesión nuevamente"
	}
	return err.Error()
}
