package services

import (
	"net/url"
	"strings"

	"rental-admin/models"
)

// SearchParam is the query key of the free-text term.
const SearchParam = "q"

// FilterDef is one structured filter of a page. An empty value disables it.
type FilterDef[T models.Record] struct {
	Key     string
	Label   string
	Options func(refs Refs) []models.Option
	Match   func(rec T, value string, refs Refs) bool
}

// FilterState is the transient filter selection of a page.
type FilterState struct {
	Values map[string]string
	Search string
}

// FilterStateFromQuery reads the known filter keys and the search term.
func FilterStateFromQuery[T models.Record](defs []FilterDef[T], q url.Values) FilterState {
	st := FilterState{Values: map[string]string{}, Search: strings.TrimSpace(q.Get(SearchParam))}
	for _, def := range defs {
		if v := strings.TrimSpace(q.Get(def.Key)); v != "" {
			st.Values[def.Key] = v
		}
	}
	return st
}

// Active reports whether any filter or the search term is set.
func (s FilterState) Active() bool {
	return s.Search != "" || len(s.Values) > 0
}

// Query encodes the state back into query parameters.
func (s FilterState) Query() url.Values {
	q := url.Values{}
	for k, v := range s.Values {
		q.Set(k, v)
	}
	if s.Search != "" {
		q.Set(SearchParam, s.Search)
	}
	return q
}

// FilterEngine applies a page's filters and search to its cache. It never
// talks to the server.
type FilterEngine[T models.Record] struct {
	Filters      []FilterDef[T]
	SearchFields func(rec T, refs Refs) []string
}

// Apply returns the records matching state, in cache order. A search term
// is matched over the whole collection and ignores structured filters;
// without one every active filter must match.
func (e FilterEngine[T]) Apply(records []T, state FilterState, refs Refs) []T {
	if state.Search != "" {
		return e.search(records, state.Search, refs)
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if e.matches(rec, state, refs) {
			out = append(out, rec)
		}
	}
	return out
}

func (e FilterEngine[T]) matches(rec T, state FilterState, refs Refs) bool {
	for _, def := range e.Filters {
		value, ok := state.Values[def.Key]
		if !ok || value == "" {
			continue
		}
		if !def.Match(rec, value, refs) {
			return false
		}
	}
	return true
}

func (e FilterEngine[T]) search(records []T, term string, refs Refs) []T {
	term = strings.ToLower(term)
	out := make([]T, 0, len(records))
	if e.SearchFields == nil {
		return out
	}
	for _, rec := range records {
		for _, field := range e.SearchFields(rec, refs) {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// EqualFold is the common "field equals selected option" predicate.
func EqualFold(field, value string) bool {
	return strings.EqualFold(strings.TrimSpace(field), strings.TrimSpace(value))
}
