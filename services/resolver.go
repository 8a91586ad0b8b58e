package services

import (
	"context"
	"sort"
	"strconv"

	"rental-admin/models"
)

// Fallback labels for unresolved references.
const (
	FallbackNA      = "N/A"
	FallbackUnknown = "Desconocido"
)

// ResolveForeignName looks id up in an already loaded cache. It never
// fetches.
func ResolveForeignName[X models.Record](cache *EntityCache[X], id int64, display func(X) string, fallback string) string {
	if cache == nil {
		return fallback
	}
	rec, ok := cache.FindByID(id)
	if !ok {
		return fallback
	}
	if name := display(rec); name != "" {
		return name
	}
	return fallback
}

// Reference is a cache joined by another page, erased to its display names.
type Reference struct {
	Name     string
	Fallback string

	load    func(ctx context.Context, client *RestClient) error
	find    func(id int64) (any, bool)
	lookup  func(id int64) (string, bool)
	options func() []models.Option
	size    func() int
}

func NewReference[X models.Record](name string, cache *EntityCache[X], display func(X) string, fallback string) *Reference {
	return &Reference{
		Name:     name,
		Fallback: fallback,
		load:     cache.Load,
		find: func(id int64) (any, bool) {
			return cache.FindByID(id)
		},
		lookup: func(id int64) (string, bool) {
			rec, ok := cache.FindByID(id)
			if !ok {
				return "", false
			}
			return display(rec), true
		},
		options: func() []models.Option {
			recs := cache.All()
			opts := make([]models.Option, 0, len(recs))
			for _, rec := range recs {
				opts = append(opts, models.Option{
					Value: strconv.FormatInt(rec.RecordID(), 10),
					Label: display(rec),
				})
			}
			return opts
		},
		size: cache.Len,
	}
}

func (r *Reference) Load(ctx context.Context, client *RestClient) error {
	return r.load(ctx, client)
}

// Resolve returns the display name of id or the reference's fallback.
func (r *Reference) Resolve(id int64) string {
	if name, ok := r.lookup(id); ok && name != "" {
		return name
	}
	return r.Fallback
}

// Has reports whether id is present in the joined cache.
func (r *Reference) Has(id int64) bool {
	_, ok := r.lookup(id)
	return ok
}

// Options lists the joined records for a picker, sorted by label.
func (r *Reference) Options() []models.Option {
	opts := r.options()
	sort.SliceStable(opts, func(i, j int) bool { return opts[i].Label < opts[j].Label })
	return opts
}

func (r *Reference) Len() int { return r.size() }

// Refs indexes the references of a page by name.
type Refs map[string]*Reference

// Name resolves id through the named reference; unknown references yield
// the N/A fallback.
func (r Refs) Name(ref string, id int64) string {
	if x, ok := r[ref]; ok {
		return x.Resolve(id)
	}
	return FallbackNA
}

func (r Refs) Options(ref string) []models.Option {
	if x, ok := r[ref]; ok {
		return x.Options()
	}
	return nil
}

func (r Refs) Has(ref string, id int64) bool {
	if x, ok := r[ref]; ok {
		return x.Has(id)
	}
	return false
}

// RefRecord returns the joined record behind id, typed.
func RefRecord[X models.Record](refs Refs, ref string, id int64) (X, bool) {
	var zero X
	x, ok := refs[ref]
	if !ok {
		return zero, false
	}
	rec, ok := x.find(id)
	if !ok {
		return zero, false
	}
	typed, ok := rec.(X)
	return typed, ok
}
