package services

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"rental-admin/models"
	"rental-admin/utils"
)

const defaultEmptyMessage = "No hay registros"

// Column renders one table cell. Text is always escaped; Badge wraps the
// escaped label in a status pill.
type Column[T models.Record] struct {
	Header string
	Text   func(rec T, refs Refs) string
	Badge  func(rec T) (label, tone string)
}

// RowAction is a state transition posted to BasePath/{id}/{Name}.
type RowAction[T models.Record] struct {
	Name    string
	Label   string
	Icon    string
	Visible func(rec T) bool
}

// Renderer turns records into table body rows.
type Renderer[T models.Record] struct {
	BasePath     string
	Columns      []Column[T]
	Actions      []RowAction[T]
	CanEdit      bool
	CanDelete    bool
	EmptyMessage string
}

// Render returns the complete table body for records. The output depends
// only on its inputs.
func (r Renderer[T]) Render(records []T, refs Refs, query url.Values) template.HTML {
	var b strings.Builder
	if len(records) == 0 {
		msg := r.EmptyMessage
		if msg == "" {
			msg = defaultEmptyMessage
		}
		b.WriteString(`<tr class="empty-row"><td colspan="`)
		b.WriteString(strconv.Itoa(len(r.Columns) + 1))
		b.WriteString(`"><div class="empty-state"><i class="fas fa-inbox"></i><p>`)
		b.WriteString(utils.EscapeHTML(msg))
		b.WriteString(`</p></div></td></tr>`)
		return template.HTML(b.String())
	}

	for _, rec := range records {
		id := strconv.FormatInt(rec.RecordID(), 10)
		b.WriteString(`<tr data-id="`)
		b.WriteString(id)
		b.WriteString(`">`)
		for _, col := range r.Columns {
			b.WriteString("<td>")
			r.writeCell(&b, col, rec, refs)
			b.WriteString("</td>")
		}
		b.WriteString(`<td class="actions">`)
		r.writeActions(&b, rec, id, query)
		b.WriteString("</td></tr>")
	}
	return template.HTML(b.String())
}

func (r Renderer[T]) writeCell(b *strings.Builder, col Column[T], rec T, refs Refs) {
	if col.Badge != nil {
		label, tone := col.Badge(rec)
		b.WriteString(`<span class="badge badge-`)
		b.WriteString(utils.EscapeHTML(strings.ToLower(tone)))
		b.WriteString(`">`)
		b.WriteString(utils.EscapeHTML(label))
		b.WriteString("</span>")
		return
	}
	if col.Text != nil {
		b.WriteString(utils.EscapeHTML(col.Text(rec, refs)))
	}
}

func (r Renderer[T]) writeActions(b *strings.Builder, rec T, id string, query url.Values) {
	if r.CanEdit {
		b.WriteString(`<a class="btn-icon btn-edit" title="Editar" href="`)
		b.WriteString(utils.EscapeHTML(r.modalURL("edit", id, query)))
		b.WriteString(`"><i class="fas fa-edit"></i></a>`)
	}
	for _, action := range r.Actions {
		if action.Visible != nil && !action.Visible(rec) {
			continue
		}
		b.WriteString(`<form class="inline" method="post" action="`)
		b.WriteString(utils.EscapeHTML(r.BasePath + "/" + id + "/" + action.Name))
		b.WriteString(`"><button type="submit" class="btn-icon btn-action" title="`)
		b.WriteString(utils.EscapeHTML(action.Label))
		b.WriteString(`"><i class="fas `)
		b.WriteString(utils.EscapeHTML(action.Icon))
		b.WriteString(`"></i></button></form>`)
	}
	if r.CanDelete {
		b.WriteString(`<a class="btn-icon btn-delete" title="Eliminar" href="`)
		b.WriteString(utils.EscapeHTML(r.modalURL("delete", id, query)))
		b.WriteString(`"><i class="fas fa-trash"></i></a>`)
	}
}

func (r Renderer[T]) modalURL(modal, id string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("modal", modal)
	q.Set("id", id)
	return r.BasePath + "?" + q.Encode()
}
