package services

import (
	"context"
	"strconv"
	"strings"

	"rental-admin/models"
	"rental-admin/utils"
)

var notificationTypes = func(Refs) []models.Option {
	return []models.Option{
		{Value: "INFO", Label: "Información"},
		{Value: "PAGO", Label: "Pago"},
		{Value: "MANTENIMIENTO", Label: "Mantenimiento"},
		{Value: "CONTRATO", Label: "Contrato"},
	}
}

// NotificationPage manages /notificaciones. Unread notifications can be
// marked with PATCH /notificaciones/{id}/leer.
func NotificationPage() *PageSpec[models.Notification, models.NotificationForm] {
	return &PageSpec[models.Notification, models.NotificationForm]{
		Name:     "notificaciones",
		Title:    "Notificaciones",
		Singular: "Notificación",
		Icon:     "fa-bell",
		Endpoint: "/notificaciones",
		NewRefs:  refsOf(usersRef),
		Columns: []Column[models.Notification]{
			{Header: "Usuario", Text: func(n models.Notification, refs Refs) string { return refs.Name(RefUsers, n.UserID) }},
			{Header: "Título", Text: func(n models.Notification, _ Refs) string { return n.Title }},
			{Header: "Mensaje", Text: func(n models.Notification, _ Refs) string { return n.Message }},
			{Header: "Tipo", Text: func(n models.Notification, _ Refs) string { return StatusLabel(n.Type) }},
			{Header: "Leída", Badge: func(n models.Notification) (string, string) { return boolBadge(n.Read, "Leída", "Pendiente") }},
			{Header: "Fecha", Text: func(n models.Notification, _ Refs) string { return utils.FormatDate(n.CreatedAt) }},
		},
		Filters: []FilterDef[models.Notification]{
			{
				Key:   "leida",
				Label: "Lectura",
				Options: func(Refs) []models.Option {
					return []models.Option{{Value: "false", Label: "No leídas"}, {Value: "true", Label: "Leídas"}}
				},
				Match: func(n models.Notification, v string, _ Refs) bool { return strconv.FormatBool(n.Read) == v },
			},
			{
				Key:     "tipo",
				Label:   "Tipo",
				Options: notificationTypes,
				Match:   func(n models.Notification, v string, _ Refs) bool { return EqualFold(n.Type, v) },
			},
		},
		SearchFields: func(n models.Notification, refs Refs) []string {
			return []string{n.Title, n.Message, n.Type, refs.Name(RefUsers, n.UserID)}
		},
		Actions: []PageAction[models.Notification]{
			{
				RowAction: RowAction[models.Notification]{
					Name:    "leer",
					Label:   "Marcar como leída",
					Icon:    "fa-envelope-open",
					Visible: func(n models.Notification) bool { return !n.Read },
				},
				Title:   "Error al marcar notificación",
				Success: "Notificación marcada como leída",
				Run: func(ctx context.Context, client *RestClient, n models.Notification) error {
					return client.Patch(ctx, "/notificaciones/"+strconv.FormatInt(n.ID, 10)+"/leer", nil, nil)
				},
			},
		},
		Form: &FormSpec[models.Notification, models.NotificationForm]{
			Fields: []FieldDef{
				{Name: "usuarioId", Label: "Usuario", Kind: FieldSelect, Required: true, Options: refOptions(RefUsers)},
				{Name: "titulo", Label: "Título", Kind: FieldText, Required: true},
				{Name: "mensaje", Label: "Mensaje", Kind: FieldTextarea, Required: true},
				{Name: "tipo", Label: "Tipo", Kind: FieldSelect, Required: true, Options: notificationTypes},
				{Name: "leida", Label: "Leída", Kind: FieldCheckbox},
			},
			Blank: func(string) models.NotificationForm { return models.NotificationForm{Type: "INFO"} },
			FromRecord: func(n models.Notification) models.NotificationForm {
				return models.NotificationForm{UserID: idText(n.UserID), Title: n.Title, Message: n.Message, Type: n.Type, Read: n.Read}
			},
			Payload: func(f models.NotificationForm, refs Refs) (any, error) {
				userID, err := refID(refs, RefUsers, "usuarioId", f.UserID)
				if err != nil {
					return nil, err
				}
				return models.NotificationPayload{
					UserID:  userID,
					Title:   strings.TrimSpace(f.Title),
					Message: strings.TrimSpace(f.Message),
					Type:    enumValue(f.Type),
					Read:    f.Read,
				}, nil
			},
		},
		CanDelete: true,
	}
}
