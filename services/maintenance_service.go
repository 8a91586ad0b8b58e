package services

import (
	"context"
	"strconv"
	"strings"

	"rental-admin/models"
	"rental-admin/utils"
)

var maintenanceStatuses = statusOptions(models.MaintenancePending, models.MaintenanceInProgress, models.MaintenanceAttended)

// MaintenancePage manages /mantenimientos. Open tickets can be marked as
// attended with PATCH /mantenimientos/{id}/atender.
func MaintenancePage() *PageSpec[models.MaintenanceTicket, models.MaintenanceForm] {
	return &PageSpec[models.MaintenanceTicket, models.MaintenanceForm]{
		Name:     "mantenimientos",
		Title:    "Mantenimientos",
		Singular: "Mantenimiento",
		Icon:     "fa-tools",
		Endpoint: "/mantenimientos",
		NewRefs:  refsOf(roomsRef),
		Columns: []Column[models.MaintenanceTicket]{
			{Header: "Cuarto", Text: func(m models.MaintenanceTicket, refs Refs) string { return refs.Name(RefRooms, m.RoomID) }},
			{Header: "Reportado", Text: func(m models.MaintenanceTicket, _ Refs) string { return utils.FormatDate(m.ReportDate) }},
			{Header: "Descripción", Text: func(m models.MaintenanceTicket, _ Refs) string { return m.Description }},
			{Header: "Estado", Badge: func(m models.MaintenanceTicket) (string, string) { return statusBadge(m.Status) }},
			{Header: "Atendido", Text: func(m models.MaintenanceTicket, _ Refs) string {
				return orDash(utils.FormatDate(utils.Deref(m.AttendedDate)))
			}},
			{Header: "Costo", Text: func(m models.MaintenanceTicket, _ Refs) string {
				if m.Cost == nil {
					return "-"
				}
				return utils.FormatMoney(*m.Cost)
			}},
		},
		Filters: []FilterDef[models.MaintenanceTicket]{
			{
				Key:     "estado",
				Label:   "Estado",
				Options: maintenanceStatuses,
				Match:   func(m models.MaintenanceTicket, v string, _ Refs) bool { return EqualFold(m.Status, v) },
			},
			{
				Key:     "cuartoId",
				Label:   "Cuarto",
				Options: refOptions(RefRooms),
				Match:   func(m models.MaintenanceTicket, v string, _ Refs) bool { return matchRef(m.RoomID, v) },
			},
		},
		SearchFields: func(m models.MaintenanceTicket, refs Refs) []string {
			return []string{refs.Name(RefRooms, m.RoomID), m.Description, m.Status}
		},
		Actions: []PageAction[models.MaintenanceTicket]{
			{
				RowAction: RowAction[models.MaintenanceTicket]{
					Name:    "atender",
					Label:   "Marcar como atendido",
					Icon:    "fa-check",
					Visible: func(m models.MaintenanceTicket) bool { return m.Status != models.MaintenanceAttended },
				},
				Title:   "Error al atender mantenimiento",
				Success: "Mantenimiento marcado como atendido",
				Run: func(ctx context.Context, client *RestClient, m models.MaintenanceTicket) error {
					return client.Patch(ctx, "/mantenimientos/"+strconv.FormatInt(m.ID, 10)+"/atender", nil, nil)
				},
			},
		},
		Form: &FormSpec[models.MaintenanceTicket, models.MaintenanceForm]{
			Fields: []FieldDef{
				{Name: "cuartoId", Label: "Cuarto", Kind: FieldSelect, Required: true, Options: refOptions(RefRooms)},
				{Name: "fechaReporte", Label: "Fecha de reporte", Kind: FieldDate, Required: true},
				{Name: "descripcion", Label: "Descripción", Kind: FieldTextarea, Required: true},
				{Name: "estado", Label: "Estado", Kind: FieldSelect, Required: true, Options: maintenanceStatuses},
				{Name: "fechaAtencion", Label: "Fecha de atención", Kind: FieldDate},
				{Name: "costo", Label: "Costo", Kind: FieldNumber, Step: "0.01"},
			},
			Blank: func(today string) models.MaintenanceForm {
				return models.MaintenanceForm{ReportDate: today, Status: models.MaintenancePending}
			},
			FromRecord: func(m models.MaintenanceTicket) models.MaintenanceForm {
				f := models.MaintenanceForm{
					RoomID:       idText(m.RoomID),
					ReportDate:   utils.FormatDate(m.ReportDate),
					Description:  m.Description,
					Status:       m.Status,
					AttendedDate: utils.FormatDate(utils.Deref(m.AttendedDate)),
				}
				if m.Cost != nil {
					f.Cost = m.Cost.String()
				}
				return f
			},
			Payload: func(f models.MaintenanceForm, refs Refs) (any, error) {
				roomID, err := refID(refs, RefRooms, "cuartoId", f.RoomID)
				if err != nil {
					return nil, err
				}
				cost, err := utils.OptionalDecimal(f.Cost)
				if err != nil || (cost != nil && cost.IsNegative()) {
					return nil, &ValidationError{Fields: map[string]string{"costo": "Monto inválido"}}
				}
				return models.MaintenancePayload{
					RoomID:       roomID,
					ReportDate:   f.ReportDate,
					Description:  strings.TrimSpace(f.Description),
					Status:       enumValue(f.Status),
					AttendedDate: utils.OptionalString(f.AttendedDate),
					Cost:         cost,
				}, nil
			},
		},
		CanDelete: true,
	}
}
