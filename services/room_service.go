package services

import (
	"fmt"
	"strings"

	"rental-admin/models"
	"rental-admin/utils"
)

var roomStatuses = statusOptions(models.RoomAvailable, models.RoomOccupied, models.RoomMaintenance)

// RoomPage manages /cuartos, joined with owners.
func RoomPage() *PageSpec[models.Room, models.RoomForm] {
	return &PageSpec[models.Room, models.RoomForm]{
		Name:     "cuartos",
		Title:    "Cuartos",
		Singular: "Cuarto",
		Icon:     "fa-door-open",
		Endpoint: "/cuartos",
		NewRefs:  refsOf(ownersRef),
		Columns: []Column[models.Room]{
			{Header: "Nombre", Text: func(r models.Room, _ Refs) string { return r.Name }},
			{Header: "Propietario", Text: func(r models.Room, refs Refs) string { return refs.Name(RefOwners, r.OwnerID) }},
			{Header: "Precio", Text: func(r models.Room, _ Refs) string { return utils.FormatMoney(r.Price) }},
			{Header: "Estado", Badge: func(r models.Room) (string, string) { return statusBadge(r.Status) }},
			{Header: "Descripción", Text: func(r models.Room, _ Refs) string { return orDash(r.Description) }},
		},
		Filters: []FilterDef[models.Room]{
			{
				Key:     "estado",
				Label:   "Estado",
				Options: roomStatuses,
				Match:   func(r models.Room, v string, _ Refs) bool { return EqualFold(r.Status, v) },
			},
			{
				Key:     "propietarioId",
				Label:   "Propietario",
				Options: refOptions(RefOwners),
				Match:   func(r models.Room, v string, _ Refs) bool { return matchRef(r.OwnerID, v) },
			},
		},
		SearchFields: func(r models.Room, refs Refs) []string {
			return []string{r.Name, r.Description, refs.Name(RefOwners, r.OwnerID), r.Status}
		},
		Form: &FormSpec[models.Room, models.RoomForm]{
			Fields: []FieldDef{
				{Name: "nombre", Label: "Nombre", Kind: FieldText, Required: true},
				{Name: "propietarioId", Label: "Propietario", Kind: FieldSelect, Required: true, Options: refOptions(RefOwners)},
				{Name: "precio", Label: "Precio", Kind: FieldNumber, Required: true, Step: "0.01"},
				{Name: "estado", Label: "Estado", Kind: FieldSelect, Required: true, Options: roomStatuses},
				{Name: "descripcion", Label: "Descripción", Kind: FieldTextarea},
			},
			Blank: func(string) models.RoomForm {
				return models.RoomForm{Status: models.RoomAvailable}
			},
			FromRecord: func(r models.Room) models.RoomForm {
				return models.RoomForm{
					OwnerID:     idText(r.OwnerID),
					Name:        r.Name,
					Price:       r.Price.String(),
					Status:      r.Status,
					Description: r.Description,
				}
			},
			Payload: func(f models.RoomForm, refs Refs) (any, error) {
				ownerID, err := refID(refs, RefOwners, "propietarioId", f.OwnerID)
				if err != nil {
					return nil, err
				}
				price, err := parseMoney("precio", f.Price)
				if err != nil {
					return nil, err
				}
				return models.RoomPayload{
					OwnerID:     ownerID,
					Name:        strings.TrimSpace(f.Name),
					Price:       price,
					Status:      enumValue(f.Status),
					Description: utils.OptionalString(f.Description),
				}, nil
			},
		},
		CanDelete: true,
		DeleteMessage: func(r models.Room, _ Refs) string {
			return fmt.Sprintf("¿Eliminar el cuarto %s? Esta acción no se puede deshacer.", r.Name)
		},
	}
}
