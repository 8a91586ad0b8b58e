package services

import (
	"strconv"

	"rental-admin/models"
)

var furnitureConditions = statusOptions(models.FurnitureGood, models.FurnitureRegular, models.FurnitureBad)

// RoomFurniturePage manages /cuarto-muebles, the furniture placed in each
// room.
func RoomFurniturePage() *PageSpec[models.RoomFurniture, models.RoomFurnitureForm] {
	return &PageSpec[models.RoomFurniture, models.RoomFurnitureForm]{
		Name:     "cuarto-muebles",
		Title:    "Muebles por cuarto",
		Singular: "Asignación",
		Icon:     "fa-chair",
		Endpoint: "/cuarto-muebles",
		NewRefs:  refsOf(roomsRef, furnitureRef),
		Columns: []Column[models.RoomFurniture]{
			{Header: "Cuarto", Text: func(r models.RoomFurniture, refs Refs) string { return refs.Name(RefRooms, r.RoomID) }},
			{Header: "Mueble", Text: func(r models.RoomFurniture, refs Refs) string { return refs.Name(RefFurniture, r.FurnitureID) }},
			{Header: "Cantidad", Text: func(r models.RoomFurniture, _ Refs) string { return strconv.Itoa(r.Quantity) }},
			{Header: "Estado", Badge: func(r models.RoomFurniture) (string, string) { return statusBadge(r.Condition) }},
		},
		Filters: []FilterDef[models.RoomFurniture]{
			{
				Key:     "cuartoId",
				Label:   "Cuarto",
				Options: refOptions(RefRooms),
				Match:   func(r models.RoomFurniture, v string, _ Refs) bool { return matchRef(r.RoomID, v) },
			},
			{
				Key:     "estado",
				Label:   "Estado",
				Options: furnitureConditions,
				Match:   func(r models.RoomFurniture, v string, _ Refs) bool { return EqualFold(r.Condition, v) },
			},
		},
		SearchFields: func(r models.RoomFurniture, refs Refs) []string {
			return []string{refs.Name(RefRooms, r.RoomID), refs.Name(RefFurniture, r.FurnitureID), r.Condition}
		},
		Form: &FormSpec[models.RoomFurniture, models.RoomFurnitureForm]{
			Fields: []FieldDef{
				{Name: "cuartoId", Label: "Cuarto", Kind: FieldSelect, Required: true, Options: refOptions(RefRooms)},
				{Name: "muebleId", Label: "Mueble", Kind: FieldSelect, Required: true, Options: refOptions(RefFurniture)},
				{Name: "cantidad", Label: "Cantidad", Kind: FieldNumber, Required: true, Step: "1"},
				{Name: "estado", Label: "Estado", Kind: FieldSelect, Required: true, Options: furnitureConditions},
			},
			Blank: func(string) models.RoomFurnitureForm {
				return models.RoomFurnitureForm{Quantity: "1", Condition: models.FurnitureGood}
			},
			FromRecord: func(r models.RoomFurniture) models.RoomFurnitureForm {
				return models.RoomFurnitureForm{
					RoomID:      idText(r.RoomID),
					FurnitureID: idText(r.FurnitureID),
					Quantity:    strconv.Itoa(r.Quantity),
					Condition:   r.Condition,
				}
			},
			Payload: func(f models.RoomFurnitureForm, refs Refs) (any, error) {
				roomID, err := refID(refs, RefRooms, "cuartoId", f.RoomID)
				if err != nil {
					return nil, err
				}
				furnitureID, err := refID(refs, RefFurniture, "muebleId", f.FurnitureID)
				if err != nil {
					return nil, err
				}
				qty, err := strconv.Atoi(f.Quantity)
				if err != nil || qty < 1 {
					return nil, &ValidationError{Fields: map[string]string{"cantidad": "Debe ser al menos 1"}}
				}
				return models.RoomFurniturePayload{
					RoomID:      roomID,
					FurnitureID: furnitureID,
					Quantity:    qty,
					Condition:   enumValue(f.Condition),
				}, nil
			},
		},
		CanDelete: true,
	}
}
