package services

import (
	"fmt"
	"strings"

	"rental-admin/models"
	"rental-admin/utils"
)

// FurniturePage manages the furniture catalog at /catalogo-muebles.
func FurniturePage() *PageSpec[models.FurnitureItem, models.FurnitureItemForm] {
	return &PageSpec[models.FurnitureItem, models.FurnitureItemForm]{
		Name:     "catalogo-muebles",
		Title:    "Catálogo de muebles",
		Singular: "Mueble",
		Icon:     "fa-couch",
		Endpoint: "/catalogo-muebles",
		Columns: []Column[models.FurnitureItem]{
			{Header: "Nombre", Text: func(f models.FurnitureItem, _ Refs) string { return f.Name }},
			{Header: "Descripción", Text: func(f models.FurnitureItem, _ Refs) string { return orDash(f.Description) }},
			{Header: "Valor", Text: func(f models.FurnitureItem, _ Refs) string { return utils.FormatMoney(f.Value) }},
		},
		SearchFields: func(f models.FurnitureItem, _ Refs) []string {
			return []string{f.Name, f.Description}
		},
		Form: &FormSpec[models.FurnitureItem, models.FurnitureItemForm]{
			Fields: []FieldDef{
				{Name: "nombre", Label: "Nombre", Kind: FieldText, Required: true},
				{Name: "descripcion", Label: "Descripción", Kind: FieldTextarea},
				{Name: "valor", Label: "Valor", Kind: FieldNumber, Required: true, Step: "0.01"},
			},
			Blank: func(string) models.FurnitureItemForm { return models.FurnitureItemForm{} },
			FromRecord: func(f models.FurnitureItem) models.FurnitureItemForm {
				return models.FurnitureItemForm{Name: f.Name, Description: f.Description, Value: f.Value.String()}
			},
			Payload: func(f models.FurnitureItemForm, _ Refs) (any, error) {
				value, err := parseMoney("valor", f.Value)
				if err != nil {
					return nil, err
				}
				return models.FurnitureItemPayload{
					Name:        strings.TrimSpace(f.Name),
					Description: utils.OptionalString(f.Description),
					Value:       value,
				}, nil
			},
		},
		CanDelete: true,
		DeleteMessage: func(f models.FurnitureItem, _ Refs) string {
			return fmt.Sprintf("¿Eliminar %s del catálogo? Esta acción no se puede deshacer.", f.Name)
		},
	}
}
