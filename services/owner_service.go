package services

import (
	"fmt"
	"strings"

	"rental-admin/models"
	"rental-admin/utils"
)

// OwnerPage manages /propietarios.
func OwnerPage() *PageSpec[models.Owner, models.OwnerForm] {
	return &PageSpec[models.Owner, models.OwnerForm]{
		Name:     "propietarios",
		Title:    "Propietarios",
		Singular: "Propietario",
		Icon:     "fa-user-tie",
		Endpoint: "/propietarios",
		Columns: []Column[models.Owner]{
			{Header: "Nombre", Text: func(o models.Owner, _ Refs) string { return o.FullName() }},
			{Header: "Teléfono", Text: func(o models.Owner, _ Refs) string { return orDash(o.Phone) }},
			{Header: "Email", Text: func(o models.Owner, _ Refs) string { return orDash(o.Email) }},
		},
		SearchFields: func(o models.Owner, _ Refs) []string {
			return []string{o.FullName(), o.Phone, o.Email}
		},
		Form: &FormSpec[models.Owner, models.OwnerForm]{
			Fields: []FieldDef{
				{Name: "nombre", Label: "Nombre", Kind: FieldText, Required: true},
				{Name: "apellido", Label: "Apellido", Kind: FieldText, Required: true},
				{Name: "telefono", Label: "Teléfono", Kind: FieldText},
				{Name: "email", Label: "Email", Kind: FieldEmail},
			},
			Blank: func(string) models.OwnerForm { return models.OwnerForm{} },
			FromRecord: func(o models.Owner) models.OwnerForm {
				return models.OwnerForm{FirstName: o.FirstName, LastName: o.LastName, Phone: o.Phone, Email: o.Email}
			},
			Payload: func(f models.OwnerForm, _ Refs) (any, error) {
				return models.PersonPayload{
					FirstName: strings.TrimSpace(f.FirstName),
					LastName:  strings.TrimSpace(f.LastName),
					Phone:     utils.OptionalString(f.Phone),
					Email:     utils.OptionalString(f.Email),
				}, nil
			},
		},
		CanDelete: true,
		DeleteMessage: func(o models.Owner, _ Refs) string {
			return fmt.Sprintf("¿Eliminar al propietario %s? Sus cuartos quedarán sin propietario.", o.FullName())
		},
	}
}
