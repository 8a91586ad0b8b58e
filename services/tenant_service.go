package services

import (
	"fmt"
	"strings"

	"rental-admin/models"
	"rental-admin/utils"
)

// TenantPage manages /inquilinos.
func TenantPage() *PageSpec[models.Tenant, models.TenantForm] {
	return &PageSpec[models.Tenant, models.TenantForm]{
		Name:     "inquilinos",
		Title:    "Inquilinos",
		Singular: "Inquilino",
		Icon:     "fa-users",
		Endpoint: "/inquilinos",
		Columns: []Column[models.Tenant]{
			{Header: "Nombre", Text: func(t models.Tenant, _ Refs) string { return t.FullName() }},
			{Header: "DNI", Text: func(t models.Tenant, _ Refs) string { return t.DNI }},
			{Header: "Teléfono", Text: func(t models.Tenant, _ Refs) string { return orDash(t.Phone) }},
			{Header: "Email", Text: func(t models.Tenant, _ Refs) string { return orDash(t.Email) }},
		},
		SearchFields: func(t models.Tenant, _ Refs) []string {
			return []string{t.FullName(), t.DNI, t.Phone, t.Email}
		},
		Form: &FormSpec[models.Tenant, models.TenantForm]{
			Fields: []FieldDef{
				{Name: "nombre", Label: "Nombre", Kind: FieldText, Required: true},
				{Name: "apellido", Label: "Apellido", Kind: FieldText, Required: true},
				{Name: "dni", Label: "DNI", Kind: FieldText, Required: true},
				{Name: "telefono", Label: "Teléfono", Kind: FieldText},
				{Name: "email", Label: "Email", Kind: FieldEmail},
			},
			Blank: func(string) models.TenantForm { return models.TenantForm{} },
			FromRecord: func(t models.Tenant) models.TenantForm {
				return models.TenantForm{FirstName: t.FirstName, LastName: t.LastName, DNI: t.DNI, Phone: t.Phone, Email: t.Email}
			},
			Payload: func(f models.TenantForm, _ Refs) (any, error) {
				dni := strings.TrimSpace(f.DNI)
				return models.PersonPayload{
					FirstName: strings.TrimSpace(f.FirstName),
					LastName:  strings.TrimSpace(f.LastName),
					DNI:       &dni,
					Phone:     utils.OptionalString(f.Phone),
					Email:     utils.OptionalString(f.Email),
				}, nil
			},
		},
		CanDelete: true,
		DeleteMessage: func(t models.Tenant, _ Refs) string {
			return fmt.Sprintf("¿Eliminar al inquilino %s? Esta acción no se puede deshacer.", t.FullName())
		},
	}
}
