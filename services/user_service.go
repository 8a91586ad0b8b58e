package services

import (
	"fmt"
	"strconv"
	"strings"

	"rental-admin/models"
	"rental-admin/utils"
)

// UserPage manages /usuarios. Selecting a role loads /usuarios/rol/{id}.
// New users need a password; a blank password on edit keeps the current one.
func UserPage() *PageSpec[models.User, models.UserForm] {
	return &PageSpec[models.User, models.UserForm]{
		Name:     "usuarios",
		Title:    "Usuarios",
		Singular: "Usuario",
		Icon:     "fa-user-shield",
		Endpoint: "/usuarios",
		Source: func(state FilterState) string {
			if id, ok := utils.ParseID(state.Values["rolId"]); ok {
				return "/usuarios/rol/" + idText(id)
			}
			return ""
		},
		NewRefs: refsOf(rolesRef),
		Columns: []Column[models.User]{
			{Header: "Usuario", Text: func(u models.User, _ Refs) string { return u.Username }},
			{Header: "Email", Text: func(u models.User, _ Refs) string { return u.Email }},
			{Header: "Rol", Text: func(u models.User, refs Refs) string { return refs.Name(RefRoles, u.RoleID) }},
			{Header: "Estado", Badge: func(u models.User) (string, string) { return boolBadge(u.Active, "Activo", "Inactivo") }},
		},
		Filters: []FilterDef[models.User]{
			{
				Key:     "rolId",
				Label:   "Rol",
				Options: refOptions(RefRoles),
				Match:   func(u models.User, v string, _ Refs) bool { return matchRef(u.RoleID, v) },
			},
			{
				Key:   "activo",
				Label: "Estado",
				Options: func(Refs) []models.Option {
					return []models.Option{{Value: "true", Label: "Activos"}, {Value: "false", Label: "Inactivos"}}
				},
				Match: func(u models.User, v string, _ Refs) bool { return strconv.FormatBool(u.Active) == v },
			},
		},
		SearchFields: func(u models.User, refs Refs) []string {
			return []string{u.Username, u.Email, refs.Name(RefRoles, u.RoleID)}
		},
		Form: &FormSpec[models.User, models.UserForm]{
			Fields: []FieldDef{
				{Name: "username", Label: "Usuario", Kind: FieldText, Required: true},
				{Name: "email", Label: "Email", Kind: FieldEmail, Required: true},
				{Name: "rolId", Label: "Rol", Kind: FieldSelect, Required: true, Options: refOptions(RefRoles)},
				{Name: "password", Label: "Contraseña", Kind: FieldPassword, RequiredOnCreate: true},
				{Name: "activo", Label: "Activo", Kind: FieldCheckbox},
			},
			Blank: func(string) models.UserForm { return models.UserForm{Active: true} },
			FromRecord: func(u models.User) models.UserForm {
				return models.UserForm{Username: u.Username, Email: u.Email, RoleID: idText(u.RoleID), Active: u.Active}
			},
			Payload: func(f models.UserForm, refs Refs) (any, error) {
				roleID, err := refID(refs, RefRoles, "rolId", f.RoleID)
				if err != nil {
					return nil, err
				}
				p := models.UserPayload{
					Username: strings.TrimSpace(f.Username),
					Email:    strings.TrimSpace(f.Email),
					RoleID:   roleID,
					Active:   f.Active,
				}
				if f.Password != "" {
					p.Password = &f.Password
				}
				return p, nil
			},
		},
		CanDelete: true,
		DeleteMessage: func(u models.User, _ Refs) string {
			return fmt.Sprintf("¿Eliminar al usuario %s? Perderá el acceso a la consola.", u.Username)
		},
	}
}
