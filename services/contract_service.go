package services

import (
	"fmt"

	"rental-admin/models"
	"rental-admin/utils"
)

// ContractPage manages /contratos, joined with tenants and rooms.
func ContractPage() *PageSpec[models.Contract, models.ContractForm] {
	return &PageSpec[models.Contract, models.ContractForm]{
		Name:     "contratos",
		Title:    "Contratos",
		Singular: "Contrato",
		Icon:     "fa-file-contract",
		Endpoint: "/contratos",
		NewRefs:  refsOf(tenantsRef, roomsRef),
		Columns: []Column[models.Contract]{
			{Header: "#", Text: func(c models.Contract, _ Refs) string { return idText(c.ID) }},
			{Header: "Inquilino", Text: func(c models.Contract, refs Refs) string { return refs.Name(RefTenants, c.TenantID) }},
			{Header: "Cuarto", Text: func(c models.Contract, refs Refs) string { return refs.Name(RefRooms, c.RoomID) }},
			{Header: "Inicio", Text: func(c models.Contract, _ Refs) string { return utils.FormatDate(c.StartDate) }},
			{Header: "Fin", Text: func(c models.Contract, _ Refs) string { return orDash(utils.FormatDate(utils.Deref(c.EndDate))) }},
			{Header: "Renta", Text: func(c models.Contract, _ Refs) string { return utils.FormatMoney(c.RentAmount) }},
			{Header: "Estado", Badge: func(c models.Contract) (string, string) { return statusBadge(c.Status) }},
		},
		Filters: []FilterDef[models.Contract]{
			{
				Key:     "estado",
				Label:   "Estado",
				Options: statusOptions(models.ContractActive, models.ContractFinished, models.ContractCanceled),
				Match:   func(c models.Contract, v string, _ Refs) bool { return EqualFold(c.Status, v) },
			},
			{
				Key:     "inquilinoId",
				Label:   "Inquilino",
				Options: refOptions(RefTenants),
				Match:   func(c models.Contract, v string, _ Refs) bool { return matchRef(c.TenantID, v) },
			},
			{
				Key:     "cuartoId",
				Label:   "Cuarto",
				Options: refOptions(RefRooms),
				Match:   func(c models.Contract, v string, _ Refs) bool { return matchRef(c.RoomID, v) },
			},
		},
		SearchFields: func(c models.Contract, refs Refs) []string {
			return []string{idText(c.ID), refs.Name(RefTenants, c.TenantID), refs.Name(RefRooms, c.RoomID), c.Status}
		},
		Form: &FormSpec[models.Contract, models.ContractForm]{
			Fields: []FieldDef{
				{Name: "inquilinoId", Label: "Inquilino", Kind: FieldSelect, Required: true, Options: refOptions(RefTenants)},
				{Name: "cuartoId", Label: "Cuarto", Kind: FieldSelect, Required: true, Options: refOptions(RefRooms)},
				{Name: "fechaInicio", Label: "Fecha de inicio", Kind: FieldDate, Required: true},
				{Name: "fechaFin", Label: "Fecha de fin", Kind: FieldDate},
				{Name: "montoRenta", Label: "Monto de renta", Kind: FieldNumber, Required: true, Step: "0.01"},
				{Name: "estado", Label: "Estado", Kind: FieldSelect, Required: true, Options: statusOptions(models.ContractActive, models.ContractFinished, models.ContractCanceled)},
			},
			Blank: func(today string) models.ContractForm {
				return models.ContractForm{StartDate: today, Status: models.ContractActive}
			},
			FromRecord: func(c models.Contract) models.ContractForm {
				return models.ContractForm{
					TenantID:   idText(c.TenantID),
					RoomID:     idText(c.RoomID),
					StartDate:  utils.FormatDate(c.StartDate),
					EndDate:    utils.FormatDate(utils.Deref(c.EndDate)),
					RentAmount: c.RentAmount.String(),
					Status:     c.Status,
				}
			},
			Payload: contractPayload,
		},
		CanDelete: true,
		DeleteMessage: func(c models.Contract, refs Refs) string {
			return fmt.Sprintf("¿Eliminar el contrato #%d de %s? Esta acción no se puede deshacer.", c.ID, refs.Name(RefTenants, c.TenantID))
		},
	}
}

func contractPayload(f models.ContractForm, refs Refs) (any, error) {
	tenantID, err := refID(refs, RefTenants, "inquilinoId", f.TenantID)
	if err != nil {
		return nil, err
	}
	roomID, err := refID(refs, RefRooms, "cuartoId", f.RoomID)
	if err != nil {
		return nil, err
	}
	rent, err := parseMoney("montoRenta", f.RentAmount)
	if err != nil {
		return nil, err
	}
	end := utils.OptionalString(f.EndDate)
	// Dates are validated as YYYY-MM-DD, so they compare lexically.
	if end != nil && *end < f.StartDate {
		return nil, &ValidationError{Fields: map[string]string{"fechaFin": "Debe ser posterior a la fecha de inicio"}}
	}
	return models.ContractPayload{
		TenantID:   tenantID,
		RoomID:     roomID,
		StartDate:  f.StartDate,
		EndDate:    end,
		RentAmount: rent,
		Status:     enumValue(f.Status),
	}, nil
}
