package services

import (
	"rental-admin/models"
	"rental-admin/utils"
)

var (
	paymentStatuses = statusOptions(models.PaymentPaid, models.PaymentPending, models.PaymentOverdue)
	paymentMethods  = func(Refs) []models.Option {
		return []models.Option{
			{Value: "EFECTIVO", Label: "Efectivo"},
			{Value: "TRANSFERENCIA", Label: "Transferencia"},
			{Value: "YAPE", Label: "Yape"},
			{Value: "PLIN", Label: "Plin"},
			{Value: "TARJETA", Label: "Tarjeta"},
		}
	}
)

// paymentTenant resolves the tenant of a payment through its contract.
func paymentTenant(p models.Payment, refs Refs) (int64, bool) {
	contract, ok := RefRecord[models.Contract](refs, RefContracts, p.ContractID)
	if !ok {
		return 0, false
	}
	return contract.TenantID, true
}

func paymentTenantName(p models.Payment, refs Refs) string {
	tenantID, ok := paymentTenant(p, refs)
	if !ok {
		return FallbackUnknown
	}
	return refs.Name(RefTenants, tenantID)
}

// PaymentPage manages /pagos. Selecting a tenant loads
// /pagos/inquilino/{id} instead of the whole collection.
func PaymentPage() *PageSpec[models.Payment, models.PaymentForm] {
	return &PageSpec[models.Payment, models.PaymentForm]{
		Name:     "pagos",
		Title:    "Pagos",
		Singular: "Pago",
		Icon:     "fa-money-bill-wave",
		Endpoint: "/pagos",
		Source: func(state FilterState) string {
			if id, ok := utils.ParseID(state.Values["inquilinoId"]); ok {
				return "/pagos/inquilino/" + idText(id)
			}
			return ""
		},
		NewRefs: refsOf(contractsRef, tenantsRef),
		Columns: []Column[models.Payment]{
			{Header: "Contrato", Text: func(p models.Payment, refs Refs) string { return refs.Name(RefContracts, p.ContractID) }},
			{Header: "Inquilino", Text: paymentTenantName},
			{Header: "Fecha", Text: func(p models.Payment, _ Refs) string { return utils.FormatDate(p.PaidDate) }},
			{Header: "Monto", Text: func(p models.Payment, _ Refs) string { return utils.FormatMoney(p.Amount) }},
			{Header: "Método", Text: func(p models.Payment, _ Refs) string { return StatusLabel(p.Method) }},
			{Header: "Estado", Badge: func(p models.Payment) (string, string) { return statusBadge(p.Status) }},
			{Header: "Concepto", Text: func(p models.Payment, _ Refs) string { return orDash(p.Concept) }},
		},
		Filters: []FilterDef[models.Payment]{
			{
				Key:     "estado",
				Label:   "Estado",
				Options: paymentStatuses,
				Match:   func(p models.Payment, v string, _ Refs) bool { return EqualFold(p.Status, v) },
			},
			{
				Key:     "metodo",
				Label:   "Método",
				Options: paymentMethods,
				Match:   func(p models.Payment, v string, _ Refs) bool { return EqualFold(p.Method, v) },
			},
			{
				Key:     "inquilinoId",
				Label:   "Inquilino",
				Options: refOptions(RefTenants),
				Match: func(p models.Payment, v string, refs Refs) bool {
					tenantID, ok := paymentTenant(p, refs)
					return ok && matchRef(tenantID, v)
				},
			},
		},
		SearchFields: func(p models.Payment, refs Refs) []string {
			return []string{refs.Name(RefContracts, p.ContractID), paymentTenantName(p, refs), p.Method, p.Status, p.Concept}
		},
		Form: &FormSpec[models.Payment, models.PaymentForm]{
			Fields: []FieldDef{
				{Name: "contratoId", Label: "Contrato", Kind: FieldSelect, Required: true, Options: refOptions(RefContracts)},
				{Name: "fechaPago", Label: "Fecha de pago", Kind: FieldDate, Required: true},
				{Name: "monto", Label: "Monto", Kind: FieldNumber, Required: true, Step: "0.01"},
				{Name: "metodo", Label: "Método", Kind: FieldSelect, Required: true, Options: paymentMethods},
				{Name: "estado", Label: "Estado", Kind: FieldSelect, Required: true, Options: paymentStatuses},
				{Name: "concepto", Label: "Concepto", Kind: FieldText},
			},
			Blank: func(today string) models.PaymentForm {
				return models.PaymentForm{PaidDate: today, Method: "EFECTIVO", Status: models.PaymentPaid}
			},
			FromRecord: func(p models.Payment) models.PaymentForm {
				return models.PaymentForm{
					ContractID: idText(p.ContractID),
					PaidDate:   utils.FormatDate(p.PaidDate),
					Amount:     p.Amount.String(),
					Method:     p.Method,
					Status:     p.Status,
					Concept:    p.Concept,
				}
			},
			Payload: func(f models.PaymentForm, refs Refs) (any, error) {
				contractID, err := refID(refs, RefContracts, "contratoId", f.ContractID)
				if err != nil {
					return nil, err
				}
				amount, err := parseMoney("monto", f.Amount)
				if err != nil {
					return nil, err
				}
				return models.PaymentPayload{
					ContractID: contractID,
					PaidDate:   f.PaidDate,
					Amount:     amount,
					Method:     enumValue(f.Method),
					Status:     enumValue(f.Status),
					Concept:    utils.OptionalString(f.Concept),
				}, nil
			},
		},
		CanDelete: true,
	}
}
