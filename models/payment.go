package models

import "github.com/shopspring/decimal"

type Payment struct {
	ID         int64           `json:"id"`
	ContractID int64           `json:"contratoId"`
	PaidDate   string          `json:"fechaPago"`
	Amount     decimal.Decimal `json:"monto"`
	Method     string          `json:"metodo"`
	Status     string          `json:"estado"`
	Concept    string          `json:"concepto"`
}

func (p Payment) RecordID() int64 { return p.ID }

type PaymentPayload struct {
	ContractID int64           `json:"contratoId"`
	PaidDate   string          `json:"fechaPago"`
	Amount     decimal.Decimal `json:"monto"`
	Method     string          `json:"metodo"`
	Status     string          `json:"estado"`
	Concept    *string         `json:"concepto"`
}

type PaymentForm struct {
	ContractID string `form:"contratoId" validate:"required,number"`
	PaidDate   string `form:"fechaPago" validate:"required,datetime=2006-01-02"`
	Amount     string `form:"monto" validate:"required,numeric"`
	Method     string `form:"metodo" validate:"required,notblank"`
	Status     string `form:"estado" validate:"required,notblank"`
	Concept    string `form:"concepto"`
}
