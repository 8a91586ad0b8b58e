package models

import "github.com/shopspring/decimal"

type Contract struct {
	ID         int64           `json:"id"`
	TenantID   int64           `json:"inquilinoId"`
	RoomID     int64           `json:"cuartoId"`
	StartDate  string          `json:"fechaInicio"`
	EndDate    *string         `json:"fechaFin"`
	RentAmount decimal.Decimal `json:"montoRenta"`
	Status     string          `json:"estado"`
}

func (c Contract) RecordID() int64 { return c.ID }

// ContractPayload is the body of POST/PUT /contratos.
type ContractPayload struct {
	TenantID   int64           `json:"inquilinoId"`
	RoomID     int64           `json:"cuartoId"`
	StartDate  string          `json:"fechaInicio"`
	EndDate    *string         `json:"fechaFin"`
	RentAmount decimal.Decimal `json:"montoRenta"`
	Status     string          `json:"estado"`
}

type ContractForm struct {
	TenantID   string `form:"inquilinoId" validate:"required,number"`
	RoomID     string `form:"cuartoId" validate:"required,number"`
	StartDate  string `form:"fechaInicio" validate:"required,datetime=2006-01-02"`
	EndDate    string `form:"fechaFin" validate:"omitempty,datetime=2006-01-02"`
	RentAmount string `form:"montoRenta" validate:"required,numeric"`
	Status     string `form:"estado" validate:"required,notblank"`
}
