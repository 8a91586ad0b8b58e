package models

import "github.com/shopspring/decimal"

type MaintenanceTicket struct {
	ID           int64            `json:"id"`
	RoomID       int64            `json:"cuartoId"`
	ReportDate   string           `json:"fechaReporte"`
	Description  string           `json:"descripcion"`
	Status       string           `json:"estado"`
	AttendedDate *string          `json:"fechaAtencion"`
	Cost         *decimal.Decimal `json:"costo"`
}

func (m MaintenanceTicket) RecordID() int64 { return m.ID }

type MaintenancePayload struct {
	RoomID       int64            `json:"cuartoId"`
	ReportDate   string           `json:"fechaReporte"`
	Description  string           `json:"descripcion"`
	Status       string           `json:"estado"`
	AttendedDate *string          `json:"fechaAtencion"`
	Cost         *decimal.Decimal `json:"costo"`
}

type MaintenanceForm struct {
	RoomID       string `form:"cuartoId" validate:"required,number"`
	ReportDate   string `form:"fechaReporte" validate:"required,datetime=2006-01-02"`
	Description  string `form:"descripcion" validate:"required,notblank"`
	Status       string `form:"estado" validate:"required,notblank"`
	AttendedDate string `form:"fechaAtencion" validate:"omitempty,datetime=2006-01-02"`
	Cost         string `form:"costo" validate:"omitempty,numeric"`
}
