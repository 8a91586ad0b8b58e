package models

import "github.com/shopspring/decimal"

type Room struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"propietarioId"`
	Name        string          `json:"nombre"`
	Price       decimal.Decimal `json:"precio"`
	Status      string          `json:"estado"`
	Description string          `json:"descripcion"`
}

func (r Room) RecordID() int64 { return r.ID }

type RoomPayload struct {
	OwnerID     int64           `json:"propietarioId"`
	Name        string          `json:"nombre"`
	Price       decimal.Decimal `json:"precio"`
	Status      string          `json:"estado"`
	Description *string         `json:"descripcion"`
}

type RoomForm struct {
	OwnerID     string `form:"propietarioId" validate:"required,number"`
	Name        string `form:"nombre" validate:"required,notblank"`
	Price       string `form:"precio" validate:"required,numeric"`
	Status      string `form:"estado" validate:"required,notblank"`
	Description string `form:"descripcion"`
}
