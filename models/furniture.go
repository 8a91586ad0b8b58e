package models

import "github.com/shopspring/decimal"

// FurnitureItem is an entry of /catalogo-muebles.
type FurnitureItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Value       decimal.Decimal `json:"valor"`
}

func (f FurnitureItem) RecordID() int64 { return f.ID }

type FurnitureItemPayload struct {
	Name        string          `json:"nombre"`
	Description *string         `json:"descripcion"`
	Value       decimal.Decimal `json:"valor"`
}

type FurnitureItemForm struct {
	Name        string `form:"nombre" validate:"required,notblank"`
	Description string `form:"descripcion"`
	Value       string `form:"valor" validate:"required,numeric"`
}

// RoomFurniture assigns catalog items to a room (/cuarto-muebles).
type RoomFurniture struct {
	ID          int64  `json:"id"`
	RoomID      int64  `json:"cuartoId"`
	FurnitureID int64  `json:"muebleId"`
	Quantity    int    `json:"cantidad"`
	Condition   string `json:"estado"`
}

func (r RoomFurniture) RecordID() int64 { return r.ID }

type RoomFurniturePayload struct {
	RoomID      int64  `json:"cuartoId"`
	FurnitureID int64  `json:"muebleId"`
	Quantity    int    `json:"cantidad"`
	Condition   string `json:"estado"`
}

type RoomFurnitureForm struct {
	RoomID      string `form:"cuartoId" validate:"required,number"`
	FurnitureID string `form:"muebleId" validate:"required,number"`
	Quantity    string `form:"cantidad" validate:"required,number"`
	Condition   string `form:"estado" validate:"required,notblank"`
}
