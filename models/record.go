package models

import "github.com/shopspring/decimal"

func init() {
	// The backend parses amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is a backend-owned entity mirrored by the console. The id is
// assigned by the server and never changes.
type Record interface {
	RecordID() int64
}

// Option is one entry of a select picker.
type Option struct {
	Value string
	Label string
}

// Status values the backend treats case-sensitively.
const (
	ContractActive   = "ACTIVO"
	ContractFinished = "FINALIZADO"
	ContractCanceled = "CANCELADO"

	RoomAvailable   = "DISPONIBLE"
	RoomOccupied    = "OCUPADO"
	RoomMaintenance = "MANTENIMIENTO"

	MaintenancePending    = "PENDIENTE"
	MaintenanceInProgress = "EN_PROCESO"
	MaintenanceAttended   = "ATENDIDO"

	PaymentPaid    = "PAGADO"
	PaymentPending = "PENDIENTE"
	PaymentOverdue = "VENCIDO"

	FurnitureGood    = "BUENO"
	FurnitureRegular = "REGULAR"
	FurnitureBad     = "MALO"
)
