package services

import (
	"fmt"
	"strconv"
	"strings"

	"rental-admin/models"
	"rental-admin/utils"

	"github.com/shopspring/decimal"
)

// Reference names shared by the pages.
const (
	RefTenants   = "inquilinos"
	RefOwners    = "propietarios"
	RefRooms     = "cuartos"
	RefContracts = "contratos"
	RefFurniture = "muebles"
	RefUsers     = "usuarios"
	RefRoles     = "roles"
)

func tenantsRef() *Reference {
	return NewReference(RefTenants, NewEntityCache[models.Tenant]("/inquilinos"), models.Tenant.FullName, FallbackUnknown)
}

func ownersRef() *Reference {
	return NewReference(RefOwners, NewEntityCache[models.Owner]("/propietarios"), models.Owner.FullName, FallbackUnknown)
}

func roomsRef() *Reference {
	return NewReference(RefRooms, NewEntityCache[models.Room]("/cuartos"), func(r models.Room) string { return r.Name }, FallbackNA)
}

func contractsRef() *Reference {
	return NewReference(RefContracts, NewEntityCache[models.Contract]("/contratos"), func(c models.Contract) string {
		return fmt.Sprintf("Contrato #%d", c.ID)
	}, FallbackNA)
}

func furnitureRef() *Reference {
	return NewReference(RefFurniture, NewEntityCache[models.FurnitureItem]("/catalogo-muebles"), func(f models.FurnitureItem) string { return f.Name }, FallbackNA)
}

func usersRef() *Reference {
	return NewReference(RefUsers, NewEntityCache[models.User]("/usuarios"), func(u models.User) string { return u.Username }, FallbackUnknown)
}

func rolesRef() *Reference {
	return NewReference(RefRoles, NewEntityCache[models.Role]("/roles"), func(r models.Role) string { return r.Name }, FallbackNA)
}

// refsOf builds the Refs constructor of a page from reference factories, so
// every controller gets its own caches.
func refsOf(factories ...func() *Reference) func() Refs {
	return func() Refs {
		refs := make(Refs, len(factories))
		for _, f := range factories {
			r := f()
			refs[r.Name] = r
		}
		return refs
	}
}

// refID parses a picker value and checks it against the joined cache.
func refID(refs Refs, ref, field, raw string) (int64, error) {
	id, ok := utils.ParseID(raw)
	if !ok || !refs.Has(ref, id) {
		return 0, &ValidationError{Fields: map[string]string{field: "Seleccione un valor válido"}}
	}
	return id, nil
}

func refOptions(ref string) func(Refs) []models.Option {
	return func(refs Refs) []models.Option { return refs.Options(ref) }
}

func matchRef(id int64, value string) bool {
	return strconv.FormatInt(id, 10) == strings.TrimSpace(value)
}

// StatusLabel turns a backend status such as EN_PROCESO into "En proceso".
func StatusLabel(status string) string {
	if status == "" {
		return "-"
	}
	s := strings.ToLower(strings.ReplaceAll(status, "_", " "))
	return strings.ToUpper(s[:1]) + s[1:]
}

func statusOptions(values ...string) func(Refs) []models.Option {
	return func(Refs) []models.Option {
		opts := make([]models.Option, 0, len(values))
		for _, v := range values {
			opts = append(opts, models.Option{Value: v, Label: StatusLabel(v)})
		}
		return opts
	}
}

// StatusTone maps a status to its badge color.
func StatusTone(status string) string {
	switch status {
	case models.ContractActive, models.RoomAvailable, models.MaintenanceAttended, models.PaymentPaid, models.FurnitureGood:
		return "success"
	case models.MaintenancePending, models.MaintenanceInProgress, models.RoomMaintenance, models.FurnitureRegular:
		return "warning"
	case models.ContractFinished, models.RoomOccupied:
		return "info"
	case models.ContractCanceled, models.PaymentOverdue, models.FurnitureBad:
		return "danger"
	default:
		return "secondary"
	}
}

func statusBadge(status string) (string, string) {
	return StatusLabel(status), StatusTone(status)
}

func boolBadge(v bool, yes, no string) (string, string) {
	if v {
		return yes, "success"
	}
	return no, "secondary"
}

func idText(id int64) string { return strconv.FormatInt(id, 10) }

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	d, err := utils.OptionalDecimal(raw)
	if err != nil || d == nil || d.IsNegative() {
		return decimal.Zero, &ValidationError{Fields: map[string]string{field: "Monto inválido"}}
	}
	return *d, nil
}

// enumValue normalizes an enumerated field; the backend compares them
// case-sensitively in upper case.
func enumValue(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
