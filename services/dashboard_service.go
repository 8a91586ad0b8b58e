package services

import (
	"context"

	"rental-admin/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DashboardStats summarizes the collections shown on the home page.
type DashboardStats struct {
	Contracts           int
	ActiveContracts     int
	ContractsByStatus   map[string]int
	Rooms               int
	AvailableRooms      int
	Tenants             int
	PendingMaintenance  int
	UnreadNotifications int
	Payments            int
	PaidTotal           decimal.Decimal
	OverduePayments     int
}

type DashboardService struct {
	Client *RestClient
}

// Load fetches every collection concurrently; the first failure cancels
// the others.
func (s DashboardService) Load(ctx context.Context) (DashboardStats, error) {
	var (
		contracts     = NewEntityCache[models.Contract]("/contratos")
		rooms         = NewEntityCache[models.Room]("/cuartos")
		tenants       = NewEntityCache[models.Tenant]("/inquilinos")
		maintenance   = NewEntityCache[models.MaintenanceTicket]("/mantenimientos")
		payments      = NewEntityCache[models.Payment]("/pagos")
		notifications = NewEntityCache[models.Notification]("/notificaciones")
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return contracts.Load(gctx, s.Client) })
	g.Go(func() error { return rooms.Load(gctx, s.Client) })
	g.Go(func() error { return tenants.Load(gctx, s.Client) })
	g.Go(func() error { return maintenance.Load(gctx, s.Client) })
	g.Go(func() error { return payments.Load(gctx, s.Client) })
	g.Go(func() error { return notifications.Load(gctx, s.Client) })
	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		Contracts:         contracts.Len(),
		ContractsByStatus: map[string]int{},
		Rooms:             rooms.Len(),
		Tenants:           tenants.Len(),
		Payments:          payments.Len(),
		PaidTotal:         decimal.Zero,
	}
	for _, c := range contracts.All() {
		stats.ContractsByStatus[c.Status]++
		if c.Status == models.ContractActive {
			stats.ActiveContracts++
		}
	}
	for _, r := range rooms.All() {
		if r.Status == models.RoomAvailable {
			stats.AvailableRooms++
		}
	}
	for _, m := range maintenance.All() {
		if m.Status != models.MaintenanceAttended {
			stats.PendingMaintenance++
		}
	}
	for _, n := range notifications.All() {
		if !n.Read {
			stats.UnreadNotifications++
		}
	}
	for _, p := range payments.All() {
		switch p.Status {
		case models.PaymentPaid:
			stats.PaidTotal = stats.PaidTotal.Add(p.Amount)
		case models.PaymentOverdue:
			stats.OverduePayments++
		}
	}
	return stats, nil
}
