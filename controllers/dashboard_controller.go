package controllers

import (
	"net/http"
	"sort"

	"rental-admin/services"
	"rental-admin/utils"

	"github.com/gin-gonic/gin"
)

type statusCount struct {
	Label string
	Tone  string
	Count int
}

type dashboardView struct {
	Stats     services.DashboardStats
	PaidTotal string
	ByStatus  []statusCount
}

type DashboardController struct {
	app *Console
}

func NewDashboardController(app *Console) *DashboardController {
	return &DashboardController{app: app}
}

func (dc *DashboardController) Index(c *gin.Context) {
	n := dc.app.notifier(c)
	stats, err := services.DashboardService{Client: dc.app.client(c)}.Load(c.Request.Context())
	if err != nil {
		if isUnauthorized(err) {
			dc.app.expired(c, n)
			return
		}
		n.ShowTitled("Error al cargar el panel", services.UserMessage(err), services.ToastError)
	}

	view := dashboardView{Stats: stats, PaidTotal: utils.FormatMoney(stats.PaidTotal)}
	for status, count := range stats.ContractsByStatus {
		view.ByStatus = append(view.ByStatus, statusCount{
			Label: services.StatusLabel(status),
			Tone:  services.StatusTone(status),
			Count: count,
		})
	}
	sort.Slice(view.ByStatus, func(i, j int) bool { return view.ByStatus[i].Label < view.ByStatus[j].Label })

	dc.app.render(c, http.StatusOK, "dashboard", "Panel", "/", n, view)
}
