package routes

import (
	"net/http"
	"time"

	"rental-admin/config"
	"rental-admin/controllers"
	"rental-admin/middleware"
	"rental-admin/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Navigation lists the console pages in sidebar order.
var Navigation = []controllers.NavItem{
	{Path: "/", Label: "Panel", Icon: "fa-chart-line"},
	{Path: "/contratos", Label: "Contratos", Icon: "fa-file-contract"},
	{Path: "/cuartos", Label: "Cuartos", Icon: "fa-door-open"},
	{Path: "/inquilinos", Label: "Inquilinos", Icon: "fa-users"},
	{Path: "/propietarios", Label: "Propietarios", Icon: "fa-user-tie"},
	{Path: "/mantenimientos", Label: "Mantenimientos", Icon: "fa-tools"},
	{Path: "/pagos", Label: "Pagos", Icon: "fa-money-bill-wave"},
	{Path: "/notificaciones", Label: "Notificaciones", Icon: "fa-bell"},
	{Path: "/catalogo-muebles", Label: "Catálogo de muebles", Icon: "fa-couch"},
	{Path: "/cuarto-muebles", Label: "Muebles por cuarto", Icon: "fa-chair"},
	{Path: "/usuarios", Label: "Usuarios", Icon: "fa-user-shield"},
}

// SetupRouter wires the console pages, the page bundle and the operational
// endpoints.
func SetupRouter(cfg *config.Config, db *gorm.DB, app *controllers.Console) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := cfg.AllowedOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET(cfg.MetricsPath, gin.WrapH(promhttp.Handler()))

	static := controllers.NewStaticController(cfg.StaticDir)
	r.Static("/assets", cfg.StaticDir+"/assets")

	if app.Nav == nil {
		app.Nav = Navigation
	}

	web := r.Group("/", middleware.Session(db, cfg.SIDCookie, cfg.CookieSecure))
	{
		auth := controllers.NewAuthController(app)
		web.GET("/login", auth.LoginPage)
		web.POST("/login", auth.Login)
		web.POST("/logout", auth.Logout)

		console := web.Group("", middleware.RequireSession())
		console.GET("/", controllers.NewDashboardController(app).Index)
		RegisterPages(console, app)
	}

	r.NoRoute(static.Serve)
	return r
}

// RegisterPages mounts every entity page.
func RegisterPages(rg *gin.RouterGroup, app *controllers.Console) {
	controllers.NewPageController(app, services.ContractPage()).Register(rg)
	controllers.NewPageController(app, services.RoomPage()).Register(rg)
	controllers.NewPageController(app, services.TenantPage()).Register(rg)
	controllers.NewPageController(app, services.OwnerPage()).Register(rg)
	controllers.NewPageController(app, services.MaintenancePage()).Register(rg)
	controllers.NewPageController(app, services.PaymentPage()).Register(rg)
	controllers.NewPageController(app, services.NotificationPage()).Register(rg)
	controllers.NewPageController(app, services.FurniturePage()).Register(rg)
	controllers.NewPageController(app, services.RoomFurniturePage()).Register(rg)
	controllers.NewPageController(app, services.UserPage()).Register(rg)
}
