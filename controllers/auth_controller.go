package controllers

import (
	"net/http"

	"rental-admin/middleware"
	"rental-admin/models"
	"rental-admin/services"
	"rental-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type loginView struct {
	Username string
	Errors   map[string]string
}

type AuthController struct {
	app *Console
}

func NewAuthController(app *Console) *AuthController {
	return &AuthController{app: app}
}

func (ac *AuthController) LoginPage(c *gin.Context) {
	n := ac.app.notifier(c)
	if middleware.SessionFrom(c).RequireSession() == nil {
		ac.app.redirect(c, n, "/")
		return
	}
	ac.app.render(c, http.StatusOK, "login", "Iniciar sesión", "", n, loginView{})
}

func (ac *AuthController) Login(c *gin.Context) {
	n := ac.app.notifier(c)
	if err := c.Request.ParseForm(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "formulario inválido")
		return
	}

	var req models.LoginRequest
	if err := services.BindForm(c.Request.PostForm, &req); err != nil {
		var valErr *services.ValidationError
		view := loginView{Username: req.Username}
		if errors.As(err, &valErr) {
			view.Errors = valErr.Fields
		}
		n.ShowTitled("Datos incompletos", "Ingrese usuario y contraseña", services.ToastWarning)
		ac.app.render(c, http.StatusUnprocessableEntity, "login", "Iniciar sesión", "", n, view)
		return
	}

	auth := services.AuthService{Client: ac.app.Client}
	if err := auth.Login(c.Request.Context(), middleware.SessionFrom(c), req); err != nil {
		utils.Logger.WithField("username", req.Username).Warnf("login failed: %v", err)
		n.ShowTitled("Error al iniciar sesión", services.UserMessage(err), services.ToastError)
		status := http.StatusUnauthorized
		if !isUnauthorized(err) {
			status = http.StatusBadGateway
		}
		ac.app.render(c, status, "login", "Iniciar sesión", "", n, loginView{Username: req.Username})
		return
	}

	n.Show("Bienvenido, "+middleware.SessionFrom(c).Username(), services.ToastSuccess)
	ac.app.redirect(c, n, "/")
}

func (ac *AuthController) Logout(c *gin.Context) {
	n := ac.app.notifier(c)
	auth := services.AuthService{Client: ac.app.Client}
	if err := auth.Logout(middleware.SessionFrom(c)); err != nil {
		utils.Logger.Warnf("logout: %v", err)
	}
	n.Show("Sesión cerrada", services.ToastInfo)
	ac.app.redirect(c, n, "/login")
}
