package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mgarrido/tienda/internal/events"
	"github.com/mgarrido/tienda/internal/logging"
	"github.com/mgarrido/tienda/internal/service/users"
	"github.com/mgarrido/tienda/internal/session"
)

type AuthHandler struct {
	Users    *users.Service
	Producer *events.Producer
}

func (h *AuthHandler) publish(c echo.Context, userID uint, event map[string]interface{}) {
	if err := h.Producer.PublishEvent(c.Request().Context(), "user_events", fmt.Sprint(userID), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", viewData(c, map[string]interface{}{
		"Error":  nil,
		"Nombre": "",
		"Email":  "",
	}))
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	nombre := c.FormValue("nombre")
	email := c.FormValue("email")
	password := c.FormValue("password")

	identity, err := h.Users.Register(ctx, nombre, email, password)
	if err != nil {
		msg := "Error al registrar usuario."
		switch {
		case errors.Is(err, users.ErrValidation):
			msg = "Todos los campos son obligatorios."
		case errors.Is(err, users.ErrDuplicateEmail):
			msg = "Ese correo ya está registrado."
		}
		return c.Render(http.StatusOK, "register", viewData(c, map[string]interface{}{
			"Error":  msg,
			"Nombre": nombre,
			"Email":  email,
		}))
	}

	h.publish(c, identity.ID, map[string]interface{}{
		"type":   "user_registered",
		"userID": identity.ID,
		"email":  identity.Email,
	})

	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", viewData(c, map[string]interface{}{
		"Error": nil,
		"Email": "",
	}))
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	email := c.FormValue("email")
	password := c.FormValue("password")

	identity, err := h.Users.Authenticate(ctx, email, password)
	if err != nil {
		msg := "Error al iniciar sesión."
		switch {
		case errors.Is(err, users.ErrValidation):
			msg = "Todos los campos son obligatorios."
		case errors.Is(err, users.ErrInvalidCredentials):
			msg = "Correo o contraseña incorrectos."
		}
		return c.Render(http.StatusOK, "login", viewData(c, map[string]interface{}{
			"Error": msg,
			"Email": email,
		}))
	}

	u := session.User{ID: identity.ID, Nombre: identity.Nombre, Email: identity.Email}
	if err := session.SetUser(c, u); err != nil {
		logging.FromContext(ctx).Error("session save error", "error", err)
		return c.Render(http.StatusOK, "login", viewData(c, map[string]interface{}{
			"Error": "Error al iniciar sesión.",
			"Email": email,
		}))
	}

	h.publish(c, identity.ID, map[string]interface{}{
		"type":   "user_logged_in",
		"userID": identity.ID,
		"email":  identity.Email,
	})

	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := session.Destroy(c); err != nil {
		logging.FromContext(c.Request().Context()).Error("session destroy error", "error", err)
	}
	return c.Redirect(http.StatusFound, "/")
}
