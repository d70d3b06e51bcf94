package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mgarrido/tienda/internal/handlers"
	"github.com/mgarrido/tienda/internal/middleware/auth"
)

type Deps struct {
	Catalog *handlers.CatalogHandler
	Auth    *handlers.AuthHandler
	Cart    *handlers.CartHandler
	Orders  *handlers.OrderHandler
	// Search is nil when elasticsearch is not configured; the route
	// is simply not registered then.
	Search *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/", d.Catalog.Home)
	if d.Search != nil {
		e.GET("/search", d.Search.Search)
	}

	e.GET("/register", d.Auth.RegisterForm)
	e.POST("/register", d.Auth.Register)
	e.GET("/login", d.Auth.LoginForm)
	e.POST("/login", d.Auth.Login)
	e.GET("/logout", d.Auth.Logout)

	e.GET("/cart", d.Cart.View)
	e.POST("/cart/add/:id", d.Cart.Add)
	e.POST("/cart/update/:id", d.Cart.Update)
	e.POST("/cart/remove/:id", d.Cart.Remove)
	e.POST("/cart/checkout", d.Cart.Checkout, auth.RequireLogin)

	orders := e.Group("/orders", auth.RequireLogin)
	orders.GET("/history", d.Orders.History)
	orders.GET("/:id/ticket", d.Orders.Ticket)
	orders.GET("/:id/ticket/pdf", d.Orders.TicketPDF)
}
