package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgarrido/tienda/internal/logging"
	"github.com/mgarrido/tienda/internal/pdf"
	"github.com/mgarrido/tienda/internal/service/orders"
	"github.com/mgarrido/tienda/internal/session"
)

type OrderHandler struct {
	Orders *orders.Service
}

func (h *OrderHandler) History(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := session.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	list, err := h.Orders.History(ctx, user.ID)
	if err != nil {
		logging.FromContext(ctx).Error("history_error", "error", err)
		return c.String(http.StatusInternalServerError, "Error al cargar historial")
	}

	return c.Render(http.StatusOK, "history", viewData(c, map[string]interface{}{
		"Orders": list,
	}))
}

// loadTicket resolves the :id param under the caller's identity.
// Someone else's order id behaves exactly like a missing one. The
// route middleware guarantees an identity is bound.
func (h *OrderHandler) loadTicket(c echo.Context) (session.User, *orders.Ticket, error) {
	user, _ := session.CurrentUser(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return user, nil, orders.ErrNotFound
	}

	ticket, err := h.Orders.Ticket(c.Request().Context(), uint(orderID), user.ID)
	if err != nil {
		return user, nil, err
	}
	return user, ticket, nil
}

func (h *OrderHandler) Ticket(c echo.Context) error {
	user, ticket, err := h.loadTicket(c)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			return c.String(http.StatusNotFound, "Orden no encontrada")
		}
		logging.FromContext(c.Request().Context()).Error("ticket_error", "error", err)
		return c.String(http.StatusInternalServerError, "Error al cargar ticket")
	}

	return c.Render(http.StatusOK, "ticket", viewData(c, map[string]interface{}{
		"Ticket": ticket,
		"Owner":  user,
	}))
}

func (h *OrderHandler) TicketPDF(c echo.Context) error {
	user, ticket, err := h.loadTicket(c)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			return c.String(http.StatusNotFound, "Orden no encontrada")
		}
		logging.FromContext(c.Request().Context()).Error("ticket_pdf_error", "error", err)
		return c.String(http.StatusInternalServerError, "Error al generar PDF")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/pdf")
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="ticket_%d.pdf"`, ticket.Order.ID))
	res.WriteHeader(http.StatusOK)

	// Streams straight into the response; a client disconnect just
	// aborts the write.
	if err := pdf.WriteTicket(res, user, ticket); err != nil {
		logging.FromContext(c.Request().Context()).Error("ticket_pdf_error", "error", err)
	}
	return nil
}
