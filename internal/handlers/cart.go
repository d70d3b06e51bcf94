package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mgarrido/tienda/internal/events"
	"github.com/mgarrido/tienda/internal/logging"
	"github.com/mgarrido/tienda/internal/models"
	"github.com/mgarrido/tienda/internal/service/orders"
	"github.com/mgarrido/tienda/internal/session"
)

type CartHandler struct {
	DB       *gorm.DB
	Orders   *orders.Service
	Producer *events.Producer
}

func (h *CartHandler) publish(c echo.Context, userID uint, event map[string]interface{}) {
	if err := h.Producer.PublishEvent(c.Request().Context(), "order_events", fmt.Sprint(userID), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// quantityValue reads the quantity from either an urlencoded form or
// a JSON body. ok is false when the field is absent or not a whole
// number; the fallback policy is the caller's.
func quantityValue(c echo.Context) (int, bool) {
	if v := c.FormValue("quantity"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}

	var body struct {
		Quantity json.Number `json:"quantity"`
	}
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return 0, false
	}
	n, err := body.Quantity.Int64()
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func productParam(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *CartHandler) View(c echo.Context) error {
	return c.Render(http.StatusOK, "cart", viewData(c, nil))
}

// Add puts a product in the cart. An absent or unparseable quantity
// means "add at least one". Unknown products bounce back to the
// catalog without an error page.
func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	productID, ok := productParam(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/")
	}

	qty, ok := quantityValue(c)
	if !ok || qty < 1 {
		qty = 1
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, productID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.FromContext(ctx).Error("cart_add_error", "error", err)
		}
		return c.Redirect(http.StatusFound, "/")
	}

	ct := session.Cart(c)
	ct.Add(product, qty)
	if err := session.SaveCart(c, ct); err != nil {
		logging.FromContext(ctx).Error("session save error", "error", err)
	}

	return c.Redirect(http.StatusFound, "/cart")
}

// Update sets a line's quantity absolutely; zero, negative or garbage
// removes the line. Unlike Add there is no fall back to 1: an invalid
// update reads as "get rid of it".
func (h *CartHandler) Update(c echo.Context) error {
	ct := session.Cart(c)

	if productID, ok := productParam(c); ok {
		qty, parsed := quantityValue(c)
		if !parsed {
			qty = 0
		}
		ct.Update(productID, qty)
		if err := session.SaveCart(c, ct); err != nil {
			logging.FromContext(c.Request().Context()).Error("session save error", "error", err)
		}
	}

	if c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return c.JSON(http.StatusOK, echo.Map{
			"totalQty":   ct.TotalQty,
			"totalPrice": ct.TotalPrice,
		})
	}
	return c.Redirect(http.StatusFound, "/cart")
}

func (h *CartHandler) Remove(c echo.Context) error {
	ct := session.Cart(c)

	if productID, ok := productParam(c); ok {
		ct.Remove(productID)
		if err := session.SaveCart(c, ct); err != nil {
			logging.FromContext(c.Request().Context()).Error("session save error", "error", err)
		}
	}

	return c.Redirect(http.StatusFound, "/cart")
}

// Checkout turns the cart into a persisted order. Only a committed
// transaction clears the cart; any failure redirects back with the
// cart intact.
func (h *CartHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := session.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	ct := session.Cart(c)
	orderID, err := h.Orders.Checkout(ctx, user.ID, ct)
	if err != nil {
		if !errors.Is(err, orders.ErrEmptyCart) {
			logging.FromContext(ctx).Error("checkout_error", "error", err)
		}
		return c.Redirect(http.StatusFound, "/cart")
	}

	ct.Clear()
	if err := session.SaveCart(c, ct); err != nil {
		logging.FromContext(ctx).Error("session save error", "error", err)
	}

	h.publish(c, user.ID, map[string]interface{}{
		"type":    "order_created",
		"userID":  user.ID,
		"orderID": orderID,
	})

	return c.Redirect(http.StatusFound, fmt.Sprintf("/orders/%d/ticket", orderID))
}
