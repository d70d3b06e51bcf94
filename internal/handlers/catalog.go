package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mgarrido/tienda/internal/logging"
	"github.com/mgarrido/tienda/internal/models"
)

type CatalogHandler struct {
	DB *gorm.DB
}

func (h *CatalogHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()

	var products []models.Product
	if err := h.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		logging.FromContext(ctx).Error("catalog_error", "error", err)
		return c.String(http.StatusInternalServerError, "Error cargando productos")
	}

	return c.Render(http.StatusOK, "index", viewData(c, map[string]interface{}{
		"Products": products,
	}))
}
