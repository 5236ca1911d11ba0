package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zikrhub/backend/pkg/azkar"
)

// AzkarHandler serves the static zekr reference catalogue
type AzkarHandler struct {
	catalog *azkar.Catalog
}

// NewAzkarHandler creates a new AzkarHandler
func NewAzkarHandler(catalog *azkar.Catalog) *AzkarHandler {
	return &AzkarHandler{catalog: catalog}
}

// RegisterAzkarRoutes registers catalogue routes
func (h *AzkarHandler) RegisterAzkarRoutes(g *echo.Group) {
	g.GET("/azkar", h.GetAzkar)
}

// GetAzkar returns the whole catalogue in file order
func (h *AzkarHandler) GetAzkar(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.All())
}
