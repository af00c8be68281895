package handler

import (
	"net/http"
	"os"

	"app/internal/config"
	"app/internal/invoice"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

// InvoiceFileHandler serves rendered invoice PDFs. Admin-only: invoice
// URLs are sent to customers by mail, never exposed unauthenticated.
type InvoiceFileHandler struct {
	store *invoice.FileStore
}

func NewInvoiceFileHandler(store *invoice.FileStore) *InvoiceFileHandler {
	return &InvoiceFileHandler{store: store}
}

func (h *InvoiceFileHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/invoices")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/:file", h.serve)
}

func (h *InvoiceFileHandler) serve(c echo.Context) error {
	path, err := h.store.Path(c.Param("file"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file name"})
	}

	if _, err := os.Stat(path); err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	return c.File(path)
}
