package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Public storefront API: brand resolution, product list, price calculator.
type QuoteHandler struct {
	uc        *usecase.QuoteUsecase
	productUC *usecase.ProductUsecase
}

func NewQuoteHandler(uc *usecase.QuoteUsecase, productUC *usecase.ProductUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc, productUC: productUC}
}

type QuoteRequest struct {
	Postcode string `json:"postcode" validate:"required"`
	Liters   int64  `json:"liters" validate:"required,gt=0"`
	Product  string `json:"product" validate:"required"`
}

func (h *QuoteHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/brand", h.brand)
	e.GET("/products", h.products)
	e.POST("/quote", h.quote)
}

func (h *QuoteHandler) brand(c echo.Context) error {
	_, brand := brandFromRequest(c)
	return c.JSON(http.StatusOK, brand)
}

func (h *QuoteHandler) products(c echo.Context) error {
	out, err := h.productUC.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *QuoteHandler) quote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Quote(c.Request().Context(), usecase.QuoteInput{
		Postcode: req.Postcode,
		Liters:   req.Liters,
		Product:  req.Product,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
