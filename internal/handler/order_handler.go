package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone"`

	DeliveryFirstName string `json:"delivery_first_name" validate:"required"`
	DeliveryLastName  string `json:"delivery_last_name" validate:"required"`
	DeliveryStreet    string `json:"delivery_street" validate:"required"`
	DeliveryPostcode  string `json:"delivery_postcode" validate:"required"`
	DeliveryCity      string `json:"delivery_city" validate:"required"`
	DeliveryPhone     string `json:"delivery_phone"`

	UseSameAddress   bool   `json:"use_same_address"`
	BillingFirstName string `json:"billing_first_name" validate:"required_if=UseSameAddress false"`
	BillingLastName  string `json:"billing_last_name" validate:"required_if=UseSameAddress false"`
	BillingStreet    string `json:"billing_street" validate:"required_if=UseSameAddress false"`
	BillingPostcode  string `json:"billing_postcode" validate:"required_if=UseSameAddress false"`
	BillingCity      string `json:"billing_city" validate:"required_if=UseSameAddress false"`

	Product       string  `json:"product" validate:"required"`
	Liters        int64   `json:"liters" validate:"required,gt=0"`
	PricePerLiter float64 `json:"price_per_liter" validate:"required,gt=0"`
	BasePrice     float64 `json:"base_price" validate:"required,gt=0"`
	DeliveryFee   float64 `json:"delivery_fee" validate:"gte=0"`
	Discount      float64 `json:"discount" validate:"gte=0"`
	TotalAmount   float64 `json:"total_amount" validate:"required,gt=0"`

	PaymentMethod string `json:"payment_method" validate:"required,oneof=prepayment invoice"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", h.create)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// the double-submit nonce travels in the header, not the body
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	domain, brand := brandFromRequest(c)

	out, err := h.uc.Create(c.Request().Context(), brand, usecase.CreateOrderInput{
		IdempotencyKey: idemKey,

		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,

		DeliveryFirstName: req.DeliveryFirstName,
		DeliveryLastName:  req.DeliveryLastName,
		DeliveryStreet:    req.DeliveryStreet,
		DeliveryPostcode:  req.DeliveryPostcode,
		DeliveryCity:      req.DeliveryCity,
		DeliveryPhone:     req.DeliveryPhone,

		UseSameAddress:   req.UseSameAddress,
		BillingFirstName: req.BillingFirstName,
		BillingLastName:  req.BillingLastName,
		BillingStreet:    req.BillingStreet,
		BillingPostcode:  req.BillingPostcode,
		BillingCity:      req.BillingCity,

		Product:       req.Product,
		Liters:        req.Liters,
		PricePerLiter: req.PricePerLiter,
		BasePrice:     req.BasePrice,
		DeliveryFee:   req.DeliveryFee,
		Discount:      req.Discount,
		TotalAmount:   req.TotalAmount,

		PaymentMethod: req.PaymentMethod,
		OriginDomain:  domain,
	})
	if err != nil {
		return writeError(c, err)
	}

	status := http.StatusCreated
	if out.Duplicate {
		// already processed: same order, success for the caller
		status = http.StatusOK
	}
	return c.JSON(status, out)
}
