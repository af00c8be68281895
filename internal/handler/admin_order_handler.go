package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc        *usecase.AdminOrderUsecase
	orderUC   *usecase.OrderUsecase
	invoiceUC *usecase.InvoiceUsecase
	exportUC  *usecase.ExportUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, orderUC *usecase.OrderUsecase, invoiceUC *usecase.InvoiceUsecase, exportUC *usecase.ExportUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, orderUC: orderUC, invoiceUC: invoiceUC, exportUC: exportUC}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

type OrderNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type GenerateInvoiceRequest struct {
	ShopID           *int64 `json:"shop_id"`
	BankAccountID    *int64 `json:"bank_account_id"`
	Notes            string `json:"notes"`
	AcknowledgeLimit bool   `json:"acknowledge_limit"`
	Regenerate       bool   `json:"regenerate"`
}

type OrderPatchRequest struct {
	CustomerName  *string `json:"customer_name"`
	CustomerEmail *string `json:"customer_email"`
	CustomerPhone *string `json:"customer_phone"`

	DeliveryFirstName *string `json:"delivery_first_name"`
	DeliveryLastName  *string `json:"delivery_last_name"`
	DeliveryStreet    *string `json:"delivery_street"`
	DeliveryPostcode  *string `json:"delivery_postcode"`
	DeliveryCity      *string `json:"delivery_city"`
	DeliveryPhone     *string `json:"delivery_phone"`

	BillingFirstName *string `json:"billing_first_name"`
	BillingLastName  *string `json:"billing_last_name"`
	BillingStreet    *string `json:"billing_street"`
	BillingPostcode  *string `json:"billing_postcode"`
	BillingCity      *string `json:"billing_city"`

	Liters        *int64   `json:"liters"`
	PricePerLiter *float64 `json:"price_per_liter"`
	DeliveryFee   *float64 `json:"delivery_fee"`
	Discount      *float64 `json:"discount"`
	Notes         *string  `json:"notes"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.GET("/orders/export", h.export)
	admin.GET("/orders/:id", h.detail)
	admin.PATCH("/orders/:id", h.patch)
	admin.PUT("/orders/:id/status", h.updateStatus)
	admin.POST("/orders/:id/notes", h.addNote)
	admin.POST("/orders/:id/invoice", h.generateInvoice)
}

func parseListFilter(c echo.Context) (repository.AdminOrderListFilter, bool) {
	f := repository.AdminOrderListFilter{Page: 1, Limit: 50}

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return f, false
		}
		f.Page = p
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return f, false
		}
		f.Limit = l
	}

	f.Status = c.QueryParam("status")
	f.OriginDomain = c.QueryParam("origin_domain")
	f.Search = c.QueryParam("search")

	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, false
		}
		f.From = &tm
	}
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, false
		}
		f.To = &tm
	}

	return f, true
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	f, ok := parseListFilter(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid filter"})
	}

	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) patch(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req OrderPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.Update(c.Request().Context(), id, usecase.AdminUpdateOrderInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,

		DeliveryFirstName: req.DeliveryFirstName,
		DeliveryLastName:  req.DeliveryLastName,
		DeliveryStreet:    req.DeliveryStreet,
		DeliveryPostcode:  req.DeliveryPostcode,
		DeliveryCity:      req.DeliveryCity,
		DeliveryPhone:     req.DeliveryPhone,

		BillingFirstName: req.BillingFirstName,
		BillingLastName:  req.BillingLastName,
		BillingStreet:    req.BillingStreet,
		BillingPostcode:  req.BillingPostcode,
		BillingCity:      req.BillingCity,

		Liters:        req.Liters,
		PricePerLiter: req.PricePerLiter,
		DeliveryFee:   req.DeliveryFee,
		Discount:      req.Discount,
		Notes:         req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	actor, ok := actorEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Transition(c.Request().Context(), id, usecase.TransitionInput{
		Status: req.Status,
		Actor:  actor,
		Notes:  req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) addNote(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	actor, ok := actorEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	note, err := h.uc.AddNote(c.Request().Context(), id, actor, req.Text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}

func (h *AdminOrderHandler) generateInvoice(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	actor, ok := actorEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req GenerateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.invoiceUC.Generate(c.Request().Context(), usecase.GenerateInvoiceInput{
		OrderID:          id,
		ShopID:           req.ShopID,
		BankAccountID:    req.BankAccountID,
		Notes:            req.Notes,
		Actor:            actor,
		AcknowledgeLimit: req.AcknowledgeLimit,
		Regenerate:       req.Regenerate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminOrderHandler) export(c echo.Context) error {
	f, ok := parseListFilter(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid filter"})
	}

	data, err := h.exportUC.Orders(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}

	filename := usecase.ExportFilename(time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
