package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminBankAccountHandler struct {
	uc *usecase.BankAccountUsecase
}

func NewAdminBankAccountHandler(uc *usecase.BankAccountUsecase) *AdminBankAccountHandler {
	return &AdminBankAccountHandler{uc: uc}
}

type BankAccountCreateRequest struct {
	SystemName    string  `json:"system_name" validate:"required"`
	BankName      string  `json:"bank_name" validate:"required"`
	AccountHolder string  `json:"account_holder" validate:"required"`
	IBAN          string  `json:"iban" validate:"required"`
	BIC           string  `json:"bic"`
	DailyLimit    float64 `json:"daily_limit" validate:"gte=0"`
	IsActive      *bool   `json:"is_active"`
}

type BankAccountUpdateRequest struct {
	SystemName    *string  `json:"system_name"`
	BankName      *string  `json:"bank_name"`
	AccountHolder *string  `json:"account_holder"`
	IBAN          *string  `json:"iban"`
	BIC           *string  `json:"bic"`
	DailyLimit    *float64 `json:"daily_limit"`
	IsActive      *bool    `json:"is_active"`
}

func (h *AdminBankAccountHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/bank-accounts", h.list)
	admin.POST("/bank-accounts", h.create)
	admin.PATCH("/bank-accounts/:id", h.update)
	admin.PUT("/bank-accounts/:id/default", h.setDefault)
	admin.GET("/bank-accounts/:id/usage", h.usage)
}

func (h *AdminBankAccountHandler) list(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	out, err := h.uc.List(c.Request().Context(), includeInactive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminBankAccountHandler) create(c echo.Context) error {
	var req BankAccountCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.BankAccountInput{
		SystemName:    req.SystemName,
		BankName:      req.BankName,
		AccountHolder: req.AccountHolder,
		IBAN:          req.IBAN,
		BIC:           req.BIC,
		DailyLimit:    req.DailyLimit,
		IsActive:      active,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminBankAccountHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req BankAccountUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	fields := map[string]interface{}{}
	if req.SystemName != nil {
		fields["system_name"] = *req.SystemName
	}
	if req.BankName != nil {
		fields["bank_name"] = *req.BankName
	}
	if req.AccountHolder != nil {
		fields["account_holder"] = *req.AccountHolder
	}
	if req.IBAN != nil {
		fields["iban"] = strings.ToUpper(strings.ReplaceAll(*req.IBAN, " ", ""))
	}
	if req.BIC != nil {
		fields["bic"] = strings.ToUpper(strings.TrimSpace(*req.BIC))
	}
	if req.DailyLimit != nil {
		fields["daily_limit"] = *req.DailyLimit
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	out, err := h.uc.Update(c.Request().Context(), id, fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminBankAccountHandler) setDefault(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.SetDefault(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminBankAccountHandler) usage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	day := time.Now()
	if v := c.QueryParam("date"); v != "" {
		day, err = time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
		}
	}

	out, err := h.uc.DailyUsage(c.Request().Context(), id, day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
