package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminShopHandler struct {
	uc *usecase.ShopUsecase
}

func NewAdminShopHandler(uc *usecase.ShopUsecase) *AdminShopHandler {
	return &AdminShopHandler{uc: uc}
}

type ShopCreateRequest struct {
	Name          string `json:"name" validate:"required"`
	CompanyName   string `json:"company_name" validate:"required"`
	Street        string `json:"street"`
	Postcode      string `json:"postcode"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	VATNumber     string `json:"vat_number"`
	CourtRegister string `json:"court_register"`
}

type ShopUpdateRequest struct {
	Name          *string `json:"name"`
	CompanyName   *string `json:"company_name"`
	Street        *string `json:"street"`
	Postcode      *string `json:"postcode"`
	City          *string `json:"city"`
	Country       *string `json:"country"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	VATNumber     *string `json:"vat_number"`
	CourtRegister *string `json:"court_register"`
}

func (h *AdminShopHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/shops", h.list)
	admin.POST("/shops", h.create)
	admin.PATCH("/shops/:id", h.update)
	admin.PUT("/shops/:id/default", h.setDefault)
}

func (h *AdminShopHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminShopHandler) create(c echo.Context) error {
	var req ShopCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.ShopInput{
		Name:          req.Name,
		CompanyName:   req.CompanyName,
		Street:        req.Street,
		Postcode:      req.Postcode,
		City:          req.City,
		Country:       req.Country,
		Email:         req.Email,
		Phone:         req.Phone,
		VATNumber:     req.VATNumber,
		CourtRegister: req.CourtRegister,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminShopHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ShopUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	fields := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	set("name", req.Name)
	set("company_name", req.CompanyName)
	set("street", req.Street)
	set("postcode", req.Postcode)
	set("city", req.City)
	set("country", req.Country)
	set("email", req.Email)
	set("phone", req.Phone)
	set("vat_number", req.VATNumber)
	set("court_register", req.CourtRegister)

	out, err := h.uc.Update(c.Request().Context(), id, fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminShopHandler) setDefault(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.SetDefault(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
