package handler

import (
	"net/http"
	"strings"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// originDomain resolves the storefront brand of the request. Explicit
// header first, then the Host the request came in on.
func originDomain(c echo.Context) string {
	if d := strings.TrimSpace(c.Request().Header.Get("X-Shop-Domain")); d != "" {
		return d
	}
	if d := strings.TrimSpace(c.QueryParam("domain")); d != "" {
		return d
	}
	host := c.Request().Host
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host
}

func brandFromRequest(c echo.Context) (string, config.ShopContext) {
	domain := originDomain(c)
	return domain, config.BrandForDomain(domain)
}

// actorEmail is the admin identity the JWT middleware stored.
func actorEmail(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserEmailKey)
	email, ok := v.(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
