package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Echo wraps go-playground/validator as echo's request validator so
// handlers can call c.Validate(&req).
type Echo struct {
	validate *validator.Validate
}

func New() *Echo {
	return &Echo{validate: validator.New()}
}

func (v *Echo) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
