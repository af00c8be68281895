package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Quote       *handler.QuoteHandler
	Order       *handler.OrderHandler
	Auth        *handler.AuthHandler
	AdminOrder  *handler.AdminOrderHandler
	BankAccount *handler.AdminBankAccountHandler
	Shop        *handler.AdminShopHandler
	Product     *handler.AdminProductHandler
	InvoiceFile *handler.InvoiceFileHandler
}

// New assembles the echo instance with all routes registered.
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(requestLogger())

	h.Quote.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.BankAccount.RegisterRoutes(e, cfg)
	h.Shop.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.InvoiceFile.RegisterRoutes(e, cfg)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}

// Start runs the server and blocks until SIGINT/SIGTERM, then drains
// in-flight requests for up to five seconds.
func Start(cfg config.Config, e *echo.Echo) error {
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")
			return err
		}
	}
}
