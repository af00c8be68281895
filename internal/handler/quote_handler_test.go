package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	repo "app/internal/repository"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed-price product catalogue, enough for the public endpoints
type productRepoStub struct {
	products map[string]model.Product
}

func (s *productRepoStub) FindByCode(ctx context.Context, code string) (model.Product, error) {
	p, ok := s.products[code]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (s *productRepoStub) ListActive(ctx context.Context) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range s.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *productRepoStub) Create(ctx context.Context, p model.Product) (int64, error) { return 0, nil }
func (s *productRepoStub) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return nil
}
func (s *productRepoStub) Count(ctx context.Context) (int64, error) { return 0, nil }

func newQuoteServer() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	products := &productRepoStub{products: map[string]model.Product{
		"standard": {Code: "standard", Name: "Heizöl Standard", PricePerLiter: 0.89, IsActive: true},
	}}
	cfg := config.QuoteConfig{
		MinLiters: 500, MaxLiters: 32000, FreeDeliveryLiters: 3000, DeliveryFee: 25,
	}

	h := handler.NewQuoteHandler(
		usecase.NewQuoteUsecase(products, cfg),
		usecase.NewProductUsecase(products),
	)
	h.RegisterRoutes(e)
	return e
}

func TestPostQuote(t *testing.T) {
	e := newQuoteServer()

	body := `{"postcode":"10115","liters":3000,"product":"standard"}`
	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out usecase.QuoteOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.InDelta(t, 2670.00, out.BasePrice, 0.001)
	assert.InDelta(t, 0.0, out.DeliveryFee, 0.001)
	assert.InDelta(t, 25.00, out.Savings, 0.001)
}

func TestPostQuote_ValidationFailure(t *testing.T) {
	e := newQuoteServer()

	body := `{"liters":3000}`
	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBrand_UsesShopDomainHeader(t *testing.T) {
	e := newQuoteServer()

	req := httptest.NewRequest(http.MethodGet, "/brand", nil)
	req.Header.Set("X-Shop-Domain", "fioul-direct.fr")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var brand config.ShopContext
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brand))
	assert.Equal(t, "fr", brand.ShopType)
	assert.InDelta(t, 20.0, brand.VATRate, 0.001)
}

func TestGetBrand_FallsBackToHost(t *testing.T) {
	e := newQuoteServer()

	req := httptest.NewRequest(http.MethodGet, "/brand", nil)
	req.Host = "www.gasolio-diretto.it:443"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var brand config.ShopContext
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brand))
	assert.Equal(t, "it", brand.ShopType)
}
