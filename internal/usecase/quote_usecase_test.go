package usecase_test

import (
	"context"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func quoteConfig() config.QuoteConfig {
	return config.QuoteConfig{
		MinLiters:          500,
		MaxLiters:          32000,
		FreeDeliveryLiters: 3000,
		DeliveryFee:        25.00,
	}
}

func TestQuote_FreeDeliveryAtThreshold(t *testing.T) {
	products := &ProductRepoMock{}
	products.On("FindByCode", mock.Anything, "standard").
		Return(model.Product{Code: "standard", PricePerLiter: 0.70, IsActive: true}, nil)

	uc := usecase.NewQuoteUsecase(products, quoteConfig())

	out, err := uc.Quote(context.Background(), usecase.QuoteInput{
		Postcode: "10115",
		Liters:   3000,
		Product:  "standard",
	})

	assert.NoError(t, err)
	assert.InDelta(t, 2100.00, out.BasePrice, 0.001)
	assert.InDelta(t, 0.0, out.DeliveryFee, 0.001)
	assert.InDelta(t, 2100.00, out.TotalPrice, 0.001)
	assert.InDelta(t, 25.00, out.Savings, 0.001)
}

func TestQuote_FeeBelowThreshold(t *testing.T) {
	products := &ProductRepoMock{}
	products.On("FindByCode", mock.Anything, "premium").
		Return(model.Product{Code: "premium", PricePerLiter: 0.75, IsActive: true}, nil)

	uc := usecase.NewQuoteUsecase(products, quoteConfig())

	out, err := uc.Quote(context.Background(), usecase.QuoteInput{
		Liters:  1500,
		Product: "premium",
	})

	assert.NoError(t, err)
	assert.InDelta(t, 1125.00, out.BasePrice, 0.001)
	assert.InDelta(t, 25.00, out.DeliveryFee, 0.001)
	assert.InDelta(t, 1150.00, out.TotalPrice, 0.001)
	assert.InDelta(t, 0.0, out.Savings, 0.001)
}

func TestQuote_LitersOutOfBounds(t *testing.T) {
	products := &ProductRepoMock{}
	uc := usecase.NewQuoteUsecase(products, quoteConfig())

	for _, liters := range []int64{0, 499, 32001} {
		_, err := uc.Quote(context.Background(), usecase.QuoteInput{
			Liters:  liters,
			Product: "standard",
		})

		he, ok := usecase.AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, 400, he.Status)
	}
	products.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
}

func TestQuote_BoundsAreInclusive(t *testing.T) {
	products := &ProductRepoMock{}
	products.On("FindByCode", mock.Anything, "standard").
		Return(model.Product{Code: "standard", PricePerLiter: 0.89, IsActive: true}, nil)

	uc := usecase.NewQuoteUsecase(products, quoteConfig())

	for _, liters := range []int64{500, 32000} {
		_, err := uc.Quote(context.Background(), usecase.QuoteInput{
			Liters:  liters,
			Product: "standard",
		})
		assert.NoError(t, err)
	}
}

func TestQuote_UnknownOrInactiveProduct(t *testing.T) {
	products := &ProductRepoMock{}
	products.On("FindByCode", mock.Anything, "diesel").
		Return(model.Product{}, repo.ErrNotFound)
	products.On("FindByCode", mock.Anything, "legacy").
		Return(model.Product{Code: "legacy", PricePerLiter: 0.80, IsActive: false}, nil)

	uc := usecase.NewQuoteUsecase(products, quoteConfig())

	for _, code := range []string{"diesel", "legacy"} {
		_, err := uc.Quote(context.Background(), usecase.QuoteInput{
			Liters:  2000,
			Product: code,
		})

		he, ok := usecase.AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, 400, he.Status)
		assert.Equal(t, "unknown product", he.Message)
	}
}

func TestQuote_RoundsFractionalCents(t *testing.T) {
	products := &ProductRepoMock{}
	products.On("FindByCode", mock.Anything, "standard").
		Return(model.Product{Code: "standard", PricePerLiter: 0.8888, IsActive: true}, nil)

	uc := usecase.NewQuoteUsecase(products, quoteConfig())

	out, err := uc.Quote(context.Background(), usecase.QuoteInput{
		Liters:  1501,
		Product: "standard",
	})

	assert.NoError(t, err)
	// 1501 * 0.8888 = 1334.0888 -> 1334.09
	assert.InDelta(t, 1334.09, out.BasePrice, 0.001)
	assert.InDelta(t, 1359.09, out.TotalPrice, 0.001)
}
