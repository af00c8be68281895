package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"app/internal/config"
	repo "app/internal/repository"
)

// QuoteUsecase is the price calculator. Side-effect-free: the same input
// always yields the same quote against the same product price.
type QuoteUsecase struct {
	products repo.ProductRepository
	cfg      config.QuoteConfig
}

func NewQuoteUsecase(products repo.ProductRepository, cfg config.QuoteConfig) *QuoteUsecase {
	return &QuoteUsecase{products: products, cfg: cfg}
}

type QuoteInput struct {
	Postcode string
	Liters   int64
	Product  string
}

type QuoteOutput struct {
	Product       string  `json:"product"`
	Liters        int64   `json:"liters"`
	PricePerLiter float64 `json:"price_per_liter"`
	BasePrice     float64 `json:"base_price"`
	DeliveryFee   float64 `json:"delivery_fee"`
	TotalPrice    float64 `json:"total_price"`
	// Waived delivery fee when the free-delivery threshold is met.
	Savings float64 `json:"savings"`
}

func (u *QuoteUsecase) Quote(ctx context.Context, in QuoteInput) (QuoteOutput, error) {
	code := strings.TrimSpace(in.Product)
	if code == "" {
		return QuoteOutput{}, NewHTTPError(http.StatusBadRequest, "product is required")
	}
	if in.Liters < u.cfg.MinLiters || in.Liters > u.cfg.MaxLiters {
		return QuoteOutput{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("liters must be between %d and %d", u.cfg.MinLiters, u.cfg.MaxLiters))
	}

	p, err := u.products.FindByCode(ctx, code)
	if err == repo.ErrNotFound {
		return QuoteOutput{}, NewHTTPError(http.StatusBadRequest, "unknown product")
	}
	if err != nil {
		return QuoteOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return QuoteOutput{}, NewHTTPError(http.StatusBadRequest, "unknown product")
	}

	basePrice := round2(float64(in.Liters) * p.PricePerLiter)

	deliveryFee := u.cfg.DeliveryFee
	savings := 0.0
	if in.Liters >= u.cfg.FreeDeliveryLiters {
		savings = deliveryFee
		deliveryFee = 0
	}

	return QuoteOutput{
		Product:       p.Code,
		Liters:        in.Liters,
		PricePerLiter: p.PricePerLiter,
		BasePrice:     basePrice,
		DeliveryFee:   deliveryFee,
		TotalPrice:    round2(basePrice + deliveryFee),
		Savings:       savings,
	}, nil
}
