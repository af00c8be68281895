package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/rs/zerolog/log"
)

// ConfirmationMailer dispatches the order confirmation. Failures are
// non-fatal to the order.
type ConfirmationMailer interface {
	SendOrderConfirmation(order model.Order, brand config.ShopContext) error
}

type OrderUsecase struct {
	tx     repo.TransactionManager
	mailer ConfirmationMailer
	cfg    config.QuoteConfig
}

func NewOrderUsecase(tx repo.TransactionManager, mailer ConfirmationMailer, cfg config.QuoteConfig) *OrderUsecase {
	return &OrderUsecase{tx: tx, mailer: mailer, cfg: cfg}
}

type CreateOrderInput struct {
	IdempotencyKey string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	DeliveryFirstName string
	DeliveryLastName  string
	DeliveryStreet    string
	DeliveryPostcode  string
	DeliveryCity      string
	DeliveryPhone     string

	UseSameAddress   bool
	BillingFirstName string
	BillingLastName  string
	BillingStreet    string
	BillingPostcode  string
	BillingCity      string

	Product       string
	Liters        int64
	PricePerLiter float64
	BasePrice     float64
	DeliveryFee   float64
	Discount      float64
	TotalAmount   float64

	PaymentMethod string
	OriginDomain  string
}

type CreateOrderOutput struct {
	Order model.Order `json:"order"`
	// Same idempotency key seen before: the existing order is returned and
	// the caller treats the call as already processed.
	Duplicate bool `json:"duplicate"`
	EmailSent bool `json:"email_sent"`
}

// priceTolerance is the rounding slack allowed between the client's quote
// snapshot and the recomputed breakdown.
const priceTolerance = 0.01

// keyFingerprint shortens an idempotency key to 24 hex chars so values
// derived from it fit narrow columns.
func keyFingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:12])
}

func (u *OrderUsecase) Create(ctx context.Context, brand config.ShopContext, in CreateOrderInput) (CreateOrderOutput, error) {
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency key")
	}
	// Same bounds as the quote: an order outside them could only come
	// from a bypassed or stale storefront.
	if in.Liters < u.cfg.MinLiters || in.Liters > u.cfg.MaxLiters {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("liters must be between %d and %d", u.cfg.MinLiters, u.cfg.MaxLiters))
	}
	if in.PricePerLiter <= 0 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid price per liter")
	}
	if in.DeliveryFee < 0 || in.Discount < 0 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid price breakdown")
	}

	pm := model.PaymentMethod(in.PaymentMethod)
	if pm != model.PaymentPrepayment && pm != model.PaymentInvoice {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	// The quote snapshot is client-supplied; re-validate it server-side so
	// a tampered total never reaches the books.
	wantBase := round2(float64(in.Liters) * in.PricePerLiter)
	if math.Abs(wantBase-in.BasePrice) > priceTolerance {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "base price does not match liters * price per liter")
	}
	wantTotal := round2(in.BasePrice + in.DeliveryFee - in.Discount)
	if math.Abs(wantTotal-in.TotalAmount) > priceTolerance {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "total does not match price breakdown")
	}
	if wantTotal <= 0 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "total must be positive")
	}

	var out CreateOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// same key, same result
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			out = CreateOrderOutput{Order: existing, Duplicate: true}
			return nil
		}

		now := time.Now()
		order := model.Order{
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerEmail: strings.TrimSpace(in.CustomerEmail),
			CustomerPhone: strings.TrimSpace(in.CustomerPhone),

			DeliveryFirstName: strings.TrimSpace(in.DeliveryFirstName),
			DeliveryLastName:  strings.TrimSpace(in.DeliveryLastName),
			DeliveryStreet:    strings.TrimSpace(in.DeliveryStreet),
			DeliveryPostcode:  strings.TrimSpace(in.DeliveryPostcode),
			DeliveryCity:      strings.TrimSpace(in.DeliveryCity),
			DeliveryPhone:     strings.TrimSpace(in.DeliveryPhone),

			UseSameAddress:   in.UseSameAddress,
			BillingFirstName: strings.TrimSpace(in.BillingFirstName),
			BillingLastName:  strings.TrimSpace(in.BillingLastName),
			BillingStreet:    strings.TrimSpace(in.BillingStreet),
			BillingPostcode:  strings.TrimSpace(in.BillingPostcode),
			BillingCity:      strings.TrimSpace(in.BillingCity),

			Product:       in.Product,
			Liters:        in.Liters,
			PricePerLiter: in.PricePerLiter,
			BasePrice:     round2(in.BasePrice),
			DeliveryFee:   round2(in.DeliveryFee),
			Discount:      round2(in.Discount),
			TotalAmount:   wantTotal,

			PaymentMethod: pm,
			Status:        model.OrderStatusPending,
			OriginDomain:  in.OriginDomain,

			IdempotencyKey: key,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if order.UseSameAddress {
			order.BillingFirstName = order.DeliveryFirstName
			order.BillingLastName = order.DeliveryLastName
			order.BillingStreet = order.DeliveryStreet
			order.BillingPostcode = order.DeliveryPostcode
			order.BillingCity = order.DeliveryCity
		}
		// placeholder until the id exists; replaced below in the same tx.
		// The key is hashed so any accepted key length fits the 30-char
		// order_number column.
		order.OrderNumber = "tmp-" + keyFingerprint(key)

		orderID, err := r.Orders().Create(ctx, order)
		if err == repo.ErrDuplicateKey {
			// unique-index race on the key: a concurrent submit won, hand
			// back its order
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, key)
			if err2 == nil && found2 {
				out = CreateOrderOutput{Order: ex2, Duplicate: true}
				return nil
			}
			return NewHTTPError(http.StatusConflict, "idempotency conflict")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderNumber := fmt.Sprintf("HO-%d-%06d", now.Year(), orderID)
		if err := r.Orders().SetOrderNumber(ctx, orderID, orderNumber); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		first := model.StatusHistoryEntry{
			OrderID:   orderID,
			OldStatus: nil,
			NewStatus: model.OrderStatusPending,
			ChangedBy: "system",
			Notes:     "order created",
			CreatedAt: now,
		}
		if err := r.StatusHistory().Create(ctx, first); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		order.OrderNumber = orderNumber
		out = CreateOrderOutput{Order: order}
		return nil
	})

	if err != nil {
		return CreateOrderOutput{}, err
	}

	// Confirmation mail runs after commit. A failed dispatch never rolls
	// back or fails the order; it is logged and reported as email_sent=false.
	if !out.Duplicate && u.mailer != nil {
		if err := u.mailer.SendOrderConfirmation(out.Order, brand); err != nil {
			log.Warn().Err(err).
				Str("order_number", out.Order.OrderNumber).
				Msg("confirmation mail failed")
		} else {
			out.EmailSent = true
		}
	}

	return out, nil
}

type AdminUpdateOrderInput struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string

	DeliveryFirstName *string
	DeliveryLastName  *string
	DeliveryStreet    *string
	DeliveryPostcode  *string
	DeliveryCity      *string
	DeliveryPhone     *string

	BillingFirstName *string
	BillingLastName  *string
	BillingStreet    *string
	BillingPostcode  *string
	BillingCity      *string

	Liters        *int64
	PricePerLiter *float64
	DeliveryFee   *float64
	Discount      *float64
	Notes         *string
}

// Update applies a partial admin edit. When any commercial field changes
// the price breakdown is recomputed so total_amount never drifts from the
// formula.
func (u *OrderUsecase) Update(ctx context.Context, orderID int64, in AdminUpdateOrderInput) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var updated model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		fields := map[string]interface{}{}

		setStr := func(col string, v *string) {
			if v != nil {
				fields[col] = strings.TrimSpace(*v)
			}
		}
		setStr("customer_name", in.CustomerName)
		setStr("customer_email", in.CustomerEmail)
		setStr("customer_phone", in.CustomerPhone)
		setStr("delivery_first_name", in.DeliveryFirstName)
		setStr("delivery_last_name", in.DeliveryLastName)
		setStr("delivery_street", in.DeliveryStreet)
		setStr("delivery_postcode", in.DeliveryPostcode)
		setStr("delivery_city", in.DeliveryCity)
		setStr("delivery_phone", in.DeliveryPhone)
		setStr("billing_first_name", in.BillingFirstName)
		setStr("billing_last_name", in.BillingLastName)
		setStr("billing_street", in.BillingStreet)
		setStr("billing_postcode", in.BillingPostcode)
		setStr("billing_city", in.BillingCity)
		setStr("notes", in.Notes)

		liters := o.Liters
		ppl := o.PricePerLiter
		fee := o.DeliveryFee
		discount := o.Discount
		commercialChanged := false

		if in.Liters != nil {
			if *in.Liters <= 0 {
				return NewHTTPError(http.StatusBadRequest, "invalid liters")
			}
			liters = *in.Liters
			fields["liters"] = liters
			commercialChanged = true
		}
		if in.PricePerLiter != nil {
			if *in.PricePerLiter <= 0 {
				return NewHTTPError(http.StatusBadRequest, "invalid price per liter")
			}
			ppl = *in.PricePerLiter
			fields["price_per_liter"] = ppl
			commercialChanged = true
		}
		if in.DeliveryFee != nil {
			if *in.DeliveryFee < 0 {
				return NewHTTPError(http.StatusBadRequest, "invalid delivery fee")
			}
			fee = round2(*in.DeliveryFee)
			fields["delivery_fee"] = fee
			commercialChanged = true
		}
		if in.Discount != nil {
			if *in.Discount < 0 {
				return NewHTTPError(http.StatusBadRequest, "invalid discount")
			}
			discount = round2(*in.Discount)
			fields["discount"] = discount
			commercialChanged = true
		}

		if commercialChanged {
			base := round2(float64(liters) * ppl)
			fields["base_price"] = base
			fields["total_amount"] = round2(base + fee - discount)
		}

		if len(fields) == 0 {
			updated = o
			return nil
		}

		if err := r.Orders().Update(ctx, orderID, fields); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		updated, err = r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return updated, nil
}
