package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/rs/zerolog/log"
)

// InvoiceDocument is everything the renderer needs for one invoice PDF.
type InvoiceDocument struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	Order         model.Order
	Shop          model.Shop
	BankAccount   model.BankAccount
	Brand         config.ShopContext

	// Gross total split at the brand's VAT rate.
	NetAmount float64
	VATAmount float64
	Notes     string
}

// InvoiceRenderer produces the PDF artifact and returns its serving URL.
type InvoiceRenderer interface {
	Render(doc InvoiceDocument) (fileURL string, err error)
	// Discard removes an artifact after a rolled-back generation.
	Discard(fileURL string) error
}

// BrandResolver maps an order's origin domain to its ShopContext. Injected
// so the lookup table never becomes ambient state inside the usecase.
type BrandResolver func(domain string) config.ShopContext

type InvoiceUsecase struct {
	tx       repo.TransactionManager
	renderer InvoiceRenderer
	brandFor BrandResolver
}

func NewInvoiceUsecase(tx repo.TransactionManager, renderer InvoiceRenderer, brandFor BrandResolver) *InvoiceUsecase {
	return &InvoiceUsecase{tx: tx, renderer: renderer, brandFor: brandFor}
}

type GenerateInvoiceInput struct {
	OrderID       int64
	ShopID        *int64
	BankAccountID *int64
	Notes         string
	Actor         string

	// The daily cap is advisory: the operator may acknowledge an overdraft
	// explicitly, never silently.
	AcknowledgeLimit bool

	// Re-render the artifact for an order that already has an invoice.
	// Number and date are kept; only the file is replaced.
	Regenerate bool
}

type GenerateInvoiceOutput struct {
	InvoiceNumber string      `json:"invoice_number"`
	InvoiceDate   time.Time   `json:"invoice_date"`
	FileURL       string      `json:"file_url"`
	Order         model.Order `json:"order"`

	LimitExceeded bool     `json:"limit_exceeded"`
	Warnings      []string `json:"warnings,omitempty"`
}

func (u *InvoiceUsecase) Generate(ctx context.Context, in GenerateInvoiceInput) (GenerateInvoiceOutput, error) {
	if in.OrderID <= 0 {
		return GenerateInvoiceOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	actor := strings.TrimSpace(in.Actor)
	if actor == "" {
		return GenerateInvoiceOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out GenerateInvoiceOutput
	var renderedURL string

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.InvoiceNumber != nil && !in.Regenerate {
			return NewHTTPError(http.StatusConflict, "invoice already exists")
		}
		if o.InvoiceNumber == nil && in.Regenerate {
			return NewHTTPError(http.StatusBadRequest, "order has no invoice to regenerate")
		}

		brand := u.brandFor(o.OriginDomain)

		if in.Regenerate {
			return u.regenerate(ctx, r, o, brand, actor, in, &out)
		}

		shop, warnShop, err := u.resolveShop(ctx, r, in.ShopID)
		if err != nil {
			return err
		}

		// A fresh invoice must move the order to invoice_created; anything
		// already past that point is an illegal edge.
		if !model.CanTransition(o.Status, model.OrderStatusInvoiceCreated) {
			return NewHTTPError(http.StatusUnprocessableEntity,
				"cannot invoice an order in status "+string(o.Status))
		}

		account, warnAccount, err := u.resolveAccount(ctx, r, in.BankAccountID)
		if err != nil {
			return err
		}

		// Row lock taken: all ledger math for this account is serialized
		// until commit, closing the check-then-act window.
		locked, err := r.BankAccounts().FindByIDForUpdate(ctx, account.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		now := time.Now()
		usage, err := sumDailyUsage(ctx, r.Orders(), locked.ID, now)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		limitOK := checkDailyLimit(locked, usage, o.TotalAmount)
		if !limitOK && !in.AcknowledgeLimit {
			return NewHTTPError(http.StatusConflict, fmt.Sprintf(
				"daily limit exceeded for %s: %.2f used of %.2f, order adds %.2f",
				locked.SystemName, usage, locked.DailyLimit, o.TotalAmount))
		}

		seq, err := r.InvoiceCounters().NextNumber(ctx, now.Year())
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		invoiceNumber := fmt.Sprintf("RE-%d-%06d", now.Year(), seq)

		doc := buildDocument(invoiceNumber, now, o, shop, locked, brand, in.Notes)
		fileURL, err := u.renderer.Render(doc)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "invoice rendering failed")
		}
		renderedURL = fileURL

		if err := r.Orders().SetInvoice(ctx, o.ID, invoiceNumber, now, fileURL, shop.ID, locked.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusInvoiceCreated, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		historyNotes := "invoice " + invoiceNumber + " generated"
		if !limitOK {
			historyNotes += " (daily limit overdraft acknowledged by operator)"
		}
		old := o.Status
		if err := r.StatusHistory().Create(ctx, model.StatusHistoryEntry{
			OrderID:   o.ID,
			OldStatus: &old,
			NewStatus: model.OrderStatusInvoiceCreated,
			ChangedBy: actor,
			Notes:     historyNotes,
			CreatedAt: now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		updated, err := r.Orders().FindByID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		warnings := []string{}
		if warnShop != "" {
			warnings = append(warnings, warnShop)
		}
		if warnAccount != "" {
			warnings = append(warnings, warnAccount)
		}
		if !limitOK {
			warnings = append(warnings, "daily limit exceeded, overdraft acknowledged")
		}

		out = GenerateInvoiceOutput{
			InvoiceNumber: invoiceNumber,
			InvoiceDate:   now,
			FileURL:       fileURL,
			Order:         updated,
			LimitExceeded: !limitOK,
			Warnings:      warnings,
		}
		return nil
	})

	if err != nil {
		// rendering happened inside the failed tx: drop the orphan file
		if renderedURL != "" {
			if derr := u.renderer.Discard(renderedURL); derr != nil {
				log.Warn().Err(derr).Str("file", renderedURL).Msg("could not discard invoice artifact")
			}
		}
		return GenerateInvoiceOutput{}, err
	}
	return out, nil
}

func (u *InvoiceUsecase) regenerate(ctx context.Context, r repo.TxRepos, o model.Order, brand config.ShopContext, actor string, in GenerateInvoiceInput, out *GenerateInvoiceOutput) error {
	if o.BankAccountID == nil {
		return NewHTTPError(http.StatusInternalServerError, "invoiced order without bank account")
	}
	account, err := r.BankAccounts().FindByID(ctx, *o.BankAccountID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// The re-rendered artifact keeps the letterhead the invoice was
	// issued under, not whatever default is flagged today.
	var shop model.Shop
	if o.ShopID != nil {
		shop, err = r.Shops().FindByID(ctx, *o.ShopID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	} else {
		shop, _, err = u.resolveShop(ctx, r, in.ShopID)
		if err != nil {
			return err
		}
	}

	doc := buildDocument(*o.InvoiceNumber, *o.InvoiceDate, o, shop, account, brand, in.Notes)
	fileURL, err := u.renderer.Render(doc)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "invoice rendering failed")
	}

	now := time.Now()
	if err := r.Orders().Update(ctx, o.ID, map[string]interface{}{
		"invoice_file_url": fileURL,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := r.StatusHistory().Create(ctx, model.StatusHistoryEntry{
		OrderID:   o.ID,
		OldStatus: &o.Status,
		NewStatus: o.Status,
		ChangedBy: actor,
		Notes:     "invoice " + *o.InvoiceNumber + " regenerated",
		CreatedAt: now,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated, err := r.Orders().FindByID(ctx, o.ID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	*out = GenerateInvoiceOutput{
		InvoiceNumber: *o.InvoiceNumber,
		InvoiceDate:   *o.InvoiceDate,
		FileURL:       fileURL,
		Order:         updated,
	}
	return nil
}

func (u *InvoiceUsecase) resolveShop(ctx context.Context, r repo.TxRepos, shopID *int64) (model.Shop, string, error) {
	if shopID != nil {
		shop, err := r.Shops().FindByID(ctx, *shopID)
		if err == repo.ErrNotFound {
			return model.Shop{}, "", NewHTTPError(http.StatusBadRequest, "unknown shop")
		}
		if err != nil {
			return model.Shop{}, "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return shop, "", nil
	}

	shop, found, err := r.Shops().FindDefault(ctx)
	if err != nil {
		return model.Shop{}, "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		return model.Shop{}, "", NewHTTPError(http.StatusConflict, "no shop configured")
	}
	warn := ""
	if !shop.IsDefault {
		warn = "no default shop flagged, using shop " + shop.Name
	}
	return shop, warn, nil
}

func (u *InvoiceUsecase) resolveAccount(ctx context.Context, r repo.TxRepos, accountID *int64) (model.BankAccount, string, error) {
	if accountID != nil {
		account, err := r.BankAccounts().FindByID(ctx, *accountID)
		if err == repo.ErrNotFound {
			return model.BankAccount{}, "", NewHTTPError(http.StatusBadRequest, "unknown bank account")
		}
		if err != nil {
			return model.BankAccount{}, "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !account.IsActive {
			return model.BankAccount{}, "", NewHTTPError(http.StatusConflict, "no active bank account")
		}
		return account, "", nil
	}

	account, found, err := r.BankAccounts().FindDefaultActive(ctx)
	if err != nil {
		return model.BankAccount{}, "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		return model.BankAccount{}, "", NewHTTPError(http.StatusConflict, "no active bank account")
	}
	warn := ""
	if !account.IsDefault {
		warn = "no default bank account flagged, using " + account.SystemName
	}
	return account, warn, nil
}

func buildDocument(invoiceNumber string, invoiceDate time.Time, o model.Order, shop model.Shop, account model.BankAccount, brand config.ShopContext, notes string) InvoiceDocument {
	// totals are gross; split out the brand's VAT share
	net := round2(o.TotalAmount / (1 + brand.VATRate/100))
	vat := round2(o.TotalAmount - net)

	return InvoiceDocument{
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   invoiceDate,
		Order:         o,
		Shop:          shop,
		BankAccount:   account,
		Brand:         brand,
		NetAmount:     net,
		VATAmount:     vat,
		Notes:         strings.TrimSpace(notes),
	}
}
