package config

import "strings"

// ShopContext is the per-brand configuration resolved once per request from
// the storefront domain and passed explicitly into the domain layer. It is
// never derived again deeper in the call chain.
type ShopContext struct {
	ShopType string  `json:"shop_type"`
	VATRate  float64 `json:"vat_rate"`
	Currency string  `json:"currency"`
	Locale   string  `json:"locale"`
	// Display name used in confirmation mails and invoice footers.
	BrandName string `json:"brand_name"`
	// Sender address for confirmation mails.
	MailFrom string `json:"mail_from"`
}

// brands maps a storefront domain to its context. Lookup strips a leading
// "www." and falls back to the German brand for unknown domains.
var brands = map[string]ShopContext{
	"heizoel-direkt.de": {
		ShopType:  "de",
		VATRate:   19.0,
		Currency:  "EUR",
		Locale:    "de-DE",
		BrandName: "Heizöl Direkt",
		MailFrom:  "bestellung@heizoel-direkt.de",
	},
	"fioul-direct.fr": {
		ShopType:  "fr",
		VATRate:   20.0,
		Currency:  "EUR",
		Locale:    "fr-FR",
		BrandName: "Fioul Direct",
		MailFrom:  "commande@fioul-direct.fr",
	},
	"gasolio-diretto.it": {
		ShopType:  "it",
		VATRate:   22.0,
		Currency:  "EUR",
		Locale:    "it-IT",
		BrandName: "Gasolio Diretto",
		MailFrom:  "ordine@gasolio-diretto.it",
	},
}

const defaultBrandDomain = "heizoel-direkt.de"

// BrandForDomain resolves the ShopContext for an origin domain.
func BrandForDomain(domain string) ShopContext {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "www.")
	if ctx, ok := brands[d]; ok {
		return ctx
	}
	return brands[defaultBrandDomain]
}

// KnownBrandDomain reports whether the domain maps to a configured brand.
func KnownBrandDomain(domain string) bool {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "www.")
	_, ok := brands[d]
	return ok
}
