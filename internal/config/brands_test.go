package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrandForDomain(t *testing.T) {
	de := BrandForDomain("heizoel-direkt.de")
	assert.Equal(t, "de", de.ShopType)
	assert.InDelta(t, 19.0, de.VATRate, 0.001)

	fr := BrandForDomain("fioul-direct.fr")
	assert.Equal(t, "fr", fr.ShopType)
	assert.InDelta(t, 20.0, fr.VATRate, 0.001)

	it := BrandForDomain("gasolio-diretto.it")
	assert.Equal(t, "it", it.ShopType)
	assert.InDelta(t, 22.0, it.VATRate, 0.001)
}

func TestBrandForDomain_StripsWWWAndCase(t *testing.T) {
	ctx := BrandForDomain("WWW.Fioul-Direct.FR")
	assert.Equal(t, "fr", ctx.ShopType)
}

func TestBrandForDomain_UnknownFallsBackToGerman(t *testing.T) {
	ctx := BrandForDomain("example.com")
	assert.Equal(t, "de", ctx.ShopType)

	assert.False(t, KnownBrandDomain("example.com"))
	assert.True(t, KnownBrandDomain("www.heizoel-direkt.de"))
}
