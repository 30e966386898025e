package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	p := Product{Price: decimal.NewFromInt(100)}
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(100)))

	p.SalePrice = decimal.NewFromInt(80)
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(80)))

	p.SalePrice = decimal.Zero
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(100)))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Wireless Mouse":        "wireless-mouse",
		"  USB-C  Cable (2m) ":  "usb-c-cable-2m",
		"100% Cotton T-Shirt":   "100-cotton-t-shirt",
		"Café Américain":        "caf-am-ricain",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestCartTotals(t *testing.T) {
	regular := &Product{Price: decimal.NewFromInt(50)}
	discounted := &Product{Price: decimal.NewFromInt(100), SalePrice: decimal.NewFromInt(75)}

	cart := Cart{
		Items: []CartItem{
			{Product: regular, Quantity: 2},
			{Product: discounted, Quantity: 1},
			{Product: nil, Quantity: 5}, // orphaned line contributes nothing
		},
	}

	resp := cart.ToResponse()
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(175)), "got %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(resp.Subtotal))
	assert.Equal(t, 3, resp.TotalItems)
}

func TestCartTotals_Empty(t *testing.T) {
	resp := (&Cart{}).ToResponse()
	assert.True(t, resp.Subtotal.IsZero())
	assert.Equal(t, 0, resp.TotalItems)
}
