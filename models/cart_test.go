package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeTotal(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{ProductID: 1, Quantity: 3, PriceAtAdd: 20.00},
			{ProductID: 2, Quantity: 1, PriceAtAdd: 12.50},
		},
	}
	cart.RecomputeTotal()
	assert.Equal(t, 72.50, cart.TotalPrice)

	cart.Items = nil
	cart.RecomputeTotal()
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestRecomputeTotalRounds(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{ProductID: 1, Quantity: 3, PriceAtAdd: 0.1},
		},
	}
	cart.RecomputeTotal()
	assert.Equal(t, 0.3, cart.TotalPrice)
}

func TestFindItem(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{ProductID: 7, Quantity: 1, PriceAtAdd: 5},
		},
	}
	assert.NotNil(t, cart.FindItem(7))
	assert.Nil(t, cart.FindItem(8))

	// The pointer aliases the slice entry, so callers can mutate in place.
	cart.FindItem(7).Quantity = 4
	assert.Equal(t, 4, cart.Items[0].Quantity)
}
