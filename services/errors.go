package services

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1; use remove to drop an item")
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotInCart   = errors.New("item not in cart")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnknownStatus   = errors.New("unknown order status")
)
