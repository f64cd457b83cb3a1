package checkout

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrIncompleteCheckout = errors.New("checkout is missing required fields")
)
