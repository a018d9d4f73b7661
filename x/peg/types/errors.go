package types

import (
	"cosmossdk.io/errors"
)

// x/peg module sentinel errors.
var (
	ErrTooEarly      = errors.Register(ModuleName, 2, "update delay has not elapsed")
	ErrNotAuthorized = errors.Register(ModuleName, 3, "caller does not hold the required capability")
)

// Event types.
const (
	EventTypeChangePeg = "change_peg"
)

// Event attribute keys.
const (
	AttributeKeyInternalPrice = "internal_price"
	AttributeKeyInterestRate  = "interest_rate"
	AttributeKeyMarketPrice   = "market_price"
)
