package types

import (
	errorsmod "cosmossdk.io/errors"
)

var (
	ErrPoolNotFound      = errorsmod.Register(ModuleName, 2, "pool not found")
	ErrInsufficientInput = errorsmod.Register(ModuleName, 3, "insufficient input amount")
	ErrZeroReserve       = errorsmod.Register(ModuleName, 4, "pool has zero reserves")
	ErrUnknownDenom      = errorsmod.Register(ModuleName, 5, "coin does not belong to this pool")
	ErrInsufficientShare = errorsmod.Register(ModuleName, 6, "insufficient LP shares")
	ErrUnknownPosition   = errorsmod.Register(ModuleName, 7, "unknown LP position")
	ErrNotAuthorized     = errorsmod.Register(ModuleName, 8, "not authorized")
)

const (
	EventTypeSwap          = "ammpool_swap"
	EventTypeAddLiquidity  = "ammpool_add_liquidity"
	EventTypeRemoveLiquidity = "ammpool_remove_liquidity"

	AttributeKeyProvider   = "provider"
	AttributeKeyStabAmount = "stab_amount"
	AttributeKeyQuoteAmount = "quote_amount"
	AttributeKeyShares     = "shares"
	AttributeKeyAmountIn   = "amount_in"
	AttributeKeyAmountOut  = "amount_out"
)
