package types

import (
	"cosmossdk.io/errors"
)

// x/cdp module sentinel errors.
var (
	// Collateral registry
	ErrNotAccepted         = errors.Register(ModuleName, 2, "collateral not accepted")
	ErrAlreadyAccepted     = errors.Register(ModuleName, 3, "collateral already registered")
	ErrUnknownCollateral   = errors.Register(ModuleName, 4, "unknown collateral")
	ErrShareCapExceeded    = errors.Register(ModuleName, 5, "share cap would be exceeded")

	// CDP lifecycle
	ErrBelowMinimumMint    = errors.Register(ModuleName, 10, "stab to mint below minimum mint")
	ErrOperationDisabled   = errors.Register(ModuleName, 11, "operation currently disabled")
	ErrInsufficientCollateral = errors.Register(ModuleName, 12, "collateralization ratio at or below liquidation threshold")
	ErrInsufficientPayment = errors.Register(ModuleName, 13, "payment does not cover debt")
	ErrWrongResource       = errors.Register(ModuleName, 14, "payment or collateral denom mismatch")
	ErrNotHealthy          = errors.Register(ModuleName, 15, "cdp is not in the healthy state")
	ErrNotMarked           = errors.Register(ModuleName, 16, "cdp is not in the marked state")
	ErrUnknownCdp          = errors.Register(ModuleName, 17, "unknown cdp id")
	ErrNotOwner            = errors.Register(ModuleName, 18, "caller does not own this cdp")
	ErrNotBurnable         = errors.Register(ModuleName, 19, "receipt not burnable")

	// Marking / liquidation
	ErrMarkNotEligible       = errors.Register(ModuleName, 20, "lowest cr is not below the liquidation threshold")
	ErrNoLoans               = errors.Register(ModuleName, 21, "no cdps registered for collateral")
	ErrCRWindowFull          = errors.Register(ModuleName, 22, "cr index bucket is full")
	ErrTooEarly              = errors.Register(ModuleName, 23, "liquidation delay has not elapsed")
	ErrMarkerAlreadyUsed     = errors.Register(ModuleName, 24, "marker has already been used")
	ErrMarkerWrongType       = errors.Register(ModuleName, 25, "marker is not of type marked")
	ErrUnknownMarker         = errors.Register(ModuleName, 26, "unknown marker id")
	ErrForceLiquidateMarkable = errors.Register(ModuleName, 27, "cdp is below the liquidation threshold and should be marked instead")
	ErrSkipOutOfRange        = errors.Register(ModuleName, 28, "skip parameter out of range")

	// Oracle / proxy
	ErrOracleStale = errors.Register(ModuleName, 30, "oracle price is not newer than the stored price")
	ErrNotAuthorized = errors.Register(ModuleName, 31, "caller does not hold the required capability")

	// Pool-unit redemption
	ErrUnsupportedPoolUnitKind = errors.Register(ModuleName, 32, "pool-unit kind has no redemption source wired in this app")
)

// Event types.
const (
	EventTypeAddCollateral     = "add_collateral"
	EventTypeAddPoolCollateral = "add_pool_collateral"
	EventTypeNewCdp            = "new_cdp"
	EventTypeUpdateCdp         = "update_cdp"
	EventTypeCloseCdp          = "close_cdp"
	EventTypeLiquidateCdp      = "liquidate_cdp"
	EventTypeChangeCollateral  = "change_collateral"
)

// Event attribute keys.
const (
	AttributeKeyCdpId          = "cdp_id"
	AttributeKeyOwner          = "owner"
	AttributeKeyCollateral     = "collateral"
	AttributeKeyCollateralAmount = "collateral_amount"
	AttributeKeyMintedStab     = "minted_stab"
	AttributeKeyCollateralStabRatio = "collateral_stab_ratio"
	AttributeKeyStatus         = "status"
	AttributeKeyMarkerId       = "marker_id"
	AttributeKeyUsdPrice       = "usd_price"
)
