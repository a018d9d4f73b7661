package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// BankKeeper defines the expected bank keeper interface.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromModuleToModule(ctx context.Context, senderModule, recipientModule string, amt sdk.Coins) error
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
}

// AccountKeeper defines the expected account keeper interface.
type AccountKeeper interface {
	GetModuleAddress(moduleName string) sdk.AccAddress
}

// PegKeeper exposes the peg controller's internal price to the cdp engine,
// which needs it to recompute an LCR after every price or controller tick.
type PegKeeper interface {
	GetInternalPrice(ctx sdk.Context) decimal.Decimal
}

// PoolUnitSource abstracts "redemption value of one unit of a pool-unit
// collateral." Concretely backed, via an app-level adapter set through
// Keeper.SetPoolUnitSource, by the sdk's own x/staking module's
// bonded-tokens/delegator-shares ratio (PoolUnitKindValidator) or by
// x/ammpool's reserve ratio (PoolUnitKindResourcePool).
type PoolUnitSource interface {
	RedemptionValue(ctx sdk.Context, kind PoolUnitKind, ref string, amount decimal.Decimal) (decimal.Decimal, error)
}

// OracleKeeper is the expected keeper interface onto x/oracle.
type OracleKeeper interface {
	GetAggregatedPrice(ctx sdk.Context, asset string) (decimal.Decimal, bool)
}

// AmmPoolKeeper is the expected keeper interface onto x/ammpool.
type AmmPoolKeeper interface {
	GetPrice(ctx sdk.Context) decimal.Decimal
}
