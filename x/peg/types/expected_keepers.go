package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// BankKeeper is the subset of the bank keeper the reward payout needs.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// CdpKeeper is the expected keeper interface onto x/cdp, used to
// recompute every registered collateral's LCR after internalPrice moves.
type CdpKeeper interface {
	RecomputeAllLcrs(ctx sdk.Context)
}

// OracleKeeper is the expected keeper interface onto x/oracle.
type OracleKeeper interface {
	GetAggregatedPrice(ctx sdk.Context, asset string) (decimal.Decimal, bool)
}

// AmmPoolKeeper is the expected keeper interface onto x/ammpool.
type AmmPoolKeeper interface {
	GetPrice(ctx sdk.Context) decimal.Decimal
}
