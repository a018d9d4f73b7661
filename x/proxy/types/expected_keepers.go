package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	cdptypes "github.com/stabilis-labs/stab-protocol/x/cdp/types"
	pegtypes "github.com/stabilis-labs/stab-protocol/x/peg/types"
)

// CdpKeeper is the expected keeper interface onto x/cdp, giving the
// proxy's capability-gated admin surface a concrete home.
type CdpKeeper interface {
	GetParams(ctx sdk.Context) cdptypes.Params
	SetParams(ctx sdk.Context, params cdptypes.Params) error
	ChangeCollateralPrice(ctx sdk.Context, denom string, newPrice decimal.Decimal) error
	AddCollateral(ctx sdk.Context, denom string, mcr, initialPrice, maxStabShare decimal.Decimal) error
	AddPoolCollateral(ctx sdk.Context, denom, parentDenom string, kind cdptypes.PoolUnitKind, redemptionRef string, maxPoolShare decimal.Decimal) error
	EditCollateral(ctx sdk.Context, denom string, mcr decimal.Decimal, accepted bool, maxStabShare decimal.Decimal) error
	EditPoolCollateral(ctx sdk.Context, denom string, accepted bool, maxPoolShare decimal.Decimal) error
	IterateCollateralInfos(ctx sdk.Context, fn func(cdptypes.CollateralInfo) bool)
}

// PegKeeper is the expected keeper interface onto x/peg, forwarding
// both the unauthenticated Update tick and the capability-gated controller
// parameter surface.
type PegKeeper interface {
	GetParams(ctx sdk.Context) pegtypes.Params
	SetParams(ctx sdk.Context, params pegtypes.Params) error
	Update(ctx sdk.Context, caller sdk.AccAddress) (bool, error)
}

// OracleKeeper is the expected keeper interface onto x/oracle, used by
// Update to push the latest aggregated collateral prices into x/cdp.
type OracleKeeper interface {
	GetAggregatedPrice(ctx sdk.Context, asset string) (decimal.Decimal, bool)
}
