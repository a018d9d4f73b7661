package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// poolToReal converts an amount of collateral denom into its real,
// parent-denominated value. For ordinary collateral this is the identity;
// for a pool unit it queries the redemption source so that appreciation or
// depreciation of the underlying is reflected lazily, without a global
// sweep, on every CDP-touching path.
func (k Keeper) poolToReal(ctx sdk.Context, collateral string, amount decimal.Decimal) (isPoolUnit bool, parent string, real decimal.Decimal, err error) {
	if info, found := k.GetPoolUnitInfo(ctx, collateral); found {
		if !info.Accepted {
			return true, info.ParentDenom, decimal.Zero(), types.ErrNotAccepted
		}
		real, rerr := k.poolUnitSource.RedemptionValue(ctx, info.Kind, info.RedemptionRef, amount)
		if rerr != nil {
			return true, info.ParentDenom, decimal.Zero(), rerr
		}
		return true, info.ParentDenom, real, nil
	}
	return false, collateral, amount, nil
}
