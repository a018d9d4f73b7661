package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	cdptypes "github.com/stabilis-labs/stab-protocol/x/cdp/types"
	"github.com/stabilis-labs/stab-protocol/x/proxy/types"
)

// Update is the proxy's single unauthenticated entry point: pull the latest
// aggregated price for every registered collateral asset from x/oracle and
// push it into x/cdp, then advance x/peg's controller tick (which itself
// pulls the STAB market price from x/oracle and x/ammpool and recomputes
// every collateral's LCR). Errors pushing one collateral's price don't block the
// others or the peg tick.
func (k Keeper) Update(ctx sdk.Context, caller sdk.AccAddress) (bool, error) {
	k.cdpKeeper.IterateCollateralInfos(ctx, func(info cdptypes.CollateralInfo) bool {
		price, found := k.oracleKeeper.GetAggregatedPrice(ctx, info.Denom)
		if !found {
			return true
		}
		if err := k.cdpKeeper.ChangeCollateralPrice(ctx, info.Denom, price); err != nil {
			k.Logger(ctx).Error("failed to push collateral price", "denom", info.Denom, "error", err)
		}
		return true
	})

	ticked, err := k.pegKeeper.Update(ctx, caller)
	if err != nil {
		return false, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUpdate,
		sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
	))
	return ticked, nil
}
