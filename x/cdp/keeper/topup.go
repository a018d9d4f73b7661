package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// TopUpCdp adds collateralCoin to a Healthy or Marked cdp, requiring the
// recomputed CR to clear the parent's LCR; a Marked cdp that clears
// transitions back to Healthy.
func (k Keeper) TopUpCdp(ctx sdk.Context, caller sdk.AccAddress, id uint64, collateralCoin sdk.Coin) error {
	cdp, found := k.GetCdp(ctx, id)
	if !found {
		return types.ErrUnknownCdp
	}
	if cdp.Owner != caller.String() {
		return types.ErrNotOwner
	}
	if cdp.Status != types.CdpStatusHealthy && cdp.Status != types.CdpStatusMarked {
		return types.ErrNotHealthy
	}
	if cdp.Collateral != collateralCoin.Denom {
		return types.ErrWrongResource
	}

	parentDenomStr := parentDenom(cdp)
	parent, found := k.GetCollateralInfo(ctx, parentDenomStr)
	if !found {
		return types.ErrUnknownCollateral
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, caller, types.ModuleName, sdk.NewCoins(collateralCoin)); err != nil {
		return err
	}

	newCollateralAmount := cdp.CollateralAmount.Add(sdkCoinToDecimal(collateralCoin))
	_, _, realAmount, err := k.poolToReal(ctx, cdp.Collateral, newCollateralAmount)
	if err != nil {
		return err
	}
	newCr := realAmount.Quo(cdp.MintedStab)
	if newCr.LTE(parent.Lcr) {
		return types.ErrInsufficientCollateral
	}

	wasHealthy := cdp.Status == types.CdpStatusHealthy
	oldCr := cdp.CollateralStabRatio
	if wasHealthy {
		k.RemoveCrIndex(ctx, parentDenomStr, oldCr, id)
	}
	cdp.CollateralAmount = newCollateralAmount
	cdp.CollateralStabRatio = newCr
	k.clearMarkedState(ctx, &cdp)
	if err := k.InsertCrIndex(ctx, parentDenomStr, newCr, id); err != nil {
		return err
	}
	k.SetCdp(ctx, cdp)

	parent.CollateralAmount = parent.CollateralAmount.Add(sdkCoinToDecimal(collateralCoin))
	parent.Vault = parent.Vault.Add(sdkCoinToDecimal(collateralCoin))
	if newCr.GT(parent.HighestCr) {
		parent.HighestCr = newCr
	}
	k.SetCollateralInfo(ctx, parent)

	k.emitUpdateCdp(ctx, cdp)
	return nil
}
