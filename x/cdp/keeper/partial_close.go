package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// PartialCloseCdp repays repayment of a Healthy or Marked cdp's debt. A
// repayment covering the full debt delegates to CloseCdp.
func (k Keeper) PartialCloseCdp(ctx sdk.Context, caller sdk.AccAddress, id uint64, repayment decimal.Decimal) error {
	cdp, found := k.GetCdp(ctx, id)
	if !found {
		return types.ErrUnknownCdp
	}
	if repayment.GTE(cdp.MintedStab) {
		return k.CloseCdp(ctx, caller, id, repayment)
	}
	if cdp.Owner != caller.String() {
		return types.ErrNotOwner
	}
	if cdp.Status != types.CdpStatusHealthy && cdp.Status != types.CdpStatusMarked {
		return types.ErrNotHealthy
	}

	params := k.GetParams(ctx)
	newDebt := cdp.MintedStab.Sub(repayment)
	if newDebt.LT(params.MinimumMint) {
		return types.ErrBelowMinimumMint
	}

	parentDenomStr := parentDenom(cdp)
	parent, found := k.GetCollateralInfo(ctx, parentDenomStr)
	if !found {
		return types.ErrUnknownCollateral
	}

	_, _, realAmount, err := k.poolToReal(ctx, cdp.Collateral, cdp.CollateralAmount)
	if err != nil {
		return err
	}
	newCr := realAmount.Quo(newDebt)
	if newCr.LTE(parent.Lcr) {
		return types.ErrInsufficientCollateral
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, caller, types.ModuleName, sdk.NewCoins(sdk.NewCoin(types.StabDenom, repayment.LegacyDec().TruncateInt()))); err != nil {
		return err
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin(types.StabDenom, repayment.LegacyDec().TruncateInt()))); err != nil {
		return err
	}

	wasHealthy := cdp.Status == types.CdpStatusHealthy
	oldCr := cdp.CollateralStabRatio
	if wasHealthy {
		k.RemoveCrIndex(ctx, parentDenomStr, oldCr, id)
	}
	cdp.MintedStab = newDebt
	cdp.CollateralStabRatio = newCr
	k.clearMarkedState(ctx, &cdp) // Marked -> Healthy, no-op if already Healthy
	if err := k.InsertCrIndex(ctx, parentDenomStr, newCr, id); err != nil {
		return err
	}
	k.SetCdp(ctx, cdp)

	parent.MintedStab = parent.MintedStab.Sub(repayment)
	if newCr.GT(parent.HighestCr) {
		parent.HighestCr = newCr
	}
	k.SetCollateralInfo(ctx, parent)

	k.emitUpdateCdp(ctx, cdp)
	return nil
}
