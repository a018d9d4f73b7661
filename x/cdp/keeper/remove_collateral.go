package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// RemoveCollateral withdraws amount of collateral from a Healthy cdp,
// requiring the recomputed CR to clear the parent's LCR.
func (k Keeper) RemoveCollateral(ctx sdk.Context, caller sdk.AccAddress, id uint64, amount decimal.Decimal) error {
	params := k.GetParams(ctx)
	if params.ClosingsStopped {
		return types.ErrOperationDisabled
	}
	cdp, found := k.GetCdp(ctx, id)
	if !found {
		return types.ErrUnknownCdp
	}
	if cdp.Owner != caller.String() {
		return types.ErrNotOwner
	}
	if cdp.Status != types.CdpStatusHealthy {
		return types.ErrNotHealthy
	}
	if amount.GT(cdp.CollateralAmount) {
		return types.ErrInsufficientCollateral
	}

	parentDenomStr := parentDenom(cdp)
	parent, found := k.GetCollateralInfo(ctx, parentDenomStr)
	if !found {
		return types.ErrUnknownCollateral
	}

	newCollateralAmount := cdp.CollateralAmount.Sub(amount)
	_, _, realAmount, err := k.poolToReal(ctx, cdp.Collateral, newCollateralAmount)
	if err != nil {
		return err
	}
	newCr := realAmount.Quo(cdp.MintedStab)
	if newCr.LTE(parent.Lcr) {
		return types.ErrInsufficientCollateral
	}

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, sdk.NewCoins(decimalToCoin(cdp.Collateral, amount))); err != nil {
		return err
	}

	k.RemoveCrIndex(ctx, parentDenomStr, cdp.CollateralStabRatio, id)
	cdp.CollateralAmount = newCollateralAmount
	cdp.CollateralStabRatio = newCr
	if err := k.InsertCrIndex(ctx, parentDenomStr, newCr, id); err != nil {
		return err
	}
	k.SetCdp(ctx, cdp)

	parent.CollateralAmount = parent.CollateralAmount.Sub(amount)
	parent.Vault = parent.Vault.Sub(amount)
	k.SetCollateralInfo(ctx, parent)

	k.emitUpdateCdp(ctx, cdp)
	return nil
}
