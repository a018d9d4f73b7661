package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// BorrowMore mints additionalStab against an already-Healthy cdp's existing
// collateral, requiring the recomputed CR to clear the parent's LCR. Share
// caps are checked before minting, same as OpenCdp.
func (k Keeper) BorrowMore(ctx sdk.Context, caller sdk.AccAddress, id uint64, additionalStab decimal.Decimal) error {
	params := k.GetParams(ctx)
	if params.OpeningsStopped {
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

	parentDenomStr := parentDenom(cdp)
	parent, found := k.GetCollateralInfo(ctx, parentDenomStr)
	if !found {
		return types.ErrUnknownCollateral
	}

	var poolInfo *types.PoolUnitInfo
	if cdp.IsPoolUnitCollateral {
		info, found := k.GetPoolUnitInfo(ctx, cdp.Collateral)
		if !found {
			return types.ErrUnknownCollateral
		}
		poolInfo = &info
	}
	if wouldExceedShareCap(parent, k.GetCirculatingStab(ctx), poolInfo, additionalStab) {
		return types.ErrShareCapExceeded
	}

	_, _, realAmount, err := k.poolToReal(ctx, cdp.Collateral, cdp.CollateralAmount)
	if err != nil {
		return err
	}
	newDebt := cdp.MintedStab.Add(additionalStab)
	newCr := realAmount.Quo(newDebt)
	if newCr.LTE(parent.Lcr) {
		return types.ErrInsufficientCollateral
	}

	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, sdk.NewCoins(decimalToCoin(types.StabDenom, additionalStab))); err != nil {
		return err
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, sdk.NewCoins(decimalToCoin(types.StabDenom, additionalStab))); err != nil {
		return err
	}

	k.RemoveCrIndex(ctx, parentDenomStr, cdp.CollateralStabRatio, id)
	cdp.MintedStab = newDebt
	cdp.CollateralStabRatio = newCr
	if err := k.InsertCrIndex(ctx, parentDenomStr, newCr, id); err != nil {
		return err
	}
	k.SetCdp(ctx, cdp)

	parent.MintedStab = parent.MintedStab.Add(additionalStab)
	if newCr.GT(parent.HighestCr) {
		parent.HighestCr = newCr
	}
	k.SetCollateralInfo(ctx, parent)
	if poolInfo != nil {
		poolInfo.MintedStab = poolInfo.MintedStab.Add(additionalStab)
		k.SetPoolUnitInfo(ctx, *poolInfo)
	}

	k.emitUpdateCdp(ctx, cdp)
	return nil
}
