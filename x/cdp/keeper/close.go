package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// CloseCdp fully repays and closes a Healthy cdp, returning all of its
// collateral to caller and burning exactly mintedStab of the stabPayment,
// refunding any excess.
func (k Keeper) CloseCdp(ctx sdk.Context, caller sdk.AccAddress, id uint64, stabPayment decimal.Decimal) error {
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
	if stabPayment.LT(cdp.MintedStab) {
		return types.ErrInsufficientPayment
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, caller, types.ModuleName, sdk.NewCoins(sdk.NewCoin(types.StabDenom, cdp.MintedStab.LegacyDec().TruncateInt()))); err != nil {
		return err
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin(types.StabDenom, cdp.MintedStab.LegacyDec().TruncateInt()))); err != nil {
		return err
	}

	collateralAmt := cdp.CollateralAmount.LegacyDec().TruncateInt()
	if collateralAmt.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, sdk.NewCoins(sdk.NewCoin(cdp.Collateral, collateralAmt))); err != nil {
			return err
		}
	}

	parent, found := k.GetCollateralInfo(ctx, parentDenom(cdp))
	if found {
		parent.MintedStab = parent.MintedStab.Sub(cdp.MintedStab)
		parent.CollateralAmount = parent.CollateralAmount.Sub(cdp.CollateralStabRatio.Mul(cdp.MintedStab))
		parent.Vault = parent.Vault.Sub(cdp.CollateralAmount)
		k.SetCollateralInfo(ctx, parent)
	}
	if cdp.IsPoolUnitCollateral {
		if poolInfo, found := k.GetPoolUnitInfo(ctx, cdp.Collateral); found {
			poolInfo.MintedStab = poolInfo.MintedStab.Sub(cdp.MintedStab)
			poolInfo.Vault = poolInfo.Vault.Sub(cdp.CollateralAmount)
			k.SetPoolUnitInfo(ctx, poolInfo)
		}
	}

	k.RemoveCrIndex(ctx, parentDenom(cdp), cdp.CollateralStabRatio, id)

	cdp.CollateralAmount = decimal.Zero()
	cdp.MintedStab = decimal.Zero()
	cdp.Status = types.CdpStatusClosed
	k.SetCdp(ctx, cdp)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCloseCdp,
		sdk.NewAttribute(types.AttributeKeyCdpId, sdk.NewInt(int64(id)).String()),
	))
	return nil
}
