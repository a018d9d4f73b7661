package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// ForceLiquidate operates on the current lowest-CR Healthy cdp for
// parentDenom, letting a caller repay some or all of its debt directly in
// exchange for a proportional slice of collateral, without waiting through
// the mark/liquidate delay. assertNonMarkable lets the caller require the
// position still be above lcr, so a markable position is left for the
// ordinary mark/liquidate path instead.
func (k Keeper) ForceLiquidate(ctx sdk.Context, caller sdk.AccAddress, parentDenom string, payment, percentageToTake decimal.Decimal, assertNonMarkable bool) (decimal.Decimal, error) {
	params := k.GetParams(ctx)
	if params.ForceLiquidateStopped {
		return decimal.Zero(), types.ErrOperationDisabled
	}
	cdpId, ok := k.FirstCrIndex(ctx, parentDenom)
	if !ok {
		return decimal.Zero(), types.ErrNoLoans
	}
	cdp, found := k.GetCdp(ctx, cdpId)
	if !found {
		return decimal.Zero(), types.ErrUnknownCdp
	}
	parent, found := k.GetCollateralInfo(ctx, parentDenom)
	if !found {
		return decimal.Zero(), types.ErrUnknownCollateral
	}

	if assertNonMarkable && cdp.CollateralStabRatio.LTE(parent.Lcr) {
		return decimal.Zero(), types.ErrForceLiquidateMarkable
	}

	crPct := parent.Mcr.Mul(cdp.CollateralStabRatio).Quo(parent.Lcr)
	debt := cdp.MintedStab
	p := decimal.Min(payment, debt).Quo(debt)
	if crPct.LTE(decimal.One()) {
		// An undercollateralized position is only force-liquidated in full,
		// so the payment has to cover the whole debt.
		if payment.LT(debt) {
			return decimal.Zero(), types.ErrInsufficientPayment
		}
		p = decimal.One()
	}

	collateralTaken := cdp.CollateralAmount.Mul(p).Mul(percentageToTake).Quo(crPct)
	if collateralTaken.IsNegative() {
		collateralTaken = decimal.Zero()
	}
	if collateralTaken.GT(cdp.CollateralAmount) {
		collateralTaken = cdp.CollateralAmount
	}

	stabBurned := decimal.Min(payment, debt)
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, caller, types.ModuleName, sdk.NewCoins(decimalToCoin(types.StabDenom, stabBurned))); err != nil {
		return decimal.Zero(), err
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, sdk.NewCoins(decimalToCoin(types.StabDenom, stabBurned))); err != nil {
		return decimal.Zero(), err
	}
	if collateralTaken.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, sdk.NewCoins(decimalToCoin(cdp.Collateral, collateralTaken))); err != nil {
			return decimal.Zero(), err
		}
	}

	preLiquidationReal := cdp.CollateralStabRatio.Mul(stabBurned)

	k.RemoveCrIndex(ctx, parentDenom, cdp.CollateralStabRatio, cdpId)

	full := p.GTE(decimal.One())
	newDebt := debt.Sub(stabBurned)
	if newDebt.LTE(decimal.Zero()) {
		full = true
		newDebt = decimal.Zero()
	}

	cdp.CollateralAmount = cdp.CollateralAmount.Sub(collateralTaken)
	cdp.MintedStab = newDebt

	if full {
		cdp.Status = types.CdpStatusForceLiquidated
	} else {
		_, _, realAmount, err := k.poolToReal(ctx, cdp.Collateral, cdp.CollateralAmount)
		if err != nil {
			return decimal.Zero(), err
		}
		newCr := realAmount.Quo(newDebt)
		cdp.CollateralStabRatio = newCr
		if err := k.InsertCrIndex(ctx, parentDenom, newCr, cdpId); err != nil {
			return decimal.Zero(), err
		}
	}
	k.SetCdp(ctx, cdp)

	parent.MintedStab = parent.MintedStab.Sub(stabBurned)
	parent.CollateralAmount = parent.CollateralAmount.Sub(preLiquidationReal)
	k.SetCollateralInfo(ctx, parent)
	if cdp.IsPoolUnitCollateral {
		if poolInfo, found := k.GetPoolUnitInfo(ctx, cdp.Collateral); found {
			poolInfo.MintedStab = poolInfo.MintedStab.Sub(stabBurned)
			k.SetPoolUnitInfo(ctx, poolInfo)
		}
	}

	k.emitUpdateCdp(ctx, cdp)
	k.Logger(ctx).Info("force liquidated cdp", "id", cdpId, "full", full, "collateral_taken", collateralTaken.String())
	return collateralTaken, nil
}
