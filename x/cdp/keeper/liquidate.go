package keeper

import (
	"errors"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// LiquidatePositionWithMarker liquidates a Marked cdp, presenting its
// marker receipt id directly. The delay required is liquidationDelay.
func (k Keeper) LiquidatePositionWithMarker(ctx sdk.Context, caller sdk.AccAddress, markerId uint64, payment decimal.Decimal) (decimal.Decimal, error) {
	marker, found := k.GetCdpMarker(ctx, markerId)
	if !found {
		return decimal.Zero(), types.ErrUnknownMarker
	}
	delay := k.GetParams(ctx).LiquidationDelay()
	return k.tryLiquidate(ctx, caller, marker, payment, delay)
}

// LiquidatePositionWithoutMarker liquidates a Marked cdp by id, without
// presenting a marker receipt, after the longer liquidationDelay +
// unmarkedDelay window. The cdp's Marked status is what admits it; skip is
// only checked against the global markedCdps queue, and a skip past the
// end of the queue is rejected with ErrSkipOutOfRange. Whether the cdp sits
// at or after position skip does not affect the outcome.
func (k Keeper) LiquidatePositionWithoutMarker(ctx sdk.Context, caller sdk.AccAddress, cdpId uint64, payment decimal.Decimal, skip uint64) (decimal.Decimal, error) {
	cdp, found := k.GetCdp(ctx, cdpId)
	if !found {
		return decimal.Zero(), types.ErrUnknownCdp
	}
	if cdp.Status != types.CdpStatusMarked {
		return decimal.Zero(), types.ErrNotMarked
	}
	_, outOfRange := k.FindInMarkedQueue(ctx, skip, cdpId)
	if outOfRange {
		return decimal.Zero(), types.ErrSkipOutOfRange
	}
	marker, found := k.GetCdpMarker(ctx, cdp.MarkerId)
	if !found {
		return decimal.Zero(), types.ErrUnknownMarker
	}
	params := k.GetParams(ctx)
	delay := params.LiquidationDelay() + params.UnmarkedDelay()
	return k.tryLiquidate(ctx, caller, marker, payment, delay)
}

// tryLiquidate implements the shared precondition and save/liquidate branch
// used by both LiquidatePositionWithMarker and LiquidatePositionWithoutMarker.
func (k Keeper) tryLiquidate(ctx sdk.Context, caller sdk.AccAddress, marker types.CdpMarker, payment decimal.Decimal, delay time.Duration) (decimal.Decimal, error) {
	params := k.GetParams(ctx)
	if params.LiquidationsStopped {
		return decimal.Zero(), types.ErrOperationDisabled
	}
	if marker.Used {
		return decimal.Zero(), types.ErrMarkerAlreadyUsed
	}
	if marker.MarkType != types.CdpMarkTypeMarked {
		return decimal.Zero(), types.ErrMarkerWrongType
	}
	cdp, found := k.GetCdp(ctx, marker.MarkedCdpId)
	if !found {
		return decimal.Zero(), types.ErrUnknownCdp
	}
	if cdp.Status != types.CdpStatusMarked {
		return decimal.Zero(), types.ErrNotMarked
	}
	if payment.LT(cdp.MintedStab) {
		return decimal.Zero(), types.ErrInsufficientPayment
	}
	if ctx.BlockTime().Before(marker.TimeMarked.Add(delay)) {
		return decimal.Zero(), types.ErrTooEarly
	}

	parentDenomStr := parentDenom(cdp)
	parent, found := k.GetCollateralInfo(ctx, parentDenomStr)
	if !found {
		return decimal.Zero(), types.ErrUnknownCollateral
	}

	_, _, realAmount, err := k.poolToReal(ctx, cdp.Collateral, cdp.CollateralAmount)
	if err != nil {
		return decimal.Zero(), err
	}
	trueCr := realAmount.Quo(cdp.MintedStab)

	if !trueCr.LT(parent.Lcr) {
		// Save: the position cleared the threshold by the time the delay
		// elapsed. Re-index at the true CR and issue a Saved marker instead
		// of liquidating; payment is returned untouched. If the target
		// bucket is full, fall through and liquidate instead.
		err := k.InsertCrIndex(ctx, parentDenomStr, trueCr, cdp.Id)
		if err == nil {
			marker.Used = true
			k.SetCdpMarker(ctx, marker)
			k.DequeueMarked(ctx, marker.MarkerPlacing)
			cdp.Status = types.CdpStatusHealthy
			cdp.MarkerId = 0
			cdp.CollateralStabRatio = trueCr
			k.SetCdp(ctx, cdp)
			k.issueMarker(ctx, &cdp, types.CdpMarkTypeSaved)
			k.emitUpdateCdp(ctx, cdp)
			return decimal.Zero(), nil
		}
		if !errors.Is(err, types.ErrCRWindowFull) {
			return decimal.Zero(), err
		}
	}

	return k.executeLiquidation(ctx, caller, cdp, marker, parent, payment)
}

// executeLiquidation burns the cdp's debt, distributes collateral between
// liquidator and treasury per the three fee regimes below, and records a
// LiquidationReceipt.
func (k Keeper) executeLiquidation(ctx sdk.Context, caller sdk.AccAddress, cdp types.Cdp, marker types.CdpMarker, parent types.CollateralInfo, payment decimal.Decimal) (decimal.Decimal, error) {
	params := k.GetParams(ctx)
	debt := cdp.MintedStab
	excess := payment.Sub(debt)

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, caller, types.ModuleName, sdk.NewCoins(decimalToCoin(types.StabDenom, debt))); err != nil {
		return decimal.Zero(), err
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, sdk.NewCoins(decimalToCoin(types.StabDenom, debt))); err != nil {
		return decimal.Zero(), err
	}
	if excess.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, caller, types.ModuleName, sdk.NewCoins(decimalToCoin(types.StabDenom, excess))); err != nil {
			return decimal.Zero(), err
		}
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, sdk.NewCoins(decimalToCoin(types.StabDenom, excess))); err != nil {
			return decimal.Zero(), err
		}
	}

	alpha := params.LiquidatorFine()
	beta := params.ProtocolFine()
	crPct := parent.Mcr.Mul(cdp.CollateralStabRatio).Quo(parent.Lcr)

	liquidatorAmt, treasuryAmt, leftoverAmt, percentageReceived, percentageOwed := liquidationShares(cdp.CollateralAmount, crPct, alpha, beta)

	if liquidatorAmt.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, sdk.NewCoins(decimalToCoin(cdp.Collateral, liquidatorAmt))); err != nil {
			return decimal.Zero(), err
		}
	}

	preLiquidationReal := cdp.CollateralStabRatio.Mul(debt) // captured before any mutation below

	marker.Used = true
	k.SetCdpMarker(ctx, marker)
	k.DequeueMarked(ctx, marker.MarkerPlacing)

	cdp.Status = types.CdpStatusLiquidated
	cdp.MintedStab = decimal.Zero()
	cdp.CollateralAmount = leftoverAmt
	k.SetCdp(ctx, cdp)

	parent.MintedStab = parent.MintedStab.Sub(debt)
	parent.CollateralAmount = parent.CollateralAmount.Sub(preLiquidationReal)
	parent.Treasury = parent.Treasury.Add(treasuryAmt)
	k.SetCollateralInfo(ctx, parent)
	if cdp.IsPoolUnitCollateral {
		if poolInfo, found := k.GetPoolUnitInfo(ctx, cdp.Collateral); found {
			poolInfo.MintedStab = poolInfo.MintedStab.Sub(debt)
			poolInfo.Treasury = poolInfo.Treasury.Add(treasuryAmt)
			k.SetPoolUnitInfo(ctx, poolInfo)
		}
	}

	receipt := types.LiquidationReceipt{
		Id:                 k.NextReceiptID(ctx),
		Collateral:         cdp.Collateral,
		StabPaid:           debt,
		PercentageReceived: percentageReceived,
		PercentageOwed:     percentageOwed,
		CdpLiquidated:      cdp.Id,
		DateLiquidated:     ctx.BlockTime(),
	}
	k.SetLiquidationReceipt(ctx, receipt)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeLiquidateCdp,
		sdk.NewAttribute(types.AttributeKeyCdpId, sdk.NewInt(int64(cdp.Id)).String()),
		sdk.NewAttribute(types.AttributeKeyMintedStab, debt.String()),
	))
	k.Logger(ctx).Info("liquidated cdp", "id", cdp.Id, "liquidator", caller.String(), "debt", debt.String())
	return excess, nil
}

// liquidationShares implements the three fee regimes:
//
//  1. crPct > 1+α+β: liquidator gets (1+α)*collateral/crPct, treasury gets
//     β*collateral/crPct, the remainder stays in the cdp for retrieveLeftover.
//  2. 1+α < crPct <= 1+α+β: liquidator gets (1+α)*collateral/crPct, treasury
//     gets whatever remains (no leftover).
//  3. crPct <= 1+α: the liquidator receives the entire collateral; the
//     receipt records percentageReceived=crPct against percentageOwed=1+α.
func liquidationShares(collateralAmount, crPct, alpha, beta decimal.Decimal) (liquidatorAmt, treasuryAmt, leftoverAmt, percentageReceived, percentageOwed decimal.Decimal) {
	onePlusAlpha := decimal.One().Add(alpha)
	percentageOwed = onePlusAlpha

	if crPct.LTE(onePlusAlpha) {
		return collateralAmount, decimal.Zero(), decimal.Zero(), crPct, percentageOwed
	}

	liquidatorAmt = onePlusAlpha.Mul(collateralAmount).Quo(crPct)
	onePlusAlphaPlusBeta := onePlusAlpha.Add(beta)
	if crPct.LTE(onePlusAlphaPlusBeta) {
		treasuryAmt = collateralAmount.Sub(liquidatorAmt)
		return liquidatorAmt, treasuryAmt, decimal.Zero(), onePlusAlpha, percentageOwed
	}

	treasuryAmt = beta.Mul(collateralAmount).Quo(crPct)
	leftoverAmt = collateralAmount.Sub(liquidatorAmt).Sub(treasuryAmt)
	return liquidatorAmt, treasuryAmt, leftoverAmt, onePlusAlpha, percentageOwed
}
