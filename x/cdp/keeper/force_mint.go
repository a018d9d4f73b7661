package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// ForceMint operates on the highest-CR cdp for parentDenom whose collateral
// denom matches payment's, topping it up with collateral in exchange for
// freshly minted STAB down to minCr = forceMintCrMultiplier * lcr. Excess
// payment beyond the computed maximum collateral addition is returned
// unconsumed.
func (k Keeper) ForceMint(ctx sdk.Context, caller sdk.AccAddress, parentDenom string, paymentCollateral string, payment, percentageToSupply decimal.Decimal) (mintedStab, returnedCollateral decimal.Decimal, err error) {
	params := k.GetParams(ctx)
	if params.ForceMintStopped {
		return decimal.Zero(), decimal.Zero(), types.ErrOperationDisabled
	}
	parent, found := k.GetCollateralInfo(ctx, parentDenom)
	if !found {
		return decimal.Zero(), decimal.Zero(), types.ErrUnknownCollateral
	}

	var (
		targetId uint64
		target   types.Cdp
		ok       bool
	)
	k.RangeDescending(ctx, parentDenom, func(cdpId uint64) bool {
		cdp, found := k.GetCdp(ctx, cdpId)
		if !found {
			return true
		}
		if cdp.Collateral == paymentCollateral {
			targetId, target, ok = cdpId, cdp, true
			return false
		}
		return true
	})
	if !ok {
		return decimal.Zero(), decimal.Zero(), types.ErrWrongResource
	}

	_, _, pr, err := k.poolToReal(ctx, target.Collateral, decimal.One())
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	price := parent.UsdPrice
	minCr := params.ForceMintCrMultiplier().Mul(parent.Lcr)
	internalPrice := k.pegKeeper.GetInternalPrice(ctx)
	k_ := internalPrice.Quo(pr.Mul(price)).Mul(percentageToSupply)

	c := target.CollateralAmount
	s := target.MintedStab
	numerator := c.Mul(pr).Sub(minCr.Mul(s))
	denominator := minCr.Sub(k_.Mul(pr))
	if denominator.LTE(decimal.Zero()) || numerator.LTE(decimal.Zero()) {
		return decimal.Zero(), decimal.Zero(), types.ErrInsufficientCollateral
	}
	maxAddition := k_.Mul(numerator).Quo(denominator)

	accepted := decimal.Min(payment, maxAddition)
	returnedCollateral = payment.Sub(accepted)
	mintedStab = accepted.Quo(k_)

	if accepted.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, caller, types.ModuleName, sdk.NewCoins(decimalToCoin(paymentCollateral, accepted))); err != nil {
			return decimal.Zero(), decimal.Zero(), err
		}
	}
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, sdk.NewCoins(decimalToCoin(types.StabDenom, mintedStab))); err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, sdk.NewCoins(decimalToCoin(types.StabDenom, mintedStab))); err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}

	k.RemoveCrIndex(ctx, parentDenom, target.CollateralStabRatio, targetId)
	target.CollateralAmount = c.Add(accepted)
	target.MintedStab = s.Add(mintedStab)
	_, _, realAmount, err := k.poolToReal(ctx, target.Collateral, target.CollateralAmount)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	target.CollateralStabRatio = realAmount.Quo(target.MintedStab)
	if err := k.InsertCrIndex(ctx, parentDenom, target.CollateralStabRatio, targetId); err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	k.SetCdp(ctx, target)

	parent.MintedStab = parent.MintedStab.Add(mintedStab)
	parent.CollateralAmount = parent.CollateralAmount.Add(accepted.Mul(pr))
	k.SetCollateralInfo(ctx, parent)
	if target.IsPoolUnitCollateral {
		if poolInfo, found := k.GetPoolUnitInfo(ctx, target.Collateral); found {
			poolInfo.MintedStab = poolInfo.MintedStab.Add(mintedStab)
			k.SetPoolUnitInfo(ctx, poolInfo)
		}
	}

	k.emitUpdateCdp(ctx, target)
	k.Logger(ctx).Info("force minted against cdp", "id", targetId, "minted_stab", mintedStab.String(), "returned_collateral", returnedCollateral.String())
	return mintedStab, returnedCollateral, nil
}
