package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// wouldExceedShareCap reports whether minting additionalStab against parent
// (and, if isPoolUnit, poolInfo) would breach either share-cap invariant.
// This check must run before any STAB is minted, never after.
func wouldExceedShareCap(parent types.CollateralInfo, circulatingStab decimal.Decimal, poolInfo *types.PoolUnitInfo, additionalStab decimal.Decimal) bool {
	newParentMinted := parent.MintedStab.Add(additionalStab)
	newCirculating := circulatingStab.Add(additionalStab)
	if newCirculating.IsPositive() && newParentMinted.Quo(newCirculating).GT(parent.MaxStabShare) {
		return true
	}
	if poolInfo != nil {
		newPoolMinted := poolInfo.MintedStab.Add(additionalStab)
		if newParentMinted.IsPositive() && newPoolMinted.Quo(newParentMinted).GT(poolInfo.MaxPoolShare) {
			return true
		}
	}
	return false
}

// OpenCdp opens a new CDP against collateralCoin, minting stabToMint STAB to
// owner, and returns the new CDP id.
func (k Keeper) OpenCdp(ctx sdk.Context, owner sdk.AccAddress, collateralCoin sdk.Coin, stabToMint decimal.Decimal) (uint64, error) {
	params := k.GetParams(ctx)
	if params.OpeningsStopped {
		return 0, types.ErrOperationDisabled
	}
	if stabToMint.LT(params.MinimumMint) {
		return 0, types.ErrBelowMinimumMint
	}

	isPoolUnit, parentDenomStr, realAmount, err := k.poolToReal(ctx, collateralCoin.Denom, decimal.FromLegacyDec(sdk.NewDecFromInt(collateralCoin.Amount)))
	if err != nil {
		return 0, err
	}

	parent, found := k.GetCollateralInfo(ctx, parentDenomStr)
	if !found || !parent.Accepted {
		return 0, types.ErrNotAccepted
	}

	var poolInfo *types.PoolUnitInfo
	if isPoolUnit {
		info, found := k.GetPoolUnitInfo(ctx, collateralCoin.Denom)
		if !found || !info.Accepted {
			return 0, types.ErrNotAccepted
		}
		poolInfo = &info
	}

	// Share-cap check precedes minting.
	if wouldExceedShareCap(parent, k.GetCirculatingStab(ctx), poolInfo, stabToMint) {
		return 0, types.ErrShareCapExceeded
	}

	internalPrice := k.pegKeeper.GetInternalPrice(ctx)
	required := internalPrice.Mul(stabToMint).Mul(parent.Mcr)
	if parent.UsdPrice.Mul(realAmount).LT(required) {
		return 0, types.ErrInsufficientCollateral
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, owner, types.ModuleName, sdk.NewCoins(collateralCoin)); err != nil {
		return 0, err
	}
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin(types.StabDenom, stabToMint.LegacyDec().TruncateInt()))); err != nil {
		return 0, err
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, owner, sdk.NewCoins(sdk.NewCoin(types.StabDenom, stabToMint.LegacyDec().TruncateInt()))); err != nil {
		return 0, err
	}

	id := k.NextCdpID(ctx)
	cr := realAmount.Quo(stabToMint)
	cdp := types.Cdp{
		Id:                   id,
		Owner:                owner.String(),
		Collateral:           collateralCoin.Denom,
		ParentAddress:        parentDenomStr,
		IsPoolUnitCollateral: isPoolUnit,
		CollateralAmount:     decimal.FromLegacyDec(sdk.NewDecFromInt(collateralCoin.Amount)),
		MintedStab:           stabToMint,
		CollateralStabRatio:  cr,
		Status:               types.CdpStatusHealthy,
	}
	if err := k.InsertCrIndex(ctx, parentDenomStr, cr, id); err != nil {
		return 0, err
	}
	k.SetCdp(ctx, cdp)

	parent.MintedStab = parent.MintedStab.Add(stabToMint)
	parent.CollateralAmount = parent.CollateralAmount.Add(realAmount)
	if cr.GT(parent.HighestCr) {
		parent.HighestCr = cr
	}
	parent.Vault = parent.Vault.Add(decimal.FromLegacyDec(sdk.NewDecFromInt(collateralCoin.Amount)))
	k.SetCollateralInfo(ctx, parent)

	if poolInfo != nil {
		poolInfo.MintedStab = poolInfo.MintedStab.Add(stabToMint)
		poolInfo.Vault = poolInfo.Vault.Add(decimal.FromLegacyDec(sdk.NewDecFromInt(collateralCoin.Amount)))
		k.SetPoolUnitInfo(ctx, *poolInfo)
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeNewCdp,
		sdk.NewAttribute(types.AttributeKeyCdpId, sdk.NewInt(int64(id)).String()),
		sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
		sdk.NewAttribute(types.AttributeKeyCollateral, collateralCoin.Denom),
		sdk.NewAttribute(types.AttributeKeyMintedStab, stabToMint.String()),
	))
	k.Logger(ctx).Info("opened cdp", "id", id, "collateral", collateralCoin.Denom, "minted_stab", stabToMint.String())
	return id, nil
}
