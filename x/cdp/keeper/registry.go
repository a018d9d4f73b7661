package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// GetCollateralInfo returns the registry record for a parent collateral.
func (k Keeper) GetCollateralInfo(ctx sdk.Context, denom string) (types.CollateralInfo, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetCollateralInfoKey(denom))
	if bz == nil {
		return types.CollateralInfo{}, false
	}
	var info types.CollateralInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return types.CollateralInfo{}, false
	}
	return info, true
}

// SetCollateralInfo persists a registry record for a parent collateral.
func (k Keeper) SetCollateralInfo(ctx sdk.Context, info types.CollateralInfo) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(info)
	if err != nil {
		panic(err)
	}
	store.Set(types.GetCollateralInfoKey(info.Denom), bz)
}

// GetPoolUnitInfo returns the registry record for a pool-unit collateral.
func (k Keeper) GetPoolUnitInfo(ctx sdk.Context, denom string) (types.PoolUnitInfo, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetPoolUnitInfoKey(denom))
	if bz == nil {
		return types.PoolUnitInfo{}, false
	}
	var info types.PoolUnitInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return types.PoolUnitInfo{}, false
	}
	return info, true
}

// SetPoolUnitInfo persists a registry record for a pool-unit collateral.
func (k Keeper) SetPoolUnitInfo(ctx sdk.Context, info types.PoolUnitInfo) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(info)
	if err != nil {
		panic(err)
	}
	store.Set(types.GetPoolUnitInfoKey(info.Denom), bz)
}

// AddCollateral registers a new accepted parent collateral (owner-only).
func (k Keeper) AddCollateral(ctx sdk.Context, denom string, mcr, initialPrice, maxStabShare decimal.Decimal) error {
	if _, found := k.GetCollateralInfo(ctx, denom); found {
		return types.ErrAlreadyAccepted
	}
	if maxStabShare.IsZero() {
		maxStabShare = decimal.One()
	}
	info := types.CollateralInfo{
		Denom:            denom,
		Mcr:              mcr,
		UsdPrice:         initialPrice,
		Vault:            decimal.Zero(),
		Treasury:         decimal.Zero(),
		Accepted:         true,
		Initialized:      true,
		MaxStabShare:     maxStabShare,
		MintedStab:       decimal.Zero(),
		CollateralAmount: decimal.Zero(),
		HighestCr:        decimal.Zero(),
	}
	info.RecomputeLcr(k.pegKeeper.GetInternalPrice(ctx))
	k.SetCollateralInfo(ctx, info)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAddCollateral,
		sdk.NewAttribute(types.AttributeKeyCollateral, denom),
		sdk.NewAttribute(types.AttributeKeyUsdPrice, initialPrice.String()),
	))
	return nil
}

// AddPoolCollateral registers a new accepted pool-unit collateral, deriving
// its value lazily from parent's redemption source.
func (k Keeper) AddPoolCollateral(ctx sdk.Context, denom, parentDenom string, kind types.PoolUnitKind, redemptionRef string, maxPoolShare decimal.Decimal) error {
	if _, found := k.GetCollateralInfo(ctx, parentDenom); !found {
		return types.ErrUnknownCollateral
	}
	if _, found := k.GetPoolUnitInfo(ctx, denom); found {
		return types.ErrAlreadyAccepted
	}
	info := types.PoolUnitInfo{
		Denom:         denom,
		ParentDenom:   parentDenom,
		Kind:          kind,
		RedemptionRef: redemptionRef,
		Accepted:      true,
		MaxPoolShare:  maxPoolShare,
		MintedStab:    decimal.Zero(),
		Vault:         decimal.Zero(),
		Treasury:      decimal.Zero(),
	}
	k.SetPoolUnitInfo(ctx, info)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAddPoolCollateral,
		sdk.NewAttribute(types.AttributeKeyCollateral, denom),
	))
	return nil
}

// EditCollateral updates the mutable admin fields of an existing parent
// collateral registry record.
func (k Keeper) EditCollateral(ctx sdk.Context, denom string, mcr decimal.Decimal, accepted bool, maxStabShare decimal.Decimal) error {
	info, found := k.GetCollateralInfo(ctx, denom)
	if !found {
		return types.ErrUnknownCollateral
	}
	info.Mcr = mcr
	info.Accepted = accepted
	info.MaxStabShare = maxStabShare
	info.RecomputeLcr(k.pegKeeper.GetInternalPrice(ctx))
	k.SetCollateralInfo(ctx, info)
	return nil
}

// EditPoolCollateral updates the mutable admin fields of an existing
// pool-unit collateral registry record.
func (k Keeper) EditPoolCollateral(ctx sdk.Context, denom string, accepted bool, maxPoolShare decimal.Decimal) error {
	info, found := k.GetPoolUnitInfo(ctx, denom)
	if !found {
		return types.ErrUnknownCollateral
	}
	info.Accepted = accepted
	info.MaxPoolShare = maxPoolShare
	k.SetPoolUnitInfo(ctx, info)
	return nil
}

// ChangeCollateralPrice updates a parent collateral's usdPrice and
// recomputes its LCR. Price updates never touch CDPs; CR re-evaluation
// happens lazily on the next per-CDP interaction.
func (k Keeper) ChangeCollateralPrice(ctx sdk.Context, denom string, newPrice decimal.Decimal) error {
	info, found := k.GetCollateralInfo(ctx, denom)
	if !found {
		return types.ErrUnknownCollateral
	}
	info.UsdPrice = newPrice
	info.RecomputeLcr(k.pegKeeper.GetInternalPrice(ctx))
	k.SetCollateralInfo(ctx, info)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeChangeCollateral,
		sdk.NewAttribute(types.AttributeKeyCollateral, denom),
		sdk.NewAttribute(types.AttributeKeyUsdPrice, newPrice.String()),
	))
	return nil
}

// RecomputeAllLcrs recomputes every registered parent collateral's LCR
// against the current internal price. x/peg's Tick calls this after the
// controller advances internalPrice.
func (k Keeper) RecomputeAllLcrs(ctx sdk.Context) {
	internalPrice := k.pegKeeper.GetInternalPrice(ctx)
	k.IterateCollateralInfos(ctx, func(info types.CollateralInfo) bool {
		info.RecomputeLcr(internalPrice)
		k.SetCollateralInfo(ctx, info)
		return true
	})
}

// GetCirculatingStab returns the sum of collateralInfo.mintedStab across
// every registered parent, which must equal the total circulating STAB
// supply.
func (k Keeper) GetCirculatingStab(ctx sdk.Context) decimal.Decimal {
	total := decimal.Zero()
	k.IterateCollateralInfos(ctx, func(info types.CollateralInfo) bool {
		total = total.Add(info.MintedStab)
		return true
	})
	return total
}

// IterateCollateralInfos walks every registered parent collateral.
func (k Keeper) IterateCollateralInfos(ctx sdk.Context, fn func(types.CollateralInfo) bool) {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.CollateralInfoPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var info types.CollateralInfo
		if err := json.Unmarshal(iter.Value(), &info); err != nil {
			continue
		}
		if !fn(info) {
			return
		}
	}
}

// IteratePoolUnitInfos walks every registered pool-unit collateral.
func (k Keeper) IteratePoolUnitInfos(ctx sdk.Context, fn func(types.PoolUnitInfo) bool) {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.PoolUnitInfoPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var info types.PoolUnitInfo
		if err := json.Unmarshal(iter.Value(), &info); err != nil {
			continue
		}
		if !fn(info) {
			return
		}
	}
}

// EmptyTreasury withdraws amount from denom's treasury vault to recipient,
// falling back to fallbackDenom's treasury if denom's is insufficient.
func (k Keeper) EmptyTreasury(ctx sdk.Context, denom string, amount decimal.Decimal, recipient sdk.AccAddress, fallbackDenom string) error {
	info, found := k.GetCollateralInfo(ctx, denom)
	if !found {
		return types.ErrUnknownCollateral
	}
	take := amount
	if info.Treasury.LT(amount) {
		take = info.Treasury
	}
	info.Treasury = info.Treasury.Sub(take)
	k.SetCollateralInfo(ctx, info)

	remainder := amount.Sub(take)
	if take.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, sdk.NewCoins(sdk.NewCoin(denom, take.LegacyDec().TruncateInt()))); err != nil {
			return err
		}
	}
	if remainder.IsPositive() && fallbackDenom != "" {
		fbInfo, found := k.GetCollateralInfo(ctx, fallbackDenom)
		if !found {
			return nil
		}
		fbTake := remainder
		if fbInfo.Treasury.LT(remainder) {
			fbTake = fbInfo.Treasury
		}
		fbInfo.Treasury = fbInfo.Treasury.Sub(fbTake)
		k.SetCollateralInfo(ctx, fbInfo)
		if fbTake.IsPositive() {
			return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, sdk.NewCoins(sdk.NewCoin(fallbackDenom, fbTake.LegacyDec().TruncateInt())))
		}
	}
	return nil
}
