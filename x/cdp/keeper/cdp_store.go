package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// GetCdp returns a Cdp by id.
func (k Keeper) GetCdp(ctx sdk.Context, id uint64) (types.Cdp, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetCdpKey(id))
	if bz == nil {
		return types.Cdp{}, false
	}
	var cdp types.Cdp
	if err := json.Unmarshal(bz, &cdp); err != nil {
		return types.Cdp{}, false
	}
	return cdp, true
}

// SetCdp persists a Cdp.
func (k Keeper) SetCdp(ctx sdk.Context, cdp types.Cdp) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(cdp)
	if err != nil {
		panic(err)
	}
	store.Set(types.GetCdpKey(cdp.Id), bz)
}

// DeleteCdp removes a Cdp record. Only valid once the receipt has been
// burned.
func (k Keeper) DeleteCdp(ctx sdk.Context, id uint64) {
	store := ctx.KVStore(k.storeKey)
	store.Delete(types.GetCdpKey(id))
}

// GetCdpMarker returns a CdpMarker by id.
func (k Keeper) GetCdpMarker(ctx sdk.Context, id uint64) (types.CdpMarker, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetCdpMarkerKey(id))
	if bz == nil {
		return types.CdpMarker{}, false
	}
	var marker types.CdpMarker
	if err := json.Unmarshal(bz, &marker); err != nil {
		return types.CdpMarker{}, false
	}
	return marker, true
}

// SetCdpMarker persists a CdpMarker.
func (k Keeper) SetCdpMarker(ctx sdk.Context, marker types.CdpMarker) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(marker)
	if err != nil {
		panic(err)
	}
	store.Set(types.GetCdpMarkerKey(marker.Id), bz)
}

// SetLiquidationReceipt persists a LiquidationReceipt.
func (k Keeper) SetLiquidationReceipt(ctx sdk.Context, receipt types.LiquidationReceipt) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(receipt)
	if err != nil {
		panic(err)
	}
	store.Set(types.GetLiquidationReceiptKey(receipt.Id), bz)
}

// GetLiquidationReceipt returns a LiquidationReceipt by id.
func (k Keeper) GetLiquidationReceipt(ctx sdk.Context, id uint64) (types.LiquidationReceipt, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetLiquidationReceiptKey(id))
	if bz == nil {
		return types.LiquidationReceipt{}, false
	}
	var receipt types.LiquidationReceipt
	if err := json.Unmarshal(bz, &receipt); err != nil {
		return types.LiquidationReceipt{}, false
	}
	return receipt, true
}

// IterateCdps walks every stored Cdp.
func (k Keeper) IterateCdps(ctx sdk.Context, fn func(types.Cdp) bool) {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.CdpPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var cdp types.Cdp
		if err := json.Unmarshal(iter.Value(), &cdp); err != nil {
			continue
		}
		if !fn(cdp) {
			return
		}
	}
}

// IterateCdpMarkers walks every stored CdpMarker.
func (k Keeper) IterateCdpMarkers(ctx sdk.Context, fn func(types.CdpMarker) bool) {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.CdpMarkerPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var marker types.CdpMarker
		if err := json.Unmarshal(iter.Value(), &marker); err != nil {
			continue
		}
		if !fn(marker) {
			return
		}
	}
}

// IterateLiquidationReceipts walks every stored LiquidationReceipt.
func (k Keeper) IterateLiquidationReceipts(ctx sdk.Context, fn func(types.LiquidationReceipt) bool) {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.LiquidationReceiptPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var receipt types.LiquidationReceipt
		if err := json.Unmarshal(iter.Value(), &receipt); err != nil {
			continue
		}
		if !fn(receipt) {
			return
		}
	}
}

// parentDenom returns the parent collateral denom for a cdp (itself if not
// a pool unit).
func parentDenom(cdp types.Cdp) string {
	if cdp.IsPoolUnitCollateral {
		return cdp.ParentAddress
	}
	return cdp.Collateral
}

// emitUpdateCdp emits the UpdateCdp event.
func (k Keeper) emitUpdateCdp(ctx sdk.Context, cdp types.Cdp) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUpdateCdp,
		sdk.NewAttribute(types.AttributeKeyCdpId, sdk.NewInt(int64(cdp.Id)).String()),
		sdk.NewAttribute(types.AttributeKeyCollateralAmount, cdp.CollateralAmount.String()),
		sdk.NewAttribute(types.AttributeKeyMintedStab, cdp.MintedStab.String()),
		sdk.NewAttribute(types.AttributeKeyCollateralStabRatio, cdp.CollateralStabRatio.String()),
		sdk.NewAttribute(types.AttributeKeyStatus, cdp.Status.String()),
	))
}
