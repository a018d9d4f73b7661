package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// RetrieveLeftover pays out whatever collateral remains on a terminal cdp
// (the remainder a liquidation's first fee regime can leave behind) and
// zeroes it, clearing the way for BurnCdp.
func (k Keeper) RetrieveLeftover(ctx sdk.Context, caller sdk.AccAddress, id uint64) error {
	cdp, found := k.GetCdp(ctx, id)
	if !found {
		return types.ErrUnknownCdp
	}
	if cdp.Owner != caller.String() {
		return types.ErrNotOwner
	}
	if !cdp.Status.IsTerminal() {
		return types.ErrNotBurnable
	}
	if !cdp.CollateralAmount.IsPositive() {
		return nil
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, sdk.NewCoins(decimalToCoin(cdp.Collateral, cdp.CollateralAmount))); err != nil {
		return err
	}
	cdp.CollateralAmount = decimal.Zero()
	k.SetCdp(ctx, cdp)
	k.emitUpdateCdp(ctx, cdp)
	return nil
}

// BurnCdp destroys a terminal, emptied cdp receipt.
func (k Keeper) BurnCdp(ctx sdk.Context, caller sdk.AccAddress, id uint64) error {
	cdp, found := k.GetCdp(ctx, id)
	if !found {
		return types.ErrUnknownCdp
	}
	if cdp.Owner != caller.String() {
		return types.ErrNotOwner
	}
	if !cdp.Status.IsTerminal() || cdp.CollateralAmount.IsPositive() {
		return types.ErrNotBurnable
	}
	k.DeleteCdp(ctx, id)
	return nil
}

// BurnMarker destroys a used marker receipt.
func (k Keeper) BurnMarker(ctx sdk.Context, id uint64) error {
	marker, found := k.GetCdpMarker(ctx, id)
	if !found {
		return types.ErrUnknownMarker
	}
	if !marker.Used {
		return types.ErrNotBurnable
	}
	store := ctx.KVStore(k.storeKey)
	store.Delete(types.GetCdpMarkerKey(id))
	return nil
}

// BurnLiquidationReceipt destroys a liquidation receipt. These carry no
// access control: anyone may burn one.
func (k Keeper) BurnLiquidationReceipt(ctx sdk.Context, id uint64) error {
	if _, found := k.GetLiquidationReceipt(ctx, id); !found {
		return types.ErrNotBurnable
	}
	store := ctx.KVStore(k.storeKey)
	store.Delete(types.GetLiquidationReceiptKey(id))
	return nil
}
