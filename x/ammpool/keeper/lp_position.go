package keeper

import (
	"encoding/json"

	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/ammpool/types"
)

// getNextLPPositionID returns the next LP position id and increments the
// counter.
func (k Keeper) getNextLPPositionID(ctx sdk.Context) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.LPPositionCounterKey)
	var id uint64 = 1
	if bz != nil {
		id = sdk.BigEndianToUint64(bz) + 1
	}
	store.Set(types.LPPositionCounterKey, sdk.Uint64ToBigEndian(id))
	return id
}

func (k Keeper) SetLPPosition(ctx sdk.Context, position types.LPPosition) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(position)
	if err != nil {
		panic(err)
	}
	store.Set(types.GetLPPositionKey(position.Id), bz)
	store.Set(types.GetLPPositionByProviderKey(position.Provider, position.Id), sdk.Uint64ToBigEndian(position.Id))
}

func (k Keeper) GetLPPosition(ctx sdk.Context, id uint64) (types.LPPosition, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetLPPositionKey(id))
	if bz == nil {
		return types.LPPosition{}, false
	}
	var position types.LPPosition
	if err := json.Unmarshal(bz, &position); err != nil {
		return types.LPPosition{}, false
	}
	return position, true
}

// getPositionByProvider returns provider's single position, if any. Each
// provider holds at most one LPPosition record, consolidated on every
// add/remove rather than kept as a list like the teacher's per-trade
// LP positions, since this pool has no per-trade notion.
func (k Keeper) getPositionByProvider(ctx sdk.Context, provider string) (types.LPPosition, bool) {
	store := ctx.KVStore(k.storeKey)
	pStore := prefix.NewStore(store, types.GetLPPositionByProviderPrefix(provider))
	iter := pStore.Iterator(nil, nil)
	defer iter.Close()
	if !iter.Valid() {
		return types.LPPosition{}, false
	}
	id := sdk.BigEndianToUint64(iter.Value())
	return k.GetLPPosition(ctx, id)
}

func (k Keeper) getShares(ctx sdk.Context, provider string) decimal.Decimal {
	position, found := k.getPositionByProvider(ctx, provider)
	if !found {
		return decimal.Zero()
	}
	return position.Shares
}

func (k Keeper) addShares(ctx sdk.Context, provider string, amount decimal.Decimal) {
	position, found := k.getPositionByProvider(ctx, provider)
	if !found {
		position = types.LPPosition{Id: k.getNextLPPositionID(ctx), Provider: provider, Shares: decimal.Zero()}
	}
	position.Shares = position.Shares.Add(amount)
	k.SetLPPosition(ctx, position)
}

func (k Keeper) subShares(ctx sdk.Context, provider string, amount decimal.Decimal) {
	position, found := k.getPositionByProvider(ctx, provider)
	if !found {
		return
	}
	position.Shares = position.Shares.Sub(amount)
	k.SetLPPosition(ctx, position)
}

// IterateLPPositions walks every LP position, for genesis export.
func (k Keeper) IterateLPPositions(ctx sdk.Context, fn func(types.LPPosition) bool) {
	store := ctx.KVStore(k.storeKey)
	pStore := prefix.NewStore(store, types.LPPositionPrefix)
	iter := pStore.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var position types.LPPosition
		if err := json.Unmarshal(iter.Value(), &position); err != nil {
			continue
		}
		if !fn(position) {
			return
		}
	}
}
