package keeper

import (
	"encoding/json"
	"sort"

	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	shopspring "github.com/shopspring/decimal"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/oracle/types"
)

// SubmitPrice records source's latest quote for (asset, marketId), rejecting
// a timestamp that doesn't strictly advance the one already on file for
// that tuple, then recomputes the asset's aggregated price.
func (k Keeper) SubmitPrice(ctx sdk.Context, source, asset string, price decimal.Decimal, marketId, nonce uint64) error {
	key := types.GetPriceFeedKey(source, asset, marketId)
	store := ctx.KVStore(k.storeKey)
	if bz := store.Get(key); bz != nil {
		var existing types.PriceFeed
		if err := json.Unmarshal(bz, &existing); err == nil {
			if !ctx.BlockTime().After(existing.Timestamp) {
				return types.ErrOracleStale
			}
		}
	}
	feed := types.PriceFeed{
		Source:    source,
		Asset:     asset,
		MarketId:  marketId,
		Price:     price,
		Timestamp: ctx.BlockTime(),
		Nonce:     nonce,
	}
	bz, err := json.Marshal(feed)
	if err != nil {
		return err
	}
	store.Set(key, bz)

	k.aggregate(ctx, asset)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSubmitPrice,
		sdk.NewAttribute(types.AttributeKeySource, source),
		sdk.NewAttribute(types.AttributeKeyAsset, asset),
		sdk.NewAttribute(types.AttributeKeyPrice, price.String()),
	))
	return nil
}

// GetPrices returns every live feed across every (source, asset, marketId)
// tuple.
func (k Keeper) GetPrices(ctx sdk.Context) []types.PriceFeed {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.PriceFeedPrefix)
	defer iter.Close()
	var feeds []types.PriceFeed
	for ; iter.Valid(); iter.Next() {
		var feed types.PriceFeed
		if err := json.Unmarshal(iter.Value(), &feed); err != nil {
			continue
		}
		feeds = append(feeds, feed)
	}
	return feeds
}

// feedsForAsset returns every live feed for one asset, across sources and
// market ids.
func (k Keeper) feedsForAsset(ctx sdk.Context, asset string) []types.PriceFeed {
	var out []types.PriceFeed
	for _, feed := range k.GetPrices(ctx) {
		if feed.Asset == asset {
			out = append(out, feed)
		}
	}
	return out
}

// aggregate recomputes asset's AggregatedPrice as the mean of its non-stale
// feeds whose relative deviation from their median is within
// PriceDeviationLimit (all non-stale feeds if none are). Median/deviation
// arithmetic is done in
// shopspring/decimal, the general-purpose library the rest of the example
// pack uses for untrusted external price math, before the result is
// converted back into the protocol's own checked Decimal.
func (k Keeper) aggregate(ctx sdk.Context, asset string) {
	params := k.GetParams(ctx)
	maxAge := params.MaxPriceAge()

	var fresh []shopspring.Decimal
	for _, feed := range k.feedsForAsset(ctx, asset) {
		if ctx.BlockTime().Sub(feed.Timestamp) > maxAge {
			continue
		}
		d, err := shopspring.NewFromString(feed.Price.String())
		if err != nil {
			continue
		}
		fresh = append(fresh, d)
	}
	if uint32(len(fresh)) < params.MinSources || len(fresh) == 0 {
		return
	}

	sort.Slice(fresh, func(i, j int) bool { return fresh[i].Cmp(fresh[j]) < 0 })
	median := fresh[len(fresh)/2]
	if len(fresh)%2 == 0 {
		median = fresh[len(fresh)/2-1].Add(fresh[len(fresh)/2]).Div(shopspring.NewFromInt(2))
	}

	deviationLimit, err := shopspring.NewFromString(params.PriceDeviationLimit.String())
	if err != nil {
		return
	}
	var kept []shopspring.Decimal
	for _, d := range fresh {
		if median.IsZero() {
			kept = append(kept, d)
			continue
		}
		deviation := d.Sub(median).Abs().Div(median)
		if deviation.LessThanOrEqual(deviationLimit) {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		kept = fresh
	}

	sum := shopspring.Zero
	for _, d := range kept {
		sum = sum.Add(d)
	}
	avg := sum.Div(shopspring.NewFromInt(int64(len(kept))))

	price, err := decimal.NewFromString(avg.String())
	if err != nil {
		return
	}
	confidence, err := decimal.NewFromString(
		shopspring.NewFromInt(int64(len(kept))).
			Div(shopspring.NewFromInt(int64(len(fresh)))).String())
	if err != nil {
		confidence = decimal.One()
	}

	k.setAggregatedPrice(ctx, types.AggregatedPrice{
		Asset:      asset,
		Price:      price,
		NumSources: uint32(len(kept)),
		Confidence: confidence,
		LastUpdate: ctx.BlockTime(),
	})
}

// SetAggregatedPrice stores p directly, used by genesis import to restore
// aggregated prices without requiring a fresh quorum of feeds.
func (k Keeper) SetAggregatedPrice(ctx sdk.Context, p types.AggregatedPrice) {
	k.setAggregatedPrice(ctx, p)
}

func (k Keeper) setAggregatedPrice(ctx sdk.Context, p types.AggregatedPrice) {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	store.Set(types.GetAggregatedPriceKey(p.Asset), bz)
}

// GetAggregatedPrice returns the last computed price for asset, satisfying
// x/cdp/types.OracleKeeper and x/peg/types.OracleKeeper.
func (k Keeper) GetAggregatedPrice(ctx sdk.Context, asset string) (decimal.Decimal, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetAggregatedPriceKey(asset))
	if bz == nil {
		return decimal.Decimal{}, false
	}
	var p types.AggregatedPrice
	if err := json.Unmarshal(bz, &p); err != nil {
		return decimal.Decimal{}, false
	}
	return p.Price, true
}

// IterateAggregatedPrices walks every asset's last computed price, for
// genesis export.
func (k Keeper) IterateAggregatedPrices(ctx sdk.Context, fn func(types.AggregatedPrice) bool) {
	store := ctx.KVStore(k.storeKey)
	pStore := prefix.NewStore(store, types.AggregatedPricePrefix)
	iter := pStore.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var p types.AggregatedPrice
		if err := json.Unmarshal(iter.Value(), &p); err != nil {
			continue
		}
		if !fn(p) {
			return
		}
	}
}
