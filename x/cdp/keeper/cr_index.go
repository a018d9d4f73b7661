package keeper

import (
	"math/big"

	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// sortableDecWidth is the fixed byte width of an encoded key component.
// pkg/decimal carries 18 fractional digits (cosmossdk.io/math.LegacyDec's
// own precision). sortableDecBytes encodes a
// Decimal's 1e18-scaled integer representation as a fixed-width big-endian
// byte string, so that byte-lexicographic order over the prefix store's
// natural iteration matches numeric order, the same technique cosmos-sdk
// itself uses to key the staking module's validator-by-power index.
const sortableDecWidth = 40 // bytes; generous headroom over realistic CR magnitudes

// sortableDecBytes encodes a non-negative Decimal for use as an ordered
// store key component. Collateralization ratios are never negative, so no
// sign handling is required.
func sortableDecBytes(d decimal.Decimal) []byte {
	scaled := d.LegacyDec().BigInt() // already scaled by 1e18 internally
	if scaled.Sign() < 0 {
		scaled = big.NewInt(0)
	}
	out := make([]byte, sortableDecWidth)
	b := scaled.Bytes()
	if len(b) > sortableDecWidth {
		// Overflow of the reserved width is a configuration error (CR
		// values this large indicate a broken price feed); clamp to max
		// rather than silently misorder the index.
		for i := range out {
			out[i] = 0xff
		}
		return out
	}
	copy(out[sortableDecWidth-len(b):], b)
	return out
}

// InsertCrIndex places a Healthy cdp id into parent's ordered-CR index at
// key cr. Returns ErrCRWindowFull if the bucket at that exact key already
// holds maxVectorLength entries.
func (k Keeper) InsertCrIndex(ctx sdk.Context, parentDenom string, cr decimal.Decimal, cdpId uint64) error {
	store := ctx.KVStore(k.storeKey)
	key := types.GetCrIndexKey(parentDenom, sortableDecBytes(cr), cdpId)
	if store.Has(key) {
		return nil
	}
	if k.bucketSize(ctx, parentDenom, cr) >= k.GetParams(ctx).MaxVectorLength {
		return types.ErrCRWindowFull
	}
	store.Set(key, []byte{0x01})
	return nil
}

// bucketSize counts entries already present at exactly this CR for this
// parent. Ties share a bucket.
func (k Keeper) bucketSize(ctx sdk.Context, parentDenom string, cr decimal.Decimal) uint64 {
	store := ctx.KVStore(k.storeKey)
	prefixBytes := append(types.GetCrIndexPrefixForParent(parentDenom), sortableDecBytes(cr)...)
	pStore := prefix.NewStore(store, prefixBytes)
	iter := pStore.Iterator(nil, nil)
	defer iter.Close()
	var n uint64
	for ; iter.Valid(); iter.Next() {
		n++
	}
	return n
}

// RemoveCrIndex removes a cdp id from parent's ordered-CR index at key cr.
func (k Keeper) RemoveCrIndex(ctx sdk.Context, parentDenom string, cr decimal.Decimal, cdpId uint64) {
	store := ctx.KVStore(k.storeKey)
	store.Delete(types.GetCrIndexKey(parentDenom, sortableDecBytes(cr), cdpId))
}

// FirstCrIndex returns the cdp id with the smallest indexed CR for parent,
// or ok=false if the index is empty.
func (k Keeper) FirstCrIndex(ctx sdk.Context, parentDenom string) (cdpId uint64, ok bool) {
	store := ctx.KVStore(k.storeKey)
	pStore := prefix.NewStore(store, types.GetCrIndexPrefixForParent(parentDenom))
	iter := pStore.Iterator(nil, nil)
	defer iter.Close()
	if !iter.Valid() {
		return 0, false
	}
	key := iter.Key()
	cdpId = sdk.BigEndianToUint64(key[len(key)-8:])
	return cdpId, true
}

// LastCrIndex returns the cdp id with the largest indexed CR for parent,
// or ok=false if the index is empty. ForceMint walks the index with
// RangeDescending instead.
func (k Keeper) LastCrIndex(ctx sdk.Context, parentDenom string) (cdpId uint64, ok bool) {
	store := ctx.KVStore(k.storeKey)
	pStore := prefix.NewStore(store, types.GetCrIndexPrefixForParent(parentDenom))
	iter := pStore.ReverseIterator(nil, nil)
	defer iter.Close()
	if !iter.Valid() {
		return 0, false
	}
	key := iter.Key()
	cdpId = sdk.BigEndianToUint64(key[len(key)-8:])
	return cdpId, true
}

// RangeDescending walks the CR index for parent from the highest CR down,
// invoking fn for each cdp id until fn returns false or the index is
// exhausted. Used by forceMint, which scans descending CRs for a cdp whose
// collateral denom matches the payment. Unbounded; the cdp count per
// collateral is expected to be modest.
func (k Keeper) RangeDescending(ctx sdk.Context, parentDenom string, fn func(cdpId uint64) bool) {
	store := ctx.KVStore(k.storeKey)
	pStore := prefix.NewStore(store, types.GetCrIndexPrefixForParent(parentDenom))
	iter := pStore.ReverseIterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key := iter.Key()
		cdpId := sdk.BigEndianToUint64(key[len(key)-8:])
		if !fn(cdpId) {
			return
		}
	}
}

// NextMarkerPlacing returns a fresh, never-reused monotonic decimal
// placement id.
func (k Keeper) NextMarkerPlacing(ctx sdk.Context) decimal.Decimal {
	n := k.nextID(ctx, types.MarkerPlacingCounterKey)
	return decimal.NewFromInt64(int64(n))
}

// EnqueueMarked adds a cdp id to the global markedCdps queue at placing.
func (k Keeper) EnqueueMarked(ctx sdk.Context, placing decimal.Decimal, cdpId uint64) {
	store := ctx.KVStore(k.storeKey)
	key := types.GetMarkedQueueKey(sortableDecBytes(placing))
	store.Set(key, sdk.Uint64ToBigEndian(cdpId))
}

// DequeueMarked removes a cdp id from the markedCdps queue at placing.
func (k Keeper) DequeueMarked(ctx sdk.Context, placing decimal.Decimal) {
	store := ctx.KVStore(k.storeKey)
	store.Delete(types.GetMarkedQueueKey(sortableDecBytes(placing)))
}

// CountMarkedQueue returns the number of cdps currently enqueued in
// markedCdps.
func (k Keeper) CountMarkedQueue(ctx sdk.Context) uint64 {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.MarkedQueuePrefix)
	defer iter.Close()
	var n uint64
	for ; iter.Valid(); iter.Next() {
		n++
	}
	return n
}

// FindInMarkedQueue walks markedCdps in placement order from the head and
// reports whether wantCdpId appears at or after position skip (ok).
// outOfRange is true when skip > 0 and the queue has no entry at or after
// that position; ok is then false as well.
func (k Keeper) FindInMarkedQueue(ctx sdk.Context, skip uint64, wantCdpId uint64) (ok bool, outOfRange bool) {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.MarkedQueuePrefix)
	defer iter.Close()
	var i uint64
	seenAny := false
	for ; iter.Valid(); iter.Next() {
		if i >= skip {
			seenAny = true
			if sdk.BigEndianToUint64(iter.Value()) == wantCdpId {
				return true, false
			}
		}
		i++
	}
	if !seenAny && skip > 0 {
		return false, true
	}
	return false, false
}
