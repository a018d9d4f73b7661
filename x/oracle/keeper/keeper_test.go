package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/api/cometbft/types/v2"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/oracle/keeper"
	"github.com/stabilis-labs/stab-protocol/x/oracle/types"
)

// newTestContext mounts an in-memory multistore and a fresh Keeper against
// it, following x/inheritance/keeper/keeper_suite_test.go's SetupTest.
func newTestContext(t *testing.T) (sdk.Context, keeper.Keeper) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	memKey := storetypes.NewMemoryStoreKey(types.MemStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(memKey, storetypes.StoreTypeMemory, nil)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1, Time: time.Now()}, false, log.NewNopLogger())
	k := keeper.NewKeeper(nil, storeKey, memKey)
	return ctx, *k
}

func TestSubmitPriceRejectsStaleTimestamp(t *testing.T) {
	ctx, k := newTestContext(t)

	require.NoError(t, k.SubmitPrice(ctx, "source1", "ATOM", decimal.MustNewFromString("10"), 1, 1))

	// A submission at the same block time does not strictly advance the
	// stored timestamp and must be rejected.
	err := k.SubmitPrice(ctx, "source1", "ATOM", decimal.MustNewFromString("11"), 1, 2)
	require.ErrorIs(t, err, types.ErrOracleStale)
}

func TestAggregateMedianOfThreeSources(t *testing.T) {
	ctx, k := newTestContext(t)
	require.NoError(t, k.SetParams(ctx, types.Params{
		MinSources:          1,
		MaxPriceAgeSeconds:  300,
		PriceDeviationLimit: decimal.MustNewFromString("1"),
	}))

	require.NoError(t, k.SubmitPrice(ctx, "a", "ATOM", decimal.MustNewFromString("9"), 1, 1))
	ctx = ctx.WithBlockTime(ctx.BlockTime().Add(time.Second))
	require.NoError(t, k.SubmitPrice(ctx, "b", "ATOM", decimal.MustNewFromString("10"), 1, 1))
	ctx = ctx.WithBlockTime(ctx.BlockTime().Add(time.Second))
	require.NoError(t, k.SubmitPrice(ctx, "c", "ATOM", decimal.MustNewFromString("11"), 1, 1))

	price, found := k.GetAggregatedPrice(ctx, "ATOM")
	require.True(t, found)
	require.True(t, price.Equal(decimal.MustNewFromString("10")), "median of 9,10,11 should be 10, got %s", price)
}

func TestAggregateIgnoresStaleFeeds(t *testing.T) {
	ctx, k := newTestContext(t)
	require.NoError(t, k.SetParams(ctx, types.Params{
		MinSources:          1,
		MaxPriceAgeSeconds:  60,
		PriceDeviationLimit: decimal.MustNewFromString("1"),
	}))

	require.NoError(t, k.SubmitPrice(ctx, "a", "ATOM", decimal.MustNewFromString("5"), 1, 1))
	ctx = ctx.WithBlockTime(ctx.BlockTime().Add(2 * time.Minute))
	require.NoError(t, k.SubmitPrice(ctx, "b", "ATOM", decimal.MustNewFromString("20"), 1, 1))

	price, found := k.GetAggregatedPrice(ctx, "ATOM")
	require.True(t, found)
	require.True(t, price.Equal(decimal.MustNewFromString("20")), "stale feed from 'a' should not pull the average, got %s", price)
}

func TestAggregateWithholdsBelowMinSources(t *testing.T) {
	ctx, k := newTestContext(t)
	require.NoError(t, k.SetParams(ctx, types.Params{
		MinSources:          2,
		MaxPriceAgeSeconds:  300,
		PriceDeviationLimit: decimal.MustNewFromString("1"),
	}))

	require.NoError(t, k.SubmitPrice(ctx, "a", "ATOM", decimal.MustNewFromString("5"), 1, 1))

	_, found := k.GetAggregatedPrice(ctx, "ATOM")
	require.False(t, found, "a single source should not satisfy MinSources=2")
}

func TestGetAggregatedPriceUnknownAsset(t *testing.T) {
	ctx, k := newTestContext(t)
	_, found := k.GetAggregatedPrice(ctx, "NOPE")
	require.False(t, found)
}
