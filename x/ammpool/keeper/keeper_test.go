package keeper_test

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/api/cometbft/types/v2"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/ammpool/keeper"
	"github.com/stabilis-labs/stab-protocol/x/ammpool/types"
)

// mockBankKeeper is a balance-tracking stand-in for the bank module,
// following x/inheritance/keeper/keeper_suite_test.go's MockBankKeeper.
type mockBankKeeper struct {
	balances map[string]sdk.Coins
}

func newMockBankKeeper() *mockBankKeeper {
	return &mockBankKeeper{balances: make(map[string]sdk.Coins)}
}

func (m *mockBankKeeper) fund(addr sdk.AccAddress, coins sdk.Coins) {
	m.balances[addr.String()] = m.balances[addr.String()].Add(coins...)
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	from := senderAddr.String()
	if !m.balances[from].IsAllGTE(amt) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[from] = m.balances[from].Sub(amt...)
	m.balances[recipientModule] = m.balances[recipientModule].Add(amt...)
	return nil
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	if !m.balances[senderModule].IsAllGTE(amt) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[senderModule] = m.balances[senderModule].Sub(amt...)
	to := recipientAddr.String()
	m.balances[to] = m.balances[to].Add(amt...)
	return nil
}

func newTestContext(t *testing.T) (sdk.Context, keeper.Keeper, *mockBankKeeper) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	memKey := storetypes.NewMemoryStoreKey(types.MemStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(memKey, storetypes.StoreTypeMemory, nil)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1, Time: time.Now()}, false, log.NewNopLogger())
	bank := newMockBankKeeper()
	k := keeper.NewKeeper(nil, storeKey, memKey, bank)
	return ctx, *k, bank
}

func TestGetPriceZeroReserves(t *testing.T) {
	ctx, k, _ := newTestContext(t)
	require.True(t, k.GetPrice(ctx).IsZero())
}

func TestAddLiquidityBootstrapsAndPricesPool(t *testing.T) {
	ctx, k, bank := newTestContext(t)
	require.NoError(t, k.SetParams(ctx, types.Params{QuoteDenom: "uxrd", Fee: decimal.MustNewFromString("0.003")}))

	provider := sdk.AccAddress("provider____________")
	bank.fund(provider, sdk.NewCoins(sdk.NewInt64Coin("ustab", 1000), sdk.NewInt64Coin("uxrd", 1000)))

	shares, err := k.AddLiquidity(ctx, provider, decimal.NewFromInt64(1000), decimal.NewFromInt64(1000))
	require.NoError(t, err)
	require.True(t, shares.IsPositive())

	pool := k.GetPool(ctx)
	require.True(t, pool.StabReserve.Equal(decimal.NewFromInt64(1000)))
	require.True(t, pool.QuoteReserve.Equal(decimal.NewFromInt64(1000)))
	require.True(t, k.GetPrice(ctx).Equal(decimal.One()))
}

func TestSwapMovesPriceAndRespectsMinOut(t *testing.T) {
	ctx, k, bank := newTestContext(t)
	require.NoError(t, k.SetParams(ctx, types.Params{QuoteDenom: "uxrd", Fee: decimal.Zero()}))

	provider := sdk.AccAddress("provider____________")
	bank.fund(provider, sdk.NewCoins(sdk.NewInt64Coin("ustab", 1_000_000), sdk.NewInt64Coin("uxrd", 1_000_000)))
	_, err := k.AddLiquidity(ctx, provider, decimal.NewFromInt64(1_000_000), decimal.NewFromInt64(1_000_000))
	require.NoError(t, err)

	trader := sdk.AccAddress("trader______________")
	bank.fund(trader, sdk.NewCoins(sdk.NewInt64Coin("ustab", 1000)))

	out, err := k.Swap(ctx, trader, decimal.NewFromInt64(1000), true, decimal.Zero())
	require.NoError(t, err)
	require.True(t, out.IsPositive())
	require.True(t, out.LT(decimal.NewFromInt64(1000)), "constant-product slippage should give back less quote than stab put in")
	require.True(t, k.GetPrice(ctx).LT(decimal.One()), "selling stab into the pool should lower its quote price")

	// A minOut above what the trade can deliver must fail before any funds move.
	_, err = k.Swap(ctx, trader, decimal.NewFromInt64(1000), true, decimal.NewFromInt64(1_000_000))
	require.ErrorIs(t, err, types.ErrInsufficientInput)
}

func TestRemoveLiquidityRejectsUnownedShares(t *testing.T) {
	ctx, k, bank := newTestContext(t)
	require.NoError(t, k.SetParams(ctx, types.Params{QuoteDenom: "uxrd", Fee: decimal.Zero()}))

	provider := sdk.AccAddress("provider____________")
	bank.fund(provider, sdk.NewCoins(sdk.NewInt64Coin("ustab", 100), sdk.NewInt64Coin("uxrd", 100)))
	_, err := k.AddLiquidity(ctx, provider, decimal.NewFromInt64(100), decimal.NewFromInt64(100))
	require.NoError(t, err)

	stranger := sdk.AccAddress("stranger____________")
	_, _, err = k.RemoveLiquidity(ctx, stranger, decimal.NewFromInt64(1))
	require.ErrorIs(t, err, types.ErrInsufficientShare)
}

func TestAddThenRemoveLiquidityRoundTrips(t *testing.T) {
	ctx, k, bank := newTestContext(t)
	require.NoError(t, k.SetParams(ctx, types.Params{QuoteDenom: "uxrd", Fee: decimal.Zero()}))

	provider := sdk.AccAddress("provider____________")
	bank.fund(provider, sdk.NewCoins(sdk.NewInt64Coin("ustab", 500), sdk.NewInt64Coin("uxrd", 500)))
	shares, err := k.AddLiquidity(ctx, provider, decimal.NewFromInt64(500), decimal.NewFromInt64(500))
	require.NoError(t, err)

	stabOut, quoteOut, err := k.RemoveLiquidity(ctx, provider, shares)
	require.NoError(t, err)
	require.True(t, stabOut.Equal(decimal.NewFromInt64(500)))
	require.True(t, quoteOut.Equal(decimal.NewFromInt64(500)))

	pool := k.GetPool(ctx)
	require.True(t, pool.StabReserve.IsZero())
	require.True(t, pool.LpSupply.IsZero())
}
