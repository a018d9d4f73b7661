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
	"github.com/stabilis-labs/stab-protocol/x/peg/keeper"
	"github.com/stabilis-labs/stab-protocol/x/peg/types"
)

type mockBankKeeper struct {
	balances map[string]sdk.Coins
}

func newMockBankKeeper() *mockBankKeeper {
	return &mockBankKeeper{balances: make(map[string]sdk.Coins)}
}

func (m *mockBankKeeper) fund(addr sdk.AccAddress, coins sdk.Coins) {
	m.balances[addr.String()] = m.balances[addr.String()].Add(coins...)
}

func (m *mockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.balances[addr.String()].AmountOf(denom))
}

// moduleAccountKey keys a module account's balance the same way GetBalance
// looks it up: by the bech32 address the sdk derives from the module name,
// not the bare name string, so a reward-vault funding in a test and the
// keeper's own GetBalance/SendCoinsFromModuleToAccount calls agree on where
// the module's balance lives.
func moduleAccountKey(moduleName string) string {
	return sdk.AccAddress(sdk.NewModuleAddress(moduleName)).String()
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	from := moduleAccountKey(senderModule)
	if !m.balances[from].IsAllGTE(amt) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[from] = m.balances[from].Sub(amt...)
	to := recipientAddr.String()
	m.balances[to] = m.balances[to].Add(amt...)
	return nil
}

type mockCdpKeeper struct {
	recomputeCalls int
}

func (m *mockCdpKeeper) RecomputeAllLcrs(sdk.Context) { m.recomputeCalls++ }

type mockOracleKeeper struct {
	prices map[string]decimal.Decimal
}

func (m mockOracleKeeper) GetAggregatedPrice(_ sdk.Context, asset string) (decimal.Decimal, bool) {
	p, ok := m.prices[asset]
	return p, ok
}

type mockAmmPoolKeeper struct {
	price decimal.Decimal
}

func (m mockAmmPoolKeeper) GetPrice(sdk.Context) decimal.Decimal { return m.price }

type testFixture struct {
	ctx    sdk.Context
	k      keeper.Keeper
	bank   *mockBankKeeper
	cdp    *mockCdpKeeper
	oracle mockOracleKeeper
}

func newTestFixture(t *testing.T) testFixture {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	memKey := storetypes.NewMemoryStoreKey(types.MemStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(memKey, storetypes.StoreTypeMemory, nil)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1, Time: time.Now()}, false, log.NewNopLogger())

	bank := newMockBankKeeper()
	cdpK := &mockCdpKeeper{}
	oracle := mockOracleKeeper{prices: map[string]decimal.Decimal{"ustake": decimal.One()}}
	ammPool := mockAmmPoolKeeper{price: decimal.One()}

	k := keeper.NewKeeper(nil, storeKey, memKey, bank, cdpK, oracle, ammPool, "ustake")
	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))

	return testFixture{ctx: ctx, k: *k, bank: bank, cdp: cdpK, oracle: oracle}
}

func TestTickGatedByUpdateDelay(t *testing.T) {
	f := newTestFixture(t)

	// DefaultPegState leaves LastUpdate at the zero time, so the very first
	// tick always fires regardless of elapsed time.
	ticked, _, err := f.k.Tick(f.ctx, decimal.One())
	require.NoError(t, err)
	require.True(t, ticked)

	ticked, _, err = f.k.Tick(f.ctx, decimal.One())
	require.NoError(t, err)
	require.False(t, ticked, "a second tick inside the update delay must be held back")
}

func TestTickAdvancesAfterDelayAndRecomputesLcrs(t *testing.T) {
	f := newTestFixture(t)

	_, _, err := f.k.Tick(f.ctx, decimal.One())
	require.NoError(t, err)
	require.Equal(t, 1, f.cdp.recomputeCalls)

	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(6 * time.Minute))
	ticked, elapsed, err := f.k.Tick(f.ctx, decimal.MustNewFromString("1.5"))
	require.NoError(t, err)
	require.True(t, ticked)
	require.True(t, elapsed.GTE(decimal.NewFromInt64(5)))
	require.Equal(t, 2, f.cdp.recomputeCalls)
}

func TestTickClampsInterestRateToBounds(t *testing.T) {
	f := newTestFixture(t)
	params := f.k.GetParams(f.ctx)
	params.UpdateDelayMinutes = 1
	params.Kp = decimal.MustNewFromString("10")
	params.Ki = decimal.Zero()
	params.AllowedDeviation = decimal.Zero()
	require.NoError(t, f.k.SetParams(f.ctx, params))

	_, _, err := f.k.Tick(f.ctx, decimal.One())
	require.NoError(t, err)

	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(2 * time.Minute))
	_, _, err = f.k.Tick(f.ctx, decimal.MustNewFromString("2"))
	require.NoError(t, err)

	state := f.k.GetState(f.ctx)
	require.True(t, state.InterestRate.GTE(params.MinInterestRate))
	require.True(t, state.InterestRate.LTE(params.MaxInterestRate))
}

func TestMarketPriceCombinesPoolAndOracle(t *testing.T) {
	f := newTestFixture(t)
	f.oracle.prices["ustake"] = decimal.NewFromInt64(3)

	price, err := f.k.MarketPrice(f.ctx)
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.NewFromInt64(3)), "got %s", price)
}

func TestMarketPriceErrorsWithoutOraclePrice(t *testing.T) {
	f := newTestFixture(t)
	delete(f.oracle.prices, "ustake")

	_, err := f.k.MarketPrice(f.ctx)
	require.Error(t, err)
}

func TestUpdatePaysCallerFromRewardVault(t *testing.T) {
	f := newTestFixture(t)
	params := f.k.GetParams(f.ctx)
	params.RewardPerSecond = decimal.MustNewFromString("0.01")
	require.NoError(t, f.k.SetParams(f.ctx, params))

	f.bank.fund(sdk.AccAddress(sdk.NewModuleAddress(types.ModuleName)), sdk.NewCoins(sdk.NewInt64Coin("ustab", 1000)))

	// The first tick only starts the controller's clock; the reward accrues
	// over the 10 minutes after it.
	_, _, err := f.k.Tick(f.ctx, decimal.One())
	require.NoError(t, err)

	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(10 * time.Minute))
	caller := sdk.AccAddress("caller______________")
	ticked, err := f.k.Update(f.ctx, caller)
	require.NoError(t, err)
	require.True(t, ticked)

	paid := f.bank.GetBalance(f.ctx, caller, "ustab")
	require.True(t, paid.Amount.IsPositive())
}

func TestUpdateDoesNotFailOnEmptyRewardVault(t *testing.T) {
	f := newTestFixture(t)
	params := f.k.GetParams(f.ctx)
	params.RewardPerSecond = decimal.MustNewFromString("1000")
	require.NoError(t, f.k.SetParams(f.ctx, params))

	// Start the controller's clock so the next update owes a non-zero reward
	// that the unfunded vault cannot cover.
	_, _, err := f.k.Tick(f.ctx, decimal.One())
	require.NoError(t, err)
	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(10 * time.Minute))

	caller := sdk.AccAddress("caller______________")
	ticked, err := f.k.Update(f.ctx, caller)
	require.NoError(t, err)
	require.True(t, ticked)

	paid := f.bank.GetBalance(f.ctx, caller, "ustab")
	require.True(t, paid.Amount.IsZero(), "an underfunded reward vault must pay nothing rather than error")
}
