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
	"github.com/stabilis-labs/stab-protocol/x/cdp/keeper"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// mockBankKeeper tracks per-account and per-module balances, following
// x/inheritance/keeper/keeper_suite_test.go's MockBankKeeper, extended with
// Mint/Burn since the cdp engine mints and burns STAB directly.
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

func (m *mockBankKeeper) SendCoins(_ context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	from, to := fromAddr.String(), toAddr.String()
	if !m.balances[from].IsAllGTE(amt) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[from] = m.balances[from].Sub(amt...)
	m.balances[to] = m.balances[to].Add(amt...)
	return nil
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

func (m *mockBankKeeper) SendCoinsFromModuleToModule(_ context.Context, senderModule, recipientModule string, amt sdk.Coins) error {
	if !m.balances[senderModule].IsAllGTE(amt) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[senderModule] = m.balances[senderModule].Sub(amt...)
	m.balances[recipientModule] = m.balances[recipientModule].Add(amt...)
	return nil
}

func (m *mockBankKeeper) MintCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	m.balances[moduleName] = m.balances[moduleName].Add(amt...)
	return nil
}

func (m *mockBankKeeper) BurnCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	if !m.balances[moduleName].IsAllGTE(amt) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[moduleName] = m.balances[moduleName].Sub(amt...)
	return nil
}

type mockAccountKeeper struct{}

func (mockAccountKeeper) GetModuleAddress(moduleName string) sdk.AccAddress {
	return sdk.AccAddress(moduleName)
}

// mockPegKeeper returns a fixed internal price, standing in for x/peg.
type mockPegKeeper struct {
	internalPrice decimal.Decimal
}

func (m mockPegKeeper) GetInternalPrice(sdk.Context) decimal.Decimal { return m.internalPrice }

type mockOracleKeeper struct{}

func (mockOracleKeeper) GetAggregatedPrice(sdk.Context, string) (decimal.Decimal, bool) {
	return decimal.Decimal{}, false
}

type mockAmmPoolKeeper struct{}

func (mockAmmPoolKeeper) GetPrice(sdk.Context) decimal.Decimal { return decimal.Zero() }

type mockPoolUnitSource struct{}

func (mockPoolUnitSource) RedemptionValue(_ sdk.Context, _ types.PoolUnitKind, _ string, amount decimal.Decimal) (decimal.Decimal, error) {
	return amount, nil
}

// testFixture bundles a freshly constructed Keeper with the mocks backing
// its expected-keeper dependencies, so individual tests can reach into the
// bank balances or swap the internal price.
type testFixture struct {
	ctx  sdk.Context
	k    keeper.Keeper
	bank *mockBankKeeper
	peg  *mockPegKeeper
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
	peg := &mockPegKeeper{internalPrice: decimal.One()}
	k := keeper.NewKeeper(nil, storeKey, memKey, bank, mockAccountKeeper{}, peg, mockOracleKeeper{}, mockAmmPoolKeeper{}, mockPoolUnitSource{})
	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))

	return testFixture{ctx: ctx, k: *k, bank: bank, peg: peg}
}

func (f testFixture) registerCollateral(t *testing.T, denom string, mcr, price, maxStabShare decimal.Decimal) {
	require.NoError(t, f.k.AddCollateral(f.ctx, denom, mcr, price, maxStabShare))
}

// TestOpenAndCloseCdpRoundTrips covers the "Open & close" end-to-end
// scenario: collateral goes in, STAB comes out, and closing returns the
// collateral while burning exactly what was minted.
func TestOpenAndCloseCdpRoundTrips(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))

	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.Equal(t, types.CdpStatusHealthy, cdp.Status)
	require.True(t, cdp.MintedStab.Equal(decimal.NewFromInt64(100)))

	ownerStab := f.bank.GetBalance(f.ctx, owner, types.StabDenom)
	require.Equal(t, int64(100), ownerStab.Amount.Int64())

	parent, found := f.k.GetCollateralInfo(f.ctx, "uatom")
	require.True(t, found)
	require.True(t, parent.MintedStab.Equal(decimal.NewFromInt64(100)))

	require.NoError(t, f.k.CloseCdp(f.ctx, owner, id, decimal.NewFromInt64(100)))

	cdp, found = f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.Equal(t, types.CdpStatusClosed, cdp.Status)
	require.True(t, cdp.CollateralAmount.IsZero())

	collateralBack := f.bank.GetBalance(f.ctx, owner, "uatom")
	require.Equal(t, int64(1000), collateralBack.Amount.Int64())

	parent, found = f.k.GetCollateralInfo(f.ctx, "uatom")
	require.True(t, found)
	require.True(t, parent.MintedStab.IsZero(), "closing should fully unwind the parent's minted-stab accounting")
}

func TestOpenCdpRejectsInsufficientCollateral(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 10)))

	_, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 10), decimal.NewFromInt64(100))
	require.ErrorIs(t, err, types.ErrInsufficientCollateral)
}

func TestOpenCdpRejectsBelowMinimumMint(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	params := f.k.GetParams(f.ctx)
	params.MinimumMint = decimal.NewFromInt64(50)
	require.NoError(t, f.k.SetParams(f.ctx, params))

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))

	_, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(10))
	require.ErrorIs(t, err, types.ErrBelowMinimumMint)
}

// TestOpenCdpRejectsShareCapExceeded checks the Open Question #1 resolution:
// the share-cap check runs before any coins move, against a parent whose
// MaxStabShare is already saturated by an existing CDP.
func TestOpenCdpRejectsShareCapExceeded(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.MustNewFromString("0.5"))
	f.registerCollateral(t, "uosmo", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 100000), sdk.NewInt64Coin("uosmo", 10000)))

	_, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uosmo", 10000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	// With 100 STAB already minted against uosmo, this mint brings uatom's
	// share to 100/200 = 0.5, exactly at its cap.
	_, err = f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 10000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	before := f.bank.GetBalance(f.ctx, owner, "uatom")

	// Another 100 STAB would lift uatom's share to 200/300 > the 0.5 cap, so
	// the mint must be rejected without moving collateral.
	_, err = f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 10000), decimal.NewFromInt64(100))
	require.ErrorIs(t, err, types.ErrShareCapExceeded)

	after := f.bank.GetBalance(f.ctx, owner, "uatom")
	require.Equal(t, before.Amount, after.Amount, "a rejected mint must not move collateral")
}

func TestCloseCdpRejectsNonOwner(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	stranger := sdk.AccAddress("stranger____________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))

	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	err = f.k.CloseCdp(f.ctx, stranger, id, decimal.NewFromInt64(100))
	require.ErrorIs(t, err, types.ErrNotOwner)
}

func TestCloseCdpRejectsInsufficientPayment(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))

	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	err = f.k.CloseCdp(f.ctx, owner, id, decimal.NewFromInt64(99))
	require.ErrorIs(t, err, types.ErrInsufficientPayment)
}

func TestRecomputeAllLcrsFollowsInternalPrice(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	f.peg.internalPrice = decimal.NewFromInt64(2)
	f.k.RecomputeAllLcrs(f.ctx)

	info, found := f.k.GetCollateralInfo(f.ctx, "uatom")
	require.True(t, found)
	// lcr = mcr * internalPrice / usdPrice = 1.5 * 2 / 10 = 0.3
	require.True(t, info.Lcr.Equal(decimal.MustNewFromString("0.3")), "got lcr %s", info.Lcr)
}

func TestGetCirculatingStabSumsAcrossParents(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())
	f.registerCollateral(t, "uosmo", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(5), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000), sdk.NewInt64Coin("uosmo", 1000)))

	_, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)
	_, err = f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uosmo", 1000), decimal.NewFromInt64(50))
	require.NoError(t, err)

	require.True(t, f.k.GetCirculatingStab(f.ctx).Equal(decimal.NewFromInt64(150)))
}
