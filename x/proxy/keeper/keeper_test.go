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
	cdptypes "github.com/stabilis-labs/stab-protocol/x/cdp/types"
	pegtypes "github.com/stabilis-labs/stab-protocol/x/peg/types"
	"github.com/stabilis-labs/stab-protocol/x/proxy/keeper"
	"github.com/stabilis-labs/stab-protocol/x/proxy/types"
)

// mockCdpKeeper is a minimal stand-in for x/cdp, recording whatever the
// proxy forwards into it so tests can assert on the forward rather than
// re-deriving cdp's own behavior.
type mockCdpKeeper struct {
	params     cdptypes.Params
	prices     map[string]decimal.Decimal
	collaterals []cdptypes.CollateralInfo
}

func (m *mockCdpKeeper) GetParams(sdk.Context) cdptypes.Params    { return m.params }
func (m *mockCdpKeeper) SetParams(_ sdk.Context, p cdptypes.Params) error {
	m.params = p
	return nil
}

func (m *mockCdpKeeper) ChangeCollateralPrice(_ sdk.Context, denom string, newPrice decimal.Decimal) error {
	if m.prices == nil {
		m.prices = make(map[string]decimal.Decimal)
	}
	m.prices[denom] = newPrice
	return nil
}

func (m *mockCdpKeeper) AddCollateral(sdk.Context, string, decimal.Decimal, decimal.Decimal, decimal.Decimal) error {
	return nil
}

func (m *mockCdpKeeper) AddPoolCollateral(sdk.Context, string, string, cdptypes.PoolUnitKind, string, decimal.Decimal) error {
	return nil
}

func (m *mockCdpKeeper) EditCollateral(sdk.Context, string, decimal.Decimal, bool, decimal.Decimal) error {
	return nil
}

func (m *mockCdpKeeper) EditPoolCollateral(sdk.Context, string, bool, decimal.Decimal) error {
	return nil
}

func (m *mockCdpKeeper) IterateCollateralInfos(_ sdk.Context, fn func(cdptypes.CollateralInfo) bool) {
	for _, c := range m.collaterals {
		if !fn(c) {
			return
		}
	}
}

type mockPegKeeper struct {
	params      pegtypes.Params
	updateCalls int
	ticked      bool
	updateErr   error
}

func (m *mockPegKeeper) GetParams(sdk.Context) pegtypes.Params { return m.params }
func (m *mockPegKeeper) SetParams(_ sdk.Context, p pegtypes.Params) error {
	m.params = p
	return nil
}

func (m *mockPegKeeper) Update(sdk.Context, sdk.AccAddress) (bool, error) {
	m.updateCalls++
	return m.ticked, m.updateErr
}

type mockOracleKeeper struct {
	prices map[string]decimal.Decimal
}

func (m mockOracleKeeper) GetAggregatedPrice(_ sdk.Context, asset string) (decimal.Decimal, bool) {
	p, ok := m.prices[asset]
	return p, ok
}

type testFixture struct {
	ctx    sdk.Context
	k      keeper.Keeper
	cdp    *mockCdpKeeper
	peg    *mockPegKeeper
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

	cdpK := &mockCdpKeeper{}
	pegK := &mockPegKeeper{ticked: true}
	oracle := mockOracleKeeper{prices: make(map[string]decimal.Decimal)}

	k := keeper.NewKeeper(nil, storeKey, memKey, cdpK, pegK, oracle)
	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))

	return testFixture{ctx: ctx, k: *k, cdp: cdpK, peg: pegK, oracle: oracle}
}

func TestGrantBadgeBootstrapsWithoutQuorum(t *testing.T) {
	f := newTestFixture(t)

	err := f.k.GrantBadge(f.ctx, nil, "founder", decimal.One())
	require.NoError(t, err, "the first-ever grant must not require any quorum, or no badge could ever exist")

	holding, found := f.k.GetBadge(f.ctx, "founder")
	require.True(t, found)
	require.True(t, holding.Share.Equal(decimal.One()))
}

func TestGrantBadgeAfterBootstrapRequiresQuorum(t *testing.T) {
	f := newTestFixture(t)
	require.NoError(t, f.k.GrantBadge(f.ctx, nil, "founder", decimal.One()))

	err := f.k.GrantBadge(f.ctx, []string{"stranger"}, "newcomer", decimal.MustNewFromString("0.1"))
	require.ErrorIs(t, err, types.ErrInsufficientCapability)

	err = f.k.GrantBadge(f.ctx, []string{"founder"}, "newcomer", decimal.MustNewFromString("0.1"))
	require.NoError(t, err)
}

func TestHasQuorumSumsUniqueSignersAndIgnoresUnknown(t *testing.T) {
	f := newTestFixture(t)
	require.NoError(t, f.k.GrantBadge(f.ctx, nil, "founder", decimal.One()))
	require.NoError(t, f.k.GrantBadge(f.ctx, []string{"founder"}, "alice", decimal.MustNewFromString("0.4")))
	require.NoError(t, f.k.GrantBadge(f.ctx, []string{"founder"}, "bob", decimal.MustNewFromString("0.4")))

	require.True(t, f.k.HasQuorum(f.ctx, []string{"alice", "bob"}), "0.8 combined share exceeds the default 0.75 threshold")

	// Duplicate signers and unknown strangers must not inflate the sum.
	require.False(t, f.k.HasQuorum(f.ctx, []string{"alice", "alice", "stranger"}))
}

func TestAdminForwardRejectedWithoutQuorum(t *testing.T) {
	f := newTestFixture(t)
	require.NoError(t, f.k.GrantBadge(f.ctx, nil, "alice", decimal.MustNewFromString("0.1")))

	err := f.k.ChangeCollateralPrice(f.ctx, []string{"alice"}, "ustake", decimal.NewFromInt64(5))
	require.ErrorIs(t, err, types.ErrInsufficientCapability)
	require.Nil(t, f.cdp.prices)
}

func TestAdminForwardAppliesOnceQuorumReached(t *testing.T) {
	f := newTestFixture(t)
	require.NoError(t, f.k.GrantBadge(f.ctx, nil, "alice", decimal.One()))

	require.NoError(t, f.k.ChangeCollateralPrice(f.ctx, []string{"alice"}, "ustake", decimal.NewFromInt64(5)))
	require.True(t, f.cdp.prices["ustake"].Equal(decimal.NewFromInt64(5)))

	require.NoError(t, f.k.SetPegKpKi(f.ctx, []string{"alice"}, decimal.MustNewFromString("2"), decimal.MustNewFromString("3")))
	require.True(t, f.peg.params.Kp.Equal(decimal.MustNewFromString("2")))
	require.True(t, f.peg.params.Ki.Equal(decimal.MustNewFromString("3")))

	require.NoError(t, f.k.SetStops(f.ctx, []string{"alice"}, true, false, false, false, false))
	require.True(t, f.cdp.params.LiquidationsStopped)
}

func TestUpdatePushesOracleAndOracleMisses(t *testing.T) {
	f := newTestFixture(t)
	f.cdp.collaterals = []cdptypes.CollateralInfo{
		{Denom: "ustake"},
		{Denom: "unknown"},
	}
	f.oracle.prices["ustake"] = decimal.NewFromInt64(7)

	caller := sdk.AccAddress("caller______________")
	ticked, err := f.k.Update(f.ctx, caller)
	require.NoError(t, err)
	require.True(t, ticked)

	require.True(t, f.cdp.prices["ustake"].Equal(decimal.NewFromInt64(7)))
	_, found := f.cdp.prices["unknown"]
	require.False(t, found, "a collateral with no oracle price must be skipped, not error out")
	require.Equal(t, 1, f.peg.updateCalls)
}

func TestUpdatePropagatesPegError(t *testing.T) {
	f := newTestFixture(t)
	f.peg.updateErr = types.ErrNotAuthorized

	_, err := f.k.Update(f.ctx, sdk.AccAddress("caller______________"))
	require.Error(t, err)
}
