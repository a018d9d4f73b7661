package keeper_test

import (
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// openMarkableCdp opens a cdp with collateral priced high enough to clear
// the initial collateralization check, then drops the price so the cdp's
// stored CollateralStabRatio falls under the parent's recomputed Lcr,
// making it eligible for MarkForLiquidation.
func openMarkableCdp(t *testing.T, f testFixture, owner sdk.AccAddress) uint64 {
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(100), decimal.One())
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))

	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	require.NoError(t, f.k.ChangeCollateralPrice(f.ctx, "uatom", decimal.MustNewFromString("0.1")))
	return id
}

func TestMarkForLiquidationNoLoans(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(100), decimal.One())

	_, err := f.k.MarkForLiquidation(f.ctx, "uatom")
	require.ErrorIs(t, err, types.ErrNoLoans)
}

func TestMarkForLiquidationRejectsHealthyCdp(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(100), decimal.One())
	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	_, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	_, err = f.k.MarkForLiquidation(f.ctx, "uatom")
	require.ErrorIs(t, err, types.ErrMarkNotEligible)
}

func TestMarkForLiquidationMarksUndercollateralizedCdp(t *testing.T) {
	f := newTestFixture(t)
	owner := sdk.AccAddress("owner_______________")
	id := openMarkableCdp(t, f, owner)

	marker, err := f.k.MarkForLiquidation(f.ctx, "uatom")
	require.NoError(t, err)
	require.Equal(t, types.CdpMarkTypeMarked, marker.MarkType)
	require.Equal(t, id, marker.MarkedCdpId)

	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.Equal(t, types.CdpStatusMarked, cdp.Status)
	require.Equal(t, marker.Id, cdp.MarkerId)
}

func TestLiquidatePositionWithMarkerTooEarly(t *testing.T) {
	f := newTestFixture(t)
	owner := sdk.AccAddress("owner_______________")
	openMarkableCdp(t, f, owner)

	marker, err := f.k.MarkForLiquidation(f.ctx, "uatom")
	require.NoError(t, err)

	liquidator := sdk.AccAddress("liquidator__________")
	f.bank.fund(liquidator, sdk.NewCoins(sdk.NewInt64Coin(types.StabDenom, 100)))

	_, err = f.k.LiquidatePositionWithMarker(f.ctx, liquidator, marker.Id, decimal.NewFromInt64(100))
	require.ErrorIs(t, err, types.ErrTooEarly)
}

// TestLiquidatePositionWithMarkerSucceeds covers the "mark & liquidate"
// scenario: the collateral has fallen so far underwater (crPct below
// 1+liquidatorFine) that the liquidator receives the cdp's entire
// remaining collateral and the treasury receives nothing.
func TestLiquidatePositionWithMarkerSucceeds(t *testing.T) {
	f := newTestFixture(t)
	owner := sdk.AccAddress("owner_______________")
	id := openMarkableCdp(t, f, owner)

	marker, err := f.k.MarkForLiquidation(f.ctx, "uatom")
	require.NoError(t, err)

	liquidator := sdk.AccAddress("liquidator__________")
	f.bank.fund(liquidator, sdk.NewCoins(sdk.NewInt64Coin(types.StabDenom, 100)))

	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(f.k.GetParams(f.ctx).LiquidationDelay() + time.Minute))

	excess, err := f.k.LiquidatePositionWithMarker(f.ctx, liquidator, marker.Id, decimal.NewFromInt64(100))
	require.NoError(t, err)
	require.True(t, excess.IsZero())

	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.Equal(t, types.CdpStatusLiquidated, cdp.Status)
	require.True(t, cdp.MintedStab.IsZero())

	liquidatorBalance := f.bank.GetBalance(f.ctx, liquidator, "uatom")
	require.Equal(t, int64(1000), liquidatorBalance.Amount.Int64(), "a deeply underwater cdp hands its entire collateral to the liquidator")

	parent, found := f.k.GetCollateralInfo(f.ctx, "uatom")
	require.True(t, found)
	require.True(t, parent.MintedStab.IsZero())
}

func TestLiquidatePositionWithMarkerRejectsUsedMarker(t *testing.T) {
	f := newTestFixture(t)
	owner := sdk.AccAddress("owner_______________")
	openMarkableCdp(t, f, owner)

	marker, err := f.k.MarkForLiquidation(f.ctx, "uatom")
	require.NoError(t, err)

	liquidator := sdk.AccAddress("liquidator__________")
	f.bank.fund(liquidator, sdk.NewCoins(sdk.NewInt64Coin(types.StabDenom, 200)))
	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(f.k.GetParams(f.ctx).LiquidationDelay() + time.Minute))

	_, err = f.k.LiquidatePositionWithMarker(f.ctx, liquidator, marker.Id, decimal.NewFromInt64(100))
	require.NoError(t, err)

	_, err = f.k.LiquidatePositionWithMarker(f.ctx, liquidator, marker.Id, decimal.NewFromInt64(100))
	require.ErrorIs(t, err, types.ErrMarkerAlreadyUsed)
}
