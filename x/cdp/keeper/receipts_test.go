package keeper_test

import (
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

func TestRetrieveLeftoverAndBurnCdp(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	require.NoError(t, f.k.CloseCdp(f.ctx, owner, id, decimal.NewFromInt64(100)))

	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.True(t, cdp.Status.IsTerminal())
	require.True(t, cdp.CollateralAmount.IsZero(), "a normal close already returns all collateral, leaving nothing to retrieve")

	require.NoError(t, f.k.RetrieveLeftover(f.ctx, owner, id), "retrieving from an already-empty terminal cdp is a no-op, not an error")
	require.NoError(t, f.k.BurnCdp(f.ctx, owner, id))

	_, found = f.k.GetCdp(f.ctx, id)
	require.False(t, found)
}

func TestBurnCdpRejectsNonTerminalOrNonEmpty(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	err = f.k.BurnCdp(f.ctx, owner, id)
	require.ErrorIs(t, err, types.ErrNotBurnable, "a still-Healthy cdp cannot be burned")
}

func TestBurnMarkerRequiresUsed(t *testing.T) {
	f := newTestFixture(t)
	owner := sdk.AccAddress("owner_______________")
	openMarkableCdp(t, f, owner)

	marker, err := f.k.MarkForLiquidation(f.ctx, "uatom")
	require.NoError(t, err)

	err = f.k.BurnMarker(f.ctx, marker.Id)
	require.ErrorIs(t, err, types.ErrNotBurnable, "an unused marker still backs an open cdp and cannot be burned")

	liquidator := sdk.AccAddress("liquidator__________")
	f.bank.fund(liquidator, sdk.NewCoins(sdk.NewInt64Coin(types.StabDenom, 100)))
	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(f.k.GetParams(f.ctx).LiquidationDelay() + time.Minute))
	_, err = f.k.LiquidatePositionWithMarker(f.ctx, liquidator, marker.Id, decimal.NewFromInt64(100))
	require.NoError(t, err)

	require.NoError(t, f.k.BurnMarker(f.ctx, marker.Id))

	_, found := f.k.GetCdpMarker(f.ctx, marker.Id)
	require.False(t, found)
}

func TestBurnLiquidationReceiptIsPermissionless(t *testing.T) {
	f := newTestFixture(t)
	owner := sdk.AccAddress("owner_______________")
	openMarkableCdp(t, f, owner)

	marker, err := f.k.MarkForLiquidation(f.ctx, "uatom")
	require.NoError(t, err)

	liquidator := sdk.AccAddress("liquidator__________")
	f.bank.fund(liquidator, sdk.NewCoins(sdk.NewInt64Coin(types.StabDenom, 100)))
	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(f.k.GetParams(f.ctx).LiquidationDelay() + time.Minute))
	_, err = f.k.LiquidatePositionWithMarker(f.ctx, liquidator, marker.Id, decimal.NewFromInt64(100))
	require.NoError(t, err)

	var found uint64
	f.k.IterateLiquidationReceipts(f.ctx, func(r types.LiquidationReceipt) bool {
		found = r.Id
		return false
	})
	require.NotZero(t, found)

	require.NoError(t, f.k.BurnLiquidationReceipt(f.ctx, found))

	_, ok := f.k.GetLiquidationReceipt(f.ctx, found)
	require.False(t, ok)
}
