package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// TestForceLiquidateFullPayoffClosesOutDebt covers repaying the entire
// debt of the lowest-CR cdp in one call: the cdp transitions straight to
// ForceLiquidated without ever passing through Marked.
func TestForceLiquidateFullPayoffClosesOutDebt(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	caller := sdk.AccAddress("caller______________")
	f.bank.fund(caller, sdk.NewCoins(sdk.NewInt64Coin(types.StabDenom, 100)))

	collateralTaken, err := f.k.ForceLiquidate(f.ctx, caller, "uatom", decimal.NewFromInt64(100), decimal.One(), false)
	require.NoError(t, err)
	require.True(t, collateralTaken.IsPositive())

	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.Equal(t, types.CdpStatusForceLiquidated, cdp.Status)
	require.True(t, cdp.MintedStab.IsZero())

	callerAtom := f.bank.GetBalance(f.ctx, caller, "uatom")
	require.Equal(t, collateralTaken.LegacyDec().TruncateInt(), callerAtom.Amount)

	callerStab := f.bank.GetBalance(f.ctx, caller, types.StabDenom)
	require.True(t, callerStab.Amount.IsZero(), "the full payment should have been burned")
}

func TestForceLiquidateRejectsMarkablePositionWhenAsserted(t *testing.T) {
	f := newTestFixture(t)
	owner := sdk.AccAddress("owner_______________")
	openMarkableCdp(t, f, owner)

	caller := sdk.AccAddress("caller______________")
	f.bank.fund(caller, sdk.NewCoins(sdk.NewInt64Coin(types.StabDenom, 100)))

	_, err := f.k.ForceLiquidate(f.ctx, caller, "uatom", decimal.NewFromInt64(100), decimal.One(), true)
	require.ErrorIs(t, err, types.ErrForceLiquidateMarkable)
}

func TestForceLiquidateNoLoans(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	caller := sdk.AccAddress("caller______________")
	_, err := f.k.ForceLiquidate(f.ctx, caller, "uatom", decimal.NewFromInt64(100), decimal.One(), false)
	require.ErrorIs(t, err, types.ErrNoLoans)
}
