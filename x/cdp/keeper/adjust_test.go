package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

func TestBorrowMoreMintsAgainstExistingCollateral(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(10))
	require.NoError(t, err)

	require.NoError(t, f.k.BorrowMore(f.ctx, owner, id, decimal.NewFromInt64(5)))

	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.True(t, cdp.MintedStab.Equal(decimal.NewFromInt64(15)))

	ownerStab := f.bank.GetBalance(f.ctx, owner, types.StabDenom)
	require.Equal(t, int64(15), ownerStab.Amount.Int64())
}

func TestBorrowMoreRejectsNonOwner(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	stranger := sdk.AccAddress("stranger____________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(10))
	require.NoError(t, err)

	err = f.k.BorrowMore(f.ctx, stranger, id, decimal.NewFromInt64(5))
	require.ErrorIs(t, err, types.ErrNotOwner)
}

func TestTopUpCdpClearsMarkedStatus(t *testing.T) {
	f := newTestFixture(t)
	owner := sdk.AccAddress("owner_______________")
	id := openMarkableCdp(t, f, owner)

	_, err := f.k.MarkForLiquidation(f.ctx, "uatom")
	require.NoError(t, err)
	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.Equal(t, types.CdpStatusMarked, cdp.Status)

	// Repricing uatom back up makes more top-up collateral clear the
	// Lcr threshold comfortably.
	require.NoError(t, f.k.ChangeCollateralPrice(f.ctx, "uatom", decimal.NewFromInt64(10)))
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1_000_000)))
	require.NoError(t, f.k.TopUpCdp(f.ctx, owner, id, sdk.NewInt64Coin("uatom", 1_000_000)))

	cdp, found = f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.Equal(t, types.CdpStatusHealthy, cdp.Status, "a top-up that clears lcr should unmark the cdp")
}

func TestTopUpCdpRejectsWrongDenom(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(10))
	require.NoError(t, err)

	err = f.k.TopUpCdp(f.ctx, owner, id, sdk.NewInt64Coin("uosmo", 10))
	require.ErrorIs(t, err, types.ErrWrongResource)
}

func TestPartialCloseCdpRepaysSomeDebt(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	require.NoError(t, f.k.PartialCloseCdp(f.ctx, owner, id, decimal.NewFromInt64(40)))

	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.Equal(t, types.CdpStatusHealthy, cdp.Status)
	require.True(t, cdp.MintedStab.Equal(decimal.NewFromInt64(60)))
}

func TestPartialCloseCdpFullRepaymentDelegatesToClose(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	require.NoError(t, f.k.PartialCloseCdp(f.ctx, owner, id, decimal.NewFromInt64(100)))

	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.Equal(t, types.CdpStatusClosed, cdp.Status)
}

func TestPartialCloseCdpRejectsBelowMinimumMintRemainder(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(100))
	require.NoError(t, err)

	params := f.k.GetParams(f.ctx)
	params.MinimumMint = decimal.NewFromInt64(50)
	require.NoError(t, f.k.SetParams(f.ctx, params))

	err = f.k.PartialCloseCdp(f.ctx, owner, id, decimal.NewFromInt64(90))
	require.ErrorIs(t, err, types.ErrBelowMinimumMint)
}

func TestRemoveCollateralWithdrawsWhileAboveLcr(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(10))
	require.NoError(t, err)

	require.NoError(t, f.k.RemoveCollateral(f.ctx, owner, id, decimal.NewFromInt64(500)))

	cdp, found := f.k.GetCdp(f.ctx, id)
	require.True(t, found)
	require.True(t, cdp.CollateralAmount.Equal(decimal.NewFromInt64(500)))

	ownerAtom := f.bank.GetBalance(f.ctx, owner, "uatom")
	require.Equal(t, int64(500), ownerAtom.Amount.Int64())
}

func TestRemoveCollateralRejectsBelowLcr(t *testing.T) {
	f := newTestFixture(t)
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())

	owner := sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	id, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(10))
	require.NoError(t, err)

	err = f.k.RemoveCollateral(f.ctx, owner, id, decimal.NewFromInt64(999))
	require.ErrorIs(t, err, types.ErrInsufficientCollateral)
}
