package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/cdp/types"
)

// setUpForceMintTarget opens a single, heavily overcollateralized cdp
// against uatom so ForceMint has a target sitting well above minCr to bring
// down.
func setUpForceMintTarget(t *testing.T, f testFixture) (owner sdk.AccAddress, parentLcr, minCr decimal.Decimal) {
	f.registerCollateral(t, "uatom", decimal.MustNewFromString("1.5"), decimal.NewFromInt64(10), decimal.One())
	owner = sdk.AccAddress("owner_______________")
	f.bank.fund(owner, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1000)))
	_, err := f.k.OpenCdp(f.ctx, owner, sdk.NewInt64Coin("uatom", 1000), decimal.NewFromInt64(10))
	require.NoError(t, err)

	parent, found := f.k.GetCollateralInfo(f.ctx, "uatom")
	require.True(t, found)
	minCr = f.k.GetParams(f.ctx).ForceMintCrMultiplier().Mul(parent.Lcr)
	return owner, parent.Lcr, minCr
}

// TestForceMintBelowMaxAdditionMintsExactlyFromPayment covers the case
// where the caller's payment is fully consumed: all of it becomes
// collateral and mintedStab is payment/k, with nothing returned.
func TestForceMintBelowMaxAdditionMintsExactlyFromPayment(t *testing.T) {
	f := newTestFixture(t)
	_, _, _ = setUpForceMintTarget(t, f)

	caller := sdk.AccAddress("caller______________")
	f.bank.fund(caller, sdk.NewCoins(sdk.NewInt64Coin("uatom", 100)))

	payment := decimal.NewFromInt64(100)
	mintedStab, returnedCollateral, err := f.k.ForceMint(f.ctx, caller, "uatom", "uatom", payment, decimal.One())
	require.NoError(t, err)
	require.True(t, returnedCollateral.IsZero(), "a payment below maxAddition should be fully consumed")
	require.True(t, mintedStab.IsPositive())

	callerStab := f.bank.GetBalance(f.ctx, caller, types.StabDenom)
	require.Equal(t, mintedStab.LegacyDec().TruncateInt(), callerStab.Amount)

	callerAtom := f.bank.GetBalance(f.ctx, caller, "uatom")
	require.True(t, callerAtom.Amount.IsZero(), "the full payment should have moved into the module")
}

// TestForceMintAbovePoolCapacityReturnsExcess drives a payment far beyond
// what the target cdp can absorb down to minCr, and checks the unconsumed
// remainder comes back to the caller rather than being minted against.
func TestForceMintAbovePoolCapacityReturnsExcess(t *testing.T) {
	f := newTestFixture(t)
	setUpForceMintTarget(t, f)

	caller := sdk.AccAddress("caller______________")
	f.bank.fund(caller, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1_000_000)))

	payment := decimal.NewFromInt64(1_000_000)
	mintedStab, returnedCollateral, err := f.k.ForceMint(f.ctx, caller, "uatom", "uatom", payment, decimal.One())
	require.NoError(t, err)
	require.True(t, returnedCollateral.IsPositive(), "a payment this large must exceed the cdp's room down to minCr")
	require.True(t, mintedStab.IsPositive())

	consumed := payment.Sub(returnedCollateral)
	callerAtom := f.bank.GetBalance(f.ctx, caller, "uatom")
	require.Equal(t, payment.Sub(consumed).LegacyDec().TruncateInt(), callerAtom.Amount)
}

func TestForceMintRejectsWrongPaymentDenom(t *testing.T) {
	f := newTestFixture(t)
	setUpForceMintTarget(t, f)

	caller := sdk.AccAddress("caller______________")
	_, _, err := f.k.ForceMint(f.ctx, caller, "uatom", "uosmo", decimal.NewFromInt64(10), decimal.One())
	require.ErrorIs(t, err, types.ErrWrongResource)
}
