package decimal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

func TestPowIdentities(t *testing.T) {
	one := decimal.One()
	x := decimal.MustNewFromString("1.0000007715")

	require.True(t, decimal.Pow(x, decimal.Zero()).Equal(one), "pow(x, 0) must be exactly 1")
	require.True(t, decimal.Pow(one, decimal.MustNewFromString("123.456")).Equal(one), "pow(1, y) must be exactly 1")
}

func TestPowAdditiveApprox(t *testing.T) {
	x := decimal.MustNewFromString("1.0000007715")
	y := decimal.MustNewFromString("37.25")
	z := decimal.MustNewFromString("12.75")

	lhs := decimal.Pow(x, y.Add(z))
	rhs := decimal.Pow(x, y).Mul(decimal.Pow(x, z))

	diff := lhs.Sub(rhs).Abs()
	tolerance := decimal.MustNewFromString("0.000000000001") // 12 decimal digits
	require.True(t, diff.LT(tolerance), "pow(x,y+z) should match pow(x,y)*pow(x,z) to 12 digits, diff=%s", diff)
}

func TestPowCompoundsInterestRate(t *testing.T) {
	// 60 one-minute compounds of a rate a hair above 1 should move the
	// internal price by a small, strictly positive amount.
	rate := decimal.MustNewFromString("1.0000007715")
	compounded := decimal.Pow(rate, decimal.NewFromInt64(60))
	require.True(t, compounded.GT(decimal.One()))
	require.True(t, compounded.LT(decimal.MustNewFromString("1.001")))
}

func TestRoundingModes(t *testing.T) {
	v := decimal.MustNewFromString("1.2")
	require.True(t, v.Round(decimal.ToZero).Equal(decimal.NewFromInt64(1)))
	require.True(t, v.Round(decimal.AwayFromZero).Equal(decimal.NewFromInt64(2)))

	neg := decimal.MustNewFromString("-1.2")
	require.True(t, neg.Round(decimal.ToZero).Equal(decimal.NewFromInt64(-1)))
	require.True(t, neg.Round(decimal.AwayFromZero).Equal(decimal.NewFromInt64(-2)))

	whole := decimal.NewFromInt64(5)
	require.True(t, whole.Round(decimal.AwayFromZero).Equal(whole))
}

func TestClampAndMinMax(t *testing.T) {
	lo := decimal.NewFromInt64(1)
	hi := decimal.NewFromInt64(10)
	require.True(t, decimal.Clamp(decimal.NewFromInt64(-5), lo, hi).Equal(lo))
	require.True(t, decimal.Clamp(decimal.NewFromInt64(50), lo, hi).Equal(hi))
	require.True(t, decimal.Clamp(decimal.NewFromInt64(5), lo, hi).Equal(decimal.NewFromInt64(5)))
}
