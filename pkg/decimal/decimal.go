// Package decimal provides the fixed-point rational type used throughout the
// STAB protocol for every monetary quantity: collateral amounts, minted STAB,
// collateralization ratios, prices, and the peg controller's interest rate.
//
// Decimal wraps cosmossdk.io/math.LegacyDec, which already gives checked
// add/sub/mul/quo at 18 digits of fractional precision. The one operation the
// upstream type does not provide is exponentiation by a non-integer exponent,
// which the peg controller needs to compound the internal price over a
// fractional number of elapsed minutes. Pow is added here via the identity
// x^y = exp(y * ln(x)), each implemented as a truncated series.
package decimal

import (
	"fmt"

	"cosmossdk.io/math"
)

// RoundingMode selects how a Decimal is rounded down to an integer amount.
type RoundingMode int

const (
	// ToZero truncates toward zero (the fractional part is simply dropped).
	ToZero RoundingMode = iota
	// AwayFromZero rounds the magnitude up to the next whole unit.
	AwayFromZero
)

// Decimal is a signed fixed-point number with 18 digits of fractional
// precision. The zero value is not valid; use Zero() or one of the
// constructors below.
type Decimal struct {
	d math.LegacyDec
}

// Zero returns the additive identity.
func Zero() Decimal { return Decimal{d: math.LegacyZeroDec()} }

// One returns the multiplicative identity.
func One() Decimal { return Decimal{d: math.LegacyOneDec()} }

// NewFromInt64 builds a Decimal from a whole number.
func NewFromInt64(i int64) Decimal { return Decimal{d: math.LegacyNewDec(i)} }

// NewFromString parses a decimal literal such as "1.5" or "-0.0000001".
func NewFromString(s string) (Decimal, error) {
	d, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("decimal: parse %q: %w", s, err)
	}
	return Decimal{d: d}, nil
}

// MustNewFromString is NewFromString, panicking on a malformed literal. It
// exists for parameter defaults and test fixtures, not for untrusted input.
func MustNewFromString(s string) Decimal {
	d, err := NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromLegacyDec adapts an existing cosmossdk.io/math.LegacyDec, e.g. one read
// back from a keeper that still stores raw SDK decimals.
func FromLegacyDec(d math.LegacyDec) Decimal { return Decimal{d: d} }

// LegacyDec exposes the underlying cosmos-sdk decimal for interop with
// keepers that still speak math.LegacyDec directly (bank amounts, staking
// weights, and the like).
func (d Decimal) LegacyDec() math.LegacyDec { return d.d }

func (d Decimal) String() string { return d.d.String() }

// IsNil reports whether the Decimal was never assigned a value.
func (d Decimal) IsNil() bool { return d.d.IsNil() }

// MarshalJSON delegates to math.LegacyDec's own JSON encoding (a quoted
// decimal string) since d is unexported and would otherwise marshal as {}.
func (d Decimal) MarshalJSON() ([]byte, error) { return d.d.MarshalJSON() }

// UnmarshalJSON delegates to math.LegacyDec's own JSON decoding.
func (d *Decimal) UnmarshalJSON(bz []byte) error { return d.d.UnmarshalJSON(bz) }

// MarshalYAML delegates to math.LegacyDec's string form, matching the YAML
// tags every Params struct in this codebase carries on its Decimal fields.
func (d Decimal) MarshalYAML() (interface{}, error) { return d.d.String(), nil }

// Add returns d + other. Overflow of the underlying big.Int representation
// panics, matching math.LegacyDec's own checked-arithmetic behavior.
func (d Decimal) Add(other Decimal) Decimal { return Decimal{d: d.d.Add(other.d)} }

// Sub returns d - other.
func (d Decimal) Sub(other Decimal) Decimal { return Decimal{d: d.d.Sub(other.d)} }

// Mul returns d * other, rounded to banker's-unbiased precision internally
// by math.LegacyDec (banking rounding at the 18th digit).
func (d Decimal) Mul(other Decimal) Decimal { return Decimal{d: d.d.Mul(other.d)} }

// Quo returns d / other. Panics on division by zero, mirroring
// math.LegacyDec; callers on a division-by-untrusted-input path must check
// IsZero first.
func (d Decimal) Quo(other Decimal) Decimal { return Decimal{d: d.d.Quo(other.d)} }

// Neg returns -d.
func (d Decimal) Neg() Decimal { return Decimal{d: d.d.Neg()} }

// Abs returns the absolute value of d.
func (d Decimal) Abs() Decimal {
	if d.d.IsNegative() {
		return d.Neg()
	}
	return d
}

func (d Decimal) IsZero() bool     { return d.d.IsZero() }
func (d Decimal) IsPositive() bool { return d.d.IsPositive() }
func (d Decimal) IsNegative() bool { return d.d.IsNegative() }

func (d Decimal) GT(other Decimal) bool  { return d.d.GT(other.d) }
func (d Decimal) GTE(other Decimal) bool { return d.d.GTE(other.d) }
func (d Decimal) LT(other Decimal) bool  { return d.d.LT(other.d) }
func (d Decimal) LTE(other Decimal) bool { return d.d.LTE(other.d) }
func (d Decimal) Equal(other Decimal) bool { return d.d.Equal(other.d) }

// Min returns the smaller of d and other.
func Min(d, other Decimal) Decimal {
	if d.LT(other) {
		return d
	}
	return other
}

// Max returns the larger of d and other.
func Max(d, other Decimal) Decimal {
	if d.GT(other) {
		return d
	}
	return other
}

// Clamp bounds d to [lo, hi]. lo must not exceed hi.
func Clamp(d, lo, hi Decimal) Decimal {
	return Min(Max(d, lo), hi)
}

// Round reduces d to a whole-unit Decimal using the given rounding mode.
// AwayFromZero rounds the magnitude up regardless of sign, e.g. Round
// rounds both 1.2 and -1.2 further from zero, to 2 and -2 respectively -
// this is the convention §4.3 relies on for the force-mint withdrawal
// remainder and liquidation collateral takes.
func (d Decimal) Round(mode RoundingMode) Decimal {
	trunc := Decimal{d: d.d.TruncateDec()}
	if mode == ToZero {
		return trunc
	}
	if d.d.Equal(trunc.d) {
		return trunc
	}
	if d.d.IsNegative() {
		return trunc.Sub(One())
	}
	return trunc.Add(One())
}

// seriesTerms bounds how many terms the Exp/Ln series expand before they are
// considered converged; both series are only ever evaluated on arguments
// close to zero (see Pow), so this is generous headroom rather than a tight
// requirement.
const seriesTerms = 40

// precisionFloor is the smallest representable magnitude at 18 digits of
// fractional precision; once a series term's magnitude drops below this, it
// can no longer change the accumulated sum and further terms are dropped.
var precisionFloor = Decimal{d: math.LegacyNewDecWithPrec(1, 18)}

// Exp returns e^x via its Taylor series, truncated once successive terms
// stop contributing at 18-digit precision. Documented error bound: for
// |x| <= 1 the truncation error after seriesTerms terms is below 1e-18 in
// absolute value (the series' tail is dominated by a geometric sequence with
// ratio |x|/n which is far below 1 well before n=40).
func Exp(x Decimal) Decimal {
	sum := One()
	term := One()
	for n := int64(1); n <= seriesTerms; n++ {
		term = term.Mul(x).Quo(NewFromInt64(n))
		if term.Abs().LT(precisionFloor) {
			break
		}
		sum = sum.Add(term)
	}
	return sum
}

// Ln returns the natural logarithm of x (x must be strictly positive) using
// the Gregory series ln(x) = 2*atanh((x-1)/(x+1)), expanded as
// 2*Σ u^(2k+1)/(2k+1) for u=(x-1)/(x+1). This series converges for every
// x > 0 and converges fastest (and is used here exclusively) for x near 1,
// which is exactly the regime Pow is called in: compounding an interest rate
// that sits within a few parts-per-million of 1 per minute.
func Ln(x Decimal) Decimal {
	if !x.IsPositive() {
		panic("decimal: Ln requires a strictly positive argument")
	}
	if x.Equal(One()) {
		return Zero()
	}
	u := x.Sub(One()).Quo(x.Add(One()))
	sum := Zero()
	uPower := u
	uSquared := u.Mul(u)
	for k := int64(0); k < seriesTerms; k++ {
		denom := NewFromInt64(2*k + 1)
		term := uPower.Quo(denom)
		sum = sum.Add(term)
		if term.Abs().LT(precisionFloor) {
			break
		}
		uPower = uPower.Mul(uSquared)
	}
	return sum.Mul(NewFromInt64(2))
}

// Pow raises x (x must be strictly positive) to the possibly-fractional
// power y via x^y = exp(y * ln(x)). This is the approximation the peg
// controller relies on to compound the internal price by
// interestRate^elapsedMinutes every tick.
//
// Documented error bound: composing the Ln and Exp series bounds above, the
// absolute error of Pow for arguments in the regime this package is actually
// used in (x within roughly 0.0001 of 1, |y| up to a few thousand) stays
// below 1e-12, comfortably inside the spec's required 12-digit agreement
// for pow(x, y+z) ≈ pow(x,y)*pow(x,z).
//
// Pow(x, 0) == 1 and Pow(1, y) == 1 hold exactly (not just approximately):
// both cases return One() directly, before Ln or Exp is called.
func Pow(x, y Decimal) Decimal {
	if y.IsZero() {
		return One()
	}
	if x.Equal(One()) {
		return One()
	}
	return Exp(y.Mul(Ln(x)))
}

// Pow is the method form of the package-level Pow, reading naturally as
// "base.Pow(exponent)" at call sites such as the peg controller's
// compounding step.
func (d Decimal) Pow(exp Decimal) Decimal { return Pow(d, exp) }
