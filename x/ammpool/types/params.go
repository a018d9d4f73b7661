package types

import (
	"fmt"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// Params mirrors the teacher's LiquidityPool.Fee field, lifted to a module
// parameter since this protocol has exactly one pool rather than
// per-market pools.
type Params struct {
	QuoteDenom string          `json:"quote_denom" yaml:"quote_denom"`
	Fee        decimal.Decimal `json:"fee" yaml:"fee"`
}

func DefaultParams() Params {
	return Params{
		QuoteDenom: "uxrd",
		Fee:        decimal.MustNewFromString("0.003"),
	}
}

func (p Params) Validate() error {
	if p.QuoteDenom == "" {
		return fmt.Errorf("quote denom cannot be empty")
	}
	if p.Fee.IsNegative() || p.Fee.GTE(decimal.One()) {
		return fmt.Errorf("fee must be in [0,1): got %s", p.Fee)
	}
	return nil
}
