package types

import (
	"fmt"
	"time"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// Params holds the oracle's source-count and staleness thresholds.
type Params struct {
	MinSources           uint32          `json:"min_sources" yaml:"min_sources"`
	MaxPriceAgeSeconds    uint64          `json:"max_price_age_seconds" yaml:"max_price_age_seconds"`
	PriceDeviationLimit   decimal.Decimal `json:"price_deviation_limit" yaml:"price_deviation_limit"`
}

func (p *Params) ProtoMessage() {}
func (p *Params) Reset()        { *p = Params{} }
func (p *Params) String() string { return "oracle_params" }

func DefaultParams() Params {
	return Params{
		MinSources:         1,
		MaxPriceAgeSeconds: 300,
		PriceDeviationLimit: decimal.MustNewFromString("0.05"),
	}
}

func (p Params) Validate() error {
	if p.MinSources == 0 {
		return fmt.Errorf("min sources must be positive")
	}
	return nil
}

func (p Params) MaxPriceAge() time.Duration {
	return time.Duration(p.MaxPriceAgeSeconds) * time.Second
}
