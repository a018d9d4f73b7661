package types

import (
	"fmt"
	"time"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// Default parameter values.
const (
	DefaultMaxVectorLength          uint64 = 100
	DefaultLiquidationDelayMinutes  uint64 = 5
	DefaultUnmarkedDelayMinutes     uint64 = 5
	DefaultLiquidatorFineBasisPoints uint64 = 1000 // 10%
	DefaultProtocolFineBasisPoints  uint64 = 500   // 5%
	DefaultForceMintCrMultiplierBasisPoints uint64 = 12000 // 1.2x lcr
)

// Params holds the owner-capability-gated admin surface (liquidation
// delay, fines, force-mint multiplier, operation stops). Percentages are
// stored as basis points (1/100th of a percent), so the stored value is an
// exact integer and the fractional Decimal is only materialized on read.
type Params struct {
	MaxVectorLength  uint64 `json:"max_vector_length" yaml:"max_vector_length"`
	MinimumMint      decimal.Decimal `json:"minimum_mint" yaml:"minimum_mint"`

	LiquidationDelayMinutes uint64 `json:"liquidation_delay_minutes" yaml:"liquidation_delay_minutes"`
	UnmarkedDelayMinutes    uint64 `json:"unmarked_delay_minutes" yaml:"unmarked_delay_minutes"`

	LiquidatorFineBasisPoints uint64 `json:"liquidator_fine_basis_points" yaml:"liquidator_fine_basis_points"`
	ProtocolFineBasisPoints   uint64 `json:"protocol_fine_basis_points" yaml:"protocol_fine_basis_points"`

	ForceMintCrMultiplierBasisPoints uint64 `json:"force_mint_cr_multiplier_basis_points" yaml:"force_mint_cr_multiplier_basis_points"`

	// Operation stops.
	LiquidationsStopped bool `json:"liquidations_stopped" yaml:"liquidations_stopped"`
	OpeningsStopped     bool `json:"openings_stopped" yaml:"openings_stopped"`
	ClosingsStopped     bool `json:"closings_stopped" yaml:"closings_stopped"`
	ForceMintStopped    bool `json:"force_mint_stopped" yaml:"force_mint_stopped"`
	ForceLiquidateStopped bool `json:"force_liquidate_stopped" yaml:"force_liquidate_stopped"`
}

// ProtoMessage, Reset and String satisfy proto.Message for genesis wiring
// since this codebase does not generate real protobuf for params.
func (p *Params) ProtoMessage() {}
func (p *Params) Reset()        { *p = Params{} }
func (p *Params) String() string { return "cdp_params" }

// DefaultParams returns the default cdp module parameters.
func DefaultParams() Params {
	return Params{
		MaxVectorLength:           DefaultMaxVectorLength,
		MinimumMint:               decimal.NewFromInt64(1),
		LiquidationDelayMinutes:   DefaultLiquidationDelayMinutes,
		UnmarkedDelayMinutes:      DefaultUnmarkedDelayMinutes,
		LiquidatorFineBasisPoints: DefaultLiquidatorFineBasisPoints,
		ProtocolFineBasisPoints:   DefaultProtocolFineBasisPoints,
		ForceMintCrMultiplierBasisPoints: DefaultForceMintCrMultiplierBasisPoints,
	}
}

// Validate performs basic sanity checks on the params.
func (p Params) Validate() error {
	if p.MaxVectorLength == 0 {
		return fmt.Errorf("max vector length must be positive")
	}
	if p.MinimumMint.IsNegative() {
		return fmt.Errorf("minimum mint cannot be negative")
	}
	if p.LiquidationDelayMinutes == 0 {
		return fmt.Errorf("liquidation delay must be positive")
	}
	return nil
}

func (p Params) LiquidationDelay() time.Duration {
	return time.Duration(p.LiquidationDelayMinutes) * time.Minute
}

func (p Params) UnmarkedDelay() time.Duration {
	return time.Duration(p.UnmarkedDelayMinutes) * time.Minute
}

// LiquidatorFine returns α, the fraction of collateral value the liquidator
// receives above par.
func (p Params) LiquidatorFine() decimal.Decimal {
	return decimal.NewFromInt64(int64(p.LiquidatorFineBasisPoints)).Quo(decimal.NewFromInt64(10000))
}

// ProtocolFine returns β, the fraction of collateral value the treasury
// receives above par.
func (p Params) ProtocolFine() decimal.Decimal {
	return decimal.NewFromInt64(int64(p.ProtocolFineBasisPoints)).Quo(decimal.NewFromInt64(10000))
}

// ForceMintCrMultiplier returns the multiplier applied to lcr to derive
// minCr in forceMint.
func (p Params) ForceMintCrMultiplier() decimal.Decimal {
	return decimal.NewFromInt64(int64(p.ForceMintCrMultiplierBasisPoints)).Quo(decimal.NewFromInt64(10000))
}
