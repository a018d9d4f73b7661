package types

import (
	"fmt"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// Params holds the PID controller's tunable constants. Unlike the cdp
// module's basis-point percentages, these constants (kp, ki, interest rate
// bounds) carry more fractional precision than two basis-point digits can
// express, e.g. an interest rate of 1.0000007715, so they are stored as
// Decimal directly rather than as scaled integers.
type Params struct {
	Kp               decimal.Decimal `json:"kp" yaml:"kp"`
	Ki               decimal.Decimal `json:"ki" yaml:"ki"`
	MaxInterestRate  decimal.Decimal `json:"max_interest_rate" yaml:"max_interest_rate"`
	MinInterestRate  decimal.Decimal `json:"min_interest_rate" yaml:"min_interest_rate"`
	AllowedDeviation decimal.Decimal `json:"allowed_deviation" yaml:"allowed_deviation"`
	MaxPriceError    decimal.Decimal `json:"max_price_error" yaml:"max_price_error"`
	PriceErrorOffset decimal.Decimal `json:"price_error_offset" yaml:"price_error_offset"`

	// UpdateDelayMinutes is the minimum elapsed time, in whole minutes,
	// before a tick is allowed to run.
	UpdateDelayMinutes  uint64 `json:"update_delay_minutes" yaml:"update_delay_minutes"`
	NumberOfCachedPrices uint64 `json:"number_of_cached_prices" yaml:"number_of_cached_prices"`

	// RewardPerSecond is paid out of the reward vault to whoever calls
	// update, proportional to the elapsed time since the last tick.
	RewardPerSecond decimal.Decimal `json:"reward_per_second" yaml:"reward_per_second"`
}

func (p *Params) ProtoMessage() {}
func (p *Params) Reset()        { *p = Params{} }
func (p *Params) String() string { return "peg_params" }

// DefaultParams returns the default PID controller parameters.
func DefaultParams() Params {
	return Params{
		Kp:                   decimal.MustNewFromString("0.0000000005"),
		Ki:                   decimal.MustNewFromString("0.0000000001"),
		MaxInterestRate:      decimal.MustNewFromString("1.00005"),
		MinInterestRate:      decimal.MustNewFromString("0.99995"),
		AllowedDeviation:     decimal.MustNewFromString("0.0025"),
		MaxPriceError:        decimal.MustNewFromString("0.25"),
		PriceErrorOffset:     decimal.One(),
		UpdateDelayMinutes:   5,
		NumberOfCachedPrices: 50,
		RewardPerSecond:      decimal.Zero(),
	}
}

// Validate performs basic sanity checks on the params.
func (p Params) Validate() error {
	if p.UpdateDelayMinutes == 0 {
		return fmt.Errorf("update delay must be positive")
	}
	if p.NumberOfCachedPrices == 0 {
		return fmt.Errorf("number of cached prices must be positive")
	}
	if p.MinInterestRate.GT(p.MaxInterestRate) {
		return fmt.Errorf("min interest rate cannot exceed max interest rate")
	}
	return nil
}
