package types

import (
	"time"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// PegState is the PID controller's mutable state: the internal price, the
// current interest rate, and a bounded sliding window
// of price errors used to integrate the windowed sum cheaply instead of
// resumming the whole window on every tick.
type PegState struct {
	InternalPrice decimal.Decimal `json:"internal_price" yaml:"internal_price"`
	InterestRate  decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`

	// Window is the circular buffer of cached price errors, capacity
	// Params.NumberOfCachedPrices.
	Window          []decimal.Decimal `json:"window" yaml:"window"`
	WindowSum       decimal.Decimal   `json:"window_sum" yaml:"window_sum"`
	LastChangedSlot uint64            `json:"last_changed_slot" yaml:"last_changed_slot"`
	FullCache       bool              `json:"full_cache" yaml:"full_cache"`

	LastUpdate time.Time `json:"last_update" yaml:"last_update"`
}

func (s *PegState) ProtoMessage() {}
func (s *PegState) Reset()        { *s = PegState{} }
func (s *PegState) String() string { return "peg_state" }

// DefaultPegState returns the initial controller state: internalPrice = 1,
// interestRate = 1 (no drift), an empty window.
func DefaultPegState() PegState {
	return PegState{
		InternalPrice: decimal.One(),
		InterestRate:  decimal.One(),
		Window:        nil,
		WindowSum:     decimal.Zero(),
	}
}
