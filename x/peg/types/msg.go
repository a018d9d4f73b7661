package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// MsgUpdate requests a peg controller tick against the live market price,
// rewarding the caller if the tick fires.
type MsgUpdate struct {
	Caller string `json:"caller"`
}

type MsgUpdateResponse struct {
	Ticked bool `json:"ticked"`
}

// MsgSetKpKi, MsgSetMinMaxInterest, MsgSetAllowedDeviation,
// MsgSetPriceError, MsgSetUpdateDelays, MsgSetNumberOfPricesCached and
// MsgSetRewardPerSecond are the peg controller's slice of the admin surface.

type MsgSetKpKi struct {
	Owner string `json:"owner"`
	Kp    string `json:"kp"`
	Ki    string `json:"ki"`
}
type MsgSetKpKiResponse struct{}

type MsgSetMinMaxInterest struct {
	Owner string `json:"owner"`
	Min   string `json:"min"`
	Max   string `json:"max"`
}
type MsgSetMinMaxInterestResponse struct{}

type MsgSetAllowedDeviation struct {
	Owner     string `json:"owner"`
	Deviation string `json:"deviation"`
}
type MsgSetAllowedDeviationResponse struct{}

type MsgSetPriceError struct {
	Owner  string `json:"owner"`
	Max    string `json:"max"`
	Offset string `json:"offset"`
}
type MsgSetPriceErrorResponse struct{}

type MsgSetUpdateDelays struct {
	Owner               string `json:"owner"`
	UpdateDelayMinutes  uint64 `json:"update_delay_minutes"`
}
type MsgSetUpdateDelaysResponse struct{}

type MsgSetNumberOfPricesCached struct {
	Owner string `json:"owner"`
	N     uint64 `json:"n"`
}
type MsgSetNumberOfPricesCachedResponse struct{}

type MsgSetRewardPerSecond struct {
	Owner string `json:"owner"`
	Value string `json:"value"`
}
type MsgSetRewardPerSecondResponse struct{}

func (msg MsgUpdate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrNotAuthorized
	}
	return nil
}

func (msg MsgSetKpKi) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotAuthorized
	}
	if _, err := decimal.NewFromString(msg.Kp); err != nil {
		return ErrNotAuthorized
	}
	if _, err := decimal.NewFromString(msg.Ki); err != nil {
		return ErrNotAuthorized
	}
	return nil
}

func (msg MsgSetMinMaxInterest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotAuthorized
	}
	if _, err := decimal.NewFromString(msg.Min); err != nil {
		return ErrNotAuthorized
	}
	if _, err := decimal.NewFromString(msg.Max); err != nil {
		return ErrNotAuthorized
	}
	return nil
}

func (msg MsgSetAllowedDeviation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotAuthorized
	}
	if _, err := decimal.NewFromString(msg.Deviation); err != nil {
		return ErrNotAuthorized
	}
	return nil
}

func (msg MsgSetPriceError) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotAuthorized
	}
	if _, err := decimal.NewFromString(msg.Max); err != nil {
		return ErrNotAuthorized
	}
	if _, err := decimal.NewFromString(msg.Offset); err != nil {
		return ErrNotAuthorized
	}
	return nil
}

func (msg MsgSetUpdateDelays) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotAuthorized
	}
	return nil
}

func (msg MsgSetNumberOfPricesCached) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotAuthorized
	}
	if msg.N == 0 {
		return ErrNotAuthorized
	}
	return nil
}

func (msg MsgSetRewardPerSecond) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotAuthorized
	}
	if _, err := decimal.NewFromString(msg.Value); err != nil {
		return ErrNotAuthorized
	}
	return nil
}
