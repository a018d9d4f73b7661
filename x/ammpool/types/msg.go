package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// Message types for the quote pool's user-facing surface, following the
// same non-protobuf "Simple" message pattern as x/cdp and x/peg.

type MsgAddLiquidity struct {
	Provider     string `json:"provider"`
	StabAmount   string `json:"stab_amount"`
	QuoteAmount  string `json:"quote_amount"`
}

type MsgAddLiquidityResponse struct {
	Shares string `json:"shares"`
}

type MsgRemoveLiquidity struct {
	Provider string `json:"provider"`
	Shares   string `json:"shares"`
}

type MsgRemoveLiquidityResponse struct {
	StabAmount  string `json:"stab_amount"`
	QuoteAmount string `json:"quote_amount"`
}

type MsgSwap struct {
	Trader   string `json:"trader"`
	Amount   sdk.Coin `json:"amount"`
	MinOut   string `json:"min_out"`
}

type MsgSwapResponse struct {
	AmountOut string `json:"amount_out"`
}

func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return ErrNotAuthorized
	}
	stab, err := decimal.NewFromString(msg.StabAmount)
	if err != nil || !stab.IsPositive() {
		return ErrInsufficientInput
	}
	quote, err := decimal.NewFromString(msg.QuoteAmount)
	if err != nil || !quote.IsPositive() {
		return ErrInsufficientInput
	}
	return nil
}

func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return ErrNotAuthorized
	}
	shares, err := decimal.NewFromString(msg.Shares)
	if err != nil || !shares.IsPositive() {
		return ErrInsufficientShare
	}
	return nil
}

func (msg MsgSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return ErrNotAuthorized
	}
	if !msg.Amount.IsValid() || msg.Amount.IsZero() {
		return ErrInsufficientInput
	}
	if _, err := decimal.NewFromString(msg.MinOut); err != nil {
		return ErrInsufficientInput
	}
	return nil
}
