package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// Message types for the cdp engine's user-facing surface. These structs are
// routed through MsgServer directly rather than through generated
// protobuf bindings.

type MsgOpenCdp struct {
	Owner      string   `json:"owner"`
	Collateral sdk.Coin `json:"collateral"`
	StabToMint string   `json:"stab_to_mint"`
}

type MsgCloseCdp struct {
	Owner       string `json:"owner"`
	CdpId       uint64 `json:"cdp_id"`
	StabPayment string `json:"stab_payment"`
}

type MsgPartialCloseCdp struct {
	Owner     string `json:"owner"`
	CdpId     uint64 `json:"cdp_id"`
	Repayment string `json:"repayment"`
}

type MsgBorrowMore struct {
	Owner          string `json:"owner"`
	CdpId          uint64 `json:"cdp_id"`
	AdditionalStab string `json:"additional_stab"`
}

type MsgTopUpCdp struct {
	Owner      string   `json:"owner"`
	CdpId      uint64   `json:"cdp_id"`
	Collateral sdk.Coin `json:"collateral"`
}

type MsgRemoveCollateral struct {
	Owner  string `json:"owner"`
	CdpId  uint64 `json:"cdp_id"`
	Amount string `json:"amount"`
}

type MsgMarkForLiquidation struct {
	Caller string `json:"caller"`
	Parent string `json:"parent"`
}

type MsgLiquidateWithMarker struct {
	Caller   string `json:"caller"`
	MarkerId uint64 `json:"marker_id"`
	Payment  string `json:"payment"`
}

type MsgLiquidateWithoutMarker struct {
	Caller  string `json:"caller"`
	CdpId   uint64 `json:"cdp_id"`
	Payment string `json:"payment"`
	Skip    uint64 `json:"skip"`
}

type MsgForceLiquidate struct {
	Caller            string `json:"caller"`
	Parent            string `json:"parent"`
	Payment           string `json:"payment"`
	PercentageToTake  string `json:"percentage_to_take"`
	AssertNonMarkable bool   `json:"assert_non_markable"`
}

type MsgForceMint struct {
	Caller             string `json:"caller"`
	Parent             string `json:"parent"`
	PaymentCollateral  string `json:"payment_collateral"`
	Payment            string `json:"payment"`
	PercentageToSupply string `json:"percentage_to_supply"`
}

type MsgRetrieveLeftover struct {
	Owner string `json:"owner"`
	CdpId uint64 `json:"cdp_id"`
}

type MsgBurnCdp struct {
	Owner string `json:"owner"`
	CdpId uint64 `json:"cdp_id"`
}

type MsgBurnMarker struct {
	Caller   string `json:"caller"`
	MarkerId uint64 `json:"marker_id"`
}

type MsgBurnLiquidationReceipt struct {
	Caller    string `json:"caller"`
	ReceiptId uint64 `json:"receipt_id"`
}

// Admin surface (owner-capability gated; see x/proxy for the capability
// check that must wrap every call to these in production routing).

type MsgAddCollateral struct {
	Owner        string `json:"owner"`
	Denom        string `json:"denom"`
	Mcr          string `json:"mcr"`
	UsdPrice     string `json:"usd_price"`
	MaxStabShare string `json:"max_stab_share"`
}

type MsgAddPoolCollateral struct {
	Owner         string `json:"owner"`
	Denom         string `json:"denom"`
	ParentDenom   string `json:"parent_denom"`
	Kind          PoolUnitKind `json:"kind"`
	RedemptionRef string `json:"redemption_ref"`
	MaxPoolShare  string `json:"max_pool_share"`
}

type MsgChangeCollateralPrice struct {
	Owner    string `json:"owner"`
	Denom    string `json:"denom"`
	UsdPrice string `json:"usd_price"`
}

// Response types.

type MsgOpenCdpResponse struct {
	CdpId uint64 `json:"cdp_id"`
}
type MsgCloseCdpResponse struct{}
type MsgPartialCloseCdpResponse struct{}
type MsgBorrowMoreResponse struct{}
type MsgTopUpCdpResponse struct{}
type MsgRemoveCollateralResponse struct{}
type MsgMarkForLiquidationResponse struct {
	MarkerId uint64 `json:"marker_id"`
}
type MsgLiquidateResponse struct {
	Excess string `json:"excess"`
}
type MsgForceLiquidateResponse struct {
	CollateralTaken string `json:"collateral_taken"`
}
type MsgForceMintResponse struct {
	MintedStab         string `json:"minted_stab"`
	ReturnedCollateral string `json:"returned_collateral"`
}
type MsgRetrieveLeftoverResponse struct{}
type MsgBurnCdpResponse struct{}
type MsgBurnMarkerResponse struct{}
type MsgBurnLiquidationReceiptResponse struct{}
type MsgAddCollateralResponse struct{}
type MsgAddPoolCollateralResponse struct{}
type MsgChangeCollateralPriceResponse struct{}

// ValidateBasic implementations reject malformed addresses, unparseable
// decimal amounts and invalid or zero coins before the message ever reaches
// the keeper. The sign of a decimal amount is only checked where a
// percentage must lie in [0,1].

func (msg MsgOpenCdp) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.StabToMint); err != nil {
		return ErrBelowMinimumMint
	}
	if !msg.Collateral.IsValid() || msg.Collateral.IsZero() {
		return ErrInsufficientCollateral
	}
	return nil
}

func (msg MsgCloseCdp) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.StabPayment); err != nil {
		return ErrInsufficientPayment
	}
	return nil
}

func (msg MsgLiquidateWithMarker) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.Payment); err != nil {
		return ErrInsufficientPayment
	}
	return nil
}

func (msg MsgLiquidateWithoutMarker) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.Payment); err != nil {
		return ErrInsufficientPayment
	}
	return nil
}

func (msg MsgPartialCloseCdp) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.Repayment); err != nil {
		return ErrInsufficientPayment
	}
	return nil
}

func (msg MsgBorrowMore) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.AdditionalStab); err != nil {
		return ErrBelowMinimumMint
	}
	return nil
}

func (msg MsgTopUpCdp) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	if !msg.Collateral.IsValid() || msg.Collateral.IsZero() {
		return ErrInsufficientCollateral
	}
	return nil
}

func (msg MsgRemoveCollateral) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.Amount); err != nil {
		return ErrInsufficientCollateral
	}
	return nil
}

func (msg MsgMarkForLiquidation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrNotOwner
	}
	if msg.Parent == "" {
		return ErrUnknownCollateral
	}
	return nil
}

func (msg MsgForceLiquidate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.Payment); err != nil {
		return ErrInsufficientPayment
	}
	pct, err := decimal.NewFromString(msg.PercentageToTake)
	if err != nil || pct.IsNegative() || pct.GT(decimal.One()) {
		return ErrInsufficientPayment
	}
	return nil
}

func (msg MsgForceMint) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.Payment); err != nil {
		return ErrInsufficientPayment
	}
	pct, err := decimal.NewFromString(msg.PercentageToSupply)
	if err != nil || pct.IsNegative() || pct.GT(decimal.One()) {
		return ErrInsufficientPayment
	}
	return nil
}

func (msg MsgRetrieveLeftover) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	return nil
}

func (msg MsgBurnCdp) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	return nil
}

func (msg MsgBurnMarker) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrNotOwner
	}
	return nil
}

func (msg MsgBurnLiquidationReceipt) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrNotOwner
	}
	return nil
}

func (msg MsgAddCollateral) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.Mcr); err != nil {
		return ErrUnknownCollateral
	}
	if _, err := decimal.NewFromString(msg.UsdPrice); err != nil {
		return ErrUnknownCollateral
	}
	if _, err := decimal.NewFromString(msg.MaxStabShare); err != nil {
		return ErrUnknownCollateral
	}
	return nil
}

func (msg MsgAddPoolCollateral) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.MaxPoolShare); err != nil {
		return ErrUnknownCollateral
	}
	return nil
}

func (msg MsgChangeCollateralPrice) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrNotOwner
	}
	if _, err := decimal.NewFromString(msg.UsdPrice); err != nil {
		return ErrUnknownCollateral
	}
	return nil
}
