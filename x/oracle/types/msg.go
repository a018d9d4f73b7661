package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// MsgSubmitPrice is the oracle's producer-facing surface. The tx's own
// signature substitutes for an externally-verified signed message; Source
// is the submitting address in string form.
type MsgSubmitPrice struct {
	Source    string `json:"source"`
	Asset     string `json:"asset"`
	Price     string `json:"price"`
	MarketId  uint64 `json:"market_id"`
	Nonce     uint64 `json:"nonce"`
}

type MsgSubmitPriceResponse struct{}

func (msg MsgSubmitPrice) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Source); err != nil {
		return ErrNotAuthorized
	}
	if _, err := decimal.NewFromString(msg.Price); err != nil {
		return ErrUnknownAsset
	}
	if msg.Asset == "" {
		return ErrUnknownAsset
	}
	return nil
}
