package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// sdkCoinToDecimal converts an integer-amount sdk.Coin into the protocol's
// Decimal type.
func sdkCoinToDecimal(coin sdk.Coin) decimal.Decimal {
	return decimal.FromLegacyDec(sdk.NewDecFromInt(coin.Amount))
}

// decimalToCoin truncates a Decimal amount to an integer sdk.Coin of denom.
func decimalToCoin(denom string, amount decimal.Decimal) sdk.Coin {
	return sdk.NewCoin(denom, amount.LegacyDec().TruncateInt())
}
