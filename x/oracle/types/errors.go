package types

import "cosmossdk.io/errors"

var (
	ErrOracleStale   = errors.Register(ModuleName, 2, "oracle price is not newer than the stored price")
	ErrNotAuthorized = errors.Register(ModuleName, 3, "caller is not a registered price source")
	ErrUnknownAsset  = errors.Register(ModuleName, 4, "no aggregated price available for asset")
)

const (
	EventTypeSubmitPrice = "submit_price"
)

const (
	AttributeKeySource  = "source"
	AttributeKeyAsset   = "asset"
	AttributeKeyPrice   = "price"
	AttributeKeyMarket  = "market_id"
)
