package types

import (
	"time"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// PriceFeed is a single source's most recent submission for one asset and
// market id.
type PriceFeed struct {
	Source    string          `json:"source"`
	Asset     string          `json:"asset"`
	MarketId  uint64          `json:"market_id"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
	Nonce     uint64          `json:"nonce"`
}

// AggregatedPrice is the last computed cross-source price for one asset.
type AggregatedPrice struct {
	Asset      string          `json:"asset"`
	Price      decimal.Decimal `json:"price"`
	NumSources uint32          `json:"num_sources"`
	Confidence decimal.Decimal `json:"confidence"`
	LastUpdate time.Time       `json:"last_update"`
}
