package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	ModuleName   = "oracle"
	StoreKey     = ModuleName
	RouterKey    = ModuleName
	QuerierRoute = ModuleName
	MemStoreKey  = "mem_oracle"
)

var (
	// PriceFeedPrefix stores the latest PriceFeed per (source, asset, marketId).
	PriceFeedPrefix = []byte{0x01}

	// AggregatedPricePrefix stores the last computed AggregatedPrice per asset.
	AggregatedPricePrefix = []byte{0x02}

	ParamsKey = []byte{0x03}
)

// GetPriceFeedKey returns the store key for one (source, asset, marketId)
// feed slot. Each submission overwrites the previous one from that source.
func GetPriceFeedKey(source, asset string, marketId uint64) []byte {
	key := append(PriceFeedPrefix, []byte(source+"/"+asset+"/")...)
	return append(key, sdk.Uint64ToBigEndian(marketId)...)
}

func GetAggregatedPriceKey(asset string) []byte {
	return append(AggregatedPricePrefix, []byte(asset)...)
}
