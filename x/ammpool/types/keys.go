package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "ammpool"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_ammpool"
)

var (
	// PoolKey stores the single STAB/quote pool
	PoolKey = []byte{0x01}

	// ParamsKey stores module parameters
	ParamsKey = []byte{0x02}

	// LPPositionPrefix stores LPPosition records by id
	LPPositionPrefix = []byte{0x03}

	// LPPositionCounterKey stores the global LP position id counter
	LPPositionCounterKey = []byte{0x04}

	// LPPositionByProviderPrefix indexes LPPosition ids by provider address
	LPPositionByProviderPrefix = []byte{0x05}
)

// GetLPPositionKey returns the store key for an LPPosition.
func GetLPPositionKey(id uint64) []byte {
	return append(LPPositionPrefix, sdk.Uint64ToBigEndian(id)...)
}

// GetLPPositionByProviderKey returns the store key for one provider's
// secondary-index entry pointing at position id.
func GetLPPositionByProviderKey(provider string, id uint64) []byte {
	key := append(LPPositionByProviderPrefix, []byte(provider)...)
	key = append(key, []byte("/")...)
	return append(key, sdk.Uint64ToBigEndian(id)...)
}

// GetLPPositionByProviderPrefix returns the iteration prefix for one
// provider's positions.
func GetLPPositionByProviderPrefix(provider string) []byte {
	key := append(LPPositionByProviderPrefix, []byte(provider)...)
	return append(key, []byte("/")...)
}
