package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "cdp"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_cdp"

	// StabDenom is the bank denom of the STAB stablecoin, minted and
	// burned exclusively by this module's engine.
	StabDenom = "ustab"
)

// Store keys
var (
	// CollateralInfoPrefix stores CollateralInfo by parent denom
	CollateralInfoPrefix = []byte{0x01}

	// PoolUnitInfoPrefix stores PoolUnitInfo by pool-unit denom
	PoolUnitInfoPrefix = []byte{0x02}

	// CdpPrefix stores Cdp records by id
	CdpPrefix = []byte{0x03}

	// CdpMarkerPrefix stores CdpMarker records by id
	CdpMarkerPrefix = []byte{0x04}

	// LiquidationReceiptPrefix stores LiquidationReceipt records by id
	LiquidationReceiptPrefix = []byte{0x05}

	// CdpCounterKey stores the global CDP id counter
	CdpCounterKey = []byte{0x06}

	// MarkerCounterKey stores the global marker id counter
	MarkerCounterKey = []byte{0x07}

	// ReceiptCounterKey stores the global liquidation receipt id counter
	ReceiptCounterKey = []byte{0x08}

	// MarkerPlacingCounterKey stores the monotonic markedCdps placement counter
	MarkerPlacingCounterKey = []byte{0x09}

	// ParamsKey stores module parameters
	ParamsKey = []byte{0x0A}

	// CrIndexPrefix indexes Healthy CDPs by parent denom and sortable CR key
	CrIndexPrefix = []byte{0x10}

	// MarkedQueuePrefix indexes Marked CDPs by sortable marker-placing key
	MarkedQueuePrefix = []byte{0x11}
)

// GetCollateralInfoKey returns the store key for a CollateralInfo record.
func GetCollateralInfoKey(parentDenom string) []byte {
	return append(CollateralInfoPrefix, []byte(parentDenom)...)
}

// GetPoolUnitInfoKey returns the store key for a PoolUnitInfo record.
func GetPoolUnitInfoKey(poolUnitDenom string) []byte {
	return append(PoolUnitInfoPrefix, []byte(poolUnitDenom)...)
}

// GetCdpKey returns the store key for a Cdp.
func GetCdpKey(id uint64) []byte {
	return append(CdpPrefix, sdk.Uint64ToBigEndian(id)...)
}

// GetCdpMarkerKey returns the store key for a CdpMarker.
func GetCdpMarkerKey(id uint64) []byte {
	return append(CdpMarkerPrefix, sdk.Uint64ToBigEndian(id)...)
}

// GetLiquidationReceiptKey returns the store key for a LiquidationReceipt.
func GetLiquidationReceiptKey(id uint64) []byte {
	return append(LiquidationReceiptPrefix, sdk.Uint64ToBigEndian(id)...)
}

// GetCrIndexPrefixForParent returns the iteration prefix for one parent
// collateral's ordered-CR bucket space.
func GetCrIndexPrefixForParent(parentDenom string) []byte {
	key := append(CrIndexPrefix, []byte(parentDenom)...)
	return append(key, []byte(":")...)
}

// GetCrIndexKey returns the store key for one (parent, cr, cdpId) entry.
// sortableCr must already be encoded so that byte-lexicographic order
// matches numeric order (see sortableDecBytes in x/cdp/keeper/cr_index.go).
func GetCrIndexKey(parentDenom string, sortableCr []byte, cdpId uint64) []byte {
	key := GetCrIndexPrefixForParent(parentDenom)
	key = append(key, sortableCr...)
	return append(key, sdk.Uint64ToBigEndian(cdpId)...)
}

// GetMarkedQueueKey returns the store key for one marker-placing entry.
func GetMarkedQueueKey(sortablePlacing []byte) []byte {
	return append(MarkedQueuePrefix, sortablePlacing...)
}
