package types

import (
	"time"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// CdpStatus is the lifecycle state of a Cdp.
type CdpStatus int

const (
	CdpStatusHealthy CdpStatus = iota
	CdpStatusMarked
	CdpStatusLiquidated
	CdpStatusForceLiquidated
	CdpStatusClosed
)

func (s CdpStatus) String() string {
	switch s {
	case CdpStatusHealthy:
		return "Healthy"
	case CdpStatusMarked:
		return "Marked"
	case CdpStatusLiquidated:
		return "Liquidated"
	case CdpStatusForceLiquidated:
		return "ForceLiquidated"
	case CdpStatusClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether the status can never transition again.
func (s CdpStatus) IsTerminal() bool {
	return s == CdpStatusLiquidated || s == CdpStatusForceLiquidated || s == CdpStatusClosed
}

// CdpMarkType distinguishes a marker that actually moved a CDP into the
// Marked state from one that merely recorded a Save.
type CdpMarkType int

const (
	CdpMarkTypeMarked CdpMarkType = iota
	CdpMarkTypeSaved
)

func (t CdpMarkType) String() string {
	if t == CdpMarkTypeSaved {
		return "Saved"
	}
	return "Marked"
}

// PoolUnitKind names the kind of redemption source a pool-unit collateral
// derives its real value from.
type PoolUnitKind int

const (
	PoolUnitKindValidator PoolUnitKind = iota
	PoolUnitKindResourcePool
)

// CollateralInfo is the registry record for one accepted parent collateral.
type CollateralInfo struct {
	Denom           string          `json:"denom" yaml:"denom"`
	Mcr             decimal.Decimal `json:"mcr" yaml:"mcr"`
	UsdPrice        decimal.Decimal `json:"usd_price" yaml:"usd_price"`
	Lcr             decimal.Decimal `json:"lcr" yaml:"lcr"`
	Vault           decimal.Decimal `json:"vault" yaml:"vault"`
	Treasury        decimal.Decimal `json:"treasury" yaml:"treasury"`
	Accepted        bool            `json:"accepted" yaml:"accepted"`
	Initialized     bool            `json:"initialized" yaml:"initialized"`
	MaxStabShare    decimal.Decimal `json:"max_stab_share" yaml:"max_stab_share"`
	MintedStab      decimal.Decimal `json:"minted_stab" yaml:"minted_stab"`
	CollateralAmount decimal.Decimal `json:"collateral_amount" yaml:"collateral_amount"`
	HighestCr       decimal.Decimal `json:"highest_cr" yaml:"highest_cr"`
}

// RecomputeLcr recomputes Lcr from Mcr, internalStabPrice and UsdPrice:
// lcr = mcr * internalStabPrice / usdPrice.
func (c *CollateralInfo) RecomputeLcr(internalStabPrice decimal.Decimal) {
	c.Lcr = c.Mcr.Mul(internalStabPrice).Quo(c.UsdPrice)
}

// PoolUnitInfo is the registry record for one derivative (pool-unit)
// collateral, such as a liquid-staking token.
type PoolUnitInfo struct {
	Denom         string          `json:"denom" yaml:"denom"`
	ParentDenom   string          `json:"parent_denom" yaml:"parent_denom"`
	Kind          PoolUnitKind    `json:"kind" yaml:"kind"`
	RedemptionRef string          `json:"redemption_ref" yaml:"redemption_ref"`
	Accepted      bool            `json:"accepted" yaml:"accepted"`
	MaxPoolShare  decimal.Decimal `json:"max_pool_share" yaml:"max_pool_share"`
	MintedStab    decimal.Decimal `json:"minted_stab" yaml:"minted_stab"`
	Vault         decimal.Decimal `json:"vault" yaml:"vault"`
	Treasury      decimal.Decimal `json:"treasury" yaml:"treasury"`
}

// Cdp is a single collateralized debt position.
type Cdp struct {
	Id                  uint64          `json:"id" yaml:"id"`
	Owner               string          `json:"owner" yaml:"owner"`
	Collateral          string          `json:"collateral" yaml:"collateral"`
	ParentAddress       string          `json:"parent_address" yaml:"parent_address"`
	IsPoolUnitCollateral bool           `json:"is_pool_unit_collateral" yaml:"is_pool_unit_collateral"`

	CollateralAmount    decimal.Decimal `json:"collateral_amount" yaml:"collateral_amount"`
	MintedStab          decimal.Decimal `json:"minted_stab" yaml:"minted_stab"`
	CollateralStabRatio decimal.Decimal `json:"collateral_stab_ratio" yaml:"collateral_stab_ratio"`
	Status              CdpStatus       `json:"status" yaml:"status"`
	MarkerId            uint64          `json:"marker_id" yaml:"marker_id"`
}

// CdpMarker records a mark (or save) placed against a Cdp.
type CdpMarker struct {
	Id             uint64      `json:"id" yaml:"id"`
	MarkType       CdpMarkType `json:"mark_type" yaml:"mark_type"`
	TimeMarked     time.Time   `json:"time_marked" yaml:"time_marked"`
	MarkedCdpId    uint64      `json:"marked_cdp_id" yaml:"marked_cdp_id"`
	MarkerPlacing  decimal.Decimal `json:"marker_placing" yaml:"marker_placing"`
	Used           bool        `json:"used" yaml:"used"`
}

// LiquidationReceipt is an immutable audit record of a liquidation.
type LiquidationReceipt struct {
	Id                 uint64          `json:"id" yaml:"id"`
	Collateral         string          `json:"collateral" yaml:"collateral"`
	StabPaid           decimal.Decimal `json:"stab_paid" yaml:"stab_paid"`
	PercentageReceived decimal.Decimal `json:"percentage_received" yaml:"percentage_received"`
	PercentageOwed     decimal.Decimal `json:"percentage_owed" yaml:"percentage_owed"`
	CdpLiquidated      uint64          `json:"cdp_liquidated" yaml:"cdp_liquidated"`
	DateLiquidated     time.Time       `json:"date_liquidated" yaml:"date_liquidated"`
}
