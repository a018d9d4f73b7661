package types

import (
	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// Pool is the single constant-product STAB/quote reserve pair, mirroring
// the teacher's LiquidityPool record but collapsed to the one market this
// protocol needs (STAB against its reference quote asset).
type Pool struct {
	StabReserve  decimal.Decimal `json:"stab_reserve"`
	QuoteReserve decimal.Decimal `json:"quote_reserve"`
	LpSupply     decimal.Decimal `json:"lp_supply"`
}

func DefaultPool() Pool {
	return Pool{
		StabReserve:  decimal.Zero(),
		QuoteReserve: decimal.Zero(),
		LpSupply:     decimal.Zero(),
	}
}

// LPPosition records one liquidity provider's share of the pool, following
// the teacher's by-id-plus-by-provider-index LPPosition layout.
type LPPosition struct {
	Id       uint64          `json:"id"`
	Provider string          `json:"provider"`
	Shares   decimal.Decimal `json:"shares"`
}
