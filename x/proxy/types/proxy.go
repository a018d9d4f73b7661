package types

import (
	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// BadgeHolding is one holder's fraction of the controller badge supply.
// Each share lies in [0,1]; the sum across holders is not checked.
type BadgeHolding struct {
	Holder string          `json:"holder"`
	Share  decimal.Decimal `json:"share"`
}
