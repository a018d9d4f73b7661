package types

import (
	"fmt"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
)

// Params holds the proxy's quorum threshold, the fraction of badge shares
// that must sign off before an owner-only method is forwarded.
type Params struct {
	QuorumThreshold decimal.Decimal `json:"quorum_threshold" yaml:"quorum_threshold"`
}

func DefaultParams() Params {
	return Params{QuorumThreshold: decimal.MustNewFromString("0.75")}
}

func (p Params) Validate() error {
	if p.QuorumThreshold.IsNegative() || p.QuorumThreshold.GT(decimal.One()) {
		return fmt.Errorf("quorum threshold must be in [0,1]: got %s", p.QuorumThreshold)
	}
	return nil
}
