package app

import (
	"context"

	stakingkeeper "github.com/cosmos/cosmos-sdk/x/staking/keeper"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	ammpoolkeeper "github.com/stabilis-labs/stab-protocol/x/ammpool/keeper"
	cdptypes "github.com/stabilis-labs/stab-protocol/x/cdp/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolUnitSourceAdapter satisfies x/cdp/types.PoolUnitSource by dispatching
// on the registered PoolUnitKind: a validator-backed derivative (e.g. a
// liquid-staking token) redeems through x/staking's own bonded-tokens ratio,
// a resource-pool-backed derivative redeems through x/ammpool's reserve
// price.
type PoolUnitSourceAdapter struct {
	stakingKeeper *stakingkeeper.Keeper
	ammPoolKeeper *ammpoolkeeper.Keeper
}

// NewPoolUnitSourceAdapter builds the adapter app.go wires in after both
// keepers exist.
func NewPoolUnitSourceAdapter(stakingKeeper *stakingkeeper.Keeper, ammPoolKeeper *ammpoolkeeper.Keeper) *PoolUnitSourceAdapter {
	return &PoolUnitSourceAdapter{stakingKeeper: stakingKeeper, ammPoolKeeper: ammPoolKeeper}
}

// RedemptionValue converts amount units of a pool-unit collateral into its
// underlying parent-denom value.
func (a *PoolUnitSourceAdapter) RedemptionValue(ctx sdk.Context, kind cdptypes.PoolUnitKind, ref string, amount decimal.Decimal) (decimal.Decimal, error) {
	switch kind {
	case cdptypes.PoolUnitKindValidator:
		valAddr, err := sdk.ValAddressFromBech32(ref)
		if err != nil {
			return decimal.Decimal{}, err
		}
		validator, err := a.stakingKeeper.GetValidator(context.Context(ctx), valAddr)
		if err != nil {
			return decimal.Decimal{}, err
		}
		ratio := decimal.FromLegacyDec(validator.Tokens.ToLegacyDec().Quo(validator.DelegatorShares))
		return amount.Mul(ratio), nil
	case cdptypes.PoolUnitKindResourcePool:
		price := a.ammPoolKeeper.GetPrice(ctx)
		return amount.Mul(price), nil
	default:
		return decimal.Decimal{}, cdptypes.ErrUnsupportedPoolUnitKind
	}
}
