package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	cdptypes "github.com/stabilis-labs/stab-protocol/x/cdp/types"
	"github.com/stabilis-labs/stab-protocol/x/proxy/types"
)

// requireQuorum checks signers against Params.QuorumThreshold before any
// admin forward runs.
func (k Keeper) requireQuorum(ctx sdk.Context, signers []string) error {
	if !k.HasQuorum(ctx, signers) {
		return types.ErrInsufficientCapability
	}
	return nil
}

func (k Keeper) ChangeCollateralPrice(ctx sdk.Context, signers []string, denom string, usdPrice decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	return k.cdpKeeper.ChangeCollateralPrice(ctx, denom, usdPrice)
}

func (k Keeper) AddCollateral(ctx sdk.Context, signers []string, denom string, mcr, usdPrice, maxStabShare decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	return k.cdpKeeper.AddCollateral(ctx, denom, mcr, usdPrice, maxStabShare)
}

func (k Keeper) AddPoolCollateral(ctx sdk.Context, signers []string, denom, parentDenom string, kind cdptypes.PoolUnitKind, redemptionRef string, maxPoolShare decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	return k.cdpKeeper.AddPoolCollateral(ctx, denom, parentDenom, kind, redemptionRef, maxPoolShare)
}

func (k Keeper) EditCollateral(ctx sdk.Context, signers []string, denom string, mcr decimal.Decimal, accepted bool, maxStabShare decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	return k.cdpKeeper.EditCollateral(ctx, denom, mcr, accepted, maxStabShare)
}

func (k Keeper) EditPoolCollateral(ctx sdk.Context, signers []string, denom string, accepted bool, maxPoolShare decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	return k.cdpKeeper.EditPoolCollateral(ctx, denom, accepted, maxPoolShare)
}

func (k Keeper) SetStops(ctx sdk.Context, signers []string, liq, open, close, forceMint, forceLiq bool) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.cdpKeeper.GetParams(ctx)
	params.LiquidationsStopped = liq
	params.OpeningsStopped = open
	params.ClosingsStopped = close
	params.ForceMintStopped = forceMint
	params.ForceLiquidateStopped = forceLiq
	return k.cdpKeeper.SetParams(ctx, params)
}

func (k Keeper) SetDelays(ctx sdk.Context, signers []string, liquidationDelayMinutes, unmarkedDelayMinutes uint64) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.cdpKeeper.GetParams(ctx)
	params.LiquidationDelayMinutes = liquidationDelayMinutes
	params.UnmarkedDelayMinutes = unmarkedDelayMinutes
	return k.cdpKeeper.SetParams(ctx, params)
}

func (k Keeper) SetMaxVectorLength(ctx sdk.Context, signers []string, maxVectorLength uint64) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.cdpKeeper.GetParams(ctx)
	params.MaxVectorLength = maxVectorLength
	return k.cdpKeeper.SetParams(ctx, params)
}

func (k Keeper) SetMinimumMint(ctx sdk.Context, signers []string, minimumMint decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.cdpKeeper.GetParams(ctx)
	params.MinimumMint = minimumMint
	return k.cdpKeeper.SetParams(ctx, params)
}

func (k Keeper) SetFines(ctx sdk.Context, signers []string, liquidatorFineBp, protocolFineBp uint64) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.cdpKeeper.GetParams(ctx)
	params.LiquidatorFineBasisPoints = liquidatorFineBp
	params.ProtocolFineBasisPoints = protocolFineBp
	return k.cdpKeeper.SetParams(ctx, params)
}

func (k Keeper) SetForceMintMultiplier(ctx sdk.Context, signers []string, multiplierBp uint64) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.cdpKeeper.GetParams(ctx)
	params.ForceMintCrMultiplierBasisPoints = multiplierBp
	return k.cdpKeeper.SetParams(ctx, params)
}

func (k Keeper) SetPegKpKi(ctx sdk.Context, signers []string, kp, ki decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.pegKeeper.GetParams(ctx)
	params.Kp = kp
	params.Ki = ki
	return k.pegKeeper.SetParams(ctx, params)
}

func (k Keeper) SetPegMinMaxInterest(ctx sdk.Context, signers []string, min, max decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.pegKeeper.GetParams(ctx)
	params.MinInterestRate = min
	params.MaxInterestRate = max
	return k.pegKeeper.SetParams(ctx, params)
}

func (k Keeper) SetPegAllowedDeviation(ctx sdk.Context, signers []string, allowedDeviation decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.pegKeeper.GetParams(ctx)
	params.AllowedDeviation = allowedDeviation
	return k.pegKeeper.SetParams(ctx, params)
}

func (k Keeper) SetPegPriceError(ctx sdk.Context, signers []string, maxPriceError, priceErrorOffset decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.pegKeeper.GetParams(ctx)
	params.MaxPriceError = maxPriceError
	params.PriceErrorOffset = priceErrorOffset
	return k.pegKeeper.SetParams(ctx, params)
}

func (k Keeper) SetPegUpdateDelays(ctx sdk.Context, signers []string, updateDelayMinutes uint64) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.pegKeeper.GetParams(ctx)
	params.UpdateDelayMinutes = updateDelayMinutes
	return k.pegKeeper.SetParams(ctx, params)
}

func (k Keeper) SetPegNumberOfPricesCached(ctx sdk.Context, signers []string, numberOfCachedPrices uint64) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.pegKeeper.GetParams(ctx)
	params.NumberOfCachedPrices = numberOfCachedPrices
	return k.pegKeeper.SetParams(ctx, params)
}

func (k Keeper) SetPegRewardPerSecond(ctx sdk.Context, signers []string, rewardPerSecond decimal.Decimal) error {
	if err := k.requireQuorum(ctx, signers); err != nil {
		return err
	}
	params := k.pegKeeper.GetParams(ctx)
	params.RewardPerSecond = rewardPerSecond
	return k.pegKeeper.SetParams(ctx, params)
}

// GrantBadge issues or overwrites holder's badge share. The very first
// grant (empty badge registry) bypasses the quorum check so the module
// isn't deadlocked before any holder exists; every subsequent grant
// requires existing holders to reach quorum.
func (k Keeper) GrantBadge(ctx sdk.Context, signers []string, holder string, share decimal.Decimal) error {
	bootstrapping := true
	k.IterateBadges(ctx, func(types.BadgeHolding) bool {
		bootstrapping = false
		return false
	})
	if !bootstrapping {
		if err := k.requireQuorum(ctx, signers); err != nil {
			return err
		}
	}
	k.SetBadge(ctx, types.BadgeHolding{Holder: holder, Share: share})
	return nil
}
