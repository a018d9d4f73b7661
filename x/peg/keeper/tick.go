package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/peg/types"
)

// MarketPrice reads the current market-observed STAB price: the AMM pool's
// reserve-ratio price times the oracle's quote for the reference asset,
// scaled by priceErrorOffset.
func (k Keeper) MarketPrice(ctx sdk.Context) (decimal.Decimal, error) {
	stabPoolPrice := k.ammPoolKeeper.GetPrice(ctx)
	refPrice, found := k.oracleKeeper.GetAggregatedPrice(ctx, k.refAsset)
	if !found {
		return decimal.Zero(), fmt.Errorf("peg: no aggregated price for reference asset %q", k.refAsset)
	}
	params := k.GetParams(ctx)
	return stabPoolPrice.Mul(refPrice).Mul(params.PriceErrorOffset), nil
}

// Tick runs one PID controller step against marketPrice if at least
// updateDelay minutes have elapsed since the last tick. ticked is false,
// with no error, when the guard holds the tick back. The first tick on a
// fresh state (zero LastUpdate) is not held back and runs with zero elapsed
// minutes.
func (k Keeper) Tick(ctx sdk.Context, marketPrice decimal.Decimal) (ticked bool, elapsedMinutes decimal.Decimal, err error) {
	params := k.GetParams(ctx)
	state := k.GetState(ctx)

	now := ctx.BlockTime()
	firstTick := state.LastUpdate.IsZero()
	if firstTick {
		state.LastUpdate = now
	}
	elapsedSecondsInt := int64(now.Sub(state.LastUpdate).Seconds())
	if elapsedSecondsInt < 0 {
		elapsedSecondsInt = 0
	}
	elapsedMinutes = decimal.NewFromInt64(elapsedSecondsInt).Quo(decimal.NewFromInt64(60))
	requiredMinutes := decimal.NewFromInt64(int64(params.UpdateDelayMinutes))
	if !firstTick && elapsedMinutes.LT(requiredMinutes) {
		return false, elapsedMinutes, nil
	}

	// Step 1: price error, clamped above by maxPriceError.
	priceErr := marketPrice.Sub(state.InternalPrice)
	if priceErr.GT(params.MaxPriceError) {
		priceErr = params.MaxPriceError
	}

	// Step 2: advance the circular error window.
	capacity := int(params.NumberOfCachedPrices)
	if capacity < 1 {
		capacity = 1
	}
	if !state.FullCache {
		state.Window = append(state.Window, priceErr)
		state.WindowSum = state.WindowSum.Add(priceErr)
		state.LastChangedSlot = uint64(len(state.Window) - 1)
		if len(state.Window) >= capacity {
			state.FullCache = true
		}
	} else {
		idx := int(state.LastChangedSlot+1) % capacity
		evicted := state.Window[idx]
		state.WindowSum = state.WindowSum.Sub(evicted).Add(priceErr)
		state.Window[idx] = priceErr
		state.LastChangedSlot = uint64(idx)
	}

	// Step 3: integral/proportional interest-rate update, gated on the
	// error exceeding the allowed deviation band.
	deviationBound := params.AllowedDeviation.Mul(state.InternalPrice)
	if priceErr.Abs().GT(deviationBound) {
		n := decimal.NewFromInt64(int64(params.NumberOfCachedPrices))
		proportional := params.Kp.Mul(priceErr).Quo(state.InternalPrice)
		integral := params.Ki.Mul(state.WindowSum).Quo(state.InternalPrice.Mul(n))
		delta := proportional.Add(integral).Mul(elapsedMinutes)
		state.InterestRate = decimal.Clamp(state.InterestRate.Sub(delta), params.MinInterestRate, params.MaxInterestRate)
	}

	// Step 4: compound the internal price over the elapsed minutes.
	state.InternalPrice = state.InternalPrice.Mul(state.InterestRate.Pow(elapsedMinutes))

	// Step 5: write back and recompute every collateral's LCR.
	state.LastUpdate = now
	k.SetState(ctx, state)
	if k.cdpKeeper != nil {
		k.cdpKeeper.RecomputeAllLcrs(ctx)
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeChangePeg,
		sdk.NewAttribute(types.AttributeKeyInternalPrice, state.InternalPrice.String()),
		sdk.NewAttribute(types.AttributeKeyInterestRate, state.InterestRate.String()),
		sdk.NewAttribute(types.AttributeKeyMarketPrice, marketPrice.String()),
	))
	k.Logger(ctx).Info("peg tick", "internal_price", state.InternalPrice.String(), "interest_rate", state.InterestRate.String())

	return true, elapsedMinutes, nil
}

// Update runs Tick against the live market price and, if it fired, pays the
// caller rewardPerSecond times elapsed seconds out of the module's reward
// vault. An insufficient vault pays nothing rather than failing the tick.
func (k Keeper) Update(ctx sdk.Context, caller sdk.AccAddress) (ticked bool, err error) {
	marketPrice, err := k.MarketPrice(ctx)
	if err != nil {
		return false, err
	}
	ticked, elapsedMinutes, err := k.Tick(ctx, marketPrice)
	if err != nil || !ticked {
		return ticked, err
	}

	params := k.GetParams(ctx)
	if params.RewardPerSecond.IsZero() {
		return true, nil
	}
	elapsedSeconds := elapsedMinutes.Mul(decimal.NewFromInt64(60))
	reward := params.RewardPerSecond.Mul(elapsedSeconds)
	rewardCoin := sdk.NewCoin(rewardDenom, reward.LegacyDec().TruncateInt())
	if rewardCoin.IsZero() {
		return true, nil
	}
	available := k.bankKeeper.GetBalance(ctx, k.rewardVaultAddress(ctx), rewardDenom)
	if available.IsLT(rewardCoin) {
		return true, nil
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, sdk.NewCoins(rewardCoin)); err != nil {
		return true, err
	}
	return true, nil
}

// rewardDenom is the stablecoin this controller pays update rewards in.
const rewardDenom = "ustab"

func (k Keeper) rewardVaultAddress(ctx sdk.Context) sdk.AccAddress {
	return sdk.AccAddress(sdk.NewModuleAddress(types.ModuleName))
}
