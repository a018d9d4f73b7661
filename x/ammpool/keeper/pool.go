package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/ammpool/types"
)

// GetPrice returns the reserve-ratio price of STAB in terms of the quote
// asset, satisfying x/cdp/types.AmmPoolKeeper and x/peg/types.AmmPoolKeeper.
func (k Keeper) GetPrice(ctx sdk.Context) decimal.Decimal {
	pool := k.GetPool(ctx)
	if pool.StabReserve.IsZero() {
		return decimal.Zero()
	}
	return pool.QuoteReserve.Quo(pool.StabReserve)
}

// Swap executes a constant-product trade against the pool:
// out = in*outR*(1-fee) / (inR + in*(1-fee)). inIsStab selects which side
// of the pool amountIn belongs to.
func (k Keeper) Swap(ctx sdk.Context, trader sdk.AccAddress, amountIn decimal.Decimal, inIsStab bool, minOut decimal.Decimal) (decimal.Decimal, error) {
	pool := k.GetPool(ctx)
	if pool.StabReserve.IsZero() || pool.QuoteReserve.IsZero() {
		return decimal.Decimal{}, types.ErrZeroReserve
	}
	if !amountIn.IsPositive() {
		return decimal.Decimal{}, types.ErrInsufficientInput
	}

	params := k.GetParams(ctx)
	oneMinusFee := decimal.One().Sub(params.Fee)

	var inReserve, outReserve decimal.Decimal
	var inDenom, outDenom string
	if inIsStab {
		inReserve, outReserve = pool.StabReserve, pool.QuoteReserve
		inDenom, outDenom = stabDenom, params.QuoteDenom
	} else {
		inReserve, outReserve = pool.QuoteReserve, pool.StabReserve
		inDenom, outDenom = params.QuoteDenom, stabDenom
	}

	effectiveIn := amountIn.Mul(oneMinusFee)
	amountOut := effectiveIn.Mul(outReserve).Quo(inReserve.Add(effectiveIn))
	if amountOut.LT(minOut) {
		return decimal.Decimal{}, types.ErrInsufficientInput
	}

	inCoin := coinFromDecimal(inDenom, amountIn)
	outCoin := coinFromDecimal(outDenom, amountOut)
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, trader, types.ModuleName, sdk.NewCoins(inCoin)); err != nil {
		return decimal.Decimal{}, err
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, trader, sdk.NewCoins(outCoin)); err != nil {
		return decimal.Decimal{}, err
	}

	if inIsStab {
		pool.StabReserve = pool.StabReserve.Add(amountIn)
		pool.QuoteReserve = pool.QuoteReserve.Sub(amountOut)
	} else {
		pool.QuoteReserve = pool.QuoteReserve.Add(amountIn)
		pool.StabReserve = pool.StabReserve.Sub(amountOut)
	}
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSwap,
		sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
		sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
	))
	return amountOut, nil
}

// AddLiquidity deposits the full stabAmount and quoteAmount. An empty pool
// is bootstrapped with sqrt(stabAmount*quoteAmount) LP shares; otherwise the
// provider is minted the smaller of the two pro-rata shares. Amounts are not
// trimmed to the pool's current ratio: any excess on one side stays in the
// reserves and is not returned to the provider.
func (k Keeper) AddLiquidity(ctx sdk.Context, provider sdk.AccAddress, stabAmount, quoteAmount decimal.Decimal) (decimal.Decimal, error) {
	if !stabAmount.IsPositive() || !quoteAmount.IsPositive() {
		return decimal.Decimal{}, types.ErrInsufficientInput
	}
	params := k.GetParams(ctx)
	pool := k.GetPool(ctx)

	var minted decimal.Decimal
	if pool.LpSupply.IsZero() {
		minted = decimal.FromLegacyDec(stabAmount.Mul(quoteAmount).LegacyDec().ApproxSqrt())
	} else {
		stabShare := stabAmount.Mul(pool.LpSupply).Quo(pool.StabReserve)
		quoteShare := quoteAmount.Mul(pool.LpSupply).Quo(pool.QuoteReserve)
		minted = decimal.Min(stabShare, quoteShare)
	}
	if !minted.IsPositive() {
		return decimal.Decimal{}, types.ErrInsufficientInput
	}

	stabCoin := coinFromDecimal(stabDenom, stabAmount)
	quoteCoin := coinFromDecimal(params.QuoteDenom, quoteAmount)
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, provider, types.ModuleName, sdk.NewCoins(stabCoin, quoteCoin)); err != nil {
		return decimal.Decimal{}, err
	}

	pool.StabReserve = pool.StabReserve.Add(stabAmount)
	pool.QuoteReserve = pool.QuoteReserve.Add(quoteAmount)
	pool.LpSupply = pool.LpSupply.Add(minted)
	k.SetPool(ctx, pool)

	k.addShares(ctx, provider.String(), minted)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAddLiquidity,
		sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
		sdk.NewAttribute(types.AttributeKeyStabAmount, stabAmount.String()),
		sdk.NewAttribute(types.AttributeKeyQuoteAmount, quoteAmount.String()),
		sdk.NewAttribute(types.AttributeKeyShares, minted.String()),
	))
	return minted, nil
}

// RemoveLiquidity redeems shares pro-rata for both sides of the pool,
// mirroring TwoResourcePool.redeem.
func (k Keeper) RemoveLiquidity(ctx sdk.Context, provider sdk.AccAddress, shares decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if !shares.IsPositive() {
		return decimal.Decimal{}, decimal.Decimal{}, types.ErrInsufficientShare
	}
	owned := k.getShares(ctx, provider.String())
	if shares.GT(owned) {
		return decimal.Decimal{}, decimal.Decimal{}, types.ErrInsufficientShare
	}
	pool := k.GetPool(ctx)
	if pool.LpSupply.IsZero() {
		return decimal.Decimal{}, decimal.Decimal{}, types.ErrZeroReserve
	}
	params := k.GetParams(ctx)

	stabOut := shares.Mul(pool.StabReserve).Quo(pool.LpSupply)
	quoteOut := shares.Mul(pool.QuoteReserve).Quo(pool.LpSupply)

	stabCoin := coinFromDecimal(stabDenom, stabOut)
	quoteCoin := coinFromDecimal(params.QuoteDenom, quoteOut)
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, provider, sdk.NewCoins(stabCoin, quoteCoin)); err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}

	pool.StabReserve = pool.StabReserve.Sub(stabOut)
	pool.QuoteReserve = pool.QuoteReserve.Sub(quoteOut)
	pool.LpSupply = pool.LpSupply.Sub(shares)
	k.SetPool(ctx, pool)

	k.subShares(ctx, provider.String(), shares)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRemoveLiquidity,
		sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
		sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
	))
	return stabOut, quoteOut, nil
}

// coinFromDecimal truncates amount to its integer part, matching the
// TwoResourcePool.protected_withdraw's Rounded(ToZero) strategy.
func coinFromDecimal(denom string, amount decimal.Decimal) sdk.Coin {
	truncated := amount.Round(decimal.ToZero)
	return sdk.NewCoin(denom, truncated.LegacyDec().TruncateInt())
}
