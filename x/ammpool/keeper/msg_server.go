package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/stabilis-labs/stab-protocol/pkg/decimal"
	"github.com/stabilis-labs/stab-protocol/x/ammpool/types"
)

type msgServer struct {
	Keeper
}

func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (k msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, err
	}
	stabAmount, err := decimal.NewFromString(msg.StabAmount)
	if err != nil {
		return nil, err
	}
	quoteAmount, err := decimal.NewFromString(msg.QuoteAmount)
	if err != nil {
		return nil, err
	}
	minted, err := k.Keeper.AddLiquidity(ctx, provider, stabAmount, quoteAmount)
	if err != nil {
		return nil, err
	}
	return &types.MsgAddLiquidityResponse{Shares: minted.String()}, nil
}

func (k msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, err
	}
	shares, err := decimal.NewFromString(msg.Shares)
	if err != nil {
		return nil, err
	}
	stabOut, quoteOut, err := k.Keeper.RemoveLiquidity(ctx, provider, shares)
	if err != nil {
		return nil, err
	}
	return &types.MsgRemoveLiquidityResponse{StabAmount: stabOut.String(), QuoteAmount: quoteOut.String()}, nil
}

func (k msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, err
	}
	amountIn, err := decimal.NewFromString(msg.Amount.Amount.String())
	if err != nil {
		return nil, err
	}
	minOut, err := decimal.NewFromString(msg.MinOut)
	if err != nil {
		return nil, err
	}
	inIsStab := msg.Amount.Denom == stabDenom
	if !inIsStab && msg.Amount.Denom != k.Keeper.GetParams(ctx).QuoteDenom {
		return nil, types.ErrUnknownDenom
	}
	amountOut, err := k.Keeper.Swap(ctx, trader, amountIn, inIsStab, minOut)
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{AmountOut: amountOut.String()}, nil
}
